package router

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/gorilla/mux"
)

func registerSwaggerRoutes(r *mux.Router) {
	r.HandleFunc("/swagger", func(w http.ResponseWriter, req *http.Request) {
		http.Redirect(w, req, "/swagger/", http.StatusMovedPermanently)
	}).Methods(http.MethodGet)

	r.HandleFunc("/swagger/", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		_, _ = fmt.Fprintf(w, swaggerHTML, "/swagger/openapi.json")
	}).Methods(http.MethodGet)

	r.HandleFunc("/swagger/openapi.json", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(openAPI))
	}).Methods(http.MethodGet)
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

const swaggerHTML = `<!doctype html>
<html>
<head>
  <meta charset="utf-8" />
  <title>Cotizador Hipotecario API Docs</title>
  <link rel="stylesheet" href="https://unpkg.com/swagger-ui-dist@5/swagger-ui.css" />
</head>
<body>
  <div id="swagger-ui"></div>
  <script src="https://unpkg.com/swagger-ui-dist@5/swagger-ui-bundle.js"></script>
  <script>
    window.onload = function() {
      window.ui = SwaggerUIBundle({
        url: "%s",
        dom_id: "#swagger-ui"
      });
    };
  </script>
</body>
</html>`

const openAPI = `{
  "openapi": "3.0.3",
  "info": {
    "title": "Cotizador Hipotecario API",
    "version": "1.0.0"
  },
  "paths": {
    "/api/clientes/register": {
      "post": {
        "summary": "Register customer",
        "security": [{"BasicAuth": []}],
        "requestBody": {
          "required": true,
          "content": {"application/json": {"schema": {"$ref": "#/components/schemas/RegisterCustomerRequest"}}}
        },
        "responses": {
          "201": {"description": "Created", "content": {"application/json": {"schema": {"$ref": "#/components/schemas/CustomerEnvelope"}}}},
          "400": {"description": "Validation failed", "content": {"application/json": {"schema": {"$ref": "#/components/schemas/ErrorEnvelope"}}}},
          "409": {"description": "Document already registered", "content": {"application/json": {"schema": {"$ref": "#/components/schemas/ErrorEnvelope"}}}}
        }
      }
    },
    "/api/clientes/{id}": {
      "get": {
        "summary": "Get customer",
        "security": [{"BasicAuth": []}],
        "parameters": [{"$ref": "#/components/parameters/ID"}],
        "responses": {
          "200": {"description": "OK", "content": {"application/json": {"schema": {"$ref": "#/components/schemas/CustomerEnvelope"}}}},
          "404": {"description": "Not found", "content": {"application/json": {"schema": {"$ref": "#/components/schemas/ErrorEnvelope"}}}}
        }
      }
    },
    "/api/clientes/{id}/solicitudes": {
      "get": {
        "summary": "List a customer's loan applications, newest first",
        "security": [{"BasicAuth": []}],
        "parameters": [{"$ref": "#/components/parameters/ID"}],
        "responses": {
          "200": {"description": "OK"},
          "404": {"description": "Customer not found", "content": {"application/json": {"schema": {"$ref": "#/components/schemas/ErrorEnvelope"}}}}
        }
      }
    },
    "/api/solicitudesPrestamo/simular": {
      "post": {
        "summary": "Simulate a mortgage quote",
        "security": [{"BasicAuth": []}],
        "requestBody": {
          "required": true,
          "content": {"application/json": {"schema": {"$ref": "#/components/schemas/LoanApplicationRequest"}}}
        },
        "responses": {
          "200": {"description": "Quote, approved or rejected", "content": {"application/json": {"schema": {"$ref": "#/components/schemas/Quote"}}}},
          "400": {"description": "Validation failed", "content": {"application/json": {"schema": {"$ref": "#/components/schemas/ErrorEnvelope"}}}},
          "404": {"description": "Customer not found", "content": {"application/json": {"schema": {"$ref": "#/components/schemas/ErrorEnvelope"}}}},
          "503": {"description": "Risk evaluation unavailable", "content": {"application/json": {"schema": {"$ref": "#/components/schemas/ErrorEnvelope"}}}}
        }
      }
    },
    "/api/solicitudesPrestamo/register": {
      "post": {
        "summary": "Register an approved quote as a loan application",
        "security": [{"BasicAuth": []}],
        "parameters": [
          {"name": "Idempotency-Key", "in": "header", "required": false, "schema": {"type": "string", "maxLength": 128}}
        ],
        "requestBody": {
          "required": true,
          "content": {"application/json": {"schema": {"$ref": "#/components/schemas/LoanApplicationRequest"}}}
        },
        "responses": {
          "201": {"description": "Stored", "content": {"application/json": {"schema": {"$ref": "#/components/schemas/Quote"}}}},
          "200": {"description": "Rejected, nothing stored", "content": {"application/json": {"schema": {"$ref": "#/components/schemas/Quote"}}}},
          "400": {"description": "Validation failed", "content": {"application/json": {"schema": {"$ref": "#/components/schemas/ErrorEnvelope"}}}},
          "404": {"description": "Customer not found", "content": {"application/json": {"schema": {"$ref": "#/components/schemas/ErrorEnvelope"}}}},
          "409": {"description": "Idempotency key reused with another payload", "content": {"application/json": {"schema": {"$ref": "#/components/schemas/ErrorEnvelope"}}}},
          "503": {"description": "Risk evaluation unavailable", "content": {"application/json": {"schema": {"$ref": "#/components/schemas/ErrorEnvelope"}}}}
        }
      }
    },
    "/api/solicitudesPrestamo/{id}": {
      "get": {
        "summary": "Get loan application",
        "security": [{"BasicAuth": []}],
        "parameters": [{"$ref": "#/components/parameters/ID"}],
        "responses": {
          "200": {"description": "OK", "content": {"application/json": {"schema": {"$ref": "#/components/schemas/Quote"}}}},
          "404": {"description": "Not found", "content": {"application/json": {"schema": {"$ref": "#/components/schemas/ErrorEnvelope"}}}}
        }
      }
    },
    "/api/solicitudesPrestamo/{id}/cronograma": {
      "get": {
        "summary": "Amortization schedule of a loan application",
        "security": [{"BasicAuth": []}],
        "parameters": [{"$ref": "#/components/parameters/ID"}],
        "responses": {
          "200": {"description": "OK"},
          "404": {"description": "Not found", "content": {"application/json": {"schema": {"$ref": "#/components/schemas/ErrorEnvelope"}}}}
        }
      }
    },
    "/healthz": {
      "get": {
        "summary": "Storage and cache probe",
        "responses": {"200": {"description": "Healthy"}, "503": {"description": "A dependency is down"}}
      }
    }
  },
  "components": {
    "securitySchemes": {
      "BasicAuth": {"type": "http", "scheme": "basic"}
    },
    "parameters": {
      "ID": {"name": "id", "in": "path", "required": true, "schema": {"type": "integer", "format": "int64"}}
    },
    "schemas": {
      "RegisterCustomerRequest": {
        "type": "object",
        "required": ["documentoIdentidad", "nombreCompleto", "telefono"],
        "properties": {
          "documentoIdentidad": {"type": "string", "minLength": 8, "maxLength": 8},
          "nombreCompleto": {"type": "string"},
          "telefono": {"type": "string", "minLength": 9},
          "email": {"type": "string", "format": "email"},
          "ingresoMensual": {"type": "number", "minimum": 0, "maximum": 1000000000}
        }
      },
      "Customer": {
        "type": "object",
        "properties": {
          "id": {"type": "integer", "format": "int64"},
          "nombreCompleto": {"type": "string"},
          "documentoIdentidad": {"type": "string"},
          "email": {"type": "string"},
          "telefono": {"type": "string"},
          "ingresoMensual": {"type": "number"}
        }
      },
      "CustomerEnvelope": {
        "type": "object",
        "properties": {
          "success": {"type": "boolean"},
          "message": {"type": "string"},
          "data": {"$ref": "#/components/schemas/Customer"}
        }
      },
      "LoanApplicationRequest": {
        "type": "object",
        "required": ["monto", "plazoAnios", "porcentajeCuotaInicial", "clienteId"],
        "properties": {
          "monto": {"type": "number", "exclusiveMinimum": true, "minimum": 0, "maximum": 10000000000},
          "plazoAnios": {"type": "integer", "minimum": 1},
          "porcentajeCuotaInicial": {"type": "number", "minimum": 0, "maximum": 100},
          "clienteId": {"type": "integer", "format": "int64"}
        }
      },
      "Quote": {
        "type": "object",
        "properties": {
          "id": {"type": "integer", "format": "int64"},
          "monto": {"type": "number"},
          "montoCuotaInicial": {"type": "number"},
          "porcentajeCuotaInicial": {"type": "number"},
          "montoFinanciar": {"type": "number"},
          "plazoAnios": {"type": "integer"},
          "tasaInteres": {"type": "number"},
          "tcea": {"type": "number"},
          "cuotaMensual": {"type": "number"},
          "motivoRechazo": {"type": "string"},
          "riesgoCliente": {"type": "integer", "minimum": 1, "maximum": 5},
          "estado": {"type": "integer", "enum": [1, 2]},
          "createdAt": {"type": "string", "format": "date-time"},
          "cliente": {"$ref": "#/components/schemas/Customer"}
        }
      },
      "ErrorEnvelope": {
        "type": "object",
        "properties": {
          "success": {"type": "boolean"},
          "message": {"type": "string"},
          "errors": {"type": "array", "items": {"type": "string"}}
        }
      }
    }
  }
}`
