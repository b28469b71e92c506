package models

import (
	"encoding/json"
	"strings"

	"github.com/api-sage/mortgage-quote-service/src/internal/domain"
	"github.com/shopspring/decimal"
)

type RegisterCustomerRequest struct {
	DocumentoIdentidad string          `json:"documentoIdentidad" validate:"required,len=8"`
	NombreCompleto     string          `json:"nombreCompleto" validate:"required"`
	Telefono           string          `json:"telefono" validate:"required,min=9"`
	Email              string          `json:"email,omitempty" validate:"omitempty,email"`
	IngresoMensual     decimal.Decimal `json:"ingresoMensual" validate:"gte=0,lte=1000000000"`
}

var registerCustomerMessages = map[string]string{
	"nombreCompleto.required":     "El nombre no puede estar vacío",
	"telefono.required":           "El teléfono no puede estar vacío",
	"telefono.min":                "El teléfono debe tener al menos 9 dígitos",
	"documentoIdentidad.required": "El documento de identidad no puede estar vacío",
	"documentoIdentidad.len":      "El documento de identidad debe tener 8 dígitos",
	"email.email":                 "El correo electrónico no es válido",
	"ingresoMensual.gte":          "El ingreso mensual no puede ser negativo",
	"ingresoMensual.lte":          "El ingreso mensual no puede superar 1000000000",
}

// Normalize trims free text fields the way the client does before sending.
func (r RegisterCustomerRequest) Normalize() RegisterCustomerRequest {
	r.DocumentoIdentidad = strings.TrimSpace(r.DocumentoIdentidad)
	r.NombreCompleto = strings.TrimSpace(r.NombreCompleto)
	r.Telefono = strings.TrimSpace(r.Telefono)
	r.Email = strings.TrimSpace(r.Email)
	return r
}

func (r RegisterCustomerRequest) Validate() error {
	return validateStruct(r.Normalize(), registerCustomerMessages)
}

func (r RegisterCustomerRequest) ToDomain() domain.Customer {
	n := r.Normalize()
	return domain.Customer{
		FullName:      n.NombreCompleto,
		DocumentID:    n.DocumentoIdentidad,
		Email:         n.Email,
		Phone:         n.Telefono,
		MonthlyIncome: n.IngresoMensual.Round(2),
	}
}

type CustomerResponse struct {
	ID                 int64       `json:"id"`
	NombreCompleto     string      `json:"nombreCompleto"`
	DocumentoIdentidad string      `json:"documentoIdentidad"`
	Email              string      `json:"email"`
	Telefono           string      `json:"telefono"`
	IngresoMensual     json.Number `json:"ingresoMensual"`
}

func NewCustomerResponse(c domain.Customer) CustomerResponse {
	return CustomerResponse{
		ID:                 c.ID,
		NombreCompleto:     c.FullName,
		DocumentoIdentidad: c.DocumentID,
		Email:              c.Email,
		Telefono:           c.Phone,
		IngresoMensual:     money(c.MonthlyIncome),
	}
}
