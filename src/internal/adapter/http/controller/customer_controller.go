package controller

import (
	"net/http"
	"time"

	"github.com/api-sage/mortgage-quote-service/src/internal/adapter/http/models"
	"github.com/api-sage/mortgage-quote-service/src/internal/commons"
	"github.com/api-sage/mortgage-quote-service/src/internal/logger"
	"github.com/api-sage/mortgage-quote-service/src/internal/usecase/service_interfaces"
	"github.com/gorilla/mux"
)

type CustomerController struct {
	service service_interfaces.CustomerService
}

func NewCustomerController(service service_interfaces.CustomerService) *CustomerController {
	return &CustomerController{service: service}
}

func (c *CustomerController) RegisterRoutes(r *mux.Router) {
	r.HandleFunc("/clientes/register", c.register).Methods(http.MethodPost)
	r.HandleFunc("/clientes/{id:[0-9]+}", c.get).Methods(http.MethodGet)
}

func (c *CustomerController) register(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	var req models.RegisterCustomerRequest
	if err := decodeJSON(w, r, &req); err != nil {
		logError(r, err, nil)
		response := commons.ErrorResponse[models.CustomerResponse](msgInvalidBody, decodeErrors(err)...)
		writeJSON(w, http.StatusBadRequest, response)
		logResponse(r, http.StatusBadRequest, response, start)
		return
	}
	logRequest(r, req)

	response, err := c.service.Register(r.Context(), req)
	if err != nil {
		logError(r, err, logger.Fields{"message": response.Message})
		status := statusFor(err)
		response = failurePayload(status, response)
		writeJSON(w, status, response)
		logResponse(r, status, response, start)
		return
	}

	writeJSON(w, http.StatusCreated, response)
	logResponse(r, http.StatusCreated, response, start)
}

func (c *CustomerController) get(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logRequest(r, nil)

	id, err := pathID(r)
	if err != nil {
		logError(r, err, nil)
		response := commons.ErrorResponse[models.CustomerResponse](msgInvalidID)
		writeJSON(w, http.StatusBadRequest, response)
		logResponse(r, http.StatusBadRequest, response, start)
		return
	}

	response, err := c.service.Get(r.Context(), id)
	if err != nil {
		logError(r, err, logger.Fields{"message": response.Message})
		status := statusFor(err)
		response = failurePayload(status, response)
		writeJSON(w, status, response)
		logResponse(r, status, response, start)
		return
	}

	writeJSON(w, http.StatusOK, response)
	logResponse(r, http.StatusOK, response, start)
}
