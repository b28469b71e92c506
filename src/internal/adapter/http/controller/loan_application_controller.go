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

const IdempotencyKeyHeader = "Idempotency-Key"

type LoanApplicationController struct {
	service service_interfaces.LoanApplicationService
}

func NewLoanApplicationController(service service_interfaces.LoanApplicationService) *LoanApplicationController {
	return &LoanApplicationController{service: service}
}

func (c *LoanApplicationController) RegisterRoutes(r *mux.Router) {
	r.HandleFunc("/solicitudesPrestamo/simular", c.simulate).Methods(http.MethodPost)
	r.HandleFunc("/solicitudesPrestamo/register", c.register).Methods(http.MethodPost)
	r.HandleFunc("/solicitudesPrestamo/{id:[0-9]+}", c.get).Methods(http.MethodGet)
	r.HandleFunc("/solicitudesPrestamo/{id:[0-9]+}/cronograma", c.schedule).Methods(http.MethodGet)
	r.HandleFunc("/clientes/{id:[0-9]+}/solicitudes", c.listByCustomer).Methods(http.MethodGet)
}

// simulate and register answer with the bare quote on success.
func (c *LoanApplicationController) simulate(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	req, ok := c.decode(w, r, start)
	if !ok {
		return
	}

	response, err := c.service.Simulate(r.Context(), req)
	if err != nil {
		c.fail(w, r, err, response, start)
		return
	}

	writeJSON(w, http.StatusOK, response.Data)
	logResponse(r, http.StatusOK, response.Data, start)
}

func (c *LoanApplicationController) register(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	req, ok := c.decode(w, r, start)
	if !ok {
		return
	}

	response, err := c.service.Register(r.Context(), req, r.Header.Get(IdempotencyKeyHeader))
	if err != nil {
		c.fail(w, r, err, response, start)
		return
	}

	status := http.StatusOK
	if response.Data != nil && response.Data.ID != nil {
		status = http.StatusCreated
	}
	writeJSON(w, status, response.Data)
	logResponse(r, status, response.Data, start)
}

func (c *LoanApplicationController) get(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logRequest(r, nil)

	id, ok := c.id(w, r, start)
	if !ok {
		return
	}

	response, err := c.service.Get(r.Context(), id)
	if err != nil {
		c.fail(w, r, err, response, start)
		return
	}

	writeJSON(w, http.StatusOK, response.Data)
	logResponse(r, http.StatusOK, response.Data, start)
}

func (c *LoanApplicationController) schedule(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logRequest(r, nil)

	id, ok := c.id(w, r, start)
	if !ok {
		return
	}

	response, err := c.service.Schedule(r.Context(), id)
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

func (c *LoanApplicationController) listByCustomer(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logRequest(r, nil)

	id, ok := c.id(w, r, start)
	if !ok {
		return
	}

	response, err := c.service.ListByCustomer(r.Context(), id)
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

func (c *LoanApplicationController) decode(w http.ResponseWriter, r *http.Request, start time.Time) (models.LoanApplicationRequest, bool) {
	var req models.LoanApplicationRequest
	if err := decodeJSON(w, r, &req); err != nil {
		logError(r, err, nil)
		response := commons.ErrorResponse[models.LoanApplicationResponse](msgInvalidBody, decodeErrors(err)...)
		writeJSON(w, http.StatusBadRequest, response)
		logResponse(r, http.StatusBadRequest, response, start)
		return req, false
	}
	logRequest(r, req)
	return req, true
}

func (c *LoanApplicationController) id(w http.ResponseWriter, r *http.Request, start time.Time) (int64, bool) {
	id, err := pathID(r)
	if err != nil {
		logError(r, err, nil)
		response := commons.ErrorResponse[any](msgInvalidID)
		writeJSON(w, http.StatusBadRequest, response)
		logResponse(r, http.StatusBadRequest, response, start)
		return 0, false
	}
	return id, true
}

func (c *LoanApplicationController) fail(w http.ResponseWriter, r *http.Request, err error, response commons.Response[models.LoanApplicationResponse], start time.Time) {
	logError(r, err, logger.Fields{"message": response.Message})
	status := statusFor(err)
	response = failurePayload(status, response)
	writeJSON(w, status, response)
	logResponse(r, status, response, start)
}
