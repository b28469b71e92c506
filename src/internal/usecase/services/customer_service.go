package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/api-sage/mortgage-quote-service/src/internal/adapter/http/models"
	"github.com/api-sage/mortgage-quote-service/src/internal/commons"
	"github.com/api-sage/mortgage-quote-service/src/internal/domain"
	"github.com/api-sage/mortgage-quote-service/src/internal/logger"
	"github.com/api-sage/mortgage-quote-service/src/internal/usecase/service_interfaces"
)

// Verify that CustomerService implements the service_interfaces.CustomerService interface
var _ service_interfaces.CustomerService = (*CustomerService)(nil)

const (
	msgCustomerRegistered = "Cliente registrado correctamente"
	msgCustomerFetched    = "Cliente obtenido correctamente"
	msgCustomerNotFound   = "Cliente no encontrado"
	msgCustomerDuplicate  = "Ya existe un cliente con ese documento de identidad"
	msgCustomerFailed     = "No se pudo registrar el cliente"
)

type CustomerService struct {
	customerRepo domain.CustomerRepository
	now          func() time.Time
}

func NewCustomerService(customerRepo domain.CustomerRepository) *CustomerService {
	return &CustomerService{
		customerRepo: customerRepo,
		now:          func() time.Time { return time.Now().UTC() },
	}
}

func (s *CustomerService) Register(ctx context.Context, req models.RegisterCustomerRequest) (commons.Response[models.CustomerResponse], error) {
	logger.Info("customer service register request", logger.Fields{
		"payload": logger.SanitizePayload(req),
	})

	if err := req.Validate(); err != nil {
		logger.Error("customer service register validation failed", err, nil)
		return validationResponse[models.CustomerResponse](err), err
	}

	customer := req.ToDomain()

	_, err := s.customerRepo.GetByDocumentID(ctx, customer.DocumentID)
	switch {
	case err == nil:
		conflict := fmt.Errorf("customer document already registered: %w", domain.ErrConflict)
		logger.Error("customer service register duplicate document", conflict, nil)
		return commons.ErrorResponse[models.CustomerResponse](msgCustomerDuplicate), conflict
	case !errors.Is(err, domain.ErrRecordNotFound):
		logger.Error("customer service register lookup failed", err, nil)
		return commons.ErrorResponse[models.CustomerResponse](msgCustomerFailed), err
	}

	customer.CreatedAt = s.now()
	created, err := s.customerRepo.Create(ctx, customer)
	if err != nil {
		logger.Error("customer service register create failed", err, nil)
		if errors.Is(err, domain.ErrConflict) {
			return commons.ErrorResponse[models.CustomerResponse](msgCustomerDuplicate), err
		}
		return commons.ErrorResponse[models.CustomerResponse](msgCustomerFailed), err
	}

	logger.Info("customer service register success", logger.Fields{
		"customerId": created.ID,
	})

	return commons.SuccessResponse(msgCustomerRegistered, models.NewCustomerResponse(created)), nil
}

func (s *CustomerService) Get(ctx context.Context, id int64) (commons.Response[models.CustomerResponse], error) {
	if id <= 0 {
		err := domain.NewValidationError("El identificador del cliente no es válido")
		return validationResponse[models.CustomerResponse](err), err
	}

	customer, err := s.customerRepo.GetByID(ctx, id)
	if err != nil {
		logger.Error("customer service get failed", err, logger.Fields{"customerId": id})
		if errors.Is(err, domain.ErrRecordNotFound) {
			return commons.ErrorResponse[models.CustomerResponse](msgCustomerNotFound), err
		}
		return commons.ErrorResponse[models.CustomerResponse]("No se pudo obtener el cliente"), err
	}

	return commons.SuccessResponse(msgCustomerFetched, models.NewCustomerResponse(customer)), nil
}

func validationResponse[T any](err error) commons.Response[T] {
	var validationErr *domain.ValidationError
	if errors.As(err, &validationErr) {
		return commons.ValidationResponse[T](validationErr.Fields)
	}
	return commons.ErrorResponse[T]("Solicitud inválida", err.Error())
}
