package services

import (
	"context"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/api-sage/mortgage-quote-service/src/internal/adapter/http/models"
	"github.com/api-sage/mortgage-quote-service/src/internal/commons"
	"github.com/api-sage/mortgage-quote-service/src/internal/domain"
	"github.com/api-sage/mortgage-quote-service/src/internal/logger"
	"github.com/api-sage/mortgage-quote-service/src/internal/usecase/quoting"
	"github.com/api-sage/mortgage-quote-service/src/internal/usecase/service_interfaces"
	"golang.org/x/crypto/blake2b"
	"golang.org/x/sync/singleflight"
)

// Verify that LoanApplicationService implements the service_interfaces.LoanApplicationService interface
var _ service_interfaces.LoanApplicationService = (*LoanApplicationService)(nil)

const (
	msgQuoteSimulated     = "Simulación realizada correctamente"
	msgQuoteRegistered    = "Solicitud registrada correctamente"
	msgQuoteRejected      = "La solicitud fue rechazada"
	msgQuoteFetched       = "Solicitud obtenida correctamente"
	msgQuotesFetched      = "Solicitudes obtenidas correctamente"
	msgScheduleFetched    = "Cronograma obtenido correctamente"
	msgQuoteNotFound      = "Solicitud no encontrada"
	msgIdempotencyReused  = "La clave de idempotencia ya fue usada con otra solicitud"
	msgQuoteUnavailable   = "El servicio de evaluación no está disponible, intente nuevamente"
	msgQuoteFailed        = "No se pudo procesar la solicitud"
	maxIdempotencyKeySize = 128
)

var errUnknownCustomer = errors.New("unknown customer")

type LoanApplicationService struct {
	engine       *quoting.Engine
	customerRepo domain.CustomerRepository
	loanRepo     domain.LoanApplicationRepository
	inflight     singleflight.Group
	now          func() time.Time
}

func NewLoanApplicationService(engine *quoting.Engine, customerRepo domain.CustomerRepository, loanRepo domain.LoanApplicationRepository) *LoanApplicationService {
	return &LoanApplicationService{
		engine:       engine,
		customerRepo: customerRepo,
		loanRepo:     loanRepo,
		now:          func() time.Time { return time.Now().UTC() },
	}
}

func (s *LoanApplicationService) Simulate(ctx context.Context, req models.LoanApplicationRequest) (commons.Response[models.LoanApplicationResponse], error) {
	logger.Info("loan application service simulate request", logger.Fields{
		"payload": logger.SanitizePayload(req),
	})

	quote, err := s.simulate(ctx, req)
	if err != nil {
		logger.Error("loan application service simulate failed", err, logger.Fields{"clienteId": req.ClienteID})
		return quoteErrorResponse[models.LoanApplicationResponse](err), err
	}

	logger.Info("loan application service simulate success", logger.Fields{
		"clienteId":     req.ClienteID,
		"estado":        quote.Status,
		"riesgoCliente": quote.RiskTier,
	})

	return commons.SuccessResponse(msgQuoteSimulated, models.NewLoanApplicationResponse(quote)), nil
}

// Register re-runs the simulation and stores the quote only when it is
// approved. With an idempotency key, concurrent calls in this process share
// one write and later calls replay the stored application.
func (s *LoanApplicationService) Register(ctx context.Context, req models.LoanApplicationRequest, idempotencyKey string) (commons.Response[models.LoanApplicationResponse], error) {
	idempotencyKey = strings.TrimSpace(idempotencyKey)
	logger.Info("loan application service register request", logger.Fields{
		"payload":        logger.SanitizePayload(req),
		"idempotencyKey": idempotencyKey,
	})

	if len(idempotencyKey) > maxIdempotencyKeySize {
		err := domain.NewValidationError(fmt.Sprintf("La clave de idempotencia no puede superar %d caracteres", maxIdempotencyKeySize))
		return validationResponse[models.LoanApplicationResponse](err), err
	}

	fingerprint := requestFingerprint(req)

	var (
		quote domain.Quote
		err   error
	)
	if idempotencyKey == "" {
		quote, err = s.register(ctx, req, nil, fingerprint)
	} else {
		quote, err = s.registerOnce(ctx, req, idempotencyKey, fingerprint)
	}
	if err != nil {
		logger.Error("loan application service register failed", err, logger.Fields{
			"clienteId":      req.ClienteID,
			"idempotencyKey": idempotencyKey,
		})
		return quoteErrorResponse[models.LoanApplicationResponse](err), err
	}

	if !quote.Registered() {
		logger.Info("loan application service register rejected", logger.Fields{
			"clienteId":     req.ClienteID,
			"motivoRechazo": quote.RejectionReason,
		})
		return commons.SuccessResponse(msgQuoteRejected, models.NewLoanApplicationResponse(quote)), nil
	}

	logger.Info("loan application service register success", logger.Fields{
		"solicitudId": quote.ID,
		"clienteId":   quote.CustomerID,
	})

	return commons.SuccessResponse(msgQuoteRegistered, models.NewLoanApplicationResponse(quote)), nil
}

func (s *LoanApplicationService) Get(ctx context.Context, id int64) (commons.Response[models.LoanApplicationResponse], error) {
	quote, err := s.getQuote(ctx, id)
	if err != nil {
		logger.Error("loan application service get failed", err, logger.Fields{"solicitudId": id})
		return quoteErrorResponse[models.LoanApplicationResponse](err), err
	}

	return commons.SuccessResponse(msgQuoteFetched, models.NewLoanApplicationResponse(quote)), nil
}

func (s *LoanApplicationService) ListByCustomer(ctx context.Context, customerID int64) (commons.Response[[]models.LoanApplicationResponse], error) {
	if customerID <= 0 {
		err := domain.NewValidationError("El identificador del cliente no es válido")
		return validationResponse[[]models.LoanApplicationResponse](err), err
	}

	customer, err := s.customerRepo.GetByID(ctx, customerID)
	if err != nil {
		logger.Error("loan application service list customer lookup failed", err, logger.Fields{"clienteId": customerID})
		if errors.Is(err, domain.ErrRecordNotFound) {
			return commons.ErrorResponse[[]models.LoanApplicationResponse](msgCustomerNotFound), err
		}
		return commons.ErrorResponse[[]models.LoanApplicationResponse](msgQuoteFailed), err
	}

	quotes, err := s.loanRepo.ListByCustomerID(ctx, customerID)
	if err != nil {
		logger.Error("loan application service list failed", err, logger.Fields{"clienteId": customerID})
		return commons.ErrorResponse[[]models.LoanApplicationResponse](msgQuoteFailed), err
	}

	for i := range quotes {
		c := customer
		quotes[i].Customer = &c
	}

	logger.Info("loan application service list success", logger.Fields{
		"clienteId": customerID,
		"count":     len(quotes),
	})

	return commons.SuccessResponse(msgQuotesFetched, models.NewLoanApplicationResponses(quotes)), nil
}

func (s *LoanApplicationService) Schedule(ctx context.Context, id int64) (commons.Response[[]models.InstallmentResponse], error) {
	quote, err := s.getQuote(ctx, id)
	if err != nil {
		logger.Error("loan application service schedule failed", err, logger.Fields{"solicitudId": id})
		return quoteErrorResponse[[]models.InstallmentResponse](err), err
	}

	rows := quoting.Schedule(quote.FinancedAmount, quote.InterestRate, quote.TermYears*12)
	return commons.SuccessResponse(msgScheduleFetched, models.NewInstallmentResponses(rows)), nil
}

func (s *LoanApplicationService) simulate(ctx context.Context, req models.LoanApplicationRequest) (domain.Quote, error) {
	if err := req.Validate(); err != nil {
		return domain.Quote{}, err
	}

	customer, err := s.customerRepo.GetByID(ctx, req.ClienteID)
	if err != nil {
		if errors.Is(err, domain.ErrRecordNotFound) {
			return domain.Quote{}, fmt.Errorf("load customer %d: %w: %w", req.ClienteID, errUnknownCustomer, err)
		}
		return domain.Quote{}, fmt.Errorf("load customer %d: %w", req.ClienteID, err)
	}

	return s.engine.Simulate(ctx, req.ToDomain(), customer)
}

func (s *LoanApplicationService) register(ctx context.Context, req models.LoanApplicationRequest, idempotencyKey *string, fingerprint string) (domain.Quote, error) {
	quote, err := s.simulate(ctx, req)
	if err != nil {
		return domain.Quote{}, err
	}
	quote.Fingerprint = fingerprint
	if !quote.Status.Approved() {
		return quote, nil
	}

	quote.IdempotencyKey = idempotencyKey
	quote.CreatedAt = s.now()

	customer := quote.Customer
	created, err := s.loanRepo.Create(ctx, quote)
	if err != nil {
		return domain.Quote{}, fmt.Errorf("store loan application: %w", err)
	}
	created.Customer = customer

	return created, nil
}

// registerOnce shares one flight between callers sending the same key and
// the same payload. A different payload under the same key runs on its own
// and meets the stored application as a conflict.
func (s *LoanApplicationService) registerOnce(ctx context.Context, req models.LoanApplicationRequest, key string, fingerprint string) (domain.Quote, error) {
	result, err, shared := s.inflight.Do(key+"|"+fingerprint, func() (any, error) {
		existing, err := s.loanRepo.GetByIdempotencyKey(ctx, key)
		switch {
		case err == nil:
			return s.withCustomer(ctx, existing), nil
		case !errors.Is(err, domain.ErrRecordNotFound):
			return domain.Quote{}, fmt.Errorf("lookup idempotency key: %w", err)
		}

		quote, err := s.register(ctx, req, &key, fingerprint)
		if errors.Is(err, domain.ErrConflict) {
			// the key was stored first by another flight or instance
			existing, lookupErr := s.loanRepo.GetByIdempotencyKey(ctx, key)
			if lookupErr != nil {
				return domain.Quote{}, err
			}
			return s.withCustomer(ctx, existing), nil
		}
		return quote, err
	})
	if err != nil {
		if shared && ctx.Err() == nil && (errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)) {
			// the leader's request went away, this one is still live
			return s.registerOnce(ctx, req, key, fingerprint)
		}
		return domain.Quote{}, err
	}

	quote := result.(domain.Quote)
	if quote.Registered() && quote.Fingerprint != fingerprint {
		return domain.Quote{}, fmt.Errorf("idempotency key %q reused with a different payload: %w", key, domain.ErrConflict)
	}

	return quote, nil
}

func (s *LoanApplicationService) getQuote(ctx context.Context, id int64) (domain.Quote, error) {
	if id <= 0 {
		return domain.Quote{}, domain.NewValidationError("El identificador de la solicitud no es válido")
	}

	quote, err := s.loanRepo.GetByID(ctx, id)
	if err != nil {
		return domain.Quote{}, err
	}

	return s.withCustomer(ctx, quote), nil
}

func (s *LoanApplicationService) withCustomer(ctx context.Context, quote domain.Quote) domain.Quote {
	if quote.Customer != nil {
		return quote
	}
	customer, err := s.customerRepo.GetByID(ctx, quote.CustomerID)
	if err != nil {
		logger.Warn("loan application service customer snapshot unavailable", err, logger.Fields{
			"solicitudId": quote.ID,
			"clienteId":   quote.CustomerID,
		})
		return quote
	}
	quote.Customer = &customer
	return quote
}

// requestFingerprint hashes the normalized request so a replayed
// idempotency key can be checked against the original payload.
func requestFingerprint(req models.LoanApplicationRequest) string {
	canonical := fmt.Sprintf("%s|%d|%s|%d",
		req.Monto.String(),
		req.PlazoAnios,
		req.PorcentajeCuotaInicial.String(),
		req.ClienteID,
	)
	sum := blake2b.Sum256([]byte(canonical))
	return hex.EncodeToString(sum[:])
}

func quoteErrorResponse[T any](err error) commons.Response[T] {
	switch {
	case errors.Is(err, domain.ErrValidation):
		return validationResponse[T](err)
	case errors.Is(err, errUnknownCustomer):
		return commons.ErrorResponse[T](msgCustomerNotFound)
	case errors.Is(err, domain.ErrRecordNotFound):
		return commons.ErrorResponse[T](msgQuoteNotFound)
	case errors.Is(err, domain.ErrConflict):
		return commons.ErrorResponse[T](msgIdempotencyReused)
	case errors.Is(err, domain.ErrUnavailable):
		return commons.ErrorResponse[T](msgQuoteUnavailable)
	default:
		return commons.ErrorResponse[T](msgQuoteFailed)
	}
}
