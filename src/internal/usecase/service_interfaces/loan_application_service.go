package service_interfaces

import (
	"context"

	"github.com/api-sage/mortgage-quote-service/src/internal/adapter/http/models"
	"github.com/api-sage/mortgage-quote-service/src/internal/commons"
)

type LoanApplicationService interface {
	Simulate(ctx context.Context, req models.LoanApplicationRequest) (commons.Response[models.LoanApplicationResponse], error)
	Register(ctx context.Context, req models.LoanApplicationRequest, idempotencyKey string) (commons.Response[models.LoanApplicationResponse], error)
	Get(ctx context.Context, id int64) (commons.Response[models.LoanApplicationResponse], error)
	ListByCustomer(ctx context.Context, customerID int64) (commons.Response[[]models.LoanApplicationResponse], error)
	Schedule(ctx context.Context, id int64) (commons.Response[[]models.InstallmentResponse], error)
}
