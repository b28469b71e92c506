package service_interfaces

import (
	"context"

	"github.com/api-sage/mortgage-quote-service/src/internal/adapter/http/models"
	"github.com/api-sage/mortgage-quote-service/src/internal/commons"
)

type CustomerService interface {
	Register(ctx context.Context, req models.RegisterCustomerRequest) (commons.Response[models.CustomerResponse], error)
	Get(ctx context.Context, id int64) (commons.Response[models.CustomerResponse], error)
}
