package domain

import "context"

type LoanApplicationRepository interface {
	Create(ctx context.Context, quote Quote) (Quote, error)
	GetByID(ctx context.Context, id int64) (Quote, error)
	GetByIdempotencyKey(ctx context.Context, key string) (Quote, error)
	ListByCustomerID(ctx context.Context, customerID int64) ([]Quote, error)
}
