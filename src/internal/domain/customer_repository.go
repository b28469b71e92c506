package domain

import "context"

type CustomerRepository interface {
	Create(ctx context.Context, customer Customer) (Customer, error)
	GetByID(ctx context.Context, id int64) (Customer, error)
	GetByDocumentID(ctx context.Context, documentID string) (Customer, error)
}
