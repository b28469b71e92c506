package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/api-sage/mortgage-quote-service/src/internal/domain"
)

type CustomerRepository struct {
	mu         sync.RWMutex
	nextID     int64
	byID       map[int64]domain.Customer
	byDocument map[string]int64
}

func NewCustomerRepository() *CustomerRepository {
	return &CustomerRepository{
		byID:       make(map[int64]domain.Customer),
		byDocument: make(map[string]int64),
	}
}

func (r *CustomerRepository) Create(_ context.Context, customer domain.Customer) (domain.Customer, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byDocument[customer.DocumentID]; exists {
		return domain.Customer{}, fmt.Errorf("insert customer: document %w", domain.ErrConflict)
	}

	r.nextID++
	customer.ID = r.nextID
	r.byID[customer.ID] = customer
	r.byDocument[customer.DocumentID] = customer.ID

	return customer, nil
}

func (r *CustomerRepository) GetByID(_ context.Context, id int64) (domain.Customer, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	customer, ok := r.byID[id]
	if !ok {
		return domain.Customer{}, domain.ErrRecordNotFound
	}
	return customer, nil
}

func (r *CustomerRepository) GetByDocumentID(_ context.Context, documentID string) (domain.Customer, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	id, ok := r.byDocument[documentID]
	if !ok {
		return domain.Customer{}, domain.ErrRecordNotFound
	}
	return r.byID[id], nil
}
