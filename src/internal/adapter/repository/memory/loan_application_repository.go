package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/api-sage/mortgage-quote-service/src/internal/domain"
)

type LoanApplicationRepository struct {
	mu       sync.RWMutex
	nextID   int64
	byID     map[int64]domain.Quote
	byKey    map[string]int64
	customer map[int64][]int64
}

func NewLoanApplicationRepository() *LoanApplicationRepository {
	return &LoanApplicationRepository{
		byID:     make(map[int64]domain.Quote),
		byKey:    make(map[string]int64),
		customer: make(map[int64][]int64),
	}
}

func (r *LoanApplicationRepository) Create(_ context.Context, quote domain.Quote) (domain.Quote, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if quote.IdempotencyKey != nil {
		if _, exists := r.byKey[*quote.IdempotencyKey]; exists {
			return domain.Quote{}, fmt.Errorf("insert loan application: idempotency key %w", domain.ErrConflict)
		}
	}

	r.nextID++
	quote.ID = r.nextID
	quote.Customer = nil
	r.byID[quote.ID] = quote
	r.customer[quote.CustomerID] = append(r.customer[quote.CustomerID], quote.ID)
	if quote.IdempotencyKey != nil {
		r.byKey[*quote.IdempotencyKey] = quote.ID
	}

	return quote, nil
}

func (r *LoanApplicationRepository) GetByID(_ context.Context, id int64) (domain.Quote, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	quote, ok := r.byID[id]
	if !ok {
		return domain.Quote{}, domain.ErrRecordNotFound
	}
	return quote, nil
}

func (r *LoanApplicationRepository) GetByIdempotencyKey(_ context.Context, key string) (domain.Quote, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	id, ok := r.byKey[key]
	if !ok {
		return domain.Quote{}, domain.ErrRecordNotFound
	}
	return r.byID[id], nil
}

// ListByCustomerID returns the newest application first.
func (r *LoanApplicationRepository) ListByCustomerID(_ context.Context, customerID int64) ([]domain.Quote, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	ids := r.customer[customerID]
	quotes := make([]domain.Quote, 0, len(ids))
	for _, id := range ids {
		quotes = append(quotes, r.byID[id])
	}
	sort.Slice(quotes, func(i, j int) bool {
		return quotes[i].ID > quotes[j].ID
	})

	return quotes, nil
}

func (r *LoanApplicationRepository) Ping(context.Context) error {
	return nil
}
