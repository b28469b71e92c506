package postgres

import (
	"context"
	"database/sql"

	"github.com/api-sage/mortgage-quote-service/src/internal/domain"
)

type CustomerRepository struct {
	db *sql.DB
}

func NewCustomerRepository(db *sql.DB) *CustomerRepository {
	return &CustomerRepository{db: db}
}

const customerColumns = `id, nombre_completo, documento_identidad, email, telefono, ingreso_mensual, created_at`

func (r *CustomerRepository) Create(ctx context.Context, customer domain.Customer) (domain.Customer, error) {
	const query = `
INSERT INTO clientes (
	nombre_completo,
	documento_identidad,
	email,
	telefono,
	ingreso_mensual,
	created_at
) VALUES ($1, $2, $3, $4, $5, $6)
RETURNING ` + customerColumns

	var created domain.Customer
	if err := scanCustomer(r.db.QueryRowContext(
		ctx,
		query,
		customer.FullName,
		customer.DocumentID,
		customer.Email,
		customer.Phone,
		customer.MonthlyIncome,
		customer.CreatedAt,
	), &created); err != nil {
		return domain.Customer{}, translate("create customer", err)
	}

	return created, nil
}

func (r *CustomerRepository) GetByID(ctx context.Context, id int64) (domain.Customer, error) {
	query := `SELECT ` + customerColumns + ` FROM clientes WHERE id = $1`

	var customer domain.Customer
	if err := scanCustomer(r.db.QueryRowContext(ctx, query, id), &customer); err != nil {
		return domain.Customer{}, translate("get customer by id", err)
	}

	return customer, nil
}

func (r *CustomerRepository) GetByDocumentID(ctx context.Context, documentID string) (domain.Customer, error) {
	query := `SELECT ` + customerColumns + ` FROM clientes WHERE documento_identidad = $1`

	var customer domain.Customer
	if err := scanCustomer(r.db.QueryRowContext(ctx, query, documentID), &customer); err != nil {
		return domain.Customer{}, translate("get customer by document", err)
	}

	return customer, nil
}

func scanCustomer(row rowScanner, customer *domain.Customer) error {
	return row.Scan(
		&customer.ID,
		&customer.FullName,
		&customer.DocumentID,
		&customer.Email,
		&customer.Phone,
		&customer.MonthlyIncome,
		&customer.CreatedAt,
	)
}
