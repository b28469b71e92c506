package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/api-sage/mortgage-quote-service/src/internal/domain"
)

type LoanApplicationRepository struct {
	db *sql.DB
}

func NewLoanApplicationRepository(db *sql.DB) *LoanApplicationRepository {
	return &LoanApplicationRepository{db: db}
}

const loanApplicationColumns = `id, cliente_id, monto, monto_cuota_inicial, porcentaje_cuota_inicial, monto_financiar,
	plazo_anios, tasa_interes, tcea, cuota_mensual, riesgo_cliente, estado, idempotency_key, fingerprint, created_at`

func (r *LoanApplicationRepository) Create(ctx context.Context, quote domain.Quote) (domain.Quote, error) {
	const query = `
INSERT INTO solicitudes_prestamo (
	cliente_id,
	monto,
	monto_cuota_inicial,
	porcentaje_cuota_inicial,
	monto_financiar,
	plazo_anios,
	tasa_interes,
	tcea,
	cuota_mensual,
	riesgo_cliente,
	estado,
	idempotency_key,
	fingerprint,
	created_at
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
RETURNING ` + loanApplicationColumns

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return domain.Quote{}, fmt.Errorf("begin create loan application tx: %w", err)
	}

	var created domain.Quote
	if err := scanLoanApplication(tx.QueryRowContext(
		ctx,
		query,
		quote.CustomerID,
		quote.Amount,
		quote.DownPaymentAmount,
		quote.DownPaymentPercent,
		quote.FinancedAmount,
		quote.TermYears,
		quote.InterestRate,
		quote.TCEA,
		quote.MonthlyInstallment,
		int(quote.RiskTier),
		int(quote.Status),
		quote.IdempotencyKey,
		quote.Fingerprint,
		quote.CreatedAt,
	), &created); err != nil {
		_ = tx.Rollback()
		return domain.Quote{}, translate("create loan application", err)
	}

	if err := tx.Commit(); err != nil {
		return domain.Quote{}, translate("commit loan application", err)
	}

	return created, nil
}

func (r *LoanApplicationRepository) GetByID(ctx context.Context, id int64) (domain.Quote, error) {
	query := `SELECT ` + loanApplicationColumns + ` FROM solicitudes_prestamo WHERE id = $1`

	var quote domain.Quote
	if err := scanLoanApplication(r.db.QueryRowContext(ctx, query, id), &quote); err != nil {
		return domain.Quote{}, translate("get loan application by id", err)
	}

	return quote, nil
}

func (r *LoanApplicationRepository) GetByIdempotencyKey(ctx context.Context, key string) (domain.Quote, error) {
	query := `SELECT ` + loanApplicationColumns + ` FROM solicitudes_prestamo WHERE idempotency_key = $1`

	var quote domain.Quote
	if err := scanLoanApplication(r.db.QueryRowContext(ctx, query, key), &quote); err != nil {
		return domain.Quote{}, translate("get loan application by idempotency key", err)
	}

	return quote, nil
}

func (r *LoanApplicationRepository) ListByCustomerID(ctx context.Context, customerID int64) ([]domain.Quote, error) {
	query := `SELECT ` + loanApplicationColumns + ` FROM solicitudes_prestamo WHERE cliente_id = $1 ORDER BY id DESC`

	rows, err := r.db.QueryContext(ctx, query, customerID)
	if err != nil {
		return nil, translate("list loan applications", err)
	}
	defer rows.Close()

	quotes := make([]domain.Quote, 0)
	for rows.Next() {
		var quote domain.Quote
		if err := scanLoanApplication(rows, &quote); err != nil {
			return nil, translate("scan loan application", err)
		}
		quotes = append(quotes, quote)
	}
	if err := rows.Err(); err != nil {
		return nil, translate("iterate loan applications", err)
	}

	return quotes, nil
}

func scanLoanApplication(row rowScanner, quote *domain.Quote) error {
	var (
		riskTier       int
		status         int
		idempotencyKey sql.NullString
	)

	if err := row.Scan(
		&quote.ID,
		&quote.CustomerID,
		&quote.Amount,
		&quote.DownPaymentAmount,
		&quote.DownPaymentPercent,
		&quote.FinancedAmount,
		&quote.TermYears,
		&quote.InterestRate,
		&quote.TCEA,
		&quote.MonthlyInstallment,
		&riskTier,
		&status,
		&idempotencyKey,
		&quote.Fingerprint,
		&quote.CreatedAt,
	); err != nil {
		return err
	}

	quote.RiskTier = domain.RiskTier(riskTier)
	quote.Status = domain.LoanStatus(status)
	if idempotencyKey.Valid {
		key := idempotencyKey.String
		quote.IdempotencyKey = &key
	}

	return nil
}
