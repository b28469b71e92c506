package quoting

import (
	"context"
	"errors"
	"fmt"

	"github.com/api-sage/mortgage-quote-service/src/internal/domain"
	"github.com/shopspring/decimal"
)

const (
	ReasonRiskProfile      = "El perfil de riesgo del cliente no califica para un crédito hipotecario"
	ReasonTermTooLong      = "El plazo solicitado excede el máximo de %d años"
	ReasonDownPaymentLow   = "La cuota inicial mínima es %s%% del monto"
	ReasonNothingToFinance = "El monto a financiar debe ser mayor a cero"
	ReasonNotAffordable    = "La cuota mensual excede el %s%% del ingreso mensual del cliente"
)

// Terms are the eligibility bounds applied after risk scoring.
type Terms struct {
	AnnualFeeRate         decimal.Decimal
	MaxDebtToIncome       decimal.Decimal
	MinDownPaymentPercent decimal.Decimal
	MaxRiskTier           domain.RiskTier
	MaxTermYears          int
}

func DefaultTerms() Terms {
	return Terms{
		AnnualFeeRate:         decimal.RequireFromString("0.50"),
		MaxDebtToIncome:       decimal.RequireFromString("0.40"),
		MinDownPaymentPercent: decimal.NewFromInt(10),
		MaxRiskTier:           4,
		MaxTermYears:          30,
	}
}

// Engine prices simulation requests. It holds no mutable state: the same
// request, customer and policy answer always produce the same quote.
type Engine struct {
	policy RiskPolicy
	terms  Terms
}

func NewEngine(policy RiskPolicy, terms Terms) *Engine {
	return &Engine{policy: policy, terms: terms}
}

func ValidateRequest(req domain.SimulationRequest) error {
	var errs []string

	if !req.Amount.IsPositive() {
		errs = append(errs, "El monto debe ser mayor a cero")
	}
	if req.TermYears <= 0 {
		errs = append(errs, "El plazo en años debe ser mayor a cero")
	}
	if req.DownPaymentPercent.IsNegative() || req.DownPaymentPercent.GreaterThan(hundred) {
		errs = append(errs, "El porcentaje de cuota inicial debe estar entre 0 y 100")
	}

	if len(errs) > 0 {
		return domain.NewValidationError(errs...)
	}
	return nil
}

func (e *Engine) Simulate(ctx context.Context, req domain.SimulationRequest, customer domain.Customer) (domain.Quote, error) {
	if err := ValidateRequest(req); err != nil {
		return domain.Quote{}, err
	}

	tier, err := e.policy.ScoreRisk(ctx, customer)
	if err != nil {
		if errors.Is(err, domain.ErrUnavailable) {
			return domain.Quote{}, err
		}
		return domain.Quote{}, fmt.Errorf("score risk for customer %d: %w: %v", customer.ID, domain.ErrUnavailable, err)
	}

	if tier > e.terms.MaxRiskTier {
		return rejected(req, customer, tier, ReasonRiskProfile), nil
	}
	if e.terms.MaxTermYears > 0 && req.TermYears > e.terms.MaxTermYears {
		return rejected(req, customer, tier, fmt.Sprintf(ReasonTermTooLong, e.terms.MaxTermYears)), nil
	}
	if req.DownPaymentPercent.LessThan(e.terms.MinDownPaymentPercent) {
		return rejected(req, customer, tier, fmt.Sprintf(ReasonDownPaymentLow, e.terms.MinDownPaymentPercent.String())), nil
	}

	downPayment := req.Amount.Mul(req.DownPaymentPercent).Div(hundred).Round(2)
	financed := req.Amount.Sub(downPayment)
	if !financed.IsPositive() {
		return rejected(req, customer, tier, ReasonNothingToFinance), nil
	}

	rate := e.policy.BaseRate(tier, req.TermYears)
	installment := MonthlyInstallment(financed, rate, req.TermYears*12)

	if customer.HasDeclaredIncome() {
		limit := customer.MonthlyIncome.Mul(e.terms.MaxDebtToIncome)
		if installment.GreaterThan(limit) {
			pct := e.terms.MaxDebtToIncome.Mul(hundred).String()
			return rejected(req, customer, tier, fmt.Sprintf(ReasonNotAffordable, pct)), nil
		}
	}

	return domain.Quote{
		CustomerID:         req.CustomerID,
		Amount:             req.Amount,
		DownPaymentAmount:  downPayment,
		DownPaymentPercent: req.DownPaymentPercent,
		FinancedAmount:     financed,
		TermYears:          req.TermYears,
		InterestRate:       rate,
		TCEA:               EffectiveAnnualCost(rate, e.terms.AnnualFeeRate),
		MonthlyInstallment: installment,
		RiskTier:           tier,
		Status:             domain.LoanStatusApproved,
		Customer:           customerSnapshot(customer),
	}, nil
}

func rejected(req domain.SimulationRequest, customer domain.Customer, tier domain.RiskTier, reason string) domain.Quote {
	return domain.Quote{
		CustomerID:      req.CustomerID,
		RejectionReason: reason,
		RiskTier:        tier,
		Status:          domain.LoanStatusRejected,
		Customer:        customerSnapshot(customer),
	}
}

func customerSnapshot(customer domain.Customer) *domain.Customer {
	if customer.ID == 0 {
		return nil
	}
	c := customer
	return &c
}
