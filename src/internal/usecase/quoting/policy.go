package quoting

import (
	"context"

	"github.com/api-sage/mortgage-quote-service/src/internal/domain"
	"github.com/shopspring/decimal"
)

// RiskPolicy scores customers and prices tiers. The engine depends only on
// this interface so decision logic can be tested against any policy.
type RiskPolicy interface {
	ScoreRisk(ctx context.Context, customer domain.Customer) (domain.RiskTier, error)
	BaseRate(tier domain.RiskTier, termYears int) decimal.Decimal
}

type incomeBand struct {
	minIncome decimal.Decimal
	tier      domain.RiskTier
}

var incomeBands = []incomeBand{
	{minIncome: decimal.NewFromInt(10000), tier: 1},
	{minIncome: decimal.NewFromInt(6000), tier: 2},
	{minIncome: decimal.NewFromInt(3000), tier: 3},
	{minIncome: decimal.NewFromInt(1500), tier: 4},
}

const unverifiedIncomeTier domain.RiskTier = 3

var tierSpreads = map[domain.RiskTier]decimal.Decimal{
	1: decimal.Zero,
	2: decimal.RequireFromString("0.50"),
	3: decimal.RequireFromString("1.00"),
	4: decimal.RequireFromString("2.00"),
	5: decimal.RequireFromString("3.50"),
}

const termSpreadFromYears = 5

var termSpreadPerYear = decimal.RequireFromString("0.05")

// IncomeRiskPolicy derives the tier from declared monthly income. It stands
// in for a credit bureau integration.
type IncomeRiskPolicy struct {
	baseRate decimal.Decimal
}

func NewIncomeRiskPolicy(baseRate decimal.Decimal) *IncomeRiskPolicy {
	return &IncomeRiskPolicy{baseRate: baseRate}
}

func (p *IncomeRiskPolicy) ScoreRisk(_ context.Context, customer domain.Customer) (domain.RiskTier, error) {
	if !customer.HasDeclaredIncome() {
		return unverifiedIncomeTier, nil
	}

	for _, band := range incomeBands {
		if customer.MonthlyIncome.GreaterThanOrEqual(band.minIncome) {
			return band.tier, nil
		}
	}

	return domain.RiskTierMax, nil
}

func (p *IncomeRiskPolicy) BaseRate(tier domain.RiskTier, termYears int) decimal.Decimal {
	if tier < domain.RiskTierMin {
		tier = domain.RiskTierMin
	}
	if tier > domain.RiskTierMax {
		tier = domain.RiskTierMax
	}

	rate := p.baseRate.Add(tierSpreads[tier])
	if termYears > termSpreadFromYears {
		rate = rate.Add(termSpreadPerYear.Mul(decimal.NewFromInt(int64(termYears - termSpreadFromYears))))
	}

	return rate.Round(4)
}
