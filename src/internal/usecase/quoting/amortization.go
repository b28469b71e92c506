package quoting

import (
	"math"

	"github.com/api-sage/mortgage-quote-service/src/internal/domain"
	"github.com/shopspring/decimal"
)

var (
	hundred = decimal.NewFromInt(100)
	twelve  = decimal.NewFromInt(12)
)

// MonthlyRate converts an annual nominal percentage into the periodic rate
// used by the French amortization formula.
func MonthlyRate(annualRatePercent decimal.Decimal) decimal.Decimal {
	return annualRatePercent.Div(hundred).Div(twelve)
}

// MonthlyInstallment returns principal * r / (1 - (1+r)^-n) rounded to
// cents, or principal / n when r is zero.
func MonthlyInstallment(principal, annualRatePercent decimal.Decimal, months int) decimal.Decimal {
	if months <= 0 || !principal.IsPositive() {
		return decimal.Zero
	}

	r := MonthlyRate(annualRatePercent)
	if r.IsZero() {
		return principal.Div(decimal.NewFromInt(int64(months))).Round(2)
	}

	rf := r.InexactFloat64()
	factor := rf / (1 - math.Pow(1+rf, -float64(months)))

	return principal.Mul(decimal.NewFromFloat(factor)).Round(2)
}

// EffectiveAnnualCost grosses the nominal rate up with the annual fee and
// insurance points and compounds it monthly. The result is never below
// the nominal rate.
func EffectiveAnnualCost(annualRatePercent, annualFeePercent decimal.Decimal) decimal.Decimal {
	if annualFeePercent.IsNegative() {
		annualFeePercent = decimal.Zero
	}

	periodic := annualRatePercent.Add(annualFeePercent).Div(hundred).Div(twelve).InexactFloat64()
	effective := (math.Pow(1+periodic, 12) - 1) * 100

	tcea := decimal.NewFromFloat(effective).Round(4)
	if tcea.LessThan(annualRatePercent) {
		return annualRatePercent
	}
	return tcea
}

// Schedule builds the French amortization table. The last row absorbs
// rounding so the balance ends at exactly zero.
func Schedule(principal, annualRatePercent decimal.Decimal, months int) []domain.Installment {
	if months <= 0 || !principal.IsPositive() {
		return nil
	}

	payment := MonthlyInstallment(principal, annualRatePercent, months)
	r := MonthlyRate(annualRatePercent)
	balance := principal

	rows := make([]domain.Installment, 0, months)
	for i := 1; i <= months; i++ {
		interest := balance.Mul(r).Round(2)
		principalPart := payment.Sub(interest)
		rowPayment := payment

		if i == months || principalPart.GreaterThan(balance) {
			principalPart = balance
			rowPayment = principalPart.Add(interest)
		}

		balance = balance.Sub(principalPart)
		rows = append(rows, domain.Installment{
			Number:    i,
			Payment:   rowPayment,
			Interest:  interest,
			Principal: principalPart,
			Balance:   balance,
		})

		if balance.IsZero() {
			break
		}
	}

	return rows
}
