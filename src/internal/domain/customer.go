package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

const DocumentIDLength = 8
const MinPhoneLength = 9

type Customer struct {
	ID            int64
	FullName      string
	DocumentID    string
	Email         string
	Phone         string
	MonthlyIncome decimal.Decimal
	CreatedAt     time.Time
}

// HasDeclaredIncome reports whether the customer supplied a monthly income.
func (c Customer) HasDeclaredIncome() bool {
	return c.MonthlyIncome.GreaterThan(decimal.Zero)
}
