package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type LoanStatus int

const (
	LoanStatusApproved LoanStatus = 1
	LoanStatusRejected LoanStatus = 2
)

// Approved treats every code other than 1 as a rejection.
func (s LoanStatus) Approved() bool {
	return s == LoanStatusApproved
}

// RiskTier is ordinal: 1 is the best profile, higher is riskier.
type RiskTier int

const (
	RiskTierMin RiskTier = 1
	RiskTierMax RiskTier = 5
)

type SimulationRequest struct {
	Amount             decimal.Decimal
	TermYears          int
	DownPaymentPercent decimal.Decimal
	CustomerID         int64
}

// Quote is the outcome of a simulation. A registered quote is a loan
// application and carries ID and CreatedAt.
type Quote struct {
	ID                 int64
	CustomerID         int64
	Amount             decimal.Decimal
	DownPaymentAmount  decimal.Decimal
	DownPaymentPercent decimal.Decimal
	FinancedAmount     decimal.Decimal
	TermYears          int
	InterestRate       decimal.Decimal
	TCEA               decimal.Decimal
	MonthlyInstallment decimal.Decimal
	RejectionReason    string
	RiskTier           RiskTier
	Status             LoanStatus
	IdempotencyKey     *string
	Fingerprint        string
	CreatedAt          time.Time
	Customer           *Customer
}

func (q Quote) Registered() bool {
	return q.ID != 0
}

type Installment struct {
	Number    int
	Payment   decimal.Decimal
	Interest  decimal.Decimal
	Principal decimal.Decimal
	Balance   decimal.Decimal
}
