package quoting_test

import (
	"testing"

	"github.com/api-sage/mortgage-quote-service/src/internal/usecase/quoting"
	"github.com/shopspring/decimal"
)

func TestMonthlyInstallmentZeroRate(t *testing.T) {
	got := quoting.MonthlyInstallment(dec("1200"), decimal.Zero, 12)
	if !got.Equal(dec("100")) {
		t.Fatalf("expected 100, got %s", got)
	}
}

func TestMonthlyInstallmentKnownValues(t *testing.T) {
	tests := []struct {
		principal string
		rate      string
		months    int
		want      string
	}{
		{principal: "240000", rate: "8", months: 240, want: "2007.46"},
		{principal: "10000", rate: "12", months: 24, want: "470.73"},
		{principal: "100000", rate: "6", months: 360, want: "599.55"},
	}

	for _, tc := range tests {
		got := quoting.MonthlyInstallment(dec(tc.principal), dec(tc.rate), tc.months)
		if !got.Equal(dec(tc.want)) {
			t.Fatalf("principal %s rate %s months %d: expected %s, got %s", tc.principal, tc.rate, tc.months, tc.want, got)
		}
	}
}

func TestMonthlyInstallmentDegenerateInputs(t *testing.T) {
	if got := quoting.MonthlyInstallment(dec("1000"), dec("8"), 0); !got.IsZero() {
		t.Fatalf("expected zero for no months, got %s", got)
	}
	if got := quoting.MonthlyInstallment(decimal.Zero, dec("8"), 12); !got.IsZero() {
		t.Fatalf("expected zero for no principal, got %s", got)
	}
}

func TestEffectiveAnnualCost(t *testing.T) {
	got := quoting.EffectiveAnnualCost(dec("8"), dec("0.5"))
	// (1 + 0.085/12)^12 - 1 = 8.8391%
	if got.Sub(dec("8.8391")).Abs().GreaterThan(dec("0.0001")) {
		t.Fatalf("expected about 8.8391, got %s", got)
	}

	noFee := quoting.EffectiveAnnualCost(dec("8"), decimal.Zero)
	if noFee.LessThan(dec("8")) {
		t.Fatalf("expected tcea >= rate without fees, got %s", noFee)
	}

	zero := quoting.EffectiveAnnualCost(decimal.Zero, decimal.Zero)
	if !zero.IsZero() {
		t.Fatalf("expected zero tcea for zero rate and fee, got %s", zero)
	}
}

func TestScheduleAmortizesToZero(t *testing.T) {
	principal := dec("240000")
	rows := quoting.Schedule(principal, dec("8"), 240)
	if len(rows) != 240 {
		t.Fatalf("expected 240 rows, got %d", len(rows))
	}

	sum := decimal.Zero
	for i, row := range rows {
		if row.Number != i+1 {
			t.Fatalf("expected row number %d, got %d", i+1, row.Number)
		}
		if !row.Interest.Add(row.Principal).Equal(row.Payment) {
			t.Fatalf("row %d: interest + principal != payment", row.Number)
		}
		sum = sum.Add(row.Principal)
	}

	if !rows[len(rows)-1].Balance.IsZero() {
		t.Fatalf("expected final balance zero, got %s", rows[len(rows)-1].Balance)
	}
	if !sum.Equal(principal) {
		t.Fatalf("expected principal parts to add up to %s, got %s", principal, sum)
	}
	if !rows[0].Payment.Equal(dec("2007.46")) {
		t.Fatalf("expected first payment 2007.46, got %s", rows[0].Payment)
	}
}

func TestScheduleEmptyForInvalidInput(t *testing.T) {
	if rows := quoting.Schedule(decimal.Zero, dec("8"), 12); rows != nil {
		t.Fatalf("expected nil schedule, got %d rows", len(rows))
	}
}
