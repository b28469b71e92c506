package models

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/api-sage/mortgage-quote-service/src/internal/domain"
	"github.com/shopspring/decimal"
)

func validCustomerRequest() RegisterCustomerRequest {
	return RegisterCustomerRequest{
		DocumentoIdentidad: "45678912",
		NombreCompleto:     "Ana Torres",
		Telefono:           "987654321",
		Email:              "ana@example.com",
		IngresoMensual:     decimal.NewFromInt(5200),
	}
}

func TestRegisterCustomerRequestValidate(t *testing.T) {
	if err := validCustomerRequest().Validate(); err != nil {
		t.Fatalf("expected valid request, got %v", err)
	}

	tests := []struct {
		name   string
		mutate func(*RegisterCustomerRequest)
		want   string
	}{
		{name: "blank name", mutate: func(r *RegisterCustomerRequest) { r.NombreCompleto = "   " }, want: "El nombre no puede estar vacío"},
		{name: "short phone", mutate: func(r *RegisterCustomerRequest) { r.Telefono = "98765" }, want: "El teléfono debe tener al menos 9 dígitos"},
		{name: "long document", mutate: func(r *RegisterCustomerRequest) { r.DocumentoIdentidad = "123456789" }, want: "El documento de identidad debe tener 8 dígitos"},
		{name: "short document", mutate: func(r *RegisterCustomerRequest) { r.DocumentoIdentidad = "1234567" }, want: "El documento de identidad debe tener 8 dígitos"},
		{name: "bad email", mutate: func(r *RegisterCustomerRequest) { r.Email = "not-an-email" }, want: "El correo electrónico no es válido"},
		{name: "negative income", mutate: func(r *RegisterCustomerRequest) { r.IngresoMensual = decimal.NewFromInt(-1) }, want: "El ingreso mensual no puede ser negativo"},
		{name: "income over column range", mutate: func(r *RegisterCustomerRequest) { r.IngresoMensual = decimal.RequireFromString("1000000000.01") }, want: "El ingreso mensual no puede superar 1000000000"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			req := validCustomerRequest()
			tc.mutate(&req)

			err := req.Validate()
			if !errors.Is(err, domain.ErrValidation) {
				t.Fatalf("expected validation error, got %v", err)
			}
			if !strings.Contains(err.Error(), tc.want) {
				t.Fatalf("expected %q in %q", tc.want, err.Error())
			}
		})
	}
}

func TestRegisterCustomerRequestReportsEveryField(t *testing.T) {
	err := RegisterCustomerRequest{}.Validate()

	var validationErr *domain.ValidationError
	if !errors.As(err, &validationErr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if len(validationErr.Fields) != 3 {
		t.Fatalf("expected 3 field errors, got %v", validationErr.Fields)
	}
}

func TestRegisterCustomerRequestTrimsInput(t *testing.T) {
	req := validCustomerRequest()
	req.NombreCompleto = "  Ana Torres "
	req.DocumentoIdentidad = " 45678912 "
	req.Email = ""

	if err := req.Validate(); err != nil {
		t.Fatalf("expected valid request, got %v", err)
	}
	customer := req.ToDomain()
	if customer.FullName != "Ana Torres" || customer.DocumentID != "45678912" {
		t.Fatalf("expected trimmed values, got %q %q", customer.FullName, customer.DocumentID)
	}
}

func TestLoanApplicationRequestValidate(t *testing.T) {
	valid := LoanApplicationRequest{
		Monto:                  decimal.NewFromInt(300000),
		PlazoAnios:             20,
		PorcentajeCuotaInicial: decimal.NewFromInt(20),
		ClienteID:              1,
	}
	if err := valid.Validate(); err != nil {
		t.Fatalf("expected valid request, got %v", err)
	}

	invalid := LoanApplicationRequest{
		Monto:                  decimal.Zero,
		PlazoAnios:             0,
		PorcentajeCuotaInicial: decimal.NewFromInt(101),
	}
	err := invalid.Validate()
	var validationErr *domain.ValidationError
	if !errors.As(err, &validationErr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if len(validationErr.Fields) != 4 {
		t.Fatalf("expected 4 field errors, got %v", validationErr.Fields)
	}
}

func TestLoanApplicationRequestAmountUpperBound(t *testing.T) {
	req := LoanApplicationRequest{
		Monto:                  decimal.NewFromInt(10000000000),
		PlazoAnios:             20,
		PorcentajeCuotaInicial: decimal.NewFromInt(20),
		ClienteID:              1,
	}
	if err := req.Validate(); err != nil {
		t.Fatalf("expected the cap itself to be accepted, got %v", err)
	}

	req.Monto = decimal.RequireFromString("100000000000000")
	err := req.Validate()
	if !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if !strings.Contains(err.Error(), "El monto no puede superar 10000000000") {
		t.Fatalf("unexpected message %q", err.Error())
	}
}

func TestLoanApplicationRequestAcceptsNumericStrings(t *testing.T) {
	var req LoanApplicationRequest
	body := `{"monto":"300000.50","plazoAnios":20,"porcentajeCuotaInicial":12.5,"clienteId":3}`
	if err := json.Unmarshal([]byte(body), &req); err != nil {
		t.Fatalf("unexpected decode error: %v", err)
	}
	if !req.Monto.Equal(decimal.RequireFromString("300000.50")) {
		t.Fatalf("expected monto 300000.50, got %s", req.Monto)
	}
	if !req.PorcentajeCuotaInicial.Equal(decimal.RequireFromString("12.5")) {
		t.Fatalf("expected 12.5, got %s", req.PorcentajeCuotaInicial)
	}
}

func TestLoanApplicationResponseWireFormat(t *testing.T) {
	createdAt := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	quote := domain.Quote{
		ID:                 9,
		CustomerID:         3,
		Amount:             decimal.NewFromInt(300000),
		DownPaymentAmount:  decimal.NewFromInt(60000),
		DownPaymentPercent: decimal.NewFromInt(20),
		FinancedAmount:     decimal.NewFromInt(240000),
		TermYears:          20,
		InterestRate:       decimal.NewFromInt(8),
		TCEA:               decimal.RequireFromString("8.8391"),
		MonthlyInstallment: decimal.RequireFromString("2007.46"),
		RiskTier:           2,
		Status:             domain.LoanStatusApproved,
		CreatedAt:          createdAt,
		Customer:           &domain.Customer{ID: 3, FullName: "Ana Torres", MonthlyIncome: decimal.Zero},
	}

	raw, err := json.Marshal(NewLoanApplicationResponse(quote))
	if err != nil {
		t.Fatalf("unexpected marshal error: %v", err)
	}
	body := string(raw)

	for _, want := range []string{
		`"id":9`,
		`"monto":300000.00`,
		`"montoFinanciar":240000.00`,
		`"tasaInteres":8.0000`,
		`"tcea":8.8391`,
		`"cuotaMensual":2007.46`,
		`"estado":1`,
		`"riesgoCliente":2`,
		`"createdAt":"2026-03-01T10:00:00Z"`,
		`"cliente":{"id":3`,
	} {
		if !strings.Contains(body, want) {
			t.Fatalf("expected %s in %s", want, body)
		}
	}
	if strings.Contains(body, "motivoRechazo") {
		t.Fatalf("approved quote must not carry motivoRechazo: %s", body)
	}
}

func TestLoanApplicationResponseOmitsIDWhenNotRegistered(t *testing.T) {
	raw, err := json.Marshal(NewLoanApplicationResponse(domain.Quote{
		RejectionReason: "El perfil de riesgo del cliente no califica",
		RiskTier:        5,
		Status:          domain.LoanStatusRejected,
	}))
	if err != nil {
		t.Fatalf("unexpected marshal error: %v", err)
	}
	body := string(raw)

	if strings.Contains(body, `"id"`) || strings.Contains(body, "createdAt") {
		t.Fatalf("unregistered quote must not carry id or createdAt: %s", body)
	}
	if !strings.Contains(body, `"cuotaMensual":0.00`) || !strings.Contains(body, `"estado":2`) {
		t.Fatalf("unexpected rejected payload: %s", body)
	}
}
