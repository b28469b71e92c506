package models

import (
	"encoding/json"
	"time"

	"github.com/api-sage/mortgage-quote-service/src/internal/domain"
	"github.com/shopspring/decimal"
)

type LoanApplicationRequest struct {
	Monto                  decimal.Decimal `json:"monto" validate:"gt=0,lte=10000000000"`
	PlazoAnios             int             `json:"plazoAnios" validate:"gt=0"`
	PorcentajeCuotaInicial decimal.Decimal `json:"porcentajeCuotaInicial" validate:"gte=0,lte=100"`
	ClienteID              int64           `json:"clienteId" validate:"gt=0"`
}

var loanApplicationMessages = map[string]string{
	"monto.gt":                   "El monto debe ser mayor a cero",
	"monto.lte":                  "El monto no puede superar 10000000000",
	"plazoAnios.gt":              "El plazo en años debe ser mayor a cero",
	"porcentajeCuotaInicial.gte": "El porcentaje de cuota inicial debe estar entre 0 y 100",
	"porcentajeCuotaInicial.lte": "El porcentaje de cuota inicial debe estar entre 0 y 100",
	"clienteId.gt":               "El cliente es obligatorio",
}

func (r LoanApplicationRequest) Validate() error {
	return validateStruct(r, loanApplicationMessages)
}

func (r LoanApplicationRequest) ToDomain() domain.SimulationRequest {
	return domain.SimulationRequest{
		Amount:             r.Monto,
		TermYears:          r.PlazoAnios,
		DownPaymentPercent: r.PorcentajeCuotaInicial,
		CustomerID:         r.ClienteID,
	}
}

// LoanApplicationResponse is returned bare by simulate and register, the
// client reads it without the response envelope.
type LoanApplicationResponse struct {
	ID                     *int64            `json:"id,omitempty"`
	Monto                  json.Number       `json:"monto"`
	MontoCuotaInicial      json.Number       `json:"montoCuotaInicial"`
	PorcentajeCuotaInicial json.Number       `json:"porcentajeCuotaInicial"`
	MontoFinanciar         json.Number       `json:"montoFinanciar"`
	PlazoAnios             int               `json:"plazoAnios"`
	TasaInteres            json.Number       `json:"tasaInteres"`
	TCEA                   json.Number       `json:"tcea"`
	CuotaMensual           json.Number       `json:"cuotaMensual"`
	MotivoRechazo          string            `json:"motivoRechazo,omitempty"`
	RiesgoCliente          int               `json:"riesgoCliente"`
	Estado                 int               `json:"estado"`
	CreatedAt              string            `json:"createdAt,omitempty"`
	Cliente                *CustomerResponse `json:"cliente,omitempty"`
}

func NewLoanApplicationResponse(q domain.Quote) LoanApplicationResponse {
	resp := LoanApplicationResponse{
		Monto:                  money(q.Amount),
		MontoCuotaInicial:      money(q.DownPaymentAmount),
		PorcentajeCuotaInicial: money(q.DownPaymentPercent),
		MontoFinanciar:         money(q.FinancedAmount),
		PlazoAnios:             q.TermYears,
		TasaInteres:            rate(q.InterestRate),
		TCEA:                   rate(q.TCEA),
		CuotaMensual:           money(q.MonthlyInstallment),
		MotivoRechazo:          q.RejectionReason,
		RiesgoCliente:          int(q.RiskTier),
		Estado:                 int(q.Status),
	}
	if q.Registered() {
		id := q.ID
		resp.ID = &id
		resp.CreatedAt = q.CreatedAt.UTC().Format(time.RFC3339)
	}
	if q.Customer != nil {
		c := NewCustomerResponse(*q.Customer)
		resp.Cliente = &c
	}
	return resp
}

func NewLoanApplicationResponses(quotes []domain.Quote) []LoanApplicationResponse {
	resp := make([]LoanApplicationResponse, 0, len(quotes))
	for _, q := range quotes {
		resp = append(resp, NewLoanApplicationResponse(q))
	}
	return resp
}

type InstallmentResponse struct {
	Numero       int         `json:"numero"`
	Cuota        json.Number `json:"cuota"`
	Interes      json.Number `json:"interes"`
	Amortizacion json.Number `json:"amortizacion"`
	Saldo        json.Number `json:"saldo"`
}

func NewInstallmentResponses(rows []domain.Installment) []InstallmentResponse {
	resp := make([]InstallmentResponse, 0, len(rows))
	for _, row := range rows {
		resp = append(resp, InstallmentResponse{
			Numero:       row.Number,
			Cuota:        money(row.Payment),
			Interes:      money(row.Interest),
			Amortizacion: money(row.Principal),
			Saldo:        money(row.Balance),
		})
	}
	return resp
}

func money(d decimal.Decimal) json.Number {
	return json.Number(d.StringFixed(2))
}

func rate(d decimal.Decimal) json.Number {
	return json.Number(d.StringFixed(4))
}
