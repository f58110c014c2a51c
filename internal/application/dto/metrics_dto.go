package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// MetricsSummaryDTO respuesta de GET /api/metrics/summary.
// Se recalcula en cada petición a partir de ventas, gastos y compras del período.
type MetricsSummaryDTO struct {
	From          *time.Time      `json:"from,omitempty"`
	To            *time.Time      `json:"to,omitempty"`
	Revenue       decimal.Decimal `json:"revenue"`
	Expenses      decimal.Decimal `json:"expenses"`       // gastos + compras
	ExpenseTotal  decimal.Decimal `json:"expense_total"`  // solo gastos
	PurchaseTotal decimal.Decimal `json:"purchase_total"` // solo compras
	Profit        decimal.Decimal `json:"profit"`
	Margin        decimal.Decimal `json:"margin"`         // profit / revenue
	MarginPercent decimal.Decimal `json:"margin_percent"` // margin * 100
	SalesCount    int             `json:"sales_count"`
	ExpenseCount  int             `json:"expense_count"`
	PurchaseCount int             `json:"purchase_count"`
}

// DashboardDTO respuesta de GET /api/metrics/dashboard: resumen del día y del mes en curso.
type DashboardDTO struct {
	Today MetricsSummaryDTO `json:"today"`
	Month MetricsSummaryDTO `json:"month"`
}
