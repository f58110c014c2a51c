// Package ledger contiene la aritmética pura del libro: ingresos, gastos, utilidad y margen.
package ledger

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Contable-api/internal/domain/entity"
)

var hundred = decimal.NewFromInt(100)

// Summary métricas derivadas de un período. Se recalcula en cada petición.
type Summary struct {
	Revenue       decimal.Decimal // suma de montos de ventas
	Expenses      decimal.Decimal // gastos + costo total de compras
	ExpenseTotal  decimal.Decimal // solo gastos
	PurchaseTotal decimal.Decimal // solo compras
	Profit        decimal.Decimal // Revenue - Expenses
	Margin        decimal.Decimal // Profit / Revenue; 0 si Revenue == 0
	MarginPercent decimal.Decimal // Margin * 100, redondeado a 2 decimales
	SalesCount    int
	ExpenseCount  int
	PurchaseCount int
}

// Summarize agrega ventas, gastos y compras. Las compras cuentan como gastos.
func Summarize(sales []*entity.Sale, expenses []*entity.Expense, purchases []*entity.Purchase) Summary {
	s := Summary{
		Revenue:       decimal.Zero,
		ExpenseTotal:  decimal.Zero,
		PurchaseTotal: decimal.Zero,
		SalesCount:    len(sales),
		ExpenseCount:  len(expenses),
		PurchaseCount: len(purchases),
	}
	for _, sale := range sales {
		if sale != nil {
			s.Revenue = s.Revenue.Add(sale.Amount)
		}
	}
	for _, e := range expenses {
		if e != nil {
			s.ExpenseTotal = s.ExpenseTotal.Add(e.Amount)
		}
	}
	for _, p := range purchases {
		if p != nil {
			s.PurchaseTotal = s.PurchaseTotal.Add(p.TotalCost)
		}
	}
	s.Expenses = s.ExpenseTotal.Add(s.PurchaseTotal)
	s.Profit = s.Revenue.Sub(s.Expenses)
	s.Margin = Margin(s.Profit, s.Revenue)
	s.MarginPercent = s.Margin.Mul(hundred).Round(2)
	return s
}

// Margin devuelve profit/revenue, definido como 0 cuando revenue es 0.
func Margin(profit, revenue decimal.Decimal) decimal.Decimal {
	if revenue.IsZero() {
		return decimal.Zero
	}
	return profit.DivRound(revenue, 4)
}
