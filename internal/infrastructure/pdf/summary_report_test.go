package pdf

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Contable-api/internal/application/ports"
	"github.com/jhoicas/Contable-api/internal/domain/entity"
	"github.com/jhoicas/Contable-api/internal/domain/ledger"
)

func TestRenderSummary(t *testing.T) {
	day := time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC)
	sales := []*entity.Sale{{Date: day, ProductName: "Pan", Quantity: decimal.NewFromInt(2), Amount: decimal.NewFromInt(100)}}
	expenses := []*entity.Expense{{Date: day, Category: "Arriendo", Amount: decimal.NewFromInt(30)}}
	purchases := []*entity.Purchase{{Date: day, ProductName: "Harina", Quantity: decimal.NewFromInt(5), TotalCost: decimal.NewFromInt(50)}}

	report := ports.SummaryReport{
		BusinessName: "Panadería",
		From:         &day,
		GeneratedAt:  day,
		Summary:      ledger.Summarize(sales, expenses, purchases),
		Entries:      []entity.ExpenseEntry{entity.NewExpenseEntry(expenses[0]), entity.NewPurchaseEntry(purchases[0])},
		Sales:        sales,
	}

	out, err := NewSummaryRenderer().RenderSummary(context.Background(), report)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF")))
}

func TestRenderSummary_Empty(t *testing.T) {
	out, err := NewSummaryRenderer().RenderSummary(context.Background(), ports.SummaryReport{BusinessName: "Vacío", GeneratedAt: time.Now()})
	require.NoError(t, err)
	assert.NotEmpty(t, out)
}

func TestMoney(t *testing.T) {
	g := NewSummaryRenderer()
	assert.Contains(t, g.money(decimal.RequireFromString("1234.5")), "234,50")
	assert.Equal(t, "$0,00", g.money(decimal.Zero))
}

func TestPeriodLabel(t *testing.T) {
	a := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	b := time.Date(2026, 1, 31, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, "todo el historial", periodLabel(nil, nil))
	assert.Equal(t, "01/01/2026 - 31/01/2026", periodLabel(&a, &b))
	assert.Equal(t, "desde 01/01/2026", periodLabel(&a, nil))
	assert.Equal(t, "hasta 31/01/2026", periodLabel(nil, &b))
}
