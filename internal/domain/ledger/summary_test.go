package ledger_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/Contable-api/internal/domain/entity"
	"github.com/jhoicas/Contable-api/internal/domain/ledger"
)

func amount(v int64) decimal.Decimal { return decimal.NewFromInt(v) }

func TestSummarize_EscenarioGastosYCompras(t *testing.T) {
	sales := []*entity.Sale{{Amount: amount(100)}}
	expenses := []*entity.Expense{{Amount: amount(30)}, {Amount: amount(20)}}
	purchases := []*entity.Purchase{{TotalCost: amount(50)}}

	s := ledger.Summarize(sales, expenses, purchases)

	assert.True(t, s.Revenue.Equal(amount(100)))
	assert.True(t, s.Expenses.Equal(amount(100)), "gastos = 30 + 20 + 50")
	assert.True(t, s.ExpenseTotal.Equal(amount(50)))
	assert.True(t, s.PurchaseTotal.Equal(amount(50)))
	assert.True(t, s.Profit.IsZero())
	assert.True(t, s.Margin.IsZero())
	assert.True(t, s.MarginPercent.IsZero())
	assert.Equal(t, 1, s.SalesCount)
	assert.Equal(t, 2, s.ExpenseCount)
	assert.Equal(t, 1, s.PurchaseCount)
}

func TestSummarize_SinIngresosMargenCero(t *testing.T) {
	s := ledger.Summarize(nil, []*entity.Expense{{Amount: amount(75)}}, nil)

	assert.True(t, s.Revenue.IsZero())
	assert.True(t, s.Profit.Equal(amount(-75)))
	assert.True(t, s.Margin.IsZero(), "margen con ingresos 0 debe ser 0, no división por cero")
}

func TestSummarize_MargenPositivo(t *testing.T) {
	s := ledger.Summarize(
		[]*entity.Sale{{Amount: amount(150)}, {Amount: amount(50)}},
		[]*entity.Expense{{Amount: amount(50)}},
		nil,
	)
	assert.True(t, s.Profit.Equal(amount(150)))
	assert.True(t, s.Margin.Equal(decimal.RequireFromString("0.75")))
	assert.True(t, s.MarginPercent.Equal(amount(75)))
}

func TestSummarize_ColeccionesVacias(t *testing.T) {
	s := ledger.Summarize(nil, nil, nil)
	assert.True(t, s.Revenue.IsZero())
	assert.True(t, s.Expenses.IsZero())
	assert.True(t, s.Margin.IsZero())
}

func TestMargin(t *testing.T) {
	assert.True(t, ledger.Margin(amount(10), decimal.Zero).IsZero())
	assert.True(t, ledger.Margin(amount(1), amount(3)).Equal(decimal.RequireFromString("0.3333")))
}
