package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Expense representa un gasto operativo (arriendo, servicios, nómina...). No afecta stock.
type Expense struct {
	ID          string
	BusinessID  string
	Date        time.Time
	Category    string
	Description string
	Amount      decimal.Decimal
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Tipos de ExpenseEntry.
const (
	EntryKindExpense  = "expense"
	EntryKindPurchase = "purchase"
)

// ExpenseEntry es la unión etiquetada que se muestra en la vista de gastos:
// exactamente uno de Expense o Purchase está definido según Kind.
type ExpenseEntry struct {
	Kind     string
	Expense  *Expense
	Purchase *Purchase
}

// NewExpenseEntry envuelve un gasto.
func NewExpenseEntry(e *Expense) ExpenseEntry {
	return ExpenseEntry{Kind: EntryKindExpense, Expense: e}
}

// NewPurchaseEntry envuelve una compra presentada como gasto.
func NewPurchaseEntry(p *Purchase) ExpenseEntry {
	return ExpenseEntry{Kind: EntryKindPurchase, Purchase: p}
}

// Date devuelve la fecha del registro envuelto.
func (e ExpenseEntry) Date() time.Time {
	if e.Kind == EntryKindPurchase && e.Purchase != nil {
		return e.Purchase.Date
	}
	if e.Expense != nil {
		return e.Expense.Date
	}
	return time.Time{}
}

// Amount devuelve el monto (para compras, el costo total).
func (e ExpenseEntry) Amount() decimal.Decimal {
	if e.Kind == EntryKindPurchase && e.Purchase != nil {
		return e.Purchase.TotalCost
	}
	if e.Expense != nil {
		return e.Expense.Amount
	}
	return decimal.Zero
}

// Deletable indica si la entrada se puede borrar desde la vista de gastos.
// Las compras se borran únicamente por el flujo de compras (revierte stock).
func (e ExpenseEntry) Deletable() bool {
	return e.Kind == EntryKindExpense
}
