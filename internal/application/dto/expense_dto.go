package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateExpenseRequest entrada para registrar un gasto.
type CreateExpenseRequest struct {
	Date        *time.Time      `json:"date"`
	Category    string          `json:"category" validate:"required,min=1,max=100"`
	Description string          `json:"description" validate:"max=500"`
	Amount      decimal.Decimal `json:"amount" validate:"gt=0,decimals=2"`
}

// UpdateExpenseRequest actualización parcial de un gasto.
type UpdateExpenseRequest struct {
	Date        *time.Time       `json:"date"`
	Category    *string          `json:"category" validate:"omitempty,min=1,max=100"`
	Description *string          `json:"description" validate:"omitempty,max=500"`
	Amount      *decimal.Decimal `json:"amount" validate:"omitempty,gt=0,decimals=2"`
}

// ExpenseResponse salida de un gasto.
type ExpenseResponse struct {
	ID          string          `json:"id"`
	Date        time.Time       `json:"date"`
	Category    string          `json:"category"`
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// ExpenseListResponse lista paginada de gastos.
type ExpenseListResponse struct {
	Items []ExpenseResponse `json:"items"`
	Page  PageResponse      `json:"page"`
}

// ExpenseEntryResponse unión etiquetada para la vista de gastos:
// kind = "expense" trae expense; kind = "purchase" trae purchase.
type ExpenseEntryResponse struct {
	Kind      string            `json:"kind"`
	Date      time.Time         `json:"date"`
	Amount    decimal.Decimal   `json:"amount"`
	Deletable bool              `json:"deletable"`
	Expense   *ExpenseResponse  `json:"expense,omitempty"`
	Purchase  *PurchaseResponse `json:"purchase,omitempty"`
}
