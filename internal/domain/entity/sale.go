package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Sale representa una venta. ProductID nil = venta ad-hoc (sin efecto en stock).
// Es inmutable: solo se puede borrar, y el borrado devuelve las unidades al stock.
type Sale struct {
	ID          string
	BusinessID  string
	Date        time.Time
	ProductID   *string
	ProductName string // copia del nombre al momento de la venta, o texto libre si es ad-hoc
	Quantity    decimal.Decimal
	UnitPrice   decimal.Decimal
	Amount      decimal.Decimal
	CreatedAt   time.Time
}

// AffectsStock indica si la venta movió stock de un producto del catálogo.
func (s *Sale) AffectsStock() bool {
	return s.ProductID != nil && *s.ProductID != ""
}
