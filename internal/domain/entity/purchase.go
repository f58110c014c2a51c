package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Purchase representa una compra a un proveedor. ProductID queda resuelto incluso para
// compras ad-hoc (que crean el producto); es nil solo si el producto fue borrado después.
type Purchase struct {
	ID          string
	BusinessID  string
	Date        time.Time
	SupplierID  string
	ProductID   *string
	ProductName string
	Quantity    decimal.Decimal
	TotalCost   decimal.Decimal
	CostPerUnit decimal.Decimal // TotalCost / Quantity de esta compra
	CreatedAt   time.Time
}
