package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product representa un producto del catálogo del negocio.
// Quantity solo cambia por compras, ventas, borrado de ventas/compras o edición directa.
type Product struct {
	ID            string
	BusinessID    string
	Name          string
	PurchasePrice decimal.Decimal // base de costo total en la última compra (CostPerUnit * Quantity)
	SellingPrice  decimal.Decimal // precio de venta unitario
	Quantity      decimal.Decimal // stock disponible, nunca negativo
	CostPerUnit   decimal.Decimal // costo promedio ponderado
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// UnitProfit devuelve la ganancia por unidad (precio de venta - costo unitario).
func (p *Product) UnitProfit() decimal.Decimal {
	return p.SellingPrice.Sub(p.CostPerUnit)
}
