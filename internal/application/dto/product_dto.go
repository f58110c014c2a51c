package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateProductRequest entrada para crear un producto (stock inicial 0; el stock entra por compras).
type CreateProductRequest struct {
	Name         string          `json:"name" validate:"required,min=1,max=200"`
	SellingPrice decimal.Decimal `json:"selling_price" validate:"gte=0,decimals=2"`
}

// UpdateProductRequest edición directa de un producto. Quantity queda como ajuste manual.
type UpdateProductRequest struct {
	Name         *string          `json:"name" validate:"omitempty,min=1,max=200"`
	SellingPrice *decimal.Decimal `json:"selling_price" validate:"omitempty,gte=0,decimals=2"`
	Quantity     *decimal.Decimal `json:"quantity" validate:"omitempty,gte=0,decimals=4"`
}

// ProductResponse salida de un producto.
type ProductResponse struct {
	ID            string          `json:"id"`
	BusinessID    string          `json:"business_id"`
	Name          string          `json:"name"`
	PurchasePrice decimal.Decimal `json:"purchase_price"`
	SellingPrice  decimal.Decimal `json:"selling_price"`
	Quantity      decimal.Decimal `json:"quantity"`
	CostPerUnit   decimal.Decimal `json:"cost_per_unit"`
	UnitProfit    decimal.Decimal `json:"unit_profit"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

// ProductListResponse lista paginada de productos.
type ProductListResponse struct {
	Items []ProductResponse `json:"items"`
	Page  PageResponse      `json:"page"`
}
