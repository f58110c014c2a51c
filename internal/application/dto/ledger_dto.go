package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// RecordSaleRequest entrada de POST /api/sales.
// Sin product_id la venta es ad-hoc: product_name y unit_price (o amount) son obligatorios.
type RecordSaleRequest struct {
	ProductID   *string          `json:"product_id" validate:"omitempty,uuid"`
	ProductName string           `json:"product_name" validate:"required_without=ProductID,max=200"`
	Quantity    decimal.Decimal  `json:"quantity" validate:"gt=0,decimals=4"`
	UnitPrice   *decimal.Decimal `json:"unit_price" validate:"omitempty,gte=0,decimals=2"`
	Amount      *decimal.Decimal `json:"amount" validate:"omitempty,gte=0,decimals=2"`
	Date        *time.Time       `json:"date"`
}

// DeleteSaleRequest cuerpo opcional de DELETE /api/sales/:id con los datos capturados al vender.
type DeleteSaleRequest struct {
	ProductID *string          `json:"product_id" validate:"omitempty,uuid"`
	Quantity  *decimal.Decimal `json:"quantity" validate:"omitempty,gt=0,decimals=4"`
}

// SaleResponse salida de una venta.
type SaleResponse struct {
	ID          string          `json:"id"`
	Date        time.Time       `json:"date"`
	ProductID   *string         `json:"product_id"`
	ProductName string          `json:"product_name"`
	Quantity    decimal.Decimal `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	Amount      decimal.Decimal `json:"amount"`
	CreatedAt   time.Time       `json:"created_at"`
}

// SaleListResponse lista paginada de ventas.
type SaleListResponse struct {
	Items []SaleResponse `json:"items"`
	Page  PageResponse   `json:"page"`
}

// NewProductRequest producto creado por una compra ad-hoc.
type NewProductRequest struct {
	Name         string          `json:"name" validate:"required,min=1,max=200"`
	SellingPrice decimal.Decimal `json:"selling_price" validate:"gte=0,decimals=2"`
}

// RecordPurchaseRequest entrada de POST /api/purchases.
type RecordPurchaseRequest struct {
	SupplierID string             `json:"supplier_id" validate:"required,uuid"`
	ProductID  *string            `json:"product_id" validate:"omitempty,uuid"`
	NewProduct *NewProductRequest `json:"new_product" validate:"omitempty"`
	Quantity   decimal.Decimal    `json:"quantity" validate:"gt=0,decimals=4"`
	TotalCost  decimal.Decimal    `json:"total_cost" validate:"gt=0,decimals=2"`
	Date       *time.Time         `json:"date"`
}

// DeletePurchaseRequest cuerpo opcional de DELETE /api/purchases/:id.
type DeletePurchaseRequest struct {
	ProductID *string          `json:"product_id" validate:"omitempty,uuid"`
	Quantity  *decimal.Decimal `json:"quantity" validate:"omitempty,gt=0,decimals=4"`
}

// PurchaseResponse salida de una compra.
type PurchaseResponse struct {
	ID          string          `json:"id"`
	Date        time.Time       `json:"date"`
	SupplierID  string          `json:"supplier_id"`
	ProductID   *string         `json:"product_id"`
	ProductName string          `json:"product_name"`
	Quantity    decimal.Decimal `json:"quantity"`
	TotalCost   decimal.Decimal `json:"total_cost"`
	CostPerUnit decimal.Decimal `json:"cost_per_unit"`
	CreatedAt   time.Time       `json:"created_at"`
}

// PurchaseListResponse lista paginada de compras.
type PurchaseListResponse struct {
	Items []PurchaseResponse `json:"items"`
	Page  PageResponse       `json:"page"`
}
