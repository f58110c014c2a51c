package dto

import "time"

// CreateSupplierRequest entrada para crear un proveedor.
type CreateSupplierRequest struct {
	Name         string `json:"name" validate:"required,min=1,max=200"`
	ProductTypes string `json:"product_types" validate:"max=500"`
	PurchaseDays string `json:"purchase_days" validate:"max=200"`
	Contact      string `json:"contact" validate:"max=200"`
}

// UpdateSupplierRequest actualización parcial de un proveedor.
type UpdateSupplierRequest struct {
	Name         *string `json:"name" validate:"omitempty,min=1,max=200"`
	ProductTypes *string `json:"product_types" validate:"omitempty,max=500"`
	PurchaseDays *string `json:"purchase_days" validate:"omitempty,max=200"`
	Contact      *string `json:"contact" validate:"omitempty,max=200"`
}

// SupplierResponse salida de un proveedor.
type SupplierResponse struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	ProductTypes string    `json:"product_types"`
	PurchaseDays string    `json:"purchase_days"`
	Contact      string    `json:"contact"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// SupplierListResponse lista paginada de proveedores.
type SupplierListResponse struct {
	Items []SupplierResponse `json:"items"`
	Page  PageResponse       `json:"page"`
}
