package entity

import "time"

// Supplier representa un proveedor. ProductTypes y PurchaseDays son texto libre
// (ej. "lácteos, huevos" y "lunes y jueves").
type Supplier struct {
	ID           string
	BusinessID   string
	Name         string
	ProductTypes string
	PurchaseDays string
	Contact      string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
