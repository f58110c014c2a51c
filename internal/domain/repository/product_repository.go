package repository

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Contable-api/internal/domain/entity"
)

// ProductRepository define el puerto de persistencia para Product (DIP).
// Todas las lecturas se filtran por businessID; GetByID devuelve (nil, nil) si no existe.
type ProductRepository interface {
	Create(ctx context.Context, product *entity.Product) error
	GetByID(ctx context.Context, businessID, id string) (*entity.Product, error)
	// GetForUpdate bloquea la fila del producto (SELECT FOR UPDATE) dentro de la transacción.
	GetForUpdate(ctx context.Context, businessID, id string) (*entity.Product, error)
	// Update modifica nombre, precio de venta y cantidad (edición directa).
	Update(ctx context.Context, product *entity.Product) error
	UpdateStock(ctx context.Context, id string, quantity decimal.Decimal) error
	UpdateCost(ctx context.Context, id string, costPerUnit, purchasePrice decimal.Decimal) error
	ListByBusiness(ctx context.Context, businessID string, page Page) ([]*entity.Product, error)
	Delete(ctx context.Context, businessID, id string) error
}
