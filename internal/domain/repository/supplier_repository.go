package repository

import (
	"context"

	"github.com/jhoicas/Contable-api/internal/domain/entity"
)

// SupplierRepository define el puerto de persistencia para Supplier.
type SupplierRepository interface {
	Create(ctx context.Context, supplier *entity.Supplier) error
	GetByID(ctx context.Context, businessID, id string) (*entity.Supplier, error)
	Update(ctx context.Context, supplier *entity.Supplier) error
	ListByBusiness(ctx context.Context, businessID string, page Page) ([]*entity.Supplier, error)
	Delete(ctx context.Context, businessID, id string) error
}
