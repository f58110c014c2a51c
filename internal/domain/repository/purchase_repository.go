package repository

import (
	"context"

	"github.com/jhoicas/Contable-api/internal/domain/entity"
)

// PurchaseRepository define el puerto de persistencia para Purchase.
type PurchaseRepository interface {
	Create(ctx context.Context, purchase *entity.Purchase) error
	GetByID(ctx context.Context, businessID, id string) (*entity.Purchase, error)
	GetForUpdate(ctx context.Context, businessID, id string) (*entity.Purchase, error)
	ListByBusiness(ctx context.Context, businessID string, period Period, page Page) ([]*entity.Purchase, error)
	CountBySupplier(ctx context.Context, businessID, supplierID string) (int, error)
	Delete(ctx context.Context, businessID, id string) error
}
