package repository

import (
	"context"

	"github.com/jhoicas/Contable-api/internal/domain/entity"
)

// SaleRepository define el puerto de persistencia para Sale.
type SaleRepository interface {
	Create(ctx context.Context, sale *entity.Sale) error
	GetByID(ctx context.Context, businessID, id string) (*entity.Sale, error)
	GetForUpdate(ctx context.Context, businessID, id string) (*entity.Sale, error)
	// ListByBusiness ordena por fecha descendente.
	ListByBusiness(ctx context.Context, businessID string, period Period, page Page) ([]*entity.Sale, error)
	Delete(ctx context.Context, businessID, id string) error
}
