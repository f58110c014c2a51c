package repository

import (
	"context"

	"github.com/jhoicas/Contable-api/internal/domain/entity"
)

// BusinessRepository define el puerto de persistencia para Business (DIP).
type BusinessRepository interface {
	Create(ctx context.Context, business *entity.Business) error
	GetByID(ctx context.Context, id string) (*entity.Business, error)
}
