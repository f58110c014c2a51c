package repository

import (
	"context"

	"github.com/jhoicas/Contable-api/internal/domain/entity"
)

// ExpenseRepository define el puerto de persistencia para Expense.
type ExpenseRepository interface {
	Create(ctx context.Context, expense *entity.Expense) error
	GetByID(ctx context.Context, businessID, id string) (*entity.Expense, error)
	Update(ctx context.Context, expense *entity.Expense) error
	ListByBusiness(ctx context.Context, businessID string, period Period, page Page) ([]*entity.Expense, error)
	Delete(ctx context.Context, businessID, id string) error
}
