package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/Contable-api/internal/domain/entity"
	"github.com/jhoicas/Contable-api/internal/domain/repository"
)

var _ repository.ExpenseRepository = (*ExpenseRepo)(nil)

// ExpenseRepo implementación de ExpenseRepository sobre PostgreSQL.
type ExpenseRepo struct {
	q Querier
}

// NewExpenseRepository construye el adaptador. Pasar pool o tx (Querier).
func NewExpenseRepository(q Querier) *ExpenseRepo {
	return &ExpenseRepo{q: q}
}

const expenseColumns = `id, business_id, date, category, description, amount, created_at, updated_at`

func (r *ExpenseRepo) Create(ctx context.Context, e *entity.Expense) error {
	_, err := r.q.Exec(ctx,
		`INSERT INTO expenses (`+expenseColumns+`) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		e.ID, e.BusinessID, e.Date, e.Category, e.Description, e.Amount, e.CreatedAt, e.UpdatedAt,
	)
	return insertErr(err, "expense")
}

func (r *ExpenseRepo) GetByID(ctx context.Context, businessID, id string) (*entity.Expense, error) {
	e, err := scanExpense(r.q.QueryRow(ctx,
		`SELECT `+expenseColumns+` FROM expenses WHERE id = $1 AND business_id = $2`, id, businessID))
	return noRows(e, err, "expense")
}

func (r *ExpenseRepo) Update(ctx context.Context, e *entity.Expense) error {
	tag, err := r.q.Exec(ctx,
		`UPDATE expenses SET date = $3, category = $4, description = $5, amount = $6, updated_at = $7
		 WHERE id = $1 AND business_id = $2`,
		e.ID, e.BusinessID, e.Date, e.Category, e.Description, e.Amount, e.UpdatedAt,
	)
	return affectedOne(tag, err, "update expense")
}

func (r *ExpenseRepo) ListByBusiness(ctx context.Context, businessID string, period repository.Period, page repository.Page) ([]*entity.Expense, error) {
	rows, err := r.q.Query(ctx,
		`SELECT `+expenseColumns+` FROM expenses
		 WHERE business_id = $1
		   AND ($2::timestamptz IS NULL OR date >= $2)
		   AND ($3::timestamptz IS NULL OR date <= $3)
		 ORDER BY date DESC, created_at DESC, id
		 LIMIT NULLIF($4::int, 0) OFFSET $5`,
		businessID, period.From, period.To, page.Limit, page.Offset,
	)
	if err != nil {
		return nil, fmt.Errorf("list expenses: %w", err)
	}
	defer rows.Close()
	list := make([]*entity.Expense, 0)
	for rows.Next() {
		e, err := scanExpense(rows)
		if err != nil {
			return nil, fmt.Errorf("scan expense: %w", err)
		}
		list = append(list, e)
	}
	return list, rows.Err()
}

func (r *ExpenseRepo) Delete(ctx context.Context, businessID, id string) error {
	tag, err := r.q.Exec(ctx, `DELETE FROM expenses WHERE id = $1 AND business_id = $2`, id, businessID)
	return affectedOne(tag, err, "delete expense")
}

func scanExpense(row rowScanner) (*entity.Expense, error) {
	var e entity.Expense
	err := row.Scan(&e.ID, &e.BusinessID, &e.Date, &e.Category, &e.Description, &e.Amount, &e.CreatedAt, &e.UpdatedAt)
	return &e, err
}
