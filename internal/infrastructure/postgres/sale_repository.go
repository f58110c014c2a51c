package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/Contable-api/internal/domain/entity"
	"github.com/jhoicas/Contable-api/internal/domain/repository"
)

var _ repository.SaleRepository = (*SaleRepo)(nil)

// SaleRepo implementación de SaleRepository sobre PostgreSQL (usable con pool o tx).
type SaleRepo struct {
	q Querier
}

// NewSaleRepository construye el adaptador. Pasar pool o tx (Querier).
func NewSaleRepository(q Querier) *SaleRepo {
	return &SaleRepo{q: q}
}

const saleColumns = `id, business_id, date, product_id, product_name, quantity, unit_price, amount, created_at`

// Create inserta la venta.
func (r *SaleRepo) Create(ctx context.Context, s *entity.Sale) error {
	_, err := r.q.Exec(ctx,
		`INSERT INTO sales (`+saleColumns+`) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		s.ID, s.BusinessID, s.Date, s.ProductID, s.ProductName, s.Quantity, s.UnitPrice, s.Amount, s.CreatedAt,
	)
	return insertErr(err, "sale")
}

// GetByID obtiene una venta del negocio.
func (r *SaleRepo) GetByID(ctx context.Context, businessID, id string) (*entity.Sale, error) {
	s, err := scanSale(r.q.QueryRow(ctx,
		`SELECT `+saleColumns+` FROM sales WHERE id = $1 AND business_id = $2`, id, businessID))
	return noRows(s, err, "sale")
}

// GetForUpdate bloquea la fila de la venta (evita dos borrados concurrentes de la misma venta).
func (r *SaleRepo) GetForUpdate(ctx context.Context, businessID, id string) (*entity.Sale, error) {
	s, err := scanSale(r.q.QueryRow(ctx,
		`SELECT `+saleColumns+` FROM sales WHERE id = $1 AND business_id = $2 FOR UPDATE`, id, businessID))
	return noRows(s, err, "sale for update")
}

// ListByBusiness lista ventas del período, más recientes primero.
func (r *SaleRepo) ListByBusiness(ctx context.Context, businessID string, period repository.Period, page repository.Page) ([]*entity.Sale, error) {
	rows, err := r.q.Query(ctx,
		`SELECT `+saleColumns+` FROM sales
		 WHERE business_id = $1
		   AND ($2::timestamptz IS NULL OR date >= $2)
		   AND ($3::timestamptz IS NULL OR date <= $3)
		 ORDER BY date DESC, created_at DESC, id
		 LIMIT NULLIF($4::int, 0) OFFSET $5`,
		businessID, period.From, period.To, page.Limit, page.Offset,
	)
	if err != nil {
		return nil, fmt.Errorf("list sales: %w", err)
	}
	defer rows.Close()
	list := make([]*entity.Sale, 0)
	for rows.Next() {
		s, err := scanSale(rows)
		if err != nil {
			return nil, fmt.Errorf("scan sale: %w", err)
		}
		list = append(list, s)
	}
	return list, rows.Err()
}

// Delete elimina la venta.
func (r *SaleRepo) Delete(ctx context.Context, businessID, id string) error {
	tag, err := r.q.Exec(ctx, `DELETE FROM sales WHERE id = $1 AND business_id = $2`, id, businessID)
	return affectedOne(tag, err, "delete sale")
}

func scanSale(row rowScanner) (*entity.Sale, error) {
	var s entity.Sale
	err := row.Scan(&s.ID, &s.BusinessID, &s.Date, &s.ProductID, &s.ProductName, &s.Quantity, &s.UnitPrice, &s.Amount, &s.CreatedAt)
	return &s, err
}
