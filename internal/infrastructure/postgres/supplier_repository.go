package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/Contable-api/internal/domain/entity"
	"github.com/jhoicas/Contable-api/internal/domain/repository"
)

var _ repository.SupplierRepository = (*SupplierRepo)(nil)

// SupplierRepo implementación de SupplierRepository sobre PostgreSQL.
type SupplierRepo struct {
	q Querier
}

// NewSupplierRepository construye el adaptador. Pasar pool o tx (Querier).
func NewSupplierRepository(q Querier) *SupplierRepo {
	return &SupplierRepo{q: q}
}

const supplierColumns = `id, business_id, name, product_types, purchase_days, contact, created_at, updated_at`

func (r *SupplierRepo) Create(ctx context.Context, s *entity.Supplier) error {
	_, err := r.q.Exec(ctx,
		`INSERT INTO suppliers (`+supplierColumns+`) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		s.ID, s.BusinessID, s.Name, s.ProductTypes, s.PurchaseDays, s.Contact, s.CreatedAt, s.UpdatedAt,
	)
	return insertErr(err, "supplier")
}

func (r *SupplierRepo) GetByID(ctx context.Context, businessID, id string) (*entity.Supplier, error) {
	s, err := scanSupplier(r.q.QueryRow(ctx,
		`SELECT `+supplierColumns+` FROM suppliers WHERE id = $1 AND business_id = $2`, id, businessID))
	return noRows(s, err, "supplier")
}

func (r *SupplierRepo) Update(ctx context.Context, s *entity.Supplier) error {
	tag, err := r.q.Exec(ctx,
		`UPDATE suppliers SET name = $3, product_types = $4, purchase_days = $5, contact = $6, updated_at = $7
		 WHERE id = $1 AND business_id = $2`,
		s.ID, s.BusinessID, s.Name, s.ProductTypes, s.PurchaseDays, s.Contact, s.UpdatedAt,
	)
	return affectedOne(tag, err, "update supplier")
}

func (r *SupplierRepo) ListByBusiness(ctx context.Context, businessID string, page repository.Page) ([]*entity.Supplier, error) {
	rows, err := r.q.Query(ctx,
		`SELECT `+supplierColumns+` FROM suppliers WHERE business_id = $1
		 ORDER BY lower(name), id LIMIT NULLIF($2::int, 0) OFFSET $3`,
		businessID, page.Limit, page.Offset,
	)
	if err != nil {
		return nil, fmt.Errorf("list suppliers: %w", err)
	}
	defer rows.Close()
	list := make([]*entity.Supplier, 0)
	for rows.Next() {
		s, err := scanSupplier(rows)
		if err != nil {
			return nil, fmt.Errorf("scan supplier: %w", err)
		}
		list = append(list, s)
	}
	return list, rows.Err()
}

// Delete elimina el proveedor. La FK ON DELETE RESTRICT de purchases devuelve ErrConflict.
func (r *SupplierRepo) Delete(ctx context.Context, businessID, id string) error {
	tag, err := r.q.Exec(ctx, `DELETE FROM suppliers WHERE id = $1 AND business_id = $2`, id, businessID)
	return affectedOne(tag, err, "delete supplier")
}

func scanSupplier(row rowScanner) (*entity.Supplier, error) {
	var s entity.Supplier
	err := row.Scan(&s.ID, &s.BusinessID, &s.Name, &s.ProductTypes, &s.PurchaseDays, &s.Contact, &s.CreatedAt, &s.UpdatedAt)
	return &s, err
}
