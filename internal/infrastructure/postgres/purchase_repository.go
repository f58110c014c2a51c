package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/Contable-api/internal/domain/entity"
	"github.com/jhoicas/Contable-api/internal/domain/repository"
)

var _ repository.PurchaseRepository = (*PurchaseRepo)(nil)

// PurchaseRepo implementación de PurchaseRepository sobre PostgreSQL (usable con pool o tx).
type PurchaseRepo struct {
	q Querier
}

// NewPurchaseRepository construye el adaptador. Pasar pool o tx (Querier).
func NewPurchaseRepository(q Querier) *PurchaseRepo {
	return &PurchaseRepo{q: q}
}

const purchaseColumns = `id, business_id, date, supplier_id, product_id, product_name, quantity, total_cost, cost_per_unit, created_at`

// Create inserta la compra. FK de proveedor inexistente -> ErrNotFound.
func (r *PurchaseRepo) Create(ctx context.Context, p *entity.Purchase) error {
	_, err := r.q.Exec(ctx,
		`INSERT INTO purchases (`+purchaseColumns+`) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		p.ID, p.BusinessID, p.Date, p.SupplierID, p.ProductID, p.ProductName, p.Quantity, p.TotalCost, p.CostPerUnit, p.CreatedAt,
	)
	return insertErr(err, "purchase")
}

// GetByID obtiene una compra del negocio.
func (r *PurchaseRepo) GetByID(ctx context.Context, businessID, id string) (*entity.Purchase, error) {
	p, err := scanPurchase(r.q.QueryRow(ctx,
		`SELECT `+purchaseColumns+` FROM purchases WHERE id = $1 AND business_id = $2`, id, businessID))
	return noRows(p, err, "purchase")
}

// GetForUpdate bloquea la fila de la compra.
func (r *PurchaseRepo) GetForUpdate(ctx context.Context, businessID, id string) (*entity.Purchase, error) {
	p, err := scanPurchase(r.q.QueryRow(ctx,
		`SELECT `+purchaseColumns+` FROM purchases WHERE id = $1 AND business_id = $2 FOR UPDATE`, id, businessID))
	return noRows(p, err, "purchase for update")
}

// ListByBusiness lista compras del período, más recientes primero.
func (r *PurchaseRepo) ListByBusiness(ctx context.Context, businessID string, period repository.Period, page repository.Page) ([]*entity.Purchase, error) {
	rows, err := r.q.Query(ctx,
		`SELECT `+purchaseColumns+` FROM purchases
		 WHERE business_id = $1
		   AND ($2::timestamptz IS NULL OR date >= $2)
		   AND ($3::timestamptz IS NULL OR date <= $3)
		 ORDER BY date DESC, created_at DESC, id
		 LIMIT NULLIF($4::int, 0) OFFSET $5`,
		businessID, period.From, period.To, page.Limit, page.Offset,
	)
	if err != nil {
		return nil, fmt.Errorf("list purchases: %w", err)
	}
	defer rows.Close()
	list := make([]*entity.Purchase, 0)
	for rows.Next() {
		p, err := scanPurchase(rows)
		if err != nil {
			return nil, fmt.Errorf("scan purchase: %w", err)
		}
		list = append(list, p)
	}
	return list, rows.Err()
}

// CountBySupplier cuenta compras que referencian al proveedor.
func (r *PurchaseRepo) CountBySupplier(ctx context.Context, businessID, supplierID string) (int, error) {
	var n int
	err := r.q.QueryRow(ctx,
		`SELECT count(*) FROM purchases WHERE business_id = $1 AND supplier_id = $2`, businessID, supplierID,
	).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count purchases by supplier: %w", err)
	}
	return n, nil
}

// Delete elimina la compra.
func (r *PurchaseRepo) Delete(ctx context.Context, businessID, id string) error {
	tag, err := r.q.Exec(ctx, `DELETE FROM purchases WHERE id = $1 AND business_id = $2`, id, businessID)
	return affectedOne(tag, err, "delete purchase")
}

func scanPurchase(row rowScanner) (*entity.Purchase, error) {
	var p entity.Purchase
	err := row.Scan(&p.ID, &p.BusinessID, &p.Date, &p.SupplierID, &p.ProductID, &p.ProductName, &p.Quantity, &p.TotalCost, &p.CostPerUnit, &p.CreatedAt)
	return &p, err
}
