package postgres

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Contable-api/internal/domain/entity"
	"github.com/jhoicas/Contable-api/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

// ProductRepo implementación del puerto ProductRepository sobre PostgreSQL (usable con pool o tx).
type ProductRepo struct {
	q Querier
}

// NewProductRepository construye el adaptador de persistencia para productos. Pasar pool o tx (Querier).
func NewProductRepository(q Querier) *ProductRepo {
	return &ProductRepo{q: q}
}

const productColumns = `id, business_id, name, purchase_price, selling_price, quantity, cost_per_unit, created_at, updated_at`

// Create persiste un nuevo producto.
func (r *ProductRepo) Create(ctx context.Context, p *entity.Product) error {
	_, err := r.q.Exec(ctx,
		`INSERT INTO products (`+productColumns+`) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		p.ID, p.BusinessID, p.Name, p.PurchasePrice, p.SellingPrice, p.Quantity, p.CostPerUnit, p.CreatedAt, p.UpdatedAt,
	)
	return insertErr(err, "product")
}

// GetByID obtiene un producto del negocio.
func (r *ProductRepo) GetByID(ctx context.Context, businessID, id string) (*entity.Product, error) {
	p, err := scanProduct(r.q.QueryRow(ctx,
		`SELECT `+productColumns+` FROM products WHERE id = $1 AND business_id = $2`, id, businessID))
	return noRows(p, err, "product")
}

// GetForUpdate obtiene el producto y bloquea la fila (SELECT FOR UPDATE) hasta el fin de la tx.
func (r *ProductRepo) GetForUpdate(ctx context.Context, businessID, id string) (*entity.Product, error) {
	p, err := scanProduct(r.q.QueryRow(ctx,
		`SELECT `+productColumns+` FROM products WHERE id = $1 AND business_id = $2 FOR UPDATE`, id, businessID))
	return noRows(p, err, "product for update")
}

// Update modifica nombre, precio de venta y cantidad (edición directa).
func (r *ProductRepo) Update(ctx context.Context, p *entity.Product) error {
	tag, err := r.q.Exec(ctx,
		`UPDATE products SET name = $3, selling_price = $4, quantity = $5, updated_at = $6
		 WHERE id = $1 AND business_id = $2`,
		p.ID, p.BusinessID, p.Name, p.SellingPrice, p.Quantity, p.UpdatedAt,
	)
	return affectedOne(tag, err, "update product")
}

// UpdateStock fija la cantidad. El CHECK quantity >= 0 devuelve ErrNegativeStock.
func (r *ProductRepo) UpdateStock(ctx context.Context, id string, quantity decimal.Decimal) error {
	tag, err := r.q.Exec(ctx, `UPDATE products SET quantity = $2, updated_at = now() WHERE id = $1`, id, quantity)
	return affectedOne(tag, err, "update product stock")
}

// UpdateCost actualiza costo unitario y base de costo (tras una compra).
func (r *ProductRepo) UpdateCost(ctx context.Context, id string, costPerUnit, purchasePrice decimal.Decimal) error {
	tag, err := r.q.Exec(ctx,
		`UPDATE products SET cost_per_unit = $2, purchase_price = $3, updated_at = now() WHERE id = $1`,
		id, costPerUnit, purchasePrice,
	)
	return affectedOne(tag, err, "update product cost")
}

// ListByBusiness lista productos por nombre. Limit 0 = todos.
func (r *ProductRepo) ListByBusiness(ctx context.Context, businessID string, page repository.Page) ([]*entity.Product, error) {
	rows, err := r.q.Query(ctx,
		`SELECT `+productColumns+` FROM products WHERE business_id = $1
		 ORDER BY lower(name), id LIMIT NULLIF($2::int, 0) OFFSET $3`,
		businessID, page.Limit, page.Offset,
	)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()
	list := make([]*entity.Product, 0)
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		list = append(list, p)
	}
	return list, rows.Err()
}

// Delete elimina un producto. Las FKs de sales/purchases son ON DELETE SET NULL.
func (r *ProductRepo) Delete(ctx context.Context, businessID, id string) error {
	tag, err := r.q.Exec(ctx, `DELETE FROM products WHERE id = $1 AND business_id = $2`, id, businessID)
	return affectedOne(tag, err, "delete product")
}

func scanProduct(row rowScanner) (*entity.Product, error) {
	var p entity.Product
	err := row.Scan(&p.ID, &p.BusinessID, &p.Name, &p.PurchasePrice, &p.SellingPrice, &p.Quantity, &p.CostPerUnit, &p.CreatedAt, &p.UpdatedAt)
	return &p, err
}
