package memory

import (
	"cmp"
	"context"
	"slices"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Contable-api/internal/domain"
	"github.com/jhoicas/Contable-api/internal/domain/entity"
	"github.com/jhoicas/Contable-api/internal/domain/repository"
)

var (
	_ repository.BusinessRepository = (*BusinessRepository)(nil)
	_ repository.UserRepository     = (*UserRepository)(nil)
	_ repository.ProductRepository  = (*ProductRepository)(nil)
	_ repository.SaleRepository     = (*SaleRepository)(nil)
	_ repository.PurchaseRepository = (*PurchaseRepository)(nil)
	_ repository.ExpenseRepository  = (*ExpenseRepository)(nil)
	_ repository.SupplierRepository = (*SupplierRepository)(nil)
)

// ── Business ──────────────────────────────────────────────────────────────────

// BusinessRepository implementa repository.BusinessRepository.
type BusinessRepository struct{ base }

func (r *BusinessRepository) Create(ctx context.Context, b *entity.Business) error {
	return r.write(ctx, func(d *data) error {
		if _, ok := d.businesses[b.ID]; ok {
			return domain.ErrDuplicate
		}
		d.businesses[b.ID] = *b
		return nil
	})
}

func (r *BusinessRepository) GetByID(ctx context.Context, id string) (*entity.Business, error) {
	var out *entity.Business
	err := r.read(ctx, func(d *data) error {
		if b, ok := d.businesses[id]; ok {
			out = &b
		}
		return nil
	})
	return out, err
}

// ── User ──────────────────────────────────────────────────────────────────────

// UserRepository implementa repository.UserRepository. El email es único (sin distinguir mayúsculas).
type UserRepository struct{ base }

func (r *UserRepository) Create(ctx context.Context, u *entity.User) error {
	return r.write(ctx, func(d *data) error {
		for _, existing := range d.users {
			if strings.EqualFold(existing.Email, u.Email) {
				return domain.ErrEmailAlreadyExists
			}
		}
		if _, ok := d.businesses[u.BusinessID]; !ok {
			return domain.ErrNotFound
		}
		d.users[u.ID] = *u
		return nil
	})
}

func (r *UserRepository) GetByID(ctx context.Context, id string) (*entity.User, error) {
	var out *entity.User
	err := r.read(ctx, func(d *data) error {
		if u, ok := d.users[id]; ok {
			out = &u
		}
		return nil
	})
	return out, err
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	var out *entity.User
	err := r.read(ctx, func(d *data) error {
		for _, u := range d.users {
			if strings.EqualFold(u.Email, email) {
				u := u
				out = &u
				return nil
			}
		}
		return nil
	})
	return out, err
}

// ── Product ───────────────────────────────────────────────────────────────────

// ProductRepository implementa repository.ProductRepository.
type ProductRepository struct{ base }

func (r *ProductRepository) Create(ctx context.Context, p *entity.Product) error {
	return r.write(ctx, func(d *data) error {
		if _, ok := d.products[p.ID]; ok {
			return domain.ErrDuplicate
		}
		if p.Quantity.IsNegative() {
			return domain.ErrNegativeStock
		}
		d.products[p.ID] = *p
		return nil
	})
}

func (r *ProductRepository) GetByID(ctx context.Context, businessID, id string) (*entity.Product, error) {
	var out *entity.Product
	err := r.read(ctx, func(d *data) error {
		if p, ok := d.products[id]; ok && p.BusinessID == businessID {
			out = &p
		}
		return nil
	})
	return out, err
}

// GetForUpdate equivale a GetByID: dentro de Run el mutex del store ya serializa el acceso.
func (r *ProductRepository) GetForUpdate(ctx context.Context, businessID, id string) (*entity.Product, error) {
	return r.GetByID(ctx, businessID, id)
}

func (r *ProductRepository) Update(ctx context.Context, p *entity.Product) error {
	return r.write(ctx, func(d *data) error {
		cur, ok := d.products[p.ID]
		if !ok || cur.BusinessID != p.BusinessID {
			return domain.ErrNotFound
		}
		if p.Quantity.IsNegative() {
			return domain.ErrNegativeStock
		}
		cur.Name = p.Name
		cur.SellingPrice = p.SellingPrice
		cur.Quantity = p.Quantity
		cur.UpdatedAt = p.UpdatedAt
		d.products[p.ID] = cur
		return nil
	})
}

func (r *ProductRepository) UpdateStock(ctx context.Context, id string, quantity decimal.Decimal) error {
	return r.write(ctx, func(d *data) error {
		cur, ok := d.products[id]
		if !ok {
			return domain.ErrNotFound
		}
		if quantity.IsNegative() {
			return domain.ErrNegativeStock
		}
		cur.Quantity = quantity
		cur.UpdatedAt = time.Now().UTC()
		d.products[id] = cur
		return nil
	})
}

func (r *ProductRepository) UpdateCost(ctx context.Context, id string, costPerUnit, purchasePrice decimal.Decimal) error {
	return r.write(ctx, func(d *data) error {
		cur, ok := d.products[id]
		if !ok {
			return domain.ErrNotFound
		}
		cur.CostPerUnit = costPerUnit
		cur.PurchasePrice = purchasePrice
		cur.UpdatedAt = time.Now().UTC()
		d.products[id] = cur
		return nil
	})
}

func (r *ProductRepository) ListByBusiness(ctx context.Context, businessID string, page repository.Page) ([]*entity.Product, error) {
	var out []*entity.Product
	err := r.read(ctx, func(d *data) error {
		list := make([]entity.Product, 0)
		for _, p := range d.products {
			if p.BusinessID == businessID {
				list = append(list, p)
			}
		}
		slices.SortFunc(list, func(a, b entity.Product) int {
			return cmp.Or(cmp.Compare(strings.ToLower(a.Name), strings.ToLower(b.Name)), cmp.Compare(a.ID, b.ID))
		})
		for _, p := range paginate(list, page) {
			p := p
			out = append(out, &p)
		}
		return nil
	})
	return out, err
}

// Delete borra el producto; ventas y compras que lo referencian quedan con ProductID nil
// (equivalente a ON DELETE SET NULL).
func (r *ProductRepository) Delete(ctx context.Context, businessID, id string) error {
	return r.write(ctx, func(d *data) error {
		p, ok := d.products[id]
		if !ok || p.BusinessID != businessID {
			return domain.ErrNotFound
		}
		delete(d.products, id)
		for k, s := range d.sales {
			if s.ProductID != nil && *s.ProductID == id {
				s.ProductID = nil
				d.sales[k] = s
			}
		}
		for k, pu := range d.purchases {
			if pu.ProductID != nil && *pu.ProductID == id {
				pu.ProductID = nil
				d.purchases[k] = pu
			}
		}
		return nil
	})
}

// ── Sale ──────────────────────────────────────────────────────────────────────

// SaleRepository implementa repository.SaleRepository.
type SaleRepository struct{ base }

func (r *SaleRepository) Create(ctx context.Context, s *entity.Sale) error {
	return r.write(ctx, func(d *data) error {
		if _, ok := d.sales[s.ID]; ok {
			return domain.ErrDuplicate
		}
		d.sales[s.ID] = copySale(*s)
		return nil
	})
}

func (r *SaleRepository) GetByID(ctx context.Context, businessID, id string) (*entity.Sale, error) {
	var out *entity.Sale
	err := r.read(ctx, func(d *data) error {
		if s, ok := d.sales[id]; ok && s.BusinessID == businessID {
			c := copySale(s)
			out = &c
		}
		return nil
	})
	return out, err
}

func (r *SaleRepository) GetForUpdate(ctx context.Context, businessID, id string) (*entity.Sale, error) {
	return r.GetByID(ctx, businessID, id)
}

func (r *SaleRepository) ListByBusiness(ctx context.Context, businessID string, period repository.Period, page repository.Page) ([]*entity.Sale, error) {
	var out []*entity.Sale
	err := r.read(ctx, func(d *data) error {
		list := make([]entity.Sale, 0)
		for _, s := range d.sales {
			if s.BusinessID == businessID && period.Contains(s.Date) {
				list = append(list, copySale(s))
			}
		}
		slices.SortFunc(list, func(a, b entity.Sale) int {
			return byDateDesc(a.Date, b.Date, a.CreatedAt, b.CreatedAt, a.ID, b.ID)
		})
		for _, s := range paginate(list, page) {
			s := s
			out = append(out, &s)
		}
		return nil
	})
	return out, err
}

func (r *SaleRepository) Delete(ctx context.Context, businessID, id string) error {
	return r.write(ctx, func(d *data) error {
		s, ok := d.sales[id]
		if !ok || s.BusinessID != businessID {
			return domain.ErrNotFound
		}
		delete(d.sales, id)
		return nil
	})
}

// ── Purchase ──────────────────────────────────────────────────────────────────

// PurchaseRepository implementa repository.PurchaseRepository.
type PurchaseRepository struct{ base }

func (r *PurchaseRepository) Create(ctx context.Context, p *entity.Purchase) error {
	return r.write(ctx, func(d *data) error {
		if _, ok := d.purchases[p.ID]; ok {
			return domain.ErrDuplicate
		}
		if s, ok := d.suppliers[p.SupplierID]; !ok || s.BusinessID != p.BusinessID {
			return domain.ErrNotFound
		}
		d.purchases[p.ID] = copyPurchase(*p)
		return nil
	})
}

func (r *PurchaseRepository) GetByID(ctx context.Context, businessID, id string) (*entity.Purchase, error) {
	var out *entity.Purchase
	err := r.read(ctx, func(d *data) error {
		if p, ok := d.purchases[id]; ok && p.BusinessID == businessID {
			c := copyPurchase(p)
			out = &c
		}
		return nil
	})
	return out, err
}

func (r *PurchaseRepository) GetForUpdate(ctx context.Context, businessID, id string) (*entity.Purchase, error) {
	return r.GetByID(ctx, businessID, id)
}

func (r *PurchaseRepository) ListByBusiness(ctx context.Context, businessID string, period repository.Period, page repository.Page) ([]*entity.Purchase, error) {
	var out []*entity.Purchase
	err := r.read(ctx, func(d *data) error {
		list := make([]entity.Purchase, 0)
		for _, p := range d.purchases {
			if p.BusinessID == businessID && period.Contains(p.Date) {
				list = append(list, copyPurchase(p))
			}
		}
		slices.SortFunc(list, func(a, b entity.Purchase) int {
			return byDateDesc(a.Date, b.Date, a.CreatedAt, b.CreatedAt, a.ID, b.ID)
		})
		for _, p := range paginate(list, page) {
			p := p
			out = append(out, &p)
		}
		return nil
	})
	return out, err
}

func (r *PurchaseRepository) CountBySupplier(ctx context.Context, businessID, supplierID string) (int, error) {
	n := 0
	err := r.read(ctx, func(d *data) error {
		for _, p := range d.purchases {
			if p.BusinessID == businessID && p.SupplierID == supplierID {
				n++
			}
		}
		return nil
	})
	return n, err
}

func (r *PurchaseRepository) Delete(ctx context.Context, businessID, id string) error {
	return r.write(ctx, func(d *data) error {
		p, ok := d.purchases[id]
		if !ok || p.BusinessID != businessID {
			return domain.ErrNotFound
		}
		delete(d.purchases, id)
		return nil
	})
}

// ── Expense ───────────────────────────────────────────────────────────────────

// ExpenseRepository implementa repository.ExpenseRepository.
type ExpenseRepository struct{ base }

func (r *ExpenseRepository) Create(ctx context.Context, e *entity.Expense) error {
	return r.write(ctx, func(d *data) error {
		if _, ok := d.expenses[e.ID]; ok {
			return domain.ErrDuplicate
		}
		d.expenses[e.ID] = *e
		return nil
	})
}

func (r *ExpenseRepository) GetByID(ctx context.Context, businessID, id string) (*entity.Expense, error) {
	var out *entity.Expense
	err := r.read(ctx, func(d *data) error {
		if e, ok := d.expenses[id]; ok && e.BusinessID == businessID {
			out = &e
		}
		return nil
	})
	return out, err
}

func (r *ExpenseRepository) Update(ctx context.Context, e *entity.Expense) error {
	return r.write(ctx, func(d *data) error {
		cur, ok := d.expenses[e.ID]
		if !ok || cur.BusinessID != e.BusinessID {
			return domain.ErrNotFound
		}
		d.expenses[e.ID] = *e
		return nil
	})
}

func (r *ExpenseRepository) ListByBusiness(ctx context.Context, businessID string, period repository.Period, page repository.Page) ([]*entity.Expense, error) {
	var out []*entity.Expense
	err := r.read(ctx, func(d *data) error {
		list := make([]entity.Expense, 0)
		for _, e := range d.expenses {
			if e.BusinessID == businessID && period.Contains(e.Date) {
				list = append(list, e)
			}
		}
		slices.SortFunc(list, func(a, b entity.Expense) int {
			return byDateDesc(a.Date, b.Date, a.CreatedAt, b.CreatedAt, a.ID, b.ID)
		})
		for _, e := range paginate(list, page) {
			e := e
			out = append(out, &e)
		}
		return nil
	})
	return out, err
}

func (r *ExpenseRepository) Delete(ctx context.Context, businessID, id string) error {
	return r.write(ctx, func(d *data) error {
		e, ok := d.expenses[id]
		if !ok || e.BusinessID != businessID {
			return domain.ErrNotFound
		}
		delete(d.expenses, id)
		return nil
	})
}

// ── Supplier ──────────────────────────────────────────────────────────────────

// SupplierRepository implementa repository.SupplierRepository.
type SupplierRepository struct{ base }

func (r *SupplierRepository) Create(ctx context.Context, s *entity.Supplier) error {
	return r.write(ctx, func(d *data) error {
		if _, ok := d.suppliers[s.ID]; ok {
			return domain.ErrDuplicate
		}
		d.suppliers[s.ID] = *s
		return nil
	})
}

func (r *SupplierRepository) GetByID(ctx context.Context, businessID, id string) (*entity.Supplier, error) {
	var out *entity.Supplier
	err := r.read(ctx, func(d *data) error {
		if s, ok := d.suppliers[id]; ok && s.BusinessID == businessID {
			out = &s
		}
		return nil
	})
	return out, err
}

func (r *SupplierRepository) Update(ctx context.Context, s *entity.Supplier) error {
	return r.write(ctx, func(d *data) error {
		cur, ok := d.suppliers[s.ID]
		if !ok || cur.BusinessID != s.BusinessID {
			return domain.ErrNotFound
		}
		d.suppliers[s.ID] = *s
		return nil
	})
}

func (r *SupplierRepository) ListByBusiness(ctx context.Context, businessID string, page repository.Page) ([]*entity.Supplier, error) {
	var out []*entity.Supplier
	err := r.read(ctx, func(d *data) error {
		list := make([]entity.Supplier, 0)
		for _, s := range d.suppliers {
			if s.BusinessID == businessID {
				list = append(list, s)
			}
		}
		slices.SortFunc(list, func(a, b entity.Supplier) int {
			return cmp.Or(cmp.Compare(strings.ToLower(a.Name), strings.ToLower(b.Name)), cmp.Compare(a.ID, b.ID))
		})
		for _, s := range paginate(list, page) {
			s := s
			out = append(out, &s)
		}
		return nil
	})
	return out, err
}

// Delete falla con ErrConflict si hay compras que referencian al proveedor (ON DELETE RESTRICT).
func (r *SupplierRepository) Delete(ctx context.Context, businessID, id string) error {
	return r.write(ctx, func(d *data) error {
		s, ok := d.suppliers[id]
		if !ok || s.BusinessID != businessID {
			return domain.ErrNotFound
		}
		for _, p := range d.purchases {
			if p.SupplierID == id {
				return domain.ErrConflict
			}
		}
		delete(d.suppliers, id)
		return nil
	})
}

func byDateDesc(da, db, ca, cb time.Time, ida, idb string) int {
	return cmp.Or(db.Compare(da), cb.Compare(ca), cmp.Compare(ida, idb))
}
