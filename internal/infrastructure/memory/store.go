// Package memory implementa los repositorios en memoria (STORE_DRIVER=memory y tests).
// Las transacciones se serializan con un mutex y se revierten restaurando una copia del estado.
package memory

import (
	"context"
	"sync"

	"github.com/jhoicas/Contable-api/internal/application/auth"
	"github.com/jhoicas/Contable-api/internal/application/ledger"
	"github.com/jhoicas/Contable-api/internal/domain/entity"
	"github.com/jhoicas/Contable-api/internal/domain/repository"
)

var (
	_ ledger.TxRunner     = (*Store)(nil)
	_ auth.SignupTxRunner = (*Store)(nil)
)

type data struct {
	businesses map[string]entity.Business
	users      map[string]entity.User
	products   map[string]entity.Product
	sales      map[string]entity.Sale
	purchases  map[string]entity.Purchase
	expenses   map[string]entity.Expense
	suppliers  map[string]entity.Supplier
}

func newData() *data {
	return &data{
		businesses: map[string]entity.Business{},
		users:      map[string]entity.User{},
		products:   map[string]entity.Product{},
		sales:      map[string]entity.Sale{},
		purchases:  map[string]entity.Purchase{},
		expenses:   map[string]entity.Expense{},
		suppliers:  map[string]entity.Supplier{},
	}
}

func (d *data) clone() *data {
	c := newData()
	for k, v := range d.businesses {
		c.businesses[k] = v
	}
	for k, v := range d.users {
		c.users[k] = v
	}
	for k, v := range d.products {
		c.products[k] = v
	}
	for k, v := range d.sales {
		c.sales[k] = copySale(v)
	}
	for k, v := range d.purchases {
		c.purchases[k] = copyPurchase(v)
	}
	for k, v := range d.expenses {
		c.expenses[k] = v
	}
	for k, v := range d.suppliers {
		c.suppliers[k] = v
	}
	return c
}

// Store estado en memoria compartido por todos los repositorios.
type Store struct {
	mu sync.Mutex
	d  *data
}

// New crea un store vacío.
func New() *Store {
	return &Store{d: newData()}
}

// base da acceso al estado: fuera de una transacción toma el mutex en cada llamada;
// dentro de Run el mutex ya está tomado.
type base struct {
	s    *Store
	inTx bool
}

func (b base) read(ctx context.Context, fn func(d *data) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if !b.inTx {
		b.s.mu.Lock()
		defer b.s.mu.Unlock()
	}
	return fn(b.s.d)
}

// write es igual que read; se separa para dejar explícito qué llamadas mutan el estado.
func (b base) write(ctx context.Context, fn func(d *data) error) error {
	return b.read(ctx, fn)
}

// Run ejecuta fn con repositorios atados a la transacción. Si fn devuelve error (o entra en
// pánico) el estado vuelve a la copia tomada al inicio.
func (s *Store) Run(ctx context.Context, fn func(
	productRepo repository.ProductRepository,
	saleRepo repository.SaleRepository,
	purchaseRepo repository.PurchaseRepository,
	supplierRepo repository.SupplierRepository,
) error) error {
	return s.runTx(ctx, func(b base) error {
		return fn(&ProductRepository{b}, &SaleRepository{b}, &PurchaseRepository{b}, &SupplierRepository{b})
	})
}

// RunSignup ejecuta fn con los repositorios de negocio y usuario en una transacción.
func (s *Store) RunSignup(ctx context.Context, fn func(businessRepo repository.BusinessRepository, userRepo repository.UserRepository) error) error {
	return s.runTx(ctx, func(b base) error {
		return fn(&BusinessRepository{b}, &UserRepository{b})
	})
}

func (s *Store) runTx(ctx context.Context, fn func(b base) error) (err error) {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	snapshot := s.d.clone()
	defer func() {
		if r := recover(); r != nil {
			s.d = snapshot
			panic(r)
		}
		if err != nil {
			s.d = snapshot
		}
	}()
	return fn(base{s: s, inTx: true})
}

// Repos agrupa los repositorios fuera de transacción.
type Repos struct {
	Businesses *BusinessRepository
	Users      *UserRepository
	Products   *ProductRepository
	Sales      *SaleRepository
	Purchases  *PurchaseRepository
	Expenses   *ExpenseRepository
	Suppliers  *SupplierRepository
}

// Repos devuelve repositorios que bloquean el store en cada llamada.
func (s *Store) Repos() Repos {
	b := base{s: s}
	return Repos{
		Businesses: &BusinessRepository{b},
		Users:      &UserRepository{b},
		Products:   &ProductRepository{b},
		Sales:      &SaleRepository{b},
		Purchases:  &PurchaseRepository{b},
		Expenses:   &ExpenseRepository{b},
		Suppliers:  &SupplierRepository{b},
	}
}

func copySale(s entity.Sale) entity.Sale {
	if s.ProductID != nil {
		id := *s.ProductID
		s.ProductID = &id
	}
	return s
}

func copyPurchase(p entity.Purchase) entity.Purchase {
	if p.ProductID != nil {
		id := *p.ProductID
		p.ProductID = &id
	}
	return p
}

func paginate[T any](items []T, page repository.Page) []T {
	if page.Offset > 0 {
		if page.Offset >= len(items) {
			return []T{}
		}
		items = items[page.Offset:]
	}
	if page.Limit > 0 && page.Limit < len(items) {
		items = items[:page.Limit]
	}
	return items
}
