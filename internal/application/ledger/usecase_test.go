package ledger_test

import (
	"context"
	"errors"
	"math/rand"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Contable-api/internal/application/ledger"
	"github.com/jhoicas/Contable-api/internal/domain"
	"github.com/jhoicas/Contable-api/internal/domain/entity"
	"github.com/jhoicas/Contable-api/internal/domain/repository"
	"github.com/jhoicas/Contable-api/internal/infrastructure/memory"
)

type fixture struct {
	store *memory.Store
	repos memory.Repos
	uc    *ledger.StockLedgerUseCase
	id    entity.Identity
	ctx   context.Context
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	store := memory.New()
	f := &fixture{
		store: store,
		repos: store.Repos(),
		uc:    ledger.NewStockLedgerUseCase(store, nil, nil),
		id:    entity.Identity{UserID: uuid.New().String(), BusinessID: uuid.New().String()},
		ctx:   context.Background(),
	}
	return f
}

func (f *fixture) supplier(t *testing.T) string {
	t.Helper()
	s := &entity.Supplier{ID: uuid.New().String(), BusinessID: f.id.BusinessID, Name: "Distribuidora Central"}
	require.NoError(t, f.repos.Suppliers.Create(f.ctx, s))
	return s.ID
}

// product crea un producto con stock directo (equivalente a una edición manual).
func (f *fixture) product(t *testing.T, qty, price int64) *entity.Product {
	t.Helper()
	p := &entity.Product{
		ID:           uuid.New().String(),
		BusinessID:   f.id.BusinessID,
		Name:         "Arroz 1kg",
		SellingPrice: decimal.NewFromInt(price),
		Quantity:     decimal.NewFromInt(qty),
	}
	require.NoError(t, f.repos.Products.Create(f.ctx, p))
	return p
}

func (f *fixture) stock(t *testing.T, productID string) decimal.Decimal {
	t.Helper()
	p, err := f.repos.Products.GetByID(f.ctx, f.id.BusinessID, productID)
	require.NoError(t, err)
	require.NotNil(t, p)
	return p.Quantity
}

func dec(n int64) decimal.Decimal { return decimal.NewFromInt(n) }

func decPtr(n int64) *decimal.Decimal { d := decimal.NewFromInt(n); return &d }

func TestRecordSale_VenderYBorrarRestauraStock(t *testing.T) {
	f := newFixture(t)
	p := f.product(t, 10, 2500)

	sale, err := f.uc.RecordSale(f.ctx, f.id, ledger.RecordSaleInput{ProductID: &p.ID, Quantity: dec(4)})
	require.NoError(t, err)
	assert.True(t, dec(6).Equal(f.stock(t, p.ID)))
	assert.True(t, dec(10000).Equal(sale.Amount), "amount = 4 × precio de venta")
	assert.Equal(t, "Arroz 1kg", sale.ProductName)

	require.NoError(t, f.uc.DeleteSale(f.ctx, f.id, ledger.DeleteSaleInput{SaleID: sale.ID}))
	assert.True(t, dec(10).Equal(f.stock(t, p.ID)))

	got, err := f.repos.Sales.GetByID(f.ctx, f.id.BusinessID, sale.ID)
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestRecordSale_StockInsuficienteNoMuta(t *testing.T) {
	f := newFixture(t)
	p := f.product(t, 3, 100)

	_, err := f.uc.RecordSale(f.ctx, f.id, ledger.RecordSaleInput{ProductID: &p.ID, Quantity: dec(4)})
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
	assert.True(t, dec(3).Equal(f.stock(t, p.ID)))

	sales, err := f.repos.Sales.ListByBusiness(f.ctx, f.id.BusinessID, repository.Period{}, repository.AllRows)
	require.NoError(t, err)
	assert.Empty(t, sales)
}

func TestRecordSale_AdHocSinEfectoEnStock(t *testing.T) {
	f := newFixture(t)
	p := f.product(t, 5, 100)

	sale, err := f.uc.RecordSale(f.ctx, f.id, ledger.RecordSaleInput{
		ProductName: "Servicio de domicilio",
		Quantity:    dec(2),
		UnitPrice:   decPtr(1500),
	})
	require.NoError(t, err)
	assert.Nil(t, sale.ProductID)
	assert.True(t, dec(3000).Equal(sale.Amount))
	assert.True(t, dec(5).Equal(f.stock(t, p.ID)))
}

func TestRecordSale_Validacion(t *testing.T) {
	f := newFixture(t)

	_, err := f.uc.RecordSale(f.ctx, f.id, ledger.RecordSaleInput{Quantity: dec(0)})
	var verr *domain.ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Contains(t, verr.Fields, "quantity")
	assert.Contains(t, verr.Fields, "product_name")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func decStr(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func TestRecordSale_PrecisionFueraDeEscalaSeRechazaSinMutar(t *testing.T) {
	f := newFixture(t)
	p := f.product(t, 5, 100)

	_, err := f.uc.RecordSale(f.ctx, f.id, ledger.RecordSaleInput{ProductID: &p.ID, Quantity: decStr("1.00005")})
	var verr *domain.ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Contains(t, verr.Fields, "quantity")
	assert.True(t, dec(5).Equal(f.stock(t, p.ID)))

	amount := decStr("10.005")
	_, err = f.uc.RecordSale(f.ctx, f.id, ledger.RecordSaleInput{ProductName: "Domicilio", Quantity: dec(1), Amount: &amount})
	require.True(t, errors.As(err, &verr))
	assert.Contains(t, verr.Fields, "amount")

	// cuatro decimales en cantidad y ceros sobrantes en dinero sí caben
	price := decStr("2.500")
	sale, err := f.uc.RecordSale(f.ctx, f.id, ledger.RecordSaleInput{ProductID: &p.ID, Quantity: decStr("1.2345"), UnitPrice: &price})
	require.NoError(t, err)
	assert.True(t, decStr("3.7655").Equal(f.stock(t, p.ID)))
	assert.True(t, decStr("3.09").Equal(sale.Amount), "1.2345 × 2.5 = 3.08625 → 3.09")
}

func TestRecordSale_AdHocPrecioUnitarioConEscalaDeDinero(t *testing.T) {
	f := newFixture(t)
	amount := decStr("10")

	sale, err := f.uc.RecordSale(f.ctx, f.id, ledger.RecordSaleInput{ProductName: "Combo", Quantity: dec(3), Amount: &amount})
	require.NoError(t, err)
	assert.True(t, decStr("3.33").Equal(sale.UnitPrice), "10 / 3 con 2 decimales, obtenido %s", sale.UnitPrice)
	assert.True(t, amount.Equal(sale.Amount))
}

func TestRecordPurchase_PrecisionFueraDeEscala(t *testing.T) {
	f := newFixture(t)
	supplierID := f.supplier(t)

	_, err := f.uc.RecordPurchase(f.ctx, f.id, ledger.RecordPurchaseInput{
		SupplierID: supplierID,
		NewProduct: &ledger.NewProductInput{Name: "Widget", SellingPrice: decStr("1.999")},
		Quantity:   decStr("0.00001"),
		TotalCost:  decStr("9.999"),
	})
	var verr *domain.ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Contains(t, verr.Fields, "quantity")
	assert.Contains(t, verr.Fields, "total_cost")
	assert.Contains(t, verr.Fields, "new_product.selling_price")

	products, err := f.repos.Products.ListByBusiness(f.ctx, f.id.BusinessID, repository.AllRows)
	require.NoError(t, err)
	assert.Empty(t, products)
}

func TestRecordSale_ProductoDeOtroNegocio(t *testing.T) {
	f := newFixture(t)
	p := f.product(t, 10, 100)
	other := entity.Identity{UserID: uuid.New().String(), BusinessID: uuid.New().String()}

	_, err := f.uc.RecordSale(f.ctx, other, ledger.RecordSaleInput{ProductID: &p.ID, Quantity: dec(1)})
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.True(t, dec(10).Equal(f.stock(t, p.ID)))
}

func TestRecordSale_ConcurrenciaUltimaUnidad(t *testing.T) {
	f := newFixture(t)
	p := f.product(t, 1, 100)

	const workers = 16
	var ok, insufficient int32
	var wg sync.WaitGroup
	wg.Add(workers)
	for i := 0; i < workers; i++ {
		go func() {
			defer wg.Done()
			_, err := f.uc.RecordSale(f.ctx, f.id, ledger.RecordSaleInput{ProductID: &p.ID, Quantity: dec(1)})
			switch {
			case err == nil:
				atomic.AddInt32(&ok, 1)
			case errors.Is(err, domain.ErrInsufficientStock):
				atomic.AddInt32(&insufficient, 1)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), ok, "solo una venta puede llevarse la última unidad")
	assert.Equal(t, int32(workers-1), insufficient)
	assert.True(t, f.stock(t, p.ID).IsZero())
}

func TestDeleteSale_RoundTrip(t *testing.T) {
	f := newFixture(t)
	p := f.product(t, 8, 100)

	in := ledger.RecordSaleInput{ProductID: &p.ID, Quantity: dec(3)}
	sale, err := f.uc.RecordSale(f.ctx, f.id, in)
	require.NoError(t, err)
	after := f.stock(t, p.ID)

	require.NoError(t, f.uc.DeleteSale(f.ctx, f.id, ledger.DeleteSaleInput{SaleID: sale.ID, ProductID: &p.ID, Quantity: decPtr(3)}))
	_, err = f.uc.RecordSale(f.ctx, f.id, in)
	require.NoError(t, err)
	assert.True(t, after.Equal(f.stock(t, p.ID)))
}

func TestDeleteSale_DatosCapturadosNoCoinciden(t *testing.T) {
	f := newFixture(t)
	p := f.product(t, 8, 100)
	sale, err := f.uc.RecordSale(f.ctx, f.id, ledger.RecordSaleInput{ProductID: &p.ID, Quantity: dec(3)})
	require.NoError(t, err)

	err = f.uc.DeleteSale(f.ctx, f.id, ledger.DeleteSaleInput{SaleID: sale.ID, Quantity: decPtr(2)})
	assert.ErrorIs(t, err, domain.ErrConflict)
	assert.True(t, dec(5).Equal(f.stock(t, p.ID)))
}

func TestDeleteSale_ProductoBorradoSinEfecto(t *testing.T) {
	f := newFixture(t)
	p := f.product(t, 8, 100)
	sale, err := f.uc.RecordSale(f.ctx, f.id, ledger.RecordSaleInput{ProductID: &p.ID, Quantity: dec(3)})
	require.NoError(t, err)
	require.NoError(t, f.repos.Products.Delete(f.ctx, f.id.BusinessID, p.ID))

	require.NoError(t, f.uc.DeleteSale(f.ctx, f.id, ledger.DeleteSaleInput{SaleID: sale.ID}))
	got, err := f.repos.Sales.GetByID(f.ctx, f.id.BusinessID, sale.ID)
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestDeleteSale_NoExiste(t *testing.T) {
	f := newFixture(t)
	err := f.uc.DeleteSale(f.ctx, f.id, ledger.DeleteSaleInput{SaleID: uuid.New().String()})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestRecordPurchase_AdHocWidget(t *testing.T) {
	f := newFixture(t)
	supplierID := f.supplier(t)

	purchase, err := f.uc.RecordPurchase(f.ctx, f.id, ledger.RecordPurchaseInput{
		SupplierID: supplierID,
		NewProduct: &ledger.NewProductInput{Name: "Widget", SellingPrice: dec(15)},
		Quantity:   dec(5),
		TotalCost:  dec(50),
	})
	require.NoError(t, err)
	require.NotNil(t, purchase.ProductID)
	assert.Equal(t, "Widget", purchase.ProductName)
	assert.True(t, dec(10).Equal(purchase.CostPerUnit))

	p, err := f.repos.Products.GetByID(f.ctx, f.id.BusinessID, *purchase.ProductID)
	require.NoError(t, err)
	assert.True(t, dec(5).Equal(p.Quantity))
	assert.True(t, dec(10).Equal(p.CostPerUnit))
	assert.True(t, dec(50).Equal(p.PurchasePrice))

	require.NoError(t, f.uc.DeletePurchase(f.ctx, f.id, ledger.DeletePurchaseInput{PurchaseID: purchase.ID}))
	p, err = f.repos.Products.GetByID(f.ctx, f.id.BusinessID, *purchase.ProductID)
	require.NoError(t, err)
	require.NotNil(t, p, "el producto se conserva tras borrar la compra")
	assert.True(t, p.Quantity.IsZero())
}

func TestRecordPurchase_CostoPromedioPonderado(t *testing.T) {
	f := newFixture(t)
	supplierID := f.supplier(t)
	p := f.product(t, 0, 30)

	_, err := f.uc.RecordPurchase(f.ctx, f.id, ledger.RecordPurchaseInput{SupplierID: supplierID, ProductID: &p.ID, Quantity: dec(10), TotalCost: dec(100)})
	require.NoError(t, err)
	_, err = f.uc.RecordPurchase(f.ctx, f.id, ledger.RecordPurchaseInput{SupplierID: supplierID, ProductID: &p.ID, Quantity: dec(10), TotalCost: dec(300)})
	require.NoError(t, err)

	got, err := f.repos.Products.GetByID(f.ctx, f.id.BusinessID, p.ID)
	require.NoError(t, err)
	assert.True(t, dec(20).Equal(got.Quantity))
	assert.True(t, dec(20).Equal(got.CostPerUnit), "(10×10 + 300) / 20 = 20")
	assert.True(t, dec(400).Equal(got.PurchasePrice))
}

func TestRecordPurchase_ProveedorDeOtroNegocio(t *testing.T) {
	f := newFixture(t)
	supplierID := f.supplier(t)
	other := entity.Identity{UserID: uuid.New().String(), BusinessID: uuid.New().String()}

	_, err := f.uc.RecordPurchase(f.ctx, other, ledger.RecordPurchaseInput{
		SupplierID: supplierID,
		NewProduct: &ledger.NewProductInput{Name: "Widget"},
		Quantity:   dec(1),
		TotalCost:  dec(1),
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	products, err := f.repos.Products.ListByBusiness(f.ctx, other.BusinessID, repository.AllRows)
	require.NoError(t, err)
	assert.Empty(t, products, "el producto ad-hoc se revierte con la transacción")
}

func TestRecordPurchase_ProductoYNuevoProductoExclusivos(t *testing.T) {
	f := newFixture(t)
	id := uuid.New().String()
	_, err := f.uc.RecordPurchase(f.ctx, f.id, ledger.RecordPurchaseInput{
		SupplierID: uuid.New().String(),
		ProductID:  &id,
		NewProduct: &ledger.NewProductInput{Name: "X"},
		Quantity:   dec(1),
		TotalCost:  dec(1),
	})
	var verr *domain.ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Contains(t, verr.Fields, "product_id")
}

func TestDeletePurchase_StockNegativoFalla(t *testing.T) {
	f := newFixture(t)
	supplierID := f.supplier(t)
	p := f.product(t, 0, 100)

	purchase, err := f.uc.RecordPurchase(f.ctx, f.id, ledger.RecordPurchaseInput{SupplierID: supplierID, ProductID: &p.ID, Quantity: dec(5), TotalCost: dec(50)})
	require.NoError(t, err)
	_, err = f.uc.RecordSale(f.ctx, f.id, ledger.RecordSaleInput{ProductID: &p.ID, Quantity: dec(3)})
	require.NoError(t, err)

	err = f.uc.DeletePurchase(f.ctx, f.id, ledger.DeletePurchaseInput{PurchaseID: purchase.ID})
	assert.ErrorIs(t, err, domain.ErrNegativeStock)
	assert.True(t, dec(2).Equal(f.stock(t, p.ID)))

	still, err := f.repos.Purchases.GetByID(f.ctx, f.id.BusinessID, purchase.ID)
	require.NoError(t, err)
	assert.NotNil(t, still)
}

type recorderSpy struct {
	mu  sync.Mutex
	ops map[string]int
}

func (r *recorderSpy) ObserveLedgerOperation(op string, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.ops == nil {
		r.ops = map[string]int{}
	}
	key := op
	if err != nil {
		key += ":error"
	}
	r.ops[key]++
}

func TestStockLedger_RegistraMetricas(t *testing.T) {
	store := memory.New()
	spy := &recorderSpy{}
	uc := ledger.NewStockLedgerUseCase(store, nil, spy)
	id := entity.Identity{UserID: "u", BusinessID: uuid.New().String()}

	_, _ = uc.RecordSale(context.Background(), id, ledger.RecordSaleInput{ProductName: "x", Quantity: dec(1), Amount: decPtr(5)})
	_ = uc.DeleteSale(context.Background(), id, ledger.DeleteSaleInput{SaleID: "no-existe"})

	assert.Equal(t, 1, spy.ops[ledger.OpRecordSale])
	assert.Equal(t, 1, spy.ops[ledger.OpDeleteSale+":error"])
}

// La cantidad de cada producto debe ser compras - ventas vigentes tras cualquier secuencia.
func TestStockLedger_ConsistenciaSecuenciaAleatoria(t *testing.T) {
	f := newFixture(t)
	supplierID := f.supplier(t)
	products := []*entity.Product{f.product(t, 0, 10), f.product(t, 0, 20), f.product(t, 0, 30)}

	rng := rand.New(rand.NewSource(42))
	var sales []*entity.Sale
	var purchases []*entity.Purchase

	for i := 0; i < 400; i++ {
		p := products[rng.Intn(len(products))]
		switch op := rng.Intn(4); op {
		case 0:
			pu, err := f.uc.RecordPurchase(f.ctx, f.id, ledger.RecordPurchaseInput{
				SupplierID: supplierID, ProductID: &p.ID,
				Quantity: dec(int64(rng.Intn(9) + 1)), TotalCost: dec(int64(rng.Intn(500) + 1)),
				Date: time.Now(),
			})
			require.NoError(t, err)
			purchases = append(purchases, pu)
		case 1:
			s, err := f.uc.RecordSale(f.ctx, f.id, ledger.RecordSaleInput{ProductID: &p.ID, Quantity: dec(int64(rng.Intn(5) + 1))})
			if err != nil {
				require.ErrorIs(t, err, domain.ErrInsufficientStock)
				continue
			}
			sales = append(sales, s)
		case 2:
			if len(sales) == 0 {
				continue
			}
			k := rng.Intn(len(sales))
			require.NoError(t, f.uc.DeleteSale(f.ctx, f.id, ledger.DeleteSaleInput{SaleID: sales[k].ID}))
			sales = append(sales[:k], sales[k+1:]...)
		case 3:
			if len(purchases) == 0 {
				continue
			}
			k := rng.Intn(len(purchases))
			err := f.uc.DeletePurchase(f.ctx, f.id, ledger.DeletePurchaseInput{PurchaseID: purchases[k].ID})
			if err != nil {
				require.ErrorIs(t, err, domain.ErrNegativeStock)
				continue
			}
			purchases = append(purchases[:k], purchases[k+1:]...)
		}
	}

	for _, p := range products {
		expected := decimal.Zero
		for _, pu := range purchases {
			if *pu.ProductID == p.ID {
				expected = expected.Add(pu.Quantity)
			}
		}
		for _, s := range sales {
			if *s.ProductID == p.ID {
				expected = expected.Sub(s.Quantity)
			}
		}
		got := f.stock(t, p.ID)
		assert.Truef(t, expected.Equal(got), "producto %s: esperado %s, obtenido %s", p.ID, expected, got)
		assert.False(t, got.IsNegative())
	}
}
