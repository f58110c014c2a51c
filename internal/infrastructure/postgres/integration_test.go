package postgres_test

import (
	"context"
	"os"
	"sync"
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
	"github.com/jhoicas/Contable-api/internal/infrastructure/postgres"
	"github.com/jhoicas/Contable-api/pkg/config"
	"github.com/jhoicas/Contable-api/pkg/logger"
)

// Requiere TEST_DATABASE_URL apuntando a una base desechable.
func setup(t *testing.T) (*postgres.TxRunner, *postgres.ProductRepo, *postgres.SaleRepo, string, string) {
	t.Helper()
	url := os.Getenv("TEST_DATABASE_URL")
	if url == "" {
		t.Skip("TEST_DATABASE_URL no definido")
	}
	require.NoError(t, postgres.MigrateUp(url))

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, config.DBConfig{DatabaseURL: url}, logger.Nop())
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	now := time.Now().UTC()
	biz := &entity.Business{ID: uuid.NewString(), Name: "Tienda test", CreatedAt: now, UpdatedAt: now}
	require.NoError(t, postgres.NewBusinessRepository(pool).Create(ctx, biz))

	supplier := &entity.Supplier{ID: uuid.NewString(), BusinessID: biz.ID, Name: "Mayorista", CreatedAt: now, UpdatedAt: now}
	require.NoError(t, postgres.NewSupplierRepository(pool).Create(ctx, supplier))

	return postgres.NewTxRunner(pool), postgres.NewProductRepository(pool), postgres.NewSaleRepository(pool), biz.ID, supplier.ID
}

func TestPostgres_PurchaseSellDelete(t *testing.T) {
	runner, products, sales, businessID, supplierID := setup(t)
	ctx := context.Background()
	uc := ledger.NewStockLedgerUseCase(runner, logger.Nop(), nil)
	id := entity.Identity{UserID: uuid.NewString(), BusinessID: businessID}

	purchase, err := uc.RecordPurchase(ctx, id, ledger.RecordPurchaseInput{
		SupplierID: supplierID,
		NewProduct: &ledger.NewProductInput{Name: "Widget", SellingPrice: decimal.NewFromInt(15)},
		Quantity:   decimal.NewFromInt(10),
		TotalCost:  decimal.NewFromInt(100),
	})
	require.NoError(t, err)
	require.NotNil(t, purchase.ProductID)
	productID := *purchase.ProductID

	sale, err := uc.RecordSale(ctx, id, ledger.RecordSaleInput{ProductID: &productID, Quantity: decimal.NewFromInt(4)})
	require.NoError(t, err)

	p, err := products.GetByID(ctx, businessID, productID)
	require.NoError(t, err)
	assert.True(t, p.Quantity.Equal(decimal.NewFromInt(6)))
	assert.True(t, p.CostPerUnit.Equal(decimal.NewFromInt(10)))

	_, err = uc.RecordSale(ctx, id, ledger.RecordSaleInput{ProductID: &productID, Quantity: decimal.NewFromInt(7)})
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)

	require.NoError(t, uc.DeleteSale(ctx, id, ledger.DeleteSaleInput{SaleID: sale.ID}))
	p, err = products.GetByID(ctx, businessID, productID)
	require.NoError(t, err)
	assert.True(t, p.Quantity.Equal(decimal.NewFromInt(10)))

	list, err := sales.ListByBusiness(ctx, businessID, repository.Period{}, repository.AllRows)
	require.NoError(t, err)
	assert.Empty(t, list)

	require.NoError(t, uc.DeletePurchase(ctx, id, ledger.DeletePurchaseInput{PurchaseID: purchase.ID}))
	p, err = products.GetByID(ctx, businessID, productID)
	require.NoError(t, err)
	require.NotNil(t, p)
	assert.True(t, p.Quantity.IsZero())
}

func TestPostgres_ConcurrentSalesLastUnit(t *testing.T) {
	runner, products, _, businessID, supplierID := setup(t)
	ctx := context.Background()
	uc := ledger.NewStockLedgerUseCase(runner, logger.Nop(), nil)
	id := entity.Identity{UserID: uuid.NewString(), BusinessID: businessID}

	purchase, err := uc.RecordPurchase(ctx, id, ledger.RecordPurchaseInput{
		SupplierID: supplierID,
		NewProduct: &ledger.NewProductInput{Name: "Última", SellingPrice: decimal.NewFromInt(5)},
		Quantity:   decimal.NewFromInt(1),
		TotalCost:  decimal.NewFromInt(2),
	})
	require.NoError(t, err)
	productID := *purchase.ProductID

	const workers = 8
	var wg sync.WaitGroup
	errs := make([]error, workers)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = uc.RecordSale(ctx, id, ledger.RecordSaleInput{ProductID: &productID, Quantity: decimal.NewFromInt(1)})
		}(i)
	}
	wg.Wait()

	ok := 0
	for _, err := range errs {
		if err == nil {
			ok++
			continue
		}
		assert.ErrorIs(t, err, domain.ErrInsufficientStock)
	}
	assert.Equal(t, 1, ok)

	p, err := products.GetByID(ctx, businessID, productID)
	require.NoError(t, err)
	assert.True(t, p.Quantity.IsZero())
}

func TestPostgres_UpdateStockNegativeIsRejected(t *testing.T) {
	_, products, _, businessID, _ := setup(t)
	ctx := context.Background()
	now := time.Now().UTC()
	p := &entity.Product{ID: uuid.NewString(), BusinessID: businessID, Name: "Caja", CreatedAt: now, UpdatedAt: now}
	require.NoError(t, products.Create(ctx, p))

	err := products.UpdateStock(ctx, p.ID, decimal.NewFromInt(-1))
	assert.ErrorIs(t, err, domain.ErrNegativeStock)

	other, err := products.GetByID(ctx, uuid.NewString(), p.ID)
	require.NoError(t, err)
	assert.Nil(t, other)

	malformed, err := products.GetByID(ctx, businessID, "abc")
	require.NoError(t, err)
	assert.Nil(t, malformed)
	assert.ErrorIs(t, products.Delete(ctx, businessID, "abc"), domain.ErrNotFound)

	p.SellingPrice = decimal.NewFromInt(-5)
	err = products.Update(ctx, p)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.NotErrorIs(t, err, domain.ErrNegativeStock)
}
