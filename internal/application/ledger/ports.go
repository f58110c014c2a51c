package ledger

import (
	"context"

	"github.com/jhoicas/Contable-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando repositorios atados a esa tx.
// Garantiza atomicidad para las operaciones que mueven stock: si fn devuelve error se hace Rollback.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		productRepo repository.ProductRepository,
		saleRepo repository.SaleRepository,
		purchaseRepo repository.PurchaseRepository,
		supplierRepo repository.SupplierRepository,
	) error) error
}

// OperationRecorder registra el resultado de cada operación del libro (métricas).
type OperationRecorder interface {
	ObserveLedgerOperation(operation string, err error)
}

type noopRecorder struct{}

func (noopRecorder) ObserveLedgerOperation(string, error) {}
