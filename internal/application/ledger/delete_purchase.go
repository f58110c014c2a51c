package ledger

import (
	"context"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Contable-api/internal/domain"
	"github.com/jhoicas/Contable-api/internal/domain/entity"
	"github.com/jhoicas/Contable-api/internal/domain/repository"
)

// DeletePurchaseInput entrada para borrar una compra. ProductID y Quantity son opcionales
// y, si se envían, deben coincidir con la compra guardada.
type DeletePurchaseInput struct {
	PurchaseID string
	ProductID  *string
	Quantity   *decimal.Decimal
}

// DeletePurchase resta del stock la cantidad comprada y borra la compra en una transacción.
// Falla con ErrNegativeStock si el stock actual es menor que la cantidad (no se recorta a 0).
// El costo unitario del producto no se recalcula y el producto nunca se borra.
func (uc *StockLedgerUseCase) DeletePurchase(ctx context.Context, id entity.Identity, in DeletePurchaseInput) error {
	if in.PurchaseID == "" {
		return uc.finish(OpDeletePurchase, id, domain.NewValidationError("purchase_id", "es obligatorio"), nil)
	}

	var remaining decimal.Decimal
	err := uc.txRunner.Run(ctx, func(
		productRepo repository.ProductRepository,
		_ repository.SaleRepository,
		purchaseRepo repository.PurchaseRepository,
		_ repository.SupplierRepository,
	) error {
		purchase, err := purchaseRepo.GetForUpdate(ctx, id.BusinessID, in.PurchaseID)
		if err != nil {
			return err
		}
		if purchase == nil {
			return domain.ErrNotFound
		}
		if err := matchCaptured(purchase.ProductID, purchase.Quantity, in.ProductID, in.Quantity); err != nil {
			return err
		}

		if purchase.ProductID != nil {
			product, err := productRepo.GetForUpdate(ctx, id.BusinessID, *purchase.ProductID)
			if err != nil {
				return err
			}
			if product != nil {
				if product.Quantity.LessThan(purchase.Quantity) {
					return domain.ErrNegativeStock
				}
				remaining = product.Quantity.Sub(purchase.Quantity)
				if err := productRepo.UpdateStock(ctx, product.ID, remaining); err != nil {
					return err
				}
			}
		}
		return purchaseRepo.Delete(ctx, id.BusinessID, purchase.ID)
	})
	return uc.finish(OpDeletePurchase, id, err, func(e *zerolog.Event) {
		e.Str("purchase_id", in.PurchaseID)
		if err == nil {
			e.Str("remaining_quantity", remaining.String())
		}
	})
}
