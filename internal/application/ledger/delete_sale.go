package ledger

import (
	"context"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Contable-api/internal/domain"
	"github.com/jhoicas/Contable-api/internal/domain/entity"
	"github.com/jhoicas/Contable-api/internal/domain/repository"
)

// DeleteSaleInput entrada para borrar una venta. ProductID y Quantity son opcionales y
// redundantes: si se envían deben coincidir con la venta guardada (ErrConflict si no).
type DeleteSaleInput struct {
	SaleID    string
	ProductID *string
	Quantity  *decimal.Decimal
}

// DeleteSale borra la venta y devuelve sus unidades al stock ("sumar N unidades",
// sin recalcular desde el historial), todo en una transacción.
// Si el producto ya no existe la venta se borra sin efecto en stock.
func (uc *StockLedgerUseCase) DeleteSale(ctx context.Context, id entity.Identity, in DeleteSaleInput) error {
	if in.SaleID == "" {
		return uc.finish(OpDeleteSale, id, domain.NewValidationError("sale_id", "es obligatorio"), nil)
	}

	var restored decimal.Decimal
	err := uc.txRunner.Run(ctx, func(
		productRepo repository.ProductRepository,
		saleRepo repository.SaleRepository,
		_ repository.PurchaseRepository,
		_ repository.SupplierRepository,
	) error {
		sale, err := saleRepo.GetForUpdate(ctx, id.BusinessID, in.SaleID)
		if err != nil {
			return err
		}
		if sale == nil {
			return domain.ErrNotFound
		}
		if err := matchCaptured(sale.ProductID, sale.Quantity, in.ProductID, in.Quantity); err != nil {
			return err
		}

		if sale.AffectsStock() {
			product, err := productRepo.GetForUpdate(ctx, id.BusinessID, *sale.ProductID)
			if err != nil {
				return err
			}
			if product != nil {
				restored = product.Quantity.Add(sale.Quantity)
				if err := productRepo.UpdateStock(ctx, product.ID, restored); err != nil {
					return err
				}
			}
		}
		return saleRepo.Delete(ctx, id.BusinessID, sale.ID)
	})
	return uc.finish(OpDeleteSale, id, err, func(e *zerolog.Event) {
		e.Str("sale_id", in.SaleID)
		if err == nil {
			e.Str("restored_quantity", restored.String())
		}
	})
}

// matchCaptured compara los datos capturados por el cliente con los guardados.
func matchCaptured(storedProductID *string, storedQty decimal.Decimal, productID *string, qty *decimal.Decimal) error {
	if productID != nil && *productID != "" {
		if storedProductID == nil || *storedProductID != *productID {
			return domain.ErrConflict
		}
	}
	if qty != nil && !qty.Equal(storedQty) {
		return domain.ErrConflict
	}
	return nil
}
