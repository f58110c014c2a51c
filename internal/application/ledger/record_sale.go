package ledger

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Contable-api/internal/domain"
	"github.com/jhoicas/Contable-api/internal/domain/entity"
	"github.com/jhoicas/Contable-api/internal/domain/inventory"
	"github.com/jhoicas/Contable-api/internal/domain/repository"
)

// RecordSaleInput entrada para registrar una venta.
// Con ProductID: UnitPrice por defecto es el precio de venta del producto.
// Sin ProductID (ad-hoc): ProductName obligatorio y UnitPrice o Amount obligatorio.
// Amount por defecto es Quantity * UnitPrice.
type RecordSaleInput struct {
	ProductID   *string
	ProductName string
	Quantity    decimal.Decimal
	UnitPrice   *decimal.Decimal
	Amount      *decimal.Decimal
	Date        time.Time
}

func (in RecordSaleInput) validate() error {
	fields := map[string]string{}
	if !in.Quantity.GreaterThan(decimal.Zero) {
		fields["quantity"] = "debe ser mayor que 0"
	} else if !inventory.FitsPlaces(in.Quantity, inventory.QuantityPlaces) {
		fields["quantity"] = msgQuantityPlaces
	}
	checkMoney(fields, "amount", in.Amount)
	checkMoney(fields, "unit_price", in.UnitPrice)
	if in.ProductID == nil || *in.ProductID == "" {
		if strings.TrimSpace(in.ProductName) == "" {
			fields["product_name"] = "es obligatorio en ventas sin producto"
		}
		if in.UnitPrice == nil && in.Amount == nil {
			fields["unit_price"] = "unit_price o amount es obligatorio en ventas sin producto"
		}
	}
	if len(fields) > 0 {
		return &domain.ValidationError{Fields: fields}
	}
	return nil
}

// RecordSale registra una venta. Si referencia un producto, en una sola transacción:
// bloquea el producto, verifica stock >= cantidad (ErrInsufficientStock si no), descuenta
// el stock e inserta la venta. Las ventas ad-hoc solo insertan la fila.
func (uc *StockLedgerUseCase) RecordSale(ctx context.Context, id entity.Identity, in RecordSaleInput) (*entity.Sale, error) {
	if err := in.validate(); err != nil {
		return nil, uc.finish(OpRecordSale, id, err, nil)
	}

	sale := &entity.Sale{
		ID:          uuid.New().String(),
		BusinessID:  id.BusinessID,
		Date:        uc.dateOrToday(in.Date),
		ProductName: strings.TrimSpace(in.ProductName),
		Quantity:    in.Quantity,
		CreatedAt:   uc.now().UTC(),
	}

	err := uc.txRunner.Run(ctx, func(
		productRepo repository.ProductRepository,
		saleRepo repository.SaleRepository,
		_ repository.PurchaseRepository,
		_ repository.SupplierRepository,
	) error {
		if in.ProductID == nil || *in.ProductID == "" {
			sale.UnitPrice = adHocUnitPrice(in)
			sale.Amount = saleAmount(in, sale.UnitPrice)
			return saleRepo.Create(ctx, sale)
		}

		// Bloquea la fila del producto para evitar sobreventa concurrente
		product, err := productRepo.GetForUpdate(ctx, id.BusinessID, *in.ProductID)
		if err != nil {
			return err
		}
		if product == nil {
			return domain.ErrNotFound
		}
		if product.Quantity.LessThan(in.Quantity) {
			return domain.ErrInsufficientStock
		}
		if err := productRepo.UpdateStock(ctx, product.ID, product.Quantity.Sub(in.Quantity)); err != nil {
			return err
		}

		unitPrice := product.SellingPrice
		if in.UnitPrice != nil {
			unitPrice = *in.UnitPrice
		}
		sale.ProductID = strPtr(product.ID)
		sale.ProductName = product.Name
		sale.UnitPrice = unitPrice
		sale.Amount = saleAmount(in, unitPrice)
		return saleRepo.Create(ctx, sale)
	})
	if err != nil {
		return nil, uc.finish(OpRecordSale, id, err, func(e *zerolog.Event) {
			if in.ProductID != nil {
				e.Str("product_id", *in.ProductID)
			}
			e.Str("quantity", in.Quantity.String())
		})
	}
	return sale, uc.finish(OpRecordSale, id, nil, func(e *zerolog.Event) {
		e.Str("sale_id", sale.ID).Str("amount", sale.Amount.String())
	})
}

func adHocUnitPrice(in RecordSaleInput) decimal.Decimal {
	if in.UnitPrice != nil {
		return *in.UnitPrice
	}
	// Solo se conoce el monto: precio unitario derivado
	return in.Amount.DivRound(in.Quantity, inventory.MoneyPlaces)
}

func saleAmount(in RecordSaleInput, unitPrice decimal.Decimal) decimal.Decimal {
	if in.Amount != nil {
		return *in.Amount
	}
	return unitPrice.Mul(in.Quantity).Round(inventory.MoneyPlaces)
}
