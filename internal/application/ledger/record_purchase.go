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

// NewProductInput datos del producto que crea una compra ad-hoc.
type NewProductInput struct {
	Name         string
	SellingPrice decimal.Decimal
}

// RecordPurchaseInput entrada para registrar una compra.
// Exactamente uno de ProductID (inventario existente) o NewProduct (ad-hoc).
type RecordPurchaseInput struct {
	SupplierID string
	ProductID  *string
	NewProduct *NewProductInput
	Quantity   decimal.Decimal
	TotalCost  decimal.Decimal
	Date       time.Time
}

func (in RecordPurchaseInput) validate() error {
	fields := map[string]string{}
	if in.SupplierID == "" {
		fields["supplier_id"] = "es obligatorio"
	}
	if !in.Quantity.GreaterThan(decimal.Zero) {
		fields["quantity"] = "debe ser mayor que 0"
	} else if !inventory.FitsPlaces(in.Quantity, inventory.QuantityPlaces) {
		fields["quantity"] = msgQuantityPlaces
	}
	if !in.TotalCost.GreaterThan(decimal.Zero) {
		fields["total_cost"] = "debe ser mayor que 0"
	} else if !inventory.FitsPlaces(in.TotalCost, inventory.MoneyPlaces) {
		fields["total_cost"] = msgMoneyPlaces
	}
	hasProduct := in.ProductID != nil && *in.ProductID != ""
	switch {
	case hasProduct && in.NewProduct != nil:
		fields["product_id"] = "no se puede enviar product_id y new_product a la vez"
	case !hasProduct && in.NewProduct == nil:
		fields["product_id"] = "product_id o new_product es obligatorio"
	case in.NewProduct != nil:
		if strings.TrimSpace(in.NewProduct.Name) == "" {
			fields["new_product.name"] = "es obligatorio"
		}
		checkMoney(fields, "new_product.selling_price", &in.NewProduct.SellingPrice)
	}
	if len(fields) > 0 {
		return &domain.ValidationError{Fields: fields}
	}
	return nil
}

// RecordPurchase registra una compra en una transacción: crea el producto si es ad-hoc
// (stock inicial 0), bloquea el producto, suma la cantidad, recalcula el costo unitario
// por promedio ponderado e inserta la compra.
func (uc *StockLedgerUseCase) RecordPurchase(ctx context.Context, id entity.Identity, in RecordPurchaseInput) (*entity.Purchase, error) {
	if err := in.validate(); err != nil {
		return nil, uc.finish(OpRecordPurchase, id, err, nil)
	}

	now := uc.now().UTC()
	purchase := &entity.Purchase{
		ID:          uuid.New().String(),
		BusinessID:  id.BusinessID,
		Date:        uc.dateOrToday(in.Date),
		SupplierID:  in.SupplierID,
		Quantity:    in.Quantity,
		TotalCost:   in.TotalCost,
		CostPerUnit: inventory.UnitCost(in.TotalCost, in.Quantity),
		CreatedAt:   now,
	}
	createdProduct := false

	err := uc.txRunner.Run(ctx, func(
		productRepo repository.ProductRepository,
		_ repository.SaleRepository,
		purchaseRepo repository.PurchaseRepository,
		supplierRepo repository.SupplierRepository,
	) error {
		supplier, err := supplierRepo.GetByID(ctx, id.BusinessID, in.SupplierID)
		if err != nil {
			return err
		}
		if supplier == nil {
			return domain.ErrNotFound
		}

		productID := ""
		if in.NewProduct != nil {
			p := &entity.Product{
				ID:            uuid.New().String(),
				BusinessID:    id.BusinessID,
				Name:          strings.TrimSpace(in.NewProduct.Name),
				SellingPrice:  in.NewProduct.SellingPrice,
				PurchasePrice: decimal.Zero,
				Quantity:      decimal.Zero,
				CostPerUnit:   decimal.Zero,
				CreatedAt:     now,
				UpdatedAt:     now,
			}
			if err := productRepo.Create(ctx, p); err != nil {
				return err
			}
			productID = p.ID
			createdProduct = true
		} else {
			productID = *in.ProductID
		}

		product, err := productRepo.GetForUpdate(ctx, id.BusinessID, productID)
		if err != nil {
			return err
		}
		if product == nil {
			return domain.ErrNotFound
		}

		newQty := product.Quantity.Add(in.Quantity)
		newCost := inventory.CostCalculator(product.Quantity, product.CostPerUnit, in.Quantity, in.TotalCost)
		if err := productRepo.UpdateCost(ctx, product.ID, newCost, inventory.PurchasePrice(newCost, newQty)); err != nil {
			return err
		}
		if err := productRepo.UpdateStock(ctx, product.ID, newQty); err != nil {
			return err
		}

		purchase.ProductID = strPtr(product.ID)
		purchase.ProductName = product.Name
		return purchaseRepo.Create(ctx, purchase)
	})
	if err != nil {
		return nil, uc.finish(OpRecordPurchase, id, err, func(e *zerolog.Event) {
			e.Str("supplier_id", in.SupplierID).Str("quantity", in.Quantity.String())
		})
	}
	return purchase, uc.finish(OpRecordPurchase, id, nil, func(e *zerolog.Event) {
		e.Str("purchase_id", purchase.ID).Str("product_id", *purchase.ProductID).Bool("new_product", createdProduct)
	})
}
