package ledger

import (
	"context"
	"time"

	"github.com/jhoicas/Contable-api/internal/application/dto"
	"github.com/jhoicas/Contable-api/internal/domain/entity"
)

// RecordSaleFromRequest adapta el request HTTP al caso de uso RecordSale.
func (uc *StockLedgerUseCase) RecordSaleFromRequest(ctx context.Context, id entity.Identity, in dto.RecordSaleRequest) (*dto.SaleResponse, error) {
	sale, err := uc.RecordSale(ctx, id, RecordSaleInput{
		ProductID:   in.ProductID,
		ProductName: in.ProductName,
		Quantity:    in.Quantity,
		UnitPrice:   in.UnitPrice,
		Amount:      in.Amount,
		Date:        derefTime(in.Date),
	})
	if err != nil {
		return nil, err
	}
	return ToSaleResponse(sale), nil
}

// RecordPurchaseFromRequest adapta el request HTTP al caso de uso RecordPurchase.
func (uc *StockLedgerUseCase) RecordPurchaseFromRequest(ctx context.Context, id entity.Identity, in dto.RecordPurchaseRequest) (*dto.PurchaseResponse, error) {
	input := RecordPurchaseInput{
		SupplierID: in.SupplierID,
		ProductID:  in.ProductID,
		Quantity:   in.Quantity,
		TotalCost:  in.TotalCost,
		Date:       derefTime(in.Date),
	}
	if in.NewProduct != nil {
		input.NewProduct = &NewProductInput{Name: in.NewProduct.Name, SellingPrice: in.NewProduct.SellingPrice}
	}
	purchase, err := uc.RecordPurchase(ctx, id, input)
	if err != nil {
		return nil, err
	}
	return ToPurchaseResponse(purchase), nil
}

// ToSaleResponse convierte la entidad a DTO.
func ToSaleResponse(s *entity.Sale) *dto.SaleResponse {
	if s == nil {
		return nil
	}
	return &dto.SaleResponse{
		ID:          s.ID,
		Date:        s.Date,
		ProductID:   s.ProductID,
		ProductName: s.ProductName,
		Quantity:    s.Quantity,
		UnitPrice:   s.UnitPrice,
		Amount:      s.Amount,
		CreatedAt:   s.CreatedAt,
	}
}

// ToPurchaseResponse convierte la entidad a DTO.
func ToPurchaseResponse(p *entity.Purchase) *dto.PurchaseResponse {
	if p == nil {
		return nil
	}
	return &dto.PurchaseResponse{
		ID:          p.ID,
		Date:        p.Date,
		SupplierID:  p.SupplierID,
		ProductID:   p.ProductID,
		ProductName: p.ProductName,
		Quantity:    p.Quantity,
		TotalCost:   p.TotalCost,
		CostPerUnit: p.CostPerUnit,
		CreatedAt:   p.CreatedAt,
	}
}

func derefTime(t *time.Time) time.Time {
	if t == nil {
		return time.Time{}
	}
	return *t
}
