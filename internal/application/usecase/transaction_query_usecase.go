package usecase

import (
	"context"

	"github.com/jhoicas/Contable-api/internal/application/dto"
	"github.com/jhoicas/Contable-api/internal/application/ledger"
	"github.com/jhoicas/Contable-api/internal/domain"
	"github.com/jhoicas/Contable-api/internal/domain/entity"
	"github.com/jhoicas/Contable-api/internal/domain/repository"
)

// TransactionQueryUseCase consultas de solo lectura sobre ventas y compras.
// Las escrituras pasan por ledger.StockLedgerUseCase.
type TransactionQueryUseCase struct {
	saleRepo     repository.SaleRepository
	purchaseRepo repository.PurchaseRepository
}

// NewTransactionQueryUseCase construye el caso de uso.
func NewTransactionQueryUseCase(saleRepo repository.SaleRepository, purchaseRepo repository.PurchaseRepository) *TransactionQueryUseCase {
	return &TransactionQueryUseCase{saleRepo: saleRepo, purchaseRepo: purchaseRepo}
}

// GetSale obtiene una venta del negocio.
func (uc *TransactionQueryUseCase) GetSale(ctx context.Context, id entity.Identity, saleID string) (*dto.SaleResponse, error) {
	s, err := uc.saleRepo.GetByID(ctx, id.BusinessID, saleID)
	if err != nil {
		return nil, err
	}
	if s == nil {
		return nil, domain.ErrNotFound
	}
	return ledger.ToSaleResponse(s), nil
}

// ListSales lista ventas del período, más recientes primero.
func (uc *TransactionQueryUseCase) ListSales(ctx context.Context, id entity.Identity, period dto.PeriodRequest, page dto.PageRequest) (*dto.SaleListResponse, error) {
	page.DefaultPage()
	list, err := uc.saleRepo.ListByBusiness(ctx, id.BusinessID, toPeriod(period), repository.Page{Limit: page.Limit, Offset: page.Offset})
	if err != nil {
		return nil, err
	}
	items := make([]dto.SaleResponse, 0, len(list))
	for _, s := range list {
		items = append(items, *ledger.ToSaleResponse(s))
	}
	return &dto.SaleListResponse{Items: items, Page: dto.PageResponse{Limit: page.Limit, Offset: page.Offset}}, nil
}

// GetPurchase obtiene una compra del negocio.
func (uc *TransactionQueryUseCase) GetPurchase(ctx context.Context, id entity.Identity, purchaseID string) (*dto.PurchaseResponse, error) {
	p, err := uc.purchaseRepo.GetByID(ctx, id.BusinessID, purchaseID)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.ErrNotFound
	}
	return ledger.ToPurchaseResponse(p), nil
}

// ListPurchases lista compras del período, más recientes primero.
func (uc *TransactionQueryUseCase) ListPurchases(ctx context.Context, id entity.Identity, period dto.PeriodRequest, page dto.PageRequest) (*dto.PurchaseListResponse, error) {
	page.DefaultPage()
	list, err := uc.purchaseRepo.ListByBusiness(ctx, id.BusinessID, toPeriod(period), repository.Page{Limit: page.Limit, Offset: page.Offset})
	if err != nil {
		return nil, err
	}
	items := make([]dto.PurchaseResponse, 0, len(list))
	for _, p := range list {
		items = append(items, *ledger.ToPurchaseResponse(p))
	}
	return &dto.PurchaseListResponse{Items: items, Page: dto.PageResponse{Limit: page.Limit, Offset: page.Offset}}, nil
}
