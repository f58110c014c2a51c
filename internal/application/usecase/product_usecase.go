package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Contable-api/internal/application/dto"
	"github.com/jhoicas/Contable-api/internal/application/ledger"
	"github.com/jhoicas/Contable-api/internal/domain"
	"github.com/jhoicas/Contable-api/internal/domain/entity"
	"github.com/jhoicas/Contable-api/internal/domain/repository"
	"github.com/jhoicas/Contable-api/pkg/logger"
)

// ProductUseCase casos de uso CRUD para productos. El stock entra por compras y sale por
// ventas; la edición directa de cantidad se aplica con la fila bloqueada.
type ProductUseCase struct {
	repo     repository.ProductRepository
	txRunner ledger.TxRunner
	log      *logger.Logger
}

// NewProductUseCase construye el caso de uso. log puede ser nil.
func NewProductUseCase(repo repository.ProductRepository, txRunner ledger.TxRunner, log *logger.Logger) *ProductUseCase {
	if log == nil {
		log = logger.Nop()
	}
	return &ProductUseCase{repo: repo, txRunner: txRunner, log: log}
}

// Create crea un nuevo producto con stock y costo en 0.
func (uc *ProductUseCase) Create(ctx context.Context, id entity.Identity, in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, domain.NewValidationError("name", "es obligatorio")
	}
	if in.SellingPrice.IsNegative() {
		return nil, domain.NewValidationError("selling_price", "no puede ser negativo")
	}
	now := time.Now().UTC()
	product := &entity.Product{
		ID:            uuid.New().String(),
		BusinessID:    id.BusinessID,
		Name:          name,
		SellingPrice:  in.SellingPrice,
		PurchasePrice: decimal.Zero,
		Quantity:      decimal.Zero,
		CostPerUnit:   decimal.Zero,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := uc.repo.Create(ctx, product); err != nil {
		return nil, err
	}
	return toProductResponse(product), nil
}

// GetByID obtiene un producto del negocio. ErrNotFound si no existe o es de otro negocio.
func (uc *ProductUseCase) GetByID(ctx context.Context, id entity.Identity, productID string) (*dto.ProductResponse, error) {
	product, err := uc.repo.GetByID(ctx, id.BusinessID, productID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	return toProductResponse(product), nil
}

// Update edita nombre, precio de venta y, como ajuste manual, la cantidad.
// Costo unitario y base de costo solo cambian por compras.
func (uc *ProductUseCase) Update(ctx context.Context, id entity.Identity, productID string, in dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	if in.Name != nil && strings.TrimSpace(*in.Name) == "" {
		return nil, domain.NewValidationError("name", "no puede estar vacío")
	}
	if in.SellingPrice != nil && in.SellingPrice.IsNegative() {
		return nil, domain.NewValidationError("selling_price", "no puede ser negativo")
	}
	if in.Quantity != nil && in.Quantity.IsNegative() {
		return nil, domain.NewValidationError("quantity", "no puede ser negativo")
	}

	var (
		updated  *entity.Product
		previous decimal.Decimal
	)
	err := uc.txRunner.Run(ctx, func(
		productRepo repository.ProductRepository,
		_ repository.SaleRepository,
		_ repository.PurchaseRepository,
		_ repository.SupplierRepository,
	) error {
		product, err := productRepo.GetForUpdate(ctx, id.BusinessID, productID)
		if err != nil {
			return err
		}
		if product == nil {
			return domain.ErrNotFound
		}
		if in.Name != nil {
			product.Name = strings.TrimSpace(*in.Name)
		}
		if in.SellingPrice != nil {
			product.SellingPrice = *in.SellingPrice
		}
		previous = product.Quantity
		if in.Quantity != nil {
			product.Quantity = *in.Quantity
		}
		product.UpdatedAt = time.Now().UTC()
		if err := productRepo.Update(ctx, product); err != nil {
			return err
		}
		updated = product
		return nil
	})
	if err != nil {
		return nil, err
	}
	if !previous.Equal(updated.Quantity) {
		uc.log.Business(id.BusinessID).Warn().
			Str("product_id", updated.ID).
			Str("user_id", id.UserID).
			Str("from", previous.String()).
			Str("to", updated.Quantity.String()).
			Msg("ajuste manual de stock")
	}
	return toProductResponse(updated), nil
}

// List lista productos del negocio con paginación.
func (uc *ProductUseCase) List(ctx context.Context, id entity.Identity, page dto.PageRequest) (*dto.ProductListResponse, error) {
	page.DefaultPage()
	list, err := uc.repo.ListByBusiness(ctx, id.BusinessID, repository.Page{Limit: page.Limit, Offset: page.Offset})
	if err != nil {
		return nil, err
	}
	items := make([]dto.ProductResponse, 0, len(list))
	for _, p := range list {
		items = append(items, *toProductResponse(p))
	}
	return &dto.ProductListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset},
	}, nil
}

// Delete elimina un producto. Ventas y compras que lo referencian conservan el nombre
// y quedan sin product_id.
func (uc *ProductUseCase) Delete(ctx context.Context, id entity.Identity, productID string) error {
	return uc.repo.Delete(ctx, id.BusinessID, productID)
}

func toProductResponse(p *entity.Product) *dto.ProductResponse {
	if p == nil {
		return nil
	}
	return &dto.ProductResponse{
		ID:            p.ID,
		BusinessID:    p.BusinessID,
		Name:          p.Name,
		PurchasePrice: p.PurchasePrice,
		SellingPrice:  p.SellingPrice,
		Quantity:      p.Quantity,
		CostPerUnit:   p.CostPerUnit,
		UnitProfit:    p.UnitProfit(),
		CreatedAt:     p.CreatedAt,
		UpdatedAt:     p.UpdatedAt,
	}
}
