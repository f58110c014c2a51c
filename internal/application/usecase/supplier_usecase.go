package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/Contable-api/internal/application/dto"
	"github.com/jhoicas/Contable-api/internal/domain"
	"github.com/jhoicas/Contable-api/internal/domain/entity"
	"github.com/jhoicas/Contable-api/internal/domain/repository"
)

// SupplierUseCase casos de uso CRUD para proveedores.
type SupplierUseCase struct {
	repo         repository.SupplierRepository
	purchaseRepo repository.PurchaseRepository
}

// NewSupplierUseCase construye el caso de uso.
func NewSupplierUseCase(repo repository.SupplierRepository, purchaseRepo repository.PurchaseRepository) *SupplierUseCase {
	return &SupplierUseCase{repo: repo, purchaseRepo: purchaseRepo}
}

// Create registra un proveedor.
func (uc *SupplierUseCase) Create(ctx context.Context, id entity.Identity, in dto.CreateSupplierRequest) (*dto.SupplierResponse, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, domain.NewValidationError("name", "es obligatorio")
	}
	now := time.Now().UTC()
	s := &entity.Supplier{
		ID:           uuid.New().String(),
		BusinessID:   id.BusinessID,
		Name:         name,
		ProductTypes: strings.TrimSpace(in.ProductTypes),
		PurchaseDays: strings.TrimSpace(in.PurchaseDays),
		Contact:      strings.TrimSpace(in.Contact),
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.repo.Create(ctx, s); err != nil {
		return nil, err
	}
	return toSupplierResponse(s), nil
}

// GetByID obtiene un proveedor del negocio.
func (uc *SupplierUseCase) GetByID(ctx context.Context, id entity.Identity, supplierID string) (*dto.SupplierResponse, error) {
	s, err := uc.repo.GetByID(ctx, id.BusinessID, supplierID)
	if err != nil {
		return nil, err
	}
	if s == nil {
		return nil, domain.ErrNotFound
	}
	return toSupplierResponse(s), nil
}

// Update actualiza los campos enviados.
func (uc *SupplierUseCase) Update(ctx context.Context, id entity.Identity, supplierID string, in dto.UpdateSupplierRequest) (*dto.SupplierResponse, error) {
	s, err := uc.repo.GetByID(ctx, id.BusinessID, supplierID)
	if err != nil {
		return nil, err
	}
	if s == nil {
		return nil, domain.ErrNotFound
	}
	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" {
			return nil, domain.NewValidationError("name", "no puede estar vacío")
		}
		s.Name = name
	}
	if in.ProductTypes != nil {
		s.ProductTypes = strings.TrimSpace(*in.ProductTypes)
	}
	if in.PurchaseDays != nil {
		s.PurchaseDays = strings.TrimSpace(*in.PurchaseDays)
	}
	if in.Contact != nil {
		s.Contact = strings.TrimSpace(*in.Contact)
	}
	s.UpdatedAt = time.Now().UTC()
	if err := uc.repo.Update(ctx, s); err != nil {
		return nil, err
	}
	return toSupplierResponse(s), nil
}

// List lista proveedores del negocio.
func (uc *SupplierUseCase) List(ctx context.Context, id entity.Identity, page dto.PageRequest) (*dto.SupplierListResponse, error) {
	page.DefaultPage()
	list, err := uc.repo.ListByBusiness(ctx, id.BusinessID, repository.Page{Limit: page.Limit, Offset: page.Offset})
	if err != nil {
		return nil, err
	}
	items := make([]dto.SupplierResponse, 0, len(list))
	for _, s := range list {
		items = append(items, *toSupplierResponse(s))
	}
	return &dto.SupplierListResponse{Items: items, Page: dto.PageResponse{Limit: page.Limit, Offset: page.Offset}}, nil
}

// Delete elimina el proveedor. ErrConflict si tiene compras registradas.
func (uc *SupplierUseCase) Delete(ctx context.Context, id entity.Identity, supplierID string) error {
	s, err := uc.repo.GetByID(ctx, id.BusinessID, supplierID)
	if err != nil {
		return err
	}
	if s == nil {
		return domain.ErrNotFound
	}
	n, err := uc.purchaseRepo.CountBySupplier(ctx, id.BusinessID, supplierID)
	if err != nil {
		return err
	}
	if n > 0 {
		return domain.ErrConflict
	}
	return uc.repo.Delete(ctx, id.BusinessID, supplierID)
}

func toSupplierResponse(s *entity.Supplier) *dto.SupplierResponse {
	return &dto.SupplierResponse{
		ID:           s.ID,
		Name:         s.Name,
		ProductTypes: s.ProductTypes,
		PurchaseDays: s.PurchaseDays,
		Contact:      s.Contact,
		CreatedAt:    s.CreatedAt,
		UpdatedAt:    s.UpdatedAt,
	}
}
