package usecase

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/jhoicas/Contable-api/internal/application/dto"
	"github.com/jhoicas/Contable-api/internal/application/ledger"
	"github.com/jhoicas/Contable-api/internal/domain"
	"github.com/jhoicas/Contable-api/internal/domain/entity"
	"github.com/jhoicas/Contable-api/internal/domain/repository"
)

// ExpenseUseCase casos de uso de gastos y de la vista combinada gastos + compras.
type ExpenseUseCase struct {
	repo         repository.ExpenseRepository
	purchaseRepo repository.PurchaseRepository
}

// NewExpenseUseCase construye el caso de uso.
func NewExpenseUseCase(repo repository.ExpenseRepository, purchaseRepo repository.PurchaseRepository) *ExpenseUseCase {
	return &ExpenseUseCase{repo: repo, purchaseRepo: purchaseRepo}
}

// Create registra un gasto. Sin fecha se usa la fecha actual.
func (uc *ExpenseUseCase) Create(ctx context.Context, id entity.Identity, in dto.CreateExpenseRequest) (*dto.ExpenseResponse, error) {
	category := strings.TrimSpace(in.Category)
	if category == "" {
		return nil, domain.NewValidationError("category", "es obligatorio")
	}
	if !in.Amount.IsPositive() {
		return nil, domain.NewValidationError("amount", "debe ser mayor que 0")
	}
	now := time.Now().UTC()
	date := now
	if in.Date != nil && !in.Date.IsZero() {
		date = *in.Date
	}
	e := &entity.Expense{
		ID:          uuid.New().String(),
		BusinessID:  id.BusinessID,
		Date:        date,
		Category:    category,
		Description: strings.TrimSpace(in.Description),
		Amount:      in.Amount,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := uc.repo.Create(ctx, e); err != nil {
		return nil, err
	}
	return toExpenseResponse(e), nil
}

// GetByID obtiene un gasto del negocio.
func (uc *ExpenseUseCase) GetByID(ctx context.Context, id entity.Identity, expenseID string) (*dto.ExpenseResponse, error) {
	e, err := uc.repo.GetByID(ctx, id.BusinessID, expenseID)
	if err != nil {
		return nil, err
	}
	if e == nil {
		return nil, domain.ErrNotFound
	}
	return toExpenseResponse(e), nil
}

// Update actualiza los campos enviados de un gasto.
func (uc *ExpenseUseCase) Update(ctx context.Context, id entity.Identity, expenseID string, in dto.UpdateExpenseRequest) (*dto.ExpenseResponse, error) {
	e, err := uc.repo.GetByID(ctx, id.BusinessID, expenseID)
	if err != nil {
		return nil, err
	}
	if e == nil {
		return nil, domain.ErrNotFound
	}
	if in.Date != nil && !in.Date.IsZero() {
		e.Date = *in.Date
	}
	if in.Category != nil {
		c := strings.TrimSpace(*in.Category)
		if c == "" {
			return nil, domain.NewValidationError("category", "no puede estar vacío")
		}
		e.Category = c
	}
	if in.Description != nil {
		e.Description = strings.TrimSpace(*in.Description)
	}
	if in.Amount != nil {
		if !in.Amount.IsPositive() {
			return nil, domain.NewValidationError("amount", "debe ser mayor que 0")
		}
		e.Amount = *in.Amount
	}
	e.UpdatedAt = time.Now().UTC()
	if err := uc.repo.Update(ctx, e); err != nil {
		return nil, err
	}
	return toExpenseResponse(e), nil
}

// List lista gastos del período.
func (uc *ExpenseUseCase) List(ctx context.Context, id entity.Identity, period dto.PeriodRequest, page dto.PageRequest) (*dto.ExpenseListResponse, error) {
	page.DefaultPage()
	list, err := uc.repo.ListByBusiness(ctx, id.BusinessID, toPeriod(period), repository.Page{Limit: page.Limit, Offset: page.Offset})
	if err != nil {
		return nil, err
	}
	items := make([]dto.ExpenseResponse, 0, len(list))
	for _, e := range list {
		items = append(items, *toExpenseResponse(e))
	}
	return &dto.ExpenseListResponse{Items: items, Page: dto.PageResponse{Limit: page.Limit, Offset: page.Offset}}, nil
}

// Delete elimina un gasto. Las compras no se borran desde aquí.
func (uc *ExpenseUseCase) Delete(ctx context.Context, id entity.Identity, expenseID string) error {
	return uc.repo.Delete(ctx, id.BusinessID, expenseID)
}

// Entries devuelve la unión de gastos y compras del período, ordenada por fecha descendente.
func (uc *ExpenseUseCase) Entries(ctx context.Context, id entity.Identity, period dto.PeriodRequest) ([]entity.ExpenseEntry, error) {
	p := toPeriod(period)
	var (
		expenses  []*entity.Expense
		purchases []*entity.Purchase
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		expenses, err = uc.repo.ListByBusiness(gctx, id.BusinessID, p, repository.AllRows)
		return err
	})
	g.Go(func() error {
		var err error
		purchases, err = uc.purchaseRepo.ListByBusiness(gctx, id.BusinessID, p, repository.AllRows)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return MergeEntries(expenses, purchases), nil
}

// EntriesResponse igual que Entries pero convertido a DTO.
func (uc *ExpenseUseCase) EntriesResponse(ctx context.Context, id entity.Identity, period dto.PeriodRequest) ([]dto.ExpenseEntryResponse, error) {
	entries, err := uc.Entries(ctx, id, period)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ExpenseEntryResponse, 0, len(entries))
	for _, e := range entries {
		r := dto.ExpenseEntryResponse{
			Kind:      e.Kind,
			Date:      e.Date(),
			Amount:    e.Amount(),
			Deletable: e.Deletable(),
		}
		switch e.Kind {
		case entity.EntryKindExpense:
			r.Expense = toExpenseResponse(e.Expense)
		case entity.EntryKindPurchase:
			r.Purchase = ledger.ToPurchaseResponse(e.Purchase)
		}
		out = append(out, r)
	}
	return out, nil
}

// MergeEntries combina gastos y compras en la unión etiquetada, por fecha descendente.
func MergeEntries(expenses []*entity.Expense, purchases []*entity.Purchase) []entity.ExpenseEntry {
	entries := make([]entity.ExpenseEntry, 0, len(expenses)+len(purchases))
	for _, e := range expenses {
		entries = append(entries, entity.NewExpenseEntry(e))
	}
	for _, p := range purchases {
		entries = append(entries, entity.NewPurchaseEntry(p))
	}
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Date().After(entries[j].Date())
	})
	return entries
}

func toExpenseResponse(e *entity.Expense) *dto.ExpenseResponse {
	if e == nil {
		return nil
	}
	return &dto.ExpenseResponse{
		ID:          e.ID,
		Date:        e.Date,
		Category:    e.Category,
		Description: e.Description,
		Amount:      e.Amount,
		CreatedAt:   e.CreatedAt,
		UpdatedAt:   e.UpdatedAt,
	}
}

func toPeriod(p dto.PeriodRequest) repository.Period {
	return repository.Period{From: p.From, To: p.To}
}
