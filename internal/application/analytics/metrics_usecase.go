// Package analytics contiene los casos de uso de métricas derivadas y reportes del negocio.
package analytics

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/jhoicas/Contable-api/internal/application/dto"
	"github.com/jhoicas/Contable-api/internal/domain/entity"
	"github.com/jhoicas/Contable-api/internal/domain/ledger"
	"github.com/jhoicas/Contable-api/internal/domain/repository"
)

// MetricsUseCase calcula ingresos, gastos, utilidad y margen en cada petición.
// No hay caché: siempre se leen ventas, gastos y compras actuales.
type MetricsUseCase struct {
	saleRepo     repository.SaleRepository
	expenseRepo  repository.ExpenseRepository
	purchaseRepo repository.PurchaseRepository
	now          func() time.Time
}

// NewMetricsUseCase construye el caso de uso.
func NewMetricsUseCase(saleRepo repository.SaleRepository, expenseRepo repository.ExpenseRepository, purchaseRepo repository.PurchaseRepository) *MetricsUseCase {
	return &MetricsUseCase{saleRepo: saleRepo, expenseRepo: expenseRepo, purchaseRepo: purchaseRepo, now: time.Now}
}

// Dataset colecciones del período usadas por el agregador.
type Dataset struct {
	Sales     []*entity.Sale
	Expenses  []*entity.Expense
	Purchases []*entity.Purchase
}

// Load lee en paralelo ventas, gastos y compras del período.
func (uc *MetricsUseCase) Load(ctx context.Context, businessID string, period repository.Period) (*Dataset, error) {
	var ds Dataset
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		ds.Sales, err = uc.saleRepo.ListByBusiness(gctx, businessID, period, repository.AllRows)
		return
	})
	g.Go(func() (err error) {
		ds.Expenses, err = uc.expenseRepo.ListByBusiness(gctx, businessID, period, repository.AllRows)
		return
	})
	g.Go(func() (err error) {
		ds.Purchases, err = uc.purchaseRepo.ListByBusiness(gctx, businessID, period, repository.AllRows)
		return
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("metrics: cargar período: %w", err)
	}
	return &ds, nil
}

// Summary devuelve las métricas del período (sin límites = todo el historial).
func (uc *MetricsUseCase) Summary(ctx context.Context, id entity.Identity, period dto.PeriodRequest) (*dto.MetricsSummaryDTO, error) {
	p := repository.Period{From: period.From, To: period.To}
	ds, err := uc.Load(ctx, id.BusinessID, p)
	if err != nil {
		return nil, err
	}
	out := ToSummaryDTO(ledger.Summarize(ds.Sales, ds.Expenses, ds.Purchases), p)
	return &out, nil
}

// Dashboard resume el día y el mes en curso, consultados en paralelo.
func (uc *MetricsUseCase) Dashboard(ctx context.Context, id entity.Identity) (*dto.DashboardDTO, error) {
	now := uc.now()
	todayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	todayEnd := todayStart.Add(24*time.Hour - time.Nanosecond)
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())

	var out dto.DashboardDTO
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		s, err := uc.Summary(gctx, id, dto.PeriodRequest{From: &todayStart, To: &todayEnd})
		if err == nil {
			out.Today = *s
		}
		return err
	})
	g.Go(func() error {
		s, err := uc.Summary(gctx, id, dto.PeriodRequest{From: &monthStart, To: &todayEnd})
		if err == nil {
			out.Month = *s
		}
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return &out, nil
}

// ToSummaryDTO convierte el resumen de dominio a DTO.
func ToSummaryDTO(s ledger.Summary, p repository.Period) dto.MetricsSummaryDTO {
	return dto.MetricsSummaryDTO{
		From:          p.From,
		To:            p.To,
		Revenue:       s.Revenue,
		Expenses:      s.Expenses,
		ExpenseTotal:  s.ExpenseTotal,
		PurchaseTotal: s.PurchaseTotal,
		Profit:        s.Profit,
		Margin:        s.Margin,
		MarginPercent: s.MarginPercent,
		SalesCount:    s.SalesCount,
		ExpenseCount:  s.ExpenseCount,
		PurchaseCount: s.PurchaseCount,
	}
}
