package analytics

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/Contable-api/internal/application/dto"
	"github.com/jhoicas/Contable-api/internal/application/ports"
	"github.com/jhoicas/Contable-api/internal/application/usecase"
	"github.com/jhoicas/Contable-api/internal/domain/entity"
	"github.com/jhoicas/Contable-api/internal/domain/ledger"
	"github.com/jhoicas/Contable-api/internal/domain/repository"
)

// ReportUseCase genera el PDF de resumen del período.
type ReportUseCase struct {
	metrics      *MetricsUseCase
	businessRepo repository.BusinessRepository
	renderer     ports.ReportRenderer
}

// NewReportUseCase construye el caso de uso.
func NewReportUseCase(metrics *MetricsUseCase, businessRepo repository.BusinessRepository, renderer ports.ReportRenderer) *ReportUseCase {
	return &ReportUseCase{metrics: metrics, businessRepo: businessRepo, renderer: renderer}
}

// SummaryPDF devuelve los bytes del PDF con métricas, ventas y gastos (incluidas compras).
func (uc *ReportUseCase) SummaryPDF(ctx context.Context, id entity.Identity, period dto.PeriodRequest) ([]byte, error) {
	business, err := uc.businessRepo.GetByID(ctx, id.BusinessID)
	if err != nil {
		return nil, err
	}
	name := ""
	if business != nil {
		name = business.Name
	}
	p := repository.Period{From: period.From, To: period.To}
	ds, err := uc.metrics.Load(ctx, id.BusinessID, p)
	if err != nil {
		return nil, err
	}
	report := ports.SummaryReport{
		BusinessName: name,
		From:         period.From,
		To:           period.To,
		GeneratedAt:  uc.metrics.now(),
		Summary:      ledger.Summarize(ds.Sales, ds.Expenses, ds.Purchases),
		Entries:      usecase.MergeEntries(ds.Expenses, ds.Purchases),
		Sales:        ds.Sales,
	}
	start := time.Now()
	out, err := uc.renderer.RenderSummary(ctx, report)
	if err != nil {
		return nil, fmt.Errorf("report: generar PDF (%s): %w", time.Since(start), err)
	}
	return out, nil
}
