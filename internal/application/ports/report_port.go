package ports

import (
	"context"
	"time"

	"github.com/jhoicas/Contable-api/internal/domain/entity"
	"github.com/jhoicas/Contable-api/internal/domain/ledger"
)

// SummaryReport datos del reporte de resumen del período.
type SummaryReport struct {
	BusinessName string
	From         *time.Time
	To           *time.Time
	GeneratedAt  time.Time
	Summary      ledger.Summary
	Entries      []entity.ExpenseEntry
	Sales        []*entity.Sale
}

// ReportRenderer genera la representación PDF de un SummaryReport.
type ReportRenderer interface {
	RenderSummary(ctx context.Context, report SummaryReport) ([]byte, error)
}
