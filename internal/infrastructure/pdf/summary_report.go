// Package pdf genera el reporte de resumen del período en A4 usando Maroto v2.
//
// Layout de la página:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Negocio + período     │  Fecha de generación       │
//	│  ─────────────────────────────────────────────────────────  │
//	│  MÉTRICAS: Ingresos | Gastos | Utilidad | Margen            │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA VENTAS: Fecha | Producto | Cant | Monto              │
//	│  TABLA EGRESOS: Fecha | Tipo | Detalle | Monto              │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"time"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/jhoicas/Contable-api/internal/application/ports"
	"github.com/jhoicas/Contable-api/internal/domain/entity"
)

var _ ports.ReportRenderer = (*SummaryRenderer)(nil)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorLoss    = &props.Color{Red: 170, Green: 30, Blue: 30}
)

const dateLayout = "02/01/2006"

// SummaryRenderer implementa ports.ReportRenderer.
type SummaryRenderer struct {
	printer *message.Printer
}

// NewSummaryRenderer construye el generador con formato numérico es-CO (1.234,50).
func NewSummaryRenderer() *SummaryRenderer {
	return &SummaryRenderer{printer: message.NewPrinter(language.MustParse("es-CO"))}
}

// RenderSummary genera el PDF y devuelve sus bytes.
func (g *SummaryRenderer) RenderSummary(_ context.Context, r ports.SummaryReport) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Resumen contable", true).
		WithAuthor(r.BusinessName, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(g.headerRow(r))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(g.metricsRow(r))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(sectionTitle(fmt.Sprintf("VENTAS (%d)", len(r.Sales))))
	m.AddRows(tableHeader([]string{"Fecha", "Producto", "Cantidad", "Monto"}))
	m.AddRows(g.saleRows(r.Sales)...)

	m.AddRows(line.NewRow(3))
	m.AddRows(sectionTitle(fmt.Sprintf("GASTOS Y COMPRAS (%d)", len(r.Entries))))
	m.AddRows(tableHeader([]string{"Fecha", "Tipo", "Detalle", "Monto"}))
	m.AddRows(g.entryRows(r.Entries)...)

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

func (g *SummaryRenderer) headerRow(r ports.SummaryReport) core.Row {
	return row.New(18).Add(
		col.New(8).Add(
			text.New(r.BusinessName, props.Text{Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1}),
			text.New("Período: "+periodLabel(r.From, r.To), props.Text{Size: 9, Top: 9, Color: colorGray}),
		),
		col.New(4).Add(
			text.New("RESUMEN CONTABLE", props.Text{Style: fontstyle.Bold, Size: 8, Align: align.Right, Color: colorPrimary, Top: 1}),
			text.New("Generado: "+r.GeneratedAt.Format(dateLayout+" 15:04"), props.Text{Size: 8, Align: align.Right, Top: 9, Color: colorGray}),
		),
	)
}

func (g *SummaryRenderer) metricsRow(r ports.SummaryReport) core.Row {
	s := r.Summary
	cell := func(label, value string, color *props.Color) core.Col {
		return col.New(3).Add(
			text.New(label, props.Text{Size: 8, Align: align.Center, Color: colorGray, Top: 2}),
			text.New(value, props.Text{Style: fontstyle.Bold, Size: 11, Align: align.Center, Color: color, Top: 8}),
		)
	}
	profitColor := colorPrimary
	if s.Profit.IsNegative() {
		profitColor = colorLoss
	}
	return row.New(18).Add(
		cell("Ingresos", g.money(s.Revenue), colorPrimary),
		cell("Gastos (incl. compras)", g.money(s.Expenses), colorPrimary),
		cell("Utilidad", g.money(s.Profit), profitColor),
		cell("Margen", g.printer.Sprintf("%.2f%%", s.MarginPercent.InexactFloat64()), profitColor),
	)
}

func (g *SummaryRenderer) saleRows(sales []*entity.Sale) []core.Row {
	if len(sales) == 0 {
		return []core.Row{emptyRow("Sin ventas en el período")}
	}
	rows := make([]core.Row, 0, len(sales))
	for _, s := range sales {
		rows = append(rows, dataRow(
			s.Date.Format(dateLayout),
			s.ProductName,
			s.Quantity.String(),
			g.money(s.Amount),
		))
	}
	return rows
}

func (g *SummaryRenderer) entryRows(entries []entity.ExpenseEntry) []core.Row {
	if len(entries) == 0 {
		return []core.Row{emptyRow("Sin gastos ni compras en el período")}
	}
	rows := make([]core.Row, 0, len(entries))
	for _, e := range entries {
		kind, detail := "Gasto", ""
		switch {
		case e.Kind == entity.EntryKindPurchase && e.Purchase != nil:
			kind = "Compra"
			detail = fmt.Sprintf("%s x %s", e.Purchase.ProductName, e.Purchase.Quantity.String())
		case e.Expense != nil:
			detail = e.Expense.Category
			if e.Expense.Description != "" {
				detail += ": " + e.Expense.Description
			}
		}
		rows = append(rows, dataRow(e.Date().Format(dateLayout), kind, detail, g.money(e.Amount())))
	}
	return rows
}

// ── helpers ───────────────────────────────────────────────────────────────────

func sectionTitle(s string) core.Row {
	return row.New(7).Add(col.New(12).Add(
		text.New(s, props.Text{Style: fontstyle.Bold, Size: 9, Color: colorPrimary, Top: 2}),
	))
}

// columnas 2 | 5 | 2 | 3
var columnSizes = []int{2, 5, 2, 3}

func tableHeader(labels []string) core.Row {
	cols := make([]core.Col, len(labels))
	for i, l := range labels {
		a := align.Left
		if i == len(labels)-1 {
			a = align.Right
		}
		cols[i] = col.New(columnSizes[i]).Add(text.New(l, props.Text{Style: fontstyle.Bold, Size: 8, Align: a, Top: 1, Right: 1}))
	}
	return row.New(6).Add(cols...)
}

func dataRow(values ...string) core.Row {
	cols := make([]core.Col, len(values))
	for i, v := range values {
		a := align.Left
		if i == len(values)-1 {
			a = align.Right
		}
		cols[i] = col.New(columnSizes[i]).Add(text.New(v, props.Text{Size: 8, Align: a, Top: 1, Right: 1}))
	}
	return row.New(6).Add(cols...)
}

func emptyRow(msg string) core.Row {
	return row.New(6).Add(col.New(12).Add(text.New(msg, props.Text{Size: 8, Color: colorGray, Top: 1})))
}

// money formatea con separadores locales: 1234.5 -> "$1.234,50".
func (g *SummaryRenderer) money(d decimal.Decimal) string {
	return g.printer.Sprintf("$%.2f", d.Round(2).InexactFloat64())
}

func periodLabel(from, to *time.Time) string {
	switch {
	case from == nil && to == nil:
		return "todo el historial"
	case from == nil:
		return "hasta " + to.Format(dateLayout)
	case to == nil:
		return "desde " + from.Format(dateLayout)
	}
	return from.Format(dateLayout) + " - " + to.Format(dateLayout)
}
