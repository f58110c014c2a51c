package http

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Contable-api/internal/application/analytics"
)

// MetricsHandler métricas derivadas (ingresos, gastos, utilidad, margen) y reporte PDF.
type MetricsHandler struct {
	metrics *analytics.MetricsUseCase
	reports *analytics.ReportUseCase
}

// NewMetricsHandler construye el handler. reports puede ser nil (PDF deshabilitado).
func NewMetricsHandler(metrics *analytics.MetricsUseCase, reports *analytics.ReportUseCase) *MetricsHandler {
	return &MetricsHandler{metrics: metrics, reports: reports}
}

// Summary godoc
// @Summary      Resumen del período: ingresos, gastos (incluye compras), utilidad y margen
// @Tags         metrics
// @Security     Bearer
// @Produce      json
// @Param        from  query  string  false  "Inicio (YYYY-MM-DD o RFC3339)"
// @Param        to    query  string  false  "Fin (YYYY-MM-DD o RFC3339)"
// @Success      200  {object}  dto.MetricsSummaryDTO
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/metrics/summary [get]
func (h *MetricsHandler) Summary(c *fiber.Ctx) error {
	id, ok := requireIdentity(c)
	if !ok {
		return nil
	}
	period, err := parsePeriod(c)
	if err != nil {
		return writeError(c, err)
	}
	out, err := h.metrics.Summary(c.UserContext(), id, period)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Dashboard godoc
// @Summary      Resumen de hoy y del mes en curso
// @Tags         metrics
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.DashboardDTO
// @Router       /api/metrics/dashboard [get]
func (h *MetricsHandler) Dashboard(c *fiber.Ctx) error {
	id, ok := requireIdentity(c)
	if !ok {
		return nil
	}
	out, err := h.metrics.Dashboard(c.UserContext(), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// SummaryPDF godoc
// @Summary      Reporte PDF del resumen y los egresos del período
// @Tags         reports
// @Security     Bearer
// @Produce      application/pdf
// @Param        from  query  string  false  "Inicio (YYYY-MM-DD o RFC3339)"
// @Param        to    query  string  false  "Fin (YYYY-MM-DD o RFC3339)"
// @Success      200
// @Router       /api/reports/summary.pdf [get]
func (h *MetricsHandler) SummaryPDF(c *fiber.Ctx) error {
	id, ok := requireIdentity(c)
	if !ok {
		return nil
	}
	period, err := parsePeriod(c)
	if err != nil {
		return writeError(c, err)
	}
	pdf, err := h.reports.SummaryPDF(c.UserContext(), id, period)
	if err != nil {
		return writeError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`inline; filename="resumen-%s.pdf"`, c.Query("from", "historial")))
	return c.Send(pdf)
}
