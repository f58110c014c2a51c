package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Contable-api/internal/application/dto"
	"github.com/jhoicas/Contable-api/internal/domain"
	"github.com/jhoicas/Contable-api/pkg/validate"
)

// bindJSON parsea el cuerpo y lo valida. Responde 400 y devuelve false si falla.
func bindJSON(c *fiber.Ctx, v *validate.Validator, out interface{}) bool {
	if err := c.BodyParser(out); err != nil {
		_ = c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
		return false
	}
	if err := v.Struct(out); err != nil {
		_ = writeError(c, err)
		return false
	}
	return true
}

// bindOptionalJSON como bindJSON pero acepta cuerpo vacío (DELETE con datos redundantes opcionales).
func bindOptionalJSON(c *fiber.Ctx, v *validate.Validator, out interface{}) bool {
	if len(c.Body()) == 0 {
		return true
	}
	return bindJSON(c, v, out)
}

// parsePage lee limit/offset con los valores por defecto de dto.PageRequest.
func parsePage(c *fiber.Ctx) dto.PageRequest {
	p := dto.PageRequest{Limit: c.QueryInt("limit", 20), Offset: c.QueryInt("offset", 0)}
	p.DefaultPage()
	return p
}

// parsePeriod lee from/to como RFC3339 o YYYY-MM-DD. Un "to" sin hora incluye el día completo.
func parsePeriod(c *fiber.Ctx) (dto.PeriodRequest, error) {
	var p dto.PeriodRequest
	fields := map[string]string{}
	if s := c.Query("from"); s != "" {
		t, _, err := parseDate(s)
		if err != nil {
			fields["from"] = "fecha inválida (YYYY-MM-DD o RFC3339)"
		} else {
			p.From = &t
		}
	}
	if s := c.Query("to"); s != "" {
		t, dateOnly, err := parseDate(s)
		if err != nil {
			fields["to"] = "fecha inválida (YYYY-MM-DD o RFC3339)"
		} else {
			if dateOnly {
				t = t.Add(24*time.Hour - time.Nanosecond)
			}
			p.To = &t
		}
	}
	if p.From != nil && p.To != nil && p.To.Before(*p.From) {
		fields["to"] = "debe ser posterior a from"
	}
	if len(fields) > 0 {
		return p, &domain.ValidationError{Fields: fields}
	}
	return p, nil
}

func parseDate(s string) (time.Time, bool, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, false, nil
	}
	t, err := time.Parse(time.DateOnly, s)
	return t, true, err
}
