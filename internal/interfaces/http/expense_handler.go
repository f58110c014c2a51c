package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Contable-api/internal/application/dto"
	"github.com/jhoicas/Contable-api/internal/application/usecase"
	"github.com/jhoicas/Contable-api/pkg/validate"
)

// ExpenseHandler CRUD de gastos y vista unificada gastos + compras.
type ExpenseHandler struct {
	uc  *usecase.ExpenseUseCase
	val *validate.Validator
}

func NewExpenseHandler(uc *usecase.ExpenseUseCase, val *validate.Validator) *ExpenseHandler {
	return &ExpenseHandler{uc: uc, val: val}
}

func (h *ExpenseHandler) Create(c *fiber.Ctx) error {
	id, ok := requireIdentity(c)
	if !ok {
		return nil
	}
	var in dto.CreateExpenseRequest
	if !bindJSON(c, h.val, &in) {
		return nil
	}
	out, err := h.uc.Create(c.UserContext(), id, in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

func (h *ExpenseHandler) GetByID(c *fiber.Ctx) error {
	id, ok := requireIdentity(c)
	if !ok {
		return nil
	}
	out, err := h.uc.GetByID(c.UserContext(), id, c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// List gastos del período (?from=&to=), más recientes primero.
func (h *ExpenseHandler) List(c *fiber.Ctx) error {
	id, ok := requireIdentity(c)
	if !ok {
		return nil
	}
	period, err := parsePeriod(c)
	if err != nil {
		return writeError(c, err)
	}
	out, err := h.uc.List(c.UserContext(), id, period, parsePage(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Entries unión de gastos y compras ordenada por fecha desc; las compras no son borrables aquí.
func (h *ExpenseHandler) Entries(c *fiber.Ctx) error {
	id, ok := requireIdentity(c)
	if !ok {
		return nil
	}
	period, err := parsePeriod(c)
	if err != nil {
		return writeError(c, err)
	}
	out, err := h.uc.EntriesResponse(c.UserContext(), id, period)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(fiber.Map{"items": out})
}

func (h *ExpenseHandler) Update(c *fiber.Ctx) error {
	id, ok := requireIdentity(c)
	if !ok {
		return nil
	}
	var in dto.UpdateExpenseRequest
	if !bindJSON(c, h.val, &in) {
		return nil
	}
	out, err := h.uc.Update(c.UserContext(), id, c.Params("id"), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

func (h *ExpenseHandler) Delete(c *fiber.Ctx) error {
	id, ok := requireIdentity(c)
	if !ok {
		return nil
	}
	if err := h.uc.Delete(c.UserContext(), id, c.Params("id")); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
