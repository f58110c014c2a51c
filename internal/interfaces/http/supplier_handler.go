package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Contable-api/internal/application/dto"
	"github.com/jhoicas/Contable-api/internal/application/usecase"
	"github.com/jhoicas/Contable-api/pkg/validate"
)

// SupplierHandler CRUD de proveedores.
type SupplierHandler struct {
	uc  *usecase.SupplierUseCase
	val *validate.Validator
}

func NewSupplierHandler(uc *usecase.SupplierUseCase, val *validate.Validator) *SupplierHandler {
	return &SupplierHandler{uc: uc, val: val}
}

func (h *SupplierHandler) Create(c *fiber.Ctx) error {
	id, ok := requireIdentity(c)
	if !ok {
		return nil
	}
	var in dto.CreateSupplierRequest
	if !bindJSON(c, h.val, &in) {
		return nil
	}
	out, err := h.uc.Create(c.UserContext(), id, in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

func (h *SupplierHandler) GetByID(c *fiber.Ctx) error {
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

func (h *SupplierHandler) List(c *fiber.Ctx) error {
	id, ok := requireIdentity(c)
	if !ok {
		return nil
	}
	out, err := h.uc.List(c.UserContext(), id, parsePage(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

func (h *SupplierHandler) Update(c *fiber.Ctx) error {
	id, ok := requireIdentity(c)
	if !ok {
		return nil
	}
	var in dto.UpdateSupplierRequest
	if !bindJSON(c, h.val, &in) {
		return nil
	}
	out, err := h.uc.Update(c.UserContext(), id, c.Params("id"), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Delete 409 CONFLICT mientras existan compras del proveedor.
func (h *SupplierHandler) Delete(c *fiber.Ctx) error {
	id, ok := requireIdentity(c)
	if !ok {
		return nil
	}
	if err := h.uc.Delete(c.UserContext(), id, c.Params("id")); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
