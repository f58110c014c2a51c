package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Contable-api/internal/application/dto"
	"github.com/jhoicas/Contable-api/internal/application/ledger"
	"github.com/jhoicas/Contable-api/internal/application/usecase"
	"github.com/jhoicas/Contable-api/pkg/validate"
)

// LedgerHandler ventas y compras: las cuatro operaciones que mueven stock y sus consultas.
type LedgerHandler struct {
	ledger  *ledger.StockLedgerUseCase
	queries *usecase.TransactionQueryUseCase
	val     *validate.Validator
}

// NewLedgerHandler construye el handler.
func NewLedgerHandler(l *ledger.StockLedgerUseCase, q *usecase.TransactionQueryUseCase, val *validate.Validator) *LedgerHandler {
	return &LedgerHandler{ledger: l, queries: q, val: val}
}

// RecordSale godoc
// @Summary      Registrar venta (descuenta stock si trae product_id)
// @Tags         sales
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RecordSaleRequest  true  "Venta"
// @Success      201   {object}  dto.SaleResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse  "INSUFFICIENT_STOCK"
// @Router       /api/sales [post]
func (h *LedgerHandler) RecordSale(c *fiber.Ctx) error {
	id, ok := requireIdentity(c)
	if !ok {
		return nil
	}
	var in dto.RecordSaleRequest
	if !bindJSON(c, h.val, &in) {
		return nil
	}
	out, err := h.ledger.RecordSaleFromRequest(c.UserContext(), id, in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// DeleteSale godoc
// @Summary      Borrar venta y devolver unidades al stock
// @Tags         sales
// @Security     Bearer
// @Accept       json
// @Param        id    path  string                 true   "ID de la venta"
// @Param        body  body  dto.DeleteSaleRequest  false  "product_id / quantity capturados (opcional)"
// @Success      204
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/sales/{id} [delete]
func (h *LedgerHandler) DeleteSale(c *fiber.Ctx) error {
	id, ok := requireIdentity(c)
	if !ok {
		return nil
	}
	var in dto.DeleteSaleRequest
	if !bindOptionalJSON(c, h.val, &in) {
		return nil
	}
	err := h.ledger.DeleteSale(c.UserContext(), id, ledger.DeleteSaleInput{
		SaleID:    c.Params("id"),
		ProductID: in.ProductID,
		Quantity:  in.Quantity,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func (h *LedgerHandler) GetSale(c *fiber.Ctx) error {
	id, ok := requireIdentity(c)
	if !ok {
		return nil
	}
	out, err := h.queries.GetSale(c.UserContext(), id, c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

func (h *LedgerHandler) ListSales(c *fiber.Ctx) error {
	id, ok := requireIdentity(c)
	if !ok {
		return nil
	}
	period, err := parsePeriod(c)
	if err != nil {
		return writeError(c, err)
	}
	out, err := h.queries.ListSales(c.UserContext(), id, period, parsePage(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// RecordPurchase godoc
// @Summary      Registrar compra (suma stock y recalcula costo promedio)
// @Tags         purchases
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RecordPurchaseRequest  true  "Compra: product_id o new_product"
// @Success      201   {object}  dto.PurchaseResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/purchases [post]
func (h *LedgerHandler) RecordPurchase(c *fiber.Ctx) error {
	id, ok := requireIdentity(c)
	if !ok {
		return nil
	}
	var in dto.RecordPurchaseRequest
	if !bindJSON(c, h.val, &in) {
		return nil
	}
	out, err := h.ledger.RecordPurchaseFromRequest(c.UserContext(), id, in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// DeletePurchase godoc
// @Summary      Borrar compra y descontar sus unidades (el producto se conserva)
// @Tags         purchases
// @Security     Bearer
// @Accept       json
// @Param        id    path  string                     true   "ID de la compra"
// @Param        body  body  dto.DeletePurchaseRequest  false  "product_id / quantity capturados (opcional)"
// @Success      204
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse  "NEGATIVE_STOCK"
// @Router       /api/purchases/{id} [delete]
func (h *LedgerHandler) DeletePurchase(c *fiber.Ctx) error {
	id, ok := requireIdentity(c)
	if !ok {
		return nil
	}
	var in dto.DeletePurchaseRequest
	if !bindOptionalJSON(c, h.val, &in) {
		return nil
	}
	err := h.ledger.DeletePurchase(c.UserContext(), id, ledger.DeletePurchaseInput{
		PurchaseID: c.Params("id"),
		ProductID:  in.ProductID,
		Quantity:   in.Quantity,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func (h *LedgerHandler) GetPurchase(c *fiber.Ctx) error {
	id, ok := requireIdentity(c)
	if !ok {
		return nil
	}
	out, err := h.queries.GetPurchase(c.UserContext(), id, c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

func (h *LedgerHandler) ListPurchases(c *fiber.Ctx) error {
	id, ok := requireIdentity(c)
	if !ok {
		return nil
	}
	period, err := parsePeriod(c)
	if err != nil {
		return writeError(c, err)
	}
	out, err := h.queries.ListPurchases(c.UserContext(), id, period, parsePage(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}
