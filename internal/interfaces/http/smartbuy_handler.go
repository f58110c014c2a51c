package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Contable-api/internal/application/dto"
	"github.com/jhoicas/Contable-api/internal/application/usecase"
)

// SmartBuyHandler gateway de sugerencias de compra con IA.
type SmartBuyHandler struct {
	uc *usecase.SmartBuyUseCase
}

// NewSmartBuyHandler construye el handler.
func NewSmartBuyHandler(uc *usecase.SmartBuyUseCase) *SmartBuyHandler {
	return &SmartBuyHandler{uc: uc}
}

// Suggest godoc
// @Summary      Sugerencia de compra a partir de cinco bloques de texto
// @Description  Siempre responde 200: si el modelo falla o excede el tiempo, suggestion trae el mensaje de respaldo.
// @Tags         ai
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.SmartBuyRequest  true  "dailySales, expenses, purchases, products, supplierInfo"
// @Success      200   {object}  dto.SmartBuyResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/ai/smart-buy [post]
func (h *SmartBuyHandler) Suggest(c *fiber.Ctx) error {
	if _, ok := requireIdentity(c); !ok {
		return nil
	}
	var in dto.SmartBuyRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	return c.JSON(h.uc.Suggest(c.UserContext(), in))
}

// SuggestAuto godoc
// @Summary      Sugerencia de compra con los datos del negocio de la sesión
// @Tags         ai
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.SmartBuyResponse
// @Router       /api/ai/smart-buy/auto [post]
func (h *SmartBuyHandler) SuggestAuto(c *fiber.Ctx) error {
	id, ok := requireIdentity(c)
	if !ok {
		return nil
	}
	out, err := h.uc.SuggestForBusiness(c.UserContext(), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Schema publica los JSON Schema de entrada y salida del gateway.
func (h *SmartBuyHandler) Schema(c *fiber.Ctx) error {
	return c.JSON(usecase.SmartBuySchemas())
}
