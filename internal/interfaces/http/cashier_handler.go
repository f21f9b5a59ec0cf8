package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Caja-api/internal/application/cashier"
	"github.com/jhoicas/Caja-api/internal/application/dto"
)

// CashierHandler maneja las operaciones de caja (protegido).
type CashierHandler struct {
	uc *cashier.CheckoutUseCase
}

// NewCashierHandler construye el handler.
func NewCashierHandler(uc *cashier.CheckoutUseCase) *CashierHandler {
	return &CashierHandler{uc: uc}
}

// ShowQris godoc
// @Summary      Imagen QRIS para cobro
// @Tags         cashier
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  map[string]string
// @Router       /api/cashier/showQris [get]
func (h *CashierHandler) ShowQris(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"image": h.uc.QrisPath()})
}

// ReviewOrder godoc
// @Summary      Cotizar el carrito con los precios vigentes
// @Tags         cashier
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ReviewOrderRequest  true  "Carrito"
// @Success      200   {object}  dto.ReviewOrderResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/cashier/reviewOrder [post]
func (h *CashierHandler) ReviewOrder(c *fiber.Ctx) error {
	var in dto.ReviewOrderRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.ReviewOrder(c.Context(), in)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(out)
}

// Checkout godoc
// @Summary      Confirmar la venta
// @Tags         cashier
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CheckoutRequest  true  "Venta"
// @Success      201   {object}  dto.CheckoutResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/cashier/checkout [post]
func (h *CashierHandler) Checkout(c *fiber.Ctx) error {
	var in dto.CheckoutRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.Checkout(c.Context(), GetUserID(c), in)
	if err != nil {
		return fail(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Receipt godoc
// @Summary      Recibo PDF de una venta
// @Tags         cashier
// @Security     Bearer
// @Produce      application/pdf
// @Param        id   path  string  true  "ID de la transacción"
// @Success      200  {file}    binary
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/cashier/receipt/{id} [get]
func (h *CashierHandler) Receipt(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id es requerido"})
	}
	pdfBytes, err := h.uc.Receipt(c.Context(), id)
	if err != nil {
		return fail(c, err)
	}
	c.Set("Content-Type", "application/pdf")
	c.Set("Content-Disposition", `inline; filename="recibo-`+id+`.pdf"`)
	return c.Send(pdfBytes)
}
