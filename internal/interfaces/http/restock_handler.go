package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Caja-api/internal/application/restock"
)

// RestockHandler maneja las recomendaciones de reabastecimiento (protegido, admin).
type RestockHandler struct {
	uc *restock.UseCase
}

// NewRestockHandler construye el handler.
func NewRestockHandler(uc *restock.UseCase) *RestockHandler {
	return &RestockHandler{uc: uc}
}

// List godoc
// @Summary      Productos que conviene reabastecer
// @Tags         restock
// @Security     Bearer
// @Produce      json
// @Param        search      query  string  false  "Nombre o código de barras"
// @Param        sort_by     query  string  false  "product_name | current_stock | estimated_days_left"
// @Param        sort_order  query  string  false  "asc | desc"
// @Success      200  {array}   dto.RestockRecommendationItem
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/restock-recommendations/list [get]
func (h *RestockHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.Recommendations(c.Context(),
		c.Query("search"), c.Query("sort_by"), c.Query("sort_order"))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(out)
}
