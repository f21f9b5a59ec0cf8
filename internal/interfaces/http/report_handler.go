package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Caja-api/internal/application/dto"
	"github.com/jhoicas/Caja-api/internal/application/report"
)

// ReportHandler maneja los reportes del negocio (protegido, admin).
type ReportHandler struct {
	uc *report.UseCase
}

// NewReportHandler construye el handler.
func NewReportHandler(uc *report.UseCase) *ReportHandler {
	return &ReportHandler{uc: uc}
}

// rangeFromQuery lee start_date y end_date (YYYY-MM-DD). Sin parámetros el
// rango es el día de hoy; end_date es inclusivo así que se corre un día.
func rangeFromQuery(c *fiber.Ctx) (time.Time, time.Time, bool) {
	now := time.Now()
	start := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	end := start.AddDate(0, 0, 1)

	if raw := c.Query("start_date"); raw != "" {
		parsed, err := time.ParseInLocation("2006-01-02", raw, now.Location())
		if err != nil {
			return start, end, false
		}
		start = parsed
	}
	if raw := c.Query("end_date"); raw != "" {
		parsed, err := time.ParseInLocation("2006-01-02", raw, now.Location())
		if err != nil {
			return start, end, false
		}
		end = parsed.AddDate(0, 0, 1)
	}
	if !end.After(start) {
		return start, end, false
	}
	return start, end, true
}

func badRange(c *fiber.Ctx) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
		Code: "VALIDATION", Message: "rango de fechas inválido (YYYY-MM-DD, start <= end)",
	})
}

// Dashboard godoc
// @Summary      Métricas principales del período
// @Tags         report
// @Security     Bearer
// @Produce      json
// @Param        start_date  query  string  false  "YYYY-MM-DD (default hoy)"
// @Param        end_date    query  string  false  "YYYY-MM-DD inclusivo (default hoy)"
// @Success      200  {object}  dto.DashboardResponse
// @Router       /api/report/dashboard [get]
func (h *ReportHandler) Dashboard(c *fiber.Ctx) error {
	start, end, ok := rangeFromQuery(c)
	if !ok {
		return badRange(c)
	}
	out, err := h.uc.Dashboard(c.Context(), start, end)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(out)
}

// Sales godoc
// @Summary      Reporte de ventas con desglose por método de pago
// @Tags         report
// @Security     Bearer
// @Produce      json
// @Param        start_date  query  string  false  "YYYY-MM-DD (default hoy)"
// @Param        end_date    query  string  false  "YYYY-MM-DD inclusivo (default hoy)"
// @Success      200  {object}  dto.SalesReportResponse
// @Router       /api/report/sales [get]
func (h *ReportHandler) Sales(c *fiber.Ctx) error {
	start, end, ok := rangeFromQuery(c)
	if !ok {
		return badRange(c)
	}
	out, err := h.uc.Sales(c.Context(), start, end)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(out)
}

// Profit godoc
// @Summary      Utilidad del día contra el día anterior
// @Tags         report
// @Security     Bearer
// @Produce      json
// @Param        date  query  string  false  "YYYY-MM-DD (default hoy)"
// @Success      200  {object}  dto.ProfitReportResponse
// @Router       /api/report/profit [get]
func (h *ReportHandler) Profit(c *fiber.Ctx) error {
	date := time.Now()
	if raw := c.Query("date"); raw != "" {
		parsed, err := time.ParseInLocation("2006-01-02", raw, date.Location())
		if err != nil {
			return badRange(c)
		}
		date = parsed
	}
	out, err := h.uc.Profit(c.Context(), date)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(out)
}

// Products godoc
// @Summary      Top de productos, categorías y stock bajo
// @Tags         report
// @Security     Bearer
// @Produce      json
// @Param        start_date  query  string  false  "YYYY-MM-DD (default hoy)"
// @Param        end_date    query  string  false  "YYYY-MM-DD inclusivo (default hoy)"
// @Success      200  {object}  dto.SalesProductsReportResponse
// @Router       /api/report/products [get]
func (h *ReportHandler) Products(c *fiber.Ctx) error {
	start, end, ok := rangeFromQuery(c)
	if !ok {
		return badRange(c)
	}
	out, err := h.uc.SalesProducts(c.Context(), start, end)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(out)
}

// Restock godoc
// @Summary      Reporte de compras del período
// @Tags         report
// @Security     Bearer
// @Produce      json
// @Param        start_date  query  string  false  "YYYY-MM-DD (default hoy)"
// @Param        end_date    query  string  false  "YYYY-MM-DD inclusivo (default hoy)"
// @Success      200  {object}  dto.RestockReportResponse
// @Router       /api/report/restock [get]
func (h *ReportHandler) Restock(c *fiber.Ctx) error {
	start, end, ok := rangeFromQuery(c)
	if !ok {
		return badRange(c)
	}
	out, err := h.uc.Restock(c.Context(), start, end)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(out)
}
