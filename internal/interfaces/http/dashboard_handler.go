package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/rizosfelices/pedidos-api/internal/application/analytics"
	"github.com/rizosfelices/pedidos-api/internal/application/dto"
)

// DashboardHandler estadísticas y productos populares.
type DashboardHandler struct {
	uc *analytics.DashboardUseCase
}

// NewDashboardHandler construye el handler del dashboard.
func NewDashboardHandler(uc *analytics.DashboardUseCase) *DashboardHandler {
	return &DashboardHandler{uc: uc}
}

// Stats godoc
// @Summary      KPIs del dashboard (ámbito según rol)
// @Tags         dashboard
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.DashboardStatsResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/dashboard/stats [get]
func (h *DashboardHandler) Stats(c *fiber.Ctx) error {
	out, err := h.uc.Stats(c.UserContext(), CurrentUser(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Populares godoc
// @Summary      Productos más vendidos en un rango de fechas
// @Tags         dashboard
// @Security     Bearer
// @Produce      json
// @Param        desde  query  string  false  "Fecha inicial (YYYY-MM-DD)"
// @Param        hasta  query  string  false  "Fecha final (YYYY-MM-DD)"
// @Param        limit  query  int     false  "Máximo de productos"
// @Success      200    {object}  dto.PopularProductsResponse
// @Failure      400    {object}  dto.ErrorResponse
// @Router       /api/dashboard/productos-populares [get]
func (h *DashboardHandler) Populares(c *fiber.Ctx) error {
	var desde, hasta time.Time
	if s := c.Query("desde"); s != "" {
		t, err := time.Parse("2006-01-02", s)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "desde debe ser YYYY-MM-DD"})
		}
		desde = t
	}
	if s := c.Query("hasta"); s != "" {
		t, err := time.Parse("2006-01-02", s)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "hasta debe ser YYYY-MM-DD"})
		}
		hasta = t
	}
	out, err := h.uc.Populares(c.UserContext(), CurrentUser(c), desde, hasta, c.QueryInt("limit", 0))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
