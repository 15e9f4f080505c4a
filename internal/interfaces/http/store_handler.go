package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/rizosfelices/pedidos-api/internal/application/dto"
	"github.com/rizosfelices/pedidos-api/internal/application/orders"
	"github.com/rizosfelices/pedidos-api/internal/application/usecase"
)

// StoreHandler operaciones de bodega: despacho de órdenes e inventario propio.
type StoreHandler struct {
	orders    *orders.Service
	productUC *usecase.ProductUseCase
}

// NewStoreHandler construye el handler de bodega.
func NewStoreHandler(svc *orders.Service, productUC *usecase.ProductUseCase) *StoreHandler {
	return &StoreHandler{orders: svc, productUC: productUC}
}

// Procesar godoc
// @Summary      Procesar orden de compra (solo bodega)
// @Tags         store
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID de la orden de compra"
// @Param        body  body  dto.ProcessOrderRequest  true  "Cantidades finales por línea"
// @Success      200   {object}  dto.OrderResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/store/orders/{id}/procesar [post]
func (h *StoreHandler) Procesar(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id es requerido"})
	}
	var in dto.ProcessOrderRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.orders.ProcessOrder(c.UserContext(), CurrentUser(c), id, in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Inventario godoc
// @Summary      Inventario de la bodega del usuario (solo bodega)
// @Tags         store
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.InventoryResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/store/inventario [get]
func (h *StoreHandler) Inventario(c *fiber.Ctx) error {
	out, err := h.productUC.Inventario(c.UserContext(), CurrentUser(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
