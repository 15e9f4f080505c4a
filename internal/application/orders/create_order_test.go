package orders

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rizosfelices/pedidos-api/internal/application/dto"
	"github.com/rizosfelices/pedidos-api/internal/domain"
	"github.com/rizosfelices/pedidos-api/internal/domain/entity"
)

func linea(id string, cantidad int, precio string) dto.OrderLineRequest {
	c := dto.FlexInt(cantidad)
	var p dto.FlexDecimal
	p.Decimal = decimal.RequireFromString(precio)
	return dto.OrderLineRequest{ID: id, Cantidad: &c, Precio: &p}
}

func TestCreatePurchaseOrderConIVA(t *testing.T) {
	h := newHarness()
	h.conProducto("P001", "Shampoo Rizos", map[string]int{"medellin": 10})
	actor := h.conUsuario(distribuidorNacional())

	resp, err := h.svc.CreatePurchaseOrder(context.Background(), actor, dto.CreateOrderRequest{
		Productos: []dto.OrderLineRequest{linea("P001", 4, "1000")},
		Direccion: "Calle 10 # 43-12, Medellín",
		Notas:     "entregar en la mañana",
	})
	require.NoError(t, err)

	assert.Equal(t, "OC-20250310143000", resp.ID)
	assert.Equal(t, entity.EstadoOrdenCreada, resp.Estado)
	assert.Equal(t, entity.PrecioConIVA, resp.TipoPrecio)
	assert.Equal(t, "d1", resp.DistribuidorID)
	assert.Equal(t, "Distribuciones Andinas", resp.DistribuidorNombre)

	require.Len(t, resp.Productos, 1)
	l := resp.Productos[0]
	assert.Equal(t, "Shampoo Rizos", l.Nombre)
	assert.Equal(t, 4, l.Cantidad)
	assert.True(t, l.IVAUnitario.Equal(decimal.RequireFromString("190")), "iva unitario %s", l.IVAUnitario)
	assert.True(t, l.Precio.Equal(decimal.RequireFromString("1190")), "precio %s", l.Precio)
	assert.True(t, l.Total.Equal(decimal.RequireFromString("4760")), "total línea %s", l.Total)

	assert.True(t, resp.Subtotal.Equal(decimal.RequireFromString("4000")), "subtotal %s", resp.Subtotal)
	assert.True(t, resp.IVA.Equal(decimal.RequireFromString("760")), "iva %s", resp.IVA)
	assert.True(t, resp.Total.Equal(decimal.RequireFromString("4760")), "total %s", resp.Total)

	// stock reservado en la bodega doméstica
	assert.Equal(t, 6, h.stock.stock[stockKey("P001", "medellin")])

	// la orden quedó persistida y los correos salieron
	assert.NotNil(t, h.orders.ordenes["OC-20250310143000"])
	assert.Equal(t, []string{"OC-20250310143000"}, h.notifier.created)
	assert.Contains(t, h.notifier.emails, "andinas@example.com")
}

func TestCreatePurchaseOrderInternacional(t *testing.T) {
	h := newHarness()
	h.conProducto("P002", "Crema de Peinar", map[string]int{"guarne": 5, "medellin": 1})
	actor := h.conUsuario(distribuidorInternacional())

	resp, err := h.svc.CreatePurchaseOrder(context.Background(), actor, dto.CreateOrderRequest{
		Productos: []dto.OrderLineRequest{linea("P002", 3, "500")},
		Direccion: "Zona Franca, Bodega 4",
	})
	require.NoError(t, err)

	l := resp.Productos[0]
	assert.True(t, l.IVAUnitario.IsZero())
	assert.True(t, l.Precio.Equal(decimal.RequireFromString("500")))
	assert.True(t, l.Total.Equal(decimal.RequireFromString("1500")))
	assert.True(t, resp.Total.Equal(decimal.RequireFromString("1500")))

	// reserva en la bodega de exportación, la doméstica no se toca
	assert.Equal(t, 2, h.stock.stock[stockKey("P002", "guarne")])
	assert.Equal(t, 1, h.stock.stock[stockKey("P002", "medellin")])
}

func TestCreateDirectOrder(t *testing.T) {
	h := newHarness()
	h.conProducto("P001", "Shampoo Rizos", map[string]int{"medellin": 10})
	actor := h.conUsuario(distribuidorNacional())

	resp, err := h.svc.CreateDirectOrder(context.Background(), actor, dto.CreateOrderRequest{
		Productos: []dto.OrderLineRequest{linea("P001", 2, "1000")},
		Direccion: "Carrera 80 # 30-15",
	})
	require.NoError(t, err)

	assert.Equal(t, "PED-20250310143000", resp.ID)
	assert.Equal(t, entity.EstadoProcesando, resp.Estado)
	assert.Equal(t, 8, h.stock.stock[stockKey("P001", "medellin")])
}

func TestCreatePurchaseOrderSinStockNoDejaEfectos(t *testing.T) {
	h := newHarness()
	h.conProducto("P001", "Shampoo Rizos", map[string]int{"medellin": 10})
	h.conProducto("P002", "Crema de Peinar", map[string]int{"medellin": 1})
	actor := h.conUsuario(distribuidorNacional())

	_, err := h.svc.CreatePurchaseOrder(context.Background(), actor, dto.CreateOrderRequest{
		Productos: []dto.OrderLineRequest{
			linea("P001", 4, "1000"),
			linea("P002", 2, "800"), // solo hay 1
		},
		Direccion: "Calle 10 # 43-12",
	})
	require.Error(t, err)
	assert.True(t, domain.IsInsufficientStock(err))

	// rollback completo: ni la primera línea descontó ni hay orden
	assert.Equal(t, 10, h.stock.stock[stockKey("P001", "medellin")])
	assert.Equal(t, 1, h.stock.stock[stockKey("P002", "medellin")])
	assert.Empty(t, h.orders.ordenes)
	assert.Empty(t, h.notifier.created)
}

func TestCreatePurchaseOrderProductoInexistente(t *testing.T) {
	h := newHarness()
	actor := h.conUsuario(distribuidorNacional())

	_, err := h.svc.CreatePurchaseOrder(context.Background(), actor, dto.CreateOrderRequest{
		Productos: []dto.OrderLineRequest{linea("P999", 1, "1000")},
		Direccion: "Calle 10",
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestCreatePurchaseOrderProductoInactivo(t *testing.T) {
	h := newHarness()
	p := h.conProducto("P001", "Shampoo Rizos", map[string]int{"medellin": 10})
	p.Activo = false
	actor := h.conUsuario(distribuidorNacional())

	_, err := h.svc.CreatePurchaseOrder(context.Background(), actor, dto.CreateOrderRequest{
		Productos: []dto.OrderLineRequest{linea("P001", 1, "1000")},
		Direccion: "Calle 10",
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestCreatePurchaseOrderValidaciones(t *testing.T) {
	h := newHarness()
	h.conProducto("P001", "Shampoo Rizos", map[string]int{"medellin": 10})
	actor := h.conUsuario(distribuidorNacional())
	ctx := context.Background()

	// sin dirección
	_, err := h.svc.CreatePurchaseOrder(ctx, actor, dto.CreateOrderRequest{
		Productos: []dto.OrderLineRequest{linea("P001", 1, "1000")},
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	// sin productos
	_, err = h.svc.CreatePurchaseOrder(ctx, actor, dto.CreateOrderRequest{Direccion: "Calle 10"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	// línea sin precio
	c := dto.FlexInt(1)
	_, err = h.svc.CreatePurchaseOrder(ctx, actor, dto.CreateOrderRequest{
		Productos: []dto.OrderLineRequest{{ID: "P001", Cantidad: &c}},
		Direccion: "Calle 10",
	})
	assert.ErrorIs(t, err, domain.ErrMalformedLineItem)

	// cantidad cero
	_, err = h.svc.CreatePurchaseOrder(ctx, actor, dto.CreateOrderRequest{
		Productos: []dto.OrderLineRequest{linea("P001", 0, "1000")},
		Direccion: "Calle 10",
	})
	assert.ErrorIs(t, err, domain.ErrMalformedLineItem)
}

func TestCreatePurchaseOrderSoloDistribuidores(t *testing.T) {
	h := newHarness()
	actor := h.conUsuario(bodegaMedellin())

	_, err := h.svc.CreatePurchaseOrder(context.Background(), actor, dto.CreateOrderRequest{
		Productos: []dto.OrderLineRequest{linea("P001", 1, "1000")},
		Direccion: "Calle 10",
	})
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestCreatePurchaseOrderTipoPrecioInvalido(t *testing.T) {
	h := newHarness()
	actor := h.conUsuario(distribuidorNacional())
	actor.TipoPrecio = "mayorista"

	_, err := h.svc.CreatePurchaseOrder(context.Background(), actor, dto.CreateOrderRequest{
		Productos: []dto.OrderLineRequest{linea("P001", 1, "1000")},
		Direccion: "Calle 10",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidPriceMode)
}

func TestCreatePurchaseOrderCorreoCaidoNoFallaLaOrden(t *testing.T) {
	h := newHarness()
	h.conProducto("P001", "Shampoo Rizos", map[string]int{"medellin": 10})
	h.notifier.fail = true
	actor := h.conUsuario(distribuidorNacional())

	resp, err := h.svc.CreatePurchaseOrder(context.Background(), actor, dto.CreateOrderRequest{
		Productos: []dto.OrderLineRequest{linea("P001", 1, "1000")},
		Direccion: "Calle 10",
	})
	require.NoError(t, err)
	assert.NotNil(t, h.orders.ordenes[resp.ID])
}
