package orders

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rizosfelices/pedidos-api/internal/application/dto"
	"github.com/rizosfelices/pedidos-api/internal/domain"
	"github.com/rizosfelices/pedidos-api/internal/domain/entity"
	"github.com/rizosfelices/pedidos-api/internal/domain/repository"
)

// dosOrdenes crea una orden nacional (con_iva) y una internacional.
func dosOrdenes(t *testing.T, h *harness) (nacional, internacional string) {
	t.Helper()
	h.conProducto("P001", "Shampoo Rizos", map[string]int{"medellin": 10, "guarne": 10})
	nal := h.conUsuario(distribuidorNacional())
	intl := h.conUsuario(distribuidorInternacional())
	ctx := context.Background()

	r1, err := h.svc.CreatePurchaseOrder(ctx, nal, dto.CreateOrderRequest{
		Productos: []dto.OrderLineRequest{linea("P001", 2, "1000")},
		Direccion: "Calle 10",
	})
	require.NoError(t, err)

	h.ahora = h.ahora.Add(time.Second) // IDs distintos
	r2, err := h.svc.CreatePurchaseOrder(ctx, intl, dto.CreateOrderRequest{
		Productos: []dto.OrderLineRequest{linea("P001", 1, "500")},
		Direccion: "Zona Franca",
	})
	require.NoError(t, err)
	return r1.ID, r2.ID
}

func TestGetVisibilidadDistribuidor(t *testing.T) {
	h := newHarness()
	nacional, internacional := dosOrdenes(t, h)
	ctx := context.Background()

	propia, err := h.svc.Get(ctx, h.users.usuarios["d1"], nacional)
	require.NoError(t, err)
	assert.Equal(t, nacional, propia.ID)

	// la orden de otro distribuidor no es visible
	_, err = h.svc.Get(ctx, h.users.usuarios["d1"], internacional)
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestGetVisibilidadBodega(t *testing.T) {
	h := newHarness()
	nacional, internacional := dosOrdenes(t, h)
	ctx := context.Background()

	medellin := h.conUsuario(bodegaMedellin())
	guarne := h.conUsuario(bodegaGuarne())

	_, err := h.svc.Get(ctx, medellin, nacional)
	require.NoError(t, err)
	_, err = h.svc.Get(ctx, medellin, internacional)
	assert.ErrorIs(t, err, domain.ErrForbidden)

	_, err = h.svc.Get(ctx, guarne, internacional)
	require.NoError(t, err)
	_, err = h.svc.Get(ctx, guarne, nacional)
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestGetOrdenInexistente(t *testing.T) {
	h := newHarness()
	admin := h.conUsuario(&entity.User{ID: "a1", Rol: entity.RoleAdmin})

	_, err := h.svc.Get(context.Background(), admin, "OC-00000000000000")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestListPorRol(t *testing.T) {
	h := newHarness()
	nacional, internacional := dosOrdenes(t, h)
	ctx := context.Background()

	// admin ve todo
	admin := h.conUsuario(&entity.User{ID: "a1", Rol: entity.RoleAdmin})
	todo, err := h.svc.List(ctx, admin, repository.OrderFilter{})
	require.NoError(t, err)
	assert.Equal(t, 2, todo.Total)

	// el distribuidor solo ve las suyas
	propias, err := h.svc.List(ctx, h.users.usuarios["d1"], repository.OrderFilter{})
	require.NoError(t, err)
	require.Equal(t, 1, propias.Total)
	assert.Equal(t, nacional, propias.Ordenes[0].ID)

	// bodega doméstica: solo con_iva/sin_iva
	medellin := h.conUsuario(bodegaMedellin())
	regionales, err := h.svc.List(ctx, medellin, repository.OrderFilter{})
	require.NoError(t, err)
	require.Equal(t, 1, regionales.Total)
	assert.Equal(t, nacional, regionales.Ordenes[0].ID)

	// bodega de exportación: solo internacionales
	guarne := h.conUsuario(bodegaGuarne())
	exportables, err := h.svc.List(ctx, guarne, repository.OrderFilter{})
	require.NoError(t, err)
	require.Equal(t, 1, exportables.Total)
	assert.Equal(t, internacional, exportables.Ordenes[0].ID)
}

func TestListFiltroDeEstado(t *testing.T) {
	h := newHarness()
	nacional, _ := dosOrdenes(t, h)
	ctx := context.Background()
	admin := h.conUsuario(&entity.User{ID: "a1", Rol: entity.RoleAdmin})

	require.NoError(t, h.svc.SetStatus(ctx, admin, nacional, entity.EstadoFacturado))

	facturadas, err := h.svc.List(ctx, admin, repository.OrderFilter{Estado: entity.EstadoFacturado})
	require.NoError(t, err)
	require.Equal(t, 1, facturadas.Total)
	assert.Equal(t, nacional, facturadas.Ordenes[0].ID)
}

func TestListRolDesconocido(t *testing.T) {
	h := newHarness()
	intruso := h.conUsuario(&entity.User{ID: "x1", Rol: "auditor"})

	_, err := h.svc.List(context.Background(), intruso, repository.OrderFilter{})
	assert.ErrorIs(t, err, domain.ErrForbidden)
}
