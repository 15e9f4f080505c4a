package usecase

import (
	"context"
	"encoding/json"
	"sort"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rizosfelices/pedidos-api/internal/application/dto"
	"github.com/rizosfelices/pedidos-api/internal/domain"
	"github.com/rizosfelices/pedidos-api/internal/domain/entity"
	"github.com/rizosfelices/pedidos-api/internal/domain/repository"
	"github.com/rizosfelices/pedidos-api/pkg/config"
	"github.com/rizosfelices/pedidos-api/pkg/logger"
)

type memProductRepo struct {
	productos map[string]*entity.Product
}

func (m *memProductRepo) GetByID(_ context.Context, id string) (*entity.Product, error) {
	return m.productos[id], nil
}

func (m *memProductRepo) List(_ context.Context, f repository.ProductFilter) ([]*entity.Product, error) {
	var out []*entity.Product
	for _, p := range m.productos {
		if f.SoloActivos && !p.Activo {
			continue
		}
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *memProductRepo) Create(_ context.Context, p *entity.Product) error {
	m.productos[p.ID] = p
	return nil
}

func (m *memProductRepo) Update(_ context.Context, p *entity.Product) error {
	m.productos[p.ID] = p
	return nil
}

func (m *memProductRepo) SetActivo(_ context.Context, id string, activo bool) error {
	if p, ok := m.productos[id]; ok {
		p.Activo = activo
	}
	return nil
}

func (m *memProductRepo) MaxID(_ context.Context, _ string) (string, error) {
	max := ""
	for id := range m.productos {
		if id > max {
			max = id
		}
	}
	return max, nil
}

type memStockRepo struct {
	stock map[string]int
}

func (m *memStockRepo) Get(_ context.Context, productID, warehouse string) (int, error) {
	return m.stock[productID+"|"+warehouse], nil
}

func (m *memStockRepo) GetForUpdate(ctx context.Context, productID, warehouse string) (int, error) {
	return m.Get(ctx, productID, warehouse)
}

func (m *memStockRepo) Upsert(_ context.Context, productID, warehouse string, cantidad int) error {
	m.stock[productID+"|"+warehouse] = cantidad
	return nil
}

func (m *memStockRepo) GetByProduct(_ context.Context, productID string) (map[string]int, error) {
	out := map[string]int{}
	for k, v := range m.stock {
		if strings.HasPrefix(k, productID+"|") {
			out[strings.TrimPrefix(k, productID+"|")] = v
		}
	}
	return out, nil
}

func newProductUseCase() (*ProductUseCase, *memProductRepo, *memStockRepo) {
	productos := &memProductRepo{productos: map[string]*entity.Product{}}
	stock := &memStockRepo{stock: map[string]int{}}
	uc := NewProductUseCase(productos, stock,
		config.WarehouseConfig{Domestic: "medellin", Export: "guarne"},
		logger.New(logger.Config{Env: "development", Level: "error"}))
	return uc, productos, stock
}

func adminUser() *entity.User {
	return &entity.User{ID: "a1", Email: "admin@rizosfelices.co", Rol: entity.RoleAdmin}
}

func precios(sinIVA, conIVA, intl string) dto.PreciosRequest {
	var r dto.PreciosRequest
	r.SinIVAColombia.Decimal = decimal.RequireFromString(sinIVA)
	r.ConIVAColombia.Decimal = decimal.RequireFromString(conIVA)
	r.Internacional.Decimal = decimal.RequireFromString(intl)
	return r
}

func TestCreateProductIDsSecuenciales(t *testing.T) {
	uc, _, _ := newProductUseCase()
	ctx := context.Background()

	p1, err := uc.Create(ctx, adminUser(), dto.CreateProductRequest{
		Nombre: "Shampoo Rizos", Precios: precios("1000", "1000", "500"),
	})
	require.NoError(t, err)
	assert.Equal(t, "P001", p1.ID)

	p2, err := uc.Create(ctx, adminUser(), dto.CreateProductRequest{
		Nombre: "Crema de Peinar", Precios: precios("800", "800", "400"),
	})
	require.NoError(t, err)
	assert.Equal(t, "P002", p2.ID)
}

func TestCreateProductStockHeredado(t *testing.T) {
	uc, _, stock := newProductUseCase()
	ctx := context.Background()

	// stock como mapa con strings numéricos (formato heredado)
	var fs dto.FlexStock
	require.NoError(t, json.Unmarshal([]byte(`{"Medellin": "10", "guarne": 5}`), &fs))

	resp, err := uc.Create(ctx, adminUser(), dto.CreateProductRequest{
		Nombre: "Shampoo Rizos", Precios: precios("1000", "1000", "500"), Stock: fs,
	})
	require.NoError(t, err)
	assert.Equal(t, map[string]int{"medellin": 10, "guarne": 5}, resp.Stock)
	assert.Equal(t, 10, stock.stock["P001|medellin"])
	assert.Equal(t, 5, stock.stock["P001|guarne"])

	// stock plano entra completo a la bodega doméstica
	var plano dto.FlexStock
	require.NoError(t, json.Unmarshal([]byte(`"30"`), &plano))
	resp, err = uc.Create(ctx, adminUser(), dto.CreateProductRequest{
		Nombre: "Aceite Capilar", Precios: precios("1200", "1200", "600"), Stock: plano,
	})
	require.NoError(t, err)
	assert.Equal(t, map[string]int{"medellin": 30}, resp.Stock)
}

func TestCreateProductValidaciones(t *testing.T) {
	uc, _, _ := newProductUseCase()
	ctx := context.Background()

	_, err := uc.Create(ctx, adminUser(), dto.CreateProductRequest{Precios: precios("1", "1", "1")})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.Create(ctx, adminUser(), dto.CreateProductRequest{
		Nombre: "X", Precios: precios("-1", "1", "1"),
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.Create(ctx, &entity.User{Rol: entity.RoleBodega}, dto.CreateProductRequest{
		Nombre: "X", Precios: precios("1", "1", "1"),
	})
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestListVistaDistribuidor(t *testing.T) {
	uc, _, _ := newProductUseCase()
	ctx := context.Background()

	_, err := uc.Create(ctx, adminUser(), dto.CreateProductRequest{
		Nombre: "Shampoo Rizos", Precios: precios("1000", "1190", "500"),
	})
	require.NoError(t, err)

	distribuidor := &entity.User{ID: "d1", Rol: entity.RoleDistribuidorNacional, TipoPrecio: entity.PrecioConIVA}
	out, err := uc.List(ctx, distribuidor)
	require.NoError(t, err)

	lista, ok := out.(*dto.DistribuidorProductListResponse)
	require.True(t, ok)
	require.Equal(t, 1, lista.Total)
	// el distribuidor con_iva ve el precio con IVA de Colombia
	assert.True(t, lista.Productos[0].Precio.Equal(decimal.RequireFromString("1190")))
}

func TestDeleteOcultaAlDistribuidor(t *testing.T) {
	uc, productos, _ := newProductUseCase()
	ctx := context.Background()

	p, err := uc.Create(ctx, adminUser(), dto.CreateProductRequest{
		Nombre: "Shampoo Rizos", Precios: precios("1000", "1000", "500"),
	})
	require.NoError(t, err)

	require.NoError(t, uc.Delete(ctx, adminUser(), p.ID))
	assert.False(t, productos.productos[p.ID].Activo)

	distribuidor := &entity.User{ID: "d1", Rol: entity.RoleDistribuidorNacional, TipoPrecio: entity.PrecioConIVA}
	_, err = uc.Get(ctx, distribuidor, p.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	// el admin sí lo sigue viendo
	out, err := uc.Get(ctx, adminUser(), p.ID)
	require.NoError(t, err)
	admin, ok := out.(*dto.ProductResponse)
	require.True(t, ok)
	assert.False(t, admin.Activo)
}

func TestInventarioDeBodega(t *testing.T) {
	uc, _, stock := newProductUseCase()
	ctx := context.Background()

	p, err := uc.Create(ctx, adminUser(), dto.CreateProductRequest{
		Nombre: "Shampoo Rizos", Precios: precios("1000", "1190", "500"),
	})
	require.NoError(t, err)
	stock.stock[p.ID+"|guarne"] = 7

	guarne := &entity.User{ID: "b2", Rol: entity.RoleBodega, CDI: "guarne"}
	inv, err := uc.Inventario(ctx, guarne)
	require.NoError(t, err)

	assert.Equal(t, "guarne", inv.Bodega)
	require.Equal(t, 1, inv.Total)
	assert.Equal(t, 7, inv.Productos[0].Stock)
	assert.Equal(t, "Stock Bajo", inv.Productos[0].Estado)
	// la bodega de exportación ve el precio internacional
	assert.True(t, inv.Productos[0].Precio.Equal(decimal.RequireFromString("500")))

	_, err = uc.Inventario(ctx, adminUser())
	assert.ErrorIs(t, err, domain.ErrForbidden)
}
