package inventory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rizosfelices/pedidos-api/internal/domain"
)

// fakeStockRepo stock en memoria indexado por producto|bodega.
type fakeStockRepo struct {
	stock   map[string]int
	upserts int
}

func newFakeStockRepo() *fakeStockRepo {
	return &fakeStockRepo{stock: make(map[string]int)}
}

func (f *fakeStockRepo) key(productID, warehouse string) string {
	return productID + "|" + warehouse
}

func (f *fakeStockRepo) Get(_ context.Context, productID, warehouse string) (int, error) {
	return f.stock[f.key(productID, warehouse)], nil
}

func (f *fakeStockRepo) GetForUpdate(ctx context.Context, productID, warehouse string) (int, error) {
	return f.Get(ctx, productID, warehouse)
}

func (f *fakeStockRepo) Upsert(_ context.Context, productID, warehouse string, cantidad int) error {
	f.upserts++
	f.stock[f.key(productID, warehouse)] = cantidad
	return nil
}

func (f *fakeStockRepo) GetByProduct(_ context.Context, productID string) (map[string]int, error) {
	out := make(map[string]int)
	for k, v := range f.stock {
		if len(k) > len(productID) && k[:len(productID)] == productID {
			out[k[len(productID)+1:]] = v
		}
	}
	return out, nil
}

func TestReserveDescuentaStock(t *testing.T) {
	repo := newFakeStockRepo()
	repo.stock["P001|medellin"] = 10
	ledger := NewLedger(repo)

	nuevo, err := ledger.Reserve(context.Background(), "P001", "medellin", 4)
	require.NoError(t, err)
	assert.Equal(t, 6, nuevo)
	assert.Equal(t, 6, repo.stock["P001|medellin"])
}

func TestReserveStockInsuficiente(t *testing.T) {
	repo := newFakeStockRepo()
	repo.stock["P001|medellin"] = 3
	ledger := NewLedger(repo)

	_, err := ledger.Reserve(context.Background(), "P001", "medellin", 5)
	require.Error(t, err)
	assert.True(t, domain.IsInsufficientStock(err))

	var ins *domain.InsufficientStockError
	require.ErrorAs(t, err, &ins)
	assert.Equal(t, 3, ins.Available)
	assert.Equal(t, 5, ins.Requested)
	assert.Equal(t, "medellin", ins.Warehouse)

	// sin mutación
	assert.Equal(t, 3, repo.stock["P001|medellin"])
	assert.Zero(t, repo.upserts)
}

func TestReserveCantidadExactaDejaCero(t *testing.T) {
	repo := newFakeStockRepo()
	repo.stock["P002|guarne"] = 7
	ledger := NewLedger(repo)

	nuevo, err := ledger.Reserve(context.Background(), "P002", "guarne", 7)
	require.NoError(t, err)
	assert.Equal(t, 0, nuevo)
}

func TestReserveCeroEsNoOp(t *testing.T) {
	repo := newFakeStockRepo()
	repo.stock["P001|medellin"] = 5
	ledger := NewLedger(repo)

	nuevo, err := ledger.Reserve(context.Background(), "P001", "medellin", 0)
	require.NoError(t, err)
	assert.Equal(t, 5, nuevo)
	assert.Zero(t, repo.upserts)
}

func TestReserveCantidadNegativa(t *testing.T) {
	ledger := NewLedger(newFakeStockRepo())

	_, err := ledger.Reserve(context.Background(), "P001", "medellin", -1)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestReserveProductoSinRegistroLeeCero(t *testing.T) {
	ledger := NewLedger(newFakeStockRepo())

	_, err := ledger.Reserve(context.Background(), "P999", "medellin", 1)
	assert.True(t, domain.IsInsufficientStock(err))
}

func TestSetStock(t *testing.T) {
	repo := newFakeStockRepo()
	ledger := NewLedger(repo)

	require.NoError(t, ledger.SetStock(context.Background(), "P001", "guarne", 20))
	assert.Equal(t, 20, repo.stock["P001|guarne"])

	assert.ErrorIs(t, ledger.SetStock(context.Background(), "P001", "guarne", -2), domain.ErrInvalidInput)
}

func TestParseCantidad(t *testing.T) {
	casos := []struct {
		in   any
		want int
	}{
		{10, 10},
		{int64(8), 8},
		{12.0, 12},
		{"15", 15},
		{" 7 ", 7},
		{"3.0", 3},
		{"", 0},
		{"n/a", 0},
		{nil, 0},
		{true, 0},
	}
	for _, c := range casos {
		assert.Equal(t, c.want, ParseCantidad(c.in), "entrada %v", c.in)
	}
}

func TestNormalizeMap(t *testing.T) {
	got := NormalizeMap(map[string]any{"Medellin": "10", "guarne": 5.0}, nil, "medellin")
	assert.Equal(t, map[string]int{"medellin": 10, "guarne": 5}, got)

	flat := 30
	got = NormalizeMap(nil, &flat, "medellin")
	assert.Equal(t, map[string]int{"medellin": 30}, got)
}
