package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/rizosfelices/pedidos-api/internal/domain/entity"
)

// StockAlert producto con stock bajo o agotado en alguna bodega.
type StockAlert struct {
	ProductID string
	Nombre    string
	Stock     map[string]int
}

// PopularProduct agregado de ventas por producto en un período.
type PopularProduct struct {
	ProductID      string
	Nombre         string
	Categoria      string
	PrecioPromedio decimal.Decimal
	Vendidos       int
	NumPedidos     int
	Activo         bool
}

// AnalyticsRepository consultas de solo lectura para el dashboard y las
// estadísticas. Los filtros por tipo de precio implementan la vista regional
// de cada bodega (doméstica vs exportación); slice vacío = sin filtro.
type AnalyticsRepository interface {
	CountActiveProducts(ctx context.Context) (int, error)
	CountDistribuidores(ctx context.Context) (int, error)
	// CountPendingOrders cuenta órdenes de compra aún sin despachar.
	CountPendingOrders(ctx context.Context, tipoPrecioIn []string) (int, error)
	LowStockProducts(ctx context.Context, warehouses []string, min, max int) ([]StockAlert, error)
	OutOfStockProducts(ctx context.Context, warehouses []string) ([]StockAlert, error)
	RecentOrders(ctx context.Context, tipoPrecioIn []string, limit int) ([]*entity.Order, error)
	// PopularProducts agrega unidades vendidas por producto sobre órdenes facturadas.
	PopularProducts(ctx context.Context, from, to time.Time, tipoPrecioIn []string, limit int) ([]PopularProduct, error)
	// MonthlySales devuelve el total vendido y el número de ventas facturadas del período.
	MonthlySales(ctx context.Context, from, to time.Time, tipoPrecioIn []string) (decimal.Decimal, int, error)
}
