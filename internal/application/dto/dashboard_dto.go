package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// DashboardStatsResponse respuesta de GET /api/store/dashboard/stats.
// KPIs operativos para la vista del admin y de las bodegas; cacheable por
// unos minutos, los contadores no necesitan ser exactos al segundo.
type DashboardStatsResponse struct {
	TotalProductos      int `json:"total_productos"`
	TotalDistribuidores int `json:"total_distribuidores"`
	PedidosPendientes   int `json:"pedidos_pendientes"`

	// Ventas facturadas del mes en curso (día 1 – hoy)
	VentasMes       decimal.Decimal `json:"ventas_mes"`
	NumeroVentasMes int             `json:"numero_ventas_mes"`

	StockBajo []StockAlertResponse `json:"stock_bajo"` // 1–5 unidades en alguna bodega
	Agotados  []StockAlertResponse `json:"agotados"`   // 0 unidades en alguna bodega

	PedidosRecientes []OrderResponse `json:"pedidos_recientes"`
}

// StockAlertResponse producto con stock en nivel de alerta.
type StockAlertResponse struct {
	ID     string         `json:"id"`
	Nombre string         `json:"nombre"`
	Stock  map[string]int `json:"stock"`
}

// PopularProductResponse agregado de ventas de un producto en el período.
type PopularProductResponse struct {
	ID             string          `json:"id"`
	Nombre         string          `json:"nombre"`
	Categoria      string          `json:"categoria,omitempty"`
	PrecioPromedio decimal.Decimal `json:"precio_promedio"`
	Vendidos       int             `json:"vendidos"`
	NumPedidos     int             `json:"num_pedidos"`
	Activo         bool            `json:"activo"`
}

// PopularProductsResponse respuesta de GET /api/store/dashboard/populares.
type PopularProductsResponse struct {
	Desde     time.Time                `json:"desde"`
	Hasta     time.Time                `json:"hasta"`
	Productos []PopularProductResponse `json:"productos"`
}

// InventoryItemResponse fila de la vista de inventario de una bodega: el
// stock de su propia bodega más el precio sin IVA de referencia.
type InventoryItemResponse struct {
	ID        string          `json:"id"`
	Nombre    string          `json:"nombre"`
	Categoria string          `json:"categoria,omitempty"`
	Stock     int             `json:"stock"`
	Estado    string          `json:"estado"`
	Precio    decimal.Decimal `json:"precio"`
	Activo    bool            `json:"activo"`
}

// InventoryResponse respuesta de GET /api/store/inventario.
type InventoryResponse struct {
	Bodega    string                  `json:"bodega"`
	Productos []InventoryItemResponse `json:"productos"`
	Total     int                     `json:"total"`
}
