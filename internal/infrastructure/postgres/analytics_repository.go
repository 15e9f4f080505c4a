package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/rizosfelices/pedidos-api/internal/domain/entity"
	"github.com/rizosfelices/pedidos-api/internal/domain/repository"
)

var _ repository.AnalyticsRepository = (*AnalyticsRepo)(nil)

// AnalyticsRepo consultas de solo lectura para el dashboard. Agrega sobre el
// snapshot JSONB de líneas de las órdenes facturadas; no necesita transacción.
type AnalyticsRepo struct {
	q Querier
}

// NewAnalyticsRepository construye el adaptador de analítica.
func NewAnalyticsRepository(q Querier) *AnalyticsRepo {
	return &AnalyticsRepo{q: q}
}

// CountActiveProducts cuenta productos activos.
func (r *AnalyticsRepo) CountActiveProducts(ctx context.Context) (int, error) {
	var n int
	if err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM productos WHERE activo`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count productos: %w", err)
	}
	return n, nil
}

// CountDistribuidores cuenta distribuidores activos (nacionales e internacionales).
func (r *AnalyticsRepo) CountDistribuidores(ctx context.Context) (int, error) {
	var n int
	query := `SELECT COUNT(*) FROM usuarios WHERE rol LIKE 'distribuidor%' AND estado = 'activo'`
	if err := r.q.QueryRow(ctx, query).Scan(&n); err != nil {
		return 0, fmt.Errorf("count distribuidores: %w", err)
	}
	return n, nil
}

// CountPendingOrders cuenta órdenes de compra sin despachar, acotadas a los
// tipos de precio indicados (slice vacío = todas).
func (r *AnalyticsRepo) CountPendingOrders(ctx context.Context, tipoPrecioIn []string) (int, error) {
	query := `SELECT COUNT(*) FROM ordenes WHERE estado = $1`
	args := []any{entity.EstadoOrdenCreada}
	if len(tipoPrecioIn) > 0 {
		args = append(args, tipoPrecioIn)
		query += fmt.Sprintf(" AND tipo_precio = ANY($%d)", len(args))
	}
	var n int
	if err := r.q.QueryRow(ctx, query, args...).Scan(&n); err != nil {
		return 0, fmt.Errorf("count ordenes pendientes: %w", err)
	}
	return n, nil
}

// stockAlerts agrupa filas (producto, bodega, cantidad) en alertas por producto.
// La condición sobre cantidad llega ya parametrizada desde el llamador.
func (r *AnalyticsRepo) stockAlerts(ctx context.Context, query string, args ...any) ([]repository.StockAlert, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("alertas de stock: %w", err)
	}
	defer rows.Close()

	var out []repository.StockAlert
	idx := map[string]int{}
	for rows.Next() {
		var (
			id, nombre, bodega string
			cantidad           int
		)
		if err := rows.Scan(&id, &nombre, &bodega, &cantidad); err != nil {
			return nil, fmt.Errorf("scan alerta: %w", err)
		}
		i, ok := idx[id]
		if !ok {
			out = append(out, repository.StockAlert{ProductID: id, Nombre: nombre, Stock: map[string]int{}})
			i = len(out) - 1
			idx[id] = i
		}
		out[i].Stock[bodega] = cantidad
	}
	return out, rows.Err()
}

// LowStockProducts productos activos con stock entre min y max en alguna de las bodegas.
func (r *AnalyticsRepo) LowStockProducts(ctx context.Context, warehouses []string, min, max int) ([]repository.StockAlert, error) {
	query := `
		SELECT p.id, p.nombre, s.bodega, s.cantidad
		FROM stock s
		JOIN productos p ON p.id = s.producto_id
		WHERE p.activo AND s.bodega = ANY($1) AND s.cantidad BETWEEN $2 AND $3
		ORDER BY s.cantidad, p.id`
	return r.stockAlerts(ctx, query, warehouses, min, max)
}

// OutOfStockProducts productos activos con stock cero en alguna de las bodegas.
func (r *AnalyticsRepo) OutOfStockProducts(ctx context.Context, warehouses []string) ([]repository.StockAlert, error) {
	query := `
		SELECT p.id, p.nombre, s.bodega, s.cantidad
		FROM stock s
		JOIN productos p ON p.id = s.producto_id
		WHERE p.activo AND s.bodega = ANY($1) AND s.cantidad = 0
		ORDER BY p.id`
	return r.stockAlerts(ctx, query, warehouses)
}

// RecentOrders últimas órdenes del ámbito, más recientes primero.
func (r *AnalyticsRepo) RecentOrders(ctx context.Context, tipoPrecioIn []string, limit int) ([]*entity.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM ordenes WHERE 1=1`
	var args []any
	if len(tipoPrecioIn) > 0 {
		args = append(args, tipoPrecioIn)
		query += fmt.Sprintf(" AND tipo_precio = ANY($%d)", len(args))
	}
	args = append(args, limit)
	query += fmt.Sprintf(" ORDER BY fecha DESC LIMIT $%d", len(args))

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("ordenes recientes: %w", err)
	}
	defer rows.Close()

	var out []*entity.Order
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, fmt.Errorf("scan orden reciente: %w", err)
		}
		out = append(out, o)
	}
	return out, rows.Err()
}

// PopularProducts agrega unidades vendidas por producto desenrollando el
// snapshot JSONB de las órdenes facturadas del período.
func (r *AnalyticsRepo) PopularProducts(ctx context.Context, from, to time.Time, tipoPrecioIn []string, limit int) ([]repository.PopularProduct, error) {
	query := `
		SELECT
			linea->>'id' AS producto_id,
			MAX(linea->>'nombre') AS nombre,
			COALESCE(MAX(p.categoria), '') AS categoria,
			COALESCE(AVG((linea->>'precio')::numeric), 0) AS precio_promedio,
			COALESCE(SUM((linea->>'cantidad')::int), 0) AS vendidos,
			COUNT(DISTINCT o.id) AS num_pedidos,
			COALESCE(BOOL_OR(p.activo), false) AS activo
		FROM ordenes o
		CROSS JOIN LATERAL jsonb_array_elements(o.productos) AS linea
		LEFT JOIN productos p ON p.id = linea->>'id'
		WHERE o.estado = $1 AND o.fecha >= $2 AND o.fecha < $3`
	args := []any{entity.EstadoFacturado, from, to}
	if len(tipoPrecioIn) > 0 {
		args = append(args, tipoPrecioIn)
		query += fmt.Sprintf(" AND o.tipo_precio = ANY($%d)", len(args))
	}
	args = append(args, limit)
	query += fmt.Sprintf(`
		GROUP BY linea->>'id'
		ORDER BY vendidos DESC
		LIMIT $%d`, len(args))

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("productos populares: %w", err)
	}
	defer rows.Close()

	var out []repository.PopularProduct
	for rows.Next() {
		var pp repository.PopularProduct
		err := rows.Scan(&pp.ProductID, &pp.Nombre, &pp.Categoria,
			&pp.PrecioPromedio, &pp.Vendidos, &pp.NumPedidos, &pp.Activo)
		if err != nil {
			return nil, fmt.Errorf("scan producto popular: %w", err)
		}
		out = append(out, pp)
	}
	return out, rows.Err()
}

// MonthlySales total vendido y número de ventas facturadas del período.
func (r *AnalyticsRepo) MonthlySales(ctx context.Context, from, to time.Time, tipoPrecioIn []string) (decimal.Decimal, int, error) {
	query := `
		SELECT COALESCE(SUM(total), 0), COUNT(*)
		FROM ordenes
		WHERE estado = $1 AND fecha >= $2 AND fecha < $3`
	args := []any{entity.EstadoFacturado, from, to}
	if len(tipoPrecioIn) > 0 {
		args = append(args, tipoPrecioIn)
		query += fmt.Sprintf(" AND tipo_precio = ANY($%d)", len(args))
	}
	var (
		total decimal.Decimal
		n     int
	)
	if err := r.q.QueryRow(ctx, query, args...).Scan(&total, &n); err != nil {
		return decimal.Zero, 0, fmt.Errorf("ventas del periodo: %w", err)
	}
	return total, n, nil
}
