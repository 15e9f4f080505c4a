// Package inventory implementa el ledger de stock: la única vía de mutación de
// las cantidades por (producto, bodega).
package inventory

import (
	"context"
	"strconv"
	"strings"

	"github.com/rizosfelices/pedidos-api/internal/domain"
	"github.com/rizosfelices/pedidos-api/internal/domain/repository"
)

// Ledger contadores autoritativos de stock. Construirlo sobre los repos atados
// a la transacción del TxRunner: el decremento depende del bloqueo de fila
// (SELECT FOR UPDATE) para serializar reservas concurrentes.
type Ledger struct {
	stocks repository.StockRepository
}

// NewLedger construye el ledger sobre el repositorio de stock.
func NewLedger(stocks repository.StockRepository) *Ledger {
	return &Ledger{stocks: stocks}
}

// GetStock devuelve el stock actual del producto en la bodega (faltante = 0).
func (l *Ledger) GetStock(ctx context.Context, productID, warehouse string) (int, error) {
	return l.stocks.Get(ctx, productID, warehouse)
}

// Reserve descuenta cantidad del stock del producto en la bodega y devuelve el
// stock resultante. Cantidad 0 es no-op: no falla ni muta (una bodega puede
// despachar 0 unidades de una línea). Si cantidad excede el stock disponible
// retorna InsufficientStockError y no muta nada.
func (l *Ledger) Reserve(ctx context.Context, productID, warehouse string, cantidad int) (int, error) {
	if cantidad < 0 {
		return 0, domain.ErrInvalidInput
	}
	if cantidad == 0 {
		return l.stocks.Get(ctx, productID, warehouse)
	}
	actual, err := l.stocks.GetForUpdate(ctx, productID, warehouse)
	if err != nil {
		return 0, err
	}
	if cantidad > actual {
		return actual, &domain.InsufficientStockError{
			ProductID: productID,
			Warehouse: warehouse,
			Available: actual,
			Requested: cantidad,
		}
	}
	nuevo := actual - cantidad
	if err := l.stocks.Upsert(ctx, productID, warehouse, nuevo); err != nil {
		return 0, err
	}
	return nuevo, nil
}

// SetStock fija el stock absoluto del producto en la bodega (carga inicial y
// ajustes del admin). Cantidades negativas se rechazan.
func (l *Ledger) SetStock(ctx context.Context, productID, warehouse string, cantidad int) error {
	if cantidad < 0 {
		return domain.ErrInvalidInput
	}
	return l.stocks.Upsert(ctx, productID, warehouse, cantidad)
}

// ParseCantidad normaliza un valor de stock heredado a entero. Los datos
// históricos guardan stock como número, como string numérico o como float;
// cualquier cosa no numérica lee 0.
func ParseCantidad(v any) int {
	switch n := v.(type) {
	case int:
		return n
	case int64:
		return int(n)
	case float64:
		return int(n)
	case string:
		s := strings.TrimSpace(n)
		if s == "" {
			return 0
		}
		if i, err := strconv.Atoi(s); err == nil {
			return i
		}
		if f, err := strconv.ParseFloat(s, 64); err == nil {
			return int(f)
		}
	}
	return 0
}

// NormalizeMap normaliza un mapa bodega → valor heredado a bodega → entero.
// Un stock plano (sin dividir por bodega) entra completo a la bodega doméstica.
func NormalizeMap(raw map[string]any, flat *int, domestic string) map[string]int {
	out := make(map[string]int, len(raw)+1)
	if flat != nil {
		out[domestic] = *flat
		return out
	}
	for k, v := range raw {
		out[strings.ToLower(k)] = ParseCantidad(v)
	}
	return out
}
