package repository

import "context"

// StockRepository puerto del stock por (producto, bodega). Las cantidades son
// enteros no negativos; claves de bodega inexistentes leen 0. La mutación pasa
// siempre por el ledger de inventario, nunca por los repos de producto.
type StockRepository interface {
	Get(ctx context.Context, productID, warehouse string) (int, error)
	// GetForUpdate lee la cantidad bloqueando la fila (SELECT FOR UPDATE).
	// Solo tiene sentido dentro de una transacción del TxRunner.
	GetForUpdate(ctx context.Context, productID, warehouse string) (int, error)
	Upsert(ctx context.Context, productID, warehouse string, cantidad int) error
	// GetByProduct devuelve el mapa bodega → cantidad del producto.
	GetByProduct(ctx context.Context, productID string) (map[string]int, error)
}
