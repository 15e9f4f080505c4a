package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/rizosfelices/pedidos-api/internal/domain/repository"
)

var _ repository.StockRepository = (*StockRepo)(nil)

// StockRepo implementación de StockRepository sobre PostgreSQL (usable con pool o tx).
type StockRepo struct {
	q Querier
}

// NewStockRepository construye el adaptador de stock. Pasar pool o tx (Querier).
func NewStockRepository(q Querier) *StockRepo {
	return &StockRepo{q: q}
}

// Get obtiene el stock actual de un producto en una bodega; fila inexistente lee 0.
func (r *StockRepo) Get(ctx context.Context, productID, warehouse string) (int, error) {
	query := `SELECT cantidad FROM stock WHERE producto_id = $1 AND bodega = $2`
	var cantidad int
	err := r.q.QueryRow(ctx, query, productID, warehouse).Scan(&cantidad)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, nil
		}
		return 0, fmt.Errorf("get stock: %w", err)
	}
	return cantidad, nil
}

// GetForUpdate obtiene el stock bloqueando la fila (SELECT FOR UPDATE).
func (r *StockRepo) GetForUpdate(ctx context.Context, productID, warehouse string) (int, error) {
	query := `SELECT cantidad FROM stock WHERE producto_id = $1 AND bodega = $2 FOR UPDATE`
	var cantidad int
	err := r.q.QueryRow(ctx, query, productID, warehouse).Scan(&cantidad)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, nil
		}
		return 0, fmt.Errorf("get stock for update: %w", err)
	}
	return cantidad, nil
}

// Upsert inserta o actualiza la cantidad (por producto y bodega).
func (r *StockRepo) Upsert(ctx context.Context, productID, warehouse string, cantidad int) error {
	query := `
		INSERT INTO stock (producto_id, bodega, cantidad, actualizado_en)
		VALUES ($1, $2, $3, now())
		ON CONFLICT (producto_id, bodega)
		DO UPDATE SET cantidad = EXCLUDED.cantidad, actualizado_en = now()`
	if _, err := r.q.Exec(ctx, query, productID, warehouse, cantidad); err != nil {
		return fmt.Errorf("upsert stock: %w", err)
	}
	return nil
}

// GetByProduct devuelve el mapa bodega -> cantidad del producto.
func (r *StockRepo) GetByProduct(ctx context.Context, productID string) (map[string]int, error) {
	query := `SELECT bodega, cantidad FROM stock WHERE producto_id = $1`
	rows, err := r.q.Query(ctx, query, productID)
	if err != nil {
		return nil, fmt.Errorf("stock por producto: %w", err)
	}
	defer rows.Close()

	out := map[string]int{}
	for rows.Next() {
		var bodega string
		var cantidad int
		if err := rows.Scan(&bodega, &cantidad); err != nil {
			return nil, fmt.Errorf("scan stock: %w", err)
		}
		out[bodega] = cantidad
	}
	return out, rows.Err()
}
