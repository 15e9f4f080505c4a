package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/rizosfelices/pedidos-api/internal/domain/entity"
	"github.com/rizosfelices/pedidos-api/internal/domain/repository"
)

var _ repository.WarehouseRepository = (*WarehouseRepo)(nil)

// WarehouseRepo implementación de WarehouseRepository sobre PostgreSQL.
type WarehouseRepo struct {
	q Querier
}

// NewWarehouseRepository construye el adaptador de bodegas. Pasar pool o tx (Querier).
func NewWarehouseRepository(q Querier) *WarehouseRepo {
	return &WarehouseRepo{q: q}
}

// GetByKey obtiene una bodega por su clave (medellin, guarne, ...).
func (r *WarehouseRepo) GetByKey(ctx context.Context, key string) (*entity.Warehouse, error) {
	query := `SELECT key, nombre, direccion, email, created_at, updated_at FROM bodegas WHERE key = $1`
	var w entity.Warehouse
	err := r.q.QueryRow(ctx, query, key).Scan(&w.Key, &w.Nombre, &w.Direccion, &w.Email, &w.CreatedAt, &w.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get bodega: %w", err)
	}
	return &w, nil
}

// List lista todas las bodegas.
func (r *WarehouseRepo) List(ctx context.Context) ([]*entity.Warehouse, error) {
	rows, err := r.q.Query(ctx, `SELECT key, nombre, direccion, email, created_at, updated_at FROM bodegas ORDER BY key`)
	if err != nil {
		return nil, fmt.Errorf("list bodegas: %w", err)
	}
	defer rows.Close()

	var out []*entity.Warehouse
	for rows.Next() {
		var w entity.Warehouse
		if err := rows.Scan(&w.Key, &w.Nombre, &w.Direccion, &w.Email, &w.CreatedAt, &w.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan bodega: %w", err)
		}
		out = append(out, &w)
	}
	return out, rows.Err()
}

// Upsert inserta o actualiza una bodega por su clave.
func (r *WarehouseRepo) Upsert(ctx context.Context, w *entity.Warehouse) error {
	query := `
		INSERT INTO bodegas (key, nombre, direccion, email, created_at, updated_at)
		VALUES ($1, $2, $3, $4, now(), now())
		ON CONFLICT (key)
		DO UPDATE SET nombre = EXCLUDED.nombre, direccion = EXCLUDED.direccion,
			email = EXCLUDED.email, updated_at = now()`
	if _, err := r.q.Exec(ctx, query, w.Key, w.Nombre, w.Direccion, w.Email); err != nil {
		return fmt.Errorf("upsert bodega: %w", err)
	}
	return nil
}
