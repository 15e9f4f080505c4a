package repository

import (
	"context"

	"github.com/rizosfelices/pedidos-api/internal/domain/entity"
)

// WarehouseRepository puerto de persistencia de bodegas/CDIs.
type WarehouseRepository interface {
	GetByKey(ctx context.Context, key string) (*entity.Warehouse, error)
	List(ctx context.Context) ([]*entity.Warehouse, error)
	Upsert(ctx context.Context, w *entity.Warehouse) error
}
