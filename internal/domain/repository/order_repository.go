package repository

import (
	"context"

	"github.com/rizosfelices/pedidos-api/internal/domain/entity"
)

// OrderFilter filtro de listados de órdenes. TipoPrecioIn vacío = sin filtro.
type OrderFilter struct {
	DistribuidorID string
	TipoPrecioIn   []string
	Kind           string
	Estado         string
	Limit          int
}

// OrderRepository puerto de persistencia de órdenes (orden de compra y pedido
// directo unificados en un solo registro). Get* devuelven (nil, nil) si no existe.
type OrderRepository interface {
	Create(ctx context.Context, o *entity.Order) error
	GetByID(ctx context.Context, id string) (*entity.Order, error)
	// GetByIDForUpdate bloquea la orden para el procesamiento (evita doble despacho).
	GetByIDForUpdate(ctx context.Context, id string) (*entity.Order, error)
	Update(ctx context.Context, o *entity.Order) error
	// UpdateEstado fija el estado; devuelve false si la orden no existe.
	UpdateEstado(ctx context.Context, id, estado string) (bool, error)
	List(ctx context.Context, f OrderFilter) ([]*entity.Order, error)
}
