package repository

import (
	"context"

	"github.com/rizosfelices/pedidos-api/internal/domain/entity"
)

// ProductFilter filtro de listados de productos.
type ProductFilter struct {
	AdminID     string
	SoloActivos bool
	Limit       int
}

// ProductRepository puerto de persistencia de productos.
// Los métodos Get* devuelven (nil, nil) si el producto no existe.
type ProductRepository interface {
	GetByID(ctx context.Context, id string) (*entity.Product, error)
	List(ctx context.Context, f ProductFilter) ([]*entity.Product, error)
	Create(ctx context.Context, p *entity.Product) error
	Update(ctx context.Context, p *entity.Product) error
	// SetActivo marca el producto activo/inactivo (soft-delete).
	SetActivo(ctx context.Context, id string, activo bool) error
	// MaxID devuelve el mayor ID de negocio (P001, P002, ...) del admin, o "" si no hay.
	MaxID(ctx context.Context, adminID string) (string, error)
}
