package repository

import (
	"context"
	"time"

	"github.com/rizosfelices/pedidos-api/internal/domain/entity"
)

// UserFilter filtro de listados de usuarios.
type UserFilter struct {
	AdminID string
	Rol     string
}

// UserRepository puerto de persistencia de usuarios (todos los roles en una
// sola tabla). Get* → (nil, nil) si no existe.
type UserRepository interface {
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
	GetByID(ctx context.Context, id string) (*entity.User, error)
	Create(ctx context.Context, u *entity.User) error
	Update(ctx context.Context, u *entity.User) error
	List(ctx context.Context, f UserFilter) ([]*entity.User, error)
	// TouchUltimoAcceso estampa la fecha de último acceso al loguear.
	TouchUltimoAcceso(ctx context.Context, id string, t time.Time) error
}
