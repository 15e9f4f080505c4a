package dto

import (
	"time"

	"github.com/rizosfelices/pedidos-api/internal/domain/entity"
)

// UserResponse perfil de usuario en respuestas (nunca incluye el hash).
type UserResponse struct {
	ID                   string    `json:"id"`
	Nombre               string    `json:"nombre"`
	Pais                 string    `json:"pais,omitempty"`
	Email                string    `json:"email"`
	Phone                string    `json:"phone,omitempty"`
	Rol                  string    `json:"rol"`
	Estado               string    `json:"estado"`
	CDI                  string    `json:"cdi,omitempty"`
	TipoPrecio           string    `json:"tipo_precio,omitempty"`
	UnidadesIndividuales bool      `json:"unidades_individuales"`
	FechaUltimoAcceso    time.Time `json:"fecha_ultimo_acceso,omitempty"`
}

// UserListResponse listado de usuarios.
type UserListResponse struct {
	Usuarios []UserResponse `json:"usuarios"`
	Total    int            `json:"total"`
}

// UpdateUserRequest actualización parcial de un usuario. Campos nil no cambian.
type UpdateUserRequest struct {
	Nombre               *string `json:"nombre" validate:"omitempty,min=1,max=200"`
	Pais                 *string `json:"pais"`
	Phone                *string `json:"phone"`
	Estado               *string `json:"estado"`
	CDI                  *string `json:"cdi"`
	TipoPrecio           *string `json:"tipo_precio"`
	UnidadesIndividuales *bool   `json:"unidades_individuales"`
	Password             *string `json:"password" validate:"omitempty,min=8"`
}

// ToUserResponse mapea la entidad al perfil de respuesta.
func ToUserResponse(u *entity.User) UserResponse {
	return UserResponse{
		ID:                   u.ID,
		Nombre:               u.Nombre,
		Pais:                 u.Pais,
		Email:                u.Email,
		Phone:                u.Phone,
		Rol:                  u.Rol,
		Estado:               u.Estado,
		CDI:                  u.CDI,
		TipoPrecio:           u.TipoPrecio,
		UnidadesIndividuales: u.UnidadesIndividuales,
		FechaUltimoAcceso:    u.FechaUltimoAcceso,
	}
}

// ToUserListResponse mapea un listado de usuarios.
func ToUserListResponse(usuarios []*entity.User) UserListResponse {
	out := UserListResponse{Usuarios: make([]UserResponse, 0, len(usuarios)), Total: len(usuarios)}
	for _, u := range usuarios {
		out.Usuarios = append(out.Usuarios, ToUserResponse(u))
	}
	return out
}
