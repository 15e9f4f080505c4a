package dto

import "strings"

// LoginRequest credenciales de acceso.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// Normalize baja a minúsculas y limpia el email.
func (r *LoginRequest) Normalize() {
	r.Email = strings.ToLower(strings.TrimSpace(r.Email))
}

// LoginResponse token emitido más el perfil básico del actor.
type LoginResponse struct {
	AccessToken string       `json:"access_token"`
	TokenType   string       `json:"token_type"`
	User        UserResponse `json:"user"`
}

// RegisterRequest alta de un usuario por el admin.
type RegisterRequest struct {
	Nombre               string `json:"nombre" validate:"required,min=1,max=200"`
	Pais                 string `json:"pais"`
	Email                string `json:"email" validate:"required,email"`
	Phone                string `json:"phone"`
	Password             string `json:"password" validate:"required,min=8"`
	Rol                  string `json:"rol" validate:"required"`
	CDI                  string `json:"cdi"`
	TipoPrecio           string `json:"tipo_precio"`
	UnidadesIndividuales bool   `json:"unidades_individuales"`
}

// Normalize limpia los campos de identidad.
func (r *RegisterRequest) Normalize() {
	r.Nombre = strings.TrimSpace(r.Nombre)
	r.Email = strings.ToLower(strings.TrimSpace(r.Email))
	r.Pais = strings.TrimSpace(r.Pais)
	r.CDI = strings.ToLower(strings.TrimSpace(r.CDI))
}
