package jwt

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Claims incluye los claims estándar JWT más los campos propios de la aplicación.
// Subject es el email del usuario; Rol permite decisiones RBAC sin consultar la DB.
// CDI y TipoPrecio viajan en el token porque el frontend los usa para armar la
// vista de catálogo del distribuidor o de la bodega.
type Claims struct {
	jwt.RegisteredClaims
	Rol                  string `json:"rol"`
	Nombre               string `json:"nombre,omitempty"`
	Pais                 string `json:"pais,omitempty"`
	CDI                  string `json:"cdi,omitempty"`
	TipoPrecio           string `json:"tipo_precio,omitempty"`
	UnidadesIndividuales bool   `json:"unidades_individuales,omitempty"`
}

// UserClaims datos de usuario a embeber en el token.
type UserClaims struct {
	Email                string
	Rol                  string
	Nombre               string
	Pais                 string
	CDI                  string
	TipoPrecio           string
	UnidadesIndividuales bool
}

// Generate genera un token JWT firmado con los claims del usuario.
func Generate(secret string, u UserClaims, issuer string, expMinutes int) (string, error) {
	if secret == "" {
		return "", fmt.Errorf("jwt: secret vacío")
	}
	now := time.Now()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   u.Email,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Duration(expMinutes) * time.Minute)),
		},
		Rol:                  u.Rol,
		Nombre:               u.Nombre,
		Pais:                 u.Pais,
		CDI:                  u.CDI,
		TipoPrecio:           u.TipoPrecio,
		UnidadesIndividuales: u.UnidadesIndividuales,
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// Parse valida el token y devuelve los claims del usuario.
// Retorna error si el token es inválido, expirado o tiene firma incorrecta.
func Parse(secret, tokenString string) (*UserClaims, error) {
	if secret == "" {
		return nil, fmt.Errorf("jwt: secret vacío")
	}
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("método de firma inesperado: %v", t.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil {
		return nil, err
	}
	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("claims inválidos")
	}
	return &UserClaims{
		Email:                claims.Subject,
		Rol:                  claims.Rol,
		Nombre:               claims.Nombre,
		Pais:                 claims.Pais,
		CDI:                  claims.CDI,
		TipoPrecio:           claims.TipoPrecio,
		UnidadesIndividuales: claims.UnidadesIndividuales,
	}, nil
}
