package entity

import (
	"strings"
	"time"
)

// Roles válidos para User.
const (
	RoleAdmin                     = "Admin"
	RoleDistribuidorNacional      = "distribuidor_nacional"
	RoleDistribuidorInternacional = "distribuidor_internacional"
	RoleProduccion                = "produccion"
	RoleFacturacion               = "facturacion"
	RoleBodega                    = "bodega"
)

// IsDistribuidor reporta si el rol corresponde a un distribuidor (nacional o internacional).
func IsDistribuidor(rol string) bool {
	return strings.HasPrefix(rol, "distribuidor")
}

// User representa cualquier actor del sistema: admin, distribuidor, bodega,
// producción o facturación. Los campos CDI/TipoPrecio/UnidadesIndividuales solo
// aplican a bodegas y distribuidores respectivamente.
type User struct {
	ID           string
	AdminID      string // admin dueño, para distribuidores y bodegas
	Nombre       string
	Pais         string
	Email        string
	Phone        string
	PasswordHash string // bcrypt, nunca plano después de persistir
	Rol          string
	Estado       string // activo, inactivo
	CDI          string // clave de bodega (solo rol bodega, y distribuidores para ruteo de correos)
	TipoPrecio   string // solo distribuidores: con_iva, sin_iva, sin_iva_internacional
	// UnidadesIndividuales indica si el distribuidor compra por unidad suelta.
	UnidadesIndividuales bool
	FechaUltimoAcceso    time.Time
	CreatedAt            time.Time
	UpdatedAt            time.Time
}
