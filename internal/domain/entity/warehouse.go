package entity

import "time"

// Warehouse representa un centro de distribución (CDI) donde se almacena stock.
// La clave (medellin, guarne, ...) es un conjunto abierto configurado del lado
// de datos; el código solo distingue bodega doméstica vs de exportación.
type Warehouse struct {
	Key       string // clave de bodega usada en el mapa de stock y en los usuarios
	Nombre    string
	Direccion string
	Email     string // correo del CDI para notificaciones de órdenes
	CreatedAt time.Time
	UpdatedAt time.Time
}
