package domain

import (
	"errors"
	"fmt"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound           = errors.New("recurso no encontrado")
	ErrUserNotFound       = errors.New("usuario no encontrado")
	ErrEmailAlreadyExists = errors.New("el email ya está registrado")
	ErrInvalidInput       = errors.New("entrada inválida")
	ErrDuplicate          = errors.New("recurso duplicado")
	ErrUnauthorized       = errors.New("no autorizado")
	ErrForbidden          = errors.New("acceso denegado")
	ErrConflict           = errors.New("conflicto con el estado actual")
	ErrInvalidPriceMode   = errors.New("tipo de precio no válido")
	ErrInvalidStatus      = errors.New("estado no válido")
	ErrMalformedLineItem  = errors.New("cada producto debe tener 'id', 'cantidad' y 'precio'")
)

// InsufficientStockError indica que una reserva excede el stock disponible.
// Lleva el producto ofensor y ambas cantidades para el mensaje al cliente.
type InsufficientStockError struct {
	ProductID string
	Warehouse string
	Available int
	Requested int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("stock insuficiente para %s en %s: disponible %d, solicitado %d",
		e.ProductID, e.Warehouse, e.Available, e.Requested)
}

// IsInsufficientStock reporta si err es un InsufficientStockError.
func IsInsufficientStock(err error) bool {
	var ise *InsufficientStockError
	return errors.As(err, &ise)
}
