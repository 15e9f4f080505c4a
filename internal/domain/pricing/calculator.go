// Package pricing contiene la calculadora pura de precios por tipo (con IVA,
// sin IVA, internacional). No toca persistencia; los casos de uso la componen
// con el ledger de stock.
package pricing

import (
	"github.com/shopspring/decimal"

	"github.com/rizosfelices/pedidos-api/internal/domain"
	"github.com/rizosfelices/pedidos-api/internal/domain/entity"
)

// tasa de IVA colombiana aplicada a distribuidores con_iva
var ivaRate = decimal.NewFromFloat(0.19)

// UnitPrice resultado del cálculo para una unidad de producto.
type UnitPrice struct {
	Precio       decimal.Decimal // precio efectivo por unidad (IVA aplicado si corresponde)
	PrecioSinIVA decimal.Decimal // precio base por unidad
	IVAUnitario  decimal.Decimal // IVA por unidad, ya redondeado a centavos
}

// ForUnit calcula el precio efectivo y el IVA de UNA unidad a partir del precio
// base (sin IVA). El redondeo es por unidad, antes de multiplicar por cantidad:
// redondear al nivel de línea produce derivas de centavos en órdenes grandes y
// rompe la reconciliación con los totales históricos.
func ForUnit(base decimal.Decimal, tipoPrecio string) (UnitPrice, error) {
	switch tipoPrecio {
	case entity.PrecioConIVA:
		iva := base.Mul(ivaRate).Round(2)
		return UnitPrice{
			Precio:       base.Add(iva).Round(2),
			PrecioSinIVA: base,
			IVAUnitario:  iva,
		}, nil
	case entity.PrecioSinIVA, entity.PrecioSinIVAInternacional:
		return UnitPrice{
			Precio:       base,
			PrecioSinIVA: base,
			IVAUnitario:  decimal.Zero,
		}, nil
	}
	return UnitPrice{}, domain.ErrInvalidPriceMode
}

// LineTotal devuelve el total de línea: precio efectivo por cantidad.
func (u UnitPrice) LineTotal(cantidad int) decimal.Decimal {
	return u.Precio.Mul(decimal.NewFromInt(int64(cantidad)))
}

// LineIVA devuelve el IVA de la línea: IVA unitario por cantidad, a centavos.
func (u UnitPrice) LineIVA(cantidad int) decimal.Decimal {
	return u.IVAUnitario.Mul(decimal.NewFromInt(int64(cantidad))).Round(2)
}

// LineSubtotal devuelve el aporte de la línea al subtotal (precio base por cantidad).
func (u UnitPrice) LineSubtotal(cantidad int) decimal.Decimal {
	return u.PrecioSinIVA.Mul(decimal.NewFromInt(int64(cantidad)))
}
