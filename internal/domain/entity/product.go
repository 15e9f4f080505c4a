package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Precios set de precios de un producto según el tipo de precio del distribuidor.
type Precios struct {
	SinIVAColombia     decimal.Decimal `json:"sin_iva_colombia"`
	ConIVAColombia     decimal.Decimal `json:"con_iva_colombia"`
	Internacional      decimal.Decimal `json:"internacional"`
	FechaActualizacion time.Time       `json:"fecha_actualizacion"`
}

// Margenes márgenes comerciales del producto.
type Margenes struct {
	Descuento  decimal.Decimal `json:"descuento"`
	TipoCodigo int             `json:"tipo_codigo,omitempty"`
}

// Product representa un producto del catálogo. El identificador es de negocio
// (P001, P002, ...) y lo asigna el sistema secuencialmente por admin.
// El stock se maneja por bodega en la tabla de stock, nunca aquí.
type Product struct {
	ID            string
	AdminID       string
	Nombre        string
	Categoria     string
	Descripcion   string
	Imagen        string
	Precios       Precios
	Margenes      Margenes
	Activo        bool
	CreadoEn      time.Time
	ActualizadoEn time.Time
}

// PrecioPara devuelve el precio base (sin IVA aplicado) para un tipo de precio.
// El segundo retorno es false si el tipo no es válido.
func (p *Product) PrecioPara(tipoPrecio string) (decimal.Decimal, bool) {
	switch tipoPrecio {
	case PrecioSinIVA:
		return p.Precios.SinIVAColombia, true
	case PrecioConIVA:
		return p.Precios.ConIVAColombia, true
	case PrecioSinIVAInternacional:
		return p.Precios.Internacional, true
	}
	return decimal.Zero, false
}
