package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de precio de una orden (fijos durante toda su vida).
const (
	PrecioConIVA              = "con_iva"
	PrecioSinIVA              = "sin_iva"
	PrecioSinIVAInternacional = "sin_iva_internacional"
)

// ValidPriceMode reporta si el tipo de precio es uno de los tres soportados.
func ValidPriceMode(tipoPrecio string) bool {
	switch tipoPrecio {
	case PrecioConIVA, PrecioSinIVA, PrecioSinIVAInternacional:
		return true
	}
	return false
}

// Clases de orden. El prefijo del ID (OC-/PED-) se conserva por compatibilidad
// con el formato histórico, pero la discriminación se hace siempre por Kind.
const (
	OrderKindPurchase = "purchase" // orden de compra pendiente de despacho por bodega
	OrderKindDirect   = "direct"   // pedido directo, stock descontado al crear
)

// Estados de una orden. Los strings son parte del formato wire y no se traducen.
const (
	EstadoOrdenCreada  = "Orden de compra creada"
	EstadoProcesando   = "Procesando"
	EstadoPedidoCreado = "Pedido creado"
	EstadoFacturado    = "facturado"
	EstadoEnCamino     = "en camino"
)

// AllowedStatusChange reporta si un estado puede fijarse vía la operación
// explícita de cambio de estado (solo facturado / en camino).
func AllowedStatusChange(estado string) bool {
	return estado == EstadoFacturado || estado == EstadoEnCamino
}

// OrderLine una línea de producto dentro de una orden. Los precios quedan
// desnormalizados al crear; tras el procesamiento Cantidad pasa a ser la
// cantidad despachada y CantidadSolicitada conserva la original.
type OrderLine struct {
	ProductID          string          `json:"id"`
	Nombre             string          `json:"nombre"`
	Cantidad           int             `json:"cantidad"`
	CantidadSolicitada int             `json:"cantidad_solicitada,omitempty"`
	Precio             decimal.Decimal `json:"precio"`         // precio unitario con IVA aplicado
	PrecioSinIVA       decimal.Decimal `json:"precio_sin_iva"` // precio unitario base
	IVAUnitario        decimal.Decimal `json:"iva_unitario"`
	Total              decimal.Decimal `json:"total"`
}

// OrderProcessing metadatos de auditoría estampados cuando una bodega procesa la orden.
type OrderProcessing struct {
	ProcesadoPor       string    `json:"procesado_por"`
	BodegaProcesadora  string    `json:"bodega_procesadora"`
	FechaProcesado     time.Time `json:"fecha_procesado"`
	NotasProcesamiento string    `json:"notas_procesamiento,omitempty"`
}

// Order agregado único para órdenes de compra y pedidos directos. El snapshot
// del distribuidor es inmutable aunque el registro del distribuidor cambie
// después. Processing es nil hasta que una bodega despacha la orden.
type Order struct {
	ID                 string
	Kind               string
	DistribuidorID     string
	DistribuidorNombre string
	DistribuidorPhone  string
	TipoPrecio         string
	Productos          []OrderLine
	Direccion          string
	Notas              string
	Estado             string
	Subtotal           decimal.Decimal
	IVA                decimal.Decimal
	Total              decimal.Decimal
	Fecha              time.Time
	Processing         *OrderProcessing
}

// Procesada reporta si la orden ya fue despachada por una bodega.
func (o *Order) Procesada() bool {
	return o.Processing != nil
}
