package dto

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/rizosfelices/pedidos-api/internal/domain/entity"
)

// OrderLineRequest línea de una orden entrante. Cantidad y precio llegan como
// número o string; punteros para distinguir campo ausente de valor cero.
type OrderLineRequest struct {
	ID       string       `json:"id" validate:"required"`
	Nombre   string       `json:"nombre"`
	Cantidad *FlexInt     `json:"cantidad" validate:"required"`
	Precio   *FlexDecimal `json:"precio" validate:"required"`
}

// CreateOrderRequest entrada para crear una orden de compra.
type CreateOrderRequest struct {
	Productos []OrderLineRequest `json:"productos" validate:"required,min=1"`
	Direccion string             `json:"direccion" validate:"required"`
	Notas     string             `json:"notas"`
}

// Normalize limpia espacios en los campos de texto.
func (r *CreateOrderRequest) Normalize() {
	r.Direccion = strings.TrimSpace(r.Direccion)
	r.Notas = strings.TrimSpace(r.Notas)
	for i := range r.Productos {
		r.Productos[i].ID = strings.TrimSpace(r.Productos[i].ID)
		r.Productos[i].Nombre = strings.TrimSpace(r.Productos[i].Nombre)
	}
}

// ProcessLineRequest cantidad final despachada de una línea. Cero deja la
// línea informativa (sin despacho ni cobro). Precio e IVAUnitario permiten a
// la bodega ajustar el precio pactado al despachar.
type ProcessLineRequest struct {
	ID            string       `json:"id" validate:"required"`
	CantidadFinal *FlexInt     `json:"cantidad_final" validate:"required"`
	Precio        *FlexDecimal `json:"precio"`
	IVAUnitario   *FlexDecimal `json:"iva_unitario"`
}

// ProcessOrderRequest entrada para procesar una orden de compra en bodega.
type ProcessOrderRequest struct {
	Productos []ProcessLineRequest `json:"productos" validate:"required,min=1"`
	Notas     string               `json:"notas"`
}

// UpdateStatusRequest cambio de estado de facturación/despacho.
type UpdateStatusRequest struct {
	Estado string `json:"estado" validate:"required"`
}

// OrderLineResponse línea de orden en respuestas.
type OrderLineResponse struct {
	ID                 string          `json:"id"`
	Nombre             string          `json:"nombre"`
	Cantidad           int             `json:"cantidad"`
	CantidadSolicitada int             `json:"cantidad_solicitada,omitempty"`
	Precio             decimal.Decimal `json:"precio"`
	PrecioSinIVA       decimal.Decimal `json:"precio_sin_iva"`
	IVAUnitario        decimal.Decimal `json:"iva_unitario"`
	Total              decimal.Decimal `json:"total"`
}

// OrderResponse orden completa en respuestas.
type OrderResponse struct {
	ID                 string              `json:"id"`
	DistribuidorID     string              `json:"distribuidor_id"`
	DistribuidorNombre string              `json:"distribuidor_nombre"`
	DistribuidorPhone  string              `json:"distribuidor_phone,omitempty"`
	Productos          []OrderLineResponse `json:"productos"`
	Direccion          string              `json:"direccion"`
	Notas              string              `json:"notas,omitempty"`
	Fecha              time.Time           `json:"fecha"`
	Estado             string              `json:"estado"`
	Subtotal           decimal.Decimal     `json:"subtotal"`
	IVA                decimal.Decimal     `json:"iva"`
	Total              decimal.Decimal     `json:"total"`
	TipoPrecio         string              `json:"tipo_precio"`
	ProcesadoPor       string              `json:"procesado_por,omitempty"`
	BodegaProcesadora  string              `json:"bodega_procesadora,omitempty"`
	FechaProcesado     *time.Time          `json:"fecha_procesado,omitempty"`
	NotasProcesamiento string              `json:"notas_procesamiento,omitempty"`
}

// OrderListResponse listado de órdenes.
type OrderListResponse struct {
	Ordenes []OrderResponse `json:"ordenes"`
	Total   int             `json:"total"`
}

// ToOrderResponse mapea la entidad al cuerpo de respuesta.
func ToOrderResponse(o *entity.Order) OrderResponse {
	resp := OrderResponse{
		ID:                 o.ID,
		DistribuidorID:     o.DistribuidorID,
		DistribuidorNombre: o.DistribuidorNombre,
		DistribuidorPhone:  o.DistribuidorPhone,
		Productos:          make([]OrderLineResponse, 0, len(o.Productos)),
		Direccion:          o.Direccion,
		Notas:              o.Notas,
		Fecha:              o.Fecha,
		Estado:             o.Estado,
		Subtotal:           o.Subtotal,
		IVA:                o.IVA,
		Total:              o.Total,
		TipoPrecio:         o.TipoPrecio,
	}
	for _, l := range o.Productos {
		resp.Productos = append(resp.Productos, OrderLineResponse{
			ID:                 l.ProductID,
			Nombre:             l.Nombre,
			Cantidad:           l.Cantidad,
			CantidadSolicitada: l.CantidadSolicitada,
			Precio:             l.Precio,
			PrecioSinIVA:       l.PrecioSinIVA,
			IVAUnitario:        l.IVAUnitario,
			Total:              l.Total,
		})
	}
	if o.Processing != nil {
		resp.ProcesadoPor = o.Processing.ProcesadoPor
		resp.BodegaProcesadora = o.Processing.BodegaProcesadora
		resp.FechaProcesado = &o.Processing.FechaProcesado
		resp.NotasProcesamiento = o.Processing.NotasProcesamiento
	}
	return resp
}

// ToOrderListResponse mapea un listado de entidades.
func ToOrderListResponse(ordenes []*entity.Order) OrderListResponse {
	out := OrderListResponse{Ordenes: make([]OrderResponse, 0, len(ordenes)), Total: len(ordenes)}
	for _, o := range ordenes {
		out.Ordenes = append(out.Ordenes, ToOrderResponse(o))
	}
	return out
}
