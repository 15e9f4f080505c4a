package dto

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/rizosfelices/pedidos-api/internal/domain/entity"
)

// PreciosRequest precios de un producto en la entrada (acepta número o string).
type PreciosRequest struct {
	SinIVAColombia FlexDecimal `json:"sin_iva_colombia"`
	ConIVAColombia FlexDecimal `json:"con_iva_colombia"`
	Internacional  FlexDecimal `json:"internacional"`
}

// CreateProductRequest entrada para crear un producto.
type CreateProductRequest struct {
	Nombre      string         `json:"nombre" validate:"required,min=1,max=200"`
	Categoria   string         `json:"categoria"`
	Descripcion string         `json:"descripcion"`
	Imagen      string         `json:"imagen"`
	Precios     PreciosRequest `json:"precios" validate:"required"`
	Descuento   FlexDecimal    `json:"descuento"`
	Stock       FlexStock      `json:"stock"`
}

// Normalize limpia espacios en los campos de texto.
func (r *CreateProductRequest) Normalize() {
	r.Nombre = strings.TrimSpace(r.Nombre)
	r.Categoria = strings.TrimSpace(r.Categoria)
	r.Descripcion = strings.TrimSpace(r.Descripcion)
}

// UpdateProductRequest entrada para actualizar un producto. Campos nil no cambian.
type UpdateProductRequest struct {
	Nombre      *string         `json:"nombre" validate:"omitempty,min=1,max=200"`
	Categoria   *string         `json:"categoria"`
	Descripcion *string         `json:"descripcion"`
	Imagen      *string         `json:"imagen"`
	Precios     *PreciosRequest `json:"precios"`
	Descuento   *FlexDecimal    `json:"descuento"`
	Stock       *FlexStock      `json:"stock"`
}

// PreciosResponse precios en respuestas para el admin.
type PreciosResponse struct {
	SinIVAColombia     decimal.Decimal `json:"sin_iva_colombia"`
	ConIVAColombia     decimal.Decimal `json:"con_iva_colombia"`
	Internacional      decimal.Decimal `json:"internacional"`
	FechaActualizacion time.Time       `json:"fecha_actualizacion"`
}

// ProductResponse producto completo (vista de admin).
type ProductResponse struct {
	ID            string          `json:"id"`
	Nombre        string          `json:"nombre"`
	Categoria     string          `json:"categoria,omitempty"`
	Descripcion   string          `json:"descripcion,omitempty"`
	Imagen        string          `json:"imagen,omitempty"`
	Precios       PreciosResponse `json:"precios"`
	Descuento     decimal.Decimal `json:"descuento"`
	Stock         map[string]int  `json:"stock"`
	Activo        bool            `json:"activo"`
	CreadoEn      time.Time       `json:"creado_en"`
	ActualizadoEn time.Time       `json:"actualizado_en"`
}

// DistribuidorProductResponse vista de catálogo para un distribuidor: un solo
// precio (el de su tipo) y sin stock por bodega.
type DistribuidorProductResponse struct {
	ID          string          `json:"id"`
	Nombre      string          `json:"nombre"`
	Categoria   string          `json:"categoria,omitempty"`
	Descripcion string          `json:"descripcion,omitempty"`
	Imagen      string          `json:"imagen,omitempty"`
	Precio      decimal.Decimal `json:"precio"`
	Descuento   decimal.Decimal `json:"descuento"`
}

// ProductListResponse listado de productos (vista de admin).
type ProductListResponse struct {
	Productos []ProductResponse `json:"productos"`
	Total     int               `json:"total"`
}

// DistribuidorProductListResponse listado de catálogo para distribuidores.
type DistribuidorProductListResponse struct {
	Productos []DistribuidorProductResponse `json:"productos"`
	Total     int                           `json:"total"`
}

// ToProductResponse mapea la entidad con su stock por bodega.
func ToProductResponse(p *entity.Product, stock map[string]int) ProductResponse {
	if stock == nil {
		stock = map[string]int{}
	}
	return ProductResponse{
		ID:          p.ID,
		Nombre:      p.Nombre,
		Categoria:   p.Categoria,
		Descripcion: p.Descripcion,
		Imagen:      p.Imagen,
		Precios: PreciosResponse{
			SinIVAColombia:     p.Precios.SinIVAColombia,
			ConIVAColombia:     p.Precios.ConIVAColombia,
			Internacional:      p.Precios.Internacional,
			FechaActualizacion: p.Precios.FechaActualizacion,
		},
		Descuento:     p.Margenes.Descuento,
		Stock:         stock,
		Activo:        p.Activo,
		CreadoEn:      p.CreadoEn,
		ActualizadoEn: p.ActualizadoEn,
	}
}

// ToDistribuidorProductResponse mapea la vista de catálogo con el precio del
// tipo de precio del distribuidor.
func ToDistribuidorProductResponse(p *entity.Product, precio decimal.Decimal) DistribuidorProductResponse {
	return DistribuidorProductResponse{
		ID:          p.ID,
		Nombre:      p.Nombre,
		Categoria:   p.Categoria,
		Descripcion: p.Descripcion,
		Imagen:      p.Imagen,
		Precio:      precio,
		Descuento:   p.Margenes.Descuento,
	}
}
