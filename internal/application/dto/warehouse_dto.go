package dto

import "github.com/rizosfelices/pedidos-api/internal/domain/entity"

// WarehouseResponse una bodega/CDI del catálogo.
type WarehouseResponse struct {
	Key       string `json:"key"`
	Nombre    string `json:"nombre"`
	Direccion string `json:"direccion,omitempty"`
	Email     string `json:"email,omitempty"`
}

// WarehouseListResponse lista de bodegas.
type WarehouseListResponse struct {
	Bodegas []WarehouseResponse `json:"bodegas"`
	Total   int                 `json:"total"`
}

// ToWarehouseListResponse mapea las entidades a la respuesta de listado.
func ToWarehouseListResponse(ws []*entity.Warehouse) *WarehouseListResponse {
	out := &WarehouseListResponse{Bodegas: []WarehouseResponse{}}
	for _, w := range ws {
		out.Bodegas = append(out.Bodegas, WarehouseResponse{
			Key:       w.Key,
			Nombre:    w.Nombre,
			Direccion: w.Direccion,
			Email:     w.Email,
		})
	}
	out.Total = len(out.Bodegas)
	return out
}
