package orders

import (
	"context"

	"github.com/rizosfelices/pedidos-api/internal/application/dto"
	"github.com/rizosfelices/pedidos-api/internal/domain"
	"github.com/rizosfelices/pedidos-api/internal/domain/entity"
	"github.com/rizosfelices/pedidos-api/internal/domain/repository"
)

// Get devuelve una orden aplicando la visibilidad del rol: un distribuidor
// solo ve las suyas; una bodega solo las de su región, y la de exportación
// las ve siempre a precios sin IVA.
func (s *Service) Get(ctx context.Context, actor *entity.User, ordenID string) (*dto.OrderResponse, error) {
	orden, err := s.orderRepo.GetByID(ctx, ordenID)
	if err != nil {
		return nil, err
	}
	if orden == nil {
		return nil, domain.ErrNotFound
	}

	switch {
	case entity.IsDistribuidor(actor.Rol):
		if orden.DistribuidorID != actor.ID {
			return nil, domain.ErrForbidden
		}
	case actor.Rol == entity.RoleBodega:
		if actor.CDI == "" {
			return nil, domain.ErrInvalidInput
		}
		if !contains(s.regionFilterFor(actor.CDI), orden.TipoPrecio) {
			return nil, domain.ErrForbidden
		}
	case actor.Rol == entity.RoleAdmin, actor.Rol == entity.RoleProduccion, actor.Rol == entity.RoleFacturacion:
	default:
		return nil, domain.ErrForbidden
	}

	resp := dto.ToOrderResponse(orden)
	if actor.Rol == entity.RoleBodega && actor.CDI == s.warehouses.Export {
		maskExportPrices(&resp)
	}
	return &resp, nil
}

// List devuelve las órdenes visibles para el actor. El filtro de entrada se
// respeta en lo que el rol permite; la restricción del rol siempre gana.
func (s *Service) List(ctx context.Context, actor *entity.User, f repository.OrderFilter) (*dto.OrderListResponse, error) {
	switch {
	case entity.IsDistribuidor(actor.Rol):
		f.DistribuidorID = actor.ID
		f.TipoPrecioIn = nil
	case actor.Rol == entity.RoleBodega:
		if actor.CDI == "" {
			return nil, domain.ErrInvalidInput
		}
		f.DistribuidorID = ""
		f.TipoPrecioIn = s.regionFilterFor(actor.CDI)
	case actor.Rol == entity.RoleAdmin, actor.Rol == entity.RoleProduccion, actor.Rol == entity.RoleFacturacion:
	default:
		return nil, domain.ErrForbidden
	}

	ordenes, err := s.orderRepo.List(ctx, f)
	if err != nil {
		return nil, err
	}

	resp := dto.ToOrderListResponse(ordenes)
	if actor.Rol == entity.RoleBodega && actor.CDI == s.warehouses.Export {
		for i := range resp.Ordenes {
			maskExportPrices(&resp.Ordenes[i])
		}
	}
	return &resp, nil
}

func contains(ss []string, s string) bool {
	for _, v := range ss {
		if v == s {
			return true
		}
	}
	return false
}
