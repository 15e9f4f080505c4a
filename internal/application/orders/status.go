package orders

import (
	"context"

	"github.com/rizosfelices/pedidos-api/internal/domain"
	"github.com/rizosfelices/pedidos-api/internal/domain/entity"
)

// SetStatus fija el estado de facturación/despacho de una orden. Solo admite
// los estados terminales explícitos (facturado, en camino); el resto del ciclo
// de vida lo manejan la creación y el procesamiento.
func (s *Service) SetStatus(ctx context.Context, actor *entity.User, ordenID, estado string) error {
	switch actor.Rol {
	case entity.RoleAdmin, entity.RoleProduccion, entity.RoleFacturacion, entity.RoleBodega:
	default:
		return domain.ErrForbidden
	}
	if !entity.AllowedStatusChange(estado) {
		return domain.ErrInvalidStatus
	}

	ok, err := s.orderRepo.UpdateEstado(ctx, ordenID, estado)
	if err != nil {
		return err
	}
	if !ok {
		return domain.ErrNotFound
	}

	s.log.Info().Str("orden_id", ordenID).Str("estado", estado).
		Str("actor", actor.Email).Msg("estado de orden actualizado")
	return nil
}
