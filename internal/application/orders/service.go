// Package orders implementa el ciclo de vida de las órdenes: creación por
// distribuidores, procesamiento en bodega y cambios de estado de facturación.
package orders

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/rizosfelices/pedidos-api/internal/application/dto"
	"github.com/rizosfelices/pedidos-api/internal/domain/entity"
	"github.com/rizosfelices/pedidos-api/internal/domain/repository"
	"github.com/rizosfelices/pedidos-api/pkg/config"
	"github.com/rizosfelices/pedidos-api/pkg/logger"
)

// Service casos de uso de órdenes.
type Service struct {
	txRunner   TxRunner
	orderRepo  repository.OrderRepository
	userRepo   repository.UserRepository
	notifier   Notifier
	warehouses config.WarehouseConfig
	log        *logger.Logger
	now        func() time.Time
}

// NewService construye el servicio de órdenes.
func NewService(
	txRunner TxRunner,
	orderRepo repository.OrderRepository,
	userRepo repository.UserRepository,
	notifier Notifier,
	warehouses config.WarehouseConfig,
	log *logger.Logger,
) *Service {
	return &Service{
		txRunner:   txRunner,
		orderRepo:  orderRepo,
		userRepo:   userRepo,
		notifier:   notifier,
		warehouses: warehouses,
		log:        log,
		now:        time.Now,
	}
}

// warehouseFor devuelve la bodega que atiende un tipo de precio: la de
// exportación para internacional, la doméstica para el resto.
func (s *Service) warehouseFor(tipoPrecio string) string {
	if tipoPrecio == entity.PrecioSinIVAInternacional {
		return s.warehouses.Export
	}
	return s.warehouses.Domestic
}

// regionFilterFor tipos de precio visibles para una bodega según su CDI.
func (s *Service) regionFilterFor(cdi string) []string {
	if cdi == s.warehouses.Export {
		return []string{entity.PrecioSinIVAInternacional}
	}
	return []string{entity.PrecioConIVA, entity.PrecioSinIVA}
}

// orderID arma el identificador histórico: prefijo de clase + timestamp.
func orderID(prefix string, t time.Time) string {
	return prefix + t.Format("20060102150405")
}

// notifyCreated envía los correos de creación sin bloquear el resultado.
func (s *Service) notifyCreated(ctx context.Context, o *entity.Order, distribuidorEmail string) {
	if s.notifier == nil {
		return
	}
	if err := s.notifier.OrderCreated(ctx, o, distribuidorEmail); err != nil {
		s.log.Warn().Err(err).Str("orden_id", o.ID).Msg("no se pudieron enviar los correos de creación")
	}
}

// notifyProcessed envía los correos de despacho sin bloquear el resultado.
func (s *Service) notifyProcessed(ctx context.Context, o *entity.Order, distribuidorEmail string) {
	if s.notifier == nil {
		return
	}
	if err := s.notifier.OrderProcessed(ctx, o, distribuidorEmail); err != nil {
		s.log.Warn().Err(err).Str("orden_id", o.ID).Msg("no se pudieron enviar los correos de despacho")
	}
}

// distribuidorEmail resuelve el correo del distribuidor dueño de la orden;
// vacío si el registro ya no existe.
func (s *Service) distribuidorEmail(ctx context.Context, distribuidorID string) string {
	u, err := s.userRepo.GetByID(ctx, distribuidorID)
	if err != nil || u == nil {
		return ""
	}
	return u.Email
}

// maskExportPrices reescribe la vista de una orden internacional para la
// bodega de exportación: siempre precios sin IVA.
func maskExportPrices(resp *dto.OrderResponse) {
	for i := range resp.Productos {
		l := &resp.Productos[i]
		l.Precio = l.PrecioSinIVA
		l.IVAUnitario = decimal.Zero
		l.Total = l.PrecioSinIVA.Mul(decimal.NewFromInt(int64(l.Cantidad)))
	}
	resp.IVA = decimal.Zero
	resp.Total = resp.Subtotal
}
