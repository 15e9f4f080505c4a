package orders

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/rizosfelices/pedidos-api/internal/application/dto"
	"github.com/rizosfelices/pedidos-api/internal/application/inventory"
	"github.com/rizosfelices/pedidos-api/internal/domain"
	"github.com/rizosfelices/pedidos-api/internal/domain/entity"
	"github.com/rizosfelices/pedidos-api/internal/domain/pricing"
	"github.com/rizosfelices/pedidos-api/internal/domain/repository"
)

// CreatePurchaseOrder crea una orden de compra de un distribuidor: valida las
// líneas, reserva el stock en la bodega de su región y persiste la orden con
// los precios desnormalizados, todo en una transacción. Sin órdenes parciales:
// si una línea no tiene stock, nada se reserva ni se guarda.
func (s *Service) CreatePurchaseOrder(ctx context.Context, actor *entity.User, in dto.CreateOrderRequest) (*dto.OrderResponse, error) {
	return s.createOrder(ctx, actor, in, entity.OrderKindPurchase)
}

// CreateDirectOrder crea un pedido directo: misma reserva y cálculo que la
// orden de compra, pero nace en estado Procesando (no pasa por bodega).
func (s *Service) CreateDirectOrder(ctx context.Context, actor *entity.User, in dto.CreateOrderRequest) (*dto.OrderResponse, error) {
	return s.createOrder(ctx, actor, in, entity.OrderKindDirect)
}

func (s *Service) createOrder(ctx context.Context, actor *entity.User, in dto.CreateOrderRequest, kind string) (*dto.OrderResponse, error) {
	if !entity.IsDistribuidor(actor.Rol) {
		return nil, domain.ErrForbidden
	}

	in.Normalize()
	if in.Direccion == "" || len(in.Productos) == 0 {
		return nil, domain.ErrInvalidInput
	}

	tipoPrecio := actor.TipoPrecio
	if !entity.ValidPriceMode(tipoPrecio) {
		return nil, domain.ErrInvalidPriceMode
	}

	// Validación de forma antes de tocar stock
	for _, l := range in.Productos {
		if l.ID == "" || l.Cantidad == nil || l.Precio == nil {
			return nil, domain.ErrMalformedLineItem
		}
		if l.Cantidad.Int() <= 0 || l.Precio.Decimal.IsNegative() {
			return nil, domain.ErrMalformedLineItem
		}
	}

	bodega := s.warehouseFor(tipoPrecio)
	now := s.now()

	prefix := "OC-"
	estado := entity.EstadoOrdenCreada
	if kind == entity.OrderKindDirect {
		prefix = "PED-"
		estado = entity.EstadoProcesando
	}

	orden := &entity.Order{
		ID:                 orderID(prefix, now),
		Kind:               kind,
		DistribuidorID:     actor.ID,
		DistribuidorNombre: actor.Nombre,
		DistribuidorPhone:  actor.Phone,
		TipoPrecio:         tipoPrecio,
		Direccion:          in.Direccion,
		Notas:              in.Notas,
		Estado:             estado,
		Fecha:              now,
	}

	err := s.txRunner.Run(ctx, func(
		orderRepo repository.OrderRepository,
		stockRepo repository.StockRepository,
		productRepo repository.ProductRepository,
	) error {
		ledger := inventory.NewLedger(stockRepo)

		var subtotal, ivaTotal decimal.Decimal
		for _, l := range in.Productos {
			producto, err := productRepo.GetByID(ctx, l.ID)
			if err != nil {
				return err
			}
			if producto == nil || !producto.Activo {
				return fmt.Errorf("producto %s: %w", l.ID, domain.ErrNotFound)
			}

			cantidad := l.Cantidad.Int()
			if _, err := ledger.Reserve(ctx, producto.ID, bodega, cantidad); err != nil {
				return err
			}

			unit, err := pricing.ForUnit(l.Precio.Decimal, tipoPrecio)
			if err != nil {
				return err
			}

			orden.Productos = append(orden.Productos, entity.OrderLine{
				ProductID:    producto.ID,
				Nombre:       producto.Nombre,
				Cantidad:     cantidad,
				Precio:       unit.Precio,
				PrecioSinIVA: unit.PrecioSinIVA,
				IVAUnitario:  unit.IVAUnitario,
				Total:        unit.LineTotal(cantidad),
			})

			subtotal = subtotal.Add(unit.LineSubtotal(cantidad))
			ivaTotal = ivaTotal.Add(unit.LineIVA(cantidad))
		}

		orden.Subtotal = subtotal
		orden.IVA = ivaTotal
		orden.Total = subtotal.Add(ivaTotal)

		return orderRepo.Create(ctx, orden)
	})
	if err != nil {
		return nil, err
	}

	s.log.Info().
		Str("orden_id", orden.ID).
		Str("distribuidor_id", actor.ID).
		Str("tipo_precio", tipoPrecio).
		Str("bodega", bodega).
		Int("lineas", len(orden.Productos)).
		Msg("orden creada")

	s.notifyCreated(ctx, orden, actor.Email)

	resp := dto.ToOrderResponse(orden)
	return &resp, nil
}
