package orders

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/rizosfelices/pedidos-api/internal/application/dto"
	"github.com/rizosfelices/pedidos-api/internal/application/inventory"
	"github.com/rizosfelices/pedidos-api/internal/domain"
	"github.com/rizosfelices/pedidos-api/internal/domain/entity"
	"github.com/rizosfelices/pedidos-api/internal/domain/repository"
)

// ProcessOrder despacha una orden de compra desde la bodega del actor.
// Cada línea del request fija la cantidad final realmente despachada:
//   - líneas del request que no están en la orden original se ignoran
//   - líneas de la orden que el request no menciona quedan fuera del despacho
//   - cantidad_final 0 conserva la línea como informativa (sin stock ni cobro)
//
// El stock se descuenta de la bodega del actor. Los totales se recalculan solo
// con las líneas despachadas. Una orden ya procesada no se reprocesa.
func (s *Service) ProcessOrder(ctx context.Context, actor *entity.User, ordenID string, in dto.ProcessOrderRequest) (*dto.OrderResponse, error) {
	if actor.Rol != entity.RoleBodega {
		return nil, domain.ErrForbidden
	}
	cdi := actor.CDI
	if cdi == "" {
		return nil, domain.ErrInvalidInput
	}
	if len(in.Productos) == 0 {
		return nil, domain.ErrInvalidInput
	}
	for _, l := range in.Productos {
		if l.ID == "" || l.CantidadFinal == nil {
			return nil, domain.ErrMalformedLineItem
		}
		if l.CantidadFinal.Int() < 0 {
			return nil, domain.ErrMalformedLineItem
		}
	}

	var orden *entity.Order
	err := s.txRunner.Run(ctx, func(
		orderRepo repository.OrderRepository,
		stockRepo repository.StockRepository,
		_ repository.ProductRepository,
	) error {
		var err error
		orden, err = orderRepo.GetByIDForUpdate(ctx, ordenID)
		if err != nil {
			return err
		}
		if orden == nil {
			return domain.ErrNotFound
		}
		if orden.Procesada() {
			return domain.ErrConflict
		}

		originales := make(map[string]entity.OrderLine, len(orden.Productos))
		for _, l := range orden.Productos {
			originales[l.ProductID] = l
		}

		ledger := inventory.NewLedger(stockRepo)
		conIVA := orden.TipoPrecio == entity.PrecioConIVA

		var subtotal, ivaTotal decimal.Decimal
		procesadas := make([]entity.OrderLine, 0, len(in.Productos))

		for _, p := range in.Productos {
			original, ok := originales[p.ID]
			if !ok {
				// producto que la orden nunca pidió
				s.log.Warn().Str("orden_id", ordenID).Str("producto_id", p.ID).
					Msg("producto del despacho no está en la orden, se omite")
				continue
			}

			cantidadFinal := p.CantidadFinal.Int()

			// La bodega puede ajustar precio/iva unitario al despachar
			precio := original.Precio
			if p.Precio != nil {
				precio = p.Precio.Decimal
			}
			ivaUnitario := original.IVAUnitario
			if p.IVAUnitario != nil {
				ivaUnitario = p.IVAUnitario.Decimal
			}
			precioSinIVA := precio
			if conIVA {
				precioSinIVA = precio.Sub(ivaUnitario)
			}

			lineaTotal := decimal.Zero
			if cantidadFinal > 0 {
				if _, err := ledger.Reserve(ctx, p.ID, cdi, cantidadFinal); err != nil {
					return err
				}
				qty := decimal.NewFromInt(int64(cantidadFinal))
				lineaTotal = precio.Mul(qty)
				subtotal = subtotal.Add(precioSinIVA.Mul(qty))
				ivaTotal = ivaTotal.Add(ivaUnitario.Mul(qty).Round(2))
			}

			procesadas = append(procesadas, entity.OrderLine{
				ProductID:          original.ProductID,
				Nombre:             original.Nombre,
				Cantidad:           cantidadFinal,
				CantidadSolicitada: original.Cantidad,
				Precio:             precio,
				PrecioSinIVA:       precioSinIVA,
				IVAUnitario:        ivaUnitario,
				Total:              lineaTotal,
			})
		}

		orden.Productos = procesadas
		orden.Subtotal = subtotal
		orden.IVA = ivaTotal
		orden.Total = subtotal.Add(ivaTotal)
		orden.Estado = entity.EstadoPedidoCreado
		orden.Processing = &entity.OrderProcessing{
			ProcesadoPor:       actor.Email,
			BodegaProcesadora:  cdi,
			FechaProcesado:     s.now(),
			NotasProcesamiento: in.Notas,
		}

		return orderRepo.Update(ctx, orden)
	})
	if err != nil {
		return nil, err
	}

	s.log.Info().
		Str("orden_id", orden.ID).
		Str("bodega", cdi).
		Str("procesado_por", actor.Email).
		Int("lineas", len(orden.Productos)).
		Msg("orden procesada")

	s.notifyProcessed(ctx, orden, s.distribuidorEmail(ctx, orden.DistribuidorID))

	resp := dto.ToOrderResponse(orden)
	return &resp, nil
}
