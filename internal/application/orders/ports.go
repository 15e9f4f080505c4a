package orders

import (
	"context"

	"github.com/rizosfelices/pedidos-api/internal/domain/entity"
	"github.com/rizosfelices/pedidos-api/internal/domain/repository"
)

// TxRunner ejecuta fn con repos atados a una sola transacción. La reserva de
// stock y la escritura de la orden comparten la tx: o entra todo o no entra nada.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		orderRepo repository.OrderRepository,
		stockRepo repository.StockRepository,
		productRepo repository.ProductRepository,
	) error) error
}

// Notifier correos transaccionales del ciclo de vida de una orden. Los envíos
// son best-effort: el caso de uso registra el error y sigue, nunca lo propaga
// al cliente (la orden ya quedó persistida).
type Notifier interface {
	// OrderCreated notifica la creación a tesorería, al CDI de la región y al distribuidor.
	OrderCreated(ctx context.Context, o *entity.Order, distribuidorEmail string) error
	// OrderProcessed notifica el despacho con cantidades solicitadas vs despachadas.
	OrderProcessed(ctx context.Context, o *entity.Order, distribuidorEmail string) error
}
