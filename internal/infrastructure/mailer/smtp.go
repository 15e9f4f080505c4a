// Package mailer envía los correos transaccionales del ciclo de vida de las
// órdenes vía SMTPS (Gmail con contraseña de aplicación).
package mailer

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/wneessen/go-mail"

	"github.com/rizosfelices/pedidos-api/internal/application/orders"
	"github.com/rizosfelices/pedidos-api/internal/domain/entity"
	"github.com/rizosfelices/pedidos-api/pkg/config"
	"github.com/rizosfelices/pedidos-api/pkg/logger"
)

var _ orders.Notifier = (*SMTPNotifier)(nil)

// SMTPNotifier notificador de órdenes sobre SMTP. Cada orden genera hasta tres
// correos: tesorería, CDI de la región y distribuidor.
type SMTPNotifier struct {
	client     *mail.Client
	cfg        config.SMTPConfig
	warehouses config.WarehouseConfig
	log        *logger.Logger
	now        func() time.Time
}

// NewSMTPNotifier construye el notificador. Falla si las opciones del cliente
// no son válidas; la conexión real se abre al enviar.
func NewSMTPNotifier(cfg config.SMTPConfig, warehouses config.WarehouseConfig, log *logger.Logger) (*SMTPNotifier, error) {
	client, err := mail.NewClient(cfg.Host,
		mail.WithPort(cfg.Port),
		mail.WithSSL(),
		mail.WithSMTPAuth(mail.SMTPAuthPlain),
		mail.WithUsername(cfg.Sender),
		mail.WithPassword(cfg.Password),
	)
	if err != nil {
		return nil, fmt.Errorf("cliente smtp: %w", err)
	}
	return &SMTPNotifier{
		client:     client,
		cfg:        cfg,
		warehouses: warehouses,
		log:        log,
		now:        time.Now,
	}, nil
}

// cdiEmail correo del CDI que atiende la región de la orden.
func (n *SMTPNotifier) cdiEmail(o *entity.Order) string {
	if o.TipoPrecio == entity.PrecioSinIVAInternacional {
		return n.warehouses.EmailFor(n.warehouses.Export)
	}
	return n.warehouses.EmailFor(n.warehouses.Domestic)
}

func (n *SMTPNotifier) send(ctx context.Context, to, subject, html string) error {
	if to == "" {
		return nil
	}
	m := mail.NewMsg()
	if err := m.From(n.cfg.Sender); err != nil {
		return fmt.Errorf("remitente: %w", err)
	}
	if err := m.To(to); err != nil {
		return fmt.Errorf("destinatario %s: %w", to, err)
	}
	m.Subject(subject)
	m.SetBodyString(mail.TypeTextHTML, html)
	if err := n.client.DialAndSendWithContext(ctx, m); err != nil {
		return fmt.Errorf("enviar a %s: %w", to, err)
	}
	return nil
}

// fanOut envía los tres correos de una orden; acumula los fallos en lugar de
// abortar al primero para que un buzón caído no silencie a los demás.
func (n *SMTPNotifier) fanOut(ctx context.Context, o *entity.Order, distribuidorEmail, asuntoAdmin, asuntoDistribuidor string) error {
	htmlAdmin, err := renderAdmin(o, n.now())
	if err != nil {
		return err
	}
	htmlDistribuidor, err := renderDistribuidor(o, n.now())
	if err != nil {
		return err
	}

	var fallos []string
	if err := n.send(ctx, n.cfg.Treasury, asuntoAdmin, htmlAdmin); err != nil {
		fallos = append(fallos, err.Error())
	}
	if err := n.send(ctx, n.cdiEmail(o), asuntoAdmin, htmlAdmin); err != nil {
		fallos = append(fallos, err.Error())
	}
	if err := n.send(ctx, distribuidorEmail, asuntoDistribuidor, htmlDistribuidor); err != nil {
		fallos = append(fallos, err.Error())
	}
	if len(fallos) > 0 {
		return fmt.Errorf("correos de la orden %s: %s", o.ID, strings.Join(fallos, "; "))
	}
	n.log.Info().Str("orden_id", o.ID).Msg("correos de la orden enviados")
	return nil
}

// OrderCreated notifica la creación de la orden a tesorería, CDI y distribuidor.
func (n *SMTPNotifier) OrderCreated(ctx context.Context, o *entity.Order, distribuidorEmail string) error {
	return n.fanOut(ctx, o, distribuidorEmail,
		fmt.Sprintf("Nueva Orden de Compra: %s - %s", o.ID, o.DistribuidorNombre),
		fmt.Sprintf("Confirmación de Orden de Compra: %s", o.ID),
	)
}

// OrderProcessed notifica el despacho con cantidades solicitadas vs despachadas.
func (n *SMTPNotifier) OrderProcessed(ctx context.Context, o *entity.Order, distribuidorEmail string) error {
	return n.fanOut(ctx, o, distribuidorEmail,
		fmt.Sprintf("Nuevo Pedido: %s - %s", o.ID, o.DistribuidorNombre),
		fmt.Sprintf("Confirmación de Pedido: %s", o.ID),
	)
}

// NoopNotifier descarta las notificaciones; se usa cuando no hay credenciales SMTP.
type NoopNotifier struct{}

var _ orders.Notifier = NoopNotifier{}

func (NoopNotifier) OrderCreated(context.Context, *entity.Order, string) error   { return nil }
func (NoopNotifier) OrderProcessed(context.Context, *entity.Order, string) error { return nil }
