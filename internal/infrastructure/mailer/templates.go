package mailer

import (
	"fmt"
	"html/template"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/rizosfelices/pedidos-api/internal/domain/entity"
)

// Plantillas de los correos transaccionales. El CSS inline replica el estilo
// histórico de los correos de la marca (tabla de productos, bloque de totales,
// pie legal).

const estiloCorreo = `
<style>
	body { font-family: 'Arial', sans-serif; line-height: 1.6; color: #333; }
	.container { max-width: 600px; margin: 0 auto; padding: 20px; }
	.header { background-color: #f8f1e9; padding: 20px; text-align: center; border-radius: 5px 5px 0 0; }
	.logo { max-width: 150px; }
	.content { padding: 20px; background-color: #fff; border: 1px solid #e0e0e0; border-top: none; }
	.footer { text-align: center; padding: 20px; font-size: 12px; color: #777; }
	.product-table { width: 100%; border-collapse: collapse; margin: 15px 0; }
	.product-table th { background-color: #f8f1e9; text-align: left; padding: 10px; }
	.product-table td { padding: 10px; border-bottom: 1px solid #e0e0e0; }
	.totals { margin-top: 20px; padding: 15px; background-color: #f9f9f9; border-radius: 5px; }
	.totals-row { display: flex; justify-content: space-between; margin-bottom: 8px; }
	.total-final { font-weight: bold; font-size: 1.1em; border-top: 1px solid #ddd; padding-top: 10px; }
	.status { display: inline-block; padding: 5px 10px; background-color: #e3f2fd; color: #1976d2; border-radius: 3px; }
	.notes-section { background-color: #f5f5f5; padding: 15px; border-radius: 5px; margin: 15px 0; }
</style>`

const logoURL = "https://rizosfelicesdata.s3.us-east-2.amazonaws.com/logo+principal+rosado+letra+blanco_Mesa+de+tra+(1).png"

// lineaCorreo una fila de la tabla de productos del correo.
type lineaCorreo struct {
	Nombre      string
	ID          string
	Solicitado  int
	Despachado  int
	Precio      string
	Total       string
	MostrarIVA  bool
	IVAUnitario string
	IVALinea    string
}

// datosCorreo contexto común de las plantillas de orden.
type datosCorreo struct {
	OrdenID            string
	Fecha              string
	Estado             string
	DistribuidorNombre string
	DistribuidorPhone  string
	Direccion          string
	Notas              string
	NotasProcesamiento string
	Procesado          bool
	Lineas             []lineaCorreo
	Subtotal           string
	MostrarIVA         bool
	IVA                string
	Total              string
	Anio               int
	Logo               string
	Estilo             template.HTML
}

// formatMoney $ con separador de miles y sin decimales, como en los correos históricos.
func formatMoney(d decimal.Decimal) string {
	s := d.Round(0).StringFixed(0)
	neg := strings.HasPrefix(s, "-")
	s = strings.TrimPrefix(s, "-")
	var b strings.Builder
	for i, r := range s {
		if i > 0 && (len(s)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}
	out := "$" + b.String()
	if neg {
		out = "-" + out
	}
	return out
}

func buildDatos(o *entity.Order, now time.Time) datosCorreo {
	conIVA := o.TipoPrecio == entity.PrecioConIVA
	d := datosCorreo{
		OrdenID:            o.ID,
		Fecha:              o.Fecha.Format("02/01/2006 15:04"),
		Estado:             o.Estado,
		DistribuidorNombre: o.DistribuidorNombre,
		DistribuidorPhone:  o.DistribuidorPhone,
		Direccion:          o.Direccion,
		Notas:              o.Notas,
		Procesado:          o.Procesada(),
		Subtotal:           formatMoney(o.Subtotal),
		MostrarIVA:         conIVA,
		IVA:                formatMoney(o.IVA),
		Total:              formatMoney(o.Total),
		Anio:               now.Year(),
		Logo:               logoURL,
		Estilo:             template.HTML(estiloCorreo),
	}
	if d.Notas == "" {
		d.Notas = "Ninguna"
	}
	if o.Processing != nil {
		d.NotasProcesamiento = o.Processing.NotasProcesamiento
		if d.NotasProcesamiento == "" {
			d.NotasProcesamiento = "Ninguna"
		}
	}
	for _, l := range o.Productos {
		linea := lineaCorreo{
			Nombre:     l.Nombre,
			ID:         l.ProductID,
			Solicitado: l.CantidadSolicitada,
			Despachado: l.Cantidad,
			Precio:     formatMoney(l.Precio),
			Total:      formatMoney(l.Total),
			MostrarIVA: conIVA,
		}
		if linea.Solicitado == 0 {
			linea.Solicitado = l.Cantidad
		}
		if conIVA {
			linea.IVAUnitario = formatMoney(l.IVAUnitario)
			linea.IVALinea = formatMoney(l.IVAUnitario.Mul(decimal.NewFromInt(int64(l.Cantidad))))
		}
		d.Lineas = append(d.Lineas, linea)
	}
	return d
}

const bloqueProductos = `
<table class="product-table">
	<thead>
		<tr>
			<th>Producto</th>
			{{if .Procesado}}<th>Solicitado</th><th>Despachado</th>{{else}}<th>Cantidad</th>{{end}}
			<th>Precio Unitario</th>
			<th>Total</th>
		</tr>
	</thead>
	<tbody>
	{{$procesado := .Procesado}}
	{{range .Lineas}}
		<tr>
			<td>{{.Nombre}} (ID: {{.ID}})</td>
			{{if $procesado}}<td>{{.Solicitado}}</td><td>{{.Despachado}}</td>{{else}}<td>{{.Despachado}}</td>{{end}}
			<td>{{.Precio}}</td>
			<td>{{.Total}}</td>
		</tr>
		{{if .MostrarIVA}}
		<tr style="color: #666; font-size: 0.9em;">
			<td colspan="5">(IVA incluido: {{.IVAUnitario}} x {{.Despachado}} = {{.IVALinea}})</td>
		</tr>
		{{end}}
	{{end}}
	</tbody>
</table>`

const bloqueTotales = `
<div class="totals">
	<div class="totals-row"><span>Subtotal:</span><span>{{.Subtotal}}</span></div>
	{{if .MostrarIVA}}<div class="totals-row"><span>IVA (19%):</span><span>{{.IVA}}</span></div>{{end}}
	<div class="totals-row total-final"><span>Total:</span><span>{{.Total}}</span></div>
</div>`

const plantillaAdmin = `<!DOCTYPE html>
<html>
<head>
	<title>{{if .Procesado}}Nuevo Pedido{{else}}Nueva Orden de Compra{{end}} {{.OrdenID}}</title>
	{{.Estilo}}
</head>
<body>
	<div class="container">
		<div class="header">
			<img src="{{.Logo}}" alt="Rizos Felices" class="logo">
			<h1>{{if .Procesado}}Nuevo Pedido Recibido{{else}}Nueva Orden de Compra Recibida{{end}}</h1>
		</div>
		<div class="content">
			<h2>Detalles de la Orden</h2>
			<p><strong>Número de Orden:</strong> {{.OrdenID}}</p>
			<p><strong>Fecha y Hora:</strong> {{.Fecha}}</p>
			<p><strong>Estado:</strong> <span class="status">{{.Estado}}</span></p>
			<h3>Información del Distribuidor</h3>
			<p><strong>Nombre:</strong> {{.DistribuidorNombre}}</p>
			<p><strong>Teléfono:</strong> {{.DistribuidorPhone}}</p>
			<h3>Detalles de Entrega</h3>
			<p><strong>Dirección:</strong> {{.Direccion}}</p>
			{{if .Procesado}}
			<div class="notes-section">
				<h4>Notas de la Orden Original</h4>
				<p>{{.Notas}}</p>
				<h4>Notas del Procesamiento</h4>
				<p>{{.NotasProcesamiento}}</p>
			</div>
			{{else}}
			<p><strong>Notas:</strong> {{.Notas}}</p>
			{{end}}
			<h3>{{if .Procesado}}Productos Confirmados{{else}}Productos Solicitados{{end}}</h3>
			` + bloqueProductos + `
			` + bloqueTotales + `
		</div>
		<div class="footer">
			<p>© {{.Anio}} Rizos Felices. Todos los derechos reservados.</p>
			<p>Este es un correo automático, por favor no responder.</p>
		</div>
	</div>
</body>
</html>`

const plantillaDistribuidor = `<!DOCTYPE html>
<html>
<head>
	<title>Confirmación {{.OrdenID}}</title>
	{{.Estilo}}
</head>
<body>
	<div class="container">
		<div class="header">
			<img src="{{.Logo}}" alt="Rizos Felices" class="logo">
			<h1>{{if .Procesado}}¡Gracias por tu pedido!{{else}}¡Gracias por tu orden de compra!{{end}}</h1>
		</div>
		<div class="content">
			{{if .Procesado}}
			<p>Tu pedido ha sido confirmado y será preparado para envío. Aquí tienes el resumen:</p>
			{{else}}
			<p>Hemos recibido tu orden correctamente y está siendo procesada. A continuación encontrarás los detalles:</p>
			{{end}}
			<h2>Resumen</h2>
			<p><strong>Número de Orden:</strong> {{.OrdenID}}</p>
			<p><strong>Fecha y Hora:</strong> {{.Fecha}}</p>
			<p><strong>Estado:</strong> <span class="status">{{.Estado}}</span></p>
			<h3>Detalles de Entrega</h3>
			<p><strong>Dirección:</strong> {{.Direccion}}</p>
			<p><strong>Notas:</strong> {{.Notas}}</p>
			<h3>Productos</h3>
			` + bloqueProductos + `
			` + bloqueTotales + `
			<p style="margin-top: 20px;">
				<strong>Nota:</strong> Te notificaremos cuando tu orden esté en camino.
				Para cualquier consulta, puedes responder a este correo o contactarnos al teléfono de soporte.
			</p>
		</div>
		<div class="footer">
			<p>© {{.Anio}} Rizos Felices. Todos los derechos reservados.</p>
			<p>Este es un correo automático, por favor no responder.</p>
		</div>
	</div>
</body>
</html>`

var (
	tmplAdmin        = template.Must(template.New("admin").Parse(plantillaAdmin))
	tmplDistribuidor = template.Must(template.New("distribuidor").Parse(plantillaDistribuidor))
)

func renderAdmin(o *entity.Order, now time.Time) (string, error) {
	var b strings.Builder
	if err := tmplAdmin.Execute(&b, buildDatos(o, now)); err != nil {
		return "", fmt.Errorf("render correo admin: %w", err)
	}
	return b.String(), nil
}

func renderDistribuidor(o *entity.Order, now time.Time) (string, error) {
	var b strings.Builder
	if err := tmplDistribuidor.Execute(&b, buildDatos(o, now)); err != nil {
		return "", fmt.Errorf("render correo distribuidor: %w", err)
	}
	return b.String(), nil
}
