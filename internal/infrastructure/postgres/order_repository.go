package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/rizosfelices/pedidos-api/internal/domain"
	"github.com/rizosfelices/pedidos-api/internal/domain/entity"
	"github.com/rizosfelices/pedidos-api/internal/domain/repository"
)

var _ repository.OrderRepository = (*OrderRepo)(nil)

// OrderRepo implementación de OrderRepository sobre PostgreSQL. Las líneas se
// guardan como snapshot JSONB (son inmutables salvo en el procesamiento, que
// reescribe el snapshot completo); los metadatos de procesamiento van en
// columnas para poder filtrar por ellos.
type OrderRepo struct {
	q Querier
}

// NewOrderRepository construye el adaptador de órdenes. Pasar pool o tx (Querier).
func NewOrderRepository(q Querier) *OrderRepo {
	return &OrderRepo{q: q}
}

const orderColumns = `
	id, kind, distribuidor_id, distribuidor_nombre, distribuidor_phone, tipo_precio,
	productos, direccion, notas, estado, subtotal, iva, total, fecha,
	procesado_por, bodega_procesadora, fecha_procesado, notas_procesamiento`

func scanOrder(row pgx.Row) (*entity.Order, error) {
	var (
		o                  entity.Order
		productos          []byte
		procesadoPor       *string
		bodegaProcesadora  *string
		fechaProcesado     *time.Time
		notasProcesamiento *string
	)
	err := row.Scan(
		&o.ID, &o.Kind, &o.DistribuidorID, &o.DistribuidorNombre, &o.DistribuidorPhone, &o.TipoPrecio,
		&productos, &o.Direccion, &o.Notas, &o.Estado, &o.Subtotal, &o.IVA, &o.Total, &o.Fecha,
		&procesadoPor, &bodegaProcesadora, &fechaProcesado, &notasProcesamiento,
	)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(productos, &o.Productos); err != nil {
		return nil, fmt.Errorf("decode productos: %w", err)
	}
	if fechaProcesado != nil {
		o.Processing = &entity.OrderProcessing{FechaProcesado: *fechaProcesado}
		if procesadoPor != nil {
			o.Processing.ProcesadoPor = *procesadoPor
		}
		if bodegaProcesadora != nil {
			o.Processing.BodegaProcesadora = *bodegaProcesadora
		}
		if notasProcesamiento != nil {
			o.Processing.NotasProcesamiento = *notasProcesamiento
		}
	}
	return &o, nil
}

func processingFields(o *entity.Order) (procesadoPor, bodega, notas *string, fecha *time.Time) {
	if o.Processing == nil {
		return nil, nil, nil, nil
	}
	return &o.Processing.ProcesadoPor, &o.Processing.BodegaProcesadora,
		&o.Processing.NotasProcesamiento, &o.Processing.FechaProcesado
}

// Create persiste una orden nueva con su snapshot de líneas.
func (r *OrderRepo) Create(ctx context.Context, o *entity.Order) error {
	productos, err := json.Marshal(o.Productos)
	if err != nil {
		return fmt.Errorf("encode productos: %w", err)
	}
	procesadoPor, bodega, notas, fecha := processingFields(o)
	query := `
		INSERT INTO ordenes (` + orderColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18)`
	_, err = r.q.Exec(ctx, query,
		o.ID, o.Kind, o.DistribuidorID, o.DistribuidorNombre, o.DistribuidorPhone, o.TipoPrecio,
		productos, o.Direccion, o.Notas, o.Estado, o.Subtotal, o.IVA, o.Total, o.Fecha,
		procesadoPor, bodega, fecha, notas,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert orden: %w", err)
	}
	return nil
}

// GetByID obtiene una orden por ID.
func (r *OrderRepo) GetByID(ctx context.Context, id string) (*entity.Order, error) {
	o, err := scanOrder(r.q.QueryRow(ctx, `SELECT `+orderColumns+` FROM ordenes WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get orden: %w", err)
	}
	return o, nil
}

// GetByIDForUpdate obtiene la orden bloqueando la fila (evita doble despacho).
func (r *OrderRepo) GetByIDForUpdate(ctx context.Context, id string) (*entity.Order, error) {
	o, err := scanOrder(r.q.QueryRow(ctx, `SELECT `+orderColumns+` FROM ordenes WHERE id = $1 FOR UPDATE`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get orden for update: %w", err)
	}
	return o, nil
}

// Update reescribe la orden completa (snapshot de líneas incluido).
func (r *OrderRepo) Update(ctx context.Context, o *entity.Order) error {
	productos, err := json.Marshal(o.Productos)
	if err != nil {
		return fmt.Errorf("encode productos: %w", err)
	}
	procesadoPor, bodega, notas, fecha := processingFields(o)
	query := `
		UPDATE ordenes SET
			productos = $2, direccion = $3, notas = $4, estado = $5,
			subtotal = $6, iva = $7, total = $8,
			procesado_por = $9, bodega_procesadora = $10, fecha_procesado = $11, notas_procesamiento = $12
		WHERE id = $1`
	tag, err := r.q.Exec(ctx, query,
		o.ID, productos, o.Direccion, o.Notas, o.Estado,
		o.Subtotal, o.IVA, o.Total,
		procesadoPor, bodega, fecha, notas,
	)
	if err != nil {
		return fmt.Errorf("update orden: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// UpdateEstado fija el estado; devuelve false si la orden no existe.
func (r *OrderRepo) UpdateEstado(ctx context.Context, id, estado string) (bool, error) {
	tag, err := r.q.Exec(ctx, `UPDATE ordenes SET estado = $2 WHERE id = $1`, id, estado)
	if err != nil {
		return false, fmt.Errorf("update estado: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

// List lista órdenes según el filtro, más recientes primero.
func (r *OrderRepo) List(ctx context.Context, f repository.OrderFilter) ([]*entity.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM ordenes WHERE 1=1`
	var args []any
	if f.DistribuidorID != "" {
		args = append(args, f.DistribuidorID)
		query += fmt.Sprintf(" AND distribuidor_id = $%d", len(args))
	}
	if f.Kind != "" {
		args = append(args, f.Kind)
		query += fmt.Sprintf(" AND kind = $%d", len(args))
	}
	if f.Estado != "" {
		args = append(args, f.Estado)
		query += fmt.Sprintf(" AND estado = $%d", len(args))
	}
	if len(f.TipoPrecioIn) > 0 {
		args = append(args, f.TipoPrecioIn)
		query += fmt.Sprintf(" AND tipo_precio = ANY($%d)", len(args))
	}
	query += " ORDER BY fecha DESC"
	if f.Limit > 0 {
		args = append(args, f.Limit)
		query += fmt.Sprintf(" LIMIT $%d", len(args))
	}

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list ordenes: %w", err)
	}
	defer rows.Close()

	var out []*entity.Order
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, fmt.Errorf("scan orden: %w", err)
		}
		out = append(out, o)
	}
	return out, rows.Err()
}
