package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/rizosfelices/pedidos-api/internal/domain"
	"github.com/rizosfelices/pedidos-api/internal/domain/entity"
	"github.com/rizosfelices/pedidos-api/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

// ProductRepo implementación del puerto ProductRepository sobre PostgreSQL (usable con pool o tx).
type ProductRepo struct {
	q Querier
}

// NewProductRepository construye el adaptador de productos. Pasar pool o tx (Querier).
func NewProductRepository(q Querier) *ProductRepo {
	return &ProductRepo{q: q}
}

const productColumns = `
	id, admin_id, nombre, categoria, descripcion, imagen,
	precio_sin_iva_colombia, precio_con_iva_colombia, precio_internacional, precios_actualizados_en,
	descuento, tipo_codigo, activo, creado_en, actualizado_en`

func scanProduct(row pgx.Row) (*entity.Product, error) {
	var p entity.Product
	err := row.Scan(
		&p.ID, &p.AdminID, &p.Nombre, &p.Categoria, &p.Descripcion, &p.Imagen,
		&p.Precios.SinIVAColombia, &p.Precios.ConIVAColombia, &p.Precios.Internacional, &p.Precios.FechaActualizacion,
		&p.Margenes.Descuento, &p.Margenes.TipoCodigo, &p.Activo, &p.CreadoEn, &p.ActualizadoEn,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// Create persiste un producto nuevo.
func (r *ProductRepo) Create(ctx context.Context, p *entity.Product) error {
	query := `
		INSERT INTO productos (` + productColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)`
	_, err := r.q.Exec(ctx, query,
		p.ID, p.AdminID, p.Nombre, p.Categoria, p.Descripcion, p.Imagen,
		p.Precios.SinIVAColombia, p.Precios.ConIVAColombia, p.Precios.Internacional, p.Precios.FechaActualizacion,
		p.Margenes.Descuento, p.Margenes.TipoCodigo, p.Activo, p.CreadoEn, p.ActualizadoEn,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert producto: %w", err)
	}
	return nil
}

// GetByID obtiene un producto por su ID de negocio.
func (r *ProductRepo) GetByID(ctx context.Context, id string) (*entity.Product, error) {
	query := `SELECT ` + productColumns + ` FROM productos WHERE id = $1`
	p, err := scanProduct(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get producto: %w", err)
	}
	return p, nil
}

// List lista productos según el filtro, ordenados por ID de negocio.
func (r *ProductRepo) List(ctx context.Context, f repository.ProductFilter) ([]*entity.Product, error) {
	query := `SELECT ` + productColumns + ` FROM productos WHERE 1=1`
	var args []any
	if f.AdminID != "" {
		args = append(args, f.AdminID)
		query += fmt.Sprintf(" AND admin_id = $%d", len(args))
	}
	if f.SoloActivos {
		query += " AND activo"
	}
	query += " ORDER BY id"
	if f.Limit > 0 {
		args = append(args, f.Limit)
		query += fmt.Sprintf(" LIMIT $%d", len(args))
	}

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list productos: %w", err)
	}
	defer rows.Close()

	var out []*entity.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("scan producto: %w", err)
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

// Update reescribe todos los campos mutables del producto.
func (r *ProductRepo) Update(ctx context.Context, p *entity.Product) error {
	query := `
		UPDATE productos SET
			nombre = $2, categoria = $3, descripcion = $4, imagen = $5,
			precio_sin_iva_colombia = $6, precio_con_iva_colombia = $7, precio_internacional = $8,
			precios_actualizados_en = $9, descuento = $10, tipo_codigo = $11,
			activo = $12, actualizado_en = $13
		WHERE id = $1`
	tag, err := r.q.Exec(ctx, query,
		p.ID, p.Nombre, p.Categoria, p.Descripcion, p.Imagen,
		p.Precios.SinIVAColombia, p.Precios.ConIVAColombia, p.Precios.Internacional,
		p.Precios.FechaActualizacion, p.Margenes.Descuento, p.Margenes.TipoCodigo,
		p.Activo, p.ActualizadoEn,
	)
	if err != nil {
		return fmt.Errorf("update producto: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// SetActivo marca el producto activo/inactivo (soft-delete).
func (r *ProductRepo) SetActivo(ctx context.Context, id string, activo bool) error {
	tag, err := r.q.Exec(ctx, `UPDATE productos SET activo = $2, actualizado_en = now() WHERE id = $1`, id, activo)
	if err != nil {
		return fmt.Errorf("set activo: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// MaxID devuelve el mayor ID de negocio del admin, o "" si no hay productos.
// El formato PNNN con ceros a la izquierda ordena lexicográficamente bien.
func (r *ProductRepo) MaxID(ctx context.Context, adminID string) (string, error) {
	var max string
	err := r.q.QueryRow(ctx,
		`SELECT COALESCE(MAX(id), '') FROM productos WHERE admin_id = $1`, adminID).Scan(&max)
	if err != nil {
		return "", fmt.Errorf("max id producto: %w", err)
	}
	return max, nil
}
