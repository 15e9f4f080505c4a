package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/rizosfelices/pedidos-api/internal/domain"
	"github.com/rizosfelices/pedidos-api/internal/domain/entity"
	"github.com/rizosfelices/pedidos-api/internal/domain/repository"
)

var _ repository.UserRepository = (*UserRepo)(nil)

// UserRepo implementación de UserRepository sobre PostgreSQL. Todos los roles
// viven en una sola tabla con email único.
type UserRepo struct {
	q Querier
}

// NewUserRepository construye el adaptador de usuarios. Pasar pool o tx (Querier).
func NewUserRepository(q Querier) *UserRepo {
	return &UserRepo{q: q}
}

const userColumns = `
	id, admin_id, nombre, pais, email, phone, password_hash, rol, estado,
	cdi, tipo_precio, unidades_individuales, fecha_ultimo_acceso, created_at, updated_at`

func scanUser(row pgx.Row) (*entity.User, error) {
	var (
		u      entity.User
		ultimo *time.Time
	)
	err := row.Scan(
		&u.ID, &u.AdminID, &u.Nombre, &u.Pais, &u.Email, &u.Phone, &u.PasswordHash, &u.Rol, &u.Estado,
		&u.CDI, &u.TipoPrecio, &u.UnidadesIndividuales, &ultimo, &u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if ultimo != nil {
		u.FechaUltimoAcceso = *ultimo
	}
	return &u, nil
}

// GetByEmail obtiene un usuario por email.
func (r *UserRepo) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	u, err := scanUser(r.q.QueryRow(ctx, `SELECT `+userColumns+` FROM usuarios WHERE email = $1`, email))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get usuario por email: %w", err)
	}
	return u, nil
}

// GetByID obtiene un usuario por ID.
func (r *UserRepo) GetByID(ctx context.Context, id string) (*entity.User, error) {
	u, err := scanUser(r.q.QueryRow(ctx, `SELECT `+userColumns+` FROM usuarios WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get usuario: %w", err)
	}
	return u, nil
}

// Create persiste un usuario nuevo.
func (r *UserRepo) Create(ctx context.Context, u *entity.User) error {
	var ultimo *time.Time
	if !u.FechaUltimoAcceso.IsZero() {
		ultimo = &u.FechaUltimoAcceso
	}
	query := `
		INSERT INTO usuarios (` + userColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)`
	_, err := r.q.Exec(ctx, query,
		u.ID, u.AdminID, u.Nombre, u.Pais, u.Email, u.Phone, u.PasswordHash, u.Rol, u.Estado,
		u.CDI, u.TipoPrecio, u.UnidadesIndividuales, ultimo, u.CreatedAt, u.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrEmailAlreadyExists
		}
		return fmt.Errorf("insert usuario: %w", err)
	}
	return nil
}

// Update reescribe los campos mutables del usuario.
func (r *UserRepo) Update(ctx context.Context, u *entity.User) error {
	query := `
		UPDATE usuarios SET
			nombre = $2, pais = $3, phone = $4, password_hash = $5, estado = $6,
			cdi = $7, tipo_precio = $8, unidades_individuales = $9, updated_at = $10
		WHERE id = $1`
	tag, err := r.q.Exec(ctx, query,
		u.ID, u.Nombre, u.Pais, u.Phone, u.PasswordHash, u.Estado,
		u.CDI, u.TipoPrecio, u.UnidadesIndividuales, u.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update usuario: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// List lista usuarios según el filtro.
func (r *UserRepo) List(ctx context.Context, f repository.UserFilter) ([]*entity.User, error) {
	query := `SELECT ` + userColumns + ` FROM usuarios WHERE 1=1`
	var args []any
	if f.AdminID != "" {
		args = append(args, f.AdminID)
		query += fmt.Sprintf(" AND admin_id = $%d", len(args))
	}
	if f.Rol != "" {
		args = append(args, f.Rol)
		query += fmt.Sprintf(" AND rol = $%d", len(args))
	}
	query += " ORDER BY nombre"

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list usuarios: %w", err)
	}
	defer rows.Close()

	var out []*entity.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("scan usuario: %w", err)
		}
		out = append(out, u)
	}
	return out, rows.Err()
}

// TouchUltimoAcceso estampa la fecha de último acceso.
func (r *UserRepo) TouchUltimoAcceso(ctx context.Context, id string, t time.Time) error {
	if _, err := r.q.Exec(ctx, `UPDATE usuarios SET fecha_ultimo_acceso = $2 WHERE id = $1`, id, t); err != nil {
		return fmt.Errorf("touch ultimo acceso: %w", err)
	}
	return nil
}
