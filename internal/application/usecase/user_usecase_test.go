package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/rizosfelices/pedidos-api/internal/application/dto"
	"github.com/rizosfelices/pedidos-api/internal/domain"
	"github.com/rizosfelices/pedidos-api/internal/domain/entity"
	"github.com/rizosfelices/pedidos-api/internal/domain/repository"
	"github.com/rizosfelices/pedidos-api/pkg/logger"
)

type memUserRepo struct {
	porID map[string]*entity.User
}

func (m *memUserRepo) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	for _, u := range m.porID {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, nil
}

func (m *memUserRepo) GetByID(_ context.Context, id string) (*entity.User, error) {
	return m.porID[id], nil
}

func (m *memUserRepo) Create(_ context.Context, u *entity.User) error {
	m.porID[u.ID] = u
	return nil
}

func (m *memUserRepo) Update(_ context.Context, u *entity.User) error {
	if _, ok := m.porID[u.ID]; !ok {
		return domain.ErrNotFound
	}
	m.porID[u.ID] = u
	return nil
}

func (m *memUserRepo) List(_ context.Context, f repository.UserFilter) ([]*entity.User, error) {
	var out []*entity.User
	for _, u := range m.porID {
		if f.AdminID != "" && u.AdminID != f.AdminID {
			continue
		}
		if f.Rol != "" && u.Rol != f.Rol {
			continue
		}
		out = append(out, u)
	}
	return out, nil
}

func (m *memUserRepo) TouchUltimoAcceso(_ context.Context, id string, t time.Time) error {
	if u, ok := m.porID[id]; ok {
		u.FechaUltimoAcceso = t
	}
	return nil
}

func newUserUseCase() (*UserUseCase, *memUserRepo) {
	repo := &memUserRepo{porID: map[string]*entity.User{}}
	log := logger.New(logger.Config{Env: "development", Level: "error"})
	return NewUserUseCase(repo, log), repo
}

func strPtr(s string) *string { return &s }

func TestListSoloAdminYFiltraPorRol(t *testing.T) {
	uc, repo := newUserUseCase()
	admin := adminUser()
	repo.porID["d1"] = &entity.User{ID: "d1", AdminID: admin.ID, Nombre: "Caribe", Rol: entity.RoleDistribuidorNacional}
	repo.porID["b1"] = &entity.User{ID: "b1", AdminID: admin.ID, Nombre: "Medellín", Rol: entity.RoleBodega}
	repo.porID["ajeno"] = &entity.User{ID: "ajeno", AdminID: "otro-admin", Rol: entity.RoleDistribuidorNacional}

	out, err := uc.List(context.Background(), admin, entity.RoleDistribuidorNacional)
	require.NoError(t, err)
	require.Len(t, out.Usuarios, 1)
	assert.Equal(t, "d1", out.Usuarios[0].ID)

	_, err = uc.List(context.Background(), repo.porID["d1"], "")
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestGetAdminOPropioUsuario(t *testing.T) {
	uc, repo := newUserUseCase()
	admin := adminUser()
	d1 := &entity.User{ID: "d1", AdminID: admin.ID, Nombre: "Caribe", Rol: entity.RoleDistribuidorNacional}
	repo.porID["d1"] = d1

	out, err := uc.Get(context.Background(), admin, "d1")
	require.NoError(t, err)
	assert.Equal(t, "Caribe", out.Nombre)

	// el propio usuario puede verse
	_, err = uc.Get(context.Background(), d1, "d1")
	require.NoError(t, err)

	// pero no a terceros
	_, err = uc.Get(context.Background(), d1, admin.ID)
	assert.ErrorIs(t, err, domain.ErrForbidden)

	_, err = uc.Get(context.Background(), admin, "no-existe")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestUpdateParcialYRehashDePassword(t *testing.T) {
	uc, repo := newUserUseCase()
	admin := adminUser()
	repo.porID["d1"] = &entity.User{
		ID: "d1", AdminID: admin.ID, Nombre: "Caribe", Pais: "Colombia",
		Rol: entity.RoleDistribuidorNacional, TipoPrecio: entity.PrecioConIVA, Estado: "activo",
	}

	out, err := uc.Update(context.Background(), admin, "d1", dto.UpdateUserRequest{
		Nombre:   strPtr("Caribe SAS"),
		Password: strPtr("nueva-clave-123"),
	})
	require.NoError(t, err)
	assert.Equal(t, "Caribe SAS", out.Nombre)
	assert.Equal(t, "Colombia", out.Pais, "los campos no enviados no cambian")

	guardado := repo.porID["d1"]
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(guardado.PasswordHash), []byte("nueva-clave-123")))
}

func TestUpdateValidaciones(t *testing.T) {
	uc, repo := newUserUseCase()
	admin := adminUser()
	d1 := &entity.User{ID: "d1", AdminID: admin.ID, Nombre: "Caribe", Rol: entity.RoleDistribuidorNacional, Estado: "activo"}
	repo.porID["d1"] = d1

	_, err := uc.Update(context.Background(), d1, "d1", dto.UpdateUserRequest{})
	assert.ErrorIs(t, err, domain.ErrForbidden)

	_, err = uc.Update(context.Background(), admin, "d1", dto.UpdateUserRequest{Estado: strPtr("suspendido")})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.Update(context.Background(), admin, "d1", dto.UpdateUserRequest{TipoPrecio: strPtr("gratis")})
	assert.ErrorIs(t, err, domain.ErrInvalidPriceMode)

	_, err = uc.Update(context.Background(), admin, "d1", dto.UpdateUserRequest{Nombre: strPtr("   ")})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.Update(context.Background(), admin, "no-existe", dto.UpdateUserRequest{})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestMeDevuelvePerfilSinHash(t *testing.T) {
	uc, _ := newUserUseCase()
	admin := adminUser()
	admin.PasswordHash = "$2a$10$hash"

	out := uc.Me(context.Background(), admin)
	assert.Equal(t, admin.ID, out.ID)
	assert.Equal(t, admin.Email, out.Email)
}
