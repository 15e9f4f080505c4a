package usecase

import (
	"context"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/rizosfelices/pedidos-api/internal/application/dto"
	"github.com/rizosfelices/pedidos-api/internal/domain"
	"github.com/rizosfelices/pedidos-api/internal/domain/entity"
	"github.com/rizosfelices/pedidos-api/internal/domain/repository"
	"github.com/rizosfelices/pedidos-api/pkg/logger"
)

// UserUseCase administración de usuarios por el admin, más el perfil propio.
type UserUseCase struct {
	userRepo repository.UserRepository
	log      *logger.Logger
}

// NewUserUseCase construye el caso de uso de usuarios.
func NewUserUseCase(userRepo repository.UserRepository, log *logger.Logger) *UserUseCase {
	return &UserUseCase{userRepo: userRepo, log: log}
}

// Me devuelve el perfil del actor autenticado.
func (uc *UserUseCase) Me(ctx context.Context, actor *entity.User) *dto.UserResponse {
	resp := dto.ToUserResponse(actor)
	return &resp
}

// List lista usuarios, opcionalmente por rol. Solo el admin.
func (uc *UserUseCase) List(ctx context.Context, actor *entity.User, rol string) (*dto.UserListResponse, error) {
	if actor.Rol != entity.RoleAdmin {
		return nil, domain.ErrForbidden
	}
	usuarios, err := uc.userRepo.List(ctx, repository.UserFilter{AdminID: actor.ID, Rol: rol})
	if err != nil {
		return nil, err
	}
	resp := dto.ToUserListResponse(usuarios)
	return &resp, nil
}

// Get devuelve un usuario del admin.
func (uc *UserUseCase) Get(ctx context.Context, actor *entity.User, id string) (*dto.UserResponse, error) {
	if actor.Rol != entity.RoleAdmin && actor.ID != id {
		return nil, domain.ErrForbidden
	}
	u, err := uc.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, domain.ErrNotFound
	}
	resp := dto.ToUserResponse(u)
	return &resp, nil
}

// Update actualización parcial de un usuario por el admin. Un cambio de
// password rehashea con bcrypt; el resto de campos nil no cambian.
func (uc *UserUseCase) Update(ctx context.Context, actor *entity.User, id string, in dto.UpdateUserRequest) (*dto.UserResponse, error) {
	if actor.Rol != entity.RoleAdmin {
		return nil, domain.ErrForbidden
	}

	u, err := uc.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, domain.ErrNotFound
	}

	if in.Nombre != nil {
		if strings.TrimSpace(*in.Nombre) == "" {
			return nil, domain.ErrInvalidInput
		}
		u.Nombre = strings.TrimSpace(*in.Nombre)
	}
	if in.Pais != nil {
		u.Pais = *in.Pais
	}
	if in.Phone != nil {
		u.Phone = *in.Phone
	}
	if in.Estado != nil {
		if *in.Estado != "activo" && *in.Estado != "inactivo" {
			return nil, domain.ErrInvalidInput
		}
		u.Estado = *in.Estado
	}
	if in.CDI != nil {
		u.CDI = strings.ToLower(strings.TrimSpace(*in.CDI))
	}
	if in.TipoPrecio != nil {
		if !entity.ValidPriceMode(*in.TipoPrecio) {
			return nil, domain.ErrInvalidPriceMode
		}
		u.TipoPrecio = *in.TipoPrecio
	}
	if in.UnidadesIndividuales != nil {
		u.UnidadesIndividuales = *in.UnidadesIndividuales
	}
	if in.Password != nil {
		hash, err := bcrypt.GenerateFromPassword([]byte(*in.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, err
		}
		u.PasswordHash = string(hash)
	}
	u.UpdatedAt = time.Now()

	if err := uc.userRepo.Update(ctx, u); err != nil {
		return nil, err
	}

	uc.log.Info().Str("usuario_id", u.ID).Msg("usuario actualizado")

	resp := dto.ToUserResponse(u)
	return &resp, nil
}
