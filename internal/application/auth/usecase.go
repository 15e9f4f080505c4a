// Package auth casos de uso de autenticación: registro de actores y login.
package auth

import (
	"context"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/rizosfelices/pedidos-api/internal/application/dto"
	"github.com/rizosfelices/pedidos-api/internal/domain"
	"github.com/rizosfelices/pedidos-api/internal/domain/entity"
	"github.com/rizosfelices/pedidos-api/internal/domain/repository"
	"github.com/rizosfelices/pedidos-api/pkg/jwt"
	"github.com/rizosfelices/pedidos-api/pkg/logger"
)

// JWTConfig configuración para generación de tokens.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// AuthUseCase registro y login para todos los roles.
type AuthUseCase struct {
	userRepo repository.UserRepository
	jwtCfg   JWTConfig
	log      *logger.Logger
}

// NewAuthUseCase construye el caso de uso de auth.
func NewAuthUseCase(userRepo repository.UserRepository, jwtCfg JWTConfig, log *logger.Logger) *AuthUseCase {
	return &AuthUseCase{userRepo: userRepo, jwtCfg: jwtCfg, log: log}
}

// rolesValidos roles aceptados en el registro.
var rolesValidos = map[string]bool{
	entity.RoleAdmin:                     true,
	entity.RoleDistribuidorNacional:      true,
	entity.RoleDistribuidorInternacional: true,
	entity.RoleProduccion:                true,
	entity.RoleFacturacion:               true,
	entity.RoleBodega:                    true,
}

// Register crea un usuario: hashea el password con bcrypt y persiste.
// El actor que registra debe ser Admin; los distribuidores y bodegas quedan
// colgando de ese admin. Devuelve ErrEmailAlreadyExists si el email ya existe.
func (uc *AuthUseCase) Register(ctx context.Context, actor *entity.User, in dto.RegisterRequest) (*dto.UserResponse, error) {
	if actor.Rol != entity.RoleAdmin {
		return nil, domain.ErrForbidden
	}

	in.Normalize()
	if in.Email == "" || in.Password == "" || in.Nombre == "" {
		return nil, domain.ErrInvalidInput
	}
	if !rolesValidos[in.Rol] {
		return nil, domain.ErrInvalidInput
	}
	if entity.IsDistribuidor(in.Rol) && !entity.ValidPriceMode(in.TipoPrecio) {
		return nil, domain.ErrInvalidPriceMode
	}
	if in.Rol == entity.RoleBodega && in.CDI == "" {
		return nil, domain.ErrInvalidInput
	}

	existing, err := uc.userRepo.GetByEmail(ctx, in.Email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrEmailAlreadyExists
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	user := &entity.User{
		ID:                   uuid.New().String(),
		AdminID:              actor.ID,
		Nombre:               in.Nombre,
		Pais:                 in.Pais,
		Email:                in.Email,
		Phone:                in.Phone,
		PasswordHash:         string(hash),
		Rol:                  in.Rol,
		Estado:               "activo",
		CDI:                  in.CDI,
		TipoPrecio:           in.TipoPrecio,
		UnidadesIndividuales: in.UnidadesIndividuales,
		CreatedAt:            now,
		UpdatedAt:            now,
	}
	if err := uc.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	uc.log.Info().Str("email", user.Email).Str("rol", user.Rol).Msg("usuario registrado")

	resp := dto.ToUserResponse(user)
	return &resp, nil
}

// Login verifica email/password, genera el JWT con los claims del rol y
// estampa la fecha de último acceso.
func (uc *AuthUseCase) Login(ctx context.Context, in dto.LoginRequest) (*dto.LoginResponse, error) {
	in.Normalize()
	if in.Email == "" || in.Password == "" {
		return nil, domain.ErrInvalidInput
	}

	user, err := uc.userRepo.GetByEmail(ctx, in.Email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)); err != nil {
		return nil, domain.ErrUnauthorized
	}
	if user.Estado != "activo" {
		return nil, domain.ErrForbidden
	}

	token, err := jwt.Generate(uc.jwtCfg.Secret, jwt.UserClaims{
		Email:                user.Email,
		Rol:                  user.Rol,
		Nombre:               user.Nombre,
		Pais:                 user.Pais,
		CDI:                  user.CDI,
		TipoPrecio:           user.TipoPrecio,
		UnidadesIndividuales: user.UnidadesIndividuales,
	}, uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return nil, err
	}

	if err := uc.userRepo.TouchUltimoAcceso(ctx, user.ID, time.Now()); err != nil {
		uc.log.Warn().Err(err).Str("email", user.Email).Msg("no se pudo estampar el último acceso")
	}

	return &dto.LoginResponse{
		AccessToken: token,
		TokenType:   "bearer",
		User:        dto.ToUserResponse(user),
	}, nil
}
