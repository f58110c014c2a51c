package auth

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/Contable-api/internal/application/dto"
	"github.com/jhoicas/Contable-api/internal/application/ports"
	"github.com/jhoicas/Contable-api/internal/application/usecase"
	"github.com/jhoicas/Contable-api/internal/domain"
	"github.com/jhoicas/Contable-api/internal/domain/entity"
	"github.com/jhoicas/Contable-api/internal/domain/repository"
	"github.com/jhoicas/Contable-api/pkg/jwt"
)

// JWTConfig configuración para generación de tokens.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// SignupTxRunner crea negocio y dueño en una misma transacción.
type SignupTxRunner interface {
	RunSignup(ctx context.Context, fn func(businessRepo repository.BusinessRepository, userRepo repository.UserRepository) error) error
}

// AuthUseCase casos de uso de autenticación: registro, login y login con Google.
type AuthUseCase struct {
	userRepo repository.UserRepository
	txRunner SignupTxRunner
	google   ports.OAuthProvider // nil = login con Google deshabilitado
	jwtCfg   JWTConfig
	now      func() time.Time
}

// NewAuthUseCase construye el caso de uso de auth. google puede ser nil.
func NewAuthUseCase(userRepo repository.UserRepository, txRunner SignupTxRunner, google ports.OAuthProvider, jwtCfg JWTConfig) *AuthUseCase {
	return &AuthUseCase{userRepo: userRepo, txRunner: txRunner, google: google, jwtCfg: jwtCfg, now: time.Now}
}

// Register crea el negocio y su usuario dueño (password con bcrypt) y devuelve la sesión.
// ErrEmailAlreadyExists si el email ya está registrado.
func (uc *AuthUseCase) Register(ctx context.Context, in dto.RegisterRequest) (*dto.LoginResponse, error) {
	email := normalizeEmail(in.Email)
	if email == "" {
		return nil, domain.NewValidationError("email", "es obligatorio")
	}
	if len(in.Password) < 8 {
		return nil, domain.NewValidationError("password", "longitud mínima 8")
	}
	if strings.TrimSpace(in.BusinessName) == "" {
		return nil, domain.NewValidationError("business_name", "es obligatorio")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	user, err := uc.signup(ctx, email, in.Name, strings.TrimSpace(in.BusinessName), string(hash), entity.AuthProviderPassword)
	if err != nil {
		return nil, err
	}
	return uc.session(user)
}

// Login verifica email/password y genera el JWT.
// Usuario inexistente y password incorrecto devuelven el mismo ErrUnauthorized.
func (uc *AuthUseCase) Login(ctx context.Context, in dto.LoginRequest) (*dto.LoginResponse, error) {
	user, err := uc.userRepo.FindByEmail(ctx, normalizeEmail(in.Email))
	if err != nil {
		return nil, err
	}
	if user == nil || user.PasswordHash == "" {
		return nil, domain.ErrUnauthorized
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)); err != nil {
		return nil, domain.ErrUnauthorized
	}
	if user.Status != entity.UserStatusActive {
		return nil, domain.ErrForbidden
	}
	return uc.session(user)
}

// GoogleEnabled indica si hay proveedor de Google configurado.
func (uc *AuthUseCase) GoogleEnabled() bool { return uc.google != nil }

// GoogleAuthURL genera un state aleatorio y la URL de consentimiento de Google.
func (uc *AuthUseCase) GoogleAuthURL() (url, state string, err error) {
	if uc.google == nil {
		return "", "", domain.ErrNotFound
	}
	state = uuid.New().String()
	return uc.google.AuthCodeURL(state), state, nil
}

// GoogleCallback canjea el código, busca o crea el usuario (con su negocio) y devuelve la sesión.
func (uc *AuthUseCase) GoogleCallback(ctx context.Context, code string) (*dto.LoginResponse, error) {
	if uc.google == nil {
		return nil, domain.ErrNotFound
	}
	if code == "" {
		return nil, domain.NewValidationError("code", "es obligatorio")
	}
	ext, err := uc.google.Exchange(ctx, code)
	if err != nil {
		return nil, errors.Join(domain.ErrUnauthorized, err)
	}
	if !ext.EmailVerified || ext.Email == "" {
		return nil, domain.ErrUnauthorized
	}
	email := normalizeEmail(ext.Email)
	user, err := uc.userRepo.FindByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		businessName := "Negocio de " + firstNonEmpty(ext.Name, email)
		user, err = uc.signup(ctx, email, ext.Name, businessName, "", entity.AuthProviderGoogle)
		if err != nil {
			return nil, err
		}
	}
	if user.Status != entity.UserStatusActive {
		return nil, domain.ErrForbidden
	}
	return uc.session(user)
}

func (uc *AuthUseCase) signup(ctx context.Context, email, name, businessName, hash, provider string) (*entity.User, error) {
	now := uc.now().UTC()
	business := &entity.Business{
		ID:        uuid.New().String(),
		Name:      businessName,
		CreatedAt: now,
		UpdatedAt: now,
	}
	user := &entity.User{
		ID:           uuid.New().String(),
		BusinessID:   business.ID,
		Email:        email,
		PasswordHash: hash,
		Name:         firstNonEmpty(strings.TrimSpace(name), email),
		Provider:     provider,
		Status:       entity.UserStatusActive,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	err := uc.txRunner.RunSignup(ctx, func(businessRepo repository.BusinessRepository, userRepo repository.UserRepository) error {
		existing, err := userRepo.FindByEmail(ctx, email)
		if err != nil {
			return err
		}
		if existing != nil {
			return domain.ErrEmailAlreadyExists
		}
		if err := businessRepo.Create(ctx, business); err != nil {
			return err
		}
		return userRepo.Create(ctx, user)
	})
	if err != nil {
		return nil, err
	}
	return user, nil
}

func (uc *AuthUseCase) session(user *entity.User) (*dto.LoginResponse, error) {
	token, err := jwt.Generate(uc.jwtCfg.Secret, user.ID, user.BusinessID, user.Email, uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return nil, err
	}
	return &dto.LoginResponse{
		Token: token,
		User:  *usecase.EntityToUserResponse(user),
	}, nil
}

func normalizeEmail(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
