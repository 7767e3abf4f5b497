package usecase

import (
	"context"
	"errors"
	"strings"
	"time"

	"taller_flota/internal/domain/entities"
	"taller_flota/internal/usecase/interfaces"

	"go.uber.org/zap"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInactiveEmployee   = errors.New("employee inactive")
	ErrInvalidToken       = errors.New("invalid token")
	ErrTokenRevoked       = errors.New("token revoked")
)

type LoginResult struct {
	Token     string
	ExpiresAt time.Time
	Employee  entities.Employee
}

// IAuthUseCase handles the login/logout endpoints and token checks done by
// the auth middleware.
type IAuthUseCase interface {
	Login(ctx context.Context, username, password string) (LoginResult, error)
	Logout(ctx context.Context, claims entities.SessionClaims) error
	Authenticate(ctx context.Context, token string) (entities.SessionClaims, error)
}

type AuthUseCase struct {
	employees interfaces.IEmployeeRepository
	tokens    interfaces.ITokenService
	revoked   interfaces.IRevocationStore
	hasher    interfaces.IPasswordHasher
	logger    *zap.Logger
}

var _ IAuthUseCase = (*AuthUseCase)(nil)

func NewAuthUseCase(
	employees interfaces.IEmployeeRepository,
	tokens interfaces.ITokenService,
	revoked interfaces.IRevocationStore,
	hasher interfaces.IPasswordHasher,
	logger *zap.Logger,
) *AuthUseCase {
	return &AuthUseCase{employees: employees, tokens: tokens, revoked: revoked, hasher: hasher, logger: orNop(logger)}
}

func (u *AuthUseCase) Login(ctx context.Context, username, password string) (LoginResult, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return LoginResult{}, ErrInvalidCredentials
	}

	e, err := u.employees.GetByUsername(ctx, username)
	if err != nil {
		return LoginResult{}, err
	}
	if e.RUT == "" {
		u.logger.Info("[auth][usecase] unknown username", zap.String("username", username))
		return LoginResult{}, ErrInvalidCredentials
	}
	if err := u.hasher.Compare(e.PasswordHash, password); err != nil {
		u.logger.Info("[auth][usecase] wrong password", zap.String("rut", e.RUT))
		return LoginResult{}, ErrInvalidCredentials
	}
	if !e.Active {
		return LoginResult{}, ErrInactiveEmployee
	}

	token, claims, err := u.tokens.Issue(e)
	if err != nil {
		return LoginResult{}, err
	}
	u.logger.Info("[auth][usecase] login", zap.String("rut", e.RUT), zap.String("role", string(e.Role)))
	return LoginResult{Token: token, ExpiresAt: claims.ExpiresAt, Employee: e}, nil
}

func (u *AuthUseCase) Logout(ctx context.Context, claims entities.SessionClaims) error {
	if claims.TokenID == "" {
		return ErrInvalidToken
	}
	ttl := time.Until(claims.ExpiresAt)
	if ttl <= 0 {
		return nil
	}
	if err := u.revoked.Revoke(ctx, claims.TokenID, ttl); err != nil {
		return err
	}
	u.logger.Info("[auth][usecase] logout", zap.String("rut", claims.RUT))
	return nil
}

func (u *AuthUseCase) Authenticate(ctx context.Context, token string) (entities.SessionClaims, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return entities.SessionClaims{}, ErrInvalidToken
	}
	claims, err := u.tokens.Parse(token)
	if err != nil {
		return entities.SessionClaims{}, ErrInvalidToken
	}
	revoked, err := u.revoked.IsRevoked(ctx, claims.TokenID)
	if err != nil {
		return entities.SessionClaims{}, err
	}
	if revoked {
		return entities.SessionClaims{}, ErrTokenRevoked
	}
	return claims, nil
}
