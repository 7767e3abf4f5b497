package auth

import (
	"errors"
	"time"

	"taller_flota/internal/domain/entities"
	"taller_flota/internal/usecase/interfaces"

	jwt "github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var (
	ErrInvalidSigningMethod = errors.New("invalid signing method")
	ErrInvalidToken         = errors.New("invalid token")
)

type tokenClaims struct {
	RUT        string `json:"rut"`
	Username   string `json:"username"`
	Name       string `json:"name"`
	Role       string `json:"role"`
	WorkshopID int64  `json:"workshop_id"`
	jwt.RegisteredClaims
}

// JWTService signs HS256 access tokens carrying the employee identity.
type JWTService struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

var _ interfaces.ITokenService = (*JWTService)(nil)

func NewJWTService(secret string, ttl time.Duration) *JWTService {
	return &JWTService{secret: []byte(secret), ttl: ttl, now: time.Now}
}

func (s *JWTService) Issue(e entities.Employee) (string, entities.SessionClaims, error) {
	now := s.now()
	exp := now.Add(s.ttl)
	claims := tokenClaims{
		RUT:        e.RUT,
		Username:   e.Username,
		Name:       e.Name,
		Role:       string(e.Role),
		WorkshopID: e.WorkshopID,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   e.RUT,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(exp),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", entities.SessionClaims{}, err
	}
	return signed, toSession(claims), nil
}

func (s *JWTService) Parse(token string) (entities.SessionClaims, error) {
	parsed, err := jwt.ParseWithClaims(token, &tokenClaims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidSigningMethod
		}
		return s.secret, nil
	}, jwt.WithTimeFunc(s.now))
	if err != nil {
		return entities.SessionClaims{}, err
	}
	claims, ok := parsed.Claims.(*tokenClaims)
	if !ok || !parsed.Valid || claims.ID == "" {
		return entities.SessionClaims{}, ErrInvalidToken
	}
	return toSession(*claims), nil
}

func toSession(c tokenClaims) entities.SessionClaims {
	out := entities.SessionClaims{
		TokenID:    c.ID,
		RUT:        c.RUT,
		Username:   c.Username,
		Name:       c.Name,
		Role:       entities.Role(c.Role),
		WorkshopID: c.WorkshopID,
	}
	if c.ExpiresAt != nil {
		out.ExpiresAt = c.ExpiresAt.Time
	}
	return out
}
