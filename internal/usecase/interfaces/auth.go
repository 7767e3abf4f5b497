package interfaces

import (
	"context"
	"taller_flota/internal/domain/entities"
	"time"
)

// ITokenService issues and verifies access tokens.
type ITokenService interface {
	Issue(e entities.Employee) (string, entities.SessionClaims, error)
	Parse(token string) (entities.SessionClaims, error)
}

// IRevocationStore remembers logged-out token ids until they expire.
type IRevocationStore interface {
	Revoke(ctx context.Context, tokenID string, ttl time.Duration) error
	IsRevoked(ctx context.Context, tokenID string) (bool, error)
}

type IPasswordHasher interface {
	Hash(password string) (string, error)
	Compare(hash, password string) error
}
