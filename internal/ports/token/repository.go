package token

import (
	"context"

	tokenEntity "chirp/internal/core/token"
)

// RefreshTokenRepository is the outbound port for the refresh-token
// revocation store.
type RefreshTokenRepository interface {
	Create(ctx context.Context, rt *tokenEntity.RefreshToken) (*tokenEntity.RefreshToken, error)
	FindByToken(ctx context.Context, token string) (*tokenEntity.RefreshToken, error)
	// DeleteByToken is idempotent: deleting an absent row is not an error.
	DeleteByToken(ctx context.Context, token string) error
	// Rotate deletes the old row and inserts the fresh one in a single
	// transaction so a crash cannot leave both or neither.
	Rotate(ctx context.Context, oldToken string, fresh *tokenEntity.RefreshToken) error
}

// TokenPair is what login/register/refresh hand back to the client.
type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}
