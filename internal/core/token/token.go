package token

import (
	"time"

	"github.com/gofrs/uuid"
)

// Kind selects the signing secret and TTL for a token.
type Kind int

const (
	Access Kind = iota
	Refresh
	ForgotPassword
	EmailVerify
)

// RefreshToken is one issued refresh credential. A user may hold several
// rows at once (one per device/session).
type RefreshToken struct {
	ID        uuid.UUID `gorm:"primary_key;type:char(36)"`
	UserID    uuid.UUID `gorm:"type:char(36);not null;index"`
	Token     string    `gorm:"type:text;not null"`
	ExpiresAt *time.Time
	CreatedAt time.Time `gorm:"autoCreateTime"`
}
