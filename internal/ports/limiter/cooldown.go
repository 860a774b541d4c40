package limiter

import (
	"context"
	"time"
)

// Cooldown gates repeatable actions (resend verify email, resend forgot
// password) behind a per-key waiting window.
type Cooldown interface {
	// Acquire returns true and arms the window if the key is free, false
	// if the window from a previous Acquire is still open.
	Acquire(ctx context.Context, key string, window time.Duration) (bool, error)
}
