package mail

import "context"

// Mailer delivers account emails. Delivery transport is an external
// collaborator; implementations may log instead of sending.
type Mailer interface {
	SendVerifyEmail(ctx context.Context, to, token string) error
	SendForgotPasswordEmail(ctx context.Context, to, token string) error
}
