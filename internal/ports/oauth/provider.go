package oauth

import "context"

// UserInfo is what an identity provider asserts about the signed-in user.
type UserInfo struct {
	Email         string
	EmailVerified bool
	Name          string
}

// Provider exchanges an authorization code for the provider's view of the
// user.
type Provider interface {
	ExchangeCode(ctx context.Context, code string) (*UserInfo, error)
}
