package oauth

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	oauthPort "chirp/internal/ports/oauth"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
)

const userInfoURL = "https://www.googleapis.com/oauth2/v1/userinfo?alt=json"

// GoogleProvider exchanges an authorization code against Google and
// fetches the userinfo document.
type GoogleProvider struct {
	config *oauth2.Config
}

func NewGoogleProvider(clientID, clientSecret, redirectURL string) *GoogleProvider {
	return &GoogleProvider{
		config: &oauth2.Config{
			ClientID:     clientID,
			ClientSecret: clientSecret,
			RedirectURL:  redirectURL,
			Scopes:       []string{"openid", "email", "profile"},
			Endpoint:     google.Endpoint,
		},
	}
}

func (p *GoogleProvider) ExchangeCode(ctx context.Context, code string) (*oauthPort.UserInfo, error) {
	tok, err := p.config.Exchange(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("exchange code: %w", err)
	}

	res, err := p.config.Client(ctx, tok).Get(userInfoURL)
	if err != nil {
		return nil, fmt.Errorf("fetch userinfo: %w", err)
	}
	defer res.Body.Close()
	if res.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch userinfo: status %d", res.StatusCode)
	}

	var body struct {
		Email         string `json:"email"`
		VerifiedEmail bool   `json:"verified_email"`
		Name          string `json:"name"`
	}
	if err := json.NewDecoder(res.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("decode userinfo: %w", err)
	}
	return &oauthPort.UserInfo{
		Email:         body.Email,
		EmailVerified: body.VerifiedEmail,
		Name:          body.Name,
	}, nil
}
