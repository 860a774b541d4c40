package authapp

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"time"

	"chirp/internal/core/apperr"
	tokenEntity "chirp/internal/core/token"
	userEntity "chirp/internal/core/user"
	oauthPort "chirp/internal/ports/oauth"
	tokenPort "chirp/internal/ports/token"
	userPort "chirp/internal/ports/user"

	tokenapp "chirp/internal/core/token/service"

	"github.com/gofrs/uuid"
	"golang.org/x/crypto/bcrypt"
)

// AuthService owns the session lifecycle: register, login, logout, token
// refresh and Google OAuth sign-in.
type AuthService struct {
	UserRepository userPort.UserRepository
	Tokens         *tokenapp.TokenService
	OAuth          oauthPort.Provider
}

func NewAuthService(userRepo userPort.UserRepository, tokens *tokenapp.TokenService, oauth oauthPort.Provider) *AuthService {
	return &AuthService{
		UserRepository: userRepo,
		Tokens:         tokens,
		OAuth:          oauth,
	}
}

// Register creates the account and hands back a persisted token pair.
// Email uniqueness is enforced by the request validator before any write;
// the unique index backstops races.
func (s *AuthService) Register(ctx context.Context, name, email, password string, dateOfBirth *time.Time) (*tokenPort.TokenPair, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	id := uuid.Must(uuid.NewV4())
	u := &userEntity.User{
		ID:          id,
		Name:        name,
		Email:       email,
		Username:    "user" + id.String(),
		Password:    string(hashed),
		DateOfBirth: dateOfBirth,
	}
	if _, err := s.UserRepository.Create(ctx, u); err != nil {
		return nil, err
	}

	return s.Tokens.IssuePair(ctx, id.String(), 0)
}

func (s *AuthService) Login(ctx context.Context, email, password string) (*tokenPort.TokenPair, error) {
	u, err := s.UserRepository.FindByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, credentialsError()
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(password)); err != nil {
		return nil, credentialsError()
	}
	return s.Tokens.IssuePair(ctx, u.ID.String(), 0)
}

// Logout revokes the refresh token; revoking an unknown token succeeds.
func (s *AuthService) Logout(ctx context.Context, refreshToken string) error {
	return s.Tokens.Revoke(ctx, refreshToken)
}

// Refresh rotates the pair. The stored row must still exist and the token
// must verify; the new refresh token keeps the old exp claim.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (*tokenPort.TokenPair, error) {
	exists, err := s.Tokens.FindRefreshToken(ctx, refreshToken)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, apperr.Unauthorized("Refresh token does not exist")
	}
	claims, err := s.Tokens.Verify(refreshToken, tokenEntity.Refresh)
	if err != nil {
		return nil, err
	}
	return s.Tokens.Rotate(ctx, refreshToken, claims.UserID, claims.ExpiresAt)
}

// OAuthGoogle signs the user in with a Google authorization code, creating
// the account with a random password on first login.
func (s *AuthService) OAuthGoogle(ctx context.Context, code string) (*tokenPort.TokenPair, error) {
	if code == "" {
		return nil, apperr.BadRequest("Code is required")
	}
	info, err := s.OAuth.ExchangeCode(ctx, code)
	if err != nil {
		return nil, apperr.BadRequest(err.Error())
	}
	if !info.EmailVerified {
		return nil, apperr.BadRequest("Email is not verified")
	}

	u, err := s.UserRepository.FindByEmail(ctx, info.Email)
	if err != nil {
		return nil, err
	}
	if u == nil {
		password, err := randomPassword()
		if err != nil {
			return nil, err
		}
		hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
		if err != nil {
			return nil, err
		}
		id := uuid.Must(uuid.NewV4())
		u = &userEntity.User{
			ID:       id,
			Name:     info.Name,
			Email:    info.Email,
			Username: "user" + id.String(),
			Password: string(hashed),
		}
		if _, err := s.UserRepository.Create(ctx, u); err != nil {
			return nil, err
		}
	}
	return s.Tokens.IssuePair(ctx, u.ID.String(), 0)
}

// CheckEmailExists reports whether an account already uses the email.
func (s *AuthService) CheckEmailExists(ctx context.Context, email string) (bool, error) {
	u, err := s.UserRepository.FindByEmail(ctx, email)
	if err != nil {
		return false, err
	}
	return u != nil, nil
}

func credentialsError() error {
	return apperr.UnprocessableEntity("Email or password is incorrect", map[string]string{
		"email": "Email or password is incorrect",
	})
}

func randomPassword() (string, error) {
	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}
