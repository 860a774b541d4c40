package authapp_test

import (
	"context"
	"strings"
	"testing"
	"time"

	dbadapter "chirp/internal/adapters/database"
	"chirp/internal/core/apperr"
	authapp "chirp/internal/core/auth/service"
	tokenEntity "chirp/internal/core/token"
	tokenapp "chirp/internal/core/token/service"
	userEntity "chirp/internal/core/user"
	oauthPort "chirp/internal/ports/oauth"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// fakeProvider stands in for the Google token exchange.
type fakeProvider struct {
	info *oauthPort.UserInfo
	err  error
}

func (p *fakeProvider) ExchangeCode(context.Context, string) (*oauthPort.UserInfo, error) {
	return p.info, p.err
}

type authFixture struct {
	db     *gorm.DB
	svc    *authapp.AuthService
	tokens *tokenapp.TokenService
	oauth  *fakeProvider
}

func newAuthFixture(t *testing.T) *authFixture {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file:"+t.Name()+"?mode=memory&cache=shared"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&userEntity.User{},
		&tokenEntity.RefreshToken{},
	))

	tokens := tokenapp.NewTokenService(
		dbadapter.NewRefreshTokenRepositoryDatabase(db),
		tokenapp.Secrets{
			Access:         "a",
			Refresh:        "r",
			EmailVerify:    "e",
			ForgotPassword: "f",
		},
		15*time.Minute, time.Hour,
	)
	oauth := &fakeProvider{}
	svc := authapp.NewAuthService(dbadapter.NewUserRepositoryDatabase(db), tokens, oauth)
	return &authFixture{db: db, svc: svc, tokens: tokens, oauth: oauth}
}

func TestRegisterCreatesAccountWithDerivedUsername(t *testing.T) {
	f := newAuthFixture(t)
	ctx := context.Background()

	pair, err := f.svc.Register(ctx, "Alice", "alice@example.com", "Secret1!", nil)
	require.NoError(t, err)
	require.NotEmpty(t, pair.AccessToken)
	require.NotEmpty(t, pair.RefreshToken)

	var u userEntity.User
	require.NoError(t, f.db.Where("email = ?", "alice@example.com").First(&u).Error)
	assert.True(t, strings.HasPrefix(u.Username, "user"))
	assert.Equal(t, "user"+u.ID.String(), u.Username)
	assert.Equal(t, userEntity.Unverified, u.Verify)
	assert.NotEqual(t, "Secret1!", u.Password)

	claims, err := f.tokens.Verify(pair.AccessToken, tokenEntity.Access)
	require.NoError(t, err)
	assert.Equal(t, u.ID.String(), claims.UserID)
}

func TestLogin(t *testing.T) {
	f := newAuthFixture(t)
	ctx := context.Background()
	_, err := f.svc.Register(ctx, "Alice", "alice@example.com", "Secret1!", nil)
	require.NoError(t, err)

	pair, err := f.svc.Login(ctx, "alice@example.com", "Secret1!")
	require.NoError(t, err)
	assert.NotEmpty(t, pair.RefreshToken)

	// Unknown account and wrong password fail identically.
	_, err = f.svc.Login(ctx, "alice@example.com", "wrong")
	require.Error(t, err)
	assert.True(t, apperr.IsCode(err, apperr.CodeUnprocessableEntity))
	_, err = f.svc.Login(ctx, "nobody@example.com", "Secret1!")
	require.Error(t, err)
	assert.True(t, apperr.IsCode(err, apperr.CodeUnprocessableEntity))
}

func TestRefreshRotatesAndLogoutRevokes(t *testing.T) {
	f := newAuthFixture(t)
	ctx := context.Background()
	pair, err := f.svc.Register(ctx, "Alice", "alice@example.com", "Secret1!", nil)
	require.NoError(t, err)

	rotated, err := f.svc.Refresh(ctx, pair.RefreshToken)
	require.NoError(t, err)
	require.NotEqual(t, pair.RefreshToken, rotated.RefreshToken)

	// The consumed token cannot be replayed.
	_, err = f.svc.Refresh(ctx, pair.RefreshToken)
	require.Error(t, err)
	assert.True(t, apperr.IsCode(err, apperr.CodeUnauthorized))
	assert.Equal(t, "Refresh token does not exist", err.Error())

	require.NoError(t, f.svc.Logout(ctx, rotated.RefreshToken))
	_, err = f.svc.Refresh(ctx, rotated.RefreshToken)
	require.Error(t, err)
	assert.True(t, apperr.IsCode(err, apperr.CodeUnauthorized))
}

func TestCheckEmailExists(t *testing.T) {
	f := newAuthFixture(t)
	ctx := context.Background()
	_, err := f.svc.Register(ctx, "Alice", "alice@example.com", "Secret1!", nil)
	require.NoError(t, err)

	exists, err := f.svc.CheckEmailExists(ctx, "alice@example.com")
	require.NoError(t, err)
	assert.True(t, exists)
	exists, err = f.svc.CheckEmailExists(ctx, "bob@example.com")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestOAuthGoogle(t *testing.T) {
	f := newAuthFixture(t)
	ctx := context.Background()

	_, err := f.svc.OAuthGoogle(ctx, "")
	require.Error(t, err)
	assert.True(t, apperr.IsCode(err, apperr.CodeBadRequest))

	f.oauth.info = &oauthPort.UserInfo{Email: "alice@gmail.com", EmailVerified: false, Name: "Alice"}
	_, err = f.svc.OAuthGoogle(ctx, "code")
	require.Error(t, err)
	assert.Equal(t, "Email is not verified", err.Error())

	// First sign-in creates the account, the second reuses it.
	f.oauth.info.EmailVerified = true
	_, err = f.svc.OAuthGoogle(ctx, "code")
	require.NoError(t, err)
	_, err = f.svc.OAuthGoogle(ctx, "code")
	require.NoError(t, err)

	var count int64
	require.NoError(t, f.db.Model(&userEntity.User{}).Where("email = ?", "alice@gmail.com").Count(&count).Error)
	assert.Equal(t, int64(1), count)
}
