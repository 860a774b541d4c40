package tokenapp

import (
	"context"
	"time"
	"unicode"

	"chirp/internal/core/apperr"
	tokenEntity "chirp/internal/core/token"
	tokenPort "chirp/internal/ports/token"

	"github.com/dgrijalva/jwt-go"
	"github.com/gofrs/uuid"
)

// Claims is the signed payload of every token kind.
type Claims struct {
	UserID    string           `json:"user_id"`
	TokenType tokenEntity.Kind `json:"token_type"`
	jwt.StandardClaims
}

// Secrets holds one signing secret per token kind. Verification selects
// the secret by the caller's expected kind, never by inspecting the
// unverified token.
type Secrets struct {
	Access         string
	Refresh        string
	EmailVerify    string
	ForgotPassword string
}

const mailTokenTTL = 5 * time.Minute

// TokenService issues and validates the four token kinds and owns the
// refresh-token revocation store.
type TokenService struct {
	RefreshTokenRepository tokenPort.RefreshTokenRepository
	secrets                Secrets
	accessTTL              time.Duration
	refreshTTL             time.Duration
}

func NewTokenService(repo tokenPort.RefreshTokenRepository, secrets Secrets, accessTTL, refreshTTL time.Duration) *TokenService {
	return &TokenService{
		RefreshTokenRepository: repo,
		secrets:                secrets,
		accessTTL:              accessTTL,
		refreshTTL:             refreshTTL,
	}
}

func (s *TokenService) secretFor(kind tokenEntity.Kind) string {
	switch kind {
	case tokenEntity.Access:
		return s.secrets.Access
	case tokenEntity.Refresh:
		return s.secrets.Refresh
	case tokenEntity.EmailVerify:
		return s.secrets.EmailVerify
	default:
		return s.secrets.ForgotPassword
	}
}

// sign embeds a fresh jti so two tokens for the same user in the same
// second never collide; rotation depends on the new token being distinct.
func (s *TokenService) sign(userID string, kind tokenEntity.Kind, expiresAt int64) (string, error) {
	claims := &Claims{
		UserID:    userID,
		TokenType: kind,
		StandardClaims: jwt.StandardClaims{
			Id:        uuid.Must(uuid.NewV4()).String(),
			IssuedAt:  time.Now().Unix(),
			ExpiresAt: expiresAt,
		},
	}
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return tok.SignedString([]byte(s.secretFor(kind)))
}

func (s *TokenService) IssueAccessToken(userID string) (string, error) {
	return s.sign(userID, tokenEntity.Access, time.Now().Add(s.accessTTL).Unix())
}

// IssueRefreshToken embeds exp directly when given (rotation preserving
// the original expiry) and applies the configured TTL otherwise.
func (s *TokenService) IssueRefreshToken(userID string, exp int64) (string, error) {
	if exp == 0 {
		exp = time.Now().Add(s.refreshTTL).Unix()
	}
	return s.sign(userID, tokenEntity.Refresh, exp)
}

func (s *TokenService) IssueEmailVerifyToken(userID string) (string, error) {
	return s.sign(userID, tokenEntity.EmailVerify, time.Now().Add(mailTokenTTL).Unix())
}

func (s *TokenService) IssueForgotPasswordToken(userID string) (string, error) {
	return s.sign(userID, tokenEntity.ForgotPassword, time.Now().Add(mailTokenTTL).Unix())
}

// Verify checks signature and expiry against the secret for the expected
// kind. Any crypto failure maps to Unauthorized with the underlying
// message, the mismatched-kind case included.
func (s *TokenService) Verify(tokenStr string, kind tokenEntity.Kind) (*Claims, error) {
	claims := &Claims{}
	_, err := jwt.ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.NewValidationError("unexpected signing method", jwt.ValidationErrorSignatureInvalid)
		}
		return []byte(s.secretFor(kind)), nil
	})
	if err != nil {
		return nil, apperr.Unauthorized(capitalize(err.Error()))
	}
	if claims.TokenType != kind {
		return nil, apperr.Unauthorized("Invalid token type")
	}
	return claims, nil
}

// IssuePair signs an access+refresh pair and persists the refresh row.
// The pair is not handed out before the row is durable.
func (s *TokenService) IssuePair(ctx context.Context, userID string, exp int64) (*tokenPort.TokenPair, error) {
	accessToken, err := s.IssueAccessToken(userID)
	if err != nil {
		return nil, err
	}
	refreshToken, err := s.IssueRefreshToken(userID, exp)
	if err != nil {
		return nil, err
	}
	if _, err := s.RefreshTokenRepository.Create(ctx, s.refreshRow(userID, refreshToken, exp)); err != nil {
		return nil, err
	}
	return &tokenPort.TokenPair{AccessToken: accessToken, RefreshToken: refreshToken}, nil
}

// Revoke deletes the matching refresh row; absence is not an error.
func (s *TokenService) Revoke(ctx context.Context, refreshToken string) error {
	return s.RefreshTokenRepository.DeleteByToken(ctx, refreshToken)
}

// Rotate exchanges oldToken for a fresh pair carrying the same exp, so a
// session cannot be extended indefinitely by refreshing.
func (s *TokenService) Rotate(ctx context.Context, oldToken, userID string, exp int64) (*tokenPort.TokenPair, error) {
	accessToken, err := s.IssueAccessToken(userID)
	if err != nil {
		return nil, err
	}
	refreshToken, err := s.IssueRefreshToken(userID, exp)
	if err != nil {
		return nil, err
	}
	if err := s.RefreshTokenRepository.Rotate(ctx, oldToken, s.refreshRow(userID, refreshToken, exp)); err != nil {
		return nil, err
	}
	return &tokenPort.TokenPair{AccessToken: accessToken, RefreshToken: refreshToken}, nil
}

// FindRefreshToken reports whether the refresh token is still live in the
// revocation store.
func (s *TokenService) FindRefreshToken(ctx context.Context, refreshToken string) (bool, error) {
	row, err := s.RefreshTokenRepository.FindByToken(ctx, refreshToken)
	if err != nil {
		return false, err
	}
	return row != nil, nil
}

func (s *TokenService) refreshRow(userID, refreshToken string, exp int64) *tokenEntity.RefreshToken {
	row := &tokenEntity.RefreshToken{
		ID:     uuid.Must(uuid.NewV4()),
		UserID: uuid.FromStringOrNil(userID),
		Token:  refreshToken,
	}
	if exp == 0 {
		exp = time.Now().Add(s.refreshTTL).Unix()
	}
	expiresAt := time.Unix(exp, 0)
	row.ExpiresAt = &expiresAt
	return row
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	r := []rune(s)
	r[0] = unicode.ToUpper(r[0])
	return string(r)
}
