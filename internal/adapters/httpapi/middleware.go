package httpapi

import (
	"strings"

	"chirp/internal/core/apperr"
	tokenEntity "chirp/internal/core/token"
	tokenapp "chirp/internal/core/token/service"
	userEntity "chirp/internal/core/user"
	userPort "chirp/internal/ports/user"

	"github.com/gin-gonic/gin"
)

const ctxUserID = "userID"

// TokenVerifier is what the auth guards need from the token service.
type TokenVerifier interface {
	Verify(token string, kind tokenEntity.Kind) (*tokenapp.Claims, error)
}

// callerID returns the authenticated user id, empty for anonymous
// callers on optional-auth routes.
func callerID(c *gin.Context) string {
	if v, exists := c.Get(ctxUserID); exists {
		return v.(string)
	}
	return ""
}

func bearerToken(c *gin.Context) (string, error) {
	header := c.GetHeader("Authorization")
	if header == "" {
		return "", apperr.Unauthorized("Access token is required")
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || parts[0] != "Bearer" || parts[1] == "" {
		return "", apperr.Unauthorized("Invalid token")
	}
	return parts[1], nil
}

// RequireAuth rejects requests without a valid access token and stores
// the caller id in the gin context.
func RequireAuth(verifier TokenVerifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		tok, err := bearerToken(c)
		if err != nil {
			fail(c, err)
			return
		}
		claims, err := verifier.Verify(tok, tokenEntity.Access)
		if err != nil {
			fail(c, err)
			return
		}
		c.Set(ctxUserID, claims.UserID)
		c.Next()
	}
}

// OptionalAuth lets anonymous requests through, but a presented token
// must still be valid.
func OptionalAuth(verifier TokenVerifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.GetHeader("Authorization") == "" {
			c.Next()
			return
		}
		RequireAuth(verifier)(c)
	}
}

// RequireVerified rejects authenticated callers whose account is not
// verified. Anonymous callers pass, so the guard composes with
// OptionalAuth on public read routes.
func RequireVerified(users userPort.UserRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := callerID(c)
		if id == "" {
			c.Next()
			return
		}
		u, err := users.FindByID(c.Request.Context(), id)
		if err != nil {
			fail(c, err)
			return
		}
		if u == nil || u.Verify != userEntity.Verified {
			fail(c, apperr.Unauthorized("User is not verified"))
			return
		}
		c.Next()
	}
}
