package middleware

import (
	"context"
	"net/http"
	"strings"

	"linguista/internal/apperr"
	"linguista/internal/domain"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	userKey    = "user"
	tokenIDKey = "tokenID"
)

// Authenticator resolves a raw API token
type Authenticator interface {
	Authenticate(ctx context.Context, raw string) (*domain.User, uuid.UUID, error)
}

// RequireAuth rejects requests without a valid "Token" or "Bearer" credential
func RequireAuth(authn Authenticator) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw, ok := tokenFromHeader(c.GetHeader("Authorization"))
		if !ok {
			abort(c, apperr.ErrUnauthorized)
			return
		}

		user, tokenID, err := authn.Authenticate(c.Request.Context(), raw)
		if err != nil {
			abort(c, err)
			return
		}

		c.Set(userKey, user)
		c.Set(tokenIDKey, tokenID)
		c.Next()
	}
}

// CurrentUser returns the authenticated user or nil
func CurrentUser(c *gin.Context) *domain.User {
	v, ok := c.Get(userKey)
	if !ok {
		return nil
	}
	u, _ := v.(*domain.User)
	return u
}

// CurrentTokenID returns the id of the token used for the request
func CurrentTokenID(c *gin.Context) uuid.UUID {
	v, ok := c.Get(tokenIDKey)
	if !ok {
		return uuid.Nil
	}
	id, _ := v.(uuid.UUID)
	return id
}

func tokenFromHeader(header string) (string, bool) {
	parts := strings.SplitN(strings.TrimSpace(header), " ", 2)
	if len(parts) != 2 {
		return "", false
	}
	switch strings.ToLower(parts[0]) {
	case "token", "bearer":
	default:
		return "", false
	}
	token := strings.TrimSpace(parts[1])
	return token, token != ""
}

func abort(c *gin.Context, err error) {
	status := apperr.HTTPStatus(err)
	if status == http.StatusUnauthorized {
		c.Header("WWW-Authenticate", "Token")
	}
	_ = c.Error(err)
	c.AbortWithStatusJSON(status, apperr.Body(err))
}
