package middleware

import (
	"context"
	"strings"

	"github.com/gin-gonic/gin"

	"jobboard-backend/internal/shared/apperr"
	"jobboard-backend/internal/shared/identity"
	"jobboard-backend/internal/shared/server/respond"
)

const (
	userIDKey  = "userId"
	accountKey = "account"
	roleKey    = "role"
)

const (
	MissingCredentialsMessage = "Authentication credentials were not provided."
	InvalidTokenMessage       = "Given token not valid for any token type"
)

// TokenResolver maps a bearer access token to the account it was issued for.
type TokenResolver interface {
	ResolveToken(ctx context.Context, token string) (identity.Account, error)
}

// Auth requires a bearer access token and stores the resolved account in context.
func Auth(resolver TokenResolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := strings.TrimSpace(c.GetHeader("Authorization"))
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			respond.Error(c, apperr.Unauthenticated(MissingCredentialsMessage))
			return
		}

		token := strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer"))
		if token == "" {
			respond.Error(c, apperr.AuthFailed(InvalidTokenMessage))
			return
		}

		acct, err := resolver.ResolveToken(c.Request.Context(), token)
		if err != nil {
			respond.Error(c, err)
			return
		}

		c.Set(accountKey, acct)
		c.Set(userIDKey, acct.ID)
		c.Set(roleKey, acct.Role.String())
		c.Next()
	}
}

// AccountFromContext fetches the account set by the auth middleware.
func AccountFromContext(c *gin.Context) (identity.Account, bool) {
	if c == nil {
		return identity.Account{}, false
	}
	val, ok := c.Get(accountKey)
	if !ok {
		return identity.Account{}, false
	}
	acct, ok := val.(identity.Account)
	return acct, ok
}

// UserIDFromContext fetches the user ID set by the auth middleware.
func UserIDFromContext(c *gin.Context) string {
	if c == nil {
		return ""
	}
	val, _ := c.Get(userIDKey)
	if id, ok := val.(string); ok {
		return id
	}
	return ""
}
