package middleware

import (
	"context"
	"strings"

	"github.com/planhub/collab-event-service/pkg/app"
	"github.com/planhub/collab-event-service/pkg/code"

	"github.com/gin-gonic/gin"
)

// BlacklistChecker reports whether a token was revoked.
type BlacklistChecker func(ctx context.Context, token string) (bool, error)

// UserAuthToken validates the access token on protected routes and
// stores its claims under "user_token".
func UserAuthToken(tokenManager app.TokenManager, isBlacklisted BlacklistChecker) gin.HandlerFunc {
	return func(c *gin.Context) {
		response := app.NewResponse(c)

		token := extractToken(c)
		if token == "" {
			response.ToResponse(code.ErrorNotUserAuthToken)
			c.Abort()
			return
		}

		user, err := tokenManager.Parse(token, app.ScopeAccess)
		if err != nil {
			response.ToResponse(code.ErrorInvalidUserAuthToken)
			c.Abort()
			return
		}

		if isBlacklisted != nil {
			revoked, err := isBlacklisted(c.Request.Context(), token)
			if err != nil {
				response.ToResponse(code.ErrorDBQuery)
				c.Abort()
				return
			}
			if revoked {
				response.ToResponse(code.ErrorTokenBlacklisted)
				c.Abort()
				return
			}
		}

		c.Set("user_token", user)
		c.Set("raw_token", token)

		c.Next()
	}
}

func extractToken(c *gin.Context) string {
	var token string

	if s, exist := c.GetQuery("authorization"); exist {
		token = s
	} else if s := c.GetHeader("Authorization"); len(s) != 0 {
		token = s
	} else if s, exist := c.GetQuery("token"); exist {
		token = s
	} else if s := c.GetHeader("Token"); len(s) != 0 {
		token = s
	}

	return strings.TrimPrefix(token, "Bearer ")
}

// GetRawToken returns the bearer token the auth middleware accepted.
func GetRawToken(c *gin.Context) string {
	if s, exist := c.Get("raw_token"); exist {
		if token, ok := s.(string); ok {
			return token
		}
	}
	return ""
}
