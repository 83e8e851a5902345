package middleware

import (
	"context"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/yukikurage/kanban-web/internal/constants"
	apierrors "github.com/yukikurage/kanban-web/internal/errors"
)

type accessTokenKey struct{}

// WithAccessToken returns a copy of ctx carrying the board API access token.
func WithAccessToken(ctx context.Context, token string) context.Context {
	return context.WithValue(ctx, accessTokenKey{}, token)
}

// AccessToken returns the access token carried by ctx, or "". It satisfies
// repository.TokenSourceFunc.
func AccessToken(ctx context.Context) string {
	token, _ := ctx.Value(accessTokenKey{}).(string)
	return token
}

// InjectTokens copies the session's access token into the request context so
// board API calls made while serving the request are authenticated.
func InjectTokens() gin.HandlerFunc {
	return func(c *gin.Context) {
		session := sessions.Default(c)
		if token, ok := session.Get(constants.KeyAccessToken).(string); ok && token != "" {
			c.Request = c.Request.WithContext(WithAccessToken(c.Request.Context(), token))
		}
		c.Next()
	}
}

// RequireAuth checks if the session holds an access token
func RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		session := sessions.Default(c)
		token, _ := session.Get(constants.KeyAccessToken).(string)

		if token == "" {
			apierrors.Unauthorized(c, "")
			c.Abort()
			return
		}

		c.Next()
	}
}
