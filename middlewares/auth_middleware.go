package middlewares

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/yeremiapane/delight-cuisine/services"
	"github.com/yeremiapane/delight-cuisine/utils"
)

const (
	ctxUserID = "user_id"
	ctxRole   = "role"
)

// AuthMiddleware rejects requests without a valid bearer access token.
func AuthMiddleware(tokens *utils.TokenManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			utils.RespondErrorKind(c, http.StatusUnauthorized, string(services.KindUnauthorized), errors.New("Authorization header missing"))
			c.Abort()
			return
		}

		if !strings.HasPrefix(authHeader, "Bearer ") {
			utils.RespondErrorKind(c, http.StatusUnauthorized, string(services.KindUnauthorized), errors.New("Authorization header must use the Bearer scheme"))
			c.Abort()
			return
		}

		claims, err := tokens.ParseToken(strings.TrimPrefix(authHeader, "Bearer "), utils.TokenTypeAccess)
		if err != nil {
			utils.RespondErrorKind(c, http.StatusUnauthorized, string(services.KindUnauthorized), errors.New("Invalid or expired token"))
			c.Abort()
			return
		}

		c.Set(ctxUserID, claims.UserID)
		c.Set(ctxRole, claims.Role)
		c.Next()
	}
}

// OptionalAuthMiddleware sets the actor when a valid token is present and
// lets anonymous requests through otherwise.
func OptionalAuthMiddleware(tokens *utils.TokenManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if strings.HasPrefix(authHeader, "Bearer ") {
			claims, err := tokens.ParseToken(strings.TrimPrefix(authHeader, "Bearer "), utils.TokenTypeAccess)
			if err == nil {
				c.Set(ctxUserID, claims.UserID)
				c.Set(ctxRole, claims.Role)
			}
		}
		c.Next()
	}
}

// ActorFromContext returns the caller set by the auth middlewares, or the
// anonymous actor.
func ActorFromContext(c *gin.Context) services.Actor {
	var actor services.Actor
	if id, ok := c.Get(ctxUserID); ok {
		actor.UserID, _ = id.(uint)
	}
	if role, ok := c.Get(ctxRole); ok {
		r, _ := role.(string)
		actor.Role = services.Role(r)
	}
	return actor
}
