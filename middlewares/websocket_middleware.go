package middlewares

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/yeremiapane/delight-cuisine/utils"
)

// WebSocketAuthMiddleware reads the access token from the query string,
// since browsers cannot set headers on websocket upgrades.
func WebSocketAuthMiddleware(tokens *utils.TokenManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := strings.TrimPrefix(c.Query("token"), "Bearer ")
		if token == "" {
			c.AbortWithStatus(401)
			return
		}

		claims, err := tokens.ParseToken(token, utils.TokenTypeAccess)
		if err != nil {
			c.AbortWithStatus(401)
			return
		}

		c.Set(ctxRole, claims.Role)
		c.Set(ctxUserID, claims.UserID)

		c.Next()
	}
}
