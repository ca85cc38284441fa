package middlewares

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yeremiapane/delight-cuisine/services"
	"github.com/yeremiapane/delight-cuisine/utils"
)

// RoleCheck must run after AuthMiddleware. Services check roles again
// before any write; this only short-circuits obvious mismatches.
func RoleCheck(required services.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		actor := ActorFromContext(c)
		if actor.Anonymous() {
			utils.RespondErrorKind(c, http.StatusUnauthorized, string(services.KindUnauthorized), errors.New("unauthorized"))
			c.Abort()
			return
		}

		if err := services.RequireRole(actor, required); err != nil {
			utils.RespondErrorKind(c, http.StatusForbidden, string(services.KindForbidden), err)
			c.Abort()
			return
		}

		c.Next()
	}
}
