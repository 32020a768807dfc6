package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// ActorRoleHeader carries the acting role asserted by the authentication
// layer fronting this service; session mechanics live outside this core.
const ActorRoleHeader = "X-Actor-Role"

// RequireRole aborts requests whose asserted role does not match.
func RequireRole(role string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.GetHeader(ActorRoleHeader) != role {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "insufficient role"})
			return
		}
		c.Next()
	}
}
