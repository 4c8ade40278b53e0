package middleware

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/joshua-takyi/eventtickets/internal/helpers"
	"github.com/joshua-takyi/eventtickets/internal/models"
)

type TokenAuthenticator interface {
	Authenticate(token string) (*helpers.Claims, error)
}

// AuthMiddleware requires a valid bearer token and stores its claims under
// "user". A missing token and a bad token both answer 403.
func AuthMiddleware(auth TokenAuthenticator, logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := helpers.BearerToken(c.GetHeader("Authorization"))
		if !ok {
			c.AbortWithStatusJSON(http.StatusForbidden, models.ErrorResponse("access token required"))
			return
		}

		claims, err := auth.Authenticate(token)
		if err != nil {
			logger.Debug("token rejected",
				"request_id", c.GetString("request_id"),
				"error", err,
			)
			c.AbortWithStatusJSON(http.StatusForbidden, models.ErrorResponse("invalid or expired token"))
			return
		}

		c.Set("user", claims)
		c.Next()
	}
}

// RequireRole lets the request through when the caller has one of roles.
// Admins always pass.
func RequireRole(roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		v, ok := c.Get("user")
		claims, isClaims := v.(*helpers.Claims)
		if !ok || !isClaims {
			c.AbortWithStatusJSON(http.StatusForbidden, models.ErrorResponse("access token required"))
			return
		}
		if !claims.HasAnyRole(roles...) {
			c.AbortWithStatusJSON(http.StatusForbidden, models.ErrorResponse("insufficient permissions"))
			return
		}
		c.Next()
	}
}
