package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/joshua-takyi/eventtickets/internal/models"
	"github.com/joshua-takyi/eventtickets/internal/services"
)

func Login(as *services.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req struct {
			Username string `json:"username" binding:"required"`
			Password string `json:"password" binding:"required"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, "username and password are required")
			return
		}

		res, err := as.Login(c.Request.Context(), req.Username, req.Password)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, models.SuccessResponse(res, "Login successful"))
	}
}

func Verify() gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := claimsFrom(c)
		if !ok {
			c.JSON(http.StatusForbidden, models.ErrorResponse("access token required"))
			return
		}
		c.JSON(http.StatusOK, models.SuccessResponse(gin.H{
			"id":       claims.ID,
			"username": claims.Username,
			"role":     claims.Role,
		}, ""))
	}
}

// Logout only acknowledges; tokens stay valid until they expire.
func Logout() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, models.SuccessResponse(nil, "Logged out"))
	}
}

func ChangePassword(as *services.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := claimsFrom(c)
		if !ok {
			c.JSON(http.StatusForbidden, models.ErrorResponse("access token required"))
			return
		}
		var req struct {
			CurrentPassword string `json:"currentPassword" binding:"required"`
			NewPassword     string `json:"newPassword" binding:"required"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, "currentPassword and newPassword are required")
			return
		}

		if err := as.ChangePassword(c.Request.Context(), claims, req.CurrentPassword, req.NewPassword); err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, models.SuccessResponse(nil, "Password changed successfully"))
	}
}
