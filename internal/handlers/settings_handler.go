package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/joshua-takyi/eventtickets/internal/models"
	"github.com/joshua-takyi/eventtickets/internal/services"
)

func GetPublicSettings(ss *services.SettingsService) gin.HandlerFunc {
	return func(c *gin.Context) {
		settings, err := ss.Public(c.Request.Context())
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, models.SuccessResponse(settings, ""))
	}
}

func GetAdminSettings(ss *services.SettingsService) gin.HandlerFunc {
	return func(c *gin.Context) {
		settings, err := ss.Admin(c.Request.Context())
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, models.SuccessResponse(settings, ""))
	}
}

func GetBankDetails(ss *services.SettingsService) gin.HandlerFunc {
	return func(c *gin.Context) {
		bank, err := ss.Bank(c.Request.Context())
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, models.SuccessResponse(bank, ""))
	}
}

func UpdateSettings(ss *services.SettingsService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var values map[string]string
		if err := c.ShouldBindJSON(&values); err != nil {
			badRequest(c, "settings must be an object of string values")
			return
		}
		settings, err := ss.Update(c.Request.Context(), values)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, models.SuccessResponse(settings, "Settings updated successfully"))
	}
}
