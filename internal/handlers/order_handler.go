package handlers

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/joshua-takyi/eventtickets/internal/models"
	"github.com/joshua-takyi/eventtickets/internal/services"
)

func CreateOrder(ords *services.OrderService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var in models.CreateOrderInput
		if err := c.ShouldBindJSON(&in); err != nil {
			badRequest(c, "invalid request payload: "+err.Error())
			return
		}
		order, err := ords.CreateOrder(c.Request.Context(), in)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusCreated, models.SuccessResponse(gin.H{
			"orderId": order.ID,
			"order":   order,
		}, "Order created successfully"))
	}
}

func ListOrders(ords *services.OrderService) gin.HandlerFunc {
	return func(c *gin.Context) {
		filter, err := orderFilterFrom(c)
		if err != nil {
			respondError(c, err)
			return
		}

		orders, err := ords.ListOrders(c.Request.Context(), filter)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, models.SuccessResponse(orders, ""))
	}
}

// orderFilterFrom reads the optional status and eventId query parameters.
// Blank values mean no filter.
func orderFilterFrom(c *gin.Context) (models.OrderFilter, error) {
	var filter models.OrderFilter
	if s := strings.TrimSpace(c.Query("status")); s != "" {
		st, err := models.ParseOrderStatus(s)
		if err != nil {
			return filter, err
		}
		filter.Status = &st
	}
	if s := strings.TrimSpace(c.Query("eventId")); s != "" {
		id, err := strconv.ParseInt(s, 10, 64)
		if err != nil || id <= 0 {
			return filter, fmt.Errorf("%w: invalid eventId %q", models.ErrValidation, s)
		}
		filter.EventID = &id
	}
	return filter, nil
}

func GetOrder(ords *services.OrderService) gin.HandlerFunc {
	return func(c *gin.Context) {
		order, err := ords.GetOrder(c.Request.Context(), c.Param("id"))
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, models.SuccessResponse(order, ""))
	}
}

func UpdateOrderStatus(ords *services.OrderService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req struct {
			Status string `json:"status" binding:"required"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, "status is required")
			return
		}
		order, err := ords.SetOrderStatus(c.Request.Context(), c.Param("id"), req.Status)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, models.SuccessResponse(order, "Order status updated"))
	}
}

func CheckInGuest(cs *services.CheckinService) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := claimsFrom(c)
		if !ok {
			c.JSON(http.StatusForbidden, models.ErrorResponse("access token required"))
			return
		}
		checkin, err := cs.CheckInGuest(c.Request.Context(), c.Param("id"), claims.Username)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, models.SuccessResponse(checkin, "Guest checked in"))
	}
}

func GetCheckinStatus(cs *services.CheckinService) gin.HandlerFunc {
	return func(c *gin.Context) {
		status, err := cs.GetCheckinStatus(c.Request.Context(), c.Param("id"))
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, models.SuccessResponse(status, ""))
	}
}
