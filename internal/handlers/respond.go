package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/joshua-takyi/eventtickets/internal/helpers"
	"github.com/joshua-takyi/eventtickets/internal/models"
)

// statusFor maps a service error to its HTTP status. A repeated check-in is
// reported as 400.
func statusFor(err error) int {
	switch {
	case errors.Is(err, models.ErrValidation), errors.Is(err, models.ErrConflict):
		return http.StatusBadRequest
	case errors.Is(err, models.ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, models.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, models.ErrNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

func respondError(c *gin.Context, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		resp := models.ErrorResponse("internal server error")
		resp.RequestID = c.GetString("request_id")
		c.JSON(status, resp)
		return
	}
	c.JSON(status, models.ErrorResponse(clientMessage(err)))
}

// clientMessage drops the sentinel prefix, "not found: event 5" becomes
// "event 5".
func clientMessage(err error) string {
	msg := err.Error()
	for _, s := range []error{
		models.ErrValidation, models.ErrNotFound, models.ErrUnauthorized,
		models.ErrForbidden, models.ErrConflict,
	} {
		if rest, ok := strings.CutPrefix(msg, s.Error()+": "); ok {
			return rest
		}
	}
	return msg
}

func badRequest(c *gin.Context, msg string) {
	c.JSON(http.StatusBadRequest, models.ErrorResponse(msg))
}

func claimsFrom(c *gin.Context) (*helpers.Claims, bool) {
	v, ok := c.Get("user")
	if !ok {
		return nil, false
	}
	claims, ok := v.(*helpers.Claims)
	return claims, ok
}

func idParam(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		badRequest(c, "invalid id")
		return 0, false
	}
	return id, true
}
