package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/music-studio/music-studio-api/services"
)

func respond(c *gin.Context, status int, data interface{}) {
	c.JSON(status, gin.H{
		"success": true,
		"data":    data,
	})
}

func respondWithMessage(c *gin.Context, status int, message string, data interface{}) {
	body := gin.H{
		"success": true,
		"message": message,
	}
	if data != nil {
		body["data"] = data
	}
	c.JSON(status, body)
}

func respondError(c *gin.Context, status int, code, message string) {
	c.JSON(status, gin.H{
		"success": false,
		"error": gin.H{
			"code":    code,
			"message": message,
		},
	})
}

// handleServiceError maps a service error onto the HTTP error taxonomy.
// notFound is the message used for ErrNotFound; anything unrecognised is logged and reported as a 500.
func handleServiceError(c *gin.Context, logger zerolog.Logger, err error, notFound string) {
	var validationErr *services.ValidationError
	switch {
	case errors.As(err, &validationErr):
		code := validationErr.Code
		if code == "" {
			code = "VALIDATION_ERROR"
		}
		respondError(c, http.StatusBadRequest, code, validationErr.Message)
	case errors.Is(err, services.ErrValidation):
		respondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request data")
	case errors.Is(err, services.ErrNotFound):
		respondError(c, http.StatusNotFound, "NOT_FOUND", notFound)
	case errors.Is(err, services.ErrUnauthorized):
		respondError(c, http.StatusUnauthorized, "UNAUTHORIZED", "Not authorized")
	case errors.Is(err, services.ErrForbidden):
		respondError(c, http.StatusForbidden, "FORBIDDEN", "Forbidden")
	case errors.Is(err, services.ErrConflict):
		respondError(c, http.StatusConflict, "CONFLICT", "Resource already exists")
	default:
		logger.Error().Err(err).Str("method", c.Request.Method).Str("path", c.Request.URL.Path).Msg("Request failed")
		_ = c.Error(err)
		respondError(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Something went wrong, please try again later")
	}
}

// parseID reads the :id path parameter; it writes a 400 and returns false when invalid
func parseID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		respondError(c, http.StatusBadRequest, "INVALID_ID", "Invalid ID format")
		return 0, false
	}
	return uint(id), true
}

// bindJSON decodes the request body; it writes a 400 and returns false when malformed
func bindJSON(c *gin.Context, dst interface{}) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "VALIDATION_ERROR",
				"message": "Invalid request data",
				"details": err.Error(),
			},
		})
		return false
	}
	return true
}
