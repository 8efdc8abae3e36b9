package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/music-studio/music-studio-api/services"
)

// AdminController serves the dashboard aggregates
type AdminController struct {
	admin  *services.AdminService
	logger zerolog.Logger
}

func NewAdminController(admin *services.AdminService, logger zerolog.Logger) *AdminController {
	return &AdminController{admin: admin, logger: logger}
}

// Stats handles GET /api/admin/stats
func (ac *AdminController) Stats(c *gin.Context) {
	stats, err := ac.admin.DashboardStats()
	if err != nil {
		handleServiceError(c, ac.logger, err, "")
		return
	}
	respond(c, http.StatusOK, stats)
}

// Analytics handles GET /api/admin/analytics
func (ac *AdminController) Analytics(c *gin.Context) {
	analytics, err := ac.admin.Analytics()
	if err != nil {
		handleServiceError(c, ac.logger, err, "")
		return
	}
	respond(c, http.StatusOK, analytics)
}
