package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/music-studio/music-studio-api/services"
)

// PackageController exposes the package catalog
type PackageController struct {
	packages *services.PackageService
	logger   zerolog.Logger
}

func NewPackageController(packages *services.PackageService, logger zerolog.Logger) *PackageController {
	return &PackageController{packages: packages, logger: logger}
}

// List handles GET /api/packages?category=&featured=true&popular=true
func (pc *PackageController) List(c *gin.Context) {
	packages, err := pc.packages.List(services.PackageFilter{
		Category: c.Query("category"),
		Featured: c.Query("featured") == "true",
		Popular:  c.Query("popular") == "true",
	})
	if err != nil {
		handleServiceError(c, pc.logger, err, "")
		return
	}
	respond(c, http.StatusOK, packages)
}

// ListByCategory handles GET /api/packages/category/:category
func (pc *PackageController) ListByCategory(c *gin.Context) {
	packages, err := pc.packages.ListByCategory(c.Param("category"))
	if err != nil {
		handleServiceError(c, pc.logger, err, "")
		return
	}
	respond(c, http.StatusOK, packages)
}

// Get handles GET /api/packages/:id
func (pc *PackageController) Get(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	pkg, err := pc.packages.GetByID(id)
	if err != nil {
		handleServiceError(c, pc.logger, err, "Package not found")
		return
	}
	respond(c, http.StatusOK, pkg)
}

// Create handles POST /api/packages
func (pc *PackageController) Create(c *gin.Context) {
	var req services.PackageInput
	if !bindJSON(c, &req) {
		return
	}

	pkg, err := pc.packages.Create(req)
	if err != nil {
		handleServiceError(c, pc.logger, err, "")
		return
	}
	respondWithMessage(c, http.StatusCreated, "Package created successfully", pkg)
}

// Update handles PUT /api/packages/:id
func (pc *PackageController) Update(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req services.PackageInput
	if !bindJSON(c, &req) {
		return
	}

	pkg, err := pc.packages.Update(id, req)
	if err != nil {
		handleServiceError(c, pc.logger, err, "Package not found")
		return
	}
	respondWithMessage(c, http.StatusOK, "Package updated successfully", pkg)
}

// Delete handles DELETE /api/packages/:id
func (pc *PackageController) Delete(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	if err := pc.packages.Delete(id); err != nil {
		handleServiceError(c, pc.logger, err, "Package not found")
		return
	}
	respondWithMessage(c, http.StatusOK, "Package deleted successfully", nil)
}
