package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/music-studio/music-studio-api/services"
)

// TestimonialController exposes testimonials and their moderation
type TestimonialController struct {
	testimonials *services.TestimonialService
	logger       zerolog.Logger
}

func NewTestimonialController(testimonials *services.TestimonialService, logger zerolog.Logger) *TestimonialController {
	return &TestimonialController{testimonials: testimonials, logger: logger}
}

// List handles GET /api/testimonials?featured=true - approved only
func (tc *TestimonialController) List(c *gin.Context) {
	testimonials, err := tc.testimonials.ListApproved(c.Query("featured") == "true")
	if err != nil {
		handleServiceError(c, tc.logger, err, "")
		return
	}
	respond(c, http.StatusOK, testimonials)
}

// ListAll handles GET /api/testimonials/admin/all
func (tc *TestimonialController) ListAll(c *gin.Context) {
	testimonials, err := tc.testimonials.ListAll()
	if err != nil {
		handleServiceError(c, tc.logger, err, "")
		return
	}
	respond(c, http.StatusOK, testimonials)
}

// Get handles GET /api/testimonials/:id
func (tc *TestimonialController) Get(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	testimonial, err := tc.testimonials.GetByID(id)
	if err != nil {
		handleServiceError(c, tc.logger, err, "Testimonial not found")
		return
	}
	respond(c, http.StatusOK, testimonial)
}

// Create handles POST /api/testimonials
func (tc *TestimonialController) Create(c *gin.Context) {
	var req services.TestimonialInput
	if !bindJSON(c, &req) {
		return
	}

	testimonial, err := tc.testimonials.Create(req)
	if err != nil {
		handleServiceError(c, tc.logger, err, "")
		return
	}
	respondWithMessage(c, http.StatusCreated, "Testimonial created successfully", testimonial)
}

// Update handles PUT /api/testimonials/:id
func (tc *TestimonialController) Update(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req services.TestimonialInput
	if !bindJSON(c, &req) {
		return
	}

	testimonial, err := tc.testimonials.Update(id, req)
	if err != nil {
		handleServiceError(c, tc.logger, err, "Testimonial not found")
		return
	}
	respondWithMessage(c, http.StatusOK, "Testimonial updated successfully", testimonial)
}

// Delete handles DELETE /api/testimonials/:id
func (tc *TestimonialController) Delete(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	if err := tc.testimonials.Delete(id); err != nil {
		handleServiceError(c, tc.logger, err, "Testimonial not found")
		return
	}
	respondWithMessage(c, http.StatusOK, "Testimonial deleted successfully", nil)
}
