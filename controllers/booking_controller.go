package controllers

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/music-studio/music-studio-api/models"
	"github.com/music-studio/music-studio-api/services"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// RespondBookingRequest is the optional body of approve and reject
type RespondBookingRequest struct {
	AdminNotes string `json:"adminNotes"`
}

// BookingController exposes the booking lifecycle
type BookingController struct {
	bookings *services.BookingService
	exporter *services.BookingExporter
	logger   zerolog.Logger
}

func NewBookingController(bookings *services.BookingService, exporter *services.BookingExporter, logger zerolog.Logger) *BookingController {
	return &BookingController{bookings: bookings, exporter: exporter, logger: logger}
}

// Create handles POST /api/bookings - public booking submission
func (bc *BookingController) Create(c *gin.Context) {
	var req services.CreateBookingInput
	if !bindJSON(c, &req) {
		return
	}

	booking, err := bc.bookings.Create(req)
	if err != nil {
		handleServiceError(c, bc.logger, err, "")
		return
	}

	respondWithMessage(c, http.StatusCreated, "Booking request submitted successfully! We will contact you soon.", booking)
}

// List handles GET /api/bookings?status=
func (bc *BookingController) List(c *gin.Context) {
	bookings, err := bc.bookings.List(c.Query("status"))
	if err != nil {
		handleServiceError(c, bc.logger, err, "")
		return
	}
	respond(c, http.StatusOK, bookings)
}

// Stats handles GET /api/bookings/stats
func (bc *BookingController) Stats(c *gin.Context) {
	stats, err := bc.bookings.Stats()
	if err != nil {
		handleServiceError(c, bc.logger, err, "")
		return
	}
	respond(c, http.StatusOK, stats)
}

// Get handles GET /api/bookings/:id
func (bc *BookingController) Get(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	booking, err := bc.bookings.GetByID(id)
	if err != nil {
		handleServiceError(c, bc.logger, err, "Booking not found")
		return
	}
	respond(c, http.StatusOK, booking)
}

// Approve handles PUT /api/bookings/:id/approve
func (bc *BookingController) Approve(c *gin.Context) {
	bc.respondTo(c, bc.bookings.Approve, "Booking approved successfully")
}

// Reject handles PUT /api/bookings/:id/reject
func (bc *BookingController) Reject(c *gin.Context) {
	bc.respondTo(c, bc.bookings.Reject, "Booking rejected")
}

func (bc *BookingController) respondTo(c *gin.Context, transition func(uint, string) (*models.Booking, error), message string) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	// the body is optional; an empty one just means no notes
	var req RespondBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		respondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request data")
		return
	}

	booking, err := transition(id, req.AdminNotes)
	if err != nil {
		handleServiceError(c, bc.logger, err, "Booking not found")
		return
	}
	respondWithMessage(c, http.StatusOK, message, booking)
}

// Update handles PUT /api/bookings/:id - partial admin edit
func (bc *BookingController) Update(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req services.UpdateBookingInput
	if !bindJSON(c, &req) {
		return
	}

	booking, err := bc.bookings.Update(id, req)
	if err != nil {
		handleServiceError(c, bc.logger, err, "Booking not found")
		return
	}
	respondWithMessage(c, http.StatusOK, "Booking updated successfully", booking)
}

// Delete handles DELETE /api/bookings/:id
func (bc *BookingController) Delete(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	if err := bc.bookings.Delete(id); err != nil {
		handleServiceError(c, bc.logger, err, "Booking not found")
		return
	}
	respondWithMessage(c, http.StatusOK, "Booking deleted successfully", nil)
}

// Export handles GET /api/bookings/export?status= - xlsx download
func (bc *BookingController) Export(c *gin.Context) {
	status := c.Query("status")
	buf, err := bc.exporter.Export(status)
	if err != nil {
		handleServiceError(c, bc.logger, err, "")
		return
	}

	name := "bookings_" + time.Now().Format("2006-01-02")
	if status != "" {
		name += "_" + status
	}
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s.xlsx"`, name))
	c.Data(http.StatusOK, xlsxContentType, buf.Bytes())
}
