package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/music-studio/music-studio-api/metrics"
	"github.com/music-studio/music-studio-api/models"
)

const dateLayout = "2006-01-02"

// CreateBookingInput is a public booking submission
type CreateBookingInput struct {
	ClientName  string `json:"clientName"`
	Email       string `json:"email"`
	Phone       string `json:"phone"`
	Date        string `json:"date"`
	TimeSlot    string `json:"timeSlot"`
	PackageID   *uint  `json:"packageId"`
	PackageName string `json:"packageName"`
	Service     string `json:"service"`
	Message     string `json:"message"`
}

// UpdateBookingInput is a partial admin edit. Nil fields are left alone.
type UpdateBookingInput struct {
	ClientName *string `json:"clientName"`
	Email      *string `json:"email"`
	Phone      *string `json:"phone"`
	Date       *string `json:"date"`
	TimeSlot   *string `json:"timeSlot"`
	Service    *string `json:"service"`
	Message    *string `json:"message"`
	Status     *string `json:"status"`
	AdminNotes *string `json:"adminNotes"`
}

// BookingService manages booking requests and their approval workflow:
// pending -> approved, pending -> rejected. Update may overwrite status directly
// without stamping respondedAt.
type BookingService struct {
	db     *gorm.DB
	logger zerolog.Logger
	now    func() time.Time
}

func NewBookingService(db *gorm.DB, logger zerolog.Logger) *BookingService {
	return &BookingService{db: db, logger: logger, now: time.Now}
}

// Create validates and stores a new pending booking.
// Two bookings for the same date and slot are both accepted.
func (s *BookingService) Create(input CreateBookingInput) (*models.Booking, error) {
	clientName := strings.TrimSpace(input.ClientName)
	email := normalizeEmail(input.Email)
	phone := strings.TrimSpace(input.Phone)
	rawDate := strings.TrimSpace(input.Date)
	timeSlot := strings.TrimSpace(input.TimeSlot)
	service := strings.TrimSpace(input.Service)

	if clientName == "" || email == "" || phone == "" || rawDate == "" || timeSlot == "" {
		return nil, invalid("Please provide all required fields")
	}

	hasPackage := input.PackageID != nil && *input.PackageID != 0
	if !hasPackage && service == "" {
		return nil, invalid("Please select a package or service")
	}

	date, err := s.parseDate(rawDate)
	if err != nil {
		return nil, invalid("Invalid booking date")
	}
	if date.Before(startOfDay(s.now())) {
		return nil, invalid("Booking date cannot be in the past")
	}

	booking := &models.Booking{
		ClientName:  clientName,
		Email:       email,
		Phone:       phone,
		Date:        date,
		TimeSlot:    timeSlot,
		PackageName: strings.TrimSpace(input.PackageName),
		Service:     service,
		Message:     strings.TrimSpace(input.Message),
		Status:      models.BookingPending,
	}

	if hasPackage {
		id := *input.PackageID
		booking.PackageID = &id
		if booking.PackageName == "" {
			booking.PackageName = s.packageName(id)
		}
	}

	if err := s.db.Create(booking).Error; err != nil {
		return nil, fmt.Errorf("failed to create booking: %w", err)
	}

	metrics.IncBooking(string(models.BookingPending))
	s.logger.Info().Uint("booking_id", booking.ID).Str("date", date.Format(dateLayout)).Str("time_slot", timeSlot).Msg("Booking created")
	return booking, nil
}

// List returns bookings newest first, optionally limited to one status
func (s *BookingService) List(status string) ([]models.Booking, error) {
	query := s.db.Order("created_at DESC").Order("id DESC")

	if status != "" {
		st := models.BookingStatus(strings.ToLower(strings.TrimSpace(status)))
		if !st.IsValid() {
			return nil, invalid("Invalid status. Must be one of: pending, approved, rejected")
		}
		query = query.Where("status = ?", st)
	}

	var bookings []models.Booking
	if err := query.Find(&bookings).Error; err != nil {
		return nil, fmt.Errorf("failed to list bookings: %w", err)
	}
	return bookings, nil
}

// GetByID returns one booking or ErrNotFound
func (s *BookingService) GetByID(id uint) (*models.Booking, error) {
	var booking models.Booking
	if err := s.db.First(&booking, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to load booking: %w", err)
	}
	return &booking, nil
}

// Approve moves a booking to approved and stamps respondedAt.
// Calling it again re-stamps respondedAt.
func (s *BookingService) Approve(id uint, adminNotes string) (*models.Booking, error) {
	return s.respond(id, models.BookingApproved, adminNotes)
}

// Reject moves a booking to rejected and stamps respondedAt
func (s *BookingService) Reject(id uint, adminNotes string) (*models.Booking, error) {
	return s.respond(id, models.BookingRejected, adminNotes)
}

func (s *BookingService) respond(id uint, status models.BookingStatus, adminNotes string) (*models.Booking, error) {
	booking, err := s.GetByID(id)
	if err != nil {
		return nil, err
	}

	now := s.now()
	booking.Status = status
	booking.RespondedAt = &now
	if notes := strings.TrimSpace(adminNotes); notes != "" {
		booking.AdminNotes = notes
	}

	if err := s.db.Save(booking).Error; err != nil {
		return nil, fmt.Errorf("failed to update booking: %w", err)
	}

	metrics.IncBooking(string(status))
	s.logger.Info().Uint("booking_id", id).Str("status", string(status)).Msg("Booking responded")
	return booking, nil
}

// Update applies the fields present in input. Date and package rules are not re-checked.
func (s *BookingService) Update(id uint, input UpdateBookingInput) (*models.Booking, error) {
	booking, err := s.GetByID(id)
	if err != nil {
		return nil, err
	}

	setString(&booking.ClientName, input.ClientName)
	setString(&booking.Phone, input.Phone)
	setString(&booking.TimeSlot, input.TimeSlot)
	setString(&booking.Service, input.Service)
	if input.Email != nil && strings.TrimSpace(*input.Email) != "" {
		booking.Email = normalizeEmail(*input.Email)
	}
	if input.Date != nil && strings.TrimSpace(*input.Date) != "" {
		date, err := s.parseDate(strings.TrimSpace(*input.Date))
		if err != nil {
			return nil, invalid("Invalid booking date")
		}
		booking.Date = date
	}
	if input.Message != nil {
		booking.Message = strings.TrimSpace(*input.Message)
	}
	if input.AdminNotes != nil {
		booking.AdminNotes = strings.TrimSpace(*input.AdminNotes)
	}
	if input.Status != nil && strings.TrimSpace(*input.Status) != "" {
		status := models.BookingStatus(strings.ToLower(strings.TrimSpace(*input.Status)))
		if !status.IsValid() {
			return nil, invalid("Invalid status. Must be one of: pending, approved, rejected")
		}
		booking.Status = status
	}

	if err := s.db.Save(booking).Error; err != nil {
		return nil, fmt.Errorf("failed to update booking: %w", err)
	}
	return booking, nil
}

// Delete removes a booking or returns ErrNotFound
func (s *BookingService) Delete(id uint) error {
	result := s.db.Delete(&models.Booking{}, id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete booking: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// Stats counts bookings overall and per status
func (s *BookingService) Stats() (*models.BookingStats, error) {
	stats := &models.BookingStats{}

	if err := s.db.Model(&models.Booking{}).Count(&stats.Total).Error; err != nil {
		return nil, fmt.Errorf("failed to count bookings: %w", err)
	}

	counts := map[models.BookingStatus]*int64{
		models.BookingPending:  &stats.Pending,
		models.BookingApproved: &stats.Approved,
		models.BookingRejected: &stats.Rejected,
	}
	for _, status := range models.BookingStatuses {
		if err := s.db.Model(&models.Booking{}).Where("status = ?", status).Count(counts[status]).Error; err != nil {
			return nil, fmt.Errorf("failed to count %s bookings: %w", status, err)
		}
	}

	return stats, nil
}

// packageName looks up the display name to snapshot onto a booking.
// An unknown package leaves the snapshot empty.
func (s *BookingService) packageName(id uint) string {
	var pkg models.Package
	if err := s.db.Select("name").First(&pkg, id).Error; err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			s.logger.Warn().Err(err).Uint("package_id", id).Msg("Failed to look up package for booking")
		}
		return ""
	}
	return pkg.Name
}

// parseDate accepts a calendar date or an RFC 3339 timestamp.
// Calendar dates are read in the clock's local zone.
func (s *BookingService) parseDate(raw string) (time.Time, error) {
	if t, err := time.ParseInLocation(dateLayout, raw, s.now().Location()); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339, raw)
}

func startOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// setString overwrites dst with the trimmed value when one is present and non-blank
func setString(dst *string, src *string) {
	if src == nil {
		return
	}
	if v := strings.TrimSpace(*src); v != "" {
		*dst = v
	}
}
