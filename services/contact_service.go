package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/music-studio/music-studio-api/metrics"
	"github.com/music-studio/music-studio-api/models"
)

// ContactInput is a contact form submission
type ContactInput struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Message string `json:"message"`
	Service string `json:"service"`
}

// NotificationResult reports what happened to the notification email.
// It is logged, never turned into a failed submission.
type NotificationResult struct {
	Sent bool
	Err  error
}

// ContactService is the inquiry inbox
type ContactService struct {
	db     *gorm.DB
	mailer Mailer
	to     string
	logger zerolog.Logger
}

// NewContactService creates the inbox; notifications go to the address in to
func NewContactService(db *gorm.DB, mailer Mailer, to string, logger zerolog.Logger) *ContactService {
	return &ContactService{db: db, mailer: mailer, to: to, logger: logger}
}

// Submit stores the message, then emails the studio.
// The stored message is kept even when the email fails.
func (s *ContactService) Submit(ctx context.Context, input ContactInput) (*models.ContactMessage, NotificationResult, error) {
	name := strings.TrimSpace(input.Name)
	email := strings.TrimSpace(input.Email)
	message := strings.TrimSpace(input.Message)
	if name == "" || email == "" || message == "" {
		return nil, NotificationResult{}, invalid("Name, email and message are required")
	}
	if strings.ContainsAny(name, "\r\n") || strings.ContainsAny(email, "\r\n") {
		return nil, NotificationResult{}, invalid("Name and email must be a single line")
	}

	service := strings.TrimSpace(input.Service)
	if service == "" {
		service = models.DefaultContactService
	}

	contact := &models.ContactMessage{
		Name:    name,
		Email:   email,
		Message: message,
		Service: service,
	}
	if err := s.db.Create(contact).Error; err != nil {
		return nil, NotificationResult{}, fmt.Errorf("failed to save contact message: %w", err)
	}

	result := s.notify(ctx, contact)
	return contact, result, nil
}

func (s *ContactService) notify(ctx context.Context, contact *models.ContactMessage) NotificationResult {
	err := s.mailer.Send(ctx, Email{
		To:      s.to,
		ReplyTo: contact.Email,
		Subject: "New Inquiry from " + contact.Name,
		Body: fmt.Sprintf("Name: %s\nEmail: %s\nService: %s\n\nMessage:\n%s\n",
			contact.Name, contact.Email, contact.Service, contact.Message),
	})
	if err != nil {
		metrics.IncContactNotification("failed")
		s.logger.Warn().Err(err).Uint("contact_id", contact.ID).Msg("Contact notification email failed")
		return NotificationResult{Err: err}
	}

	metrics.IncContactNotification("sent")
	return NotificationResult{Sent: true}
}

// List returns every message, newest first
func (s *ContactService) List() ([]models.ContactMessage, error) {
	var messages []models.ContactMessage
	if err := s.db.Order("created_at DESC").Order("id DESC").Find(&messages).Error; err != nil {
		return nil, fmt.Errorf("failed to list contact messages: %w", err)
	}
	return messages, nil
}

// Delete removes a message or returns ErrNotFound
func (s *ContactService) Delete(id uint) error {
	result := s.db.Delete(&models.ContactMessage{}, id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete contact message: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
