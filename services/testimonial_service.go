package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/music-studio/music-studio-api/models"
)

// TestimonialInput carries testimonial fields; nil means "not provided"
type TestimonialInput struct {
	ClientName *string `json:"clientName"`
	Photo      *string `json:"photo"`
	Review     *string `json:"review"`
	Rating     *int    `json:"rating"`
	Service    *string `json:"service"`
	Featured   *bool   `json:"featured"`
	Approved   *bool   `json:"approved"`
}

// TestimonialService stores client reviews and their moderation flags.
// New testimonials are approved unless the admin says otherwise.
type TestimonialService struct {
	db     *gorm.DB
	logger zerolog.Logger
	now    func() time.Time
}

func NewTestimonialService(db *gorm.DB, logger zerolog.Logger) *TestimonialService {
	return &TestimonialService{db: db, logger: logger, now: time.Now}
}

// ListApproved is the public list: approved only, featured first, best rated, newest
func (s *TestimonialService) ListApproved(featuredOnly bool) ([]models.Testimonial, error) {
	query := s.db.Where("approved = ?", true).
		Order("featured DESC").Order("rating DESC").Order("date DESC").Order("id DESC")
	if featuredOnly {
		query = query.Where("featured = ?", true)
	}

	var testimonials []models.Testimonial
	if err := query.Find(&testimonials).Error; err != nil {
		return nil, fmt.Errorf("failed to list testimonials: %w", err)
	}
	return testimonials, nil
}

// ListAll is the admin list, newest first
func (s *TestimonialService) ListAll() ([]models.Testimonial, error) {
	var testimonials []models.Testimonial
	if err := s.db.Order("created_at DESC").Order("id DESC").Find(&testimonials).Error; err != nil {
		return nil, fmt.Errorf("failed to list testimonials: %w", err)
	}
	return testimonials, nil
}

func (s *TestimonialService) GetByID(id uint) (*models.Testimonial, error) {
	var testimonial models.Testimonial
	if err := s.db.First(&testimonial, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to load testimonial: %w", err)
	}
	return &testimonial, nil
}

func (s *TestimonialService) Create(input TestimonialInput) (*models.Testimonial, error) {
	if blank(input.ClientName) || blank(input.Review) || input.Rating == nil {
		return nil, invalid("Client name, review, and rating are required")
	}

	testimonial := &models.Testimonial{
		Date:     s.now(),
		Approved: true,
	}
	if err := applyTestimonialInput(testimonial, input); err != nil {
		return nil, err
	}

	if err := s.db.Create(testimonial).Error; err != nil {
		return nil, fmt.Errorf("failed to create testimonial: %w", err)
	}
	return testimonial, nil
}

// Update applies the provided fields; a new rating is range-checked
func (s *TestimonialService) Update(id uint, input TestimonialInput) (*models.Testimonial, error) {
	testimonial, err := s.GetByID(id)
	if err != nil {
		return nil, err
	}
	if err := applyTestimonialInput(testimonial, input); err != nil {
		return nil, err
	}
	if err := s.db.Save(testimonial).Error; err != nil {
		return nil, fmt.Errorf("failed to update testimonial: %w", err)
	}
	return testimonial, nil
}

func (s *TestimonialService) Delete(id uint) error {
	result := s.db.Delete(&models.Testimonial{}, id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete testimonial: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func applyTestimonialInput(t *models.Testimonial, input TestimonialInput) error {
	if input.Rating != nil {
		if *input.Rating < models.MinRating || *input.Rating > models.MaxRating {
			return invalid("Rating must be between 1 and 5")
		}
		t.Rating = *input.Rating
	}
	setString(&t.ClientName, input.ClientName)
	setString(&t.Review, input.Review)
	if input.Photo != nil {
		t.Photo = strings.TrimSpace(*input.Photo)
	}
	if input.Service != nil {
		t.Service = strings.TrimSpace(*input.Service)
	}
	if input.Featured != nil {
		t.Featured = *input.Featured
	}
	if input.Approved != nil {
		t.Approved = *input.Approved
	}
	return nil
}
