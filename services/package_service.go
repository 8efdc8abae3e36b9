package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/music-studio/music-studio-api/models"
)

// PackageInput carries package fields; nil means "not provided"
type PackageInput struct {
	Name        *string   `json:"name"`
	Price       *float64  `json:"price"`
	Currency    *string   `json:"currency"`
	Duration    *string   `json:"duration"`
	Features    *[]string `json:"features"`
	Category    *string   `json:"category"`
	Description *string   `json:"description"`
	Featured    *bool     `json:"featured"`
	Popular     *bool     `json:"popular"`
}

// PackageFilter narrows the public package list
type PackageFilter struct {
	Category string
	Featured bool
	Popular  bool
}

// PackageService is the catalog of service offerings
type PackageService struct {
	db     *gorm.DB
	logger zerolog.Logger
}

func NewPackageService(db *gorm.DB, logger zerolog.Logger) *PackageService {
	return &PackageService{db: db, logger: logger}
}

// List returns packages ordered featured first, then popular, then cheapest
func (s *PackageService) List(filter PackageFilter) ([]models.Package, error) {
	query := s.db.Order("featured DESC").Order("popular DESC").Order("price ASC").Order("id ASC")
	if filter.Category != "" {
		query = query.Where("category = ?", filter.Category)
	}
	if filter.Featured {
		query = query.Where("featured = ?", true)
	}
	if filter.Popular {
		query = query.Where("popular = ?", true)
	}

	var packages []models.Package
	if err := query.Find(&packages).Error; err != nil {
		return nil, fmt.Errorf("failed to list packages: %w", err)
	}
	return packages, nil
}

// ListByCategory returns one category ordered featured first, then cheapest
func (s *PackageService) ListByCategory(category string) ([]models.Package, error) {
	var packages []models.Package
	err := s.db.Where("category = ?", category).
		Order("featured DESC").Order("price ASC").Order("id ASC").
		Find(&packages).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list packages: %w", err)
	}
	return packages, nil
}

func (s *PackageService) GetByID(id uint) (*models.Package, error) {
	var pkg models.Package
	if err := s.db.First(&pkg, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to load package: %w", err)
	}
	return &pkg, nil
}

// Create validates and stores a package. Currency defaults to LKR.
func (s *PackageService) Create(input PackageInput) (*models.Package, error) {
	if blank(input.Name) || input.Price == nil || blank(input.Duration) || input.Features == nil || blank(input.Category) {
		return nil, invalid("Missing required fields")
	}

	pkg := &models.Package{Currency: models.DefaultCurrency}
	if err := applyPackageInput(pkg, input); err != nil {
		return nil, err
	}

	if err := s.db.Create(pkg).Error; err != nil {
		return nil, fmt.Errorf("failed to create package: %w", err)
	}
	s.logger.Info().Uint("package_id", pkg.ID).Str("name", pkg.Name).Msg("Package created")
	return pkg, nil
}

// Update applies the provided fields, validating each one it sets
func (s *PackageService) Update(id uint, input PackageInput) (*models.Package, error) {
	pkg, err := s.GetByID(id)
	if err != nil {
		return nil, err
	}
	if err := applyPackageInput(pkg, input); err != nil {
		return nil, err
	}
	if err := s.db.Save(pkg).Error; err != nil {
		return nil, fmt.Errorf("failed to update package: %w", err)
	}
	return pkg, nil
}

func (s *PackageService) Delete(id uint) error {
	result := s.db.Delete(&models.Package{}, id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete package: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func applyPackageInput(pkg *models.Package, input PackageInput) error {
	setString(&pkg.Name, input.Name)
	setString(&pkg.Duration, input.Duration)

	if input.Price != nil {
		if *input.Price < 0 {
			return invalid("Price cannot be negative")
		}
		pkg.Price = *input.Price
	}
	if input.Currency != nil && strings.TrimSpace(*input.Currency) != "" {
		currency := models.Currency(strings.ToUpper(strings.TrimSpace(*input.Currency)))
		if !currency.IsValid() {
			return invalid("Currency must be one of: LKR, USD")
		}
		pkg.Currency = currency
	}
	if input.Features != nil {
		features := make([]string, 0, len(*input.Features))
		for _, f := range *input.Features {
			if f = strings.TrimSpace(f); f != "" {
				features = append(features, f)
			}
		}
		if len(features) == 0 {
			return invalid("Features must be a non-empty array")
		}
		pkg.Features = features
	}
	if input.Category != nil && strings.TrimSpace(*input.Category) != "" {
		category := models.PackageCategory(strings.TrimSpace(*input.Category))
		if !category.IsValid() {
			return invalid("Category must be one of: Recording, Mixing, Mastering, Full Production, Other")
		}
		pkg.Category = category
	}
	if input.Description != nil {
		pkg.Description = strings.TrimSpace(*input.Description)
	}
	if input.Featured != nil {
		pkg.Featured = *input.Featured
	}
	if input.Popular != nil {
		pkg.Popular = *input.Popular
	}
	return nil
}

func blank(s *string) bool {
	return s == nil || strings.TrimSpace(*s) == ""
}
