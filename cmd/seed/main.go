// Command seed creates the studio admin account and the default package catalog.
// Running it again changes nothing.
package main

import (
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/music-studio/music-studio-api/config"
	"github.com/music-studio/music-studio-api/logging"
	"github.com/music-studio/music-studio-api/models"
)

type adminAccount struct {
	Name     string
	Email    string
	Password string
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	logger := logging.New(cfg.LogLevel, cfg.LogFormat, cfg.GoEnv)

	db, err := config.ConnectDatabase(cfg, logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to connect to database")
	}
	if err := db.AutoMigrate(models.All()...); err != nil {
		logger.Fatal().Err(err).Msg("Failed to migrate database")
	}

	if err := seed(db, adminFromConfig(cfg), logger); err != nil {
		logger.Fatal().Err(err).Msg("Seeding failed")
	}
	logger.Info().Msg("Seeding completed")
}

func adminFromConfig(cfg *config.Config) adminAccount {
	return adminAccount{
		Name:     strings.TrimSpace(cfg.AdminName),
		Email:    cfg.AdminEmail,
		Password: cfg.AdminPassword,
	}
}

func seed(db *gorm.DB, admin adminAccount, logger zerolog.Logger) error {
	if err := seedAdmin(db, admin, logger); err != nil {
		return err
	}
	return seedPackages(db, logger)
}

// seedAdmin creates the admin user unless the email is already taken
func seedAdmin(db *gorm.DB, admin adminAccount, logger zerolog.Logger) error {
	email := strings.ToLower(strings.TrimSpace(admin.Email))

	var existing models.User
	err := db.Where("email = ?", email).First(&existing).Error
	if err == nil {
		logger.Info().Str("email", email).Msg("Admin user already exists")
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("failed to look up admin user: %w", err)
	}

	if admin.Password == "" {
		return errors.New("ADMIN_PASSWORD is required to create the admin user")
	}

	user := &models.User{Name: admin.Name, Email: email, Password: admin.Password, Role: models.RoleAdmin}
	if err := db.Create(user).Error; err != nil {
		return fmt.Errorf("failed to create admin user: %w", err)
	}
	logger.Info().Str("email", email).Uint("user_id", user.ID).Msg("Admin user created")
	return nil
}

// seedPackages fills an empty catalog; a catalog with any package is left alone
func seedPackages(db *gorm.DB, logger zerolog.Logger) error {
	var count int64
	if err := db.Model(&models.Package{}).Count(&count).Error; err != nil {
		return fmt.Errorf("failed to count packages: %w", err)
	}
	if count > 0 {
		logger.Info().Int64("packages", count).Msg("Package catalog already seeded")
		return nil
	}

	packages := defaultPackages()
	if err := db.Create(&packages).Error; err != nil {
		return fmt.Errorf("failed to seed packages: %w", err)
	}
	for _, p := range packages {
		logger.Info().Str("package", p.Name).Float64("price", p.Price).Str("currency", string(p.Currency)).Msg("Package added")
	}
	return nil
}

func defaultPackages() []models.Package {
	return []models.Package{
		{
			Name:     "Basic Recording",
			Price:    15000,
			Currency: models.CurrencyLKR,
			Duration: "2 hours",
			Features: []string{
				"Professional recording session",
				"Basic mixing included",
				"High-quality audio files",
				"Studio engineer support",
				"One revision included",
			},
			Category:    models.CategoryRecording,
			Description: "Perfect for solo artists and beginners looking to record their first tracks professionally.",
		},
		{
			Name:     "Pro Mixing & Mastering",
			Price:    25000,
			Currency: models.CurrencyLKR,
			Duration: "1 track",
			Features: []string{
				"Professional mixing service",
				"Audio mastering included",
				"Unlimited revisions",
				"Stem delivery available",
				"Radio-ready quality",
				"Fast 3-day turnaround",
			},
			Category:    models.CategoryMixing,
			Description: "Transform your raw recordings into polished, professional tracks ready for release.",
			Featured:    true,
			Popular:     true,
		},
		{
			Name:     "Full Production Package",
			Price:    50000,
			Currency: models.CurrencyLKR,
			Duration: "1 song",
			Features: []string{
				"Complete song production",
				"Recording, mixing & mastering",
				"Beat production included",
				"Vocal tuning & editing",
				"Unlimited studio time",
				"Professional arrangement",
				"Distribution ready files",
			},
			Category:    models.CategoryFullProduction,
			Description: "Complete music production from concept to final master. Perfect for serious artists.",
			Featured:    true,
			Popular:     true,
		},
		{
			Name:     "Album Package",
			Price:    200000,
			Currency: models.CurrencyLKR,
			Duration: "10 tracks",
			Features: []string{
				"Full album production",
				"Recording for 10 songs",
				"Professional mixing & mastering",
				"Beat production available",
				"Album artwork consultation",
				"Priority scheduling",
				"Dedicated project manager",
				"Distribution support",
			},
			Category:    models.CategoryOther,
			Description: "Complete album production package with premium support and priority service.",
		},
	}
}
