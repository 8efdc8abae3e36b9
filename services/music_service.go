package services

import (
	"context"
	"errors"
	"fmt"
	"mime/multipart"
	"strings"

	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/music-studio/music-studio-api/models"
	"github.com/music-studio/music-studio-api/utils"
)

// UploadMusicInput is the metadata sent alongside an uploaded media file
type UploadMusicInput struct {
	Title       string
	Description string
	Category    string
	Artist      string
}

// UpdateMusicInput is a partial metadata edit
type UpdateMusicInput struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
}

// MusicService is the media store: metadata in the database, files in MediaStorage
type MusicService struct {
	db             *gorm.DB
	storage        MediaStorage
	maxUploadBytes int64
	logger         zerolog.Logger
}

func NewMusicService(db *gorm.DB, storage MediaStorage, maxUploadBytes int64, logger zerolog.Logger) *MusicService {
	return &MusicService{db: db, storage: storage, maxUploadBytes: maxUploadBytes, logger: logger}
}

// List returns media newest first, optionally limited to one category
func (s *MusicService) List(category string) ([]models.Music, error) {
	query := s.db.Order("created_at DESC").Order("id DESC")
	if category = strings.TrimSpace(category); category != "" {
		query = query.Where("category = ?", strings.ToLower(category))
	}

	var music []models.Music
	if err := query.Find(&music).Error; err != nil {
		return nil, fmt.Errorf("failed to list music: %w", err)
	}
	return music, nil
}

// Search does a case-insensitive substring match on title or artist
func (s *MusicService) Search(keyword string) ([]models.Music, error) {
	keyword = strings.TrimSpace(keyword)
	if keyword == "" {
		return nil, invalid("Keyword is required")
	}

	pattern := "%" + escapeLike(strings.ToLower(keyword)) + "%"
	var music []models.Music
	err := s.db.
		Where(`LOWER(title) LIKE ? ESCAPE '\' OR LOWER(artist) LIKE ? ESCAPE '\'`, pattern, pattern).
		Order("created_at DESC").Order("id DESC").
		Find(&music).Error
	if err != nil {
		return nil, fmt.Errorf("failed to search music: %w", err)
	}
	return music, nil
}

func (s *MusicService) GetByID(id uint) (*models.Music, error) {
	var music models.Music
	if err := s.db.First(&music, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to load music: %w", err)
	}
	return &music, nil
}

// IncrementView adds one view and returns the new count. Repeat views all count.
func (s *MusicService) IncrementView(id uint) (int64, error) {
	var views int64
	err := s.db.Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&models.Music{}).Where("id = ?", id).UpdateColumn("views", gorm.Expr("views + ?", 1))
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrNotFound
		}
		return tx.Model(&models.Music{}).Where("id = ?", id).Pluck("views", &views).Error
	})
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return 0, err
		}
		return 0, fmt.Errorf("failed to count view: %w", err)
	}
	return views, nil
}

// Upload validates the file before anything is written, stores it, then records its metadata
func (s *MusicService) Upload(ctx context.Context, input UploadMusicInput, file *multipart.FileHeader) (*models.Music, error) {
	if file == nil {
		return nil, invalid("No file uploaded")
	}

	title := strings.TrimSpace(input.Title)
	description := strings.TrimSpace(input.Description)
	category := models.MediaCategory(strings.ToLower(strings.TrimSpace(input.Category)))
	if title == "" || description == "" {
		return nil, invalid("Title and description are required")
	}
	if !category.IsValid() {
		return nil, invalid("Category must be one of: audio, video")
	}
	if err := utils.ValidateMediaFile(file, s.maxUploadBytes); err != nil {
		return nil, uploadError(err)
	}

	artist := strings.TrimSpace(input.Artist)
	if artist == "" {
		artist = models.DefaultArtist
	}

	stored, err := s.storage.Save(ctx, file)
	if err != nil {
		return nil, fmt.Errorf("failed to store upload: %w", err)
	}

	music := &models.Music{
		Title:       title,
		Description: description,
		Category:    category,
		FileURL:     stored.URL,
		FileKey:     stored.Key,
		Artist:      artist,
	}
	if err := s.db.Create(music).Error; err != nil {
		s.removeFile(ctx, stored.Key)
		return nil, fmt.Errorf("failed to save music: %w", err)
	}

	s.logger.Info().Uint("music_id", music.ID).Str("category", string(category)).Int64("bytes", file.Size).Msg("Media uploaded")
	return music, nil
}

// Update edits title and description and optionally replaces the thumbnail
func (s *MusicService) Update(ctx context.Context, id uint, input UpdateMusicInput, thumbnail *multipart.FileHeader) (*models.Music, error) {
	music, err := s.GetByID(id)
	if err != nil {
		return nil, err
	}

	setString(&music.Title, input.Title)
	setString(&music.Description, input.Description)

	var oldThumbnail string
	if thumbnail != nil {
		if err := utils.ValidateImageFile(thumbnail, s.maxUploadBytes); err != nil {
			return nil, uploadError(err)
		}
		stored, err := s.storage.Save(ctx, thumbnail)
		if err != nil {
			return nil, fmt.Errorf("failed to store thumbnail: %w", err)
		}
		oldThumbnail = music.ThumbnailKey
		music.ThumbnailURL = stored.URL
		music.ThumbnailKey = stored.Key
	}

	if err := s.db.Save(music).Error; err != nil {
		return nil, fmt.Errorf("failed to update music: %w", err)
	}

	s.removeFile(ctx, oldThumbnail)
	return music, nil
}

// Delete removes the record and its stored files
func (s *MusicService) Delete(ctx context.Context, id uint) error {
	music, err := s.GetByID(id)
	if err != nil {
		return err
	}

	if err := s.db.Delete(music).Error; err != nil {
		return fmt.Errorf("failed to delete music: %w", err)
	}

	s.removeFile(ctx, music.FileKey)
	s.removeFile(ctx, music.ThumbnailKey)
	return nil
}

// removeFile deletes a stored file; failures leave an orphan and are only logged
func (s *MusicService) removeFile(ctx context.Context, key string) {
	if key == "" {
		return
	}
	if err := s.storage.Delete(ctx, key); err != nil {
		s.logger.Warn().Err(err).Str("key", key).Msg("Failed to remove stored file")
	}
}

func uploadError(err error) error {
	var fileErr *utils.FileUploadError
	if errors.As(err, &fileErr) {
		return &ValidationError{Code: fileErr.Code, Message: fileErr.Message}
	}
	return err
}

func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}
