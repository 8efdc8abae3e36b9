package services

import (
	"context"
	"errors"
	"fmt"
	"mime/multipart"
	"os"
	"path/filepath"

	"github.com/music-studio/music-studio-api/config"
	"github.com/music-studio/music-studio-api/utils"
)

// StoredFile identifies a saved upload: Key is used to delete it, URL is what clients fetch
type StoredFile struct {
	Key string
	URL string
}

// MediaStorage persists uploaded media files
type MediaStorage interface {
	Save(ctx context.Context, fileHeader *multipart.FileHeader) (StoredFile, error)
	Delete(ctx context.Context, key string) error
}

// NewStorage builds the storage backend selected by STORAGE_BACKEND
func NewStorage(ctx context.Context, cfg *config.Config) (MediaStorage, error) {
	switch cfg.StorageBackend {
	case config.StorageS3:
		return NewS3Storage(ctx, S3Options{
			Region:          cfg.AWSRegion,
			Bucket:          cfg.AWSS3Bucket,
			AccessKeyID:     cfg.AWSAccessKeyID,
			SecretAccessKey: cfg.AWSSecretAccessKey,
		})
	case config.StorageLocal, "":
		return NewLocalStorage(cfg.UploadDir, cfg.PublicBaseURL), nil
	default:
		return nil, fmt.Errorf("unknown storage backend %q", cfg.StorageBackend)
	}
}

// LocalStorage keeps uploads on disk; they are served back under /uploads/
type LocalStorage struct {
	dir     string
	baseURL string
}

func NewLocalStorage(dir, baseURL string) *LocalStorage {
	return &LocalStorage{dir: dir, baseURL: baseURL}
}

// Dir is the directory files are written to
func (s *LocalStorage) Dir() string {
	return s.dir
}

func (s *LocalStorage) Save(ctx context.Context, fileHeader *multipart.FileHeader) (StoredFile, error) {
	name := utils.GenerateFileName(fileHeader.Filename)
	if err := utils.SaveUploadedFile(fileHeader, s.dir, name); err != nil {
		return StoredFile{}, err
	}
	return StoredFile{Key: name, URL: utils.PublicURL(s.baseURL, name)}, nil
}

// Delete removes the file; a file that is already gone is not an error
func (s *LocalStorage) Delete(ctx context.Context, key string) error {
	if key == "" {
		return nil
	}
	if !utils.IsSafeFileName(key) {
		return fmt.Errorf("refusing to delete %q outside the upload directory", key)
	}
	if err := os.Remove(filepath.Join(s.dir, key)); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to delete file: %w", err)
	}
	return nil
}
