package utils

import (
	"fmt"
	"io"
	"mime"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// DefaultMaxUploadSize is 100MB in bytes
const DefaultMaxUploadSize = 100 * 1024 * 1024

// mediaTypes maps every accepted extension to the MIME family it must be declared as
var mediaTypes = map[string]string{
	".mp3":  "audio/",
	".wav":  "audio/",
	".flac": "audio/",
	".aac":  "audio/",
	".mp4":  "video/",
	".mkv":  "video/",
	".avi":  "video/",
	".mov":  "video/",
	".jpg":  "image/",
	".jpeg": "image/",
	".png":  "image/",
	".gif":  "image/",
	".webp": "image/",
}

// contentTypes covers the accepted extensions the mime package may not know about
var contentTypes = map[string]string{
	".mp3":  "audio/mpeg",
	".wav":  "audio/wav",
	".flac": "audio/flac",
	".aac":  "audio/aac",
	".mp4":  "video/mp4",
	".mkv":  "video/x-matroska",
	".avi":  "video/x-msvideo",
	".mov":  "video/quicktime",
}

// FileUploadError represents a file upload validation error
type FileUploadError struct {
	Code    string
	Message string
}

func (e *FileUploadError) Error() string {
	return e.Message
}

// ValidateMediaFile checks an upload against the size ceiling and the audio/video/image allowlist
func ValidateMediaFile(fileHeader *multipart.FileHeader, maxBytes int64) error {
	return validate(fileHeader, maxBytes, "")
}

// ValidateImageFile is ValidateMediaFile restricted to images (thumbnails)
func ValidateImageFile(fileHeader *multipart.FileHeader, maxBytes int64) error {
	return validate(fileHeader, maxBytes, "image/")
}

func validate(fileHeader *multipart.FileHeader, maxBytes int64, family string) error {
	if maxBytes <= 0 {
		maxBytes = DefaultMaxUploadSize
	}
	if fileHeader.Size > maxBytes {
		return &FileUploadError{
			Code:    "FILE_TOO_LARGE",
			Message: fmt.Sprintf("File size exceeds maximum allowed size of %d MB", maxBytes/(1024*1024)),
		}
	}

	ext := strings.ToLower(filepath.Ext(fileHeader.Filename))
	want, ok := mediaTypes[ext]
	if !ok || (family != "" && want != family) {
		return &FileUploadError{
			Code:    "INVALID_FILE_TYPE",
			Message: "Invalid file type. Only audio, video and image files are allowed",
		}
	}

	// clients that cannot tell send application/octet-stream or nothing
	declared := strings.ToLower(fileHeader.Header.Get("Content-Type"))
	if declared != "" && declared != "application/octet-stream" && !strings.HasPrefix(declared, want) {
		return &FileUploadError{
			Code:    "INVALID_FILE_TYPE",
			Message: fmt.Sprintf("File content type %q does not match extension %s", declared, ext),
		}
	}

	return nil
}

// GenerateFileName returns a collision-free name that keeps the original extension
func GenerateFileName(original string) string {
	return uuid.NewString() + strings.ToLower(filepath.Ext(original))
}

// ContentType returns the MIME type to serve a stored file with
func ContentType(filename string) string {
	ext := strings.ToLower(filepath.Ext(filename))
	if ct, ok := contentTypes[ext]; ok {
		return ct
	}
	if ct := mime.TypeByExtension(ext); ct != "" {
		return ct
	}
	return "application/octet-stream"
}

// IsSafeFileName rejects names that could escape the upload directory
func IsSafeFileName(filename string) bool {
	if filename == "" || filename == "." {
		return false
	}
	return !strings.Contains(filename, "..") && !strings.ContainsAny(filename, `/\`)
}

// SaveUploadedFile writes the uploaded file into uploadDir under filename
func SaveUploadedFile(fileHeader *multipart.FileHeader, uploadDir, filename string) (err error) {
	if err := os.MkdirAll(uploadDir, 0755); err != nil {
		return fmt.Errorf("failed to create upload directory: %w", err)
	}

	src, err := fileHeader.Open()
	if err != nil {
		return fmt.Errorf("failed to open uploaded file: %w", err)
	}
	defer src.Close()

	dst, err := os.Create(filepath.Join(uploadDir, filename))
	if err != nil {
		return fmt.Errorf("failed to create destination file: %w", err)
	}
	defer func() {
		if closeErr := dst.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("failed to close destination file: %w", closeErr)
		}
	}()

	if _, err := io.Copy(dst, src); err != nil {
		return fmt.Errorf("failed to save file: %w", err)
	}

	return nil
}

// PublicURL joins the public base URL with the path uploads are served from
func PublicURL(baseURL, filename string) string {
	if filename == "" {
		return ""
	}
	return strings.TrimRight(baseURL, "/") + "/uploads/" + filename
}
