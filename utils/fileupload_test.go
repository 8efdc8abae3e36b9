package utils

import (
	"bytes"
	"mime/multipart"
	"net/textproto"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// createTestFileHeader creates a multipart.FileHeader for testing
func createTestFileHeader(filename, contentType string, size int64, content []byte) *multipart.FileHeader {
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)

	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", `form-data; name="file"; filename="`+filename+`"`)
	if contentType != "" {
		h.Set("Content-Type", contentType)
	}
	part, _ := writer.CreatePart(h)
	part.Write(content)
	writer.Close()

	reader := multipart.NewReader(body, writer.Boundary())
	form, _ := reader.ReadForm(int64(len(content)) + 1024)

	if len(form.File["file"]) > 0 {
		fileHeader := form.File["file"][0]
		// Override size for testing purposes
		fileHeader.Size = size
		return fileHeader
	}

	return nil
}

func TestValidateMediaFile(t *testing.T) {
	content := []byte("fake media content")

	tests := []struct {
		name        string
		filename    string
		contentType string
		size        int64
		wantCode    string
	}{
		{name: "mp3 audio", filename: "track.mp3", contentType: "audio/mpeg", size: 1024},
		{name: "wav audio", filename: "take.WAV", contentType: "audio/wav", size: 1024},
		{name: "mp4 video", filename: "clip.mp4", contentType: "video/mp4", size: 1024},
		{name: "png image", filename: "cover.png", contentType: "image/png", size: 1024},
		{name: "undeclared type", filename: "track.flac", contentType: "application/octet-stream", size: 1024},
		{name: "exactly the ceiling", filename: "big.mov", contentType: "video/quicktime", size: DefaultMaxUploadSize},
		{name: "over the ceiling", filename: "huge.mp4", contentType: "video/mp4", size: DefaultMaxUploadSize + 1, wantCode: "FILE_TOO_LARGE"},
		{name: "executable", filename: "setup.exe", contentType: "application/octet-stream", size: 1024, wantCode: "INVALID_FILE_TYPE"},
		{name: "no extension", filename: "track", contentType: "audio/mpeg", size: 1024, wantCode: "INVALID_FILE_TYPE"},
		{name: "mismatched mime", filename: "track.mp3", contentType: "text/html", size: 1024, wantCode: "INVALID_FILE_TYPE"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fileHeader := createTestFileHeader(tt.filename, tt.contentType, tt.size, content)
			require.NotNil(t, fileHeader)

			err := ValidateMediaFile(fileHeader, DefaultMaxUploadSize)
			if tt.wantCode == "" {
				assert.NoError(t, err)
				return
			}

			fileErr, ok := err.(*FileUploadError)
			require.True(t, ok, "Error should be of type FileUploadError")
			assert.Equal(t, tt.wantCode, fileErr.Code)
		})
	}
}

func TestValidateMediaFile_CustomCeiling(t *testing.T) {
	fileHeader := createTestFileHeader("track.mp3", "audio/mpeg", 2*1024*1024, []byte("x"))
	require.NotNil(t, fileHeader)

	err := ValidateMediaFile(fileHeader, 1024*1024)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "1 MB")
}

func TestValidateImageFile(t *testing.T) {
	image := createTestFileHeader("thumb.jpg", "image/jpeg", 10, []byte("x"))
	require.NotNil(t, image)
	assert.NoError(t, ValidateImageFile(image, DefaultMaxUploadSize))

	audio := createTestFileHeader("track.mp3", "audio/mpeg", 10, []byte("x"))
	require.NotNil(t, audio)
	assert.Error(t, ValidateImageFile(audio, DefaultMaxUploadSize), "Thumbnails must be images")
}

func TestGenerateFileName(t *testing.T) {
	a := GenerateFileName("My Song.MP3")
	b := GenerateFileName("My Song.MP3")

	assert.NotEqual(t, a, b)
	assert.True(t, strings.HasSuffix(a, ".mp3"))
	assert.True(t, IsSafeFileName(a))
}

func TestIsSafeFileName(t *testing.T) {
	assert.True(t, IsSafeFileName("abc.mp3"))
	assert.False(t, IsSafeFileName(""))
	assert.False(t, IsSafeFileName("../etc/passwd"))
	assert.False(t, IsSafeFileName("nested/file.mp3"))
	assert.False(t, IsSafeFileName(`..\windows`))
}

func TestContentType(t *testing.T) {
	assert.Equal(t, "image/png", ContentType("cover.PNG"))
	assert.Equal(t, "audio/mpeg", ContentType("take.mp3"))
	assert.Equal(t, "application/octet-stream", ContentType("noext"))
}

func TestSaveUploadedFile(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "uploads")
	content := []byte("audio bytes")
	fileHeader := createTestFileHeader("track.mp3", "audio/mpeg", int64(len(content)), content)
	require.NotNil(t, fileHeader)

	require.NoError(t, SaveUploadedFile(fileHeader, dir, "saved.mp3"))

	stored, err := os.ReadFile(filepath.Join(dir, "saved.mp3"))
	require.NoError(t, err)
	assert.Equal(t, content, stored)
}

func TestPublicURL(t *testing.T) {
	assert.Equal(t, "http://localhost:5000/uploads/a.mp3", PublicURL("http://localhost:5000/", "a.mp3"))
	assert.Equal(t, "", PublicURL("http://localhost:5000", ""))
}

func TestFileUploadError_Error(t *testing.T) {
	err := &FileUploadError{
		Code:    "TEST_CODE",
		Message: "Test error message",
	}

	assert.Equal(t, "Test error message", err.Error())
}
