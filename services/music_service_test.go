package services

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/music-studio/music-studio-api/models"
	"github.com/music-studio/music-studio-api/tests/testutil"
	"github.com/music-studio/music-studio-api/utils"
)

func newTestMusicService(t *testing.T) (*MusicService, *MockStorage, *gorm.DB) {
	t.Helper()
	db := testutil.NewTestDB(t)
	storage := NewMockStorage()
	return NewMusicService(db, storage, utils.DefaultMaxUploadSize, zerolog.Nop()), storage, db
}

func seedMusic(t *testing.T, db *gorm.DB, title, artist string, category models.MediaCategory, views int64) *models.Music {
	t.Helper()
	music := &models.Music{Title: title, Description: "d", Category: category, FileURL: "http://x/" + title, FileKey: title, Artist: artist, Views: views}
	require.NoError(t, db.Create(music).Error)
	return music
}

func TestUploadMusic(t *testing.T) {
	svc, storage, _ := newTestMusicService(t)

	file := newFileHeader(t, "file", "beat.mp3", "audio/mpeg", []byte("audio"))
	music, err := svc.Upload(context.Background(), UploadMusicInput{Title: "Beat", Description: "A beat", Category: "audio"}, file)
	require.NoError(t, err)

	assert.NotZero(t, music.ID)
	assert.Equal(t, models.DefaultArtist, music.Artist, "Artist should default to the placeholder")
	assert.Equal(t, int64(0), music.Views)
	assert.NotEmpty(t, music.FileURL)
	assert.True(t, storage.FileExists(music.FileKey))
}

func TestUploadMusicRejectsBeforeWriting(t *testing.T) {
	svc, storage, db := newTestMusicService(t)

	tests := []struct {
		name     string
		input    UploadMusicInput
		filename string
		mime     string
		size     int64
	}{
		{name: "missing title", input: UploadMusicInput{Description: "d", Category: "audio"}, filename: "a.mp3", mime: "audio/mpeg"},
		{name: "bad category", input: UploadMusicInput{Title: "t", Description: "d", Category: "podcast"}, filename: "a.mp3", mime: "audio/mpeg"},
		{name: "bad extension", input: UploadMusicInput{Title: "t", Description: "d", Category: "audio"}, filename: "a.exe", mime: "application/octet-stream"},
		{name: "oversized", input: UploadMusicInput{Title: "t", Description: "d", Category: "video"}, filename: "a.mp4", mime: "video/mp4", size: utils.DefaultMaxUploadSize + 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			file := newFileHeader(t, "file", tt.filename, tt.mime, []byte("data"))
			if tt.size > 0 {
				file.Size = tt.size
			}

			_, err := svc.Upload(context.Background(), tt.input, file)
			assert.ErrorIs(t, err, ErrValidation)
		})
	}

	_, err := svc.Upload(context.Background(), UploadMusicInput{Title: "t", Description: "d", Category: "audio"}, nil)
	assert.ErrorIs(t, err, ErrValidation)

	assert.Zero(t, storage.Count(), "Nothing should be stored")
	var count int64
	db.Model(&models.Music{}).Count(&count)
	assert.Zero(t, count)
}

func TestUploadMusicReportsFileErrorCode(t *testing.T) {
	svc, _, _ := newTestMusicService(t)

	file := newFileHeader(t, "file", "a.mp4", "video/mp4", []byte("data"))
	file.Size = utils.DefaultMaxUploadSize + 1

	_, err := svc.Upload(context.Background(), UploadMusicInput{Title: "t", Description: "d", Category: "video"}, file)
	var validationErr *ValidationError
	require.True(t, errors.As(err, &validationErr))
	assert.Equal(t, "FILE_TOO_LARGE", validationErr.Code)
}

func TestUploadMusicStorageFailure(t *testing.T) {
	svc, storage, _ := newTestMusicService(t)
	storage.SaveErr = errors.New("disk full")

	file := newFileHeader(t, "file", "a.mp3", "audio/mpeg", []byte("data"))
	_, err := svc.Upload(context.Background(), UploadMusicInput{Title: "t", Description: "d", Category: "audio"}, file)
	assert.Error(t, err)
	assert.NotErrorIs(t, err, ErrValidation)
}

func TestListMusic(t *testing.T) {
	svc, _, db := newTestMusicService(t)

	seedMusic(t, db, "Song", "A", models.MediaAudio, 0)
	video := seedMusic(t, db, "Clip", "B", models.MediaVideo, 0)

	all, err := svc.List("")
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, video.ID, all[0].ID, "Newest first")

	videos, err := svc.List("video")
	require.NoError(t, err)
	require.Len(t, videos, 1)
	assert.Equal(t, "Clip", videos[0].Title)
}

func TestSearchMusic(t *testing.T) {
	svc, _, db := newTestMusicService(t)

	seedMusic(t, db, "Midnight Groove", "Studio Band", models.MediaAudio, 0)
	seedMusic(t, db, "Sunrise", "DJ Groovy", models.MediaAudio, 0)
	seedMusic(t, db, "Rain", "Solo", models.MediaVideo, 0)
	seedMusic(t, db, "100% Live", "Band", models.MediaAudio, 0)

	results, err := svc.Search("GROOV")
	require.NoError(t, err)
	assert.Len(t, results, 2, "Matches title or artist case-insensitively")

	results, err = svc.Search("%")
	require.NoError(t, err)
	require.Len(t, results, 1, "LIKE wildcards are matched literally")
	assert.Equal(t, "100% Live", results[0].Title)

	_, err = svc.Search("  ")
	assert.ErrorIs(t, err, ErrValidation)
}

func TestIncrementView(t *testing.T) {
	svc, _, db := newTestMusicService(t)
	music := seedMusic(t, db, "Song", "A", models.MediaAudio, 5)

	for i := 1; i <= 3; i++ {
		views, err := svc.IncrementView(music.ID)
		require.NoError(t, err)
		assert.Equal(t, int64(5+i), views)
	}

	_, err := svc.IncrementView(9999)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestIncrementViewConcurrent(t *testing.T) {
	svc, _, db := newTestMusicService(t)
	music := seedMusic(t, db, "Song", "A", models.MediaAudio, 0)

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := svc.IncrementView(music.ID)
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	stored, err := svc.GetByID(music.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(20), stored.Views)
}

func TestUpdateMusicWithThumbnail(t *testing.T) {
	svc, storage, _ := newTestMusicService(t)

	music, err := svc.Upload(context.Background(), UploadMusicInput{Title: "Beat", Description: "A beat", Category: "audio"},
		newFileHeader(t, "file", "beat.mp3", "audio/mpeg", []byte("audio")))
	require.NoError(t, err)

	first, err := svc.Update(context.Background(), music.ID, UpdateMusicInput{Title: strPtr("Beat v2")},
		newFileHeader(t, "thumbnail", "cover.png", "image/png", []byte("png")))
	require.NoError(t, err)
	assert.Equal(t, "Beat v2", first.Title)
	assert.Equal(t, "A beat", first.Description)
	assert.NotEmpty(t, first.ThumbnailURL)
	firstThumb := first.ThumbnailKey

	second, err := svc.Update(context.Background(), music.ID, UpdateMusicInput{},
		newFileHeader(t, "thumbnail", "cover2.jpg", "image/jpeg", []byte("jpg")))
	require.NoError(t, err)
	assert.NotEqual(t, firstThumb, second.ThumbnailKey)
	assert.False(t, storage.FileExists(firstThumb), "The replaced thumbnail is removed")

	_, err = svc.Update(context.Background(), music.ID, UpdateMusicInput{},
		newFileHeader(t, "thumbnail", "song.mp3", "audio/mpeg", []byte("mp3")))
	assert.ErrorIs(t, err, ErrValidation, "Thumbnails must be images")

	_, err = svc.Update(context.Background(), 9999, UpdateMusicInput{}, nil)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDeleteMusicRemovesFiles(t *testing.T) {
	svc, storage, _ := newTestMusicService(t)

	music, err := svc.Upload(context.Background(), UploadMusicInput{Title: "Beat", Description: "A beat", Category: "audio"},
		newFileHeader(t, "file", "beat.mp3", "audio/mpeg", []byte("audio")))
	require.NoError(t, err)

	require.NoError(t, svc.Delete(context.Background(), music.ID))
	assert.False(t, storage.FileExists(music.FileKey))

	_, err = svc.GetByID(music.ID)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, svc.Delete(context.Background(), music.ID), ErrNotFound)
}
