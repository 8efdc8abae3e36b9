package controllers

import (
	"errors"
	"mime/multipart"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/music-studio/music-studio-api/services"
)

// MusicController exposes the media portfolio
type MusicController struct {
	music          *services.MusicService
	maxUploadBytes int64
	logger         zerolog.Logger
}

func NewMusicController(music *services.MusicService, maxUploadBytes int64, logger zerolog.Logger) *MusicController {
	return &MusicController{music: music, maxUploadBytes: maxUploadBytes, logger: logger}
}

// List handles GET /api/music?category=
func (mc *MusicController) List(c *gin.Context) {
	music, err := mc.music.List(c.Query("category"))
	if err != nil {
		handleServiceError(c, mc.logger, err, "")
		return
	}
	respond(c, http.StatusOK, music)
}

// Search handles GET /api/music/search?keyword=
func (mc *MusicController) Search(c *gin.Context) {
	music, err := mc.music.Search(c.Query("keyword"))
	if err != nil {
		handleServiceError(c, mc.logger, err, "")
		return
	}
	respond(c, http.StatusOK, music)
}

// IncrementView handles PUT /api/music/:id/view
func (mc *MusicController) IncrementView(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	views, err := mc.music.IncrementView(id)
	if err != nil {
		handleServiceError(c, mc.logger, err, "Music not found")
		return
	}
	respondWithMessage(c, http.StatusOK, "View counted", gin.H{"views": views})
}

// Upload handles POST /api/music/upload - multipart "file" plus title, description, category, artist
func (mc *MusicController) Upload(c *gin.Context) {
	if !mc.limitBody(c) {
		return
	}

	file, err := c.FormFile("file")
	if err != nil {
		if tooLarge(err) {
			respondError(c, http.StatusBadRequest, "FILE_TOO_LARGE", "File size exceeds maximum allowed size")
			return
		}
		respondError(c, http.StatusBadRequest, "NO_FILE", "No file uploaded")
		return
	}

	music, err := mc.music.Upload(c.Request.Context(), services.UploadMusicInput{
		Title:       c.PostForm("title"),
		Description: c.PostForm("description"),
		Category:    c.PostForm("category"),
		Artist:      c.PostForm("artist"),
	}, file)
	if err != nil {
		handleServiceError(c, mc.logger, err, "")
		return
	}

	respondWithMessage(c, http.StatusCreated, "Music uploaded successfully", music)
}

// Update handles PUT /api/music/:id - multipart or JSON, with an optional "thumbnail" image
func (mc *MusicController) Update(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	if !mc.limitBody(c) {
		return
	}

	var input services.UpdateMusicInput
	var thumbnail *multipart.FileHeader

	if c.ContentType() == gin.MIMEJSON {
		if !bindJSON(c, &input) {
			return
		}
	} else {
		file, err := c.FormFile("thumbnail")
		switch {
		case err == nil:
			thumbnail = file
		case tooLarge(err):
			respondError(c, http.StatusBadRequest, "FILE_TOO_LARGE", "File size exceeds maximum allowed size")
			return
		}
		if v, ok := c.GetPostForm("title"); ok {
			input.Title = &v
		}
		if v, ok := c.GetPostForm("description"); ok {
			input.Description = &v
		}
	}

	music, err := mc.music.Update(c.Request.Context(), id, input, thumbnail)
	if err != nil {
		handleServiceError(c, mc.logger, err, "Music not found")
		return
	}
	respondWithMessage(c, http.StatusOK, "Music updated successfully", music)
}

// Delete handles DELETE /api/music/:id and DELETE /api/admin/music/:id
func (mc *MusicController) Delete(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	if err := mc.music.Delete(c.Request.Context(), id); err != nil {
		handleServiceError(c, mc.logger, err, "Music not found")
		return
	}
	respondWithMessage(c, http.StatusOK, "Music deleted successfully", nil)
}

// limitBody caps the request body a little above the upload ceiling so multipart overhead still fits
func (mc *MusicController) limitBody(c *gin.Context) bool {
	if c.Request.ContentLength > mc.maxUploadBytes+multipartOverhead {
		respondError(c, http.StatusBadRequest, "FILE_TOO_LARGE", "File size exceeds maximum allowed size")
		return false
	}
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, mc.maxUploadBytes+multipartOverhead)
	return true
}

// multipartOverhead leaves room for form fields and part headers
const multipartOverhead = 1 << 20

func tooLarge(err error) bool {
	var maxErr *http.MaxBytesError
	return errors.As(err, &maxErr)
}
