package controllers

import (
	"net/http"
	"os"
	"path/filepath"

	"github.com/gin-gonic/gin"

	"github.com/music-studio/music-studio-api/utils"
)

// ServeUpload handles GET /uploads/:filename - serves files kept by local storage
func ServeUpload(uploadDir string) gin.HandlerFunc {
	return func(c *gin.Context) {
		filename := c.Param("filename")

		if !utils.IsSafeFileName(filename) {
			respondError(c, http.StatusBadRequest, "INVALID_FILENAME", "Invalid filename")
			return
		}

		path := filepath.Join(uploadDir, filename)
		info, err := os.Stat(path)
		if err != nil || info.IsDir() {
			respondError(c, http.StatusNotFound, "FILE_NOT_FOUND", "File not found")
			return
		}

		c.Header("Content-Type", utils.ContentType(filename))
		c.Header("Cache-Control", "public, max-age=86400")
		c.File(path)
	}
}
