package models

import "time"

// MediaCategory distinguishes audio tracks from videos in the portfolio
type MediaCategory string

const (
	MediaAudio MediaCategory = "audio"
	MediaVideo MediaCategory = "video"
)

// IsValid reports whether c is a known media category
func (c MediaCategory) IsValid() bool {
	return c == MediaAudio || c == MediaVideo
}

// DefaultArtist is credited on uploads that name no artist
const DefaultArtist = "Admin"

// Music represents an uploaded audio or video item in the portfolio
type Music struct {
	ID           uint          `gorm:"primaryKey" json:"id"`
	Title        string        `gorm:"not null" json:"title"`
	Description  string        `gorm:"type:text;not null" json:"description"`
	Category     MediaCategory `gorm:"type:varchar(8);not null;index" json:"category"`
	FileURL      string        `gorm:"not null" json:"fileUrl"`
	FileKey      string        `gorm:"not null" json:"-"` // storage key of the media file
	ThumbnailURL string        `gorm:"not null;default:''" json:"thumbnailUrl"`
	ThumbnailKey string        `gorm:"not null;default:''" json:"-"`
	Artist       string        `gorm:"not null;default:'Admin'" json:"artist"`
	Views        int64         `gorm:"not null;default:0;index" json:"views"`
	CreatedAt    time.Time     `gorm:"index" json:"createdAt"`
	UpdatedAt    time.Time     `json:"updatedAt"`
}

// TableName specifies the table name for the Music model
func (Music) TableName() string {
	return "music"
}
