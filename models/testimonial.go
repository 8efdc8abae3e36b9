package models

import "time"

const (
	MinRating = 1
	MaxRating = 5
)

// Testimonial represents a client review shown on the public site once approved
type Testimonial struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	ClientName string    `gorm:"not null" json:"clientName"`
	Photo      string    `gorm:"not null;default:''" json:"photo"`
	Review     string    `gorm:"type:text;not null" json:"review"`
	Rating     int       `gorm:"not null;check:rating >= 1 AND rating <= 5" json:"rating"`
	Service    string    `gorm:"not null;default:''" json:"service"`
	Date       time.Time `gorm:"not null" json:"date"`
	Featured   bool      `gorm:"not null;default:false" json:"featured"`
	Approved   bool      `gorm:"not null;index" json:"approved"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

// TableName specifies the table name for the Testimonial model
func (Testimonial) TableName() string {
	return "testimonials"
}
