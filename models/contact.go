package models

import "time"

// DefaultContactService labels inquiries that did not name a service
const DefaultContactService = "General Inquiry"

// ContactMessage represents an inquiry submitted through the contact form
type ContactMessage struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"not null" json:"name"`
	Email     string    `gorm:"not null" json:"email"`
	Message   string    `gorm:"type:text;not null" json:"message"`
	Service   string    `gorm:"not null;default:'General Inquiry'" json:"service"`
	CreatedAt time.Time `gorm:"index" json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// TableName specifies the table name for the ContactMessage model
func (ContactMessage) TableName() string {
	return "contacts"
}

// All returns every model the API persists, in migration order
func All() []interface{} {
	return []interface{}{
		&User{},
		&Package{},
		&Booking{},
		&Testimonial{},
		&Music{},
		&ContactMessage{},
	}
}
