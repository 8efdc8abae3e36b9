package models

import (
	"time"
)

// BookingStatus is the approval state of a booking request
type BookingStatus string

const (
	BookingPending  BookingStatus = "pending"
	BookingApproved BookingStatus = "approved"
	BookingRejected BookingStatus = "rejected"
)

// BookingStatuses lists every status in display order
var BookingStatuses = []BookingStatus{BookingPending, BookingApproved, BookingRejected}

// IsValid reports whether s is one of the known booking statuses
func (s BookingStatus) IsValid() bool {
	switch s {
	case BookingPending, BookingApproved, BookingRejected:
		return true
	}
	return false
}

// Booking represents a client's request to reserve studio time
type Booking struct {
	ID          uint          `gorm:"primaryKey" json:"id"`
	ClientName  string        `gorm:"not null" json:"clientName"`
	Email       string        `gorm:"not null;index" json:"email"`
	Phone       string        `gorm:"not null" json:"phone"`
	Date        time.Time     `gorm:"not null;index:idx_bookings_status_date,priority:2" json:"date"`
	TimeSlot    string        `gorm:"not null" json:"timeSlot"`
	PackageID   *uint         `gorm:"index" json:"packageId,omitempty"`
	PackageName string        `json:"packageName,omitempty"` // snapshot of the package name at booking time
	Service     string        `json:"service,omitempty"`
	Message     string        `gorm:"type:text;not null;default:''" json:"message"`
	Status      BookingStatus `gorm:"type:varchar(16);not null;default:'pending';index:idx_bookings_status_date,priority:1" json:"status"`
	AdminNotes  string        `gorm:"type:text;not null;default:''" json:"adminNotes"`
	RespondedAt *time.Time    `json:"respondedAt,omitempty"` // set when an admin approves or rejects
	CreatedAt   time.Time     `gorm:"index" json:"createdAt"`
	UpdatedAt   time.Time     `json:"updatedAt"`
}

// TableName specifies the table name for the Booking model
func (Booking) TableName() string {
	return "bookings"
}

// BookingStats holds the per-status booking counts shown on the dashboard
type BookingStats struct {
	Total    int64 `json:"total"`
	Pending  int64 `json:"pending"`
	Approved int64 `json:"approved"`
	Rejected int64 `json:"rejected"`
}
