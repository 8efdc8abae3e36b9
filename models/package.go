package models

import "time"

// Currency is the closed set of currencies a package can be priced in
type Currency string

const (
	CurrencyLKR Currency = "LKR"
	CurrencyUSD Currency = "USD"
)

// DefaultCurrency is used when a package is created without one
const DefaultCurrency = CurrencyLKR

// IsValid reports whether c is a supported currency
func (c Currency) IsValid() bool {
	return c == CurrencyLKR || c == CurrencyUSD
}

// PackageCategory groups service packages on the pricing page
type PackageCategory string

const (
	CategoryRecording      PackageCategory = "Recording"
	CategoryMixing         PackageCategory = "Mixing"
	CategoryMastering      PackageCategory = "Mastering"
	CategoryFullProduction PackageCategory = "Full Production"
	CategoryOther          PackageCategory = "Other"
)

// IsValid reports whether c is a known package category
func (c PackageCategory) IsValid() bool {
	switch c {
	case CategoryRecording, CategoryMixing, CategoryMastering, CategoryFullProduction, CategoryOther:
		return true
	}
	return false
}

// Package represents a priced service offering
type Package struct {
	ID          uint            `gorm:"primaryKey" json:"id"`
	Name        string          `gorm:"not null" json:"name"`
	Price       float64         `gorm:"not null;check:price >= 0" json:"price"`
	Currency    Currency        `gorm:"type:varchar(8);not null;default:'LKR'" json:"currency"`
	Duration    string          `gorm:"not null" json:"duration"`
	Features    []string        `gorm:"serializer:json;type:text;not null" json:"features"`
	Category    PackageCategory `gorm:"type:varchar(32);not null;index:idx_packages_category_featured,priority:1" json:"category"`
	Description string          `gorm:"type:text" json:"description"`
	Featured    bool            `gorm:"not null;default:false;index:idx_packages_category_featured,priority:2" json:"featured"`
	Popular     bool            `gorm:"not null;default:false" json:"popular"`
	CreatedAt   time.Time       `json:"createdAt"`
	UpdatedAt   time.Time       `json:"updatedAt"`
}

// TableName specifies the table name for the Package model
func (Package) TableName() string {
	return "packages"
}
