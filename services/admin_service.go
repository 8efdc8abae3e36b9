package services

import (
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/music-studio/music-studio-api/models"
)

// recentWindow is how far back an upload still counts as recent on the dashboard
const recentWindow = 7 * 24 * time.Hour

// topMusicLimit is the number of most viewed items returned by Analytics
const topMusicLimit = 10

// DashboardStats are the headline numbers on the admin dashboard
type DashboardStats struct {
	TotalSongs    int64 `json:"totalSongs"`
	TotalAudios   int64 `json:"totalAudios"`
	TotalVideos   int64 `json:"totalVideos"`
	TotalViews    int64 `json:"totalViews"`
	NewInquiries  int64 `json:"newInquiries"`
	RecentUploads int64 `json:"recentUploads"`
}

// CategoryStat is the per-category media rollup
type CategoryStat struct {
	Category   models.MediaCategory `json:"category"`
	Count      int64                `json:"count"`
	TotalViews int64                `json:"totalViews"`
}

// Analytics holds the most viewed media and the per-category breakdown
type Analytics struct {
	TopMusic      []models.Music `json:"topMusic"`
	CategoryStats []CategoryStat `json:"categoryStats"`
}

// AdminService computes read-only rollups over the other stores. Nothing is cached.
type AdminService struct {
	db  *gorm.DB
	now func() time.Time
}

func NewAdminService(db *gorm.DB) *AdminService {
	return &AdminService{db: db, now: time.Now}
}

// DashboardStats recomputes every count on each call
func (s *AdminService) DashboardStats() (*DashboardStats, error) {
	stats := &DashboardStats{}

	if err := s.db.Model(&models.Music{}).Where("category = ?", models.MediaAudio).Count(&stats.TotalAudios).Error; err != nil {
		return nil, fmt.Errorf("failed to count audio: %w", err)
	}
	if err := s.db.Model(&models.Music{}).Where("category = ?", models.MediaVideo).Count(&stats.TotalVideos).Error; err != nil {
		return nil, fmt.Errorf("failed to count video: %w", err)
	}
	stats.TotalSongs = stats.TotalAudios + stats.TotalVideos

	// summed in memory over every row
	var views []int64
	if err := s.db.Model(&models.Music{}).Pluck("views", &views).Error; err != nil {
		return nil, fmt.Errorf("failed to load views: %w", err)
	}
	for _, v := range views {
		stats.TotalViews += v
	}

	if err := s.db.Model(&models.ContactMessage{}).Count(&stats.NewInquiries).Error; err != nil {
		return nil, fmt.Errorf("failed to count inquiries: %w", err)
	}

	since := s.now().Add(-recentWindow)
	if err := s.db.Model(&models.Music{}).Where("created_at >= ?", since).Count(&stats.RecentUploads).Error; err != nil {
		return nil, fmt.Errorf("failed to count recent uploads: %w", err)
	}

	return stats, nil
}

// Analytics returns the top media by views and per-category totals
func (s *AdminService) Analytics() (*Analytics, error) {
	analytics := &Analytics{
		TopMusic:      []models.Music{},
		CategoryStats: []CategoryStat{},
	}

	if err := s.db.Order("views DESC").Order("id ASC").Limit(topMusicLimit).Find(&analytics.TopMusic).Error; err != nil {
		return nil, fmt.Errorf("failed to load top music: %w", err)
	}

	err := s.db.Model(&models.Music{}).
		Select("category, COUNT(*) AS count, COALESCE(SUM(views), 0) AS total_views").
		Group("category").
		Order("category").
		Scan(&analytics.CategoryStats).Error
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate categories: %w", err)
	}

	return analytics, nil
}
