package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("DATABASE_URL", "")
	t.Setenv("PORT", "")
	t.Setenv("STORAGE_BACKEND", "")
	t.Setenv("EMAIL_FROM", "studio@example.com")
	t.Setenv("EMAIL_TO", "")
	t.Setenv("ADMIN_NAME", "")
	t.Setenv("ADMIN_EMAIL", "")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "5000", cfg.Port)
	assert.Equal(t, "music_studio.db", cfg.DatabaseURL)
	assert.Equal(t, 7*24*time.Hour, cfg.JWTTTL, "Tokens should live seven days by default")
	assert.Equal(t, int64(100*1024*1024), cfg.MaxUploadBytes)
	assert.Equal(t, StorageLocal, cfg.StorageBackend)
	assert.Equal(t, "studio@example.com", cfg.EmailTo, "Inbox should default to the sender")
	assert.Equal(t, "Admin", cfg.AdminName)
	assert.Equal(t, "admin@musicstudio.com", cfg.AdminEmail)
	assert.True(t, cfg.IsTest())
}

func TestLoadAdminAccount(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("ADMIN_NAME", "Studio Owner")
	t.Setenv("ADMIN_EMAIL", "owner@studio.lk")
	t.Setenv("ADMIN_PASSWORD", "s3cret-pass")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "Studio Owner", cfg.AdminName)
	assert.Equal(t, "owner@studio.lk", cfg.AdminEmail)
	assert.Equal(t, "s3cret-pass", cfg.AdminPassword)
}

func TestLoadRequiresJWTSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "")

	_, err := Load()
	assert.ErrorContains(t, err, "JWT_SECRET")
}

func TestLoadRejectsBadDuration(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("JWT_TTL", "seven days")

	_, err := Load()
	assert.ErrorContains(t, err, "JWT_TTL")
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		return &Config{
			JWTSecret:      "secret",
			JWTTTL:         time.Hour,
			DatabaseURL:    "studio.db",
			MaxUploadBytes: 1024,
			StorageBackend: StorageLocal,
			UploadDir:      "./uploads",
		}
	}

	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr string
	}{
		{"valid local config", func(c *Config) {}, ""},
		{"missing secret", func(c *Config) { c.JWTSecret = "" }, "JWT_SECRET"},
		{"zero ttl", func(c *Config) { c.JWTTTL = 0 }, "JWT_TTL"},
		{"missing database", func(c *Config) { c.DatabaseURL = "" }, "DATABASE_URL"},
		{"missing database with skip", func(c *Config) { c.DatabaseURL = ""; c.SkipDB = true }, ""},
		{"unknown backend", func(c *Config) { c.StorageBackend = "ftp" }, "STORAGE_BACKEND"},
		{"s3 without bucket", func(c *Config) { c.StorageBackend = StorageS3 }, "AWS_S3_BUCKET"},
		{"s3 with bucket", func(c *Config) { c.StorageBackend = StorageS3; c.AWSS3Bucket = "media" }, ""},
		{"zero upload ceiling", func(c *Config) { c.MaxUploadBytes = 0 }, "MAX_UPLOAD_MB"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
			} else {
				assert.ErrorContains(t, err, tt.wantErr)
			}
		})
	}
}

func TestSplitList(t *testing.T) {
	assert.Equal(t, []string{"a", "b"}, splitList(" a, ,b "))
	assert.Nil(t, splitList(""))
}
