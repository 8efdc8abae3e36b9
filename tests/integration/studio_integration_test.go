package integration

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/suite"
	"gorm.io/gorm"

	"github.com/music-studio/music-studio-api/config"
	"github.com/music-studio/music-studio-api/models"
	"github.com/music-studio/music-studio-api/routes"
	"github.com/music-studio/music-studio-api/services"
	"github.com/music-studio/music-studio-api/tests/testutil"
)

// StudioIntegrationTestSuite drives the full router against an in-memory store
type StudioIntegrationTestSuite struct {
	suite.Suite
	cfg    *config.Config
	db     *gorm.DB
	mailer *services.MockMailer
	router *gin.Engine
}

func (s *StudioIntegrationTestSuite) SetupSuite() {
	gin.SetMode(gin.TestMode)
	testutil.MustSetTestEnvironment(s.T())

	os.Setenv("JWT_SECRET", "integration-test-secret")
	os.Setenv("SKIP_DB", "true")
	os.Setenv("UPLOAD_DIR", s.T().TempDir())
	os.Setenv("METRICS_ENABLED", "false")
	os.Setenv("EMAIL_TO", "studio@example.com")

	cfg, err := config.Load()
	s.Require().NoError(err)
	s.cfg = cfg
}

func (s *StudioIntegrationTestSuite) SetupTest() {
	testutil.RequireTestEnvironment(s.T())

	tokens, err := services.NewTokenService(s.cfg.JWTSecret, s.cfg.JWTTTL, s.cfg.JWTIssuer, s.cfg.JWTAudience)
	s.Require().NoError(err)

	s.db = testutil.NewTestDB(s.T())
	s.mailer = services.NewMockMailer()
	s.router = routes.SetupRouter(routes.Dependencies{
		Config:  s.cfg,
		DB:      s.db,
		Logger:  zerolog.Nop(),
		Storage: services.NewMockStorage(),
		Mailer:  s.mailer,
		Tokens:  tokens,
	})
}

func (s *StudioIntegrationTestSuite) request(method, path, token string, body interface{}) (int, map[string]interface{}) {
	var buf bytes.Buffer
	if body != nil {
		s.Require().NoError(json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)

	var response map[string]interface{}
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &response), w.Body.String())
	return w.Code, response
}

func (s *StudioIntegrationTestSuite) login(email, password string) string {
	status, response := s.request(http.MethodPost, "/api/auth/login", "", map[string]string{"email": email, "password": password})
	s.Require().Equal(http.StatusOK, status)
	return response["data"].(map[string]interface{})["token"].(string)
}

func (s *StudioIntegrationTestSuite) TestBookingsRequireAdmin() {
	testutil.CreateUser(s.T(), s.db, "admin@studio.lk", models.RoleAdmin)
	testutil.CreateUser(s.T(), s.db, "client@studio.lk", models.RoleUser)

	status, response := s.request(http.MethodGet, "/api/bookings", "", nil)
	s.Equal(http.StatusUnauthorized, status)
	s.Equal("MISSING_TOKEN", response["error"].(map[string]interface{})["code"])

	status, _ = s.request(http.MethodGet, "/api/bookings", "not-a-jwt", nil)
	s.Equal(http.StatusUnauthorized, status)

	status, response = s.request(http.MethodGet, "/api/bookings", s.login("client@studio.lk", testutil.TestPassword), nil)
	s.Equal(http.StatusForbidden, status)
	s.Equal("FORBIDDEN", response["error"].(map[string]interface{})["code"])

	status, response = s.request(http.MethodGet, "/api/bookings", s.login("admin@studio.lk", testutil.TestPassword), nil)
	s.Equal(http.StatusOK, status)
	s.Empty(response["data"])
}

func (s *StudioIntegrationTestSuite) TestBookingLifecycle() {
	testutil.CreateUser(s.T(), s.db, "admin@studio.lk", models.RoleAdmin)
	token := s.login("admin@studio.lk", testutil.TestPassword)

	status, response := s.request(http.MethodPost, "/api/packages", token, map[string]interface{}{
		"name": "Basic Recording", "price": 15000, "duration": "2 hours",
		"features": []string{"Engineer"}, "category": "Recording",
	})
	s.Require().Equal(http.StatusCreated, status)
	packageID := response["data"].(map[string]interface{})["id"]

	status, response = s.request(http.MethodPost, "/api/bookings", "", map[string]interface{}{
		"clientName": "Kasun Perera",
		"email":      "kasun@example.com",
		"phone":      "+94771234567",
		"date":       time.Now().AddDate(0, 0, 3).Format("2006-01-02"),
		"timeSlot":   "10:00 - 12:00",
		"packageId":  packageID,
	})
	s.Require().Equal(http.StatusCreated, status)
	booking := response["data"].(map[string]interface{})
	s.Equal("pending", booking["status"])
	s.Equal("Basic Recording", booking["packageName"])
	path := fmt.Sprintf("/api/bookings/%v", booking["id"])

	status, response = s.request(http.MethodPut, path+"/approve", token, map[string]string{"adminNotes": "Confirmed"})
	s.Require().Equal(http.StatusOK, status)
	s.Equal("approved", response["data"].(map[string]interface{})["status"])

	status, response = s.request(http.MethodGet, "/api/bookings/stats", token, nil)
	s.Require().Equal(http.StatusOK, status)
	stats := response["data"].(map[string]interface{})
	s.Equal(float64(1), stats["total"])
	s.Equal(float64(1), stats["approved"])

	status, _ = s.request(http.MethodDelete, path, token, nil)
	s.Equal(http.StatusOK, status)
	status, _ = s.request(http.MethodGet, path, token, nil)
	s.Equal(http.StatusNotFound, status)
}

func (s *StudioIntegrationTestSuite) TestContactSurvivesMailFailure() {
	s.mailer.Err = errors.New("smtp down")

	status, response := s.request(http.MethodPost, "/api/contact", "", map[string]string{
		"name": "Ayesha", "email": "ayesha@example.com", "message": "Do you record choirs?",
	})
	s.Equal(http.StatusCreated, status)
	s.Equal("Message sent successfully!", response["message"])

	var count int64
	s.Require().NoError(s.db.Model(&models.ContactMessage{}).Count(&count).Error)
	s.Equal(int64(1), count)
}

func (s *StudioIntegrationTestSuite) TestContactNotifiesStudio() {
	status, _ := s.request(http.MethodPost, "/api/contact", "", map[string]string{
		"name": "Ayesha", "email": "ayesha@example.com", "message": "Quote please", "service": "Mixing",
	})
	s.Require().Equal(http.StatusCreated, status)

	sent := s.mailer.Sent()
	s.Require().Len(sent, 1)
	s.Equal("studio@example.com", sent[0].To)
	s.Equal("ayesha@example.com", sent[0].ReplyTo)
	s.Equal("New Inquiry from Ayesha", sent[0].Subject)
}

func TestStudioIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(StudioIntegrationTestSuite))
}
