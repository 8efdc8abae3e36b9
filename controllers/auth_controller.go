package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/music-studio/music-studio-api/middleware"
	"github.com/music-studio/music-studio-api/services"
)

// LoginRequest represents the request body for logging in
type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// AuthController handles registration and login
type AuthController struct {
	auth   *services.AuthService
	logger zerolog.Logger
}

func NewAuthController(auth *services.AuthService, logger zerolog.Logger) *AuthController {
	return &AuthController{auth: auth, logger: logger}
}

// Register handles POST /api/auth/register
func (ac *AuthController) Register(c *gin.Context) {
	var req services.RegisterInput
	if !bindJSON(c, &req) {
		return
	}

	result, err := ac.auth.Register(req)
	if err != nil {
		if errors.Is(err, services.ErrConflict) {
			respondError(c, http.StatusConflict, "USER_EXISTS", "User already exists")
			return
		}
		handleServiceError(c, ac.logger, err, "")
		return
	}

	respond(c, http.StatusCreated, result)
}

// Login handles POST /api/auth/login
func (ac *AuthController) Login(c *gin.Context) {
	var req LoginRequest
	if !bindJSON(c, &req) {
		return
	}

	result, err := ac.auth.Login(req.Email, req.Password)
	if err != nil {
		if errors.Is(err, services.ErrUnauthorized) {
			respondError(c, http.StatusUnauthorized, "INVALID_CREDENTIALS", "Invalid credentials")
			return
		}
		handleServiceError(c, ac.logger, err, "")
		return
	}

	respond(c, http.StatusOK, result)
}

// Me handles GET /api/auth/me - returns the authenticated user
func (ac *AuthController) Me(c *gin.Context) {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		respondError(c, http.StatusUnauthorized, "UNAUTHORIZED", "Could not extract user information")
		return
	}

	user, err := ac.auth.FindUser(userID)
	if err != nil {
		handleServiceError(c, ac.logger, err, "User not found")
		return
	}

	respond(c, http.StatusOK, user)
}
