package middleware

import (
	"context"
	"errors"
	"net/http"

	jwtmiddleware "github.com/auth0/go-jwt-middleware/v2"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/music-studio/music-studio-api/models"
	"github.com/music-studio/music-studio-api/services"
)

const (
	userIDKey = "user_id"
	roleKey   = "role"
)

// TokenValidator verifies a raw bearer token and returns its claims
type TokenValidator interface {
	ValidateToken(ctx context.Context, token string) (interface{}, error)
}

// UserFinder resolves the user a token refers to
type UserFinder interface {
	FindUser(id uint) (*models.User, error)
}

// Authenticate requires a valid bearer token that refers to an existing user.
// On success the user's id and role are stored in the gin context.
func Authenticate(tokens TokenValidator, users UserFinder, logger zerolog.Logger) gin.HandlerFunc {
	errorHandler := func(w http.ResponseWriter, r *http.Request, err error) {
		logger.Debug().Err(err).Str("path", r.URL.Path).Msg("Rejected bearer token")

		code, message := "INVALID_TOKEN", "Not authorized, token failed"
		if errors.Is(err, jwtmiddleware.ErrJWTMissing) {
			code, message = "MISSING_TOKEN", "Not authorized, no token"
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"success":false,"error":{"code":"` + code + `","message":"` + message + `"}}`))
	}

	middleware := jwtmiddleware.New(
		tokens.ValidateToken,
		jwtmiddleware.WithErrorHandler(errorHandler),
	)

	return func(c *gin.Context) {
		passed := false

		var handler http.HandlerFunc = func(w http.ResponseWriter, r *http.Request) {
			claims := r.Context().Value(jwtmiddleware.ContextKey{})

			userID, err := services.UserIDFromClaims(claims)
			if err != nil {
				abortWithError(c, http.StatusUnauthorized, "INVALID_TOKEN", "Not authorized, token failed")
				return
			}

			user, err := users.FindUser(userID)
			if err != nil {
				if errors.Is(err, services.ErrNotFound) {
					abortWithError(c, http.StatusUnauthorized, "USER_NOT_FOUND", "Not authorized, user not found")
					return
				}
				logger.Error().Err(err).Uint("user_id", userID).Msg("Failed to load user for token")
				abortWithError(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to authenticate request")
				return
			}

			c.Set(userIDKey, user.ID)
			c.Set(roleKey, user.Role)
			c.Request = r
			passed = true
			c.Next()
		}

		middleware.CheckJWT(handler).ServeHTTP(c.Writer, c.Request)

		// CheckJWT already wrote the 401; keep the rest of the chain from running
		if !passed {
			c.Abort()
		}
	}
}

// RequireAdmin must follow Authenticate; it rejects every role but admin
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		role, err := GetRole(c)
		if err != nil {
			abortWithError(c, http.StatusUnauthorized, err.(*AuthError).Code, err.Error())
			return
		}
		if !role.IsAdmin() {
			abortWithError(c, http.StatusForbidden, "FORBIDDEN", "Not authorized as an admin")
			return
		}
		c.Next()
	}
}

// GetUserID extracts the authenticated user's ID from the Gin context
func GetUserID(c *gin.Context) (uint, error) {
	userID, exists := c.Get(userIDKey)
	if !exists {
		return 0, &AuthError{Code: "MISSING_USER_ID", Message: "User ID not found in context"}
	}

	id, ok := userID.(uint)
	if !ok {
		return 0, &AuthError{Code: "INVALID_USER_ID", Message: "User ID is not a number"}
	}

	return id, nil
}

// GetRole extracts the authenticated user's role from the Gin context
func GetRole(c *gin.Context) (models.Role, error) {
	role, exists := c.Get(roleKey)
	if !exists {
		return "", &AuthError{Code: "MISSING_ROLE", Message: "Not authorized, no identity"}
	}

	r, ok := role.(models.Role)
	if !ok {
		return "", &AuthError{Code: "INVALID_ROLE", Message: "Role is not in the expected format"}
	}

	return r, nil
}

// SetIdentity stores an identity the way Authenticate does. Used by tests to skip token checks.
func SetIdentity(c *gin.Context, userID uint, role models.Role) {
	c.Set(userIDKey, userID)
	c.Set(roleKey, role)
}

// AuthError represents an authentication error
type AuthError struct {
	Code    string
	Message string
}

func (e *AuthError) Error() string {
	return e.Message
}

func abortWithError(c *gin.Context, status int, code, message string) {
	c.AbortWithStatusJSON(status, gin.H{
		"success": false,
		"error": gin.H{
			"code":    code,
			"message": message,
		},
	})
}
