package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/staffdesk/employee-manager/internal/database/repository"
	"github.com/staffdesk/employee-manager/internal/database/service"
	"github.com/staffdesk/employee-manager/internal/middleware"
)

// AuthHandler handles HTTP requests for authentication
type AuthHandler struct {
	service service.AuthService
	limiter middleware.LoginLimiter
	logger  *slog.Logger
}

// NewAuthHandler creates a new authentication handler
func NewAuthHandler(service service.AuthService, limiter middleware.LoginLimiter, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{
		service: service,
		limiter: limiter,
		logger:  logger,
	}
}

// Request DTOs
type SignupRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type UpdatePasswordRequest struct {
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword"`
}

// Signup handles POST /api/auth/signup
func (h *AuthHandler) Signup(c *gin.Context) {
	var req SignupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	if req.Name == "" || req.Email == "" || req.Password == "" {
		respondError(c, http.StatusBadRequest, "Name, email, and password are required")
		return
	}

	user, err := h.service.Signup(req.Name, req.Email, req.Password)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	respondData(c, http.StatusCreated, user, "User created successfully")
}

// Login handles POST /api/auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	if req.Email == "" || req.Password == "" {
		respondError(c, http.StatusBadRequest, "Email and password are required")
		return
	}

	clientIP := c.ClientIP()
	allowed, err := h.limiter.Allow(c.Request.Context(), clientIP)
	if err != nil {
		h.logger.Warn("⚠️ [Handler] Login limiter unavailable", "error", err)
	}
	if !allowed {
		respondError(c, http.StatusTooManyRequests, "Too many failed login attempts, try again later")
		return
	}

	user, token, err := h.service.Login(req.Email, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			if recErr := h.limiter.RecordFailure(c.Request.Context(), clientIP); recErr != nil {
				h.logger.Warn("⚠️ [Handler] Failed to record login failure", "error", recErr)
			}
		}
		h.handleServiceError(c, err)
		return
	}

	respondData(c, http.StatusOK, gin.H{
		"user":  user,
		"token": token,
	}, "Login successful")
}

// UpdatePassword handles POST /api/auth/update-password. The auth
// middleware has already verified the bearer token.
func (h *AuthHandler) UpdatePassword(c *gin.Context) {
	userID, ok := c.MustGet(middleware.UserIDKey).(uuid.UUID)
	if !ok {
		respondError(c, http.StatusInternalServerError, "Invalid user id in context")
		return
	}

	var req UpdatePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	if req.CurrentPassword == "" || req.NewPassword == "" {
		respondError(c, http.StatusBadRequest, "Current password and new password are required")
		return
	}

	if err := h.service.UpdatePassword(userID, req.CurrentPassword, req.NewPassword); err != nil {
		h.handleServiceError(c, err)
		return
	}

	respondMessage(c, http.StatusOK, "Password updated successfully")
}

// handleServiceError maps service errors to HTTP responses
func (h *AuthHandler) handleServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrEmailAlreadyExists):
		respondError(c, http.StatusConflict, "User with this email already exists")
	case errors.Is(err, service.ErrInvalidCredentials):
		respondError(c, http.StatusUnauthorized, "Invalid email or password")
	case errors.Is(err, service.ErrInvalidToken):
		respondError(c, http.StatusUnauthorized, "Invalid or expired token")
	case errors.Is(err, service.ErrInvalidEmail):
		respondError(c, http.StatusBadRequest, "Invalid email format")
	case errors.Is(err, service.ErrPasswordTooShort):
		respondError(c, http.StatusBadRequest, "New password must be at least 6 characters")
	case errors.Is(err, service.ErrCurrentPasswordIncorrect):
		respondError(c, http.StatusBadRequest, "Current password is incorrect")
	case errors.Is(err, repository.ErrUserNotFound):
		respondError(c, http.StatusNotFound, "User not found")
	default:
		h.logger.Error("❌ [Handler] Internal server error", "error", err)
		respondError(c, http.StatusInternalServerError, err.Error())
	}
}
