package service

import (
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/staffdesk/employee-manager/internal/config"
	"github.com/staffdesk/employee-manager/internal/database/models"
	"github.com/staffdesk/employee-manager/internal/database/repository"
)

// AuthService defines the interface for authentication business logic
type AuthService interface {
	Signup(name, email, password string) (*models.User, error)
	Login(email, password string) (*models.User, string, error)
	UpdatePassword(userID uuid.UUID, currentPassword, newPassword string) error
	ValidateToken(tokenString string) (uuid.UUID, string, error)
}

type authService struct {
	userRepo  repository.UserRepository
	jwtSecret string
	tokenTTL  time.Duration
	logger    *slog.Logger
}

// NewAuthService creates a new authentication service instance
func NewAuthService(userRepo repository.UserRepository, cfg *config.Config, logger *slog.Logger) AuthService {
	return &authService{
		userRepo:  userRepo,
		jwtSecret: cfg.JWTSecret,
		tokenTTL:  time.Duration(cfg.TokenExpiration) * time.Second,
		logger:    logger,
	}
}

func (s *authService) Signup(name, email, password string) (*models.User, error) {
	email = normalizeEmail(email)
	s.logger.Info("📝 [AuthService] Signup attempt", "email", email)

	if !isValidEmail(email) {
		return nil, ErrInvalidEmail
	}

	existing, err := s.userRepo.FindByEmail(email)
	if err != nil && !errors.Is(err, repository.ErrUserNotFound) {
		s.logger.Error("❌ [AuthService] Database error", "error", err)
		return nil, err
	}
	if existing != nil {
		s.logger.Warn("⚠️ [AuthService] Email already registered", "email", email)
		return nil, ErrEmailAlreadyExists
	}

	user := &models.User{
		Name:  strings.TrimSpace(name),
		Email: email,
	}
	if err := user.SetPassword(password); err != nil {
		s.logger.Error("❌ [AuthService] Failed to hash password", "error", err)
		return nil, err
	}

	if err := s.userRepo.Create(user); err != nil {
		if errors.Is(err, repository.ErrDuplicateUserEmail) {
			return nil, ErrEmailAlreadyExists
		}
		s.logger.Error("❌ [AuthService] Failed to create user", "error", err)
		return nil, err
	}

	s.logger.Info("✅ [AuthService] User created successfully", "user_id", user.ID)
	return user, nil
}

func (s *authService) Login(email, password string) (*models.User, string, error) {
	email = normalizeEmail(email)
	s.logger.Info("🔐 [AuthService] Login attempt", "email", email)

	user, err := s.userRepo.FindByEmail(email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			// Same error as a wrong password so callers cannot probe
			// which of the two was wrong.
			s.logger.Warn("⚠️ [AuthService] User not found", "email", email)
			return nil, "", ErrInvalidCredentials
		}
		s.logger.Error("❌ [AuthService] Database error", "error", err)
		return nil, "", err
	}

	if !user.CheckPassword(password) {
		s.logger.Warn("⚠️ [AuthService] Invalid password", "email", email)
		return nil, "", ErrInvalidCredentials
	}

	token, err := s.generateToken(user)
	if err != nil {
		s.logger.Error("❌ [AuthService] Failed to sign token", "error", err)
		return nil, "", err
	}

	s.logger.Info("✅ [AuthService] User logged in successfully", "user_id", user.ID)
	return user, token, nil
}

func (s *authService) UpdatePassword(userID uuid.UUID, currentPassword, newPassword string) error {
	s.logger.Info("🔑 [AuthService] Password update attempt", "user_id", userID)

	if len(newPassword) < 6 {
		return ErrPasswordTooShort
	}

	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		return err
	}

	if !user.CheckPassword(currentPassword) {
		s.logger.Warn("⚠️ [AuthService] Current password mismatch", "user_id", userID)
		return ErrCurrentPasswordIncorrect
	}

	if err := user.SetPassword(newPassword); err != nil {
		s.logger.Error("❌ [AuthService] Failed to hash password", "error", err)
		return err
	}

	if err := s.userRepo.Update(user); err != nil {
		s.logger.Error("❌ [AuthService] Failed to persist password", "error", err)
		return err
	}

	s.logger.Info("✅ [AuthService] Password updated successfully", "user_id", userID)
	return nil
}

// ValidateToken checks the signature and expiry of a session token and
// returns the embedded user id and email.
func (s *authService) ValidateToken(tokenString string) (uuid.UUID, string, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return []byte(s.jwtSecret), nil
	})
	if err != nil || !token.Valid {
		return uuid.Nil, "", ErrInvalidToken
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return uuid.Nil, "", ErrInvalidToken
	}

	rawID, ok := claims["user_id"].(string)
	if !ok {
		return uuid.Nil, "", ErrInvalidToken
	}
	userID, err := uuid.Parse(rawID)
	if err != nil {
		return uuid.Nil, "", ErrInvalidToken
	}

	email, _ := claims["email"].(string)
	return userID, email, nil
}

func (s *authService) generateToken(user *models.User) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"user_id": user.ID.String(),
		"email":   user.Email,
		"exp":     now.Add(s.tokenTTL).Unix(),
		"iat":     now.Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.jwtSecret))
}

// Service errors
var (
	ErrEmailAlreadyExists       = errors.New("user with this email already exists")
	ErrInvalidCredentials       = errors.New("invalid email or password")
	ErrInvalidToken             = errors.New("invalid or expired token")
	ErrPasswordTooShort         = errors.New("new password must be at least 6 characters")
	ErrCurrentPasswordIncorrect = errors.New("current password is incorrect")
)
