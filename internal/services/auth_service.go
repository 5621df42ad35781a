package services

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"fintrack-api/internal/dto"
	"fintrack-api/internal/models"
	"fintrack-api/internal/repositories"

	"github.com/google/uuid"
)

var (
	ErrInvalidCredentials   = errors.New("invalid email or password")
	ErrUserAlreadyExists    = errors.New("user with this email already exists")
	ErrCurrentPasswordWrong = errors.New("current password is incorrect")
	ErrSamePassword         = errors.New("new password must be different from current password")
)

// AuthService handles registration, login, and profile business logic
type AuthService struct {
	userRepo        repositories.UserRepositoryInterface
	passwordService PasswordServiceInterface
	tokenService    TokenServiceInterface
	metrics         MetricsRecorderInterface
	logger          *slog.Logger
}

// NewAuthService creates a new authentication service
func NewAuthService(
	userRepo repositories.UserRepositoryInterface,
	passwordService PasswordServiceInterface,
	tokenService TokenServiceInterface,
	metrics MetricsRecorderInterface,
	logger *slog.Logger,
) AuthServiceInterface {
	return &AuthService{
		userRepo:        userRepo,
		passwordService: passwordService,
		tokenService:    tokenService,
		metrics:         metrics,
		logger:          logger,
	}
}

// Register creates a new user
func (s *AuthService) Register(req *dto.RegisterRequest) (*models.User, error) {
	hashedPassword, err := s.passwordService.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		Email:        strings.ToLower(strings.TrimSpace(req.Email)),
		PasswordHash: hashedPassword,
		Name:         strings.TrimSpace(req.Name),
	}

	if err := s.userRepo.Create(user); err != nil {
		if errors.Is(err, repositories.ErrUserExists) {
			s.recordAuthEvent("register_duplicate")
			return nil, ErrUserAlreadyExists
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	s.recordAuthEvent("registered")
	s.logger.Info("user registered", "user_id", user.ID, "email", user.Email)

	return user, nil
}

// Login authenticates a user and returns an access token with the profile
func (s *AuthService) Login(req *dto.LoginRequest) (*dto.LoginResponse, error) {
	user, err := s.userRepo.GetByEmail(strings.ToLower(strings.TrimSpace(req.Email)))
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			s.recordAuthEvent("login_unknown_user")
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	if !s.passwordService.ComparePassword(req.Password, user.PasswordHash) {
		s.recordAuthEvent("login_bad_password")
		return nil, ErrInvalidCredentials
	}

	accessToken, expiresAt, err := s.tokenService.GenerateAccessToken(user)
	if err != nil {
		return nil, fmt.Errorf("failed to generate access token: %w", err)
	}

	user.UpdateLastLogin()
	if err := s.userRepo.UpdateFields(user.ID, map[string]interface{}{
		"last_login_at": user.LastLoginAt,
	}); err != nil {
		// Non-critical: a stale last-login timestamp shouldn't block login
		s.logger.Warn("failed to update last login",
			"error", err,
			"user_id", user.ID)
	}

	s.recordAuthEvent("login_success")

	return &dto.LoginResponse{
		Token: dto.TokenResponse{
			AccessToken: accessToken,
			TokenType:   "Bearer",
			ExpiresAt:   expiresAt,
		},
		User: ProfileResponse(user),
	}, nil
}

// GetProfile returns the user's profile
func (s *AuthService) GetProfile(userID uuid.UUID) (*models.User, error) {
	return s.userRepo.GetByID(userID)
}

// UpdateProfile applies the non-nil profile fields
func (s *AuthService) UpdateProfile(userID uuid.UUID, req *dto.UpdateProfileRequest) (*models.User, error) {
	fields := map[string]interface{}{}

	if req.Name != nil {
		fields["name"] = strings.TrimSpace(*req.Name)
	}
	if req.PreferredCurrency != nil {
		fields["preferred_currency"] = strings.ToUpper(*req.PreferredCurrency)
	}
	if req.IsDarkMode != nil {
		fields["is_dark_mode"] = *req.IsDarkMode
	}

	if len(fields) > 0 {
		fields["updated_at"] = time.Now()
		if err := s.userRepo.UpdateFields(userID, fields); err != nil {
			return nil, fmt.Errorf("failed to update profile: %w", err)
		}
	}

	return s.userRepo.GetByID(userID)
}

// ChangePassword verifies the current password and stores a new hash
func (s *AuthService) ChangePassword(userID uuid.UUID, req *dto.ChangePasswordRequest) error {
	if req.CurrentPassword == req.NewPassword {
		return ErrSamePassword
	}

	user, err := s.userRepo.GetByID(userID)
	if err != nil {
		return err
	}

	if !s.passwordService.ComparePassword(req.CurrentPassword, user.PasswordHash) {
		s.recordAuthEvent("password_change_rejected")
		return ErrCurrentPasswordWrong
	}

	hashedPassword, err := s.passwordService.HashPassword(req.NewPassword)
	if err != nil {
		return fmt.Errorf("failed to hash new password: %w", err)
	}

	if err := s.userRepo.UpdatePasswordHash(userID, hashedPassword); err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}

	s.recordAuthEvent("password_changed")
	s.logger.Info("password changed", "user_id", userID)

	return nil
}

func (s *AuthService) recordAuthEvent(eventType string) {
	if s.metrics != nil {
		s.metrics.IncrementCounter("authentication_event", map[string]string{"event_type": eventType})
	}
}

// ProfileResponse maps a user model to its profile DTO
func ProfileResponse(user *models.User) dto.UserProfileResponse {
	return dto.UserProfileResponse{
		ID:                user.ID.String(),
		Email:             user.Email,
		Name:              user.Name,
		PreferredCurrency: user.PreferredCurrency,
		IsDarkMode:        user.IsDarkMode,
		LastLoginAt:       user.LastLoginAt,
		CreatedAt:         user.CreatedAt,
		UpdatedAt:         user.UpdatedAt,
	}
}
