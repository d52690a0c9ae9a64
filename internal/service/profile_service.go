package service

import (
	"context"
	"fmt"
	"log/slog"
	"regexp"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/yourorg/hoteldesk/internal/domain"
	"github.com/yourorg/hoteldesk/internal/observability/metrics"
)

var (
	emailPattern = regexp.MustCompile(`^[A-Za-z0-9+_.-]+@(.+)$`)
	phonePattern = regexp.MustCompile(`^\+?[0-9\s()\-]+$`)
)

// ProfileService handles a signed-in user's own profile
type ProfileService struct {
	userRepo          domain.UserRepository
	minPasswordLength int
	logger            *slog.Logger
}

// NewProfileService creates a new profile service
func NewProfileService(userRepo domain.UserRepository, minPasswordLength int, logger *slog.Logger) *ProfileService {
	if logger == nil {
		logger = slog.Default()
	}

	return &ProfileService{
		userRepo:          userRepo,
		minPasswordLength: minPasswordLength,
		logger:            logger,
	}
}

// UpdateProfileRequest carries the editable profile fields. Password and
// ConfirmPassword are both empty when the password is to stay unchanged.
type UpdateProfileRequest struct {
	FirstName       string `json:"first_name"`
	LastName        string `json:"last_name"`
	Email           string `json:"email"`
	PhoneNumber     string `json:"phone_number"`
	Password        string `json:"password,omitempty"`
	ConfirmPassword string `json:"confirm_password,omitempty"`
}

// Get returns the user's identity with staff details
func (s *ProfileService) Get(ctx context.Context, userID int) (*domain.User, error) {
	return s.userRepo.GetWithStaffDetails(ctx, userID)
}

// Update validates the request and applies it as one transactional profile
// update. Validation happens entirely before any store access, so a bad
// field never causes a partial write.
func (s *ProfileService) Update(ctx context.Context, userID int, req UpdateProfileRequest) error {
	if err := s.validate(&req); err != nil {
		metrics.ObserveProfileUpdate("invalid")
		return err
	}

	changePassword := req.Password != ""
	user := &domain.User{
		UserID:      userID,
		FirstName:   strings.TrimSpace(req.FirstName),
		LastName:    strings.TrimSpace(req.LastName),
		Email:       strings.TrimSpace(req.Email),
		PhoneNumber: strings.TrimSpace(req.PhoneNumber),
	}

	if changePassword {
		hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
		if err != nil {
			s.logger.Error("failed to hash password", slog.String("error", err.Error()))
			return fmt.Errorf("failed to update profile: %w", err)
		}
		user.PasswordHash = string(hash)
	}

	if err := s.userRepo.UpdateProfile(ctx, user, changePassword); err != nil {
		metrics.ObserveProfileUpdate("failure")
		return err
	}

	s.logger.Info("profile updated",
		slog.Int("user_id", userID),
		slog.Bool("password_changed", changePassword),
	)
	metrics.ObserveProfileUpdate("success")
	return nil
}

func (s *ProfileService) validate(req *UpdateProfileRequest) error {
	if strings.TrimSpace(req.FirstName) == "" {
		return &domain.ValidationError{Field: "first_name", Reason: "first name is required"}
	}
	if strings.TrimSpace(req.LastName) == "" {
		return &domain.ValidationError{Field: "last_name", Reason: "last name is required"}
	}

	email := strings.TrimSpace(req.Email)
	if email == "" || !emailPattern.MatchString(email) {
		return &domain.ValidationError{Field: "email", Reason: "invalid email address"}
	}

	phone := strings.TrimSpace(req.PhoneNumber)
	if phone == "" || !phonePattern.MatchString(phone) {
		return &domain.ValidationError{Field: "phone_number", Reason: "invalid phone number"}
	}

	if req.Password != "" || req.ConfirmPassword != "" {
		if len(req.Password) < s.minPasswordLength {
			return &domain.ValidationError{
				Field:  "password",
				Reason: fmt.Sprintf("password must be at least %d characters", s.minPasswordLength),
			}
		}
		if req.Password != req.ConfirmPassword {
			return &domain.ValidationError{Field: "confirm_password", Reason: "passwords do not match"}
		}
	}

	return nil
}
