package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/yourorg/hoteldesk/internal/domain"
	"github.com/yourorg/hoteldesk/internal/observability/metrics"
	"github.com/yourorg/hoteldesk/internal/security/auth"
)

// ErrInvalidCredentials is returned for both unknown usernames and wrong
// passwords so a caller cannot probe which usernames exist.
var ErrInvalidCredentials = errors.New("invalid credentials")

// AuthService handles login and logout
type AuthService struct {
	userRepo domain.UserRepository
	sessions domain.SessionStore
	tokens   *auth.TokenManager
	tokenTTL time.Duration
	logger   *slog.Logger
}

// NewAuthService creates a new authentication service
func NewAuthService(
	userRepo domain.UserRepository,
	sessions domain.SessionStore,
	tokens *auth.TokenManager,
	tokenTTL time.Duration,
	logger *slog.Logger,
) *AuthService {
	if logger == nil {
		logger = slog.Default()
	}

	return &AuthService{
		userRepo: userRepo,
		sessions: sessions,
		tokens:   tokens,
		tokenTTL: tokenTTL,
		logger:   logger,
	}
}

// LoginResult represents login response
type LoginResult struct {
	UserID    int    `json:"user_id"`
	Username  string `json:"username"`
	Role      string `json:"role"`
	Token     string `json:"token"`
	ExpiresIn int    `json:"expires_in"` // seconds
	TokenType string `json:"token_type"`
}

// Login authenticates a user by exact username and returns a session token
func (s *AuthService) Login(ctx context.Context, username, password string) (*LoginResult, error) {
	if username == "" || password == "" {
		return nil, ErrInvalidCredentials
	}

	user, err := s.userRepo.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			s.logger.Info("login attempt with unknown username", slog.String("username", username))
			metrics.ObserveLogin("failure")
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("login failed: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		s.logger.Info("login failed with wrong password", slog.String("username", username))
		metrics.ObserveLogin("failure")
		return nil, ErrInvalidCredentials
	}

	token, err := s.tokens.GenerateToken(user.UserID, user.Username, user.Role, s.tokenTTL)
	if err != nil {
		s.logger.Error("failed to generate token", slog.String("error", err.Error()))
		return nil, fmt.Errorf("login failed: %w", err)
	}

	s.logger.Info("user logged in",
		slog.Int("user_id", user.UserID),
		slog.String("username", user.Username),
		slog.String("role", user.Role),
	)
	metrics.ObserveLogin("success")

	return &LoginResult{
		UserID:    user.UserID,
		Username:  user.Username,
		Role:      user.Role,
		Token:     token,
		ExpiresIn: int(s.tokenTTL.Seconds()),
		TokenType: "Bearer",
	}, nil
}

// Logout revokes the session so the token stops working before it expires
func (s *AuthService) Logout(ctx context.Context, claims *auth.Claims) error {
	if s.sessions == nil || claims.ID == "" {
		return nil
	}

	ttl := time.Until(claims.ExpiresAt.Time)
	if err := s.sessions.Revoke(ctx, claims.ID, ttl); err != nil {
		return fmt.Errorf("logout failed: %w", err)
	}

	s.logger.Info("user logged out",
		slog.Int("user_id", claims.UserID),
		slog.String("username", claims.Username),
	)
	return nil
}
