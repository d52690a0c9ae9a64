package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/yourorg/hoteldesk/internal/domain"
	"github.com/yourorg/hoteldesk/internal/security/auth"
)

type memUserRepo struct {
	byID       map[int]*domain.User
	byUsername map[string]*domain.User
	nextID     int
}

func newMemUserRepo() *memUserRepo {
	return &memUserRepo{byID: map[int]*domain.User{}, byUsername: map[string]*domain.User{}, nextID: 1}
}

func (m *memUserRepo) FindByUsername(_ context.Context, username string) (*domain.User, error) {
	if u, ok := m.byUsername[username]; ok {
		copied := *u
		return &copied, nil
	}
	return nil, domain.ErrNotFound
}

func (m *memUserRepo) GetWithStaffDetails(_ context.Context, userID int) (*domain.User, error) {
	if u, ok := m.byID[userID]; ok {
		copied := *u
		return &copied, nil
	}
	return nil, domain.ErrNotFound
}

func (m *memUserRepo) Create(_ context.Context, u *domain.User) error {
	u.UserID = m.nextID
	m.nextID++
	m.byID[u.UserID] = u
	m.byUsername[u.Username] = u
	return nil
}

func (m *memUserRepo) Delete(_ context.Context, userID int) error {
	u, ok := m.byID[userID]
	if !ok {
		return domain.ErrNotFound
	}
	delete(m.byUsername, u.Username)
	delete(m.byID, userID)
	return nil
}

func (m *memUserRepo) UpdateProfile(_ context.Context, u *domain.User, changePassword bool) error {
	existing, ok := m.byID[u.UserID]
	if !ok {
		return domain.ErrNotFound
	}
	if changePassword {
		existing.PasswordHash = u.PasswordHash
	}
	existing.FirstName = u.FirstName
	existing.LastName = u.LastName
	existing.Email = u.Email
	existing.PhoneNumber = u.PhoneNumber
	return nil
}

type memSessionStore struct {
	revoked map[string]bool
}

func newMemSessionStore() *memSessionStore {
	return &memSessionStore{revoked: map[string]bool{}}
}

func (m *memSessionStore) Revoke(_ context.Context, tokenID string, _ time.Duration) error {
	m.revoked[tokenID] = true
	return nil
}

func (m *memSessionStore) IsRevoked(_ context.Context, tokenID string) (bool, error) {
	return m.revoked[tokenID], nil
}

func seedLoginUser(t *testing.T, repo *memUserRepo, username, password, role string) *domain.User {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	u := &domain.User{Username: username, PasswordHash: string(hash), Role: role}
	repo.Create(context.Background(), u)
	return u
}

func TestLoginAndLogout(t *testing.T) {
	repo := newMemUserRepo()
	sessions := newMemSessionStore()
	tokens := auth.NewTokenManager("test-secret", "hoteldesk")
	s := NewAuthService(repo, sessions, tokens, time.Hour, nil)
	ctx := context.Background()

	seedLoginUser(t, repo, "jdoe", "Password123", "receptionist")

	result, err := s.Login(ctx, "jdoe", "Password123")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if result.Token == "" || result.Role != "receptionist" {
		t.Fatalf("unexpected login result: %+v", result)
	}

	claims, err := tokens.ValidateToken(result.Token)
	if err != nil {
		t.Fatalf("issued token does not validate: %v", err)
	}
	if claims.Username != "jdoe" || claims.ID == "" {
		t.Fatalf("unexpected claims: %+v", claims)
	}

	if err := s.Logout(ctx, claims); err != nil {
		t.Fatalf("logout failed: %v", err)
	}
	revoked, err := sessions.IsRevoked(ctx, claims.ID)
	if err != nil {
		t.Fatalf("revocation check failed: %v", err)
	}
	if !revoked {
		t.Fatal("session should be revoked after logout")
	}
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	repo := newMemUserRepo()
	tokens := auth.NewTokenManager("test-secret", "hoteldesk")
	s := NewAuthService(repo, newMemSessionStore(), tokens, time.Hour, nil)
	ctx := context.Background()

	seedLoginUser(t, repo, "jdoe", "Password123", "receptionist")

	// Unknown username and wrong password are indistinguishable
	if _, err := s.Login(ctx, "nobody", "Password123"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
	if _, err := s.Login(ctx, "jdoe", "wrong"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
	if _, err := s.Login(ctx, "", ""); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials for empty input, got %v", err)
	}
}

func TestLoginIsCaseSensitive(t *testing.T) {
	repo := newMemUserRepo()
	tokens := auth.NewTokenManager("test-secret", "hoteldesk")
	s := NewAuthService(repo, newMemSessionStore(), tokens, time.Hour, nil)

	seedLoginUser(t, repo, "jdoe", "Password123", "receptionist")

	if _, err := s.Login(context.Background(), "JDoe", "Password123"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("username lookup must be exact, got %v", err)
	}
}
