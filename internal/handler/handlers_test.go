package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/yourorg/hoteldesk/internal/access"
	"github.com/yourorg/hoteldesk/internal/domain"
	"github.com/yourorg/hoteldesk/internal/security/audit"
	"github.com/yourorg/hoteldesk/internal/security/auth"
	"github.com/yourorg/hoteldesk/internal/security/middleware"
	"github.com/yourorg/hoteldesk/internal/service"
	"github.com/yourorg/hoteldesk/pkg/cache"
)

type fakeUserRepo struct {
	users map[int]*domain.User
}

func (f *fakeUserRepo) FindByUsername(_ context.Context, username string) (*domain.User, error) {
	for _, u := range f.users {
		if u.Username == username {
			copied := *u
			return &copied, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (f *fakeUserRepo) GetWithStaffDetails(_ context.Context, userID int) (*domain.User, error) {
	if u, ok := f.users[userID]; ok {
		copied := *u
		return &copied, nil
	}
	return nil, domain.ErrNotFound
}

func (f *fakeUserRepo) Create(_ context.Context, u *domain.User) error {
	f.users[u.UserID] = u
	return nil
}

func (f *fakeUserRepo) Delete(_ context.Context, userID int) error {
	delete(f.users, userID)
	return nil
}

func (f *fakeUserRepo) UpdateProfile(_ context.Context, u *domain.User, changePassword bool) error {
	existing, ok := f.users[u.UserID]
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

type fakeStaffRepo struct {
	entries []domain.Staff
}

func (f *fakeStaffRepo) List(_ context.Context) ([]domain.Staff, error) {
	return append([]domain.Staff(nil), f.entries...), nil
}
func (f *fakeStaffRepo) Add(_ context.Context, s *domain.Staff) error {
	f.entries = append(f.entries, *s)
	return nil
}
func (f *fakeStaffRepo) Update(_ context.Context, s *domain.Staff) error { return nil }
func (f *fakeStaffRepo) Delete(_ context.Context, userID int) error      { return nil }

type fakeBookingRepo struct{}

func (fakeBookingRepo) List(_ context.Context) ([]domain.Booking, error) { return nil, nil }
func (fakeBookingRepo) AvailableRooms(_ context.Context, _, _ time.Time) ([]domain.Room, error) {
	return nil, nil
}
func (fakeBookingRepo) CheckedInGuests(_ context.Context) (int, error)              { return 3, nil }
func (fakeBookingRepo) ExpectedCheckIns(_ context.Context, _ time.Time) (int, error) { return 1, nil }
func (fakeBookingRepo) ExpectedCheckOuts(_ context.Context, _ time.Time) (int, error) {
	return 2, nil
}
func (fakeBookingRepo) NewBookings(_ context.Context, _ time.Time) (int, error) { return 0, nil }
func (fakeBookingRepo) Revenue(_ context.Context, _ time.Time) (float64, error) { return 1200, nil }
func (fakeBookingRepo) ReleaseExpired(_ context.Context, _ time.Time) (int, error) {
	return 0, nil
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// testServer wires login, profile, staff and dashboard through the real
// auth middleware and access policy against in-memory repositories.
func testServer(t *testing.T) (*httptest.Server, *fakeStaffRepo) {
	t.Helper()

	hash := func(password string) string {
		h, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
		if err != nil {
			t.Fatalf("hash password: %v", err)
		}
		return string(h)
	}

	userRepo := &fakeUserRepo{users: map[int]*domain.User{
		1: {UserID: 1, Username: "boss", PasswordHash: hash("ManagerPass1"), Role: "manager",
			FirstName: "Max", LastName: "Mora", Email: "max@hotel.test", PhoneNumber: "555-0101"},
		2: {UserID: 2, Username: "desk", PasswordHash: hash("DeskPass1"), Role: "receptionist",
			FirstName: "Dana", LastName: "Reed", Email: "dana@hotel.test", PhoneNumber: "555-0102"},
	}}
	staffRepo := &fakeStaffRepo{}

	tokens := auth.NewTokenManager("test-secret", "hoteldesk")
	policy := access.DefaultPolicy()
	auditLog := audit.NewLogger(nil)

	authService := service.NewAuthService(userRepo, nil, tokens, time.Hour, nil)
	profileService := service.NewProfileService(userRepo, 8, nil)
	staffService := service.NewStaffService(staffRepo,
		[]string{"Admin", "Manager", "Receptionist", "Housekeeper", "Maintenance", "Chef"}, nil)
	bookingService := service.NewBookingService(fakeBookingRepo{}, cache.New(), time.Minute, nil)

	requireMutate := middleware.RequireAction(policy, access.MutateRecord, auditLog)
	requireStaffView := middleware.RequireAction(policy, access.ViewStaffSection, auditLog)
	log := discardLogger()

	mux := http.NewServeMux()
	mux.Handle("POST /api/login", NewLoginHandler(authService, auditLog, log))
	mux.Handle("/api/profile", NewProfileHandler(profileService, auditLog, log))
	staffHandler := NewStaffHandler(staffService, auditLog, nil, log)
	mux.Handle("GET /api/staff", requireStaffView(http.HandlerFunc(staffHandler.List)))
	mux.Handle("POST /api/staff", requireMutate(http.HandlerFunc(staffHandler.Add)))
	mux.Handle("GET /api/dashboard", NewDashboardHandler(bookingService, policy, log))

	root := middleware.JWTMiddleware(tokens, nil, log)(mux)
	server := httptest.NewServer(root)
	t.Cleanup(server.Close)
	return server, staffRepo
}

func login(t *testing.T, server *httptest.Server, username, password string) string {
	t.Helper()

	body, _ := json.Marshal(map[string]string{"username": username, "password": password})
	resp, err := http.Post(server.URL+"/api/login", "application/json", bytes.NewReader(body))
	if err != nil {
		t.Fatalf("login request failed: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("login returned %d", resp.StatusCode)
	}

	var result service.LoginResult
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		t.Fatalf("decode login response: %v", err)
	}
	return result.Token
}

func doJSON(t *testing.T, method, url, token string, payload any) *http.Response {
	t.Helper()

	var body *bytes.Reader
	if payload != nil {
		data, _ := json.Marshal(payload)
		body = bytes.NewReader(data)
	} else {
		body = bytes.NewReader(nil)
	}

	req, err := http.NewRequest(method, url, body)
	if err != nil {
		t.Fatalf("build request: %v", err)
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	return resp
}

func TestLoginEndpoint(t *testing.T) {
	server, _ := testServer(t)

	token := login(t, server, "desk", "DeskPass1")
	if token == "" {
		t.Fatal("expected a token")
	}

	body, _ := json.Marshal(map[string]string{"username": "desk", "password": "wrong"})
	resp, err := http.Post(server.URL+"/api/login", "application/json", bytes.NewReader(body))
	if err != nil {
		t.Fatalf("login request failed: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("expected 401 for bad password, got %d", resp.StatusCode)
	}
}

func TestProfileRequiresAuth(t *testing.T) {
	server, _ := testServer(t)

	resp := doJSON(t, http.MethodGet, server.URL+"/api/profile", "", nil)
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("expected 401 without token, got %d", resp.StatusCode)
	}
}

func TestProfileRoundTrip(t *testing.T) {
	server, _ := testServer(t)
	token := login(t, server, "desk", "DeskPass1")

	resp := doJSON(t, http.MethodGet, server.URL+"/api/profile", token, nil)
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	var raw map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		t.Fatalf("decode profile: %v", err)
	}
	if raw["username"] != "desk" || raw["full_name"] != "Dana Reed" {
		t.Fatalf("unexpected profile: %v", raw)
	}
	// The credential hash must never appear in a response
	for key := range raw {
		if key == "password" || key == "password_hash" {
			t.Fatalf("response leaks %q", key)
		}
	}

	update := service.UpdateProfileRequest{
		FirstName:   "Dana",
		LastName:    "Reed-Cole",
		Email:       "dana.cole@hotel.test",
		PhoneNumber: "555-0177",
	}
	resp2 := doJSON(t, http.MethodPut, server.URL+"/api/profile", token, update)
	defer resp2.Body.Close()
	if resp2.StatusCode != http.StatusOK {
		t.Fatalf("expected 200 on update, got %d", resp2.StatusCode)
	}

	var updated map[string]any
	json.NewDecoder(resp2.Body).Decode(&updated)
	if updated["full_name"] != "Dana Reed-Cole" {
		t.Fatalf("update not reflected: %v", updated)
	}
}

func TestProfileUpdateValidationStatus(t *testing.T) {
	server, _ := testServer(t)
	token := login(t, server, "desk", "DeskPass1")

	update := service.UpdateProfileRequest{
		FirstName:   "Dana",
		LastName:    "Reed",
		Email:       "not-an-email",
		PhoneNumber: "555-0102",
	}
	resp := doJSON(t, http.MethodPut, server.URL+"/api/profile", token, update)
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400 for invalid email, got %d", resp.StatusCode)
	}

	var body ErrorResponse
	json.NewDecoder(resp.Body).Decode(&body)
	if body.Field != "email" {
		t.Fatalf("expected email field flagged, got %+v", body)
	}
}

func TestStaffMutationRequiresAdministrativeRole(t *testing.T) {
	server, staffRepo := testServer(t)

	payload := StaffRequest{
		UserID:    9,
		FirstName: "New",
		LastName:  "Hire",
		Position:  "Chef",
	}

	deskToken := login(t, server, "desk", "DeskPass1")
	resp := doJSON(t, http.MethodPost, server.URL+"/api/staff", deskToken, payload)
	resp.Body.Close()
	if resp.StatusCode != http.StatusForbidden {
		t.Fatalf("receptionist should be denied, got %d", resp.StatusCode)
	}
	if len(staffRepo.entries) != 0 {
		t.Fatal("denied mutation must not write")
	}

	bossToken := login(t, server, "boss", "ManagerPass1")
	resp2 := doJSON(t, http.MethodPost, server.URL+"/api/staff", bossToken, payload)
	resp2.Body.Close()
	if resp2.StatusCode != http.StatusCreated {
		t.Fatalf("manager should be allowed, got %d", resp2.StatusCode)
	}
	if len(staffRepo.entries) != 1 {
		t.Fatal("mutation should have been stored")
	}
}

func TestStaffListRequiresAdministrativeRole(t *testing.T) {
	server, _ := testServer(t)

	deskToken := login(t, server, "desk", "DeskPass1")
	resp := doJSON(t, http.MethodGet, server.URL+"/api/staff", deskToken, nil)
	resp.Body.Close()
	if resp.StatusCode != http.StatusForbidden {
		t.Fatalf("receptionist should not see the staff section, got %d", resp.StatusCode)
	}

	bossToken := login(t, server, "boss", "ManagerPass1")
	resp2 := doJSON(t, http.MethodGet, server.URL+"/api/staff", bossToken, nil)
	resp2.Body.Close()
	if resp2.StatusCode != http.StatusOK {
		t.Fatalf("manager should see the staff section, got %d", resp2.StatusCode)
	}
}

func TestDashboardHidesRevenueFromRegularStaff(t *testing.T) {
	server, _ := testServer(t)

	deskToken := login(t, server, "desk", "DeskPass1")
	resp := doJSON(t, http.MethodGet, server.URL+"/api/dashboard", deskToken, nil)
	defer resp.Body.Close()
	var deskView map[string]any
	json.NewDecoder(resp.Body).Decode(&deskView)
	if _, ok := deskView["revenue_today"]; ok {
		t.Fatal("receptionist must not see revenue")
	}
	if deskView["checked_in_guests"] != float64(3) {
		t.Fatalf("counters should be visible to everyone: %v", deskView)
	}

	bossToken := login(t, server, "boss", "ManagerPass1")
	resp2 := doJSON(t, http.MethodGet, server.URL+"/api/dashboard", bossToken, nil)
	defer resp2.Body.Close()
	var bossView map[string]any
	json.NewDecoder(resp2.Body).Decode(&bossView)
	if bossView["revenue_today"] != float64(1200) {
		t.Fatalf("manager should see revenue: %v", bossView)
	}
}
