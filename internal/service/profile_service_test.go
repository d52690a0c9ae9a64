package service

import (
	"context"
	"errors"
	"testing"

	"golang.org/x/crypto/bcrypt"

	"github.com/yourorg/hoteldesk/internal/domain"
)

func TestProfileUpdateValidFields(t *testing.T) {
	repo := newMemUserRepo()
	s := NewProfileService(repo, 8, nil)
	ctx := context.Background()

	u := seedLoginUser(t, repo, "jdoe", "Password123", "receptionist")

	err := s.Update(ctx, u.UserID, UpdateProfileRequest{
		FirstName:   "Jane",
		LastName:    "Doe",
		Email:       "jane.doe@hotel.test",
		PhoneNumber: "+1 (555) 010-4477",
	})
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}

	loaded, err := s.Get(ctx, u.UserID)
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if loaded.FirstName != "Jane" || loaded.Email != "jane.doe@hotel.test" {
		t.Fatalf("profile not applied: %+v", loaded)
	}
}

func TestProfileUpdatePasswordChange(t *testing.T) {
	repo := newMemUserRepo()
	s := NewProfileService(repo, 8, nil)
	ctx := context.Background()

	u := seedLoginUser(t, repo, "jdoe", "Password123", "receptionist")
	oldHash := u.PasswordHash

	err := s.Update(ctx, u.UserID, UpdateProfileRequest{
		FirstName:       "Jane",
		LastName:        "Doe",
		Email:           "jane@hotel.test",
		PhoneNumber:     "555-0100",
		Password:        "NewSecret99",
		ConfirmPassword: "NewSecret99",
	})
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}

	loaded, _ := s.Get(ctx, u.UserID)
	if loaded.PasswordHash == oldHash {
		t.Fatal("password hash should have changed")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(loaded.PasswordHash), []byte("NewSecret99")); err != nil {
		t.Fatalf("new password does not verify: %v", err)
	}
}

func TestProfileUpdateValidation(t *testing.T) {
	repo := newMemUserRepo()
	s := NewProfileService(repo, 8, nil)
	ctx := context.Background()

	u := seedLoginUser(t, repo, "jdoe", "Password123", "receptionist")

	valid := UpdateProfileRequest{
		FirstName:   "Jane",
		LastName:    "Doe",
		Email:       "jane@hotel.test",
		PhoneNumber: "555-0100",
	}

	cases := []struct {
		name   string
		mutate func(*UpdateProfileRequest)
		field  string
	}{
		{"missing first name", func(r *UpdateProfileRequest) { r.FirstName = " " }, "first_name"},
		{"missing last name", func(r *UpdateProfileRequest) { r.LastName = "" }, "last_name"},
		{"bad email", func(r *UpdateProfileRequest) { r.Email = "not-an-email" }, "email"},
		{"empty email", func(r *UpdateProfileRequest) { r.Email = "" }, "email"},
		{"bad phone", func(r *UpdateProfileRequest) { r.PhoneNumber = "call me" }, "phone_number"},
		{"short password", func(r *UpdateProfileRequest) {
			r.Password = "short"
			r.ConfirmPassword = "short"
		}, "password"},
		{"password mismatch", func(r *UpdateProfileRequest) {
			r.Password = "LongEnough1"
			r.ConfirmPassword = "LongEnough2"
		}, "confirm_password"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := valid
			tc.mutate(&req)

			err := s.Update(ctx, u.UserID, req)
			if !domain.IsValidation(err) {
				t.Fatalf("expected validation error, got %v", err)
			}
			var ve *domain.ValidationError
			if errors.As(err, &ve) && ve.Field != tc.field {
				t.Fatalf("expected field %q, got %q", tc.field, ve.Field)
			}
		})
	}
}

func TestProfileUpdateUnknownUser(t *testing.T) {
	repo := newMemUserRepo()
	s := NewProfileService(repo, 8, nil)

	err := s.Update(context.Background(), 999, UpdateProfileRequest{
		FirstName:   "Jane",
		LastName:    "Doe",
		Email:       "jane@hotel.test",
		PhoneNumber: "555-0100",
	})
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
