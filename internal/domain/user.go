package domain

import (
	"context"
	"time"
)

// User represents a login identity. The staff detail fields are populated
// by GetWithStaffDetails and stay empty for identity-only accounts.
type User struct {
	UserID       int
	Username     string // Unique login name
	PasswordHash string // Bcrypt hashed password (not returned in API)
	Role         string // Raw role text, parsed by the access package at the boundary

	// Staff details (optional, 1:1 by user_id)
	FirstName   string
	LastName    string
	PhoneNumber string
	Email       string
	Position    string
}

// FullName returns the display name assembled from the staff detail fields.
func (u *User) FullName() string {
	switch {
	case u.FirstName == "":
		return u.LastName
	case u.LastName == "":
		return u.FirstName
	default:
		return u.FirstName + " " + u.LastName
	}
}

// UserRepository defines data access for users and their staff profiles
type UserRepository interface {
	// FindByUsername does an exact, case-sensitive lookup.
	// A missing row is ErrNotFound, which callers treat as a valid result.
	FindByUsername(ctx context.Context, username string) (*User, error)
	// GetWithStaffDetails left-joins the staff profile onto the identity.
	GetWithStaffDetails(ctx context.Context, userID int) (*User, error)
	Create(ctx context.Context, user *User) error
	Delete(ctx context.Context, userID int) error
	// UpdateProfile synchronizes the identity and its staff profile in one
	// transaction: the password (when changePassword is set) and the staff
	// row change together or not at all.
	UpdateProfile(ctx context.Context, user *User, changePassword bool) error
}

// Staff represents a staff directory entry
type Staff struct {
	UserID      int
	FirstName   string
	LastName    string
	PhoneNumber string
	Email       string
	Position    string
	HireDate    time.Time
	Salary      float64
	Address     string
}

// StaffRepository defines data access for the staff directory
type StaffRepository interface {
	List(ctx context.Context) ([]Staff, error)
	Add(ctx context.Context, staff *Staff) error
	Update(ctx context.Context, staff *Staff) error
	Delete(ctx context.Context, userID int) error
}

// SessionStore tracks revoked session tokens until they expire on their own
type SessionStore interface {
	Revoke(ctx context.Context, tokenID string, ttl time.Duration) error
	IsRevoked(ctx context.Context, tokenID string) (bool, error)
}
