package repository

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	_ "modernc.org/sqlite"

	"github.com/yourorg/hoteldesk/internal/domain"
)

// openTestDB gives each test a fresh in-memory SQLite database with the
// users and staff tables. SQLite binds the numbered placeholders the same
// way PostgreSQL does as long as they appear in order, which ours do.
func openTestDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { db.Close() })

	schema := `
		CREATE TABLE users (
			user_id  INTEGER PRIMARY KEY AUTOINCREMENT,
			username TEXT NOT NULL UNIQUE,
			password TEXT NOT NULL,
			role     TEXT NOT NULL DEFAULT 'receptionist'
		);
		CREATE TABLE staff (
			user_id      INTEGER PRIMARY KEY,
			first_name   TEXT NOT NULL,
			last_name    TEXT NOT NULL,
			phone_number TEXT,
			email        TEXT,
			position     TEXT,
			hire_date    DATE,
			salary       REAL,
			address      TEXT
		);
	`
	if _, err := db.Exec(schema); err != nil {
		t.Fatalf("create schema: %v", err)
	}
	return db
}

func seedUser(t *testing.T, db *sql.DB, username, password, role string) int {
	t.Helper()

	var id int
	err := db.QueryRow(
		`INSERT INTO users (username, password, role) VALUES ($1, $2, $3) RETURNING user_id`,
		username, password, role,
	).Scan(&id)
	if err != nil {
		t.Fatalf("seed user: %v", err)
	}
	return id
}

func seedStaff(t *testing.T, db *sql.DB, userID int, firstName, lastName string) {
	t.Helper()

	_, err := db.Exec(
		`INSERT INTO staff (user_id, first_name, last_name, email, phone_number, position)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		userID, firstName, lastName, "old@hotel.test", "555-0100", "Receptionist",
	)
	if err != nil {
		t.Fatalf("seed staff: %v", err)
	}
}

func TestFindByUsername(t *testing.T) {
	db := openTestDB(t)
	repo := NewPostgresUserRepository(db, nil)
	ctx := context.Background()

	seedUser(t, db, "jdoe", "hash-1", "receptionist")

	user, err := repo.FindByUsername(ctx, "jdoe")
	if err != nil {
		t.Fatalf("find failed: %v", err)
	}
	if user.Username != "jdoe" || user.PasswordHash != "hash-1" || user.Role != "receptionist" {
		t.Fatalf("unexpected user: %+v", user)
	}

	// Lookup is exact and case-sensitive
	if _, err := repo.FindByUsername(ctx, "JDoe"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound for different case, got %v", err)
	}
	if _, err := repo.FindByUsername(ctx, "nobody"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestGetWithStaffDetails(t *testing.T) {
	db := openTestDB(t)
	repo := NewPostgresUserRepository(db, nil)
	ctx := context.Background()

	withStaff := seedUser(t, db, "jdoe", "hash-1", "receptionist")
	seedStaff(t, db, withStaff, "Jane", "Doe")
	identityOnly := seedUser(t, db, "svc", "hash-2", "admin")

	user, err := repo.GetWithStaffDetails(ctx, withStaff)
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if user.FirstName != "Jane" || user.LastName != "Doe" || user.FullName() != "Jane Doe" {
		t.Fatalf("unexpected staff details: %+v", user)
	}

	// A user without a staff row still resolves, with empty details
	bare, err := repo.GetWithStaffDetails(ctx, identityOnly)
	if err != nil {
		t.Fatalf("get identity-only failed: %v", err)
	}
	if bare.FirstName != "" || bare.Position != "" {
		t.Fatalf("expected empty staff details, got %+v", bare)
	}

	if _, err := repo.GetWithStaffDetails(ctx, 9999); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestUpdateProfileUpdatesExistingStaff(t *testing.T) {
	db := openTestDB(t)
	repo := NewPostgresUserRepository(db, nil)
	ctx := context.Background()

	id := seedUser(t, db, "jdoe", "old-hash", "receptionist")
	seedStaff(t, db, id, "Jane", "Doe")

	err := repo.UpdateProfile(ctx, &domain.User{
		UserID:       id,
		PasswordHash: "new-hash",
		FirstName:    "Janet",
		LastName:     "Doe",
		Email:        "janet@hotel.test",
		PhoneNumber:  "555-0199",
	}, true)
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}

	user, err := repo.GetWithStaffDetails(ctx, id)
	if err != nil {
		t.Fatalf("reload failed: %v", err)
	}
	if user.PasswordHash != "new-hash" {
		t.Fatalf("password not updated: %q", user.PasswordHash)
	}
	if user.FirstName != "Janet" || user.Email != "janet@hotel.test" || user.PhoneNumber != "555-0199" {
		t.Fatalf("staff row not updated: %+v", user)
	}

	// Position was not part of the update and must survive
	if user.Position != "Receptionist" {
		t.Fatalf("position should be untouched, got %q", user.Position)
	}
}

func TestUpdateProfileInsertsMissingStaff(t *testing.T) {
	db := openTestDB(t)
	repo := NewPostgresUserRepository(db, nil)
	ctx := context.Background()

	id := seedUser(t, db, "jdoe", "hash", "receptionist")

	err := repo.UpdateProfile(ctx, &domain.User{
		UserID:      id,
		FirstName:   "Jane",
		LastName:    "Doe",
		Email:       "jane@hotel.test",
		PhoneNumber: "555-0100",
	}, false)
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}

	user, err := repo.GetWithStaffDetails(ctx, id)
	if err != nil {
		t.Fatalf("reload failed: %v", err)
	}
	if user.FirstName != "Jane" || user.LastName != "Doe" {
		t.Fatalf("staff row not inserted: %+v", user)
	}
	if user.PasswordHash != "hash" {
		t.Fatalf("password should be untouched, got %q", user.PasswordHash)
	}
}

func TestUpdateProfileUnknownUser(t *testing.T) {
	db := openTestDB(t)
	repo := NewPostgresUserRepository(db, nil)
	ctx := context.Background()

	err := repo.UpdateProfile(ctx, &domain.User{
		UserID:    42,
		FirstName: "Ghost",
		LastName:  "User",
	}, false)
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	var count int
	if err := db.QueryRow(`SELECT COUNT(*) FROM staff`).Scan(&count); err != nil {
		t.Fatalf("count staff: %v", err)
	}
	if count != 0 {
		t.Fatalf("no staff rows should exist, got %d", count)
	}
}

func TestUpdateProfileRollsBackPasswordOnStaffFailure(t *testing.T) {
	db := openTestDB(t)
	repo := NewPostgresUserRepository(db, nil)
	ctx := context.Background()

	id := seedUser(t, db, "jdoe", "old-hash", "receptionist")
	seedStaff(t, db, id, "Jane", "Doe")

	// Force the staff step to fail after the password step has already run
	// inside the same transaction.
	_, err := db.Exec(`
		CREATE TRIGGER staff_update_poison BEFORE UPDATE ON staff
		WHEN NEW.first_name = 'poison'
		BEGIN
			SELECT RAISE(ABORT, 'staff update rejected');
		END;
	`)
	if err != nil {
		t.Fatalf("create trigger: %v", err)
	}

	err = repo.UpdateProfile(ctx, &domain.User{
		UserID:       id,
		PasswordHash: "new-hash",
		FirstName:    "poison",
		LastName:     "Doe",
		Email:        "jane@hotel.test",
		PhoneNumber:  "555-0100",
	}, true)
	if err == nil {
		t.Fatal("expected staff update to fail")
	}

	// The password update must have been rolled back with it.
	var password string
	if err := db.QueryRow(`SELECT password FROM users WHERE user_id = $1`, id).Scan(&password); err != nil {
		t.Fatalf("reload password: %v", err)
	}
	if password != "old-hash" {
		t.Fatalf("password leaked through a failed transaction: %q", password)
	}

	var firstName string
	if err := db.QueryRow(`SELECT first_name FROM staff WHERE user_id = $1`, id).Scan(&firstName); err != nil {
		t.Fatalf("reload staff: %v", err)
	}
	if firstName != "Jane" {
		t.Fatalf("staff row changed despite failure: %q", firstName)
	}
}

func TestCreateAndDelete(t *testing.T) {
	db := openTestDB(t)
	repo := NewPostgresUserRepository(db, nil)
	ctx := context.Background()

	user := &domain.User{
		Username:     "newhire",
		PasswordHash: "hash",
		Role:         "housekeeper",
		FirstName:    "Sam",
		LastName:     "Lee",
		Position:     "Housekeeper",
	}
	if err := repo.Create(ctx, user); err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if user.UserID == 0 {
		t.Fatal("expected assigned user id")
	}

	loaded, err := repo.GetWithStaffDetails(ctx, user.UserID)
	if err != nil {
		t.Fatalf("reload failed: %v", err)
	}
	if loaded.FirstName != "Sam" || loaded.Position != "Housekeeper" {
		t.Fatalf("staff profile missing after create: %+v", loaded)
	}

	if err := repo.Delete(ctx, user.UserID); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if _, err := repo.FindByUsername(ctx, "newhire"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound after delete, got %v", err)
	}
	if err := repo.Delete(ctx, user.UserID); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound on second delete, got %v", err)
	}
}
