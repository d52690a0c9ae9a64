package service

import (
	"context"
	"testing"

	"github.com/yourorg/hoteldesk/internal/domain"
	"github.com/yourorg/hoteldesk/internal/listing"
)

type memStaffRepo struct {
	entries []domain.Staff
}

func (m *memStaffRepo) List(_ context.Context) ([]domain.Staff, error) {
	return append([]domain.Staff(nil), m.entries...), nil
}

func (m *memStaffRepo) Add(_ context.Context, s *domain.Staff) error {
	m.entries = append(m.entries, *s)
	return nil
}

func (m *memStaffRepo) Update(_ context.Context, s *domain.Staff) error {
	for i := range m.entries {
		if m.entries[i].UserID == s.UserID {
			m.entries[i] = *s
			return nil
		}
	}
	return domain.ErrNotFound
}

func (m *memStaffRepo) Delete(_ context.Context, userID int) error {
	for i := range m.entries {
		if m.entries[i].UserID == userID {
			m.entries = append(m.entries[:i], m.entries[i+1:]...)
			return nil
		}
	}
	return domain.ErrNotFound
}

var testPositions = []string{"Admin", "Manager", "Receptionist", "Housekeeper", "Maintenance", "Chef"}

func TestStaffListFiltersByPosition(t *testing.T) {
	repo := &memStaffRepo{entries: []domain.Staff{
		{UserID: 1, FirstName: "Jane", LastName: "Doe", Position: "Receptionist"},
		{UserID: 2, FirstName: "Sam", LastName: "Lee", Position: "Chef"},
		{UserID: 3, FirstName: "Ana", LastName: "Diaz", Position: "Receptionist"},
	}}
	s := NewStaffService(repo, testPositions, nil)

	page, err := s.List(context.Background(), listing.Request{Category: "Receptionist", Page: 1, PageSize: 10})
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if page.TotalItems != 2 {
		t.Fatalf("expected 2 receptionists, got %d", page.TotalItems)
	}
	for _, entry := range page.Items {
		if entry.Position != "Receptionist" {
			t.Fatalf("filter leaked position %q", entry.Position)
		}
	}
}

func TestStaffListSearchesNameAndContact(t *testing.T) {
	repo := &memStaffRepo{entries: []domain.Staff{
		{UserID: 1, FirstName: "Jane", LastName: "Doe", Email: "jane@hotel.test", Position: "Receptionist"},
		{UserID: 2, FirstName: "Sam", LastName: "Lee", Email: "sam@hotel.test", Position: "Chef"},
	}}
	s := NewStaffService(repo, testPositions, nil)

	page, err := s.List(context.Background(), listing.Request{Search: "DOE", Page: 1, PageSize: 10})
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if page.TotalItems != 1 || page.Items[0].UserID != 1 {
		t.Fatalf("case-insensitive name search failed: %+v", page)
	}

	page, _ = s.List(context.Background(), listing.Request{Search: "sam@", Page: 1, PageSize: 10})
	if page.TotalItems != 1 || page.Items[0].UserID != 2 {
		t.Fatalf("email search failed: %+v", page)
	}
}

func TestStaffAddRejectsUnknownPosition(t *testing.T) {
	repo := &memStaffRepo{}
	s := NewStaffService(repo, testPositions, nil)

	err := s.Add(context.Background(), &domain.Staff{
		UserID:    1,
		FirstName: "Jane",
		LastName:  "Doe",
		Position:  "Astronaut",
	})
	if !domain.IsValidation(err) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if len(repo.entries) != 0 {
		t.Fatal("invalid staff must not be stored")
	}
}

func TestStaffUpdateUnknownEntry(t *testing.T) {
	s := NewStaffService(&memStaffRepo{}, testPositions, nil)

	err := s.Update(context.Background(), &domain.Staff{
		UserID:    7,
		FirstName: "Jane",
		LastName:  "Doe",
		Position:  "Chef",
	})
	if err != domain.ErrNotFound {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
