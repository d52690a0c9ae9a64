package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/yourorg/hoteldesk/internal/domain"
	"github.com/yourorg/hoteldesk/internal/listing"
	"github.com/yourorg/hoteldesk/internal/observability/metrics"
)

// staffFields wires the staff directory into the list engine: free-text
// search scans name, email and phone; the categorical filter is the position.
var staffFields = listing.Fields[domain.Staff]{
	Search: []func(domain.Staff) string{
		func(s domain.Staff) string { return s.FirstName },
		func(s domain.Staff) string { return s.LastName },
		func(s domain.Staff) string { return s.Email },
		func(s domain.Staff) string { return s.PhoneNumber },
	},
	Category: func(s domain.Staff) string { return s.Position },
}

// StaffService handles the staff directory
type StaffService struct {
	staffRepo domain.StaffRepository
	positions []string
	logger    *slog.Logger
}

// NewStaffService creates a new staff service. positions is the closed set
// of job titles a staff member may hold.
func NewStaffService(staffRepo domain.StaffRepository, positions []string, logger *slog.Logger) *StaffService {
	if logger == nil {
		logger = slog.Default()
	}

	return &StaffService{
		staffRepo: staffRepo,
		positions: positions,
		logger:    logger,
	}
}

// List returns one page of the staff directory, filtered by search term and
// position
func (s *StaffService) List(ctx context.Context, req listing.Request) (listing.Page[domain.Staff], error) {
	staff, err := s.staffRepo.List(ctx)
	if err != nil {
		return listing.Page[domain.Staff]{}, err
	}

	metrics.ObserveListRequest("staff")
	return listing.Paginate(staff, staffFields, req), nil
}

// Add validates and inserts a staff directory entry
func (s *StaffService) Add(ctx context.Context, staff *domain.Staff) error {
	if err := s.validate(staff); err != nil {
		return err
	}

	if err := s.staffRepo.Add(ctx, staff); err != nil {
		metrics.ObserveMutation("staff", "add", "failure")
		return err
	}

	s.logger.Info("staff added",
		slog.Int("user_id", staff.UserID),
		slog.String("position", staff.Position),
	)
	metrics.ObserveMutation("staff", "add", "success")
	return nil
}

// Update validates and replaces a staff directory entry
func (s *StaffService) Update(ctx context.Context, staff *domain.Staff) error {
	if err := s.validate(staff); err != nil {
		return err
	}

	if err := s.staffRepo.Update(ctx, staff); err != nil {
		metrics.ObserveMutation("staff", "update", "failure")
		return err
	}

	s.logger.Info("staff updated", slog.Int("user_id", staff.UserID))
	metrics.ObserveMutation("staff", "update", "success")
	return nil
}

// Delete removes a staff directory entry
func (s *StaffService) Delete(ctx context.Context, userID int) error {
	if err := s.staffRepo.Delete(ctx, userID); err != nil {
		metrics.ObserveMutation("staff", "delete", "failure")
		return err
	}

	s.logger.Info("staff deleted", slog.Int("user_id", userID))
	metrics.ObserveMutation("staff", "delete", "success")
	return nil
}

func (s *StaffService) validate(staff *domain.Staff) error {
	if strings.TrimSpace(staff.FirstName) == "" {
		return &domain.ValidationError{Field: "first_name", Reason: "first name is required"}
	}
	if strings.TrimSpace(staff.LastName) == "" {
		return &domain.ValidationError{Field: "last_name", Reason: "last name is required"}
	}
	if staff.Email != "" && !emailPattern.MatchString(staff.Email) {
		return &domain.ValidationError{Field: "email", Reason: "invalid email address"}
	}
	if staff.PhoneNumber != "" && !phonePattern.MatchString(staff.PhoneNumber) {
		return &domain.ValidationError{Field: "phone_number", Reason: "invalid phone number"}
	}
	if !s.validPosition(staff.Position) {
		return &domain.ValidationError{
			Field:  "position",
			Reason: fmt.Sprintf("position must be one of: %s", strings.Join(s.positions, ", ")),
		}
	}
	return nil
}

func (s *StaffService) validPosition(position string) bool {
	for _, p := range s.positions {
		if p == position {
			return true
		}
	}
	return false
}
