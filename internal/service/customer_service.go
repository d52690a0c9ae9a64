package service

import (
	"context"
	"log/slog"

	"github.com/yourorg/hoteldesk/internal/domain"
	"github.com/yourorg/hoteldesk/internal/listing"
	"github.com/yourorg/hoteldesk/internal/observability/metrics"
)

// customerFields wires guests into the list engine: free-text search scans
// name, email and phone. Customers carry no categorical filter.
var customerFields = listing.Fields[domain.Customer]{
	Search: []func(domain.Customer) string{
		func(c domain.Customer) string { return c.FirstName },
		func(c domain.Customer) string { return c.LastName },
		func(c domain.Customer) string { return c.Email },
		func(c domain.Customer) string { return c.PhoneNumber },
	},
}

// CustomerService handles the guest directory
type CustomerService struct {
	customerRepo domain.CustomerRepository
	logger       *slog.Logger
}

// NewCustomerService creates a new customer service
func NewCustomerService(customerRepo domain.CustomerRepository, logger *slog.Logger) *CustomerService {
	if logger == nil {
		logger = slog.Default()
	}

	return &CustomerService{
		customerRepo: customerRepo,
		logger:       logger,
	}
}

// List returns one page of guests, filtered by search term
func (s *CustomerService) List(ctx context.Context, req listing.Request) (listing.Page[domain.Customer], error) {
	customers, err := s.customerRepo.List(ctx)
	if err != nil {
		return listing.Page[domain.Customer]{}, err
	}

	metrics.ObserveListRequest("customers")
	return listing.Paginate(customers, customerFields, req), nil
}
