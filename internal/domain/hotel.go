package domain

import (
	"context"
	"time"
)

// Customer represents a hotel guest on record
type Customer struct {
	CustomerID  int
	FirstName   string
	LastName    string
	Email       string
	PhoneNumber string
}

// FullName returns the customer's display name.
func (c *Customer) FullName() string {
	if c.FirstName == "" {
		return c.LastName
	}
	if c.LastName == "" {
		return c.FirstName
	}
	return c.FirstName + " " + c.LastName
}

// CustomerRepository defines data access for customers
type CustomerRepository interface {
	List(ctx context.Context) ([]Customer, error)
}

// Room statuses as stored in the rooms table
const (
	RoomAvailable   = "Available"
	RoomOccupied    = "Occupied"
	RoomMaintenance = "Maintenance"
)

// Room represents a hotel room
type Room struct {
	RoomID      int
	RoomNumber  string
	Type        string
	Price       float64
	Status      string
	Floor       int
	Description string
}

// Booking statuses as stored in the bookings table
const (
	BookingConfirmed  = "Confirmed"
	BookingCheckedIn  = "Checked-In"
	BookingCheckedOut = "Checked-Out"
	BookingCancelled  = "Cancelled"
)

// Booking represents a room reservation. CustomerName and RoomNumber are
// denormalized from the joined rows for list views.
type Booking struct {
	BookingID    int
	CustomerID   int
	RoomID       int
	CustomerName string
	RoomNumber   string
	CheckInDate  time.Time
	CheckOutDate time.Time
	Status       string
	TotalPrice   float64
}

// DashboardStats holds the front-desk counters for the current day
type DashboardStats struct {
	CheckedInGuests   int
	ExpectedCheckIns  int
	ExpectedCheckOuts int
	NewBookingsToday  int
	RevenueToday      float64
}

// BookingRepository defines data access for bookings, room availability and
// the front-desk dashboard counters
type BookingRepository interface {
	List(ctx context.Context) ([]Booking, error)
	AvailableRooms(ctx context.Context, checkIn, checkOut time.Time) ([]Room, error)
	CheckedInGuests(ctx context.Context) (int, error)
	ExpectedCheckIns(ctx context.Context, day time.Time) (int, error)
	ExpectedCheckOuts(ctx context.Context, day time.Time) (int, error)
	NewBookings(ctx context.Context, day time.Time) (int, error)
	Revenue(ctx context.Context, day time.Time) (float64, error)
	// ReleaseExpired checks out bookings whose check-out date has passed and
	// frees their rooms, returning how many bookings were closed.
	ReleaseExpired(ctx context.Context, now time.Time) (int, error)
}

// Feedback represents a guest feedback entry. CustomerName is denormalized
// from the customers table for list views.
type Feedback struct {
	FeedbackID   int
	CustomerID   int
	BookingID    int // 0 when the feedback is not tied to a booking
	CustomerName string
	Rating       int
	Comments     string
	FeedbackDate time.Time
}

// FeedbackRepository defines data access for guest feedback
type FeedbackRepository interface {
	List(ctx context.Context) ([]Feedback, error)
	Add(ctx context.Context, feedback *Feedback) error
}
