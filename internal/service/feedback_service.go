package service

import (
	"context"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/yourorg/hoteldesk/internal/domain"
	"github.com/yourorg/hoteldesk/internal/listing"
	"github.com/yourorg/hoteldesk/internal/observability/metrics"
)

// feedbackFields wires guest feedback into the list engine: free-text search
// scans the comment text and the guest's name; the categorical filter is the
// star rating.
var feedbackFields = listing.Fields[domain.Feedback]{
	Search: []func(domain.Feedback) string{
		func(f domain.Feedback) string { return f.Comments },
		func(f domain.Feedback) string { return f.CustomerName },
	},
	Category: func(f domain.Feedback) string { return strconv.Itoa(f.Rating) },
}

// FeedbackService handles guest feedback
type FeedbackService struct {
	feedbackRepo domain.FeedbackRepository
	logger       *slog.Logger
}

// NewFeedbackService creates a new feedback service
func NewFeedbackService(feedbackRepo domain.FeedbackRepository, logger *slog.Logger) *FeedbackService {
	if logger == nil {
		logger = slog.Default()
	}

	return &FeedbackService{
		feedbackRepo: feedbackRepo,
		logger:       logger,
	}
}

// List returns one page of feedback, filtered by search term and rating
func (s *FeedbackService) List(ctx context.Context, req listing.Request) (listing.Page[domain.Feedback], error) {
	entries, err := s.feedbackRepo.List(ctx)
	if err != nil {
		return listing.Page[domain.Feedback]{}, err
	}

	metrics.ObserveListRequest("feedback")
	return listing.Paginate(entries, feedbackFields, req), nil
}

// Submit validates and records a feedback entry, stamping the submission
// date when the caller left it unset
func (s *FeedbackService) Submit(ctx context.Context, feedback *domain.Feedback) error {
	if feedback.CustomerID <= 0 {
		return &domain.ValidationError{Field: "customer_id", Reason: "customer is required"}
	}
	if feedback.Rating < 1 || feedback.Rating > 5 {
		return &domain.ValidationError{Field: "rating", Reason: "rating must be between 1 and 5"}
	}
	if strings.TrimSpace(feedback.Comments) == "" {
		return &domain.ValidationError{Field: "comments", Reason: "comments are required"}
	}

	if feedback.FeedbackDate.IsZero() {
		feedback.FeedbackDate = time.Now()
	}

	if err := s.feedbackRepo.Add(ctx, feedback); err != nil {
		metrics.ObserveMutation("feedback", "add", "failure")
		return err
	}

	s.logger.Info("feedback submitted",
		slog.Int("feedback_id", feedback.FeedbackID),
		slog.Int("customer_id", feedback.CustomerID),
		slog.Int("rating", feedback.Rating),
	)
	metrics.ObserveMutation("feedback", "add", "success")
	return nil
}
