package review

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/cmlabs-hris/hrms-lite/internal/domain/review"
	"github.com/cmlabs-hris/hrms-lite/internal/pkg/sse"
	"github.com/cmlabs-hris/hrms-lite/internal/pkg/utils"
)

type ReviewServiceImpl struct {
	reviewRepo review.ReviewRepository
	events     sse.Publisher
	clock      utils.Clock
	loc        *time.Location
}

func NewReviewService(reviewRepo review.ReviewRepository, events sse.Publisher, clock utils.Clock, loc *time.Location) review.ReviewService {
	if events == nil {
		events = sse.Discard
	}
	if clock == nil {
		clock = utils.SystemClock()
	}
	if loc == nil {
		loc = time.UTC
	}
	return &ReviewServiceImpl{
		reviewRepo: reviewRepo,
		events:     events,
		clock:      clock,
		loc:        loc,
	}
}

// AddReview implements review.ReviewService. The review is dated on the current day.
func (s *ReviewServiceImpl) AddReview(ctx context.Context, req review.AddReviewRequest) (review.ReviewResponse, error) {
	if err := req.Validate(); err != nil {
		return review.ReviewResponse{}, err
	}

	created, err := s.reviewRepo.Create(ctx, req.EmployeeID, utils.Today(s.clock, s.loc), req.Summary)
	if err != nil {
		return review.ReviewResponse{}, fmt.Errorf("failed to add review: %w", err)
	}

	slog.Info("Performance review added", "employee_id", created.EmployeeID, "review_id", created.ID)

	resp := review.NewReviewResponse(created)
	s.events.Publish(sse.TopicRecords, sse.Event{Event: sse.EventReviewAdded, Data: resp})
	return resp, nil
}

// ListReviews implements review.ReviewService.
func (s *ReviewServiceImpl) ListReviews(ctx context.Context, employeeID string) ([]review.ReviewResponse, error) {
	reviews, err := s.reviewRepo.ListByEmployee(ctx, employeeID)
	if err != nil {
		return nil, fmt.Errorf("failed to list reviews: %w", err)
	}

	responses := make([]review.ReviewResponse, 0, len(reviews))
	for _, r := range reviews {
		responses = append(responses, review.NewReviewResponse(r))
	}
	return responses, nil
}
