package review

import "context"

type ReviewService interface {
	AddReview(ctx context.Context, req AddReviewRequest) (ReviewResponse, error)
	ListReviews(ctx context.Context, employeeID string) ([]ReviewResponse, error)
}
