package memory

import (
	"context"
	"slices"
	"strings"
	"time"

	"github.com/cmlabs-hris/hrms-lite/internal/domain/employee"
	"github.com/cmlabs-hris/hrms-lite/internal/domain/review"
	"github.com/cmlabs-hris/hrms-lite/internal/pkg/utils"
)

type reviewRepository struct {
	store *Store
}

func NewReviewRepository(store *Store) review.ReviewRepository {
	return &reviewRepository{store: store}
}

// Create implements review.ReviewRepository.
func (r *reviewRepository) Create(_ context.Context, employeeID string, date time.Time, summary string) (review.PerformanceReview, error) {
	summary = strings.TrimSpace(summary)
	if summary == "" {
		return review.PerformanceReview{}, review.ErrEmptySummary
	}

	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if !r.store.employeeExistsLocked(employeeID) {
		return review.PerformanceReview{}, employee.ErrEmployeeNotFound
	}

	created := review.PerformanceReview{
		ID:         r.store.newID(),
		EmployeeID: employeeID,
		Date:       utils.DateOnly(date),
		Summary:    summary,
		CreatedAt:  r.store.clock.Now().UTC(),
	}
	r.store.reviews = append(r.store.reviews, created)
	return created, nil
}

// ListByEmployee implements review.ReviewRepository.
func (r *reviewRepository) ListByEmployee(_ context.Context, employeeID string) ([]review.PerformanceReview, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	// Walk backwards so the stable sort below puts later entries first on equal dates.
	result := make([]review.PerformanceReview, 0)
	for i := len(r.store.reviews) - 1; i >= 0; i-- {
		if r.store.reviews[i].EmployeeID == employeeID {
			result = append(result, r.store.reviews[i])
		}
	}

	slices.SortStableFunc(result, func(a, b review.PerformanceReview) int {
		return b.Date.Compare(a.Date)
	})
	return result, nil
}
