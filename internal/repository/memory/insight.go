package memory

import (
	"context"
	"slices"

	"github.com/cmlabs-hris/hrms-lite/internal/domain/employee"
	"github.com/cmlabs-hris/hrms-lite/internal/domain/insight"
)

type insightRepository struct {
	store *Store
}

func NewInsightRepository(store *Store) insight.InsightRepository {
	return &insightRepository{store: store}
}

// Create implements insight.InsightRepository.
func (r *insightRepository) Create(_ context.Context, employeeID string, payload insight.Payload) (insight.Insight, error) {
	p := payload.Clone()

	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if !r.store.employeeExistsLocked(employeeID) {
		return insight.Insight{}, employee.ErrEmployeeNotFound
	}

	created := insight.Insight{
		ID:                  r.store.newID(),
		EmployeeID:          employeeID,
		Summary:             p.Summary,
		Insights:            p.Insights,
		AreasForDevelopment: p.AreasForDevelopment,
		CreatedAt:           r.store.clock.Now().UTC(),
	}
	r.store.insights = append(r.store.insights, created)
	return created.Clone(), nil
}

// ListByEmployee implements insight.InsightRepository.
func (r *insightRepository) ListByEmployee(_ context.Context, employeeID string) ([]insight.Insight, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	result := make([]insight.Insight, 0)
	for i := len(r.store.insights) - 1; i >= 0; i-- {
		if r.store.insights[i].EmployeeID == employeeID {
			result = append(result, r.store.insights[i].Clone())
		}
	}

	slices.SortStableFunc(result, func(a, b insight.Insight) int {
		return b.CreatedAt.Compare(a.CreatedAt)
	})
	return result, nil
}
