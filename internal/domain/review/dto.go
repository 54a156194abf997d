package review

import (
	"strings"
	"time"

	"github.com/cmlabs-hris/hrms-lite/internal/pkg/utils"
	"github.com/cmlabs-hris/hrms-lite/internal/pkg/validator"
)

type AddReviewRequest struct {
	EmployeeID string `json:"-"`
	Summary    string `json:"summary"`
}

func (r *AddReviewRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_id",
			Message: "employee_id is required",
		})
	}

	if validator.IsEmpty(r.Summary) {
		errs = append(errs, validator.ValidationError{
			Field:   "summary",
			Message: ErrEmptySummary.Error(),
		})
	}

	if len(errs) > 0 {
		return errs
	}

	r.Summary = strings.TrimSpace(r.Summary)
	return nil
}

type ReviewResponse struct {
	ID         string `json:"id"`
	EmployeeID string `json:"employee_id"`
	Date       string `json:"date"`
	Summary    string `json:"summary"`
	CreatedAt  string `json:"created_at"`
}

func NewReviewResponse(r PerformanceReview) ReviewResponse {
	return ReviewResponse{
		ID:         r.ID,
		EmployeeID: r.EmployeeID,
		Date:       utils.FormatDate(r.Date),
		Summary:    r.Summary,
		CreatedAt:  r.CreatedAt.UTC().Format(time.RFC3339),
	}
}
