package response

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/cmlabs-hris/hrms-lite/internal/domain/attendance"
	"github.com/cmlabs-hris/hrms-lite/internal/domain/employee"
	"github.com/cmlabs-hris/hrms-lite/internal/domain/insight"
	"github.com/cmlabs-hris/hrms-lite/internal/domain/review"
	"github.com/cmlabs-hris/hrms-lite/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	switch {
	// Employee domain errors
	case errors.Is(err, employee.ErrEmployeeNotFound):
		NotFound(w, "Employee not found")
	case errors.Is(err, employee.ErrInvalidDepartment):
		ValidationError(w, map[string]string{"department": err.Error()})

	// Attendance domain errors
	case errors.Is(err, attendance.ErrInvalidStatus):
		ValidationError(w, map[string]string{"status": err.Error()})
	case errors.Is(err, attendance.ErrInvalidDate):
		ValidationError(w, map[string]string{"date": err.Error()})

	// Review domain errors
	case errors.Is(err, review.ErrEmptySummary):
		ValidationError(w, map[string]string{"summary": err.Error()})

	// Insight workflow errors
	case errors.Is(err, insight.ErrNoDraft):
		Conflict(w, "There is no insight draft to approve")
	case errors.Is(err, insight.ErrDraftSuperseded):
		Conflict(w, "A newer insight request replaced this one")
	case errors.Is(err, insight.ErrGenerationFailed):
		BadGateway(w, "Insight generation failed, please try again")

	// Default
	default:
		slog.Error("Unhandled error", "error", err)
		InternalServerError(w, "An unexpected error occurred")
	}
}
