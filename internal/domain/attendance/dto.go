package attendance

import (
	"strings"
	"time"

	"github.com/cmlabs-hris/hrms-lite/internal/pkg/utils"
	"github.com/cmlabs-hris/hrms-lite/internal/pkg/validator"
)

type MarkAttendanceRequest struct {
	EmployeeID string `json:"-"`
	Date       string `json:"date" validate:"required,datetime=2006-01-02"`
	Status     string `json:"status" validate:"required,oneof=present absent late leave"`
}

func (r *MarkAttendanceRequest) Validate() error {
	r.Date = strings.TrimSpace(r.Date)
	r.Status = strings.ToLower(strings.TrimSpace(r.Status))

	var errs validator.ValidationErrors
	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_id",
			Message: "employee_id is required",
		})
	}

	return validator.Merge(errs, validator.Struct(r))
}

// ParsedDate returns the calendar day of a validated request.
func (r *MarkAttendanceRequest) ParsedDate() (time.Time, error) {
	d, err := utils.ParseDate(r.Date)
	if err != nil {
		return time.Time{}, ErrInvalidDate
	}
	return d, nil
}

type ListAttendanceRequest struct {
	EmployeeID *string
}

type AttendanceResponse struct {
	ID         string `json:"id"`
	EmployeeID string `json:"employee_id"`
	Date       string `json:"date"`
	Status     string `json:"status"`
	UpdatedAt  string `json:"updated_at"`
}

func NewAttendanceResponse(a Attendance) AttendanceResponse {
	return AttendanceResponse{
		ID:         a.ID,
		EmployeeID: a.EmployeeID,
		Date:       utils.FormatDate(a.Date),
		Status:     string(a.Status),
		UpdatedAt:  a.UpdatedAt.UTC().Format(time.RFC3339),
	}
}

// TodayAttendanceItem is one row of the organization-wide attendance view.
type TodayAttendanceItem struct {
	EmployeeID string `json:"employee_id"`
	FullName   string `json:"full_name"`
	Department string `json:"department"`
	AvatarURL  string `json:"avatar_url"`
	Status     string `json:"status"`
}

type TodayAttendanceResponse struct {
	Date  string                `json:"date"`
	Items []TodayAttendanceItem `json:"items"`
}
