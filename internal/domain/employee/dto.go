package employee

import (
	"strings"
	"time"

	"github.com/cmlabs-hris/hrms-lite/internal/pkg/validator"
)

type CreateEmployeeRequest struct {
	FullName   string `json:"full_name" validate:"required,min=3"`
	Address    string `json:"address" validate:"required,min=5"`
	Department string `json:"department" validate:"required,oneof=Engineering HR Marketing Sales Finance"`
}

func (r *CreateEmployeeRequest) Validate() error {
	r.FullName = strings.TrimSpace(r.FullName)
	r.Address = strings.TrimSpace(r.Address)
	r.Department = strings.TrimSpace(r.Department)

	return validator.Struct(r)
}

type EmployeeResponse struct {
	ID         string `json:"id"`
	FullName   string `json:"full_name"`
	Address    string `json:"address"`
	Department string `json:"department"`
	AvatarURL  string `json:"avatar_url"`
	CreatedAt  string `json:"created_at"`
}

func NewEmployeeResponse(e Employee) EmployeeResponse {
	return EmployeeResponse{
		ID:         e.ID,
		FullName:   e.FullName,
		Address:    e.Address,
		Department: string(e.Department),
		AvatarURL:  e.AvatarURL,
		CreatedAt:  e.CreatedAt.UTC().Format(time.RFC3339),
	}
}
