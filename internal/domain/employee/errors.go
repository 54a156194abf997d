package employee

import "errors"

var (
	ErrEmployeeNotFound  = errors.New("employee not found")
	ErrInvalidDepartment = errors.New("department is not one of the known departments")
)
