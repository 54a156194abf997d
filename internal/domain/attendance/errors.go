package attendance

import "errors"

// Attendance domain errors
var (
	ErrInvalidStatus = errors.New("attendance status must be one of present, absent, late, leave")
	ErrInvalidDate   = errors.New("attendance date must be in YYYY-MM-DD format")
)
