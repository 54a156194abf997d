package review

import "errors"

var (
	ErrEmptySummary = errors.New("review summary cannot be empty")
)
