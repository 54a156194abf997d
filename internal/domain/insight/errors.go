package insight

import "errors"

var (
	ErrNoDraft = errors.New("there is no insight draft to approve")
	// ErrGenerationFailed wraps every provider failure. Callers may retry.
	ErrGenerationFailed = errors.New("insight generation failed")
	// ErrDraftSuperseded is returned to a generation that finished after a newer one started.
	ErrDraftSuperseded = errors.New("insight draft was superseded by a newer request")
)
