package insight

import (
	"strings"
	"time"

	"github.com/cmlabs-hris/hrms-lite/internal/pkg/validator"
)

// DefaultSessionID is used when the caller does not name a session.
const DefaultSessionID = "default"

type GenerateDraftRequest struct {
	SessionID  string
	EmployeeID string
}

func (r GenerateDraftRequest) Key() SessionKey {
	return NewSessionKey(r.SessionID, r.EmployeeID)
}

func NewSessionKey(sessionID, employeeID string) SessionKey {
	sessionID = strings.TrimSpace(sessionID)
	if sessionID == "" {
		sessionID = DefaultSessionID
	}
	return SessionKey{SessionID: sessionID, EmployeeID: employeeID}
}

// PayloadInput is a curated version of the draft supplied at approval time.
type PayloadInput struct {
	Summary             string   `json:"summary"`
	Insights            []string `json:"insights"`
	AreasForDevelopment []string `json:"areas_for_development"`
}

// IsZero reports whether nothing was supplied, which means "approve the draft as is".
func (p PayloadInput) IsZero() bool {
	return p.Summary == "" && len(p.Insights) == 0 && len(p.AreasForDevelopment) == 0
}

func (p *PayloadInput) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(p.Summary) {
		errs = append(errs, validator.ValidationError{
			Field:   "summary",
			Message: "summary is required",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// ToPayload trims every entry and drops blank list items.
func (p PayloadInput) ToPayload() Payload {
	return NormalizePayload(Payload{
		Summary:             p.Summary,
		Insights:            p.Insights,
		AreasForDevelopment: p.AreasForDevelopment,
	})
}

// NormalizePayload trims text, drops blank list entries and guarantees non-nil lists.
func NormalizePayload(p Payload) Payload {
	return Payload{
		Summary:             strings.TrimSpace(p.Summary),
		Insights:            compact(p.Insights),
		AreasForDevelopment: compact(p.AreasForDevelopment),
	}
}

func compact(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}

type ApproveDraftRequest struct {
	SessionID  string
	EmployeeID string
	Payload    *PayloadInput
}

func (r *ApproveDraftRequest) Validate() error {
	if r.Payload == nil {
		return nil
	}
	return r.Payload.Validate()
}

func (r ApproveDraftRequest) Key() SessionKey {
	return NewSessionKey(r.SessionID, r.EmployeeID)
}

type DraftBody struct {
	Mode                string   `json:"mode"`
	Summary             string   `json:"summary"`
	Insights            []string `json:"insights"`
	AreasForDevelopment []string `json:"areas_for_development"`
	GeneratedAt         string   `json:"generated_at"`
}

type DraftResponse struct {
	SessionID   string     `json:"session_id"`
	EmployeeID  string     `json:"employee_id"`
	State       string     `json:"state"`
	LastOutcome string     `json:"last_outcome,omitempty"`
	LastError   string     `json:"last_error,omitempty"`
	Draft       *DraftBody `json:"draft"`
}

func NewDraftBody(d Draft) *DraftBody {
	p := d.Payload.Clone()
	return &DraftBody{
		Mode:                string(d.Mode),
		Summary:             p.Summary,
		Insights:            p.Insights,
		AreasForDevelopment: p.AreasForDevelopment,
		GeneratedAt:         d.GeneratedAt.UTC().Format(time.RFC3339),
	}
}

type InsightResponse struct {
	ID                  string   `json:"id"`
	EmployeeID          string   `json:"employee_id"`
	Summary             string   `json:"summary"`
	Insights            []string `json:"insights"`
	AreasForDevelopment []string `json:"areas_for_development"`
	CreatedAt           string   `json:"created_at"`
}

func NewInsightResponse(i Insight) InsightResponse {
	c := i.Clone()
	return InsightResponse{
		ID:                  c.ID,
		EmployeeID:          c.EmployeeID,
		Summary:             c.Summary,
		Insights:            c.Insights,
		AreasForDevelopment: c.AreasForDevelopment,
		CreatedAt:           c.CreatedAt.UTC().Format(time.RFC3339Nano),
	}
}
