package insight

import "time"

// Insight is an approved, immutable piece of generated analysis about an employee.
type Insight struct {
	ID                  string
	EmployeeID          string
	Summary             string
	Insights            []string
	AreasForDevelopment []string
	CreatedAt           time.Time
}

// Payload is the generated content, either held as a draft or persisted as an Insight.
type Payload struct {
	Summary             string
	Insights            []string
	AreasForDevelopment []string
}

// Clone returns a deep copy so callers cannot alias the lists.
func (p Payload) Clone() Payload {
	return Payload{
		Summary:             p.Summary,
		Insights:            cloneStrings(p.Insights),
		AreasForDevelopment: cloneStrings(p.AreasForDevelopment),
	}
}

// Clone returns a deep copy of the insight.
func (i Insight) Clone() Insight {
	out := i
	out.Insights = cloneStrings(i.Insights)
	out.AreasForDevelopment = cloneStrings(i.AreasForDevelopment)
	return out
}

func cloneStrings(in []string) []string {
	out := make([]string, len(in))
	copy(out, in)
	return out
}

// Mode selects which generation contract is used.
type Mode string

const (
	// ModeSummary asks for a short overview paragraph only.
	ModeSummary Mode = "summary"
	// ModeAnalysis asks for a summary plus insights and development areas.
	ModeAnalysis Mode = "analysis"
)

// State of a draft session.
type State string

const (
	StateIdle       State = "idle"
	StateGenerating State = "generating"
	StateDraftReady State = "draft_ready"
)

// Outcome records how the last draft of a session ended.
type Outcome string

const (
	OutcomeNone      Outcome = ""
	OutcomeApproved  Outcome = "approved"
	OutcomeDiscarded Outcome = "discarded"
	OutcomeFailed    Outcome = "failed"
	OutcomeExpired   Outcome = "expired"
)

// Draft is an unsaved candidate insight awaiting human approval.
type Draft struct {
	Mode        Mode
	Payload     Payload
	GeneratedAt time.Time
}

// SessionKey identifies a single draft slot.
type SessionKey struct {
	SessionID  string
	EmployeeID string
}
