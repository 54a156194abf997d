package insight

import "context"

// AttendanceEntry is one attendance day as shown to the generator.
type AttendanceEntry struct {
	Date   string `json:"date"`
	Status string `json:"status"`
}

// ReviewEntry is one dated review as shown to the generator.
type ReviewEntry struct {
	Date    string `json:"date"`
	Summary string `json:"summary"`
}

// SummaryRequest is the input of the overview summary contract.
type SummaryRequest struct {
	FullName           string            `json:"fullName"`
	Address            string            `json:"address"`
	Department         string            `json:"department"`
	AttendanceRecords  []AttendanceEntry `json:"attendanceRecords"`
	PerformanceReviews []ReviewEntry     `json:"performanceReviews"`
}

type SummaryResult struct {
	Summary string `json:"summary"`
}

// InsightsRequest is the input of the structured insights contract.
type InsightsRequest struct {
	EmployeeName       string            `json:"employeeName"`
	AttendanceRecords  []AttendanceEntry `json:"attendanceRecords"`
	PerformanceReviews []string          `json:"performanceReviews"`
}

type InsightsResult struct {
	Summary             string   `json:"summary"`
	Insights            []string `json:"insights"`
	AreasForDevelopment []string `json:"areasForDevelopment"`
}

// Generator is the external text-generation capability. Implementations must
// return an error for missing or malformed output rather than a zero value.
type Generator interface {
	SummarizeOverview(ctx context.Context, req SummaryRequest) (SummaryResult, error)
	IdentifyInsights(ctx context.Context, req InsightsRequest) (InsightsResult, error)
}
