package genai

import (
	"context"
	"fmt"
	"strings"

	"github.com/cmlabs-hris/hrms-lite/internal/domain/insight"
)

// Stub is a deterministic offline generator. It derives its text from the
// request alone, so identical requests always produce identical drafts.
type Stub struct{}

func NewStub() *Stub {
	return &Stub{}
}

var _ insight.Generator = (*Stub)(nil)

// SummarizeOverview implements insight.Generator.
func (s *Stub) SummarizeOverview(ctx context.Context, req insight.SummaryRequest) (insight.SummaryResult, error) {
	if err := ctx.Err(); err != nil {
		return insight.SummaryResult{}, err
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s works in %s.", req.FullName, req.Department)

	counts := countStatuses(req.AttendanceRecords)
	if len(req.AttendanceRecords) == 0 {
		b.WriteString(" No attendance has been recorded yet.")
	} else {
		fmt.Fprintf(&b, " Across %d recorded days they were %s.", len(req.AttendanceRecords), describeCounts(counts))
	}

	if len(req.PerformanceReviews) == 0 {
		b.WriteString(" There are no performance reviews on file.")
	} else {
		latest := req.PerformanceReviews[0]
		fmt.Fprintf(&b, " The most recent review (%s) reads: %q", latest.Date, latest.Summary)
	}

	return insight.SummaryResult{Summary: b.String()}, nil
}

// IdentifyInsights implements insight.Generator.
func (s *Stub) IdentifyInsights(ctx context.Context, req insight.InsightsRequest) (insight.InsightsResult, error) {
	if err := ctx.Err(); err != nil {
		return insight.InsightsResult{}, err
	}

	counts := countStatuses(req.AttendanceRecords)
	total := len(req.AttendanceRecords)

	result := insight.InsightsResult{
		Summary:             fmt.Sprintf("Analysis of %s based on %d attendance records and %d performance reviews.", req.EmployeeName, total, len(req.PerformanceReviews)),
		Insights:            []string{},
		AreasForDevelopment: []string{},
	}

	if total == 0 {
		result.Insights = append(result.Insights, "No attendance history is available yet.")
		result.AreasForDevelopment = append(result.AreasForDevelopment, "Start recording daily attendance to enable trend analysis.")
	} else {
		result.Insights = append(result.Insights, fmt.Sprintf("Attendance breakdown: %s.", describeCounts(counts)))
		if counts["absent"]+counts["late"] > total/2 {
			result.AreasForDevelopment = append(result.AreasForDevelopment, "Improve attendance consistency and punctuality.")
		}
	}

	if len(req.PerformanceReviews) == 0 {
		result.AreasForDevelopment = append(result.AreasForDevelopment, "Schedule a first performance review.")
	} else {
		result.Insights = append(result.Insights, "Latest review: "+req.PerformanceReviews[0])
	}

	return result, nil
}

func countStatuses(records []insight.AttendanceEntry) map[string]int {
	counts := make(map[string]int)
	for _, r := range records {
		counts[r.Status]++
	}
	return counts
}

func describeCounts(counts map[string]int) string {
	var parts []string
	for _, status := range []string{"present", "late", "absent", "leave"} {
		if n := counts[status]; n > 0 {
			parts = append(parts, fmt.Sprintf("%s %d", status, n))
		}
	}
	if len(parts) == 0 {
		return "unclassified"
	}
	return strings.Join(parts, ", ")
}
