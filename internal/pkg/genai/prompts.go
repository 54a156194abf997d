package genai

import (
	"bytes"
	"fmt"
	"text/template"

	"github.com/cmlabs-hris/hrms-lite/internal/domain/insight"
)

const (
	summaryAttendanceLimit = 5
	summaryReviewLimit     = 3
)

var promptFuncs = template.FuncMap{
	"first": func(n int, v interface{}) interface{} {
		switch items := v.(type) {
		case []insight.AttendanceEntry:
			if len(items) > n {
				return items[:n]
			}
			return items
		case []insight.ReviewEntry:
			if len(items) > n {
				return items[:n]
			}
			return items
		}
		return v
	},
}

var summaryPrompt = template.Must(template.New("summary").Funcs(promptFuncs).Parse(
	`You are an intelligent HR assistant tasked with summarizing an employee's overall profile.

Generate a concise summary of the employee's information, attendance trends, and performance. Highlight key strengths, areas for improvement, and any notable patterns.

Employee Information:
- Full Name: {{.FullName}}
- Address: {{.Address}}
- Department: {{.Department}}

Attendance Records (most recent {{.AttendanceLimit}}, if available):
{{- if .AttendanceRecords}}
{{- range first .AttendanceLimit .AttendanceRecords}}
- Date: {{.Date}}, Status: {{.Status}}
{{- end}}
{{- else}}
No attendance records available.
{{- end}}

Performance Reviews (most recent {{.ReviewLimit}}, if available):
{{- if .PerformanceReviews}}
{{- range first .ReviewLimit .PerformanceReviews}}
- Date: {{.Date}}, Summary: {{.Summary}}
{{- end}}
{{- else}}
No performance reviews available.
{{- end}}

Provide an overall summary that is easy to understand and provides a quick overview for an HR admin. The summary should be approximately 3-5 sentences long.
`))

var insightsPrompt = template.Must(template.New("insights").Parse(
	`You are an intelligent HR assistant. Your task is to analyze an employee's historical data and identify key insights and areas for development.

Employee Name: {{.EmployeeName}}

## Attendance Records:
Analyze the following attendance records for patterns, such as frequent absences, punctuality, or consistent presence. Note any trends like specific days of the week for absences, or periods of frequent lateness.
{{- if .AttendanceRecords}}
{{- range .AttendanceRecords}}
- Date: {{.Date}}, Status: {{.Status}}
{{- end}}
{{- else}}
No attendance records available.
{{- end}}

## Performance Reviews:
Analyze the following performance review summaries to identify recurring strengths, weaknesses, and overall performance trends. Look for common feedback themes or areas consistently mentioned for improvement or commendation.
{{- if .PerformanceReviews}}
{{- range .PerformanceReviews}}
- {{.}}
{{- end}}
{{- else}}
No performance reviews available.
{{- end}}

Based on the provided data, generate a concise summary of the employee analysis, key insights, and specific areas for development. Ensure the insights are actionable and the areas for development are clear and constructive.
`))

// RenderSummaryPrompt builds the overview prompt. Records are expected newest first.
func RenderSummaryPrompt(req insight.SummaryRequest) (string, error) {
	data := struct {
		insight.SummaryRequest
		AttendanceLimit int
		ReviewLimit     int
	}{req, summaryAttendanceLimit, summaryReviewLimit}

	var buf bytes.Buffer
	if err := summaryPrompt.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("render summary prompt: %w", err)
	}
	return buf.String(), nil
}

// RenderInsightsPrompt builds the structured analysis prompt over the full history.
func RenderInsightsPrompt(req insight.InsightsRequest) (string, error) {
	var buf bytes.Buffer
	if err := insightsPrompt.Execute(&buf, req); err != nil {
		return "", fmt.Errorf("render insights prompt: %w", err)
	}
	return buf.String(), nil
}
