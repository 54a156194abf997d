// Package genai talks to the text-generation provider that drafts employee insights.
package genai

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/cmlabs-hris/hrms-lite/internal/config"
	"github.com/cmlabs-hris/hrms-lite/internal/domain/insight"
	gemini "google.golang.org/genai"
)

// ErrMalformedResponse is returned when the provider answers but the output does not
// match the requested schema.
var ErrMalformedResponse = errors.New("malformed generation response")

// Client drafts insights through the Gemini generateContent API
type Client struct {
	models *gemini.Models
	model  string
}

// NewClient creates a new Gemini client
func NewClient(ctx context.Context, cfg config.GenAIConfig) (*Client, error) {
	sdk, err := gemini.NewClient(ctx, &gemini.ClientConfig{
		APIKey:     cfg.APIKey,
		Backend:    gemini.BackendGeminiAPI,
		HTTPClient: &http.Client{Timeout: cfg.Timeout},
		HTTPOptions: gemini.HTTPOptions{
			BaseURL: cfg.BaseURL,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("create gemini client: %w", err)
	}
	return &Client{
		models: sdk.Models,
		model:  cfg.Model,
	}, nil
}

var _ insight.Generator = (*Client)(nil)

var (
	stringSchema = &gemini.Schema{Type: gemini.TypeString}

	summarySchema = &gemini.Schema{
		Type:       gemini.TypeObject,
		Properties: map[string]*gemini.Schema{"summary": stringSchema},
		Required:   []string{"summary"},
	}

	insightsSchema = &gemini.Schema{
		Type: gemini.TypeObject,
		Properties: map[string]*gemini.Schema{
			"summary":             stringSchema,
			"insights":            {Type: gemini.TypeArray, Items: stringSchema},
			"areasForDevelopment": {Type: gemini.TypeArray, Items: stringSchema},
		},
		PropertyOrdering: []string{"summary", "insights", "areasForDevelopment"},
		Required:         []string{"summary", "insights", "areasForDevelopment"},
	}
)

// SummarizeOverview implements insight.Generator.
func (c *Client) SummarizeOverview(ctx context.Context, req insight.SummaryRequest) (insight.SummaryResult, error) {
	prompt, err := RenderSummaryPrompt(req)
	if err != nil {
		return insight.SummaryResult{}, err
	}

	var out struct {
		Summary *string `json:"summary"`
	}
	if err := c.generate(ctx, prompt, summarySchema, &out); err != nil {
		return insight.SummaryResult{}, err
	}
	if out.Summary == nil {
		return insight.SummaryResult{}, fmt.Errorf("%w: missing summary", ErrMalformedResponse)
	}
	return insight.SummaryResult{Summary: *out.Summary}, nil
}

// IdentifyInsights implements insight.Generator. Empty text and empty lists are valid
// output; only missing keys are rejected.
func (c *Client) IdentifyInsights(ctx context.Context, req insight.InsightsRequest) (insight.InsightsResult, error) {
	prompt, err := RenderInsightsPrompt(req)
	if err != nil {
		return insight.InsightsResult{}, err
	}

	var out struct {
		Summary             *string   `json:"summary"`
		Insights            *[]string `json:"insights"`
		AreasForDevelopment *[]string `json:"areasForDevelopment"`
	}
	if err := c.generate(ctx, prompt, insightsSchema, &out); err != nil {
		return insight.InsightsResult{}, err
	}

	var missing []string
	if out.Summary == nil {
		missing = append(missing, "summary")
	}
	if out.Insights == nil {
		missing = append(missing, "insights")
	}
	if out.AreasForDevelopment == nil {
		missing = append(missing, "areasForDevelopment")
	}
	if len(missing) > 0 {
		return insight.InsightsResult{}, fmt.Errorf("%w: missing %s", ErrMalformedResponse, strings.Join(missing, ", "))
	}

	return insight.InsightsResult{
		Summary:             *out.Summary,
		Insights:            *out.Insights,
		AreasForDevelopment: *out.AreasForDevelopment,
	}, nil
}

// generate asks for JSON output constrained by schema and decodes it into out.
// Provider errors come back as gemini.APIError.
func (c *Client) generate(ctx context.Context, prompt string, schema *gemini.Schema, out interface{}) error {
	start := time.Now()
	resp, err := c.models.GenerateContent(ctx, c.model, gemini.Text(prompt), &gemini.GenerateContentConfig{
		ResponseMIMEType: "application/json",
		ResponseSchema:   schema,
	})
	if err != nil {
		return fmt.Errorf("call generate endpoint: %w", err)
	}
	slog.Debug("GenAI call finished", "model", c.model, "duration", time.Since(start))

	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return fmt.Errorf("%w: no candidates", ErrMalformedResponse)
	}

	if err := json.Unmarshal([]byte(stripCodeFence(resp.Text())), out); err != nil {
		return fmt.Errorf("%w: output is not JSON: %v", ErrMalformedResponse, err)
	}
	return nil
}

// stripCodeFence removes a ```json fence some models wrap around structured output.
func stripCodeFence(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimPrefix(s, "json")
	s = strings.TrimSuffix(s, "```")
	return strings.TrimSpace(s)
}
