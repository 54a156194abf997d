package insight

import (
	"context"
	"time"
)

// InsightService runs the generate -> review -> approve workflow.
// Nothing is persisted until ApproveDraft is called.
type InsightService interface {
	// GenerateSummary replaces the session draft with a fresh overview summary
	GenerateSummary(ctx context.Context, req GenerateDraftRequest) (DraftResponse, error)

	// GenerateInsights replaces the session draft with a fresh structured analysis
	GenerateInsights(ctx context.Context, req GenerateDraftRequest) (DraftResponse, error)

	// GetDraft reports the session state and the current draft, if any
	GetDraft(ctx context.Context, key SessionKey) (DraftResponse, error)

	// ApproveDraft persists the current draft (optionally curated) and clears it
	ApproveDraft(ctx context.Context, req ApproveDraftRequest) (InsightResponse, error)

	// DiscardDraft clears the draft without persisting it
	DiscardDraft(ctx context.Context, key SessionKey) (DraftResponse, error)

	// ListInsights returns the saved insight history, newest first
	ListInsights(ctx context.Context, employeeID string) ([]InsightResponse, error)

	// EvictStaleDrafts drops drafts idle for longer than ttl and returns how many were dropped
	EvictStaleDrafts(ctx context.Context, ttl time.Duration) (int, error)
}
