package http

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/cmlabs-hris/hrms-lite/internal/domain/insight"
	"github.com/cmlabs-hris/hrms-lite/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
)

// SessionHeader names the console session that owns a draft slot. EventSource
// clients cannot set headers, so the session_id query parameter is accepted too.
const SessionHeader = "X-Session-ID"

func sessionID(r *http.Request) string {
	if id := r.Header.Get(SessionHeader); id != "" {
		return id
	}
	return r.URL.Query().Get("session_id")
}

type InsightHandler interface {
	GenerateSummary(w http.ResponseWriter, r *http.Request)
	GenerateAnalysis(w http.ResponseWriter, r *http.Request)
	GetDraft(w http.ResponseWriter, r *http.Request)
	ApproveDraft(w http.ResponseWriter, r *http.Request)
	DiscardDraft(w http.ResponseWriter, r *http.Request)
	ListInsights(w http.ResponseWriter, r *http.Request)
}

type insightHandlerImpl struct {
	insightService insight.InsightService
}

func NewInsightHandler(insightService insight.InsightService) InsightHandler {
	return &insightHandlerImpl{
		insightService: insightService,
	}
}

func generateRequest(r *http.Request) insight.GenerateDraftRequest {
	return insight.GenerateDraftRequest{
		SessionID:  sessionID(r),
		EmployeeID: chi.URLParam(r, "id"),
	}
}

// GenerateSummary implements InsightHandler
func (h *insightHandlerImpl) GenerateSummary(w http.ResponseWriter, r *http.Request) {
	result, err := h.insightService.GenerateSummary(r.Context(), generateRequest(r))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Summary draft ready for review", result)
}

// GenerateAnalysis implements InsightHandler
func (h *insightHandlerImpl) GenerateAnalysis(w http.ResponseWriter, r *http.Request) {
	result, err := h.insightService.GenerateInsights(r.Context(), generateRequest(r))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Insight draft ready for review", result)
}

// GetDraft implements InsightHandler
func (h *insightHandlerImpl) GetDraft(w http.ResponseWriter, r *http.Request) {
	key := insight.NewSessionKey(sessionID(r), chi.URLParam(r, "id"))

	result, err := h.insightService.GetDraft(r.Context(), key)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// ApproveDraft implements InsightHandler. An optional body replaces the draft content
// with a curated version before it is saved; an empty body or {} saves the draft as is.
func (h *insightHandlerImpl) ApproveDraft(w http.ResponseWriter, r *http.Request) {
	req := insight.ApproveDraftRequest{
		SessionID:  sessionID(r),
		EmployeeID: chi.URLParam(r, "id"),
	}

	var curated insight.PayloadInput
	switch err := json.NewDecoder(r.Body).Decode(&curated); {
	case errors.Is(err, io.EOF):
	case err != nil:
		response.BadRequest(w, "Invalid request format", nil)
		return
	default:
		if !curated.IsZero() {
			req.Payload = &curated
		}
	}

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.insightService.ApproveDraft(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Insight saved", result)
}

// DiscardDraft implements InsightHandler
func (h *insightHandlerImpl) DiscardDraft(w http.ResponseWriter, r *http.Request) {
	key := insight.NewSessionKey(sessionID(r), chi.URLParam(r, "id"))

	result, err := h.insightService.DiscardDraft(r.Context(), key)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Draft discarded", result)
}

// ListInsights implements InsightHandler
func (h *insightHandlerImpl) ListInsights(w http.ResponseWriter, r *http.Request) {
	result, err := h.insightService.ListInsights(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}
