package insight

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/cmlabs-hris/hrms-lite/internal/domain/attendance"
	"github.com/cmlabs-hris/hrms-lite/internal/domain/employee"
	"github.com/cmlabs-hris/hrms-lite/internal/domain/insight"
	"github.com/cmlabs-hris/hrms-lite/internal/domain/review"
	"github.com/cmlabs-hris/hrms-lite/internal/pkg/sse"
	"github.com/cmlabs-hris/hrms-lite/internal/pkg/utils"
	"github.com/cmlabs-hris/hrms-lite/internal/pkg/validator"
)

// session is one draft slot. Guarded by InsightServiceImpl.mu.
// generation increases whenever a result in flight must no longer land in the slot.
type session struct {
	state      insight.State
	draft      *insight.Draft
	outcome    insight.Outcome
	lastError  string
	generation uint64
	touchedAt  time.Time
}

type InsightServiceImpl struct {
	employeeRepo   employee.EmployeeRepository
	attendanceRepo attendance.AttendanceRepository
	reviewRepo     review.ReviewRepository
	insightRepo    insight.InsightRepository
	generator      insight.Generator
	events         sse.Publisher
	clock          utils.Clock

	mu       sync.Mutex
	sessions map[insight.SessionKey]*session
}

func NewInsightService(
	employeeRepo employee.EmployeeRepository,
	attendanceRepo attendance.AttendanceRepository,
	reviewRepo review.ReviewRepository,
	insightRepo insight.InsightRepository,
	generator insight.Generator,
	events sse.Publisher,
	clock utils.Clock,
) insight.InsightService {
	if events == nil {
		events = sse.Discard
	}
	if clock == nil {
		clock = utils.SystemClock()
	}
	return &InsightServiceImpl{
		employeeRepo:   employeeRepo,
		attendanceRepo: attendanceRepo,
		reviewRepo:     reviewRepo,
		insightRepo:    insightRepo,
		generator:      generator,
		events:         events,
		clock:          clock,
		sessions:       make(map[insight.SessionKey]*session),
	}
}

// history is everything the generator is shown about an employee.
type history struct {
	employee   employee.Employee
	attendance []attendance.Attendance
	reviews    []review.PerformanceReview
}

func (s *InsightServiceImpl) loadHistory(ctx context.Context, employeeID string) (*history, error) {
	emp, err := s.employeeRepo.GetByID(ctx, employeeID)
	if err != nil {
		return nil, fmt.Errorf("failed to get employee: %w", err)
	}
	if emp == nil {
		return nil, employee.ErrEmployeeNotFound
	}

	records, err := s.attendanceRepo.List(ctx, attendance.AttendanceFilter{EmployeeID: &employeeID})
	if err != nil {
		return nil, fmt.Errorf("failed to list attendance: %w", err)
	}
	reviews, err := s.reviewRepo.ListByEmployee(ctx, employeeID)
	if err != nil {
		return nil, fmt.Errorf("failed to list reviews: %w", err)
	}

	return &history{employee: *emp, attendance: records, reviews: reviews}, nil
}

func attendanceEntries(records []attendance.Attendance) []insight.AttendanceEntry {
	entries := make([]insight.AttendanceEntry, 0, len(records))
	for _, rec := range records {
		entries = append(entries, insight.AttendanceEntry{
			Date:   utils.FormatDate(rec.Date),
			Status: string(rec.Status),
		})
	}
	return entries
}

func (h *history) summaryRequest() insight.SummaryRequest {
	reviews := make([]insight.ReviewEntry, 0, len(h.reviews))
	for _, r := range h.reviews {
		reviews = append(reviews, insight.ReviewEntry{Date: utils.FormatDate(r.Date), Summary: r.Summary})
	}
	return insight.SummaryRequest{
		FullName:           h.employee.FullName,
		Address:            h.employee.Address,
		Department:         string(h.employee.Department),
		AttendanceRecords:  attendanceEntries(h.attendance),
		PerformanceReviews: reviews,
	}
}

func (h *history) insightsRequest() insight.InsightsRequest {
	reviews := make([]string, 0, len(h.reviews))
	for _, r := range h.reviews {
		reviews = append(reviews, r.Summary)
	}
	return insight.InsightsRequest{
		EmployeeName:       h.employee.FullName,
		AttendanceRecords:  attendanceEntries(h.attendance),
		PerformanceReviews: reviews,
	}
}

// GenerateSummary implements insight.InsightService.
func (s *InsightServiceImpl) GenerateSummary(ctx context.Context, req insight.GenerateDraftRequest) (insight.DraftResponse, error) {
	return s.generate(ctx, req, insight.ModeSummary, func(ctx context.Context, h *history) (insight.Payload, error) {
		res, err := s.generator.SummarizeOverview(ctx, h.summaryRequest())
		if err != nil {
			return insight.Payload{}, err
		}
		return insight.Payload{Summary: res.Summary}, nil
	})
}

// GenerateInsights implements insight.InsightService.
func (s *InsightServiceImpl) GenerateInsights(ctx context.Context, req insight.GenerateDraftRequest) (insight.DraftResponse, error) {
	return s.generate(ctx, req, insight.ModeAnalysis, func(ctx context.Context, h *history) (insight.Payload, error) {
		res, err := s.generator.IdentifyInsights(ctx, h.insightsRequest())
		if err != nil {
			return insight.Payload{}, err
		}
		return insight.Payload{
			Summary:             res.Summary,
			Insights:            res.Insights,
			AreasForDevelopment: res.AreasForDevelopment,
		}, nil
	})
}

type generateFunc func(ctx context.Context, h *history) (insight.Payload, error)

func (s *InsightServiceImpl) generate(ctx context.Context, req insight.GenerateDraftRequest, mode insight.Mode, call generateFunc) (insight.DraftResponse, error) {
	if validator.IsEmpty(req.EmployeeID) {
		return insight.DraftResponse{}, validator.ValidationErrors{{Field: "employee_id", Message: "employee_id is required"}}
	}
	key := req.Key()

	h, err := s.loadHistory(ctx, key.EmployeeID)
	if err != nil {
		return insight.DraftResponse{}, err
	}

	// A new generation replaces whatever the slot held.
	s.mu.Lock()
	sess := s.sessionLocked(key)
	sess.generation++
	ticket := sess.generation
	sess.state = insight.StateGenerating
	sess.draft = nil
	sess.lastError = ""
	sess.touchedAt = s.clock.Now()
	started := s.responseLocked(key, sess)
	s.mu.Unlock()
	s.publishDraft(started)

	slog.Info("Insight generation started", "employee_id", key.EmployeeID, "session_id", key.SessionID, "mode", mode)

	// A sparse answer (empty summary, empty lists) is still a draft.
	payload, genErr := call(ctx, h)
	if genErr == nil {
		payload = insight.NormalizePayload(payload)
	}

	s.mu.Lock()
	current, ok := s.sessions[key]
	if !ok || current != sess || sess.generation != ticket {
		s.mu.Unlock()
		slog.Info("Insight generation result dropped", "employee_id", key.EmployeeID, "session_id", key.SessionID, "mode", mode)
		return insight.DraftResponse{}, insight.ErrDraftSuperseded
	}

	sess.touchedAt = s.clock.Now()
	if genErr != nil {
		sess.state = insight.StateIdle
		sess.outcome = insight.OutcomeFailed
		sess.lastError = genErr.Error()
		failed := s.responseLocked(key, sess)
		s.mu.Unlock()
		s.publishDraft(failed)

		slog.Warn("Insight generation failed", "employee_id", key.EmployeeID, "session_id", key.SessionID, "mode", mode, "error", genErr)
		return insight.DraftResponse{}, fmt.Errorf("%w: %w", insight.ErrGenerationFailed, genErr)
	}

	sess.state = insight.StateDraftReady
	sess.outcome = insight.OutcomeNone
	sess.draft = &insight.Draft{
		Mode:        mode,
		Payload:     payload,
		GeneratedAt: sess.touchedAt,
	}
	ready := s.responseLocked(key, sess)
	s.mu.Unlock()
	s.publishDraft(ready)

	slog.Info("Insight draft ready", "employee_id", key.EmployeeID, "session_id", key.SessionID, "mode", mode)
	return ready, nil
}

// GetDraft implements insight.InsightService.
func (s *InsightServiceImpl) GetDraft(ctx context.Context, key insight.SessionKey) (insight.DraftResponse, error) {
	key = insight.NewSessionKey(key.SessionID, key.EmployeeID)

	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[key]
	if !ok {
		return s.responseLocked(key, &session{state: insight.StateIdle}), nil
	}
	return s.responseLocked(key, sess), nil
}

// ApproveDraft implements insight.InsightService.
func (s *InsightServiceImpl) ApproveDraft(ctx context.Context, req insight.ApproveDraftRequest) (insight.InsightResponse, error) {
	if err := req.Validate(); err != nil {
		return insight.InsightResponse{}, err
	}
	key := req.Key()

	s.mu.Lock()
	sess, ok := s.sessions[key]
	if !ok || sess.draft == nil {
		s.mu.Unlock()
		return insight.InsightResponse{}, insight.ErrNoDraft
	}

	payload := sess.draft.Payload.Clone()
	if req.Payload != nil {
		payload = req.Payload.ToPayload()
	}

	// The workflow lock is held across the write so a draft is persisted at most once.
	saved, err := s.insightRepo.Create(ctx, key.EmployeeID, payload)
	if err != nil {
		if errors.Is(err, employee.ErrEmployeeNotFound) {
			delete(s.sessions, key)
		}
		s.mu.Unlock()
		return insight.InsightResponse{}, fmt.Errorf("failed to save insight: %w", err)
	}

	sess.generation++
	sess.state = insight.StateIdle
	sess.outcome = insight.OutcomeApproved
	sess.draft = nil
	sess.lastError = ""
	sess.touchedAt = s.clock.Now()
	cleared := s.responseLocked(key, sess)
	s.mu.Unlock()

	slog.Info("Insight approved", "employee_id", key.EmployeeID, "session_id", key.SessionID, "insight_id", saved.ID)

	resp := insight.NewInsightResponse(saved)
	s.events.Publish(sse.TopicRecords, sse.Event{Event: sse.EventInsightSaved, Data: resp})
	s.publishDraft(cleared)
	return resp, nil
}

// DiscardDraft implements insight.InsightService. A generation still in flight is
// abandoned and its result will not become a draft.
func (s *InsightServiceImpl) DiscardDraft(ctx context.Context, key insight.SessionKey) (insight.DraftResponse, error) {
	key = insight.NewSessionKey(key.SessionID, key.EmployeeID)

	s.mu.Lock()
	sess, ok := s.sessions[key]
	if !ok {
		idle := s.responseLocked(key, &session{state: insight.StateIdle})
		s.mu.Unlock()
		return idle, nil
	}

	hadWork := sess.draft != nil || sess.state == insight.StateGenerating
	sess.generation++
	sess.state = insight.StateIdle
	sess.draft = nil
	sess.lastError = ""
	if hadWork {
		sess.outcome = insight.OutcomeDiscarded
	}
	sess.touchedAt = s.clock.Now()
	resp := s.responseLocked(key, sess)
	s.mu.Unlock()

	if hadWork {
		slog.Info("Insight draft discarded", "employee_id", key.EmployeeID, "session_id", key.SessionID)
		s.publishDraft(resp)
	}
	return resp, nil
}

// ListInsights implements insight.InsightService.
func (s *InsightServiceImpl) ListInsights(ctx context.Context, employeeID string) ([]insight.InsightResponse, error) {
	insights, err := s.insightRepo.ListByEmployee(ctx, employeeID)
	if err != nil {
		return nil, fmt.Errorf("failed to list insights: %w", err)
	}

	responses := make([]insight.InsightResponse, 0, len(insights))
	for _, in := range insights {
		responses = append(responses, insight.NewInsightResponse(in))
	}
	return responses, nil
}

// EvictStaleDrafts implements insight.InsightService. Stale drafts are dropped and the
// slot reports the expired outcome; idle slots with nothing to show are forgotten.
// Slots that are generating are left alone.
func (s *InsightServiceImpl) EvictStaleDrafts(ctx context.Context, ttl time.Duration) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	now := s.clock.Now()
	var expired []insight.DraftResponse

	s.mu.Lock()
	for key, sess := range s.sessions {
		if sess.state == insight.StateGenerating || now.Sub(sess.touchedAt) < ttl {
			continue
		}
		if sess.draft == nil {
			delete(s.sessions, key)
			continue
		}
		sess.generation++
		sess.state = insight.StateIdle
		sess.outcome = insight.OutcomeExpired
		sess.draft = nil
		sess.touchedAt = now
		expired = append(expired, s.responseLocked(key, sess))
	}
	s.mu.Unlock()

	for _, resp := range expired {
		s.publishDraft(resp)
	}
	return len(expired), nil
}

func (s *InsightServiceImpl) sessionLocked(key insight.SessionKey) *session {
	sess, ok := s.sessions[key]
	if !ok {
		sess = &session{state: insight.StateIdle}
		s.sessions[key] = sess
	}
	return sess
}

func (s *InsightServiceImpl) responseLocked(key insight.SessionKey, sess *session) insight.DraftResponse {
	resp := insight.DraftResponse{
		SessionID:   key.SessionID,
		EmployeeID:  key.EmployeeID,
		State:       string(sess.state),
		LastOutcome: string(sess.outcome),
		LastError:   sess.lastError,
	}
	if sess.draft != nil {
		resp.Draft = insight.NewDraftBody(*sess.draft)
	}
	return resp
}

func (s *InsightServiceImpl) publishDraft(resp insight.DraftResponse) {
	s.events.Publish(sse.SessionTopic(resp.SessionID), sse.Event{Event: sse.EventDraftUpdated, Data: resp})
}
