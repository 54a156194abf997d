package http

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/cmlabs-hris/hrms-lite/internal/pkg/sse"
)

// EventSource is the read side of the event hub.
type EventSource interface {
	Subscribe(topics ...string) (chan sse.Event, func())
	TotalSubscribers() int
}

type EventHandler interface {
	Stream(w http.ResponseWriter, r *http.Request)
}

type eventHandlerImpl struct {
	events    EventSource
	keepalive time.Duration
}

func NewEventHandler(events EventSource, keepalive time.Duration) EventHandler {
	if keepalive <= 0 {
		keepalive = 30 * time.Second
	}
	return &eventHandlerImpl{
		events:    events,
		keepalive: keepalive,
	}
}

// Stream handles the SSE connection. Every client receives record changes; a client
// that names its session also receives that session's draft updates.
func (h *eventHandlerImpl) Stream(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "Streaming not supported", http.StatusInternalServerError)
		return
	}

	topics := []string{sse.TopicRecords}
	session := sessionID(r)
	if session != "" {
		topics = append(topics, sse.SessionTopic(session))
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("X-Accel-Buffering", "no")

	events, cleanup := h.events.Subscribe(topics...)
	defer func() {
		cleanup()
		slog.Debug("Event stream closed", "session_id", session, "subscribers", h.events.TotalSubscribers())
	}()
	slog.Debug("Event stream opened", "session_id", session, "subscribers", h.events.TotalSubscribers())

	hello, _ := json.Marshal(map[string]string{"status": "connected", "session_id": session})
	fmt.Fprintf(w, "event: connected\ndata: %s\n\n", hello)
	flusher.Flush()

	keepalive := time.NewTicker(h.keepalive)
	defer keepalive.Stop()

	for {
		select {
		case event, ok := <-events:
			if !ok {
				return
			}
			data, err := json.Marshal(event.Data)
			if err != nil {
				slog.Warn("Dropping unencodable event", "event", event.Event, "error", err)
				continue
			}
			fmt.Fprintf(w, "event: %s\ndata: %s\n\n", event.Event, data)
			flusher.Flush()

		case <-keepalive.C:
			fmt.Fprintf(w, "event: ping\ndata: {\"timestamp\":%d}\n\n", time.Now().Unix())
			flusher.Flush()

		case <-r.Context().Done():
			return
		}
	}
}
