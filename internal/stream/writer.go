// internal/stream/writer.go

// Package stream frames typed events as newline-delimited JSON on a
// long-lived HTTP response.
package stream

import (
	"encoding/json"
	"net/http"
	"sync"

	"cedars-leadgen/internal/models"
)

// Writer serializes stream events onto an open response. Every Emit is a
// single write of one newline-terminated JSON object, flushed immediately
// so the browser sees events as they happen; back-pressure from a slow
// consumer blocks inside Write rather than dropping data.
type Writer struct {
	mu      sync.Mutex
	w       http.ResponseWriter
	flusher http.Flusher
	closed  bool
}

// NewWriter wraps a response writer. The transport headers (content type,
// cache control, keep-alive) are the caller's responsibility.
func NewWriter(w http.ResponseWriter) *Writer {
	flusher, _ := w.(http.Flusher)
	return &Writer{w: w, flusher: flusher}
}

// Emit writes one event frame. A write failure means the client is gone;
// the caller is expected to stop producing.
func (s *Writer) Emit(event models.StreamEvent) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return http.ErrHandlerTimeout
	}

	if _, err := s.w.Write(append(payload, '\n')); err != nil {
		return err
	}
	if s.flusher != nil {
		s.flusher.Flush()
	}
	return nil
}

// EmitLead writes a {"type":"lead"} frame.
func (s *Writer) EmitLead(lead models.Lead) error {
	return s.Emit(models.StreamEvent{Type: models.EventLead, Data: lead})
}

// EmitProgress writes a {"type":"progress"} frame with a 0..100 value.
func (s *Writer) EmitProgress(percent int) error {
	return s.Emit(models.StreamEvent{Type: models.EventProgress, Data: percent})
}

// EmitError writes the optional terminal {"type":"error"} frame.
func (s *Writer) EmitError(code string) error {
	return s.Emit(models.StreamEvent{Type: models.EventError, Data: code})
}

// Close flushes and marks the stream finished. Idempotent; there is no
// trailing sentinel frame, the stream simply ends.
func (s *Writer) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return
	}
	s.closed = true
	if s.flusher != nil {
		s.flusher.Flush()
	}
}
