// internal/models/events.go
package models

// Stream event types emitted on the generate-stream response.
const (
	EventLead     = "lead"
	EventProgress = "progress"
	EventError    = "error"
)

// StreamEvent is one newline-delimited JSON frame on the scan stream.
// Data is a Lead for "lead" events, an int 0..100 for "progress" events
// and an error code string for the optional terminal "error" event.
type StreamEvent struct {
	Type string      `json:"type"`
	Data interface{} `json:"data"`
}
