// internal/scan/config.go
package scan

// Config holds the stream behavior knobs for the scan handler.
type Config struct {
	// EmitErrorEvent appends a terminal {"type":"error"} frame when the
	// scan dies after the response has been committed. Off by default:
	// the inherited contract is that the stream simply stops.
	EmitErrorEvent bool
}
