// internal/common/errors/handler.go
package errors

import (
	"encoding/json"
	"net/http"
)

// errorBody is the wire shape of API error responses. The browser client
// only reads the "error" field; code and details are for operators.
type errorBody struct {
	Error   string `json:"error"`
	Code    string `json:"code,omitempty"`
	Details string `json:"details,omitempty"`
}

// WriteHTTP writes err as a JSON error response with its mapped status.
// Must not be called after a streaming response has been committed.
func WriteHTTP(w http.ResponseWriter, err error) {
	stdErr := Normalize(err)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(HTTPStatus(stdErr.Code))
	_ = json.NewEncoder(w).Encode(errorBody{
		Error:   stdErr.Message,
		Code:    string(stdErr.Code),
		Details: stdErr.Details,
	})
}

// WriteHTTPBare writes only {"error": message}, matching the minimal
// payloads the stream endpoint is contracted to return for 400/405.
func WriteHTTPBare(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": message})
}
