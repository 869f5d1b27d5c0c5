// internal/models/lead.go
package models

import "time"

// Lead is a qualified business contact produced by a scan. Field names are
// capitalized in JSON because the browser client renders them verbatim.
type Lead struct {
	Category string `json:"Category"`
	Name     string `json:"Name"`
	Phone    string `json:"Phone"`
	Website  string `json:"Website,omitempty"`
	Address  string `json:"Address,omitempty"`
	Maps     string `json:"Maps,omitempty"`
}

// Lead status lifecycle for saved leads.
const (
	StatusNew        = "New"
	StatusContacted  = "Contacted"
	StatusInterested = "Interested"
	StatusClosed     = "Closed"
)

// ValidStatus reports whether s is one of the known lead statuses.
func ValidStatus(s string) bool {
	switch s {
	case StatusNew, StatusContacted, StatusInterested, StatusClosed:
		return true
	}
	return false
}

// HistoryLead is a lead persisted to a user's history.
type HistoryLead struct {
	ID        string    `json:"id"`
	UserID    string    `json:"-"`
	Lead      Lead      `json:"lead"`
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
}
