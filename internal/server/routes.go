// internal/server/routes.go
package server

import (
	"net/http"

	"cedars-leadgen/internal/accounts"
	"cedars-leadgen/internal/catalog"
	"cedars-leadgen/internal/history"
	"cedars-leadgen/internal/outreach"
	"cedars-leadgen/internal/scan"
)

// Handlers bundles the endpoint handlers wired by the server.
type Handlers struct {
	Scan     *scan.Handler
	Catalog  *catalog.Handler
	History  *history.Handler
	Accounts *accounts.Handler
	Outreach *outreach.Handler
}

// newRouter builds the API mux. The stream endpoint is registered without a
// method pattern: it answers non-POST calls itself with the 405 body its
// clients expect, instead of the mux's plain-text default.
func newRouter(h Handlers) *http.ServeMux {
	mux := http.NewServeMux()

	mux.Handle("/api/generate-stream", h.Scan)
	mux.Handle("GET /api/categories", h.Catalog)

	mux.HandleFunc("GET /api/history", h.History.List)
	mux.HandleFunc("POST /api/history", h.History.Save)
	mux.HandleFunc("GET /api/history/search", h.History.Search)
	mux.HandleFunc("PATCH /api/history/{id}/status", h.History.UpdateStatus)
	mux.HandleFunc("DELETE /api/history/{id}", h.History.Delete)
	mux.HandleFunc("POST /api/history/delete", h.History.DeleteBatch)

	mux.HandleFunc("GET /api/account", h.Accounts.Get)
	mux.HandleFunc("POST /api/account/consume", h.Accounts.Consume)

	mux.HandleFunc("POST /api/outreach/whatsapp-link", h.Outreach.WhatsAppLink)
	mux.HandleFunc("POST /api/outreach/notify", h.Outreach.Notify)

	return mux
}
