// internal/catalog/handler.go
package catalog

import (
	"encoding/json"
	"net/http"
)

// Handler serves GET /api/categories: the category names the scan endpoint
// accepts, in catalog order.
type Handler struct {
	catalog *Catalog
}

func NewHandler(c *Catalog) *Handler {
	return &Handler{catalog: c}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]interface{}{
		"categories": h.catalog.Names(),
	})
}
