// internal/history/handler.go
package history

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	stderrors "cedars-leadgen/internal/common/errors"
	"cedars-leadgen/internal/common/logger"
	"cedars-leadgen/internal/models"
)

// Handler serves the saved-lead API. The caller's identity arrives in the
// X-User-Id header, set by the auth proxy in front of this service.
type Handler struct {
	store   *Store
	indexer *Indexer // nil when search is disabled
	logger  logger.Logger
}

func NewHandler(store *Store, indexer *Indexer, log logger.Logger) *Handler {
	return &Handler{
		store:   store,
		indexer: indexer,
		logger:  log.WithFields(map[string]interface{}{"component": "history-handler"}),
	}
}

type saveRequest struct {
	Leads []models.Lead `json:"leads"`
}

type statusRequest struct {
	Status string `json:"status"`
}

type deleteBatchRequest struct {
	IDs []string `json:"ids"`
}

func userID(r *http.Request) string {
	return r.Header.Get("X-User-Id")
}

// List handles GET /api/history.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	user := userID(r)
	if user == "" {
		stderrors.WriteHTTP(w, stderrors.NewInvalidInputError("missing user id"))
		return
	}

	entries, err := h.store.List(r.Context(), user)
	if err != nil {
		stderrors.WriteHTTP(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"history": entries})
}

// Save handles POST /api/history: bulk save of a finished scan's leads.
func (h *Handler) Save(w http.ResponseWriter, r *http.Request) {
	user := userID(r)
	if user == "" {
		stderrors.WriteHTTP(w, stderrors.NewInvalidInputError("missing user id"))
		return
	}

	var req saveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		stderrors.WriteHTTP(w, stderrors.NewInvalidInputError("malformed body"))
		return
	}
	for _, lead := range req.Leads {
		if lead.Name == "" || lead.Phone == "" {
			stderrors.WriteHTTP(w, stderrors.NewInvalidInputError("lead requires name and phone"))
			return
		}
	}

	saved, err := h.store.SaveBatch(r.Context(), user, req.Leads)
	if err != nil {
		stderrors.WriteHTTP(w, err)
		return
	}

	if h.indexer != nil {
		// Mirror outside the request deadline; the save already succeeded.
		go func(entries []models.HistoryLead) {
			ctx, cancel := contextWithTimeout(10 * time.Second)
			defer cancel()
			h.indexer.IndexLeads(ctx, entries)
		}(saved)
	}

	writeJSON(w, http.StatusCreated, map[string]interface{}{"saved": len(saved), "history": saved})
}

// UpdateStatus handles PATCH /api/history/{id}/status.
func (h *Handler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	user := userID(r)
	if user == "" {
		stderrors.WriteHTTP(w, stderrors.NewInvalidInputError("missing user id"))
		return
	}
	id := r.PathValue("id")

	var req statusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || !models.ValidStatus(req.Status) {
		stderrors.WriteHTTP(w, stderrors.NewInvalidInputError("unknown status"))
		return
	}

	if err := h.store.UpdateStatus(r.Context(), user, id, req.Status); err != nil {
		if errors.Is(err, ErrNotFound) {
			stderrors.WriteHTTP(w, &stderrors.StandardError{
				Code:      stderrors.ErrCodeHistoryNotFound,
				Message:   "Lead not found",
				Timestamp: time.Now().UTC(),
			})
			return
		}
		stderrors.WriteHTTP(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"id": id, "status": req.Status})
}

// Delete handles DELETE /api/history/{id}.
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	user := userID(r)
	if user == "" {
		stderrors.WriteHTTP(w, stderrors.NewInvalidInputError("missing user id"))
		return
	}
	id := r.PathValue("id")

	if err := h.store.Delete(r.Context(), user, id); err != nil {
		if errors.Is(err, ErrNotFound) {
			stderrors.WriteHTTP(w, &stderrors.StandardError{
				Code:      stderrors.ErrCodeHistoryNotFound,
				Message:   "Lead not found",
				Timestamp: time.Now().UTC(),
			})
			return
		}
		stderrors.WriteHTTP(w, err)
		return
	}

	if h.indexer != nil {
		go func() {
			ctx, cancel := contextWithTimeout(10 * time.Second)
			defer cancel()
			h.indexer.RemoveLeads(ctx, []string{id})
		}()
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"deleted": 1})
}

// DeleteBatch handles POST /api/history/delete.
func (h *Handler) DeleteBatch(w http.ResponseWriter, r *http.Request) {
	user := userID(r)
	if user == "" {
		stderrors.WriteHTTP(w, stderrors.NewInvalidInputError("missing user id"))
		return
	}

	var req deleteBatchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || len(req.IDs) == 0 {
		stderrors.WriteHTTP(w, stderrors.NewInvalidInputError("ids required"))
		return
	}

	deleted, err := h.store.DeleteBatch(r.Context(), user, req.IDs)
	if err != nil {
		stderrors.WriteHTTP(w, err)
		return
	}

	if h.indexer != nil {
		ids := req.IDs
		go func() {
			ctx, cancel := contextWithTimeout(10 * time.Second)
			defer cancel()
			h.indexer.RemoveLeads(ctx, ids)
		}()
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"deleted": deleted})
}

// Search handles GET /api/history/search?q=. Matches come from the
// Elasticsearch mirror; full records are rehydrated from Postgres.
func (h *Handler) Search(w http.ResponseWriter, r *http.Request) {
	user := userID(r)
	if user == "" {
		stderrors.WriteHTTP(w, stderrors.NewInvalidInputError("missing user id"))
		return
	}
	if h.indexer == nil {
		stderrors.WriteHTTP(w, &stderrors.StandardError{
			Code:      stderrors.ErrCodeSearchDisabled,
			Message:   "History search is not enabled",
			Timestamp: time.Now().UTC(),
		})
		return
	}

	query := r.URL.Query().Get("q")
	if query == "" {
		stderrors.WriteHTTP(w, stderrors.NewInvalidInputError("q required"))
		return
	}

	ids, err := h.indexer.SearchByName(r.Context(), user, query, 50)
	if err != nil {
		stderrors.WriteHTTP(w, &stderrors.StandardError{
			Code:      stderrors.ErrCodeSearchQueryFailed,
			Message:   "History search failed",
			Details:   err.Error(),
			Retryable: true,
			Timestamp: time.Now().UTC(),
		})
		return
	}

	entries := []models.HistoryLead{}
	for _, id := range ids {
		entry, err := h.store.Get(r.Context(), user, id)
		if errors.Is(err, ErrNotFound) {
			// Mirror lag: the document outlived the row.
			continue
		}
		if err != nil {
			stderrors.WriteHTTP(w, err)
			return
		}
		entries = append(entries, *entry)
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"history": entries})
}

func contextWithTimeout(d time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), d)
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
