// internal/accounts/handler.go
package accounts

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	stderrors "cedars-leadgen/internal/common/errors"
	"cedars-leadgen/internal/common/logger"
)

// Handler serves the account surface. Credit enforcement stays on the
// caller: the client reads attemptsLeft, decides whether to start a scan
// and reports the spend through Consume. The stream endpoint itself does
// not gate on credits.
type Handler struct {
	store  *Store
	logger logger.Logger
}

func NewHandler(store *Store, log logger.Logger) *Handler {
	return &Handler{
		store:  store,
		logger: log.WithFields(map[string]interface{}{"component": "accounts-handler"}),
	}
}

// Get handles GET /api/account, creating the free account on first contact.
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	user := r.Header.Get("X-User-Id")
	if user == "" {
		stderrors.WriteHTTP(w, stderrors.NewInvalidInputError("missing user id"))
		return
	}

	account, err := h.store.GetOrCreate(r.Context(), user, r.Header.Get("X-User-Email"))
	if err != nil {
		stderrors.WriteHTTP(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(account)
}

// Consume handles POST /api/account/consume: one completed scan, one credit.
func (h *Handler) Consume(w http.ResponseWriter, r *http.Request) {
	user := r.Header.Get("X-User-Id")
	if user == "" {
		stderrors.WriteHTTP(w, stderrors.NewInvalidInputError("missing user id"))
		return
	}

	account, err := h.store.ConsumeCredit(r.Context(), user)
	if err != nil {
		if errors.Is(err, ErrAccountNotFound) {
			stderrors.WriteHTTP(w, &stderrors.StandardError{
				Code:      stderrors.ErrCodeAccountNotFound,
				Message:   "Account not found",
				Timestamp: time.Now().UTC(),
			})
			return
		}
		stderrors.WriteHTTP(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(account)
}
