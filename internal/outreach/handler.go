// internal/outreach/handler.go
package outreach

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	stderrors "cedars-leadgen/internal/common/errors"
	"cedars-leadgen/internal/common/logger"
	"cedars-leadgen/internal/history"
	"cedars-leadgen/internal/models"
)

// Handler serves the outreach endpoints. Generating a WhatsApp link for a
// saved lead also moves it to Contacted, matching how the listing treats a
// tapped link as the first touch.
type Handler struct {
	notifier       *Notifier
	store          *history.Store
	defaultMessage string
	logger         logger.Logger
}

func NewHandler(notifier *Notifier, store *history.Store, defaultMessage string, log logger.Logger) *Handler {
	return &Handler{
		notifier:       notifier,
		store:          store,
		defaultMessage: defaultMessage,
		logger:         log.WithFields(map[string]interface{}{"component": "outreach-handler"}),
	}
}

type whatsappRequest struct {
	Phone   string `json:"phone"`
	Message string `json:"message"`
	LeadID  string `json:"leadId"`
}

type whatsappResponse struct {
	Link string `json:"link"`
}

type notifyRequest struct {
	Email    string        `json:"email"`
	Phone    string        `json:"phone"`
	Category string        `json:"category"`
	City     string        `json:"city"`
	Leads    []models.Lead `json:"leads"`
}

// WhatsAppLink handles POST /api/outreach/whatsapp-link.
func (h *Handler) WhatsAppLink(w http.ResponseWriter, r *http.Request) {
	var req whatsappRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Phone == "" {
		stderrors.WriteHTTP(w, stderrors.NewInvalidInputError("phone required"))
		return
	}

	message := req.Message
	if message == "" {
		message = h.defaultMessage
	}

	link, err := WhatsAppLink(req.Phone, message)
	if err != nil {
		stderrors.WriteHTTP(w, &stderrors.StandardError{
			Code:      stderrors.ErrCodeInvalidPhoneNumber,
			Message:   "Phone number has no digits",
			Timestamp: time.Now().UTC(),
		})
		return
	}

	if req.LeadID != "" {
		user := r.Header.Get("X-User-Id")
		if user != "" {
			err := h.store.UpdateStatus(r.Context(), user, req.LeadID, models.StatusContacted)
			if err != nil && !errors.Is(err, history.ErrNotFound) {
				h.logger.Warn("contacted transition failed", map[string]interface{}{
					"leadId": req.LeadID,
					"error":  err.Error(),
				})
			}
		}
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(whatsappResponse{Link: link})
}

// Notify handles POST /api/outreach/notify: a digest email and, when a
// phone is given, an SMS completion alert.
func (h *Handler) Notify(w http.ResponseWriter, r *http.Request) {
	var req notifyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		stderrors.WriteHTTP(w, stderrors.NewInvalidInputError("malformed body"))
		return
	}
	if req.Email == "" && req.Phone == "" {
		stderrors.WriteHTTP(w, stderrors.NewInvalidInputError("email or phone required"))
		return
	}

	channels := []string{}

	if req.Email != "" {
		err := h.notifier.EmailDigest(r.Context(), req.Email, req.Category, req.City, req.Leads)
		if err != nil {
			h.writeNotifyError(w, err)
			return
		}
		channels = append(channels, "email")
	}

	if req.Phone != "" {
		err := h.notifier.SMSAlert(r.Context(), req.Phone, req.Category, req.City, len(req.Leads))
		if err != nil {
			h.writeNotifyError(w, err)
			return
		}
		channels = append(channels, "sms")
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]interface{}{"sent": channels})
}

func (h *Handler) writeNotifyError(w http.ResponseWriter, err error) {
	if errors.Is(err, ErrNotificationsDisabled) {
		stderrors.WriteHTTP(w, &stderrors.StandardError{
			Code:      stderrors.ErrCodeNotificationsOff,
			Message:   "Notifications are not enabled",
			Timestamp: time.Now().UTC(),
		})
		return
	}
	stderrors.WriteHTTP(w, &stderrors.StandardError{
		Code:      stderrors.ErrCodeNotificationFailed,
		Message:   "Notification delivery failed",
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	})
}
