// internal/scan/handler.go
package scan

import (
	"encoding/json"
	"errors"
	"math"
	"net/http"
	"time"

	"cedars-leadgen/internal/catalog"
	stderrors "cedars-leadgen/internal/common/errors"
	"cedars-leadgen/internal/common/logger"
	"cedars-leadgen/internal/common/metrics"
	"cedars-leadgen/internal/common/observability"
	"cedars-leadgen/internal/common/validation"
	"cedars-leadgen/internal/models"
	"cedars-leadgen/internal/places"
	"cedars-leadgen/internal/stream"
)

// Handler serves the generate-stream endpoint: validate the request, then
// stream lead and progress frames until the scan completes or the client
// disconnects.
type Handler struct {
	catalog    *catalog.Catalog
	enumerator *Enumerator
	config     Config
	obs        *observability.Observability
	logger     logger.Logger
}

func NewHandler(cat *catalog.Catalog, enum *Enumerator, cfg Config, obs *observability.Observability, log logger.Logger) *Handler {
	return &Handler{
		catalog:    cat,
		enumerator: enum,
		config:     cfg,
		obs:        obs,
		logger:     log.WithFields(map[string]interface{}{"component": "scan-handler"}),
	}
}

// ServeHTTP handles POST /api/generate-stream.
//
// Errors before the first frame get a JSON status response; once streaming
// has started the response is committed as 200 and a failure can only end
// the stream (optionally with a terminal error frame).
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		stderrors.WriteHTTPBare(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	input, ok := h.parseInput(r)
	if !ok {
		stderrors.WriteHTTPBare(w, http.StatusBadRequest, "Invalid input")
		return
	}

	queries, err := h.catalog.RenderAll(input.Category, input.City)
	if err != nil {
		stderrors.WriteHTTPBare(w, http.StatusBadRequest, "Invalid input")
		return
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	metrics.ScansStarted.WithLabelValues(input.Category).Inc()
	start := time.Now()

	writer := stream.NewWriter(w)
	defer writer.Close()

	err = h.enumerator.Enumerate(r.Context(), input.Category, input.City, queries,
		func(lead models.Lead) error {
			if err := writer.EmitLead(lead); err != nil {
				return err
			}
			metrics.LeadsEmitted.WithLabelValues(input.Category).Inc()
			return nil
		},
		func(completed, total int) error {
			percent := int(math.Round(100 * float64(completed) / float64(total)))
			return writer.EmitProgress(percent)
		},
	)

	status := "success"
	if err != nil {
		status = "error"
		h.logger.Warn("scan stream ended early", map[string]interface{}{
			"category": input.Category,
			"city":     input.City,
			"error":    err.Error(),
		})
		if h.config.EmitErrorEvent && errors.Is(err, places.ErrProvider) {
			_ = writer.EmitError(string(stderrors.ErrCodeProviderError))
		}
	}

	metrics.ScansCompleted.WithLabelValues(input.Category, status).Inc()
	metrics.ScanDuration.WithLabelValues(input.Category).Observe(time.Since(start).Seconds())
	if h.obs != nil {
		h.obs.RecordScan(r.Context(), input.Category, status)
		h.obs.RecordScanDuration(r.Context(), time.Since(start), status)
	}
}

// parseInput decodes and schema-validates the request body.
func (h *Handler) parseInput(r *http.Request) (Input, bool) {
	var raw map[string]interface{}
	if err := json.NewDecoder(r.Body).Decode(&raw); err != nil {
		return Input{}, false
	}

	result, err := validation.Validate(raw, requestSchema)
	if err != nil || !result.Valid {
		return Input{}, false
	}

	category, _ := raw["category"].(string)
	city, _ := raw["city"].(string)
	return Input{Category: category, City: city}, true
}
