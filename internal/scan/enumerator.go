// internal/scan/enumerator.go

// Package scan drives the streaming enumeration pipeline: expand a category
// into query templates, page through the places provider per template,
// deduplicate across templates by place id, enrich each new place with a
// detail lookup and hand qualifying leads to the caller in order.
package scan

import (
	"context"

	"cedars-leadgen/internal/common/logger"
	"cedars-leadgen/internal/models"
	"cedars-leadgen/internal/places"
)

// Searcher is the paginated text-search dependency.
type Searcher interface {
	Search(ctx context.Context, query, pageToken string) (*places.SearchPage, error)
}

// Detailer is the per-place detail dependency.
type Detailer interface {
	Details(ctx context.Context, placeID string) (*places.PlaceDetail, error)
}

// LeadFunc receives each qualifying lead in emission order. Returning an
// error stops the enumeration; the enumerator makes no further provider
// calls after that.
type LeadFunc func(lead models.Lead) error

// BoundaryFunc is called after each template finishes, with the number of
// completed templates and the total.
type BoundaryFunc func(completed, total int) error

// Enumerator runs one scan. Templates are processed strictly one at a time
// in catalog order; there is no fan-out across templates or places, which
// bounds load on the provider and keeps the seen set free of locking.
type Enumerator struct {
	searcher Searcher
	detailer Detailer
	logger   logger.Logger
}

func NewEnumerator(searcher Searcher, detailer Detailer, log logger.Logger) *Enumerator {
	return &Enumerator{
		searcher: searcher,
		detailer: detailer,
		logger:   log.WithFields(map[string]interface{}{"component": "enumerator"}),
	}
}

// Enumerate pages through every query, deduplicating by place id across the
// whole request: a place matched by two templates is reported once, for the
// template that saw it first. Leads are yielded only when the detail record
// carries a phone number; places without one are dropped silently. Any
// provider error aborts the remaining enumeration. ctx is checked between
// provider calls so a disconnected client stops the scan promptly.
func (e *Enumerator) Enumerate(ctx context.Context, category, city string, queries []string, onLead LeadFunc, onBoundary BoundaryFunc) error {
	seen := make(map[string]struct{})
	total := len(queries)

	for i, query := range queries {
		pageToken := ""

		for {
			if err := ctx.Err(); err != nil {
				return err
			}

			page, err := e.searcher.Search(ctx, query, pageToken)
			if err != nil {
				e.logger.Error("search page failed", map[string]interface{}{
					"query": query,
					"error": err.Error(),
				})
				return err
			}

			for _, place := range page.Results {
				if place.PlaceID == "" {
					continue
				}
				if _, ok := seen[place.PlaceID]; ok {
					continue
				}
				seen[place.PlaceID] = struct{}{}

				if err := ctx.Err(); err != nil {
					return err
				}

				detail, err := e.detailer.Details(ctx, place.PlaceID)
				if err != nil {
					e.logger.Error("detail lookup failed", map[string]interface{}{
						"placeId": place.PlaceID,
						"error":   err.Error(),
					})
					return err
				}

				if detail.FormattedPhoneNumber == "" {
					continue
				}

				lead := models.Lead{
					Category: category,
					Name:     detail.Name,
					Phone:    detail.FormattedPhoneNumber,
					Website:  detail.Website,
					Address:  detail.FormattedAddress,
					Maps:     detail.URL,
				}
				if err := onLead(lead); err != nil {
					return err
				}
			}

			if page.NextPageToken == "" {
				break
			}
			pageToken = page.NextPageToken
		}

		if err := onBoundary(i+1, total); err != nil {
			return err
		}
	}

	e.logger.Info("scan finished", map[string]interface{}{
		"category":     category,
		"city":         city,
		"uniquePlaces": len(seen),
	})
	return nil
}
