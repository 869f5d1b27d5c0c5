// internal/places/client.go

// Package places wraps the external places provider: paginated text search
// and per-place detail lookups.
package places

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"time"

	"cedars-leadgen/internal/common/config"
	commonhttp "cedars-leadgen/internal/common/http"
	"cedars-leadgen/internal/common/logger"
	"cedars-leadgen/internal/common/metrics"
)

// ErrProvider marks any failure of the places provider: transport errors,
// non-2xx responses, unparseable payloads or a non-success provider status.
var ErrProvider = errors.New("PROVIDER_ERROR")

const detailFields = "name,formatted_phone_number,website,formatted_address,url"

// SleepFunc suspends for d or returns early with ctx's error. Injected so
// tests can observe the page-token delay without waiting it out.
type SleepFunc func(ctx context.Context, d time.Duration) error

func sleepContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// Client issues text-search and detail calls against the provider.
type Client struct {
	baseURL string
	apiKey  string
	delay   time.Duration
	http    *commonhttp.Client
	sleep   SleepFunc
	logger  logger.Logger
}

func NewClient(cfg config.PlacesConfig, log logger.Logger) *Client {
	return &Client{
		baseURL: cfg.BaseURL,
		apiKey:  cfg.APIKey,
		delay:   config.GetDuration(cfg.PageTokenDelay),
		http:    commonhttp.NewClient(config.GetDuration(cfg.Timeout)),
		sleep:   sleepContext,
		logger:  log.WithFields(map[string]interface{}{"component": "places"}),
	}
}

// WithSleep overrides the delay function; tests use this to fake the clock.
func (c *Client) WithSleep(fn SleepFunc) *Client {
	c.sleep = fn
	return c
}

// Search fetches one page of text-search results. When pageToken is set the
// call waits out the provider's token-propagation delay first; a token
// reused too early is rejected by the provider. Results are never nil.
func (c *Client) Search(ctx context.Context, query, pageToken string) (*SearchPage, error) {
	if pageToken != "" {
		if err := c.sleep(ctx, c.delay); err != nil {
			return nil, err
		}
	}

	params := url.Values{}
	params.Set("query", query)
	params.Set("key", c.apiKey)
	if pageToken != "" {
		params.Set("pagetoken", pageToken)
	}

	var resp searchResponse
	if err := c.get(ctx, "textsearch", params, &resp); err != nil {
		return nil, err
	}

	if resp.Status != statusOK && resp.Status != statusZeroResults {
		metrics.ProviderErrors.WithLabelValues("textsearch").Inc()
		return nil, fmt.Errorf("%w: textsearch status %s: %s", ErrProvider, resp.Status, resp.ErrorMessage)
	}

	if resp.Results == nil {
		resp.Results = []PlaceSummary{}
	}

	return &SearchPage{
		Results:       resp.Results,
		NextPageToken: resp.NextPageToken,
	}, nil
}

// Details fetches the detail record for a place id. Exactly one round trip
// per call; the enumerator guarantees at most one call per unique id within
// a request, so no caching happens here.
func (c *Client) Details(ctx context.Context, placeID string) (*PlaceDetail, error) {
	params := url.Values{}
	params.Set("place_id", placeID)
	params.Set("fields", detailFields)
	params.Set("key", c.apiKey)

	var resp detailResponse
	if err := c.get(ctx, "details", params, &resp); err != nil {
		return nil, err
	}

	if resp.Status != statusOK {
		metrics.ProviderErrors.WithLabelValues("details").Inc()
		return nil, fmt.Errorf("%w: details status %s: %s", ErrProvider, resp.Status, resp.ErrorMessage)
	}

	return &resp.Result, nil
}

func (c *Client) get(ctx context.Context, endpoint string, params url.Values, out interface{}) error {
	metrics.ProviderCalls.WithLabelValues(endpoint).Inc()

	reqURL := fmt.Sprintf("%s/%s/json?%s", c.baseURL, endpoint, params.Encode())

	resp, err := c.http.Get(ctx, reqURL)
	if err != nil {
		metrics.ProviderErrors.WithLabelValues(endpoint).Inc()
		return fmt.Errorf("%w: %s request: %v", ErrProvider, endpoint, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		metrics.ProviderErrors.WithLabelValues(endpoint).Inc()
		return fmt.Errorf("%w: %s returned %d", ErrProvider, endpoint, resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		metrics.ProviderErrors.WithLabelValues(endpoint).Inc()
		return fmt.Errorf("%w: %s decode: %v", ErrProvider, endpoint, err)
	}

	return nil
}
