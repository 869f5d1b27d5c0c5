// internal/places/client_test.go
package places

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cedars-leadgen/internal/common/config"
	"cedars-leadgen/internal/common/logger"
)

// ==========================
// Test Helpers
// ==========================

func newTestClient(t *testing.T, baseURL string) *Client {
	return NewClient(config.PlacesConfig{
		BaseURL:        baseURL,
		APIKey:         "test-key",
		Timeout:        5000,
		PageTokenDelay: 2000,
	}, logger.NewTestLogger(t))
}

// recordingSleep captures requested delays without waiting them out.
type recordingSleep struct {
	delays []time.Duration
}

func (r *recordingSleep) sleep(ctx context.Context, d time.Duration) error {
	r.delays = append(r.delays, d)
	return ctx.Err()
}

// ==========================
// Search Tests
// ==========================

func TestSearch_FirstPageHasNoDelay(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/textsearch/json", r.URL.Path)
		assert.Equal(t, "restaurant Tripoli", r.URL.Query().Get("query"))
		assert.Equal(t, "test-key", r.URL.Query().Get("key"))
		assert.Empty(t, r.URL.Query().Get("pagetoken"))

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"status": "OK",
			"results": [{"place_id": "p1", "name": "Al Mina"}],
			"next_page_token": "tok-2"
		}`))
	}))
	defer server.Close()

	sleeper := &recordingSleep{}
	client := newTestClient(t, server.URL).WithSleep(sleeper.sleep)

	page, err := client.Search(context.Background(), "restaurant Tripoli", "")
	require.NoError(t, err)

	assert.Empty(t, sleeper.delays)
	assert.Len(t, page.Results, 1)
	assert.Equal(t, "p1", page.Results[0].PlaceID)
	assert.Equal(t, "tok-2", page.NextPageToken)
}

func TestSearch_PageTokenWaitsOutPropagationDelay(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "tok-2", r.URL.Query().Get("pagetoken"))
		w.Write([]byte(`{"status": "OK", "results": []}`))
	}))
	defer server.Close()

	sleeper := &recordingSleep{}
	client := newTestClient(t, server.URL).WithSleep(sleeper.sleep)

	_, err := client.Search(context.Background(), "restaurant Tripoli", "tok-2")
	require.NoError(t, err)

	require.Len(t, sleeper.delays, 1)
	assert.Equal(t, 2*time.Second, sleeper.delays[0])
}

func TestSearch_ZeroResultsIsNotAnError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"status": "ZERO_RESULTS"}`))
	}))
	defer server.Close()

	client := newTestClient(t, server.URL)

	page, err := client.Search(context.Background(), "submarine dealer Tripoli", "")
	require.NoError(t, err)
	assert.NotNil(t, page.Results)
	assert.Empty(t, page.Results)
	assert.Empty(t, page.NextPageToken)
}

func TestSearch_ProviderStatusError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"status": "REQUEST_DENIED", "error_message": "bad key"}`))
	}))
	defer server.Close()

	client := newTestClient(t, server.URL)

	_, err := client.Search(context.Background(), "restaurant Tripoli", "")
	assert.ErrorIs(t, err, ErrProvider)
	assert.Contains(t, err.Error(), "REQUEST_DENIED")
}

func TestSearch_TransportFailures(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
	}{
		{
			name: "non-2xx response",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusInternalServerError)
			},
		},
		{
			name: "malformed body",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(`{"status": "OK", "results": [`))
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(tt.handler)
			defer server.Close()

			client := newTestClient(t, server.URL)

			_, err := client.Search(context.Background(), "restaurant Tripoli", "")
			assert.ErrorIs(t, err, ErrProvider)
		})
	}
}

func TestSearch_CancelledDuringDelay(t *testing.T) {
	client := newTestClient(t, "http://unreachable.invalid")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := client.Search(ctx, "restaurant Tripoli", "tok-2")
	assert.ErrorIs(t, err, context.Canceled)
}

// ==========================
// Details Tests
// ==========================

func TestDetails_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/details/json", r.URL.Path)
		assert.Equal(t, "p1", r.URL.Query().Get("place_id"))
		assert.Equal(t, detailFields, r.URL.Query().Get("fields"))

		w.Write([]byte(`{
			"status": "OK",
			"result": {
				"name": "Al Mina Restaurant",
				"formatted_phone_number": "+961 6 123 456",
				"website": "https://almina.example",
				"formatted_address": "Mina, Tripoli",
				"url": "https://maps.example/p1"
			}
		}`))
	}))
	defer server.Close()

	client := newTestClient(t, server.URL)

	detail, err := client.Details(context.Background(), "p1")
	require.NoError(t, err)

	assert.Equal(t, "Al Mina Restaurant", detail.Name)
	assert.Equal(t, "+961 6 123 456", detail.FormattedPhoneNumber)
	assert.Equal(t, "https://almina.example", detail.Website)
	assert.Equal(t, "Mina, Tripoli", detail.FormattedAddress)
	assert.Equal(t, "https://maps.example/p1", detail.URL)
}

func TestDetails_NonOKStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"status": "NOT_FOUND"}`))
	}))
	defer server.Close()

	client := newTestClient(t, server.URL)

	_, err := client.Details(context.Background(), "gone")
	assert.ErrorIs(t, err, ErrProvider)
}
