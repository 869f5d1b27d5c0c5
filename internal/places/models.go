// internal/places/models.go
package places

// Provider status values we accept as success. Anything else (for example
// INVALID_REQUEST on a page token that has not propagated yet, or
// OVER_QUERY_LIMIT) is surfaced as a provider error.
const (
	statusOK          = "OK"
	statusZeroResults = "ZERO_RESULTS"
)

// PlaceSummary is one entry of a text-search page. Only PlaceID is required
// by the pipeline; the remaining fields mirror what the provider returns and
// are decoded defensively as optional.
type PlaceSummary struct {
	PlaceID          string   `json:"place_id"`
	Name             string   `json:"name,omitempty"`
	FormattedAddress string   `json:"formatted_address,omitempty"`
	BusinessStatus   string   `json:"business_status,omitempty"`
	Rating           *float64 `json:"rating,omitempty"`
	UserRatingsTotal *int     `json:"user_ratings_total,omitempty"`
	Types            []string `json:"types,omitempty"`
}

// SearchPage is one page of text-search results. A non-empty NextPageToken
// means a further page exists, but only after the provider's propagation
// delay has elapsed.
type SearchPage struct {
	Results       []PlaceSummary
	NextPageToken string
}

// searchResponse is the provider's wire shape for a text-search call.
type searchResponse struct {
	Results       []PlaceSummary `json:"results"`
	NextPageToken string         `json:"next_page_token"`
	Status        string         `json:"status"`
	ErrorMessage  string         `json:"error_message"`
}

// PlaceDetail is the per-place detail record. All fields are optional on
// the wire; the enumerator filters on FormattedPhoneNumber.
type PlaceDetail struct {
	Name                 string `json:"name"`
	FormattedPhoneNumber string `json:"formatted_phone_number"`
	Website              string `json:"website"`
	FormattedAddress     string `json:"formatted_address"`
	URL                  string `json:"url"`
}

// detailResponse is the provider's wire shape for a place-details call.
type detailResponse struct {
	Result       PlaceDetail `json:"result"`
	Status       string      `json:"status"`
	ErrorMessage string      `json:"error_message"`
}
