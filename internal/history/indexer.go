// internal/history/indexer.go
package history

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"

	"cedars-leadgen/internal/common/logger"
	"cedars-leadgen/internal/models"
)

var ErrSearchFailed = errors.New("SEARCH_QUERY_FAILED")

// Indexer mirrors saved leads into Elasticsearch so history can be searched
// by business name. The mirror is best effort: Postgres stays the source of
// truth, and index failures never fail the save that triggered them.
type Indexer struct {
	client *elasticsearch.Client
	index  string
	logger logger.Logger
}

func NewIndexer(client *elasticsearch.Client, index string, log logger.Logger) *Indexer {
	return &Indexer{
		client: client,
		index:  index,
		logger: log.WithFields(map[string]interface{}{"component": "history-indexer"}),
	}
}

type leadDocument struct {
	UserID    string `json:"user_id"`
	Category  string `json:"category"`
	Name      string `json:"name"`
	Phone     string `json:"phone"`
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
}

// IndexLeads mirrors a batch of saved leads, one document per history id.
func (x *Indexer) IndexLeads(ctx context.Context, entries []models.HistoryLead) {
	for _, entry := range entries {
		doc := leadDocument{
			UserID:    entry.UserID,
			Category:  entry.Lead.Category,
			Name:      entry.Lead.Name,
			Phone:     entry.Lead.Phone,
			Status:    entry.Status,
			Timestamp: entry.Timestamp.Format("2006-01-02T15:04:05Z07:00"),
		}
		body, _ := json.Marshal(doc)

		req := esapi.IndexRequest{
			Index:      x.index,
			DocumentID: entry.ID,
			Body:       bytes.NewReader(body),
		}
		res, err := req.Do(ctx, x.client)
		if err != nil {
			x.logger.Warn("index lead failed", map[string]interface{}{
				"leadId": entry.ID,
				"error":  err.Error(),
			})
			continue
		}
		if res.IsError() {
			x.logger.Warn("index lead rejected", map[string]interface{}{
				"leadId": entry.ID,
				"status": res.StatusCode,
			})
		}
		res.Body.Close()
	}
}

// RemoveLeads drops mirror documents for deleted history ids.
func (x *Indexer) RemoveLeads(ctx context.Context, ids []string) {
	for _, id := range ids {
		req := esapi.DeleteRequest{Index: x.index, DocumentID: id}
		res, err := req.Do(ctx, x.client)
		if err != nil {
			x.logger.Warn("remove lead from index failed", map[string]interface{}{
				"leadId": id,
				"error":  err.Error(),
			})
			continue
		}
		res.Body.Close()
	}
}

// SearchByName returns history ids for the user's saved leads whose business
// name matches the query, best match first.
func (x *Indexer) SearchByName(ctx context.Context, userID, query string, size int) ([]string, error) {
	queryBody := map[string]interface{}{
		"query": map[string]interface{}{
			"bool": map[string]interface{}{
				"must": []interface{}{
					map[string]interface{}{
						"match": map[string]interface{}{
							"name": map[string]interface{}{
								"query":     query,
								"fuzziness": "AUTO",
							},
						},
					},
				},
				"filter": []interface{}{
					map[string]interface{}{
						"term": map[string]interface{}{"user_id": userID},
					},
				},
			},
		},
	}
	body, _ := json.Marshal(queryBody)

	req := esapi.SearchRequest{
		Index: []string{x.index},
		Body:  strings.NewReader(string(body)),
		Size:  &size,
	}
	res, err := req.Do(ctx, x.client)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSearchFailed, err)
	}
	defer res.Body.Close()

	if res.IsError() {
		return nil, fmt.Errorf("%w: status %d", ErrSearchFailed, res.StatusCode)
	}

	var parsed struct {
		Hits struct {
			Hits []struct {
				ID string `json:"_id"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("%w: decode: %v", ErrSearchFailed, err)
	}

	ids := make([]string, 0, len(parsed.Hits.Hits))
	for _, hit := range parsed.Hits.Hits {
		ids = append(ids, hit.ID)
	}
	return ids, nil
}
