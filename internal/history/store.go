// internal/history/store.go

// Package history persists scanned leads per user and serves the saved-lead
// CRUD surface: bulk save, newest-first listing, status transitions and
// deletes, plus an optional name search through the Elasticsearch mirror.
package history

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"cedars-leadgen/internal/common/logger"
	"cedars-leadgen/internal/models"
)

var (
	ErrNotFound    = errors.New("HISTORY_NOT_FOUND")
	ErrSaveFailed  = errors.New("HISTORY_SAVE_FAILED")
	ErrQueryFailed = errors.New("HISTORY_QUERY_FAILED")
)

// Store is the Postgres-backed lead history. Every query is scoped by
// user_id; a row is never visible to, or mutable by, another user.
type Store struct {
	db     *sql.DB
	logger logger.Logger
}

func NewStore(db *sql.DB, log logger.Logger) *Store {
	return &Store{
		db:     db,
		logger: log.WithFields(map[string]interface{}{"component": "history-store"}),
	}
}

// Init creates the history table and its listing index. Safe to call on
// every startup.
func (s *Store) Init(ctx context.Context) error {
	const schema = `
		CREATE TABLE IF NOT EXISTS lead_history (
			id         TEXT PRIMARY KEY,
			user_id    TEXT NOT NULL,
			category   TEXT NOT NULL,
			name       TEXT NOT NULL,
			phone      TEXT NOT NULL,
			website    TEXT NOT NULL DEFAULT '',
			address    TEXT NOT NULL DEFAULT '',
			maps_url   TEXT NOT NULL DEFAULT '',
			status     TEXT NOT NULL,
			created_at TIMESTAMPTZ NOT NULL
		);
		CREATE INDEX IF NOT EXISTS lead_history_user_created_idx
			ON lead_history (user_id, created_at DESC);`

	if _, err := s.db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("create history schema: %w", err)
	}
	return nil
}

// SaveBatch stores a scan's leads for a user in one transaction. Every lead
// enters the lifecycle as New; timestamps are assigned server-side so the
// listing order cannot be forged by the client.
func (s *Store) SaveBatch(ctx context.Context, userID string, leads []models.Lead) ([]models.HistoryLead, error) {
	if len(leads) == 0 {
		return []models.HistoryLead{}, nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: begin: %v", ErrSaveFailed, err)
	}
	defer tx.Rollback()

	const insert = `
		INSERT INTO lead_history
			(id, user_id, category, name, phone, website, address, maps_url, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`

	now := time.Now().UTC()
	saved := make([]models.HistoryLead, 0, len(leads))

	for _, lead := range leads {
		entry := models.HistoryLead{
			ID:        uuid.NewString(),
			UserID:    userID,
			Lead:      lead,
			Status:    models.StatusNew,
			Timestamp: now,
		}
		_, err := tx.ExecContext(ctx, insert,
			entry.ID, userID,
			lead.Category, lead.Name, lead.Phone,
			lead.Website, lead.Address, lead.Maps,
			entry.Status, entry.Timestamp,
		)
		if err != nil {
			return nil, fmt.Errorf("%w: insert: %v", ErrSaveFailed, err)
		}
		saved = append(saved, entry)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("%w: commit: %v", ErrSaveFailed, err)
	}

	s.logger.Info("saved leads", map[string]interface{}{
		"userId": userID,
		"count":  len(saved),
	})
	return saved, nil
}

// List returns the user's saved leads, newest first.
func (s *Store) List(ctx context.Context, userID string) ([]models.HistoryLead, error) {
	const query = `
		SELECT id, category, name, phone, website, address, maps_url, status, created_at
		FROM lead_history
		WHERE user_id = $1
		ORDER BY created_at DESC, id`

	rows, err := s.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("%w: list: %v", ErrQueryFailed, err)
	}
	defer rows.Close()

	entries := []models.HistoryLead{}
	for rows.Next() {
		var entry models.HistoryLead
		entry.UserID = userID
		err := rows.Scan(
			&entry.ID,
			&entry.Lead.Category, &entry.Lead.Name, &entry.Lead.Phone,
			&entry.Lead.Website, &entry.Lead.Address, &entry.Lead.Maps,
			&entry.Status, &entry.Timestamp,
		)
		if err != nil {
			return nil, fmt.Errorf("%w: scan: %v", ErrQueryFailed, err)
		}
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: rows: %v", ErrQueryFailed, err)
	}
	return entries, nil
}

// Get returns one saved lead.
func (s *Store) Get(ctx context.Context, userID, id string) (*models.HistoryLead, error) {
	const query = `
		SELECT id, category, name, phone, website, address, maps_url, status, created_at
		FROM lead_history
		WHERE user_id = $1 AND id = $2`

	var entry models.HistoryLead
	entry.UserID = userID
	err := s.db.QueryRowContext(ctx, query, userID, id).Scan(
		&entry.ID,
		&entry.Lead.Category, &entry.Lead.Name, &entry.Lead.Phone,
		&entry.Lead.Website, &entry.Lead.Address, &entry.Lead.Maps,
		&entry.Status, &entry.Timestamp,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: get: %v", ErrQueryFailed, err)
	}
	return &entry, nil
}

// UpdateStatus moves a saved lead to a new lifecycle status.
func (s *Store) UpdateStatus(ctx context.Context, userID, id, status string) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE lead_history SET status = $3 WHERE user_id = $1 AND id = $2`,
		userID, id, status,
	)
	if err != nil {
		return fmt.Errorf("%w: update status: %v", ErrQueryFailed, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: update status: %v", ErrQueryFailed, err)
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes one saved lead.
func (s *Store) Delete(ctx context.Context, userID, id string) error {
	res, err := s.db.ExecContext(ctx,
		`DELETE FROM lead_history WHERE user_id = $1 AND id = $2`,
		userID, id,
	)
	if err != nil {
		return fmt.Errorf("%w: delete: %v", ErrQueryFailed, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: delete: %v", ErrQueryFailed, err)
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteBatch removes a set of saved leads and reports how many existed.
// Ids that belong to another user or were already gone are skipped, not
// errors.
func (s *Store) DeleteBatch(ctx context.Context, userID string, ids []string) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}

	res, err := s.db.ExecContext(ctx,
		`DELETE FROM lead_history WHERE user_id = $1 AND id = ANY($2)`,
		userID, pq.Array(ids),
	)
	if err != nil {
		return 0, fmt.Errorf("%w: delete batch: %v", ErrQueryFailed, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%w: delete batch: %v", ErrQueryFailed, err)
	}
	return affected, nil
}
