// internal/history/store_test.go
package history

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cedars-leadgen/internal/common/logger"
	"cedars-leadgen/internal/models"
)

// ==========================
// Test Helpers
// ==========================

func newMockStore(t *testing.T) (*Store, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewStore(db, logger.NewTestLogger(t)), mock
}

var historyColumns = []string{
	"id", "category", "name", "phone", "website", "address", "maps_url", "status", "created_at",
}

// ==========================
// SaveBatch Tests
// ==========================

func TestSaveBatch_InsertsAllLeadsAsNew(t *testing.T) {
	store, mock := newMockStore(t)

	mock.ExpectBegin()
	insert := regexp.QuoteMeta("INSERT INTO lead_history")
	mock.ExpectExec(insert).
		WithArgs(sqlmock.AnyArg(), "u1", "Hospitality & Food", "Al Mina", "111",
			"https://almina.example", "Mina, Tripoli", "https://maps.example/p1",
			models.StatusNew, sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(insert).
		WithArgs(sqlmock.AnyArg(), "u1", "Hospitality & Food", "Harbor Cafe", "222",
			"", "", "", models.StatusNew, sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	saved, err := store.SaveBatch(context.Background(), "u1", []models.Lead{
		{
			Category: "Hospitality & Food",
			Name:     "Al Mina",
			Phone:    "111",
			Website:  "https://almina.example",
			Address:  "Mina, Tripoli",
			Maps:     "https://maps.example/p1",
		},
		{Category: "Hospitality & Food", Name: "Harbor Cafe", Phone: "222"},
	})
	require.NoError(t, err)

	require.Len(t, saved, 2)
	assert.NotEmpty(t, saved[0].ID)
	assert.NotEqual(t, saved[0].ID, saved[1].ID)
	assert.Equal(t, models.StatusNew, saved[0].Status)
	assert.Equal(t, "u1", saved[0].UserID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSaveBatch_EmptyInputSkipsDatabase(t *testing.T) {
	store, mock := newMockStore(t)

	saved, err := store.SaveBatch(context.Background(), "u1", nil)
	require.NoError(t, err)
	assert.Empty(t, saved)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSaveBatch_InsertFailureRollsBack(t *testing.T) {
	store, mock := newMockStore(t)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO lead_history")).
		WillReturnError(assert.AnError)
	mock.ExpectRollback()

	_, err := store.SaveBatch(context.Background(), "u1", []models.Lead{
		{Category: "Automotive", Name: "Tire Center", Phone: "1"},
	})
	assert.ErrorIs(t, err, ErrSaveFailed)
	assert.NoError(t, mock.ExpectationsWereMet())
}

// ==========================
// List Tests
// ==========================

func TestList_ReturnsRowsInStoreOrder(t *testing.T) {
	store, mock := newMockStore(t)

	newer := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)
	older := newer.Add(-time.Hour)

	mock.ExpectQuery("SELECT (.+) FROM lead_history").
		WithArgs("u1").
		WillReturnRows(sqlmock.NewRows(historyColumns).
			AddRow("id-2", "Automotive", "Tire Center", "222", "", "", "", models.StatusContacted, newer).
			AddRow("id-1", "Automotive", "Car Rental", "111", "", "", "", models.StatusNew, older))

	entries, err := store.List(context.Background(), "u1")
	require.NoError(t, err)

	require.Len(t, entries, 2)
	assert.Equal(t, "id-2", entries[0].ID)
	assert.Equal(t, "Tire Center", entries[0].Lead.Name)
	assert.Equal(t, models.StatusContacted, entries[0].Status)
	assert.Equal(t, newer, entries[0].Timestamp)
	assert.Equal(t, "u1", entries[1].UserID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestList_EmptyHistory(t *testing.T) {
	store, mock := newMockStore(t)

	mock.ExpectQuery("SELECT (.+) FROM lead_history").
		WithArgs("u1").
		WillReturnRows(sqlmock.NewRows(historyColumns))

	entries, err := store.List(context.Background(), "u1")
	require.NoError(t, err)
	assert.NotNil(t, entries)
	assert.Empty(t, entries)
}

// ==========================
// Mutation Tests
// ==========================

func TestUpdateStatus(t *testing.T) {
	tests := []struct {
		name     string
		affected int64
		wantErr  error
	}{
		{name: "existing lead", affected: 1, wantErr: nil},
		{name: "missing or foreign lead", affected: 0, wantErr: ErrNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store, mock := newMockStore(t)

			mock.ExpectExec("UPDATE lead_history SET status").
				WithArgs("u1", "id-1", models.StatusInterested).
				WillReturnResult(sqlmock.NewResult(0, tt.affected))

			err := store.UpdateStatus(context.Background(), "u1", "id-1", models.StatusInterested)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
			}
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestDelete_MissingLead(t *testing.T) {
	store, mock := newMockStore(t)

	mock.ExpectExec("DELETE FROM lead_history").
		WithArgs("u1", "gone").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := store.Delete(context.Background(), "u1", "gone")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDeleteBatch_ReportsAffectedCount(t *testing.T) {
	store, mock := newMockStore(t)

	mock.ExpectExec("DELETE FROM lead_history").
		WithArgs("u1", sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 2))

	deleted, err := store.DeleteBatch(context.Background(), "u1", []string{"id-1", "id-2", "foreign"})
	require.NoError(t, err)
	assert.Equal(t, int64(2), deleted)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteBatch_NoIDsSkipsDatabase(t *testing.T) {
	store, mock := newMockStore(t)

	deleted, err := store.DeleteBatch(context.Background(), "u1", nil)
	require.NoError(t, err)
	assert.Zero(t, deleted)
	assert.NoError(t, mock.ExpectationsWereMet())
}
