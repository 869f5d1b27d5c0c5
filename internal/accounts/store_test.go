// internal/accounts/store_test.go
package accounts

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cedars-leadgen/internal/common/logger"
	"cedars-leadgen/internal/models"
)

// ==========================
// Test Helpers
// ==========================

func newTestStore(t *testing.T) (*Store, *miniredis.Miniredis) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return NewStore(client, logger.NewTestLogger(t)), mr
}

// ==========================
// Account Lifecycle Tests
// ==========================

func TestGet_MissingAccount(t *testing.T) {
	store, _ := newTestStore(t)

	_, err := store.Get(context.Background(), "ghost")
	assert.ErrorIs(t, err, ErrAccountNotFound)
}

func TestGetOrCreate_SeedsFreeAccount(t *testing.T) {
	store, _ := newTestStore(t)

	account, err := store.GetOrCreate(context.Background(), "u1", "u1@example.com")
	require.NoError(t, err)

	assert.Equal(t, "u1", account.UserID)
	assert.Equal(t, "u1@example.com", account.Email)
	assert.Equal(t, DefaultFreeAttempts, account.AttemptsLeft)
	assert.Equal(t, models.PlanFree, account.Plan)
	assert.False(t, account.Unlimited())

	// Second call is a plain read, not a reseed.
	_, err = store.ConsumeCredit(context.Background(), "u1")
	require.NoError(t, err)

	again, err := store.GetOrCreate(context.Background(), "u1", "u1@example.com")
	require.NoError(t, err)
	assert.Equal(t, DefaultFreeAttempts-1, again.AttemptsLeft)
}

// ==========================
// Credit Tests
// ==========================

func TestConsumeCredit_DecrementsFreeAccount(t *testing.T) {
	store, _ := newTestStore(t)

	_, err := store.GetOrCreate(context.Background(), "u1", "")
	require.NoError(t, err)

	account, err := store.ConsumeCredit(context.Background(), "u1")
	require.NoError(t, err)
	assert.Equal(t, DefaultFreeAttempts-1, account.AttemptsLeft)
}

func TestConsumeCredit_FloorsAtZero(t *testing.T) {
	store, _ := newTestStore(t)

	_, err := store.GetOrCreate(context.Background(), "u1", "")
	require.NoError(t, err)

	for i := 0; i < DefaultFreeAttempts+3; i++ {
		account, err := store.ConsumeCredit(context.Background(), "u1")
		require.NoError(t, err)
		assert.GreaterOrEqual(t, account.AttemptsLeft, 0)
	}

	account, err := store.Get(context.Background(), "u1")
	require.NoError(t, err)
	assert.Zero(t, account.AttemptsLeft)
}

func TestConsumeCredit_ProAccountIsUntouched(t *testing.T) {
	store, _ := newTestStore(t)

	_, err := store.GetOrCreate(context.Background(), "u1", "")
	require.NoError(t, err)
	require.NoError(t, store.SetPlan(context.Background(), "u1", models.PlanPro))

	account, err := store.ConsumeCredit(context.Background(), "u1")
	require.NoError(t, err)

	assert.True(t, account.Unlimited())
	assert.Equal(t, DefaultFreeAttempts, account.AttemptsLeft)
}

func TestConsumeCredit_MissingAccount(t *testing.T) {
	store, _ := newTestStore(t)

	_, err := store.ConsumeCredit(context.Background(), "ghost")
	assert.ErrorIs(t, err, ErrAccountNotFound)
}

// ==========================
// Plan Tests
// ==========================

func TestSetPlan_RejectsUnknownPlan(t *testing.T) {
	store, _ := newTestStore(t)

	_, err := store.GetOrCreate(context.Background(), "u1", "")
	require.NoError(t, err)

	assert.Error(t, store.SetPlan(context.Background(), "u1", "platinum"))
	assert.ErrorIs(t, store.SetPlan(context.Background(), "ghost", models.PlanPro), ErrAccountNotFound)
}

func TestGet_CorruptCounter(t *testing.T) {
	store, mr := newTestStore(t)

	mr.HSet("account:u1", "attempts_left", "not-a-number")
	mr.HSet("account:u1", "plan", models.PlanFree)

	_, err := store.Get(context.Background(), "u1")
	assert.ErrorIs(t, err, ErrStoreFailed)
}
