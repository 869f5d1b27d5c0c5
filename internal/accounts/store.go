// internal/accounts/store.go

// Package accounts tracks per-user scan entitlements: a remaining-attempts
// counter for free accounts and an unlimited pro plan.
package accounts

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/redis/go-redis/v9"

	"cedars-leadgen/internal/common/logger"
	"cedars-leadgen/internal/models"
)

var (
	ErrAccountNotFound = errors.New("ACCOUNT_NOT_FOUND")
	ErrStoreFailed     = errors.New("ACCOUNT_STORE_FAILED")
)

// DefaultFreeAttempts seeds new free accounts.
const DefaultFreeAttempts = 3

// Store keeps accounts as Redis hashes under account:{userId}. Redis is
// authoritative here; the counter is small, hot and per-user, and a lost
// decrement costs at most one free scan.
type Store struct {
	client *redis.Client
	logger logger.Logger
}

func NewStore(client *redis.Client, log logger.Logger) *Store {
	return &Store{
		client: client,
		logger: log.WithFields(map[string]interface{}{"component": "accounts-store"}),
	}
}

func accountKey(userID string) string {
	return "account:" + userID
}

// Get loads a user's account.
func (s *Store) Get(ctx context.Context, userID string) (*models.Account, error) {
	fields, err := s.client.HGetAll(ctx, accountKey(userID)).Result()
	if err != nil {
		return nil, fmt.Errorf("%w: get: %v", ErrStoreFailed, err)
	}
	if len(fields) == 0 {
		return nil, ErrAccountNotFound
	}

	attempts, err := strconv.Atoi(fields["attempts_left"])
	if err != nil {
		return nil, fmt.Errorf("%w: corrupt attempts_left for %s", ErrStoreFailed, userID)
	}

	return &models.Account{
		UserID:       userID,
		Email:        fields["email"],
		AttemptsLeft: attempts,
		Plan:         fields["plan"],
	}, nil
}

// GetOrCreate loads the account, seeding a fresh free account on first
// contact.
func (s *Store) GetOrCreate(ctx context.Context, userID, email string) (*models.Account, error) {
	account, err := s.Get(ctx, userID)
	if err == nil {
		return account, nil
	}
	if !errors.Is(err, ErrAccountNotFound) {
		return nil, err
	}

	account = &models.Account{
		UserID:       userID,
		Email:        email,
		AttemptsLeft: DefaultFreeAttempts,
		Plan:         models.PlanFree,
	}
	if err := s.put(ctx, account); err != nil {
		return nil, err
	}

	s.logger.Info("created account", map[string]interface{}{
		"userId": userID,
		"plan":   account.Plan,
	})
	return account, nil
}

// ConsumeCredit spends one attempt and returns the updated account. Pro
// accounts pass through untouched; a free account at zero stays at zero, the
// caller decides whether that blocks the scan.
func (s *Store) ConsumeCredit(ctx context.Context, userID string) (*models.Account, error) {
	account, err := s.Get(ctx, userID)
	if err != nil {
		return nil, err
	}

	if account.Unlimited() || account.AttemptsLeft <= 0 {
		return account, nil
	}

	left, err := s.client.HIncrBy(ctx, accountKey(userID), "attempts_left", -1).Result()
	if err != nil {
		return nil, fmt.Errorf("%w: consume: %v", ErrStoreFailed, err)
	}
	if left < 0 {
		// Concurrent consumers raced past zero; clamp.
		left = 0
		if err := s.client.HSet(ctx, accountKey(userID), "attempts_left", 0).Err(); err != nil {
			return nil, fmt.Errorf("%w: clamp: %v", ErrStoreFailed, err)
		}
	}

	account.AttemptsLeft = int(left)
	return account, nil
}

// SetPlan switches a user's plan.
func (s *Store) SetPlan(ctx context.Context, userID, plan string) error {
	if plan != models.PlanFree && plan != models.PlanPro {
		return fmt.Errorf("%w: unknown plan %q", ErrStoreFailed, plan)
	}
	if _, err := s.Get(ctx, userID); err != nil {
		return err
	}
	if err := s.client.HSet(ctx, accountKey(userID), "plan", plan).Err(); err != nil {
		return fmt.Errorf("%w: set plan: %v", ErrStoreFailed, err)
	}
	return nil
}

func (s *Store) put(ctx context.Context, account *models.Account) error {
	err := s.client.HSet(ctx, accountKey(account.UserID),
		"email", account.Email,
		"attempts_left", account.AttemptsLeft,
		"plan", account.Plan,
	).Err()
	if err != nil {
		return fmt.Errorf("%w: put: %v", ErrStoreFailed, err)
	}
	return nil
}
