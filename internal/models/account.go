// internal/models/account.go
package models

// Subscription plans. Free accounts spend one attempt per completed scan,
// pro accounts are unlimited.
const (
	PlanFree = "free"
	PlanPro  = "pro"
)

// Account holds the per-user entitlement document: a remaining-attempts
// counter and the subscription plan flag.
type Account struct {
	UserID       string `json:"userId"`
	Email        string `json:"email,omitempty"`
	AttemptsLeft int    `json:"attemptsLeft"`
	Plan         string `json:"plan"`
}

// Unlimited reports whether the account's plan bypasses the credit counter.
func (a *Account) Unlimited() bool {
	return a.Plan == PlanPro
}
