package domain

import "time"

// Subscriber statuses. Only "active" is currently produced; the column
// exists so a future unsubscribe flow can flip it without a migration.
const (
	SubscriberStatusActive   = "active"
	SubscriberStatusInactive = "inactive"
)

// Subscriber is a newsletter signup. Email is unique across the store.
type Subscriber struct {
	ID           int64     `json:"id" db:"id"`
	Email        string    `json:"email" db:"email"`
	Status       string    `json:"status" db:"status"`
	SubscribedAt time.Time `json:"subscribedAt" db:"subscribed_at"`
}
