package domain

import "time"

// Message statuses. A message is created unread and transitions to read
// exactly once; no other transitions exist.
const (
	MessageStatusUnread = "unread"
	MessageStatusRead   = "read"
)

// Message is a contact-form submission.
type Message struct {
	ID        int64     `json:"id" db:"id"`
	Name      string    `json:"name" db:"name"`
	Email     string    `json:"email" db:"email"`
	Subject   string    `json:"subject" db:"subject"`
	Message   string    `json:"message" db:"message"`
	Status    string    `json:"status" db:"status"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
}
