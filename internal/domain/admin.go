package domain

import "time"

// Admin is the single dashboard credential. Password holds a bcrypt hash,
// never cleartext.
type Admin struct {
	ID        int64     `json:"id" db:"id"`
	Username  string    `json:"username" db:"username"`
	Password  string    `json:"-" db:"password"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
}
