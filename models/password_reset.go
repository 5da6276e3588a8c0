package models

import "time"

// PasswordResetToken represents a one-shot reset token stored in
// data/password_reset.json. Tokens are never deleted; consumed ones stay in
// the collection with used=true.
type PasswordResetToken struct {
	EmpID     string    `json:"emp_id"`
	Token     string    `json:"token"`
	Used      bool      `json:"used"`
	CreatedAt time.Time `json:"created_at"`
	ExpiresAt time.Time `json:"expires_at"`
}

// IsExpired checks if the token is past its expiry time.
func (t *PasswordResetToken) IsExpired() bool {
	return time.Now().After(t.ExpiresAt)
}

// IsUsable checks if the token can still be consumed (unused and not expired).
func (t *PasswordResetToken) IsUsable() bool {
	return !t.Used && !t.IsExpired()
}
