package models

import "time"

// Admin represents an HR admin account stored in data/admins.json.
// Admins are created once through the first-run setup flow; there is no
// update or delete path for them.
type Admin struct {
	AdminID      string    `json:"admin_id"`
	PasswordHash string    `json:"password"`
	CreatedAt    time.Time `json:"created_at"`
}
