package store

import (
	"log"
	"time"

	"github.com/google/uuid"

	"github.com/Private-Fox7/Empathy-Pulse/models"
)

// PasswordResets returns every reset token record, failing open to an empty
// slice. Tokens accumulate; there is no cleanup sweep.
func (s *DataStore) PasswordResets() []models.PasswordResetToken {
	var resets []models.PasswordResetToken
	if err := s.listInto(passwordResetFile, &resets); err != nil {
		log.Printf("⚠️ Error retrieving password resets: %v", err)
		return nil
	}
	return resets
}

// GetPasswordResetByToken returns the reset record for a token, or
// ErrRecordNotFound.
func (s *DataStore) GetPasswordResetByToken(token string) (*models.PasswordResetToken, error) {
	var resets []models.PasswordResetToken
	if err := s.listInto(passwordResetFile, &resets); err != nil {
		return nil, err
	}

	for i := range resets {
		if resets[i].Token == token {
			return &resets[i], nil
		}
	}
	return nil, ErrRecordNotFound
}

// AddPasswordReset appends a new reset token, stamping its creation time
// and defaulting expiry to one hour out when unset.
func (s *DataStore) AddPasswordReset(reset models.PasswordResetToken) error {
	if reset.Token == "" {
		reset.Token = uuid.NewString()
	}
	reset.CreatedAt = time.Now().UTC()
	if reset.ExpiresAt.IsZero() {
		reset.ExpiresAt = reset.CreatedAt.Add(time.Hour)
	}

	record, err := toRecord(reset)
	if err != nil {
		return err
	}
	return s.appendRecord(passwordResetFile, record, "Add password reset for "+reset.EmpID)
}

// UpdatePasswordReset merges fields into the reset record for a token.
func (s *DataStore) UpdatePasswordReset(token string, fields map[string]any) error {
	return s.updateRecord(passwordResetFile, "token", token, fields, "Update password reset token")
}
