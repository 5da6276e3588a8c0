package store

import (
	"log"
	"time"

	"github.com/Private-Fox7/Empathy-Pulse/models"
)

// Admins returns every admin record, failing open to an empty slice.
func (s *DataStore) Admins() []models.Admin {
	var admins []models.Admin
	if err := s.listInto(adminsFile, &admins); err != nil {
		log.Printf("⚠️ Error getting admins: %v", err)
		return nil
	}
	return admins
}

// GetAdmin returns the admin with the given id, or ErrRecordNotFound.
func (s *DataStore) GetAdmin(adminID string) (*models.Admin, error) {
	var admins []models.Admin
	if err := s.listInto(adminsFile, &admins); err != nil {
		return nil, err
	}

	for i := range admins {
		if admins[i].AdminID == adminID {
			return &admins[i], nil
		}
	}
	return nil, ErrRecordNotFound
}

// AddAdmin appends a new admin record, stamping its creation time. There is
// no update or delete counterpart; admins are created once during setup.
func (s *DataStore) AddAdmin(admin models.Admin) error {
	admin.CreatedAt = time.Now().UTC()

	record, err := toRecord(admin)
	if err != nil {
		return err
	}
	return s.appendRecord(adminsFile, record, "Add admin "+admin.AdminID)
}
