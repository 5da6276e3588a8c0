package store

import (
	"log"
	"time"

	"github.com/google/uuid"

	"github.com/Private-Fox7/Empathy-Pulse/models"
)

// Feedback returns every feedback record, failing open to an empty slice.
func (s *DataStore) Feedback() []models.Feedback {
	var feedback []models.Feedback
	if err := s.listInto(feedbackFile, &feedback); err != nil {
		log.Printf("⚠️ Error getting feedback: %v", err)
		return nil
	}
	return feedback
}

// GetFeedback returns the feedback with the given id, or ErrRecordNotFound.
func (s *DataStore) GetFeedback(id string) (*models.Feedback, error) {
	var feedback []models.Feedback
	if err := s.listInto(feedbackFile, &feedback); err != nil {
		return nil, err
	}

	for i := range feedback {
		if feedback[i].ID == id {
			return &feedback[i], nil
		}
	}
	return nil, ErrRecordNotFound
}

// AddFeedback appends a new feedback record. A missing id is backfilled
// with a generated one, a missing timestamp is stamped, and status always
// starts out pending.
func (s *DataStore) AddFeedback(feedback models.Feedback) error {
	if feedback.ID == "" {
		feedback.ID = uuid.NewString()
	}
	if feedback.Timestamp.IsZero() {
		feedback.Timestamp = time.Now().UTC()
	}
	feedback.Status = models.FeedbackStatusPending

	record, err := toRecord(feedback)
	if err != nil {
		return err
	}
	return s.appendRecord(feedbackFile, record, "Add feedback from "+feedback.EmpID)
}

// UpdateFeedback merges fields into the feedback with the given id.
func (s *DataStore) UpdateFeedback(id string, fields map[string]any) error {
	return s.updateRecord(feedbackFile, "id", id, fields, "Update feedback "+id)
}
