package models

import (
	"strings"
	"time"
)

// AnonymousEmpID is the sentinel stored in place of the author's id when a
// submission is anonymized. Anonymous submissions never retain the author.
const AnonymousEmpID = "Anonymous"

// Feedback status values.
const (
	FeedbackStatusPending  = "pending"
	FeedbackStatusComplete = "complete"
)

// Moods maps the mood options shown on the feedback form to their numeric
// score (Great 5 ... Terrible 1).
var Moods = map[string]int{
	"😄 Great":    5,
	"🙂 Good":     4,
	"😐 Neutral":  3,
	"☹️ Not Good": 2,
	"😫 Terrible": 1,
}

// Feedback represents one survey submission stored in data/feedback.json.
// Classifier outputs are recorded verbatim; sentiment casing varies by model
// so comparisons must be case-insensitive.
type Feedback struct {
	ID                     string    `json:"id"`
	EmpID                  string    `json:"emp_id"`
	Department             string    `json:"dept"`
	Timestamp              time.Time `json:"timestamp"`
	Mood                   string    `json:"mood"`
	MoodScore              int       `json:"mood_score"`
	WorkSatisfaction       int       `json:"work_satisfaction"`
	TeamSatisfaction       int       `json:"team_satisfaction"`
	ManagementSatisfaction int       `json:"management_satisfaction"`
	FeedbackText           string    `json:"feedback_text"`
	Emotion                string    `json:"emotion"`
	EmotionConfidence      float64   `json:"emotion_confidence"`
	Sentiment              string    `json:"sentiment"`
	SentimentConfidence    float64   `json:"sentiment_confidence"`
	Status                 string    `json:"status"`
	AlertShown             bool      `json:"alert_shown,omitempty"`
}

// IsAnonymous reports whether the submission carries the anonymous sentinel.
func (f *Feedback) IsAnonymous() bool {
	return f.EmpID == "" || f.EmpID == AnonymousEmpID
}

// IsComplete reports whether an admin has marked the feedback complete.
func (f *Feedback) IsComplete() bool {
	return strings.EqualFold(f.Status, FeedbackStatusComplete)
}

// IsNegative reports whether the classifier tagged the feedback negative,
// whatever casing the model produced.
func (f *Feedback) IsNegative() bool {
	return strings.EqualFold(f.Sentiment, "negative")
}
