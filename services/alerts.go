package services

import (
	"fmt"
	"log"

	"github.com/Private-Fox7/Empathy-Pulse/models"
	"github.com/Private-Fox7/Empathy-Pulse/store"
)

// DefaultAlertThreshold is the score at or above which an alert fires.
const DefaultAlertThreshold = 0.7

// departmentWeights biases the priority score per department. Departments
// not listed here weigh defaultDepartmentWeight.
var departmentWeights = map[string]float64{
	"HR":          0.1,
	"Engineering": 0.4,
	"Sales":       0.3,
	"Support":     0.2,
	"Marketing":   0.3,
	"Finance":     0.2,
	"Operations":  0.2,
	"Research":    0.3,
}

const defaultDepartmentWeight = 0.2

// DepartmentWeight returns the alert weight for a department.
func DepartmentWeight(dept string) float64 {
	if weight, ok := departmentWeights[dept]; ok {
		return weight
	}
	return defaultDepartmentWeight
}

// ComputePriority decides whether a feedback record warrants a
// high-priority notification. It skips (0, false) unless the sentiment is
// negative, the alert has not been dismissed and the feedback is still
// pending. Otherwise the score is the sentiment confidence plus the
// department weight, and the alert fires when it reaches the threshold.
func ComputePriority(feedback models.Feedback, threshold float64) (float64, bool) {
	if !feedback.IsNegative() {
		return 0, false
	}
	if feedback.AlertShown || feedback.IsComplete() {
		return 0, false
	}

	score := feedback.SentimentConfidence + DepartmentWeight(feedback.Department)
	return score, score >= threshold
}

// Alert is the notification payload sent to the admin dashboard sink.
type Alert struct {
	Title         string  `json:"title"`
	Message       string  `json:"message"`
	FeedbackID    string  `json:"feedback_id"`
	Department    string  `json:"department"`
	PriorityScore float64 `json:"priority_score"`
}

// AlertSink receives fired alert payloads.
type AlertSink interface {
	BroadcastAlert(alert any)
}

// AlertService applies the priority rule to feedback records and emits
// notifications. It never persists alert_shown itself; the same alert keeps
// re-firing until an admin dismisses it.
type AlertService struct {
	data      *store.DataStore
	sink      AlertSink
	threshold float64
}

// NewAlertService creates an alert service with a caller-configurable
// threshold.
func NewAlertService(data *store.DataStore, sink AlertSink, threshold float64) *AlertService {
	if threshold <= 0 {
		threshold = DefaultAlertThreshold
	}
	return &AlertService{
		data:      data,
		sink:      sink,
		threshold: threshold,
	}
}

// Evaluate applies the rule to one record and returns the alert payload
// when it fires, nil otherwise.
func (a *AlertService) Evaluate(feedback models.Feedback) *Alert {
	score, fire := ComputePriority(feedback, a.threshold)
	if !fire {
		return nil
	}

	name := a.resolveName(feedback)
	return &Alert{
		Title:         "High Priority Alert: " + name,
		Message:       fmt.Sprintf("%s from %s has shown negative sentiment. Priority Score: %.2f", name, feedback.Department, score),
		FeedbackID:    feedback.ID,
		Department:    feedback.Department,
		PriorityScore: score,
	}
}

// EvaluateAll applies the rule once to each record, pushing every fired
// alert to the sink. Returns the fired alerts for the caller to render.
func (a *AlertService) EvaluateAll(feedback []models.Feedback) []Alert {
	var alerts []Alert
	for _, fb := range feedback {
		alert := a.Evaluate(fb)
		if alert == nil {
			continue
		}

		log.Printf("🚨 %s (feedback %s, score %.2f)", alert.Title, alert.FeedbackID, alert.PriorityScore)
		if a.sink != nil {
			a.sink.BroadcastAlert(*alert)
		}
		alerts = append(alerts, *alert)
	}
	return alerts
}

// resolveName finds a display name for the feedback's author, falling back
// to the anonymous label when there is no author or the lookup fails.
func (a *AlertService) resolveName(feedback models.Feedback) string {
	if feedback.IsAnonymous() {
		return models.AnonymousEmpID
	}

	employee, err := a.data.GetEmployee(feedback.EmpID)
	if err != nil || employee.Name == "" {
		return feedback.EmpID
	}
	return employee.Name
}
