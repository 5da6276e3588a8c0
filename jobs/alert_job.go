package jobs

import (
	"log"
	"time"

	"github.com/Private-Fox7/Empathy-Pulse/services"
	"github.com/Private-Fox7/Empathy-Pulse/store"
)

// AlertJob periodically scans pending feedback for high priority entries
// and pushes alerts to connected admins
type AlertJob struct {
	alerts   *services.AlertService
	stopChan chan bool
}

// NewAlertJob creates a new alert job
func NewAlertJob(alerts *services.AlertService) *AlertJob {
	return &AlertJob{
		alerts:   alerts,
		stopChan: make(chan bool),
	}
}

// Start begins the alert job
func (j *AlertJob) Start() {
	go j.run()
	log.Println("🚀 Alert job started")
}

// Stop stops the alert job
func (j *AlertJob) Stop() {
	j.stopChan <- true
	log.Println("🛑 Alert job stopped")
}

// run executes the alert job
func (j *AlertJob) run() {
	ticker := time.NewTicker(60 * time.Second) // Check every minute
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			j.checkPendingFeedback()
		case <-j.stopChan:
			return
		}
	}
}

// checkPendingFeedback evaluates every stored feedback entry against the
// priority rule and broadcasts any that cross the threshold
func (j *AlertJob) checkPendingFeedback() {
	feedback := store.Data.Feedback()
	if len(feedback) == 0 {
		return
	}

	alerts := j.alerts.EvaluateAll(feedback)
	if len(alerts) > 0 {
		log.Printf("⏰ Found %d high priority feedback entries", len(alerts))
	}
}
