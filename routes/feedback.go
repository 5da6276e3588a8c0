package routes

import (
	"log"
	"net/http"
	"sort"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Private-Fox7/Empathy-Pulse/models"
	"github.com/Private-Fox7/Empathy-Pulse/services"
	"github.com/Private-Fox7/Empathy-Pulse/store"
)

// FeedbackRequest represents a survey submission
type FeedbackRequest struct {
	Mood                   string `json:"mood" binding:"required"`
	WorkSatisfaction       int    `json:"work_satisfaction" binding:"required,min=1,max=10"`
	TeamSatisfaction       int    `json:"team_satisfaction" binding:"required,min=1,max=10"`
	ManagementSatisfaction int    `json:"management_satisfaction" binding:"required,min=1,max=10"`
	FeedbackText           string `json:"feedback_text" binding:"required"`
	Anonymous              bool   `json:"anonymous"`
}

// RegisterFeedbackRoutes registers employee feedback routes
func RegisterFeedbackRoutes(router *gin.RouterGroup) {
	router.POST("", SubmitFeedback)
	router.GET("/mine", GetMyFeedback)
}

// SubmitFeedback stores a new survey submission. The classifier runs
// synchronously; when it fails the submission is tagged with the neutral
// default and still accepted.
func SubmitFeedback(c *gin.Context) {
	var req FeedbackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"message": err.Error(),
		})
		return
	}

	moodScore, ok := models.Moods[req.Mood]
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid mood",
			"message": "Mood must be one of the survey options",
		})
		return
	}

	employee := c.MustGet("employee").(models.Employee)

	var analysis services.Classification
	if classifierService != nil {
		analysis = classifierService.AnalyzeFeedback(req.FeedbackText)
	} else {
		analysis = services.NeutralClassification()
	}

	empID := employee.EmpID
	if req.Anonymous {
		empID = models.AnonymousEmpID
	}

	feedback := models.Feedback{
		EmpID:                  empID,
		Department:             employee.Department,
		Mood:                   req.Mood,
		MoodScore:              moodScore,
		WorkSatisfaction:       req.WorkSatisfaction,
		TeamSatisfaction:       req.TeamSatisfaction,
		ManagementSatisfaction: req.ManagementSatisfaction,
		FeedbackText:           req.FeedbackText,
		Emotion:                analysis.Emotion,
		EmotionConfidence:      analysis.EmotionConfidence,
		Sentiment:              analysis.Sentiment,
		SentimentConfidence:    analysis.SentimentConfidence,
	}

	if err := store.Data.AddFeedback(feedback); err != nil {
		log.Printf("❌ Failed to save feedback from %s: %v", empID, err)
		storeError(c, err, "Error saving feedback. Please try again.")
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Thank you for your feedback!",
	})
}

// GetMyFeedback returns the calling employee's own submissions, newest
// first. Anonymous submissions are not linkable and never show up here.
func GetMyFeedback(c *gin.Context) {
	empID := c.GetString("emp_id")

	var mine []models.Feedback
	for _, fb := range store.Data.Feedback() {
		if fb.EmpID == empID {
			mine = append(mine, fb)
		}
	}

	sort.Slice(mine, func(i, j int) bool {
		return mine[i].Timestamp.After(mine[j].Timestamp)
	})

	c.JSON(http.StatusOK, gin.H{
		"feedback": mine,
		"count":    len(mine),
	})
}

// GetAllFeedback returns every submission for the admin dashboard, with
// optional department, sentiment, status and date range filters
func GetAllFeedback(c *gin.Context) {
	dept := c.Query("dept")
	sentiment := c.Query("sentiment")
	status := c.Query("status")
	from, fromOK := parseDate(c.Query("from"))
	to, toOK := parseDate(c.Query("to"))

	var filtered []models.Feedback
	for _, fb := range store.Data.Feedback() {
		if dept != "" && fb.Department != dept {
			continue
		}
		if sentiment != "" && !strings.EqualFold(fb.Sentiment, sentiment) {
			continue
		}
		if status != "" && !strings.EqualFold(fb.Status, status) {
			continue
		}
		if fromOK && fb.Timestamp.Before(from) {
			continue
		}
		if toOK && fb.Timestamp.After(to.Add(24*time.Hour)) {
			continue
		}
		filtered = append(filtered, fb)
	}

	// Newest first
	sort.Slice(filtered, func(i, j int) bool {
		return filtered[i].Timestamp.After(filtered[j].Timestamp)
	})

	c.JSON(http.StatusOK, gin.H{
		"feedback": filtered,
		"count":    len(filtered),
	})
}

// MarkFeedbackComplete marks a submission handled, which also acknowledges
// its alert
func MarkFeedbackComplete(c *gin.Context) {
	id := c.Param("id")

	fields := map[string]any{
		"status":      models.FeedbackStatusComplete,
		"alert_shown": true,
	}
	if err := store.Data.UpdateFeedback(id, fields); err != nil {
		log.Printf("❌ Failed to mark feedback %s complete: %v", id, err)
		storeError(c, err, "Failed to mark feedback as complete")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Feedback " + id + " marked as complete!",
	})
}

// DismissAlert acknowledges a high-priority alert so it stops re-firing
func DismissAlert(c *gin.Context) {
	id := c.Param("id")

	if err := store.Data.UpdateFeedback(id, map[string]any{"alert_shown": true}); err != nil {
		log.Printf("❌ Failed to dismiss alert for feedback %s: %v", id, err)
		storeError(c, err, "Failed to dismiss alert")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Alert dismissed.",
	})
}

// GetActiveAlerts runs the priority rule over all feedback as part of the
// dashboard render pass. Fired alerts are both returned and pushed to the
// connected dashboards; they keep firing until dismissed.
func GetActiveAlerts(c *gin.Context) {
	alerts := alertService.EvaluateAll(store.Data.Feedback())

	c.JSON(http.StatusOK, gin.H{
		"alerts": alerts,
		"count":  len(alerts),
	})
}

// parseDate parses a YYYY-MM-DD query value
func parseDate(value string) (time.Time, bool) {
	if value == "" {
		return time.Time{}, false
	}
	t, err := time.Parse("2006-01-02", value)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}
