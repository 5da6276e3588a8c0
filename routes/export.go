package routes

import (
	"encoding/csv"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Private-Fox7/Empathy-Pulse/store"
)

// ExportReport streams a CSV report. The type query parameter selects
// feedback (default), employees, or departments.
func ExportReport(c *gin.Context) {
	reportType := c.DefaultQuery("type", "feedback")

	var rows [][]string
	switch reportType {
	case "feedback":
		rows = feedbackReport()
	case "employees":
		rows = employeeReport()
	case "departments":
		rows = departmentReport()
	default:
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid report type",
			"message": "type must be one of: feedback, employees, departments",
		})
		return
	}

	filename := fmt.Sprintf("empathy_pulse_%s_%s.csv", reportType, time.Now().UTC().Format("2006-01-02"))
	c.Header("Content-Type", "text/csv")
	c.Header("Content-Disposition", "attachment; filename="+filename)

	w := csv.NewWriter(c.Writer)
	if err := w.WriteAll(rows); err != nil {
		log.Printf("❌ Failed to write CSV export: %v", err)
	}
}

func feedbackReport() [][]string {
	rows := [][]string{{
		"id", "emp_id", "dept", "timestamp", "mood", "mood_score",
		"work_satisfaction", "team_satisfaction", "management_satisfaction",
		"feedback_text", "emotion", "emotion_confidence",
		"sentiment", "sentiment_confidence", "status",
	}}
	for _, fb := range store.Data.Feedback() {
		rows = append(rows, []string{
			fb.ID,
			fb.EmpID,
			fb.Department,
			fb.Timestamp.Format(time.RFC3339),
			fb.Mood,
			strconv.Itoa(fb.MoodScore),
			strconv.Itoa(fb.WorkSatisfaction),
			strconv.Itoa(fb.TeamSatisfaction),
			strconv.Itoa(fb.ManagementSatisfaction),
			fb.FeedbackText,
			fb.Emotion,
			strconv.FormatFloat(fb.EmotionConfidence, 'f', 4, 64),
			fb.Sentiment,
			strconv.FormatFloat(fb.SentimentConfidence, 'f', 4, 64),
			fb.Status,
		})
	}
	return rows
}

func employeeReport() [][]string {
	rows := [][]string{{"emp_id", "name", "dept", "created_at"}}
	for _, emp := range store.Data.Employees() {
		rows = append(rows, []string{
			emp.EmpID,
			emp.Name,
			emp.Department,
			emp.CreatedAt.Format(time.RFC3339),
		})
	}
	return rows
}

func departmentReport() [][]string {
	rows := [][]string{{
		"dept", "feedback_count", "avg_work_satisfaction",
		"avg_team_satisfaction", "avg_management_satisfaction",
	}}
	for _, s := range departmentSummaries(store.Data.Feedback()) {
		rows = append(rows, []string{
			s.Department,
			strconv.Itoa(s.FeedbackCount),
			strconv.FormatFloat(s.AvgWorkSatisfaction, 'f', 2, 64),
			strconv.FormatFloat(s.AvgTeamSatisfaction, 'f', 2, 64),
			strconv.FormatFloat(s.AvgManagementSatisfaction, 'f', 2, 64),
		})
	}
	return rows
}
