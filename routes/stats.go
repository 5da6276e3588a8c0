package routes

import (
	"net/http"
	"sort"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Private-Fox7/Empathy-Pulse/models"
	"github.com/Private-Fox7/Empathy-Pulse/store"
)

// DepartmentSummary aggregates satisfaction averages for one department
type DepartmentSummary struct {
	Department                string  `json:"dept"`
	FeedbackCount             int     `json:"feedback_count"`
	AvgWorkSatisfaction       float64 `json:"avg_work_satisfaction"`
	AvgTeamSatisfaction       float64 `json:"avg_team_satisfaction"`
	AvgManagementSatisfaction float64 `json:"avg_management_satisfaction"`
}

// SentimentByDate counts each sentiment on one calendar day
type SentimentByDate struct {
	Date      string         `json:"date"`
	Sentiment map[string]int `json:"sentiment"`
}

// GetDashboardStats aggregates the sentiment overview for the admin
// dashboard, optionally filtered to one department
func GetDashboardStats(c *gin.Context) {
	dept := c.Query("dept")

	all := store.Data.Feedback()
	var feedback []models.Feedback
	for _, fb := range all {
		if dept == "" || fb.Department == dept {
			feedback = append(feedback, fb)
		}
	}

	var workSum, teamSum, mgmtSum int
	emotions := make(map[string]int)
	byDate := make(map[string]map[string]int)
	thirtyDaysAgo := time.Now().UTC().AddDate(0, 0, -30)
	recent := 0

	for _, fb := range feedback {
		workSum += fb.WorkSatisfaction
		teamSum += fb.TeamSatisfaction
		mgmtSum += fb.ManagementSatisfaction

		if fb.Emotion != "" {
			emotions[fb.Emotion]++
		}
		if fb.Timestamp.After(thirtyDaysAgo) {
			recent++
		}

		day := fb.Timestamp.Format("2006-01-02")
		if byDate[day] == nil {
			byDate[day] = make(map[string]int)
		}
		byDate[day][fb.Sentiment]++
	}

	total := len(feedback)
	avg := func(sum int) float64 {
		if total == 0 {
			return 0
		}
		return float64(sum) / float64(total)
	}

	trend := make([]SentimentByDate, 0, len(byDate))
	for day, counts := range byDate {
		trend = append(trend, SentimentByDate{Date: day, Sentiment: counts})
	}
	sort.Slice(trend, func(i, j int) bool { return trend[i].Date < trend[j].Date })

	c.JSON(http.StatusOK, gin.H{
		"total_feedback":              total,
		"recent_feedback":             recent,
		"avg_work_satisfaction":       avg(workSum),
		"avg_team_satisfaction":       avg(teamSum),
		"avg_management_satisfaction": avg(mgmtSum),
		"emotion_distribution":        emotions,
		"sentiment_trend":             trend,
		"department_summaries":        departmentSummaries(all),
	})
}

// departmentSummaries computes per-department satisfaction averages across
// all feedback
func departmentSummaries(feedback []models.Feedback) []DepartmentSummary {
	type sums struct {
		work, team, mgmt, count int
	}
	byDept := make(map[string]*sums)
	for _, fb := range feedback {
		s := byDept[fb.Department]
		if s == nil {
			s = &sums{}
			byDept[fb.Department] = s
		}
		s.work += fb.WorkSatisfaction
		s.team += fb.TeamSatisfaction
		s.mgmt += fb.ManagementSatisfaction
		s.count++
	}

	summaries := make([]DepartmentSummary, 0, len(byDept))
	for dept, s := range byDept {
		summaries = append(summaries, DepartmentSummary{
			Department:                dept,
			FeedbackCount:             s.count,
			AvgWorkSatisfaction:       float64(s.work) / float64(s.count),
			AvgTeamSatisfaction:       float64(s.team) / float64(s.count),
			AvgManagementSatisfaction: float64(s.mgmt) / float64(s.count),
		})
	}
	sort.Slice(summaries, func(i, j int) bool { return summaries[i].Department < summaries[j].Department })
	return summaries
}
