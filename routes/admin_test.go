package routes

import (
	"net/http"
	"testing"

	"github.com/Private-Fox7/Empathy-Pulse/models"
	"github.com/Private-Fox7/Empathy-Pulse/store"
)

func TestAdminSetupFlow(t *testing.T) {
	router := newTestRouter(t)

	w := doJSON(t, router, http.MethodGet, "/api/v1/admin/auth/setup-status", "", nil)
	if got := decodeBody(t, w)["setup_required"]; got != true {
		t.Fatalf("expected setup_required true on fresh install, got %v", got)
	}

	w = doJSON(t, router, http.MethodPost, "/api/v1/admin/auth/setup", "", map[string]any{
		"admin_id":         "root",
		"password":         "longenough",
		"confirm_password": "longenough",
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("setup returned %d: %s", w.Code, w.Body.String())
	}

	w = doJSON(t, router, http.MethodGet, "/api/v1/admin/auth/setup-status", "", nil)
	if got := decodeBody(t, w)["setup_required"]; got != false {
		t.Fatalf("expected setup_required false after setup, got %v", got)
	}

	// The setup flow closes after the first admin exists
	w = doJSON(t, router, http.MethodPost, "/api/v1/admin/auth/setup", "", map[string]any{
		"admin_id":         "second",
		"password":         "longenough",
		"confirm_password": "longenough",
	})
	if w.Code != http.StatusConflict {
		t.Fatalf("expected 409 for second setup, got %d", w.Code)
	}

	w = doJSON(t, router, http.MethodPost, "/api/v1/admin/auth/login", "", map[string]any{
		"admin_id": "root",
		"password": "longenough",
	})
	if w.Code != http.StatusOK {
		t.Fatalf("admin login returned %d: %s", w.Code, w.Body.String())
	}
	if decodeBody(t, w)["token"] == nil {
		t.Fatalf("admin login response missing token")
	}
}

func TestAdminLoginRejectsWrongPassword(t *testing.T) {
	router := newTestRouter(t)
	seedAdmin(t, "root", "longenough")

	w := doJSON(t, router, http.MethodPost, "/api/v1/admin/auth/login", "", map[string]any{
		"admin_id": "root",
		"password": "wrong-password",
	})
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", w.Code)
	}
}

func TestAdminRoutesRejectEmployeeToken(t *testing.T) {
	router := newTestRouter(t)
	employeeToken := seedEmployee(t, "E100", "Ada", "Engineering", "longenough")

	w := doJSON(t, router, http.MethodGet, "/api/v1/admin/feedback", employeeToken, nil)
	if w.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for employee token on admin route, got %d", w.Code)
	}

	w = doJSON(t, router, http.MethodGet, "/api/v1/admin/feedback", "", nil)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without token, got %d", w.Code)
	}
}

func TestGetCurrentAdmin(t *testing.T) {
	router := newTestRouter(t)
	adminToken := seedAdmin(t, "root", "longenough")

	w := doJSON(t, router, http.MethodGet, "/api/v1/admin/auth/me", adminToken, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("me returned %d: %s", w.Code, w.Body.String())
	}
	if got := decodeBody(t, w)["admin_id"]; got != "root" {
		t.Fatalf("expected admin_id root, got %v", got)
	}
}

func TestEmployeeDirectory(t *testing.T) {
	router := newTestRouter(t)
	adminToken := seedAdmin(t, "root", "longenough")
	seedEmployee(t, "E1", "Ada", "Engineering", "longenough")
	seedEmployee(t, "E2", "Grace", "Sales", "longenough")

	for _, fb := range []models.Feedback{
		{EmpID: "E1", Sentiment: "POSITIVE"},
		{EmpID: "E1", Sentiment: "positive"},
		{EmpID: "E1", Sentiment: "NEGATIVE"},
	} {
		if err := store.Data.AddFeedback(fb); err != nil {
			t.Fatalf("AddFeedback failed: %v", err)
		}
	}

	w := doJSON(t, router, http.MethodGet, "/api/v1/admin/employees", adminToken, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("employees returned %d: %s", w.Code, w.Body.String())
	}
	body := decodeBody(t, w)
	if count := body["count"].(float64); count != 2 {
		t.Fatalf("expected 2 directory entries, got %v", count)
	}

	entries := body["employees"].([]any)
	first := entries[0].(map[string]any)
	// Sorted by name, Ada comes first
	if first["emp_id"] != "E1" {
		t.Fatalf("expected Ada first, got %v", first)
	}
	if first["feedback_count"].(float64) != 3 {
		t.Fatalf("expected 3 feedback for Ada, got %v", first["feedback_count"])
	}
	if first["overall_sentiment"] != "Mostly Positive" {
		t.Fatalf("expected Mostly Positive, got %v", first["overall_sentiment"])
	}
	second := entries[1].(map[string]any)
	if second["overall_sentiment"] != "No Feedback" {
		t.Fatalf("expected No Feedback for Grace, got %v", second["overall_sentiment"])
	}
	// The directory never exposes password digests
	if _, ok := first["password"]; ok {
		t.Fatalf("directory leaks password digest: %v", first)
	}

	w = doJSON(t, router, http.MethodGet, "/api/v1/admin/employees?search=grace", adminToken, nil)
	if count := decodeBody(t, w)["count"].(float64); count != 1 {
		t.Fatalf("search filter: expected 1, got %v", count)
	}

	w = doJSON(t, router, http.MethodGet, "/api/v1/admin/employees?dept=Engineering", adminToken, nil)
	if count := decodeBody(t, w)["count"].(float64); count != 1 {
		t.Fatalf("dept filter: expected 1, got %v", count)
	}
}

func TestAdminCreateEmployee(t *testing.T) {
	router := newTestRouter(t)
	adminToken := seedAdmin(t, "root", "longenough")

	w := doJSON(t, router, http.MethodPost, "/api/v1/admin/employees", adminToken, map[string]any{
		"emp_id":           "E500",
		"name":             "New Hire",
		"dept":             "Operations",
		"password":         "longenough",
		"confirm_password": "longenough",
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("create returned %d: %s", w.Code, w.Body.String())
	}
	if _, err := store.Data.GetEmployee("E500"); err != nil {
		t.Fatalf("employee not persisted: %v", err)
	}
}

func TestAdminDeleteEmployeeCascades(t *testing.T) {
	router := newTestRouter(t)
	adminToken := seedAdmin(t, "root", "longenough")
	seedEmployee(t, "E1", "Ada", "Engineering", "longenough")

	if err := store.Data.AddFeedback(models.Feedback{EmpID: "E1", FeedbackText: "x"}); err != nil {
		t.Fatalf("AddFeedback failed: %v", err)
	}

	w := doJSON(t, router, http.MethodDelete, "/api/v1/admin/employees/E1", adminToken, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("delete returned %d: %s", w.Code, w.Body.String())
	}

	if _, err := store.Data.GetEmployee("E1"); err == nil {
		t.Fatalf("employee still present after delete")
	}
	if got := len(store.Data.Feedback()); got != 0 {
		t.Fatalf("feedback survived employee delete: %d", got)
	}

	w = doJSON(t, router, http.MethodDelete, "/api/v1/admin/employees/E1", adminToken, nil)
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for missing employee, got %d", w.Code)
	}
}
