package routes

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/Private-Fox7/Empathy-Pulse/config"
	"github.com/Private-Fox7/Empathy-Pulse/middleware"
	"github.com/Private-Fox7/Empathy-Pulse/models"
	"github.com/Private-Fox7/Empathy-Pulse/services"
	"github.com/Private-Fox7/Empathy-Pulse/store"
	"github.com/Private-Fox7/Empathy-Pulse/types"
	"github.com/Private-Fox7/Empathy-Pulse/utils"
)

func init() {
	gin.SetMode(gin.TestMode)
	config.AppConfig = &config.Config{
		JWT: config.JWTConfig{
			Secret:      "routes-test-secret",
			ExpiryHours: 1,
		},
	}
}

// memoryBackend is an in-memory document store backend for handler tests.
type memoryBackend struct {
	mu    sync.Mutex
	files map[string]memoryFile
	next  int
}

type memoryFile struct {
	content []byte
	version string
}

func newMemoryBackend() *memoryBackend {
	return &memoryBackend{files: make(map[string]memoryFile)}
}

func (b *memoryBackend) newVersion() string {
	b.next++
	return fmt.Sprintf("v%d", b.next)
}

func (b *memoryBackend) Read(path string) ([]byte, string, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	f, ok := b.files[path]
	if !ok {
		return nil, "", store.ErrNotFound
	}
	return append([]byte(nil), f.content...), f.version, nil
}

func (b *memoryBackend) Write(path string, content []byte, version, message string) (string, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	f, ok := b.files[path]
	if !ok {
		return "", store.ErrNotFound
	}
	if f.version != version {
		return "", store.ErrVersionConflict
	}
	v := b.newVersion()
	b.files[path] = memoryFile{content: content, version: v}
	return v, nil
}

func (b *memoryBackend) Create(path string, content []byte, message string) (string, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if _, ok := b.files[path]; ok {
		return "", store.ErrAlreadyExists
	}
	v := b.newVersion()
	b.files[path] = memoryFile{content: content, version: v}
	return v, nil
}

// newTestRouter resets the global store onto a fresh in-memory backend and
// builds a router with the production route layout minus rate limiting.
func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()

	store.Data = store.New(newMemoryBackend())
	if err := store.Data.EnsureDataFiles(); err != nil {
		t.Fatalf("EnsureDataFiles failed: %v", err)
	}
	InitServices(nil, services.NewAlertService(store.Data, nil, 0))

	router := gin.New()
	api := router.Group("/api/v1")

	RegisterAuthRoutes(api.Group("/auth"))

	feedback := api.Group("/feedback")
	feedback.Use(middleware.AuthMiddleware())
	RegisterFeedbackRoutes(feedback)

	adminAuth := api.Group("/admin/auth")
	adminAuth.GET("/setup-status", AdminSetupStatus)
	adminAuth.POST("/setup", AdminSetup)
	adminAuth.POST("/login", AdminLogin)

	admin := api.Group("/admin")
	admin.Use(AdminAuthMiddleware())
	admin.GET("/auth/me", GetCurrentAdmin)
	admin.GET("/dashboard/stats", GetDashboardStats)
	admin.GET("/feedback", GetAllFeedback)
	admin.POST("/feedback/:id/complete", MarkFeedbackComplete)
	admin.POST("/feedback/:id/dismiss-alert", DismissAlert)
	admin.GET("/alerts", GetActiveAlerts)
	admin.GET("/employees", GetAllEmployees)
	admin.POST("/employees", CreateEmployee)
	admin.DELETE("/employees/:emp_id", DeleteEmployee)
	admin.GET("/export", ExportReport)

	return router
}

// doJSON performs a request with an optional bearer token and JSON body.
func doJSON(t *testing.T, router *gin.Engine, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("failed to encode request body: %v", err)
		}
		reader = bytes.NewReader(encoded)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

// decodeBody unpacks a JSON response body into a map.
func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("response is not valid JSON: %v\n%s", err, w.Body.String())
	}
	return body
}

// seedEmployee creates an employee account directly in the store and
// returns a session token for it.
func seedEmployee(t *testing.T, empID, name, dept, password string) string {
	t.Helper()

	hash, err := utils.HashPassword(password)
	if err != nil {
		t.Fatalf("HashPassword failed: %v", err)
	}
	err = store.Data.AddEmployee(models.Employee{
		EmpID:        empID,
		Name:         name,
		Department:   dept,
		PasswordHash: hash,
	})
	if err != nil {
		t.Fatalf("AddEmployee failed: %v", err)
	}

	token, err := utils.GenerateToken(empID, types.RoleEmployee)
	if err != nil {
		t.Fatalf("GenerateToken failed: %v", err)
	}
	return token
}

// seedAdmin creates an admin account and returns a session token.
func seedAdmin(t *testing.T, adminID, password string) string {
	t.Helper()

	hash, err := utils.HashPassword(password)
	if err != nil {
		t.Fatalf("HashPassword failed: %v", err)
	}
	if err := store.Data.AddAdmin(models.Admin{AdminID: adminID, PasswordHash: hash}); err != nil {
		t.Fatalf("AddAdmin failed: %v", err)
	}

	token, err := utils.GenerateToken(adminID, types.RoleAdmin)
	if err != nil {
		t.Fatalf("GenerateToken failed: %v", err)
	}
	return token
}
