package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/Private-Fox7/Empathy-Pulse/models"
)

// fakeBackend is an in-memory Backend with version tokens.
type fakeBackend struct {
	mu       sync.Mutex
	files    map[string]*fakeFile
	readErr  error
	writeErr error
	writes   int
}

type fakeFile struct {
	content []byte
	version int
}

func newFakeBackend() *fakeBackend {
	return &fakeBackend{files: make(map[string]*fakeFile)}
}

func (b *fakeBackend) Read(path string) ([]byte, string, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.readErr != nil {
		return nil, "", b.readErr
	}
	f, ok := b.files[path]
	if !ok {
		return nil, "", ErrNotFound
	}
	content := make([]byte, len(f.content))
	copy(content, f.content)
	return content, fmt.Sprintf("v%d", f.version), nil
}

func (b *fakeBackend) Write(path string, content []byte, version, message string) (string, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.writeErr != nil {
		return "", b.writeErr
	}
	f, ok := b.files[path]
	if !ok {
		return "", ErrNotFound
	}
	if version != fmt.Sprintf("v%d", f.version) {
		return "", ErrVersionConflict
	}
	f.content = content
	f.version++
	b.writes++
	return fmt.Sprintf("v%d", f.version), nil
}

func (b *fakeBackend) Create(path string, content []byte, message string) (string, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if _, ok := b.files[path]; ok {
		return "", ErrAlreadyExists
	}
	b.files[path] = &fakeFile{content: content, version: 1}
	return "v1", nil
}

// seed plants a document directly, bypassing the store.
func (b *fakeBackend) seed(path, content string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.files[path] = &fakeFile{content: []byte(content), version: 1}
}

func (b *fakeBackend) raw(path string) string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return string(b.files[path].content)
}

func newTestStore(t *testing.T) (*DataStore, *fakeBackend) {
	t.Helper()
	backend := newFakeBackend()
	s := New(backend)
	if err := s.EnsureDataFiles(); err != nil {
		t.Fatalf("EnsureDataFiles failed: %v", err)
	}
	return s, backend
}

func TestEnsureDataFilesBootstrap(t *testing.T) {
	backend := newFakeBackend()
	s := New(backend)

	if err := s.EnsureDataFiles(); err != nil {
		t.Fatalf("EnsureDataFiles failed: %v", err)
	}

	for _, path := range []string{employeesFile, adminsFile, feedbackFile, passwordResetFile} {
		if got := backend.raw(path); got != "[]" {
			t.Fatalf("expected %s to be created as empty array, got %q", path, got)
		}
	}

	// Re-running against existing files must not recreate them
	backend.seed(employeesFile, `[{"emp_id":"E1"}]`)
	s.InvalidateCache()
	if err := s.EnsureDataFiles(); err != nil {
		t.Fatalf("EnsureDataFiles failed on second run: %v", err)
	}
	if got := backend.raw(employeesFile); got != `[{"emp_id":"E1"}]` {
		t.Fatalf("existing file was overwritten: %q", got)
	}
}

func TestAddAndGetEmployee(t *testing.T) {
	s, _ := newTestStore(t)

	emp := models.Employee{
		EmpID:        "E100",
		Name:         "Ada",
		Department:   "Engineering",
		PasswordHash: "hashed",
	}
	if err := s.AddEmployee(emp); err != nil {
		t.Fatalf("AddEmployee failed: %v", err)
	}

	got, err := s.GetEmployee("E100")
	if err != nil {
		t.Fatalf("GetEmployee failed: %v", err)
	}
	if got.Name != "Ada" || got.Department != "Engineering" || got.PasswordHash != "hashed" {
		t.Fatalf("round trip mismatch: %+v", got)
	}
	if got.CreatedAt.IsZero() {
		t.Fatalf("expected CreatedAt to be stamped")
	}
}

func TestAddEmployeeBackfillsID(t *testing.T) {
	s, _ := newTestStore(t)

	if err := s.AddEmployee(models.Employee{Name: "NoID", Department: "Sales"}); err != nil {
		t.Fatalf("AddEmployee failed: %v", err)
	}

	employees := s.Employees()
	if len(employees) != 1 {
		t.Fatalf("expected 1 employee, got %d", len(employees))
	}
	if employees[0].EmpID == "" {
		t.Fatalf("expected a generated emp_id")
	}
}

func TestGetEmployeeNotFound(t *testing.T) {
	s, _ := newTestStore(t)

	if _, err := s.GetEmployee("missing"); !errors.Is(err, ErrRecordNotFound) {
		t.Fatalf("expected ErrRecordNotFound, got %v", err)
	}
}

func TestAddFeedbackForcesPendingStatus(t *testing.T) {
	s, _ := newTestStore(t)

	fb := models.Feedback{
		EmpID:        "E1",
		Department:   "Engineering",
		Mood:         "🙂 Good",
		MoodScore:    4,
		FeedbackText: "all fine",
		Status:       "complete", // must be ignored
	}
	if err := s.AddFeedback(fb); err != nil {
		t.Fatalf("AddFeedback failed: %v", err)
	}

	stored := s.Feedback()
	if len(stored) != 1 {
		t.Fatalf("expected 1 feedback, got %d", len(stored))
	}
	if stored[0].Status != models.FeedbackStatusPending {
		t.Fatalf("expected status pending, got %q", stored[0].Status)
	}
	if stored[0].ID == "" {
		t.Fatalf("expected a generated feedback id")
	}
	if stored[0].Timestamp.IsZero() {
		t.Fatalf("expected timestamp to be stamped")
	}
}

func TestUpdatePreservesUnknownFields(t *testing.T) {
	s, backend := newTestStore(t)

	backend.seed(employeesFile, `[{"emp_id":"E1","name":"Ada","dept":"Engineering","legacy_badge":"B-77"}]`)
	s.InvalidateCache()

	if err := s.UpdateEmployee("E1", map[string]any{"name": "Ada L."}); err != nil {
		t.Fatalf("UpdateEmployee failed: %v", err)
	}

	var records []map[string]any
	if err := json.Unmarshal([]byte(backend.raw(employeesFile)), &records); err != nil {
		t.Fatalf("stored document is not valid JSON: %v", err)
	}
	if records[0]["name"] != "Ada L." {
		t.Fatalf("update not applied: %v", records[0])
	}
	if records[0]["legacy_badge"] != "B-77" {
		t.Fatalf("unknown field dropped by update: %v", records[0])
	}
	if records[0]["dept"] != "Engineering" {
		t.Fatalf("untouched field dropped by update: %v", records[0])
	}
}

func TestUpdateMissingRecord(t *testing.T) {
	s, backend := newTestStore(t)

	err := s.UpdateFeedback("no-such-id", map[string]any{"status": "complete"})
	if !errors.Is(err, ErrRecordNotFound) {
		t.Fatalf("expected ErrRecordNotFound, got %v", err)
	}
	if backend.writes != 0 {
		t.Fatalf("no write should happen when the record is missing, got %d writes", backend.writes)
	}
}

func TestDeleteEmployeeCascades(t *testing.T) {
	s, _ := newTestStore(t)

	if err := s.AddEmployee(models.Employee{EmpID: "E1", Name: "Ada", Department: "Engineering"}); err != nil {
		t.Fatalf("AddEmployee failed: %v", err)
	}
	if err := s.AddEmployee(models.Employee{EmpID: "E2", Name: "Grace", Department: "Sales"}); err != nil {
		t.Fatalf("AddEmployee failed: %v", err)
	}
	for _, empID := range []string{"E1", "E1", "E2"} {
		if err := s.AddFeedback(models.Feedback{EmpID: empID, FeedbackText: "note"}); err != nil {
			t.Fatalf("AddFeedback failed: %v", err)
		}
	}

	if err := s.DeleteEmployee("E1"); err != nil {
		t.Fatalf("DeleteEmployee failed: %v", err)
	}

	if _, err := s.GetEmployee("E1"); !errors.Is(err, ErrRecordNotFound) {
		t.Fatalf("deleted employee still present: %v", err)
	}
	for _, fb := range s.Feedback() {
		if fb.EmpID == "E1" {
			t.Fatalf("feedback for deleted employee survived: %+v", fb)
		}
	}
	if len(s.Feedback()) != 1 {
		t.Fatalf("expected 1 surviving feedback, got %d", len(s.Feedback()))
	}
	if _, err := s.GetEmployee("E2"); err != nil {
		t.Fatalf("unrelated employee was removed: %v", err)
	}
}

func TestListFailsOpen(t *testing.T) {
	backend := newFakeBackend()
	backend.readErr = errors.New("backend unavailable")
	s := New(backend)

	if got := s.Employees(); got != nil {
		t.Fatalf("expected nil on backend failure, got %v", got)
	}
	if got := s.Feedback(); got != nil {
		t.Fatalf("expected nil on backend failure, got %v", got)
	}
	if got := s.Admins(); got != nil {
		t.Fatalf("expected nil on backend failure, got %v", got)
	}
}

func TestMutationsPropagateErrors(t *testing.T) {
	s, backend := newTestStore(t)
	backend.readErr = errors.New("backend unavailable")

	if err := s.AddEmployee(models.Employee{EmpID: "E9"}); err == nil {
		t.Fatalf("expected AddEmployee to surface the backend error")
	}
}

func TestVersionConflictSurfaces(t *testing.T) {
	s, backend := newTestStore(t)
	backend.writeErr = ErrVersionConflict

	err := s.AddEmployee(models.Employee{EmpID: "E1", Name: "Ada"})
	if !errors.Is(err, ErrVersionConflict) {
		t.Fatalf("expected ErrVersionConflict, got %v", err)
	}
}

func TestReadsServeFromCache(t *testing.T) {
	s, backend := newTestStore(t)

	backend.seed(employeesFile, `[{"emp_id":"E1","name":"Ada"}]`)
	s.InvalidateCache()

	if len(s.Employees()) != 1 {
		t.Fatalf("expected 1 employee")
	}

	// A change made behind the store's back stays invisible until the
	// cache is dropped
	backend.seed(employeesFile, `[]`)
	if len(s.Employees()) != 1 {
		t.Fatalf("expected cached read to survive external change")
	}

	s.InvalidateCache()
	if len(s.Employees()) != 0 {
		t.Fatalf("expected fresh read after invalidation")
	}
}

func TestWriteRefreshesCache(t *testing.T) {
	s, _ := newTestStore(t)

	if err := s.AddEmployee(models.Employee{EmpID: "E1", Name: "Ada"}); err != nil {
		t.Fatalf("AddEmployee failed: %v", err)
	}

	// The write must leave the cache holding the committed content
	emp, err := s.GetEmployee("E1")
	if err != nil {
		t.Fatalf("GetEmployee after write failed: %v", err)
	}
	if emp.Name != "Ada" {
		t.Fatalf("cache holds stale content after write: %+v", emp)
	}
}

func TestAddPasswordResetDefaults(t *testing.T) {
	s, _ := newTestStore(t)

	if err := s.AddPasswordReset(models.PasswordResetToken{EmpID: "E1"}); err != nil {
		t.Fatalf("AddPasswordReset failed: %v", err)
	}

	resets := s.PasswordResets()
	if len(resets) != 1 {
		t.Fatalf("expected 1 reset token, got %d", len(resets))
	}
	reset := resets[0]
	if reset.Token == "" {
		t.Fatalf("expected a generated token")
	}
	if reset.Used {
		t.Fatalf("new token must start unused")
	}
	wantExpiry := reset.CreatedAt.Add(time.Hour)
	if !reset.ExpiresAt.Equal(wantExpiry) {
		t.Fatalf("expected expiry one hour after creation, got %v", reset.ExpiresAt)
	}

	got, err := s.GetPasswordResetByToken(reset.Token)
	if err != nil {
		t.Fatalf("GetPasswordResetByToken failed: %v", err)
	}
	if got.EmpID != "E1" {
		t.Fatalf("token lookup returned wrong record: %+v", got)
	}

	if err := s.UpdatePasswordReset(reset.Token, map[string]any{"used": true}); err != nil {
		t.Fatalf("UpdatePasswordReset failed: %v", err)
	}
	got, err = s.GetPasswordResetByToken(reset.Token)
	if err != nil {
		t.Fatalf("GetPasswordResetByToken failed: %v", err)
	}
	if !got.Used {
		t.Fatalf("expected token to be marked used")
	}
}

func TestAdminsRoundTrip(t *testing.T) {
	s, _ := newTestStore(t)

	if err := s.AddAdmin(models.Admin{AdminID: "root", PasswordHash: "hash"}); err != nil {
		t.Fatalf("AddAdmin failed: %v", err)
	}

	admin, err := s.GetAdmin("root")
	if err != nil {
		t.Fatalf("GetAdmin failed: %v", err)
	}
	if admin.PasswordHash != "hash" {
		t.Fatalf("admin round trip mismatch: %+v", admin)
	}
	if _, err := s.GetAdmin("other"); !errors.Is(err, ErrRecordNotFound) {
		t.Fatalf("expected ErrRecordNotFound for unknown admin, got %v", err)
	}
}

func TestStoredDocumentsStayArrays(t *testing.T) {
	s, backend := newTestStore(t)

	if err := s.AddFeedback(models.Feedback{EmpID: "E1", FeedbackText: "hello"}); err != nil {
		t.Fatalf("AddFeedback failed: %v", err)
	}

	raw := backend.raw(feedbackFile)
	if !strings.HasPrefix(raw, "[") || !strings.HasSuffix(raw, "]") {
		t.Fatalf("collection document is not a JSON array: %q", raw)
	}
}
