package store

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/Private-Fox7/Empathy-Pulse/config"
)

// Backend errors
var (
	ErrNotFound        = errors.New("document not found")
	ErrVersionConflict = errors.New("document version conflict")
	ErrAlreadyExists   = errors.New("document already exists")
)

// Backend is the remote version-controlled document store. Every document is
// identified by a repository path and a version token; writes tagged with a
// stale token are rejected.
type Backend interface {
	// Read fetches a document and its current version token.
	Read(path string) (content []byte, version string, err error)
	// Write replaces a document. The write fails with ErrVersionConflict
	// when version no longer matches the document's current token.
	Write(path string, content []byte, version, message string) (newVersion string, err error)
	// Create adds a document that does not exist yet.
	Create(path string, content []byte, message string) (newVersion string, err error)
}

// GitHubBackend stores documents as files in a GitHub repository via the
// Contents API. The blob SHA serves as the version token and every write is
// a commit.
type GitHubBackend struct {
	baseURL string
	token   string
	branch  string
	client  *http.Client
}

// NewGitHubBackend creates a backend for the configured repository.
func NewGitHubBackend(cfg config.StoreConfig) *GitHubBackend {
	return &GitHubBackend{
		baseURL: fmt.Sprintf("%s/repos/%s/%s", strings.TrimSuffix(cfg.BaseURL, "/"), cfg.Owner, cfg.Repo),
		token:   cfg.Token,
		branch:  cfg.Branch,
		client: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// contentEnvelope is the Contents API response for a single file.
type contentEnvelope struct {
	Content string `json:"content"`
	SHA     string `json:"sha"`
}

// writeEnvelope is the Contents API response for a create/update commit.
type writeEnvelope struct {
	Content struct {
		SHA string `json:"sha"`
	} `json:"content"`
}

// writePayload is the Contents API request body for a create/update commit.
type writePayload struct {
	Message string `json:"message"`
	Content string `json:"content"`
	SHA     string `json:"sha,omitempty"`
	Branch  string `json:"branch,omitempty"`
}

func (b *GitHubBackend) newRequest(method, path string, body io.Reader) (*http.Request, error) {
	url := b.baseURL + "/contents/" + path
	if method == http.MethodGet && b.branch != "" {
		url += "?ref=" + b.branch
	}

	req, err := http.NewRequest(method, url, body)
	if err != nil {
		return nil, err
	}

	req.Header.Set("Authorization", "token "+b.token)
	req.Header.Set("Accept", "application/vnd.github.v3+json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	return req, nil
}

// Read fetches a file's content and blob SHA.
func (b *GitHubBackend) Read(path string) ([]byte, string, error) {
	req, err := b.newRequest(http.MethodGet, path, nil)
	if err != nil {
		return nil, "", err
	}

	resp, err := b.client.Do(req)
	if err != nil {
		return nil, "", fmt.Errorf("failed to read %s: %w", path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, "", ErrNotFound
	}
	if resp.StatusCode != http.StatusOK {
		return nil, "", fmt.Errorf("failed to read %s: %s", path, apiError(resp))
	}

	var envelope contentEnvelope
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return nil, "", fmt.Errorf("failed to decode response for %s: %w", path, err)
	}

	// The API wraps base64 content with newlines
	content, err := base64.StdEncoding.DecodeString(strings.Join(strings.Fields(envelope.Content), ""))
	if err != nil {
		return nil, "", fmt.Errorf("failed to decode content of %s: %w", path, err)
	}

	return content, envelope.SHA, nil
}

// Write commits new content for an existing file under its version token.
func (b *GitHubBackend) Write(path string, content []byte, version, message string) (string, error) {
	return b.put(path, writePayload{
		Message: message,
		Content: base64.StdEncoding.EncodeToString(content),
		SHA:     version,
		Branch:  b.branch,
	})
}

// Create commits a brand-new file. The API rejects the commit when the file
// already exists because no SHA is supplied.
func (b *GitHubBackend) Create(path string, content []byte, message string) (string, error) {
	version, err := b.put(path, writePayload{
		Message: message,
		Content: base64.StdEncoding.EncodeToString(content),
		Branch:  b.branch,
	})
	if errors.Is(err, ErrVersionConflict) {
		return "", ErrAlreadyExists
	}
	return version, err
}

func (b *GitHubBackend) put(path string, payload writePayload) (string, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return "", err
	}

	req, err := b.newRequest(http.MethodPut, path, bytes.NewReader(body))
	if err != nil {
		return "", err
	}

	resp, err := b.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to write %s: %w", path, err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK, http.StatusCreated:
		// fall through to decode
	case http.StatusConflict, http.StatusUnprocessableEntity:
		// Stale or missing SHA
		return "", ErrVersionConflict
	case http.StatusNotFound:
		return "", ErrNotFound
	default:
		return "", fmt.Errorf("failed to write %s: %s", path, apiError(resp))
	}

	var envelope writeEnvelope
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return "", fmt.Errorf("failed to decode response for %s: %w", path, err)
	}

	return envelope.Content.SHA, nil
}

// apiError extracts the API's human-readable message from an error response.
func apiError(resp *http.Response) string {
	var payload struct {
		Message string `json:"message"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err == nil && payload.Message != "" {
		return fmt.Sprintf("%s (status %d)", payload.Message, resp.StatusCode)
	}
	return fmt.Sprintf("unexpected status %d", resp.StatusCode)
}
