package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"

	"github.com/Private-Fox7/Empathy-Pulse/config"
)

// Fixed repository paths for the four collection documents. Each holds one
// JSON array of records in insertion order.
const (
	employeesFile     = "data/employees.json"
	adminsFile        = "data/admins.json"
	feedbackFile      = "data/feedback.json"
	passwordResetFile = "data/password_reset.json"
)

// ErrRecordNotFound is returned by update operations when no record matches
// the key.
var ErrRecordNotFound = errors.New("record not found")

var Data *DataStore

// DataStore maps the four collections onto whole-document read-modify-write
// operations against the backend. It is the sole owner of the collections;
// the cache holds transient read-through copies only.
type DataStore struct {
	backend Backend
	cache   *pathCache
}

// Initialize connects the global data store to the configured GitHub
// repository and bootstraps any missing collection document.
func Initialize() error {
	Data = New(NewGitHubBackend(config.AppConfig.Store))

	if err := Data.EnsureDataFiles(); err != nil {
		return fmt.Errorf("failed to bootstrap data files: %w", err)
	}

	log.Println("✅ Successfully connected to document store")
	return nil
}

// New creates a DataStore over the given backend.
func New(backend Backend) *DataStore {
	return &DataStore{
		backend: backend,
		cache:   newPathCache(),
	}
}

// EnsureDataFiles creates any missing collection document with an empty
// array body. Two processes racing through first-run can both observe a
// missing file and collide on creation; the loser surfaces the error.
func (s *DataStore) EnsureDataFiles() error {
	for _, path := range []string{employeesFile, adminsFile, feedbackFile, passwordResetFile} {
		content, version, err := s.backend.Read(path)
		if err == nil {
			s.cache.Put(path, content, version)
			continue
		}
		if !errors.Is(err, ErrNotFound) {
			return err
		}

		version, err = s.backend.Create(path, []byte("[]"), "Initialize data file")
		if err != nil {
			return err
		}
		s.cache.Put(path, []byte("[]"), version)
		log.Printf("✅ Created data file %s", path)
	}
	return nil
}

// InvalidateCache drops every cached document so the next read hits the
// backend. Destructive admin actions call this to force a fresh fetch.
func (s *DataStore) InvalidateCache() {
	s.cache.Clear()
}

// fetch returns a document's content, consulting the cache first.
func (s *DataStore) fetch(path string) ([]byte, error) {
	if content, _, ok := s.cache.Get(path); ok {
		return content, nil
	}

	content, version, err := s.backend.Read(path)
	if err != nil {
		return nil, err
	}

	s.cache.Put(path, content, version)
	return content, nil
}

// listInto decodes a collection document into v.
func (s *DataStore) listInto(path string, v any) error {
	content, err := s.fetch(path)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(content, v); err != nil {
		return fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return nil
}

// listRaw decodes a collection into loosely-typed records so updates keep
// fields this build does not know about.
func (s *DataStore) listRaw(path string) ([]map[string]any, error) {
	var records []map[string]any
	if err := s.listInto(path, &records); err != nil {
		return nil, err
	}
	return records, nil
}

// save writes the whole collection back. The current version token is
// re-fetched from the backend immediately before the write; a concurrent
// writer that committed in between makes the write fail with
// ErrVersionConflict, which is surfaced without retry or merge.
func (s *DataStore) save(path string, records []map[string]any, message string) error {
	if records == nil {
		records = []map[string]any{}
	}

	content, err := json.Marshal(records)
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", path, err)
	}

	_, version, err := s.backend.Read(path)
	if err != nil {
		return fmt.Errorf("failed to fetch version token for %s: %w", path, err)
	}

	newVersion, err := s.backend.Write(path, content, version, message)
	if err != nil {
		return err
	}

	s.cache.Put(path, content, newVersion)
	return nil
}

// appendRecord fetches a collection, appends one record and writes it back.
func (s *DataStore) appendRecord(path string, record map[string]any, message string) error {
	records, err := s.listRaw(path)
	if err != nil {
		return err
	}
	return s.save(path, append(records, record), message)
}

// updateRecord merges fields into the first record whose key field matches.
// The merge is a shallow field overwrite. No match is reported as
// ErrRecordNotFound and nothing is written.
func (s *DataStore) updateRecord(path, keyField, keyValue string, fields map[string]any, message string) error {
	records, err := s.listRaw(path)
	if err != nil {
		return err
	}

	for i := range records {
		if stringValue(records[i][keyField]) != keyValue {
			continue
		}
		for k, v := range fields {
			records[i][k] = v
		}
		return s.save(path, records, message)
	}

	return ErrRecordNotFound
}

// toRecord converts a typed model into a loosely-typed record.
func toRecord(v any) (map[string]any, error) {
	content, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	var record map[string]any
	if err := json.Unmarshal(content, &record); err != nil {
		return nil, err
	}
	return record, nil
}

// stringValue normalizes a record key for comparison; ids are compared as
// strings whatever type the JSON decoded them to.
func stringValue(v any) string {
	if v == nil {
		return ""
	}
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprintf("%v", v)
}
