// Package store persists the hosts document as a single JSON file.
//
// Every operation in the service layer performs a full read-modify-write
// cycle through this store; there is no cache between the file and its
// callers. The write path is not atomic (no rename, no backup) and there
// is no locking: two concurrent writers can lose an update. Callers that
// need serialization opt in at the service layer.
package store

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"hostsadmin/internal/domain"
)

// DocumentFileName is the name of the document file inside the data
// directory.
const DocumentFileName = "db.json"

// Store reads and writes the hosts document at a fixed path.
type Store struct {
	path    string
	onWrite []func()
}

// New creates a store rooted at dir, creating the directory if absent.
func New(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}
	return &Store{path: filepath.Join(dir, DocumentFileName)}, nil
}

// Path returns the document file path.
func (s *Store) Path() string {
	return s.path
}

// OnWrite registers a hook fired after every successful Write. The
// dashboard uses this to invalidate cached views.
func (s *Store) OnWrite(fn func()) {
	s.onWrite = append(s.onWrite, fn)
}

// Read loads the document from disk. A missing file yields the seeded
// default document. A top-level field that is absent or has the wrong
// shape is reset to its default; read never fails on document shape,
// only on I/O or unparseable JSON.
func (s *Store) Read() (*domain.Document, error) {
	data, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		return domain.DefaultDocument(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("read document: %w", err)
	}

	if len(bytes.TrimSpace(data)) == 0 {
		return domain.DefaultDocument(), nil
	}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		if json.Valid(data) {
			// Parseable but not an object: every field heals to default.
			return domain.DefaultDocument(), nil
		}
		return nil, fmt.Errorf("parse document: %w", err)
	}

	doc := domain.DefaultDocument()

	var hosts []domain.HostGroup
	if field, ok := raw["hosts"]; ok && json.Unmarshal(field, &hosts) == nil && hosts != nil {
		doc.Hosts = hosts
	}
	var categories []string
	if field, ok := raw["categories"]; ok && json.Unmarshal(field, &categories) == nil && categories != nil {
		doc.Categories = categories
	}
	var types []string
	if field, ok := raw["types"]; ok && json.Unmarshal(field, &types) == nil && types != nil {
		doc.Types = types
	}

	return doc, nil
}

// Write serializes the full document back to disk and fires the
// registered invalidation hooks.
func (s *Store) Write(doc *domain.Document) error {
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal document: %w", err)
	}

	if err := os.WriteFile(s.path, data, 0644); err != nil {
		return fmt.Errorf("write document: %w", err)
	}

	for _, fn := range s.onWrite {
		fn()
	}
	return nil
}
