package filestore

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	pkgerrors "riboflavin-backend/pkg/errors"

	"github.com/google/uuid"
)

// LatestParsedName is the well-known document holding the most recent parse
const LatestParsedName = "parsed_data.json"

// Store persists raw transcript uploads and parsed document snapshots as
// plain files on disk. Parsed documents are opaque JSON; the store never
// inspects their contents.
type Store struct {
	rawDir    string
	parsedDir string
}

// New creates a store, creating the backing directories if needed
func New(rawDir, parsedDir string) (*Store, error) {
	for _, dir := range []string{rawDir, parsedDir} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, pkgerrors.NewStorageError("mkdir", err)
		}
	}
	return &Store{rawDir: rawDir, parsedDir: parsedDir}, nil
}

// SaveRaw stores uploaded raw text under a fresh file id and returns the id
func (s *Store) SaveRaw(content string) (string, error) {
	id := uuid.New().String()
	path := filepath.Join(s.rawDir, id+".txt")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return "", pkgerrors.NewStorageError("save raw", err)
	}
	return id, nil
}

// SaveTimestampedRaw stores raw text under a timestamped name and returns
// the file name
func (s *Store) SaveTimestampedRaw(content string) (string, error) {
	name := fmt.Sprintf("raw_text_%s.txt", time.Now().Format("20060102_150405"))
	path := filepath.Join(s.rawDir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return "", pkgerrors.NewStorageError("save raw", err)
	}
	return name, nil
}

// WriteJSON stores a parsed document snapshot under the given name
func (s *Store) WriteJSON(name string, v interface{}) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return pkgerrors.NewStorageError("encode parsed document", err)
	}
	path := filepath.Join(s.parsedDir, filepath.Base(name))
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return pkgerrors.NewStorageError("save parsed document", err)
	}
	return nil
}

// Read returns the stored bytes of a parsed document. A missing document
// yields a not-found error.
func (s *Store) Read(name string) ([]byte, error) {
	path := filepath.Join(s.parsedDir, filepath.Base(name))
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, pkgerrors.NewNotFoundError("parsed document")
		}
		return nil, pkgerrors.NewStorageError("read parsed document", err)
	}
	return data, nil
}

// ReadJSON decodes a stored parsed document into v
func (s *Store) ReadJSON(name string, v interface{}) error {
	data, err := s.Read(name)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(data, v); err != nil {
		return pkgerrors.NewStorageError("decode parsed document", err)
	}
	return nil
}

// RawPath returns the on-disk path for a stored raw file name
func (s *Store) RawPath(name string) string {
	return filepath.Join(s.rawDir, filepath.Base(name))
}
