package store

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/rotisserie/eris"

	"github.com/bycommute/po-sentinel/internal/model"
)

// FileStore implements Store over two JSON files on disk.
type FileStore struct {
	rulesPath   string
	historyPath string
}

// NewFile creates a FileStore for the given document paths.
func NewFile(rulesPath, historyPath string) *FileStore {
	return &FileStore{rulesPath: rulesPath, historyPath: historyPath}
}

func (s *FileStore) LoadRules(_ context.Context) (*model.RulesDocument, error) {
	var doc model.RulesDocument
	if err := readJSON(s.rulesPath, &doc); err != nil {
		return nil, err
	}
	return &doc, nil
}

func (s *FileStore) LoadRulesRaw(_ context.Context) (json.RawMessage, error) {
	data, err := os.ReadFile(s.rulesPath)
	if err != nil {
		return nil, eris.Wrapf(err, "store: read %s", s.rulesPath)
	}
	if !json.Valid(data) {
		return nil, eris.Errorf("store: %s is not valid JSON", s.rulesPath)
	}
	return json.RawMessage(data), nil
}

func (s *FileStore) SaveRules(_ context.Context, doc json.RawMessage) error {
	// Re-indent through a generic decode so hand-posted documents land
	// pretty-printed, keeping every key they carried.
	var v any
	if err := json.Unmarshal(doc, &v); err != nil {
		return eris.Wrap(err, "store: decode rules document")
	}
	return writeJSON(s.rulesPath, v)
}

func (s *FileStore) LoadHistory(_ context.Context) (*model.HistoryDocument, error) {
	var doc model.HistoryDocument
	if err := readJSON(s.historyPath, &doc); err != nil {
		return nil, err
	}
	return &doc, nil
}

func (s *FileStore) SaveHistory(_ context.Context, h *model.HistoryDocument) error {
	return writeJSON(s.historyPath, h)
}

func readJSON(path string, out any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return eris.Wrapf(err, "store: read %s", path)
	}
	if err := json.Unmarshal(data, out); err != nil {
		return eris.Wrapf(err, "store: decode %s", path)
	}
	return nil
}

// writeJSON rewrites the whole document through a temp file in the same
// directory, so a crash mid-write never leaves a truncated document behind.
func writeJSON(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return eris.Wrapf(err, "store: encode %s", path)
	}
	data = append(data, '\n')

	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".tmp-*")
	if err != nil {
		return eris.Wrapf(err, "store: create temp for %s", path)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return eris.Wrapf(err, "store: write %s", path)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return eris.Wrapf(err, "store: close temp for %s", path)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return eris.Wrapf(err, "store: replace %s", path)
	}
	return nil
}
