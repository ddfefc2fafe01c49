package store

import (
	"context"
	"encoding/json"

	"github.com/rotisserie/eris"

	"github.com/bycommute/po-sentinel/internal/model"
)

// MemStore is an in-memory Store used by tests and the CLI dry-run path.
type MemStore struct {
	Rules   json.RawMessage
	History *model.HistoryDocument
}

// NewMem creates a MemStore seeded with the given documents. A nil rules
// document leaves the store without one, so loads fail as they would for a
// missing file.
func NewMem(rules *model.RulesDocument, history *model.HistoryDocument) *MemStore {
	s := &MemStore{History: history}
	if s.History == nil {
		s.History = &model.HistoryDocument{}
	}
	if rules != nil {
		raw, _ := json.Marshal(rules)
		s.Rules = raw
	}
	return s
}

func (s *MemStore) LoadRules(_ context.Context) (*model.RulesDocument, error) {
	if s.Rules == nil {
		return nil, eris.New("store: no rules document")
	}
	var doc model.RulesDocument
	if err := json.Unmarshal(s.Rules, &doc); err != nil {
		return nil, eris.Wrap(err, "store: decode rules document")
	}
	return &doc, nil
}

func (s *MemStore) LoadRulesRaw(_ context.Context) (json.RawMessage, error) {
	if s.Rules == nil {
		return nil, eris.New("store: no rules document")
	}
	return s.Rules, nil
}

func (s *MemStore) SaveRules(_ context.Context, doc json.RawMessage) error {
	s.Rules = append(json.RawMessage(nil), doc...)
	return nil
}

func (s *MemStore) LoadHistory(_ context.Context) (*model.HistoryDocument, error) {
	if s.History == nil {
		return nil, eris.New("store: no history document")
	}
	// Deep copy so callers mutate their own view until SaveHistory.
	data, err := json.Marshal(s.History)
	if err != nil {
		return nil, eris.Wrap(err, "store: encode history")
	}
	var doc model.HistoryDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, eris.Wrap(err, "store: decode history")
	}
	return &doc, nil
}

func (s *MemStore) SaveHistory(_ context.Context, h *model.HistoryDocument) error {
	s.History = h
	return nil
}
