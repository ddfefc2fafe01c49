// Package store persists the rules configuration and the activity history,
// each as a single JSON document read fully into memory and rewritten fully
// on every mutation.
package store

import (
	"context"
	"encoding/json"

	"github.com/bycommute/po-sentinel/internal/model"
)

// Store defines persistence for the two configuration documents. A missing
// or malformed document is an error; no default is substituted.
type Store interface {
	// LoadRules decodes the rules document into its typed form.
	LoadRules(ctx context.Context) (*model.RulesDocument, error)

	// LoadRulesRaw returns the rules document exactly as stored, for the
	// config read endpoint.
	LoadRulesRaw(ctx context.Context) (json.RawMessage, error)

	// SaveRules persists the given document verbatim, unknown keys included.
	SaveRules(ctx context.Context, doc json.RawMessage) error

	LoadHistory(ctx context.Context) (*model.HistoryDocument, error)
	SaveHistory(ctx context.Context, h *model.HistoryDocument) error
}
