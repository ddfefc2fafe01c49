package model

import (
	"fmt"
	"time"
)

// DedupKey builds the ledger key for one (order, anomaly type) pair.
func DedupKey(orderID int64, t AnomalyType) string {
	return fmt.Sprintf("%d_%s", orderID, t)
}

// LedgerEntry records one created follow-up activity. Entries are
// append-only: never updated, never removed.
type LedgerEntry struct {
	Key        string      `json:"key"`
	ActivityID int64       `json:"activity_id"`
	Project    string      `json:"projet"`
	Type       AnomalyType `json:"type"`
	OrderID    int64       `json:"commande_id"`
	CreatedAt  time.Time   `json:"created_at"`
}

// Stats holds running counters over the life of the history document.
type Stats struct {
	TotalCreated int `json:"total_created"`
	TotalErrors  int `json:"total_errors"`
}

// HistoryDocument is the persisted ledger plus its counters, stored as one
// JSON file and rewritten fully on every mutation.
type HistoryDocument struct {
	ActivitiesCreated []LedgerEntry `json:"activities_created"`
	Stats             Stats         `json:"stats"`
	LastAnalysis      *time.Time    `json:"last_analysis,omitempty"`
}

// Find returns the ledger entry for key, or nil when none exists.
func (h *HistoryDocument) Find(key string) *LedgerEntry {
	for i := range h.ActivitiesCreated {
		if h.ActivitiesCreated[i].Key == key {
			return &h.ActivitiesCreated[i]
		}
	}
	return nil
}

// Append records a created activity. At most one entry may exist per key;
// callers check Find first.
func (h *HistoryDocument) Append(entry LedgerEntry) {
	h.ActivitiesCreated = append(h.ActivitiesCreated, entry)
}
