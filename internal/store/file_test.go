package store

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bycommute/po-sentinel/internal/model"
)

func newTestFileStore(t *testing.T) (*FileStore, string) {
	t.Helper()
	dir := t.TempDir()
	return NewFile(filepath.Join(dir, "rules.json"), filepath.Join(dir, "history.json")), dir
}

func TestFileStore_RulesRoundTrip(t *testing.T) {
	st, _ := newTestFileStore(t)
	ctx := context.Background()

	doc := []byte(`{
		"odoo": {"api_url": "https://erp.test", "api_token": "tok", "custom_key": "kept"},
		"rules": {
			"commande_bloquee": {"enabled": true},
			"installation_manquante": {"enabled": true, "delai_jours": 3, "fabricants": ["Fabrik"]},
			"commande_non_passee": {"enabled": false, "delai_jours": 5},
			"pret_enlevement": {"enabled": true, "delai_jours": 7}
		}
	}`)
	require.NoError(t, st.SaveRules(ctx, doc))

	raw, err := st.LoadRulesRaw(ctx)
	require.NoError(t, err)

	var want, got map[string]any
	require.NoError(t, json.Unmarshal(doc, &want))
	require.NoError(t, json.Unmarshal(raw, &got))
	assert.Equal(t, want, got)

	// Unknown keys survive the round trip.
	odooSection := got["odoo"].(map[string]any)
	assert.Equal(t, "kept", odooSection["custom_key"])

	// The typed view decodes the same file.
	typed, err := st.LoadRules(ctx)
	require.NoError(t, err)
	assert.True(t, typed.Rules.BlockedOrder.Enabled)
	assert.Equal(t, 3, typed.Rules.MissingInstallation.DelaiJours)
	assert.False(t, typed.Rules.OrderNotPlaced.Enabled)
}

func TestFileStore_MissingFileIsError(t *testing.T) {
	st, _ := newTestFileStore(t)
	ctx := context.Background()

	_, err := st.LoadRules(ctx)
	assert.Error(t, err)
	_, err = st.LoadRulesRaw(ctx)
	assert.Error(t, err)
	_, err = st.LoadHistory(ctx)
	assert.Error(t, err)
}

func TestFileStore_MalformedDocumentIsError(t *testing.T) {
	st, dir := newTestFileStore(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "rules.json"), []byte("{nope"), 0o644))

	_, err := st.LoadRules(context.Background())
	assert.Error(t, err)
	_, err = st.LoadRulesRaw(context.Background())
	assert.Error(t, err)
}

func TestFileStore_SaveRulesRejectsInvalidJSON(t *testing.T) {
	st, _ := newTestFileStore(t)
	assert.Error(t, st.SaveRules(context.Background(), []byte("not json")))
}

func TestFileStore_HistoryRoundTrip(t *testing.T) {
	st, _ := newTestFileStore(t)
	ctx := context.Background()
	created := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

	doc := &model.HistoryDocument{
		ActivitiesCreated: []model.LedgerEntry{{
			Key:        "7_COMMANDE_BLOQUEE",
			ActivityID: 314,
			Project:    "CC0010",
			Type:       model.AnomalyBlockedOrder,
			OrderID:    7,
			CreatedAt:  created,
		}},
		Stats: model.Stats{TotalCreated: 1, TotalErrors: 2},
	}
	require.NoError(t, st.SaveHistory(ctx, doc))

	got, err := st.LoadHistory(ctx)
	require.NoError(t, err)
	assert.Equal(t, doc.Stats, got.Stats)
	require.Len(t, got.ActivitiesCreated, 1)
	assert.Equal(t, "7_COMMANDE_BLOQUEE", got.ActivitiesCreated[0].Key)
	assert.True(t, created.Equal(got.ActivitiesCreated[0].CreatedAt))
	assert.Nil(t, got.LastAnalysis)
}

func TestFileStore_WriteIsPretty(t *testing.T) {
	st, dir := newTestFileStore(t)
	require.NoError(t, st.SaveHistory(context.Background(), &model.HistoryDocument{}))

	data, err := os.ReadFile(filepath.Join(dir, "history.json"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "\n  ")
	assert.True(t, data[len(data)-1] == '\n')
}
