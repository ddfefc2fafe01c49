package odoo

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMany2One_Unmarshal(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want Many2One
	}{
		{"set", `[42, "Fabrik SA"]`, Many2One{ID: 42, Name: "Fabrik SA", Set: true}},
		{"empty", `false`, Many2One{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var m Many2One
			require.NoError(t, json.Unmarshal([]byte(tt.in), &m))
			assert.Equal(t, tt.want, m)
		})
	}
}

func TestMany2One_UnmarshalRejectsShortArray(t *testing.T) {
	var m Many2One
	assert.Error(t, json.Unmarshal([]byte(`[42]`), &m))
}

func TestMany2One_RoundTrip(t *testing.T) {
	m := Many2One{ID: 7, Name: "CC0042", Set: true}
	data, err := json.Marshal(m)
	require.NoError(t, err)
	assert.JSONEq(t, `[7, "CC0042"]`, string(data))

	var back Many2One
	require.NoError(t, json.Unmarshal(data, &back))
	assert.Equal(t, m, back)

	data, err = json.Marshal(Many2One{})
	require.NoError(t, err)
	assert.Equal(t, "false", string(data))
}

func TestDatetime_Unmarshal(t *testing.T) {
	var d Datetime
	require.NoError(t, json.Unmarshal([]byte(`"2026-03-10 14:30:00"`), &d))
	assert.True(t, d.Set)
	assert.Equal(t, time.Date(2026, 3, 10, 14, 30, 0, 0, time.UTC), d.Time)

	require.NoError(t, json.Unmarshal([]byte(`false`), &d))
	assert.False(t, d.Set)

	// Bare dates occur on some fields.
	require.NoError(t, json.Unmarshal([]byte(`"2026-03-10"`), &d))
	assert.True(t, d.Set)
	assert.Equal(t, time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC), d.Time)
}

func TestIDList_Unmarshal(t *testing.T) {
	var l IDList
	require.NoError(t, json.Unmarshal([]byte(`[1, 3]`), &l))
	assert.True(t, l.Contains(1))
	assert.False(t, l.Contains(2))

	require.NoError(t, json.Unmarshal([]byte(`false`), &l))
	assert.Empty(t, l)
}

func TestStringAndFloat_FalseMeansEmpty(t *testing.T) {
	var s String
	require.NoError(t, json.Unmarshal([]byte(`false`), &s))
	assert.Equal(t, String(""), s)
	require.NoError(t, json.Unmarshal([]byte(`"partial"`), &s))
	assert.Equal(t, String("partial"), s)

	var f Float
	require.NoError(t, json.Unmarshal([]byte(`false`), &f))
	assert.Equal(t, Float(0), f)
	require.NoError(t, json.Unmarshal([]byte(`128.5`), &f))
	assert.Equal(t, Float(128.5), f)
}
