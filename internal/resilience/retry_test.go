package resilience

import (
	"context"
	"testing"
	"time"

	"github.com/rotisserie/eris"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDoVal_FirstAttemptSucceeds(t *testing.T) {
	calls := 0
	val, err := DoVal(context.Background(), Config{MaxAttempts: 2, Delay: time.Millisecond}, func(context.Context) (int, error) {
		calls++
		return 42, nil
	})
	require.NoError(t, err)
	assert.Equal(t, 42, val)
	assert.Equal(t, 1, calls)
}

func TestDoVal_RetriesThenSucceeds(t *testing.T) {
	calls := 0
	retried := 0
	cfg := Config{
		MaxAttempts: 2,
		Delay:       time.Millisecond,
		OnRetry:     func(int, error) { retried++ },
	}
	val, err := DoVal(context.Background(), cfg, func(context.Context) (string, error) {
		calls++
		if calls == 1 {
			return "", eris.New("transient")
		}
		return "ok", nil
	})
	require.NoError(t, err)
	assert.Equal(t, "ok", val)
	assert.Equal(t, 2, calls)
	assert.Equal(t, 1, retried)
}

func TestDoVal_ExhaustsAttempts(t *testing.T) {
	calls := 0
	_, err := DoVal(context.Background(), Config{MaxAttempts: 2, Delay: time.Millisecond}, func(context.Context) (int, error) {
		calls++
		return 0, eris.New("still broken")
	})
	require.Error(t, err)
	assert.Equal(t, 2, calls)
}

func TestDoVal_ContextCancelStopsRetries(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	calls := 0
	_, err := DoVal(ctx, Config{MaxAttempts: 5, Delay: time.Minute}, func(context.Context) (int, error) {
		calls++
		cancel()
		return 0, eris.New("boom")
	})
	require.Error(t, err)
	assert.Equal(t, 1, calls)
}

func TestDo_DefaultsApply(t *testing.T) {
	calls := 0
	start := time.Now()
	err := Do(context.Background(), Config{Delay: time.Millisecond}, func(context.Context) error {
		calls++
		return eris.New("nope")
	})
	require.Error(t, err)
	assert.Equal(t, 2, calls) // default MaxAttempts
	assert.Less(t, time.Since(start), time.Second)
}
