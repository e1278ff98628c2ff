package speech

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUsageLedger_CheckBoundary(t *testing.T) {
	ledger := NewUsageLedger(filepath.Join(t.TempDir(), "usage.json"), 1000)
	ledger.Record(990)

	t.Run("exactly at the limit is allowed", func(t *testing.T) {
		status := ledger.Check(10)
		assert.True(t, status.Allowed)
		assert.Equal(t, 990, status.Used)
		assert.Equal(t, 1000, status.Projected)
		assert.InDelta(t, 100.0, status.Percent, 0.001)
		assert.Equal(t, SeverityCritical, status.Severity)
	})

	t.Run("one character over is rejected", func(t *testing.T) {
		status := ledger.Check(11)
		assert.False(t, status.Allowed)
		assert.Equal(t, 1001, status.Projected)
		assert.Equal(t, SeverityExceeded, status.Severity)
		assert.Contains(t, status.Message, "exceeded")
	})
}

func TestUsageLedger_Severities(t *testing.T) {
	tests := []struct {
		name     string
		proposed int
		severity Severity
		allowed  bool
	}{
		{"well under the limit", 100, SeverityOK, true},
		{"just below warning", 799, SeverityOK, true},
		{"warning threshold", 800, SeverityWarning, true},
		{"just below critical", 899, SeverityWarning, true},
		{"critical threshold", 900, SeverityCritical, true},
		{"full limit", 1000, SeverityCritical, true},
		{"over the limit", 1001, SeverityExceeded, false},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			ledger := NewUsageLedger(filepath.Join(t.TempDir(), "usage.json"), 1000)
			status := ledger.Check(test.proposed)
			assert.Equal(t, test.severity, status.Severity)
			assert.Equal(t, test.allowed, status.Allowed)
			assert.NotEmpty(t, status.Message)
		})
	}
}

func TestUsageLedger_MonthRollover(t *testing.T) {
	path := filepath.Join(t.TempDir(), "usage.json")

	now := time.Now()
	prevMonth := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC).
		AddDate(0, 0, -1).Format("2006-01")
	state := fmt.Sprintf(`{"period":%q,"characters_used":500,"requests":[{"timestamp":"2025-01-02T03:04:05Z","characters":500}]}`, prevMonth)
	require.NoError(t, os.WriteFile(path, []byte(state), 0o600))

	ledger := NewUsageLedger(path, 1000)
	assert.Equal(t, 0, ledger.Used(), "stale period must reset to zero")
	assert.True(t, ledger.Check(1000).Allowed)
}

func TestUsageLedger_CurrentPeriodKept(t *testing.T) {
	path := filepath.Join(t.TempDir(), "usage.json")

	state := fmt.Sprintf(`{"period":%q,"characters_used":300,"requests":[]}`, time.Now().Format("2006-01"))
	require.NoError(t, os.WriteFile(path, []byte(state), 0o600))

	ledger := NewUsageLedger(path, 1000)
	assert.Equal(t, 300, ledger.Used())
}

func TestUsageLedger_CorruptFileStartsFresh(t *testing.T) {
	path := filepath.Join(t.TempDir(), "usage.json")
	require.NoError(t, os.WriteFile(path, []byte("not json at all {"), 0o600))

	ledger := NewUsageLedger(path, 1000)
	assert.Equal(t, 0, ledger.Used())
	assert.True(t, ledger.Check(10).Allowed)
}

func TestUsageLedger_MissingFileStartsFresh(t *testing.T) {
	ledger := NewUsageLedger(filepath.Join(t.TempDir(), "nope", "usage.json"), 1000)
	assert.Equal(t, 0, ledger.Used())
}

func TestUsageLedger_RecordPersists(t *testing.T) {
	path := filepath.Join(t.TempDir(), "usage.json")

	ledger := NewUsageLedger(path, 1000)
	ledger.Record(42)
	ledger.Record(8)

	// reload from disk
	reloaded := NewUsageLedger(path, 1000)
	assert.Equal(t, 50, reloaded.Used())

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var st usageState
	require.NoError(t, json.Unmarshal(data, &st))
	assert.Equal(t, time.Now().Format("2006-01"), st.Period)
	assert.Equal(t, 50, st.CharactersUsed)
	require.Len(t, st.Requests, 2)
	assert.Equal(t, 42, st.Requests[0].Characters)
	assert.Equal(t, 8, st.Requests[1].Characters)
	assert.False(t, st.Requests[0].Timestamp.IsZero())
}
