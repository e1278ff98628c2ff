package speech

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/log"
)

// Severity classifies how close a run takes usage to the monthly limit
type Severity int

// severity levels reported by Check
const (
	SeverityOK Severity = iota
	SeverityWarning
	SeverityCritical
	SeverityExceeded
)

// QuotaStatus is the outcome of a pre-flight quota evaluation
type QuotaStatus struct {
	Allowed   bool
	Used      int
	Projected int
	Limit     int
	Percent   float64
	Severity  Severity
	Message   string
}

// usageEntry is one recorded synthesis run
type usageEntry struct {
	Timestamp  time.Time `json:"timestamp"`
	Characters int       `json:"characters"`
}

// usageState is the persisted ledger file format
type usageState struct {
	Period         string       `json:"period"`
	CharactersUsed int          `json:"characters_used"`
	Requests       []usageEntry `json:"requests"`
}

// UsageLedger tracks character usage against a monthly quota, persisted as a
// small JSON file keyed by calendar month. Single-writer: concurrent runs
// against the same file need external locking.
type UsageLedger struct {
	path  string
	limit int
	state usageState
	now   func() time.Time
}

// NewUsageLedger loads the ledger at path. The period rolls over to a fresh
// zeroed month whenever the stored key differs from the current one. A
// missing or corrupt file is treated as absent: usage tracking is
// best-effort and never fails the run.
func NewUsageLedger(path string, limit int) *UsageLedger {
	l := &UsageLedger{path: path, limit: limit, now: time.Now}
	l.load()
	return l
}

func (l *UsageLedger) currentPeriod() string {
	return l.now().Format("2006-01")
}

func (l *UsageLedger) load() {
	fresh := usageState{Period: l.currentPeriod()}

	data, err := os.ReadFile(l.path)
	if err != nil {
		if !os.IsNotExist(err) {
			log.Warn("cannot read usage ledger, starting fresh", "path", l.path, "err", err)
		}
		l.state = fresh
		return
	}

	var st usageState
	if err := json.Unmarshal(data, &st); err != nil {
		log.Warn("usage ledger is corrupt, starting fresh", "path", l.path, "err", err)
		l.state = fresh
		return
	}

	if st.Period != fresh.Period {
		log.Info("usage period rolled over", "from", st.Period, "to", fresh.Period)
		l.state = fresh
		return
	}
	l.state = st
}

// Used returns characters consumed so far in the current period
func (l *UsageLedger) Used() int {
	return l.state.CharactersUsed
}

// Check evaluates whether a run of proposed characters fits the monthly
// limit. It never mutates the ledger.
func (l *UsageLedger) Check(proposed int) QuotaStatus {
	projected := l.state.CharactersUsed + proposed
	percent := float64(projected) / float64(l.limit) * 100

	st := QuotaStatus{
		Allowed:   projected <= l.limit,
		Used:      l.state.CharactersUsed,
		Projected: projected,
		Limit:     l.limit,
		Percent:   percent,
	}

	switch {
	case projected > l.limit:
		st.Severity = SeverityExceeded
		st.Message = fmt.Sprintf("monthly quota exceeded: %d used, %d projected of %d limit (%.1f%%)",
			st.Used, projected, l.limit, percent)
	case percent >= criticalThreshold*100:
		st.Severity = SeverityCritical
		st.Message = fmt.Sprintf("monthly quota critical: %d used, %d projected of %d limit (%.1f%%)",
			st.Used, projected, l.limit, percent)
	case percent >= warningThreshold*100:
		st.Severity = SeverityWarning
		st.Message = fmt.Sprintf("monthly quota warning: %d used, %d projected of %d limit (%.1f%%)",
			st.Used, projected, l.limit, percent)
	default:
		st.Severity = SeverityOK
		st.Message = fmt.Sprintf("quota ok: %d used, %d projected of %d limit (%.1f%%)",
			st.Used, projected, l.limit, percent)
	}
	return st
}

// Record appends an audit entry for a completed synthesis run and persists
// the ledger immediately. Only called after the full run has succeeded.
func (l *UsageLedger) Record(chars int) {
	l.state.Requests = append(l.state.Requests, usageEntry{Timestamp: l.now(), Characters: chars})
	l.state.CharactersUsed += chars

	if err := l.save(); err != nil {
		log.Warn("cannot persist usage ledger", "path", l.path, "err", err)
	}
}

func (l *UsageLedger) save() error {
	data, err := json.MarshalIndent(l.state, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal ledger state: %w", err)
	}
	if err := os.WriteFile(l.path, data, 0o600); err != nil {
		return fmt.Errorf("failed to write ledger file: %w", err)
	}
	return nil
}
