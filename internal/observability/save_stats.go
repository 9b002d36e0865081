package observability

import (
	"sync/atomic"
	"time"
)

// SaveStats counts autosave outcomes for the current process.
type SaveStats struct {
	saved   atomic.Uint64
	skipped atomic.Uint64
	failed  atomic.Uint64
	retried atomic.Uint64

	// duration stats (nanoseconds)
	durationCount atomic.Uint64
	durationTotal atomic.Int64
	durationMax   atomic.Int64
}

func NewSaveStats() *SaveStats {
	return &SaveStats{}
}

func (m *SaveStats) IncSaved()   { m.saved.Add(1) }
func (m *SaveStats) IncSkipped() { m.skipped.Add(1) }
func (m *SaveStats) IncFailed()  { m.failed.Add(1) }
func (m *SaveStats) IncRetried() { m.retried.Add(1) }

func (m *SaveStats) ObserveDuration(d time.Duration) {
	ns := d.Nanoseconds()
	m.durationCount.Add(1)
	m.durationTotal.Add(ns)

	for {
		curr := m.durationMax.Load()

		if ns <= curr {
			return
		}

		if m.durationMax.CompareAndSwap(curr, ns) {
			return
		}
	}
}

type SaveStatsSnapshot struct {
	Saved           uint64        `json:"saved"`
	Skipped         uint64        `json:"skipped"`
	Failed          uint64        `json:"failed"`
	Retried         uint64        `json:"retried"`
	AverageDuration time.Duration `json:"averageDurationNs"`
	MaxDuration     time.Duration `json:"maxDurationNs"`
}

func (m *SaveStats) Snapshot() SaveStatsSnapshot {
	count := m.durationCount.Load()
	total := m.durationTotal.Load()

	var avg time.Duration

	if count > 0 {
		avg = time.Duration(total / int64(count))
	}

	return SaveStatsSnapshot{
		Saved:           m.saved.Load(),
		Skipped:         m.skipped.Load(),
		Failed:          m.failed.Load(),
		Retried:         m.retried.Load(),
		AverageDuration: avg,
		MaxDuration:     time.Duration(m.durationMax.Load()),
	}
}
