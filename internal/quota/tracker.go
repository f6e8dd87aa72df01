package quota

import (
	"log"
	"sync"
	"time"
)

// Documented upstream operating envelope. Reported, never enforced here;
// the sync pacing delay is what keeps requests under it.
const (
	BudgetPerMinute = 60
	BudgetPerHour   = 360
	BudgetPerDay    = 8000
)

const (
	minuteLayout = "2006-01-02T15:04"
	hourLayout   = "2006-01-02T15"
	dayLayout    = "2006-01-02"
)

// Usage is a read-only view of the three rolling counters.
type Usage struct {
	Minute int
	Hour   int
	Day    int
}

// Tracker counts outbound data requests per minute/hour/day with
// wall-clock bucket rollover. Single-writer semantics; all access is
// serialized through the internal mutex.
type Tracker struct {
	mu       sync.Mutex
	state    *State
	filePath string
	now      func() time.Time
}

// NewTracker creates a Tracker, loading prior state from disk if present.
func NewTracker(filePath string) (*Tracker, error) {
	state, err := LoadState(filePath)
	if err != nil {
		return nil, err
	}
	return &Tracker{state: state, filePath: filePath, now: time.Now}, nil
}

// Record registers one outbound request: any stale bucket resets to zero,
// then all three counters increment. State is persisted on every call so
// the counters survive restarts.
func (t *Tracker) Record() Usage {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.rollover(t.now())
	t.state.MinuteCount++
	t.state.HourCount++
	t.state.DayCount++

	if err := SaveState(t.filePath, t.state); err != nil {
		log.Printf("[ERROR] save usage state: %v", err)
	}
	return Usage{Minute: t.state.MinuteCount, Hour: t.state.HourCount, Day: t.state.DayCount}
}

// Snapshot applies the rollover check and returns the counters without
// incrementing them.
func (t *Tracker) Snapshot() Usage {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.rollover(t.now())
	return Usage{Minute: t.state.MinuteCount, Hour: t.state.HourCount, Day: t.state.DayCount}
}

// rollover resets any counter whose time bucket has changed since the last
// call. Counters only ever reset on a real bucket boundary crossing.
func (t *Tracker) rollover(now time.Time) {
	if mark := now.Format(minuteLayout); mark != t.state.MinuteMark {
		t.state.MinuteCount = 0
		t.state.MinuteMark = mark
	}
	if mark := now.Format(hourLayout); mark != t.state.HourMark {
		t.state.HourCount = 0
		t.state.HourMark = mark
	}
	if mark := now.Format(dayLayout); mark != t.state.DayMark {
		t.state.DayCount = 0
		t.state.DayMark = mark
	}
}
