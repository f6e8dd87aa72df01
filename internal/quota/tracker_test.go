package quota

import (
	"path/filepath"
	"testing"
	"time"
)

func newTestTracker(t *testing.T, path string, at time.Time) *Tracker {
	t.Helper()
	tr, err := NewTracker(path)
	if err != nil {
		t.Fatalf("new tracker: %v", err)
	}
	tr.now = func() time.Time { return at }
	return tr
}

func statePath(t *testing.T) string {
	t.Helper()
	return filepath.Join(t.TempDir(), "usage_state.json")
}

func TestRecord_NoImplicitCap(t *testing.T) {
	at := time.Date(2025, 6, 2, 10, 15, 30, 0, time.UTC)
	tr := newTestTracker(t, statePath(t), at)

	var u Usage
	for i := 0; i < 61; i++ {
		u = tr.Record()
	}
	if u.Minute != 61 {
		t.Errorf("61 records in one minute must count 61, got %d", u.Minute)
	}
	if u.Hour != 61 || u.Day != 61 {
		t.Errorf("hour/day counters must match, got %d/%d", u.Hour, u.Day)
	}
}

func TestRollover_MinuteHourDay(t *testing.T) {
	at := time.Date(2025, 6, 2, 10, 15, 30, 0, time.UTC)
	tr := newTestTracker(t, statePath(t), at)

	for i := 0; i < 5; i++ {
		tr.Record()
	}

	// Next minute: minute resets, hour and day keep counting.
	at = at.Add(time.Minute)
	tr.now = func() time.Time { return at }
	u := tr.Record()
	if u.Minute != 1 || u.Hour != 6 || u.Day != 6 {
		t.Fatalf("after minute rollover expected 1/6/6, got %d/%d/%d", u.Minute, u.Hour, u.Day)
	}

	// Next hour: minute and hour reset.
	at = at.Add(time.Hour)
	tr.now = func() time.Time { return at }
	u = tr.Record()
	if u.Minute != 1 || u.Hour != 1 || u.Day != 7 {
		t.Fatalf("after hour rollover expected 1/1/7, got %d/%d/%d", u.Minute, u.Hour, u.Day)
	}

	// Next day: everything resets, even though hour-of-day and
	// minute-of-hour are unchanged.
	at = at.AddDate(0, 0, 1)
	tr.now = func() time.Time { return at }
	u = tr.Record()
	if u.Minute != 1 || u.Hour != 1 || u.Day != 1 {
		t.Fatalf("after day rollover expected 1/1/1, got %d/%d/%d", u.Minute, u.Hour, u.Day)
	}
}

func TestSnapshot_DoesNotIncrement(t *testing.T) {
	at := time.Date(2025, 6, 2, 10, 15, 30, 0, time.UTC)
	tr := newTestTracker(t, statePath(t), at)

	tr.Record()
	tr.Record()
	tr.Record()

	if u := tr.Snapshot(); u.Minute != 3 {
		t.Fatalf("expected snapshot 3, got %d", u.Minute)
	}
	if u := tr.Snapshot(); u.Minute != 3 {
		t.Fatalf("repeated snapshot must not increment, got %d", u.Minute)
	}

	// Snapshot still applies rollover.
	at = at.Add(time.Minute)
	tr.now = func() time.Time { return at }
	u := tr.Snapshot()
	if u.Minute != 0 || u.Hour != 3 || u.Day != 3 {
		t.Fatalf("after rollover expected 0/3/3, got %d/%d/%d", u.Minute, u.Hour, u.Day)
	}
}

func TestTracker_PersistsAcrossRestarts(t *testing.T) {
	path := statePath(t)
	at := time.Date(2025, 6, 2, 10, 15, 30, 0, time.UTC)

	tr := newTestTracker(t, path, at)
	tr.Record()
	tr.Record()

	reloaded := newTestTracker(t, path, at)
	if u := reloaded.Snapshot(); u.Minute != 2 || u.Hour != 2 || u.Day != 2 {
		t.Fatalf("expected reloaded counters 2/2/2, got %d/%d/%d", u.Minute, u.Hour, u.Day)
	}
}
