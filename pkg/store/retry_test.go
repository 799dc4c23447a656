package store

import (
	"errors"
	"testing"
	"time"
)

var fast = backoff{retries: 3, base: time.Millisecond, ceiling: 4 * time.Millisecond}

func TestIsTransient(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"nil", nil, false},
		{"constraint", errors.New("CHECK constraint failed"), false},
		{"busy text", errors.New("SQLITE_BUSY"), true},
		{"locked text", errors.New("SQLITE_LOCKED"), true},
		{"database is locked", errors.New("database is locked"), true},
		{"table locked", errors.New("database table is locked"), true},
		{"code 5", errors.New("sqlite: (5) database is busy"), true},
		{"code 6", errors.New("sqlite: (6) table is locked"), true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := isTransient(tt.err); got != tt.want {
				t.Errorf("isTransient(%v) = %v, want %v", tt.err, got, tt.want)
			}
		})
	}
}

func TestBackoffRun_SucceedsImmediately(t *testing.T) {
	calls := 0
	if err := fast.run(func() error { calls++; return nil }); err != nil {
		t.Fatalf("got %v", err)
	}
	if calls != 1 {
		t.Errorf("calls = %d, want 1", calls)
	}
}

func TestBackoffRun_PermanentErrorNotRetried(t *testing.T) {
	calls := 0
	permanent := errors.New("no such table")
	err := fast.run(func() error { calls++; return permanent })
	if err != permanent {
		t.Errorf("got %v, want %v", err, permanent)
	}
	if calls != 1 {
		t.Errorf("calls = %d, want 1", calls)
	}
}

func TestBackoffRun_RetriesTransient(t *testing.T) {
	calls := 0
	err := fast.run(func() error {
		calls++
		if calls < 3 {
			return errors.New("SQLITE_BUSY")
		}
		return nil
	})
	if err != nil {
		t.Errorf("got %v after retries", err)
	}
	if calls != 3 {
		t.Errorf("calls = %d, want 3", calls)
	}
}

func TestBackoffRun_ExhaustsBudget(t *testing.T) {
	calls := 0
	err := fast.run(func() error { calls++; return errors.New("SQLITE_LOCKED") })
	if err == nil {
		t.Fatal("expected an error once retries are spent")
	}
	// one initial attempt plus three retries
	if calls != 4 {
		t.Errorf("calls = %d, want 4", calls)
	}
}

func TestBackoffDelay(t *testing.T) {
	b := backoff{base: 10 * time.Millisecond, ceiling: 100 * time.Millisecond}
	for attempt, floor := range []time.Duration{10, 20, 40, 80} {
		floor *= time.Millisecond
		d := b.delay(attempt)
		if d < floor || d >= floor+b.base {
			t.Errorf("delay(%d) = %v, want in [%v, %v)", attempt, d, floor, floor+b.base)
		}
	}
	if d := b.delay(10); d >= b.ceiling+b.base {
		t.Errorf("delay(10) = %v, want capped below %v", d, b.ceiling+b.base)
	}
}
