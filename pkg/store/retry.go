// retry.go wraps SQLite writes in a bounded exponential backoff.
//
// The value log runs on a single in-memory connection, so lock contention
// should not happen in practice. The modernc driver still reports
// SQLITE_BUSY/SQLITE_LOCKED for a statement that races a finalizing
// cursor, and those are worth one more attempt rather than failing the
// envelope.
package store

import (
	"math/rand/v2"
	"strings"
	"time"
)

// backoff bounds how a write is retried.
type backoff struct {
	retries int
	base    time.Duration
	ceiling time.Duration
}

var writeBackoff = backoff{
	retries: 3,
	base:    5 * time.Millisecond,
	ceiling: 50 * time.Millisecond,
}

// transientMarkers are the fragments modernc.org/sqlite puts in the text
// of errors that go away on their own.
var transientMarkers = []string{
	"SQLITE_BUSY",
	"SQLITE_LOCKED",
	"database is locked",
	"database table is locked",
	"(5)",
	"(6)",
}

func isTransient(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	for _, m := range transientMarkers {
		if strings.Contains(msg, m) {
			return true
		}
	}
	return false
}

// run calls fn until it succeeds, fails permanently, or the retry budget
// is spent. The last error is returned.
func (b backoff) run(fn func() error) error {
	var err error
	for attempt := 0; ; attempt++ {
		if err = fn(); err == nil || !isTransient(err) || attempt >= b.retries {
			return err
		}
		time.Sleep(b.delay(attempt))
	}
}

// delay is base*2^attempt capped at ceiling, plus up to base of jitter.
func (b backoff) delay(attempt int) time.Duration {
	d := b.base << uint(attempt)
	if d > b.ceiling || d <= 0 {
		d = b.ceiling
	}
	if b.base > 0 {
		d += rand.N(b.base)
	}
	return d
}

func retryOnContention(fn func() error) error {
	return writeBackoff.run(fn)
}
