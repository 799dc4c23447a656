// Package store holds the values a node has recorded from broadcasts.
//
// The log is append-only and keeps every value in arrival order,
// duplicates included. Two backends exist: Memory, a plain slice, and
// SQLite, an in-memory SQLite database. Neither outlives the process.
package store

// ValueLog is the append-only broadcast value log a node writes to.
type ValueLog interface {
	// Append records v at the end of the log.
	Append(v uint32) error

	// Values returns every recorded value in arrival order. The result is
	// never nil and is owned by the caller.
	Values() ([]uint32, error)

	// Len returns the number of recorded values.
	Len() (int, error)

	// Close releases the backend.
	Close() error
}

// Compile-time checks that both backends implement ValueLog.
var (
	_ ValueLog = (*Memory)(nil)
	_ ValueLog = (*SQLite)(nil)
)

// Backend names accepted by Open.
const (
	BackendMemory = "memory"
	BackendSQLite = "sqlite"
)
