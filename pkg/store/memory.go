package store

import (
	"fmt"
	"slices"
)

// Memory is a slice-backed ValueLog. The zero value is ready to use.
type Memory struct {
	values []uint32
}

// NewMemory returns an empty Memory log.
func NewMemory() *Memory { return &Memory{} }

// Append records v at the end of the log.
func (m *Memory) Append(v uint32) error {
	m.values = append(m.values, v)
	return nil
}

// Values returns a copy of the log, never nil.
func (m *Memory) Values() ([]uint32, error) {
	if m.values == nil {
		return []uint32{}, nil
	}
	return slices.Clone(m.values), nil
}

// Len returns the number of recorded values.
func (m *Memory) Len() (int, error) { return len(m.values), nil }

// Close is a no-op.
func (m *Memory) Close() error { return nil }

// Open returns a fresh, empty value log for the named backend.
func Open(backend string) (ValueLog, error) {
	switch backend {
	case "", BackendMemory:
		return NewMemory(), nil
	case BackendSQLite:
		return NewSQLite()
	}
	return nil, fmt.Errorf("unknown value log backend %q (want %s or %s)", backend, BackendMemory, BackendSQLite)
}
