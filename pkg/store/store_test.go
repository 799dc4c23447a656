package store

import (
	"reflect"
	"testing"
)

// backends returns one fresh instance of every ValueLog implementation.
func backends(t *testing.T) map[string]ValueLog {
	t.Helper()
	sq, err := NewSQLite()
	if err != nil {
		t.Fatalf("NewSQLite: %v", err)
	}
	t.Cleanup(func() { sq.Close() })
	return map[string]ValueLog{
		BackendMemory: NewMemory(),
		BackendSQLite: sq,
	}
}

func TestValues_EmptyIsNonNil(t *testing.T) {
	for name, log := range backends(t) {
		t.Run(name, func(t *testing.T) {
			vs, err := log.Values()
			if err != nil {
				t.Fatal(err)
			}
			if vs == nil || len(vs) != 0 {
				t.Fatalf("Values on empty log = %#v, want empty non-nil slice", vs)
			}
			n, err := log.Len()
			if err != nil || n != 0 {
				t.Fatalf("Len = %d, %v; want 0", n, err)
			}
		})
	}
}

func TestAppend_KeepsOrderAndDuplicates(t *testing.T) {
	in := []uint32{5, 1, 5, 4294967295, 0, 1}
	for name, log := range backends(t) {
		t.Run(name, func(t *testing.T) {
			for _, v := range in {
				if err := log.Append(v); err != nil {
					t.Fatalf("Append(%d): %v", v, err)
				}
			}
			got, err := log.Values()
			if err != nil {
				t.Fatal(err)
			}
			if !reflect.DeepEqual(got, in) {
				t.Fatalf("Values = %v, want %v", got, in)
			}
			n, err := log.Len()
			if err != nil || n != len(in) {
				t.Fatalf("Len = %d, %v; want %d", n, err, len(in))
			}
		})
	}
}

func TestValues_ReturnsCopy(t *testing.T) {
	for name, log := range backends(t) {
		t.Run(name, func(t *testing.T) {
			log.Append(1)
			vs, _ := log.Values()
			vs[0] = 99
			again, _ := log.Values()
			if again[0] != 1 {
				t.Fatalf("mutating Values result changed the log: %v", again)
			}
		})
	}
}

func TestSQLite_InstancesAreIndependent(t *testing.T) {
	a, err := NewSQLite()
	if err != nil {
		t.Fatal(err)
	}
	defer a.Close()
	b, err := NewSQLite()
	if err != nil {
		t.Fatal(err)
	}
	defer b.Close()

	a.Append(7)
	if n, _ := b.Len(); n != 0 {
		t.Fatalf("second in-memory database saw %d rows from the first", n)
	}
}

func TestOpen(t *testing.T) {
	for _, name := range []string{"", BackendMemory, BackendSQLite} {
		log, err := Open(name)
		if err != nil {
			t.Fatalf("Open(%q): %v", name, err)
		}
		if err := log.Append(3); err != nil {
			t.Fatalf("Open(%q).Append: %v", name, err)
		}
		log.Close()
	}
	if _, err := Open("postgres"); err == nil {
		t.Fatal("Open of an unknown backend should fail")
	}
}
