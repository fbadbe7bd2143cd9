package memory

import (
	"testing"

	"github.com/orizon-lang/stickyheap/internal/allocator"
)

func TestSymbolMapInternsByName(t *testing.T) {
	arena := allocator.NewArena()
	defer arena.Release()

	m := NewSymbolMap(arena)

	a, err := m.Lookup("foo")
	if err != nil {
		t.Fatalf("lookup failed: %v", err)
	}

	b, err := m.Lookup("foo")
	if err != nil {
		t.Fatalf("lookup failed: %v", err)
	}

	if a != b {
		t.Error("expected looking up the same name twice to return the same Symbol")
	}

	c, err := m.Lookup("bar")
	if err != nil {
		t.Fatalf("lookup failed: %v", err)
	}

	if a == c {
		t.Error("expected distinct names to intern to distinct symbols")
	}

	if a.Name() != "foo" || c.Name() != "bar" {
		t.Error("interned symbol did not retain its name")
	}
}
