package memory

import (
	"fmt"
	"sync"

	"github.com/orizon-lang/stickyheap/internal/allocator"
)

// SymbolMap interns names onto an Arena, so that every distinct name has
// exactly one backing Symbol for the process's lifetime.
type SymbolMap struct {
	mu    sync.Mutex
	table map[string]*Symbol
	arena *allocator.Arena
}

// NewSymbolMap returns a SymbolMap backed by arena.
func NewSymbolMap(arena *allocator.Arena) *SymbolMap {
	return &SymbolMap{table: make(map[string]*Symbol), arena: arena}
}

// Lookup returns the interned Symbol for name, allocating and caching it on
// first use.
func (m *SymbolMap) Lookup(name string) (*Symbol, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if sym, ok := m.table[name]; ok {
		return sym, nil
	}

	sym, err := allocator.AllocArena(m.arena, Symbol{name: name})
	if err != nil {
		return nil, fmt.Errorf("intern symbol %q: %w", name, err)
	}

	m.table[name] = sym

	return sym, nil
}
