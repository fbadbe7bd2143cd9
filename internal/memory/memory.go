package memory

import (
	"fmt"
	"sync/atomic"
	"unsafe"

	"github.com/orizon-lang/stickyheap/internal/allocator"
)

// MutatorView is the handle a Mutator's Run method receives: the only way
// consumer code reaches the heap, the symbol table, or the arena. Every
// ScopedPtr/TaggedScopedPtr it produces is bound to this view's epoch.
type MutatorView struct {
	heap      *allocator.Heap
	symbols   *SymbolMap
	arena     *allocator.Arena
	epochCell *int64
}

func (v *MutatorView) epoch() *int64 { return v.epochCell }

// LookupSym interns or fetches a symbol by name.
func (v *MutatorView) LookupSym(name string) (TaggedScopedPtr, error) {
	sym, err := v.symbols.Lookup(name)
	if err != nil {
		return TaggedScopedPtr{}, fmt.Errorf("look up symbol %q: %w", name, err)
	}

	tagged := SymbolPtr(NewRawPtr(sym))

	return NewTaggedScopedPtr(v, tagged), nil
}

// Nil returns the nil TaggedScopedPtr.
func (v *MutatorView) Nil() TaggedScopedPtr {
	return NewTaggedScopedPtr(v, NilPtr)
}

// Alloc allocates object on the heap and returns a scope-bound pointer to
// it. T must implement allocator.Typed.
func Alloc[T allocator.Typed](v *MutatorView, object T) (ScopedPtr[T], error) {
	ptr, err := allocator.Alloc(v.heap, object)
	if err != nil {
		return ScopedPtr[T]{}, fmt.Errorf("allocate %T: %w", object, err)
	}

	return NewScopedPtr(v, ptr), nil
}

// AllocTagged is like Alloc but returns a TaggedScopedPtr, tagging the
// result as a general managed object.
func AllocTagged[T allocator.Typed](v *MutatorView, object T) (TaggedScopedPtr, error) {
	ptr, err := allocator.Alloc(v.heap, object)
	if err != nil {
		return TaggedScopedPtr{}, fmt.Errorf("allocate tagged %T: %w", object, err)
	}

	tagged := ObjectPtr(NewRawPtr(ptr))

	return NewTaggedScopedPtr(v, tagged), nil
}

// AllocArray allocates a zero-initialized byte array of sizeBytes and
// returns a scope-bound pointer to its first byte alongside its length.
func AllocArray(v *MutatorView, sizeBytes uint32) (ScopedPtr[byte], int, error) {
	array, err := allocator.AllocArray(v.heap, sizeBytes)
	if err != nil {
		return ScopedPtr[byte]{}, 0, fmt.Errorf("allocate %d-byte array: %w", sizeBytes, err)
	}

	return NewScopedPtr(v, (*byte)(unsafe.Pointer(&array[0]))), len(array), nil
}

// Mutator is implemented by a consumer's execution step: Run is invoked
// with a fresh MutatorView for the duration of one Memory.Mutate call.
type Mutator[In any, Out any] interface {
	Run(view *MutatorView, input In) (Out, error)
}

// Memory owns the heap, arena, and symbol table a Mutator operates on.
// Mutation is strictly single-threaded: a concurrent Mutate call panics
// instead of silently corrupting heap state.
type Memory struct {
	heap    *allocator.Heap
	arena   *allocator.Arena
	symbols *SymbolMap
	epoch   int64
	busy    atomic.Bool
}

// NewMemory returns an empty Memory with its own heap, arena, and symbol
// table.
func NewMemory() *Memory {
	arena := allocator.NewArena()

	return &Memory{
		heap:    allocator.NewHeap(),
		arena:   arena,
		symbols: NewSymbolMap(arena),
	}
}

// Mutate runs m against a fresh MutatorView. Every ScopedPtr/TaggedScopedPtr
// produced during Run is valid only until Mutate returns: the epoch
// advances both before and after Run, so any pointer a caller squirrels
// away past the call will panic on its next access.
//
// Explicit type arguments are required at the call site (Mutate[In, Out]),
// since Go cannot infer a return-only type parameter from its arguments.
func Mutate[In any, Out any](mem *Memory, m Mutator[In, Out], input In) (Out, error) {
	if !mem.busy.CompareAndSwap(false, true) {
		panic("memory: concurrent Mutate call")
	}
	defer mem.busy.Store(false)

	mem.epoch++
	view := &MutatorView{heap: mem.heap, symbols: mem.symbols, arena: mem.arena, epochCell: &mem.epoch}

	out, err := m.Run(view, input)

	mem.epoch++

	return out, err
}

// Release returns every block owned by the heap and arena to the platform.
// Memory must not be used afterward.
func (mem *Memory) Release() {
	mem.heap.Release()
	mem.arena.Release()
}
