package memory

// MutatorScope is implemented by whatever owns the live epoch cell for a
// single mutate() call. Rust enforces that a ScopedPtr never outlives its
// mutator at compile time via a lifetime parameter; Go has no borrow
// checker, so scope liveness is instead checked at each dereference against
// a shared epoch counter that advances once the owning call returns.
type MutatorScope interface {
	epoch() *int64
}

func checkLive(scope MutatorScope, captured int64) {
	if *scope.epoch() != captured {
		panic("memory: pointer used outside its mutator scope")
	}
}

// ScopedPtr is a reference to a T bound to the mutator scope that produced
// it. Using it after that scope's mutate() call has returned panics.
type ScopedPtr[T any] struct {
	value    *T
	scope    MutatorScope
	captured int64
}

// NewScopedPtr binds value to scope's current epoch.
func NewScopedPtr[T any](scope MutatorScope, value *T) ScopedPtr[T] {
	return ScopedPtr[T]{value: value, scope: scope, captured: *scope.epoch()}
}

// Get returns the underlying pointer, panicking if scope has since ended.
func (p ScopedPtr[T]) Get() *T {
	checkLive(p.scope, p.captured)

	return p.value
}

// CellPtr is an interior-mutable holder of a RawPtr[T], the mutable-field
// analogue of ScopedPtr. Both reading and writing it require a live scope:
// the value being stored must itself be a ScopedPtr, so a pointer can never
// be written into the heap from outside the mutate() call that produced it.
type CellPtr[T any] struct {
	ptr RawPtr[T]
}

// NewCellPtr wraps an initial RawPtr value.
func NewCellPtr[T any](ptr RawPtr[T]) CellPtr[T] {
	return CellPtr[T]{ptr: ptr}
}

// Get returns a ScopedPtr bound to scope's current epoch.
func (c *CellPtr[T]) Get(scope MutatorScope) ScopedPtr[T] {
	return NewScopedPtr(scope, c.ptr.AsPtr())
}

// Set stores value's pointer, panicking if value's scope has since ended.
func (c *CellPtr[T]) Set(value ScopedPtr[T]) {
	checkLive(value.scope, value.captured)

	c.ptr = NewRawPtr(value.value)
}

// Value is Value<'guard> from the design this was adapted from: the same
// variants as FatPtr, but scope-bound like ScopedPtr, and the sole type
// through which consumer code reads managed objects.
type Value struct {
	fat      FatPtr
	scope    MutatorScope
	captured int64
}

func newValue(scope MutatorScope, fat FatPtr) Value {
	return Value{fat: fat, scope: scope, captured: *scope.epoch()}
}

// Kind returns the value's discriminant, panicking if its scope has ended.
func (v Value) Kind() Kind {
	checkLive(v.scope, v.captured)

	return v.fat.Kind
}

// Fat returns the underlying FatPtr, panicking if its scope has ended.
func (v Value) Fat() FatPtr {
	checkLive(v.scope, v.captured)

	return v.fat
}

// TaggedScopedPtr is a scope-bound TaggedPtr with its decoded Value cached
// alongside it, so repeated access doesn't repeatedly re-decode the tag.
type TaggedScopedPtr struct {
	value Value
	ptr   TaggedPtr
}

// NewTaggedScopedPtr decodes ptr and binds the result to scope.
func NewTaggedScopedPtr(scope MutatorScope, ptr TaggedPtr) TaggedScopedPtr {
	return TaggedScopedPtr{ptr: ptr, value: newValue(scope, ptr.ToFatPtr())}
}

// Value returns the decoded, scope-checked Value.
func (t TaggedScopedPtr) Value() Value { return t.value }

// Ptr returns the raw packed TaggedPtr, which carries no scope information
// of its own and is always safe to read.
func (t TaggedScopedPtr) Ptr() TaggedPtr { return t.ptr }

// TaggedCellPtr is an interior-mutable TaggedPtr, the tagged-pointer
// analogue of CellPtr.
type TaggedCellPtr struct {
	ptr TaggedPtr
}

// NewNilTaggedCellPtr returns a TaggedCellPtr holding the nil sentinel.
func NewNilTaggedCellPtr() TaggedCellPtr {
	return TaggedCellPtr{ptr: NilPtr}
}

// NewTaggedCellPtrWith returns a TaggedCellPtr holding ptr.
func NewTaggedCellPtrWith(ptr TaggedPtr) TaggedCellPtr {
	return TaggedCellPtr{ptr: ptr}
}

// Get returns a TaggedScopedPtr bound to scope's current epoch.
func (c *TaggedCellPtr) Get(scope MutatorScope) TaggedScopedPtr {
	return NewTaggedScopedPtr(scope, c.ptr)
}

// Set stores value's tagged pointer, panicking if value's scope has since
// ended.
func (c *TaggedCellPtr) Set(value TaggedScopedPtr) {
	checkLive(value.value.scope, value.value.captured)

	c.ptr = value.ptr
}

// CopyFrom copies another cell's pointer value into this one.
func (c *TaggedCellPtr) CopyFrom(other *TaggedCellPtr) {
	c.ptr = other.ptr
}

// IsNil reports whether the held pointer is the nil sentinel.
func (c *TaggedCellPtr) IsNil() bool { return c.ptr.IsNil() }

// SetToNil resets the cell to the nil sentinel.
func (c *TaggedCellPtr) SetToNil() { c.ptr = NilPtr }

// GetPtr returns the held TaggedPtr directly, without scope checking.
func (c *TaggedCellPtr) GetPtr() TaggedPtr { return c.ptr }
