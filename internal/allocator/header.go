package allocator

// Mark is an object's tri-state garbage-collection mark. Every object is
// Allocated on creation; a future collector would flip allocated objects it
// still reaches to Marked during a trace, and reclaim whatever is left
// Unmarked.
type Mark uint8

const (
	MarkAllocated Mark = iota
	MarkUnmarked
	MarkMarked
)

// SizeClass buckets an allocation by its total size (header + payload).
type SizeClass uint8

const (
	SizeClassSmall SizeClass = iota
	SizeClassMedium
	SizeClassLarge
)

// SizeClassFor classifies a total allocation size, or reports ErrBadRequest
// if the size falls outside every known range.
func SizeClassFor(size uintptr) (SizeClass, error) {
	switch {
	case size >= SmallObjectMin && size <= SmallObjectMax:
		return SizeClassSmall, nil
	case size >= MediumObjectMin && size <= MediumObjectMax:
		return SizeClassMedium, nil
	case size >= LargeObjectMin && size <= LargeObjectMax:
		return SizeClassLarge, nil
	default:
		return 0, ErrBadRequest
	}
}

// TypeID identifies a managed object's concrete type. ArrayTypeID is
// reserved for raw array backing bytes: like the header enum it was
// ported from, no Value decoder ever dispatches on it — array contents are
// opaque to the allocator and interpreted entirely by the caller.
type TypeID uint16

const ArrayTypeID TypeID = 0

// Typed is implemented by every managed concrete type so it can be
// allocated through Alloc. It plays the role the original allocator gives
// a compile-time associated constant: Go has no per-type constants, so the
// type tag is recovered from a method on the value itself.
type Typed interface {
	TypeID() TypeID
}

// ObjectHeader immediately precedes every managed allocation's payload.
type ObjectHeader struct {
	sizeBytes uint32
	typeID    TypeID
	sizeClass SizeClass
	mark      Mark
}

func newObjectHeader[T Typed](object T, sizeBytes uint32, sizeClass SizeClass, mark Mark) ObjectHeader {
	return ObjectHeader{sizeBytes: sizeBytes, typeID: object.TypeID(), sizeClass: sizeClass, mark: mark}
}

func newArrayHeader(sizeBytes uint32, sizeClass SizeClass, mark Mark) ObjectHeader {
	return ObjectHeader{sizeBytes: sizeBytes, typeID: ArrayTypeID, sizeClass: sizeClass, mark: mark}
}

// SetMarked flips the mark bit to Marked, as a tracing collector would
// during its mark phase.
func (h *ObjectHeader) SetMarked() { h.mark = MarkMarked }

// IsMarked reports whether the object has been marked reachable.
func (h *ObjectHeader) IsMarked() bool { return h.mark == MarkMarked }

// SizeClassOf returns the header's recorded size class.
func (h *ObjectHeader) SizeClassOf() SizeClass { return h.sizeClass }

// SizeOf returns the payload size in bytes, excluding the header itself.
func (h *ObjectHeader) SizeOf() uint32 { return h.sizeBytes }

// TypeIDOf returns the header's recorded type tag.
func (h *ObjectHeader) TypeIDOf() TypeID { return h.typeID }
