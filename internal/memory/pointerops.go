package memory

import "github.com/orizon-lang/stickyheap/internal/allocator"

// tagMask isolates the low 2 bits of a tagged word; ptrMask clears them.
const (
	tagMask uintptr = 0x3
	ptrMask uintptr = ^tagMask
)

// tagOf extracts the low-2-bit tag from a tagged machine word.
func tagOf(word uintptr) uintptr {
	return word & tagMask
}

// Tag sets tag in the low 2 bits of a pointer's address. The pointer must
// already be at least 4-byte aligned, which every heap allocation is.
func Tag[T any](p RawPtr[T], tag uintptr) uintptr {
	return p.AsWord() | tag
}

// Untag clears the low 2 bits of a tagged word and rewraps it as a RawPtr.
func Untag[T any](word uintptr) RawPtr[T] {
	return RawPtrFromWord[T](word & ptrMask)
}

// Tag values for the low 2 bits of a TaggedPtr word, shared with
// internal/allocator's own copy so both layers agree on one encoding.
const (
	tagNumber = uintptr(allocator.TagNumber)
	tagSymbol = uintptr(allocator.TagSymbol)
	tagPair   = uintptr(allocator.TagPair)
	tagObject = uintptr(allocator.TagObject)
)
