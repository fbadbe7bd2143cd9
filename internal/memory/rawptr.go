// Package memory is the logical layer a consumer (a future compiler or VM)
// programs against: tagged pointers, the scope-guarded safe pointer family,
// symbol interning, and the mutator entry point. It never allocates bytes
// itself — everything here is built on top of internal/allocator.
package memory

import "unsafe"

// RawPtr is an untyped-at-rest, typed-on-access pointer into heap memory.
// It carries no lifetime information of its own; that's what ScopedPtr adds.
type RawPtr[T any] struct {
	addr uintptr
}

// NewRawPtr wraps a live *T as a RawPtr.
func NewRawPtr[T any](p *T) RawPtr[T] {
	return RawPtr[T]{addr: uintptr(unsafe.Pointer(p))}
}

// RawPtrFromWord reinterprets a machine word as a RawPtr, with no
// validation — the caller must know the word is a genuine, untagged
// pointer to a live T.
func RawPtrFromWord[T any](word uintptr) RawPtr[T] {
	return RawPtr[T]{addr: word}
}

// AsWord returns the pointer's address as a plain machine word.
func (p RawPtr[T]) AsWord() uintptr { return p.addr }

// AsPtr recovers the typed pointer.
func (p RawPtr[T]) AsPtr() *T { return (*T)(unsafe.Pointer(p.addr)) }

// IsNil reports whether the pointer is the null address.
func (p RawPtr[T]) IsNil() bool { return p.addr == 0 }
