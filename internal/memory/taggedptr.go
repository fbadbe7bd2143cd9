package memory

import (
	"unsafe"

	"github.com/orizon-lang/stickyheap/internal/allocator"
)

// TaggedPtr is a single machine word interpreted one of five ways by its
// low 2 bits: the nil sentinel, an inline signed integer, or a pointer to a
// symbol, pair cell, or any other header-prefixed managed object.
type TaggedPtr uintptr

// NilPtr is the sentinel tagged pointer: all bits zero.
const NilPtr TaggedPtr = 0

// IsNil reports whether t is the nil sentinel.
func (t TaggedPtr) IsNil() bool { return t == 0 }

// NumberPtr encodes an inline signed integer as a TaggedPtr. The value is
// shifted left by 2 into the tag-0 encoding; callers are responsible for
// ensuring it fits the available bits (word size minus 2).
func NumberPtr(value int64) TaggedPtr {
	return TaggedPtr(uintptr(value) << 2)
}

// SymbolPtr tags a pointer to an interned symbol.
func SymbolPtr[T any](p RawPtr[T]) TaggedPtr {
	return TaggedPtr(Tag(p, tagSymbol))
}

// PairPtr tags a pointer to a pair cell.
func PairPtr[T any](p RawPtr[T]) TaggedPtr {
	return TaggedPtr(Tag(p, tagPair))
}

// ObjectPtr tags a pointer to any other header-prefixed managed object.
func ObjectPtr[T any](p RawPtr[T]) TaggedPtr {
	return TaggedPtr(Tag(p, tagObject))
}

// Kind discriminates a FatPtr's variant.
type Kind uint8

const (
	KindNil Kind = iota
	KindNumber
	KindSymbol
	KindPair
	KindObject
)

// FatPtr is TaggedPtr unpacked into a discriminated, type-safe form. Unlike
// the closed sum type it is ported from, Go has no closed cross-package
// enum: the core only knows Nil/Number/Symbol/Pair by name, and recovers
// everything else behind the single open Object variant, carrying the
// object's header and payload address for a consumer-supplied decoder
// (RegisterObjectKind / DecodeObject) to interpret further.
type FatPtr struct {
	Header *allocator.ObjectHeader
	Kind   Kind
	Number int64
	Addr   uintptr
}

// ToFatPtr decodes a TaggedPtr into its unpacked form. An unrecognized tag
// is a fatal invariant violation — the tagged-pointer scheme only has four
// values to dispatch on, so reaching the default case means heap state is
// already corrupt.
func (t TaggedPtr) ToFatPtr() FatPtr {
	word := uintptr(t)
	if word == 0 {
		return FatPtr{Kind: KindNil}
	}

	switch tagOf(word) {
	case tagNumber:
		return FatPtr{Kind: KindNumber, Number: int64(word) >> 2}
	case tagSymbol:
		return FatPtr{Kind: KindSymbol, Addr: word &^ tagMask}
	case tagPair:
		return FatPtr{Kind: KindPair, Addr: word &^ tagMask}
	case tagObject:
		addr := word &^ tagMask
		header := allocator.GetHeader(unsafe.Pointer(addr))

		return FatPtr{Kind: KindObject, Addr: addr, Header: header}
	default:
		panic("memory: unreachable tagged pointer tag")
	}
}

// ToTaggedPtr re-encodes a FatPtr as a packed TaggedPtr.
func (f FatPtr) ToTaggedPtr() TaggedPtr {
	switch f.Kind {
	case KindNil:
		return NilPtr
	case KindNumber:
		return NumberPtr(f.Number)
	case KindSymbol:
		return TaggedPtr(f.Addr | tagSymbol)
	case KindPair:
		return TaggedPtr(f.Addr | tagPair)
	case KindObject:
		return TaggedPtr(f.Addr | tagObject)
	default:
		panic("memory: unreachable FatPtr kind")
	}
}

// ObjectDecoder reconstructs a consumer-level value from a recovered
// object header and payload address. Registered per allocator.TypeID.
type ObjectDecoder func(header *allocator.ObjectHeader, addr uintptr) any

var objectDecoders = map[allocator.TypeID]ObjectDecoder{}

// RegisterObjectKind lets a consumer plug a decoder in for one of its own
// managed types, keyed by the allocator.TypeID it allocates objects under.
// This is the registry-based substitute for the exhaustive match a closed
// sum type would give the core: every header type is still handled exactly
// once, just at registration time rather than compile time.
func RegisterObjectKind(id allocator.TypeID, decode ObjectDecoder) {
	objectDecoders[id] = decode
}

// DecodeObject runs the registered decoder for f's header type, if any. It
// reports false if f is not a KindObject FatPtr or no decoder is registered
// for its type id.
func DecodeObject(f FatPtr) (any, bool) {
	if f.Kind != KindObject {
		return nil, false
	}

	decode, ok := objectDecoders[f.Header.TypeIDOf()]
	if !ok {
		return nil, false
	}

	return decode(f.Header, f.Addr), true
}
