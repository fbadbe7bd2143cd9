package memory

import (
	"testing"

	"github.com/orizon-lang/stickyheap/internal/allocator"
)

type testPair struct {
	car, cdr TaggedPtr
}

func TestTaggedPtrNil(t *testing.T) {
	fat := NilPtr.ToFatPtr()
	if fat.Kind != KindNil {
		t.Fatalf("expected KindNil, got %v", fat.Kind)
	}

	if fat.ToTaggedPtr() != NilPtr {
		t.Error("nil FatPtr did not round-trip to NilPtr")
	}
}

func TestTaggedPtrNumberRoundTrip(t *testing.T) {
	// 0 is deliberately excluded: NumberPtr(0) has the same bit pattern as
	// NilPtr (tag 0, no payload bits set), so it decodes as KindNil rather
	// than KindNumber. The packed encoding can't tell them apart.
	for _, v := range []int64{1, -1, 12345, -12345, 1 << 40, -(1 << 40)} {
		ptr := NumberPtr(v)
		fat := ptr.ToFatPtr()

		if fat.Kind != KindNumber {
			t.Fatalf("value %d: expected KindNumber, got %v", v, fat.Kind)
		}

		if fat.Number != v {
			t.Errorf("value %d: decoded as %d", v, fat.Number)
		}

		if fat.ToTaggedPtr() != ptr {
			t.Errorf("value %d: FatPtr did not round-trip to the same TaggedPtr", v)
		}
	}
}

func TestTaggedPtrSymbolRoundTrip(t *testing.T) {
	var sym Symbol

	raw := NewRawPtr(&sym)
	ptr := SymbolPtr(raw)

	fat := ptr.ToFatPtr()
	if fat.Kind != KindSymbol {
		t.Fatalf("expected KindSymbol, got %v", fat.Kind)
	}

	if fat.Addr != raw.AsWord() {
		t.Errorf("expected addr 0x%x, got 0x%x", raw.AsWord(), fat.Addr)
	}

	if fat.ToTaggedPtr() != ptr {
		t.Error("symbol FatPtr did not round-trip to the same TaggedPtr")
	}
}

func TestTaggedPtrPairRoundTrip(t *testing.T) {
	var pair testPair

	raw := NewRawPtr(&pair)
	ptr := PairPtr(raw)

	fat := ptr.ToFatPtr()
	if fat.Kind != KindPair {
		t.Fatalf("expected KindPair, got %v", fat.Kind)
	}

	if fat.ToTaggedPtr() != ptr {
		t.Error("pair FatPtr did not round-trip to the same TaggedPtr")
	}
}

func TestTaggedPtrObjectRoundTrip(t *testing.T) {
	h := allocator.NewHeap()
	defer h.Release()

	ptr, err := allocator.Alloc(h, testObject{n: 7})
	if err != nil {
		t.Fatalf("alloc failed: %v", err)
	}

	tagged := ObjectPtr(NewRawPtr(ptr))

	fat := tagged.ToFatPtr()
	if fat.Kind != KindObject {
		t.Fatalf("expected KindObject, got %v", fat.Kind)
	}

	if fat.Header.TypeIDOf() != (testObject{}).TypeID() {
		t.Errorf("expected type id %d, got %d", testObject{}.TypeID(), fat.Header.TypeIDOf())
	}

	if fat.ToTaggedPtr() != tagged {
		t.Error("object FatPtr did not round-trip to the same TaggedPtr")
	}
}

type testObject struct {
	n int64
}

func (testObject) TypeID() allocator.TypeID { return 42 }
