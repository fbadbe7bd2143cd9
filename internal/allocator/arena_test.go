package allocator

import (
	"errors"
	"testing"
)

func TestArenaAllocAndRead(t *testing.T) {
	a := NewArena()
	defer a.Release()

	ptr, err := AllocArena(a, testString("sym"))
	if err != nil {
		t.Fatalf("arena alloc failed: %v", err)
	}

	if *ptr != "sym" {
		t.Errorf("expected %q, got %q", "sym", *ptr)
	}
}

func TestArenaAllocManySpansBlocks(t *testing.T) {
	a := NewArena()
	defer a.Release()

	const count = 4096

	ptrs := make([]*testNumber, 0, count)

	for i := 0; i < count; i++ {
		ptr, err := AllocArena(a, testNumber(i))
		if err != nil {
			t.Fatalf("arena alloc %d failed: %v", i, err)
		}

		ptrs = append(ptrs, ptr)
	}

	for i, ptr := range ptrs {
		if *ptr != testNumber(i) {
			t.Fatalf("arena value %d corrupted: expected %d, got %d", i, i, *ptr)
		}
	}

	if len(a.blocks.rest) == 0 {
		t.Error("expected arena to have grown past its first block")
	}
}

func TestArenaTooBig(t *testing.T) {
	a := NewArena()
	defer a.Release()

	_, err := AllocArena(a, testBig{})
	if !errors.Is(err, ErrBadRequest) {
		t.Errorf("expected ErrBadRequest, got %v", err)
	}
}
