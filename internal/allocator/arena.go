package allocator

import (
	"fmt"
	"log"
	"unsafe"
)

// arenaHeaderSize is the minimal header an Arena writes before each
// allocation: a single always-marked byte, standing in for the full
// ObjectHeader the regular Heap uses, padded out to a machine word so the
// payload after it stays word-aligned. Arena allocations are never
// collected, so there is nothing for a real header to track.
const arenaHeaderSize = wordSize

// Arena is a specialization of Heap that never collects: its allocations
// live for the process's lifetime and are never reclaimed. It reuses the
// same BumpBlock/blockList machinery as Heap, but skips the mark/size-class/
// type-id bookkeeping a collectible heap needs — GetHeader/GetObject are
// meaningless here and intentionally unsupported.
type Arena struct {
	blocks blockList
}

// NewArena returns an empty Arena.
func NewArena() *Arena {
	return &Arena{}
}

func (a *Arena) findSpace(allocSize uintptr) (uintptr, error) {
	if allocSize > BlockCapacity {
		return 0, fmt.Errorf("arena allocation of %d bytes exceeds block capacity %d: %w", allocSize, uintptr(BlockCapacity), ErrBadRequest)
	}

	if a.blocks.head == nil {
		head, err := newBumpBlock()
		if err != nil {
			return 0, fmt.Errorf("allocate first arena block: %w", err)
		}

		space, found := head.InnerAlloc(allocSize)
		if !found {
			panic("allocator: unexpected failure to fit into a fresh arena block")
		}

		a.blocks.head = head
		log.Printf("allocator: arena grew to 1 block")

		return space, nil
	}

	if space, found := a.blocks.head.InnerAlloc(allocSize); found {
		return space, nil
	}

	fresh, err := newBumpBlock()
	if err != nil {
		return 0, fmt.Errorf("allocate replacement arena block: %w", err)
	}

	a.blocks.rest = append(a.blocks.rest, a.blocks.head)
	a.blocks.head = fresh
	log.Printf("allocator: arena grew to %d blocks", len(a.blocks.rest)+1)

	space, found := fresh.InnerAlloc(allocSize)
	if !found {
		panic("allocator: unexpected failure to fit into a fresh arena block")
	}

	return space, nil
}

// AllocArena writes object into fresh arena space, behind the one-byte
// always-marked marker, and returns a pointer to it. The allocation is
// never reclaimed.
func AllocArena[T any](a *Arena, object T) (*T, error) {
	objectSize := unsafe.Sizeof(object)
	allocSize := allocSizeOf(arenaHeaderSize + objectSize)

	space, err := a.findSpace(allocSize)
	if err != nil {
		return nil, fmt.Errorf("find arena space for %d-byte allocation: %w", allocSize, err)
	}

	*(*byte)(unsafe.Pointer(space)) = 1

	objPtr := (*T)(unsafe.Pointer(space + arenaHeaderSize))
	*objPtr = object

	return objPtr, nil
}

// Release returns every block this arena owns to the platform. The arena
// must not be used afterward.
func (a *Arena) Release() {
	if a.blocks.head != nil {
		a.blocks.head.Release()
	}

	for _, b := range a.blocks.rest {
		b.Release()
	}
}
