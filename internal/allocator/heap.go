package allocator

import (
	"fmt"
	"log"
	"unsafe"

	"github.com/orizon-lang/stickyheap/internal/layout"
)

var headerSize = unsafe.Sizeof(ObjectHeader{})

const wordSize = unsafe.Sizeof(uintptr(0))

// allocSizeOf rounds a total allocation size (header + payload) up to a
// machine-word boundary, so every payload starts word-aligned.
func allocSizeOf(size uintptr) uintptr {
	return layout.AlignUp(size, wordSize)
}

// blockList is the head/overflow/rest triad a Heap routes allocations
// through. head takes small objects and any medium object that fits its
// current hole; overflow absorbs medium objects that don't; rest collects
// retired blocks, awaiting a future collector.
type blockList struct {
	head     *BumpBlock
	overflow *BumpBlock
	rest     []*BumpBlock
}

func (bl *blockList) overflowAlloc(allocSize uintptr) (uintptr, error) {
	if allocSize > BlockCapacity {
		panic("allocator: overflow allocation request exceeds block capacity")
	}

	if bl.overflow == nil {
		overflow, err := newBumpBlock()
		if err != nil {
			return 0, fmt.Errorf("allocate first overflow block: %w", err)
		}

		space, found := overflow.InnerAlloc(allocSize)
		if !found {
			panic("allocator: unexpected failure to fit into a fresh block")
		}

		bl.overflow = overflow
		log.Printf("allocator: overflow block allocated")

		return space, nil
	}

	if space, found := bl.overflow.InnerAlloc(allocSize); found {
		return space, nil
	}

	fresh, err := newBumpBlock()
	if err != nil {
		return 0, fmt.Errorf("allocate replacement overflow block: %w", err)
	}

	bl.rest = append(bl.rest, bl.overflow)
	bl.overflow = fresh
	log.Printf("allocator: overflow block retired, %d block(s) now in rest", len(bl.rest))

	space, found := fresh.InnerAlloc(allocSize)
	if !found {
		panic("allocator: unexpected failure to fit into a fresh block")
	}

	return space, nil
}

// Stats reports read-only heap telemetry: how many blocks live in each slot
// of the block list, and how many bytes have been handed out so far.
type Stats struct {
	HeadBlocks     int
	OverflowBlocks int
	RestBlocks     int
	BytesAllocated uint64
}

// Heap is a StickyImmix-style block allocator: it owns a blockList and
// routes each alloc request to the right block by size class, growing the
// block set on demand. It is not safe for concurrent use — mutation is
// assumed to come from a single mutator, per the memory layer above it.
type Heap struct {
	blocks         blockList
	bytesAllocated uint64
}

// NewHeap returns an empty Heap. No block is allocated until the first
// Alloc or AllocArray call.
func NewHeap() *Heap {
	return &Heap{}
}

// findSpace locates room for allocSize bytes classified as sizeClass,
// growing or retiring blocks in the list as needed.
func (h *Heap) findSpace(allocSize uintptr, sizeClass SizeClass) (uintptr, error) {
	if sizeClass == SizeClassLarge {
		return 0, fmt.Errorf("allocation of %d bytes classified as large: %w", allocSize, ErrBadRequest)
	}

	if h.blocks.head == nil {
		head, err := newBumpBlock()
		if err != nil {
			return 0, fmt.Errorf("allocate first head block: %w", err)
		}

		space, found := head.InnerAlloc(allocSize)
		if !found {
			panic("allocator: unexpected failure to fit into a fresh block")
		}

		h.blocks.head = head
		log.Printf("allocator: head block allocated")

		return space, nil
	}

	head := h.blocks.head

	if sizeClass == SizeClassMedium && allocSize > head.CurrentHoleSize() {
		space, err := h.blocks.overflowAlloc(allocSize)
		if err != nil {
			return 0, fmt.Errorf("route %d-byte medium allocation to overflow: %w", allocSize, err)
		}

		return space, nil
	}

	if space, found := head.InnerAlloc(allocSize); found {
		return space, nil
	}

	fresh, err := newBumpBlock()
	if err != nil {
		return 0, fmt.Errorf("allocate replacement head block: %w", err)
	}

	h.blocks.rest = append(h.blocks.rest, head)
	h.blocks.head = fresh
	log.Printf("allocator: head block retired, %d block(s) now in rest", len(h.blocks.rest))

	space, found := fresh.InnerAlloc(allocSize)
	if !found {
		panic("allocator: unexpected failure to fit into a fresh block")
	}

	return space, nil
}

// Alloc writes object's header and value into fresh heap space and returns
// a pointer to the object's (post-header) payload.
func Alloc[T Typed](h *Heap, object T) (*T, error) {
	objectSize := unsafe.Sizeof(object)
	totalSize := headerSize + objectSize
	allocSize := allocSizeOf(totalSize)

	sizeClass, err := SizeClassFor(allocSize)
	if err != nil {
		return nil, fmt.Errorf("classify %d-byte allocation: %w", allocSize, err)
	}

	space, err := h.findSpace(allocSize, sizeClass)
	if err != nil {
		return nil, fmt.Errorf("find space for %d-byte allocation: %w", allocSize, err)
	}

	header := newObjectHeader(object, uint32(objectSize), sizeClass, MarkAllocated)
	*(*ObjectHeader)(unsafe.Pointer(space)) = header

	objectAddr := space + headerSize
	objPtr := (*T)(unsafe.Pointer(objectAddr))
	*objPtr = object

	h.bytesAllocated += uint64(allocSize)

	return objPtr, nil
}

// AllocArray writes an array header into fresh, zero-initialized heap space
// sized sizeBytes and returns a slice over the payload region. The backing
// bytes carry no type information beyond ArrayTypeID; interpreting their
// contents is entirely the caller's responsibility.
func AllocArray(h *Heap, sizeBytes uint32) ([]byte, error) {
	totalSize := headerSize + uintptr(sizeBytes)
	allocSize := allocSizeOf(totalSize)

	sizeClass, err := SizeClassFor(allocSize)
	if err != nil {
		return nil, fmt.Errorf("classify %d-byte array allocation: %w", allocSize, err)
	}

	space, err := h.findSpace(allocSize, sizeClass)
	if err != nil {
		return nil, fmt.Errorf("find space for %d-byte array allocation: %w", allocSize, err)
	}

	header := newArrayHeader(sizeBytes, sizeClass, MarkAllocated)
	*(*ObjectHeader)(unsafe.Pointer(space)) = header

	arrayAddr := space + headerSize
	array := unsafe.Slice((*byte)(unsafe.Pointer(arrayAddr)), sizeBytes)

	for i := range array {
		array[i] = 0
	}

	h.bytesAllocated += uint64(allocSize)

	return array, nil
}

// GetHeader recovers the ObjectHeader immediately preceding an object's
// payload address.
func GetHeader(objectAddr unsafe.Pointer) *ObjectHeader {
	return (*ObjectHeader)(unsafe.Pointer(uintptr(objectAddr) - headerSize))
}

// GetObject recovers a header's object payload address.
func GetObject(header *ObjectHeader) unsafe.Pointer {
	return unsafe.Pointer(uintptr(unsafe.Pointer(header)) + headerSize)
}

// Stats returns a snapshot of the heap's current block counts and bytes
// allocated, for diagnostics.
func (h *Heap) Stats() Stats {
	s := Stats{RestBlocks: len(h.blocks.rest), BytesAllocated: h.bytesAllocated}

	if h.blocks.head != nil {
		s.HeadBlocks = 1
	}

	if h.blocks.overflow != nil {
		s.OverflowBlocks = 1
	}

	return s
}

// Release returns every block this heap owns to the platform. The heap
// must not be used afterward.
func (h *Heap) Release() {
	if h.blocks.head != nil {
		h.blocks.head.Release()
	}

	if h.blocks.overflow != nil {
		h.blocks.overflow.Release()
	}

	for _, b := range h.blocks.rest {
		b.Release()
	}
}
