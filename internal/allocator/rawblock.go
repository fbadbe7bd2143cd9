package allocator

import (
	"fmt"

	"github.com/orizon-lang/stickyheap/internal/layout"
)

// RawBlock is one OS-backed allocation of exactly size bytes, aligned to
// size. size must be a positive power of two. Ownership is exclusive to
// whoever holds the RawBlock value; Release frees the backing memory and
// must be called at most once.
type RawBlock struct {
	ptr  []byte
	size uintptr
}

// newRawBlock validates size and delegates to the platform-specific
// acquisition routine (acquireAligned, defined in rawblock_unix.go or
// rawblock_fallback.go).
func newRawBlock(size uintptr) (RawBlock, error) {
	if size == 0 || !layout.IsPowerOfTwo(size) {
		return RawBlock{}, fmt.Errorf("raw block size %d: %w", size, ErrBadRequest)
	}

	mem, err := acquireAligned(size)
	if err != nil {
		return RawBlock{}, fmt.Errorf("acquire raw block of size %d: %w", size, err)
	}

	base := sliceAddr(mem)
	if base&(size-1) != 0 {
		releaseAligned(mem)
		return RawBlock{}, fmt.Errorf("raw block base 0x%x not aligned to size %d: %w", base, size, ErrOOM)
	}

	return RawBlock{ptr: mem, size: size}, nil
}

// Size returns the block's size in bytes.
func (b RawBlock) Size() uintptr { return b.size }

// Base returns the block's base address as a machine word.
func (b RawBlock) Base() uintptr { return sliceAddr(b.ptr) }

// Bytes exposes the block's backing storage directly.
func (b RawBlock) Bytes() []byte { return b.ptr }

// Release returns the block's memory to the platform. Calling it twice, or
// using the RawBlock afterward, is undefined behavior exactly as it is for
// the allocator this was ported from.
func (b RawBlock) Release() {
	releaseAligned(b.ptr)
}
