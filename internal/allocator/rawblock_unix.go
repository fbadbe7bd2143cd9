//go:build unix

package allocator

import (
	"fmt"

	"golang.org/x/sys/unix"
)

// acquireAligned mmaps an anonymous, private region of 2*size bytes, then
// unmaps the unused head and tail slack around the size-aligned sub-region,
// leaving exactly a size-aligned, size-length mapping. This mirrors the
// posix_memalign-equivalent path the block allocator this package descends
// from relies on, using mmap since Go has no portable posix_memalign binding.
func acquireAligned(size uintptr) ([]byte, error) {
	raw, err := unix.Mmap(-1, 0, int(2*size), unix.PROT_READ|unix.PROT_WRITE, unix.MAP_PRIVATE|unix.MAP_ANON)
	if err != nil {
		return nil, fmt.Errorf("mmap %d bytes: %w: %w", 2*size, err, ErrOOM)
	}

	base := sliceAddr(raw)
	aligned := (base + size - 1) &^ (size - 1)
	lead := aligned - base

	if lead > 0 {
		if err := unix.Munmap(raw[:lead]); err != nil {
			_ = unix.Munmap(raw)
			return nil, fmt.Errorf("munmap %d leading bytes: %w: %w", lead, err, ErrOOM)
		}
	}

	mem := raw[lead : lead+size]

	tailStart := lead + size
	if tail := raw[tailStart:]; len(tail) > 0 {
		if err := unix.Munmap(tail); err != nil {
			_ = unix.Munmap(mem)
			return nil, fmt.Errorf("munmap %d trailing bytes: %w: %w", len(tail), err, ErrOOM)
		}
	}

	return mem, nil
}

// releaseAligned unmaps the block acquired by acquireAligned.
func releaseAligned(mem []byte) {
	if len(mem) == 0 {
		return
	}

	_ = unix.Munmap(mem)
}
