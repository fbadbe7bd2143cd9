package allocator

// allocAlignMask masks an offset down to the nearest multiple of
// AllocAlignBytes. AllocAlignBytes is a power of two, so a single AND does
// the rounding; unlike layout.AlignUp, which rounds up, this rounds down.
const allocAlignMask = ^uintptr(AllocAlignBytes - 1)

// BumpBlock owns one RawBlock and its BlockMeta, and hands out space by
// bumping a cursor downward toward a limit. Object offsets are relative to
// the block's base; the first BlockCapacity bytes hold objects, the final
// LineCount bytes hold line marks.
type BumpBlock struct {
	cursor uintptr
	limit  uintptr
	block  RawBlock
	meta   BlockMeta
}

// newBumpBlock acquires a fresh RawBlock and positions the bump cursor at
// the top of the object region, with no holes yet discovered below it.
func newBumpBlock() (*BumpBlock, error) {
	raw, err := newRawBlock(BlockSize)
	if err != nil {
		return nil, err
	}

	return &BumpBlock{
		cursor: BlockCapacity,
		limit:  0,
		block:  raw,
		meta:   newBlockMeta(raw.Bytes()),
	}, nil
}

// InnerAlloc finds a hole of at least allocSize bytes and returns a pointer
// to it, or found=false if this block has no sufficiently large hole.
func (b *BumpBlock) InnerAlloc(allocSize uintptr) (ptr uintptr, found bool) {
	if allocSize > b.cursor {
		return 0, false
	}

	nextPtr := (b.cursor - allocSize) & allocAlignMask

	if nextPtr < b.limit {
		if b.limit > 0 {
			if high, low, ok := b.meta.FindNextAvailableHole(int(b.limit), int(allocSize)); ok {
				b.cursor = uintptr(high)
				b.limit = uintptr(low)
				return b.InnerAlloc(allocSize)
			}
		}

		return 0, false
	}

	b.cursor = nextPtr

	return b.block.Base() + b.cursor, true
}

// CurrentHoleSize returns the size, in bytes, of the hole the block is
// currently positioned at.
func (b *BumpBlock) CurrentHoleSize() uintptr {
	return b.cursor - b.limit
}

// Meta exposes the block's line-mark metadata, for the mark phase a future
// collector would drive.
func (b *BumpBlock) Meta() BlockMeta { return b.meta }

// Release returns the block's backing memory to the platform.
func (b *BumpBlock) Release() { b.block.Release() }
