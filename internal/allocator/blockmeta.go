package allocator

// BlockMeta is the per-block line mark bitmap. It is a view onto the last
// LineCount bytes of a block's backing storage: the last byte of that
// range doubles as the whole-block mark flag, since no object ever occupies
// the line it belongs to.
type BlockMeta struct {
	lines []byte
}

// newBlockMeta returns a BlockMeta over the mark bytes living in the tail of
// blockBytes (which must be at least BlockSize long), and resets them.
func newBlockMeta(blockBytes []byte) BlockMeta {
	m := BlockMeta{lines: blockBytes[LineMarkStart : LineMarkStart+LineCount]}
	m.Reset()

	return m
}

// MarkLine marks the line at index as in-use.
func (m BlockMeta) MarkLine(index int) {
	m.lines[index] = 1
}

// MarkBlock marks the entire block as in-use, via the reserved last line
// mark byte.
func (m BlockMeta) MarkBlock() {
	m.lines[LineCount-1] = 1
}

// Reset clears every line mark.
func (m BlockMeta) Reset() {
	for i := range m.lines {
		m.lines[i] = 0
	}
}

// FindNextAvailableHole searches for the next usable hole below
// startingAt, walking line marks downward from (startingAt/LineSize - 1) to
// zero, and returns the hole's (high, low) byte offsets. The line
// immediately above a marked run is conservatively treated as marked, since
// the mark bitmap cannot tell how far into its line a preceding object
// extends. Returns found=false if no hole of sufficient size exists.
func (m BlockMeta) FindNextAvailableHole(startingAt, allocSize int) (high, low int, found bool) {
	count := 0
	startingLine := startingAt / LineSize
	linesRequired := (allocSize + LineSize - 1) / LineSize
	end := startingLine

	for index := startingLine - 1; index >= 0; index-- {
		if m.lines[index] == 0 {
			count++

			if index == 0 && count >= linesRequired {
				return end * LineSize, index * LineSize, true
			}

			continue
		}

		if count > linesRequired {
			return end * LineSize, (index + 2) * LineSize, true
		}

		count = 0
		end = index
	}

	return 0, 0, false
}
