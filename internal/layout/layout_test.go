package layout

import "testing"

func TestIsPowerOfTwo(t *testing.T) {
	tests := []struct {
		input    uintptr
		expected bool
	}{
		{0, false},
		{1, true},
		{2, true},
		{3, false},
		{4, true},
		{5, false},
		{8, true},
		{15, false},
		{16, true},
		{1 << 15, true},
	}

	for _, tt := range tests {
		if got := IsPowerOfTwo(tt.input); got != tt.expected {
			t.Errorf("IsPowerOfTwo(%d): expected %v, got %v", tt.input, tt.expected, got)
		}
	}
}

func TestAlignUp(t *testing.T) {
	tests := []struct {
		value     uintptr
		alignment uintptr
		expected  uintptr
	}{
		{0, 8, 0},
		{1, 1, 1},
		{1, 2, 2},
		{1, 4, 4},
		{5, 4, 8},
		{8, 4, 8},
		{9, 4, 12},
		{9, 16, 16},
		{16, 16, 16},
		{17, 16, 32},
	}

	for _, tt := range tests {
		if got := AlignUp(tt.value, tt.alignment); got != tt.expected {
			t.Errorf("AlignUp(%d, %d): expected %d, got %d", tt.value, tt.alignment, tt.expected, got)
		}
	}
}

func TestAlignUpDegenerateAlignment(t *testing.T) {
	// An alignment of 0 or 1 is a no-op rounding: callers guard against this
	// with IsPowerOfTwo before relying on real alignment behavior.
	if got := AlignUp(13, 0); got != 13 {
		t.Errorf("AlignUp(13, 0): expected 13, got %d", got)
	}

	if got := AlignUp(13, 1); got != 13 {
		t.Errorf("AlignUp(13, 1): expected 13, got %d", got)
	}
}
