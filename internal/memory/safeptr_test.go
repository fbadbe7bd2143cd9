package memory

import "testing"

type fakeScope struct {
	e int64
}

func (f *fakeScope) epoch() *int64 { return &f.e }

func TestCellPtrGetReflectsLatestSet(t *testing.T) {
	scope := &fakeScope{}

	var a, b int = 1, 2

	cell := NewCellPtr(NewRawPtr(&a))
	if got := cell.Get(scope).Get(); *got != 1 {
		t.Fatalf("expected 1, got %d", *got)
	}

	cell.Set(NewScopedPtr(scope, &b))
	if got := cell.Get(scope).Get(); *got != 2 {
		t.Fatalf("expected 2, got %d", *got)
	}
}

func TestCellPtrSetPanicsWithStaleScopedPtr(t *testing.T) {
	scope := &fakeScope{}

	var a, b int = 1, 2

	cell := NewCellPtr(NewRawPtr(&a))
	stale := NewScopedPtr(scope, &b)

	scope.e++

	defer func() {
		if recover() == nil {
			t.Fatal("expected Set to panic with a ScopedPtr from an ended scope")
		}
	}()

	cell.Set(stale)
}

func TestTaggedCellPtrSetPanicsWithStaleScopedPtr(t *testing.T) {
	scope := &fakeScope{}

	c := NewNilTaggedCellPtr()
	stale := NewTaggedScopedPtr(scope, NumberPtr(7))

	scope.e++

	defer func() {
		if recover() == nil {
			t.Fatal("expected Set to panic with a TaggedScopedPtr from an ended scope")
		}
	}()

	c.Set(stale)
}

func TestScopedPtrPanicsAfterEpochAdvances(t *testing.T) {
	scope := &fakeScope{}

	var v int = 99

	sp := NewScopedPtr(scope, &v)

	scope.e++

	defer func() {
		if recover() == nil {
			t.Fatal("expected Get to panic after epoch advanced")
		}
	}()

	sp.Get()
}

func TestTaggedCellPtrNilAndCopy(t *testing.T) {
	scope := &fakeScope{}

	c := NewNilTaggedCellPtr()
	if !c.IsNil() {
		t.Fatal("expected a fresh TaggedCellPtr to be nil")
	}

	c.Set(NewTaggedScopedPtr(scope, NumberPtr(5)))
	if c.IsNil() {
		t.Fatal("expected cell to be non-nil after Set")
	}

	scoped := c.Get(scope)
	if scoped.Value().Kind() != KindNumber {
		t.Fatalf("expected KindNumber, got %v", scoped.Value().Kind())
	}

	var other TaggedCellPtr

	other.CopyFrom(&c)

	if other.GetPtr() != c.GetPtr() {
		t.Error("expected CopyFrom to duplicate the pointer value")
	}

	c.SetToNil()
	if !c.IsNil() {
		t.Error("expected SetToNil to clear the cell")
	}
}
