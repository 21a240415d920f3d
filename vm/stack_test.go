package vm

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestStackPopEmptyReturnsZero(t *testing.T) {
	s := NewStack()
	for n := 0; n < 3; n++ {
		if v := s.Pop(); v != 0 {
			t.Errorf("Pop() on empty = %d, want 0", v)
		}
	}
	if s.Len() != 0 {
		t.Errorf("Len() = %d, want 0", s.Len())
	}
}

func TestStackPopAfterDraining(t *testing.T) {
	s := NewStack()
	s.Push(4)
	s.Push(7)
	if v := s.Pop(); v != 7 {
		t.Errorf("first Pop() = %d, want 7", v)
	}
	if v := s.Pop(); v != 4 {
		t.Errorf("second Pop() = %d, want 4", v)
	}
	if v := s.Pop(); v != 0 {
		t.Errorf("Pop() after draining = %d, want 0", v)
	}
}

func TestStackDuplicateTop(t *testing.T) {
	s := NewStack()
	s.DuplicateTop()
	if diff := cmp.Diff([]uint32{0, 0}, s.Values()); diff != "" {
		t.Errorf("DuplicateTop on empty (-want +got):\n%s", diff)
	}

	s = NewStack()
	s.Push(5)
	s.DuplicateTop()
	if diff := cmp.Diff([]uint32{5, 5}, s.Values()); diff != "" {
		t.Errorf("DuplicateTop on [5] (-want +got):\n%s", diff)
	}
}

func TestStackSwapTopTwo(t *testing.T) {
	s := NewStack()
	s.SwapTopTwo()
	if diff := cmp.Diff([]uint32{0, 0}, s.Values()); diff != "" {
		t.Errorf("SwapTopTwo on empty (-want +got):\n%s", diff)
	}

	s = NewStack()
	s.Push(7)
	s.SwapTopTwo()
	if diff := cmp.Diff([]uint32{7, 0}, s.Values()); diff != "" {
		t.Errorf("SwapTopTwo on [7] (-want +got):\n%s", diff)
	}

	s = NewStack()
	s.Push(1)
	s.Push(3)
	s.Push(9)
	s.SwapTopTwo()
	if diff := cmp.Diff([]uint32{1, 9, 3}, s.Values()); diff != "" {
		t.Errorf("SwapTopTwo on [1 3 9] (-want +got):\n%s", diff)
	}
}

func TestStackValuesIsCopy(t *testing.T) {
	s := NewStack()
	s.Push(1)
	vals := s.Values()
	vals[0] = 99
	if v := s.Pop(); v != 1 {
		t.Errorf("Pop() = %d after mutating Values copy, want 1", v)
	}
}
