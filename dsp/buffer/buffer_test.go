package buffer

import "testing"

func TestNewZeroFilled(t *testing.T) {
	b := New(8)
	if b.Len() != 8 {
		t.Fatalf("Len() = %d, want 8", b.Len())
	}

	for i, v := range b.Samples() {
		if v != 0 {
			t.Fatalf("sample %d = %g, want 0", i, v)
		}
	}
}

func TestNewNegativeLength(t *testing.T) {
	b := New(-3)
	if b.Len() != 0 {
		t.Fatalf("Len() = %d, want 0", b.Len())
	}
}

func TestFromSliceShares(t *testing.T) {
	s := []float64{1, 2, 3}
	b := FromSlice(s)

	b.Samples()[1] = 9
	if s[1] != 9 {
		t.Fatalf("backing slice = %v, want shared mutation", s)
	}
}

func TestResizeZeroesExposedTail(t *testing.T) {
	b := New(4)
	copy(b.Samples(), []float64{1, 2, 3, 4})

	b.Resize(2)
	b.Resize(4)

	s := b.Samples()
	if s[0] != 1 || s[1] != 2 {
		t.Fatalf("head = %v, want preserved [1 2]", s[:2])
	}

	if s[2] != 0 || s[3] != 0 {
		t.Fatalf("tail = %v, want zeroed", s[2:])
	}
}

func TestResizeGrows(t *testing.T) {
	b := New(2)
	copy(b.Samples(), []float64{5, 6})

	b.Resize(6)

	if b.Len() != 6 {
		t.Fatalf("Len() = %d, want 6", b.Len())
	}

	s := b.Samples()
	if s[0] != 5 || s[1] != 6 {
		t.Fatalf("head = %v, want preserved [5 6]", s[:2])
	}
}

func TestZero(t *testing.T) {
	b := FromSlice([]float64{1, -1, 2})
	b.Zero()

	for i, v := range b.Samples() {
		if v != 0 {
			t.Fatalf("sample %d = %g after Zero, want 0", i, v)
		}
	}
}

func TestPoolReuse(t *testing.T) {
	p := NewPool()

	b := p.Get(16)
	if b.Len() != 16 {
		t.Fatalf("Get(16).Len() = %d, want 16", b.Len())
	}

	b.Samples()[0] = 7
	p.Put(b)

	b2 := p.Get(16)
	for i, v := range b2.Samples() {
		if v != 0 {
			t.Fatalf("pooled buffer sample %d = %g, want zeroed", i, v)
		}
	}

	p.Put(b2)
	p.Put(nil)
}
