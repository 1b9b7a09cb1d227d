package rng

import "testing"

func TestSameSeedSameSequence(t *testing.T) {
	a := New(12345)
	b := New(12345)

	for i := 0; i < 100; i++ {
		if av, bv := a.Range(0, 255), b.Range(0, 255); av != bv {
			t.Fatalf("draw %d: %d != %d for identical seeds", i, av, bv)
		}
	}
}

func TestDifferentSeedsDiverge(t *testing.T) {
	a := New(1)
	b := New(2)

	same := true
	for i := 0; i < 32; i++ {
		if a.Range(0, 1<<30) != b.Range(0, 1<<30) {
			same = false
			break
		}
	}
	if same {
		t.Error("streams with different seeds produced identical sequences")
	}
}

func TestRangeInclusive(t *testing.T) {
	s := New(42)

	sawMin, sawMax := false, false
	for i := 0; i < 1000; i++ {
		v := s.Range(3, 7)
		if v < 3 || v > 7 {
			t.Fatalf("Range(3, 7) = %d, out of bounds", v)
		}
		if v == 3 {
			sawMin = true
		}
		if v == 7 {
			sawMax = true
		}
	}
	if !sawMin || !sawMax {
		t.Error("Range(3, 7) never hit one of its endpoints in 1000 draws")
	}
}

func TestRangeSwapsArguments(t *testing.T) {
	s := New(7)
	for i := 0; i < 100; i++ {
		v := s.Range(10, 5)
		if v < 5 || v > 10 {
			t.Fatalf("Range(10, 5) = %d, out of bounds", v)
		}
	}
}

func TestOffsetBounds(t *testing.T) {
	s := New(99)
	for i := 0; i < 1000; i++ {
		v := s.Offset(8)
		if v < -8 || v > 8 {
			t.Fatalf("Offset(8) = %d, out of bounds", v)
		}
	}
	if s.Offset(0) != 0 {
		t.Error("Offset(0) should be 0")
	}
}

func TestPercentEdges(t *testing.T) {
	s := New(1)

	for i := 0; i < 50; i++ {
		if s.Percent(0) {
			t.Fatal("Percent(0) should never be true")
		}
		if !s.Percent(100) {
			t.Fatal("Percent(100) should always be true")
		}
	}
}

func TestFloat64HalfOpen(t *testing.T) {
	s := New(3)
	for i := 0; i < 1000; i++ {
		v := s.Float64()
		if v < 0 || v >= 1 {
			t.Fatalf("Float64() = %f, want [0, 1)", v)
		}
	}
}
