package rng

import "testing"

func TestSameSeedSameStream(t *testing.T) {
	a := New(42)
	b := New(42)

	for i := 0; i < 100; i++ {
		if x, y := a.Randn(1000), b.Randn(1000); x != y {
			t.Fatalf("draw %d differs: %d vs %d", i, x, y)
		}
	}
}

func TestSeedRewinds(t *testing.T) {
	s := New(7)
	first := []int{s.Randn(100), s.Randn(100), s.Randn(100)}

	s.Seed(7)
	for i, want := range first {
		if got := s.Randn(100); got != want {
			t.Errorf("draw %d after reseed = %d, expected %d", i, got, want)
		}
	}
}

func TestRandnBounds(t *testing.T) {
	s := New(1)
	for i := 0; i < 1000; i++ {
		v := s.Randn(6)
		if v < 0 || v >= 6 {
			t.Fatalf("Randn(6) = %d, out of range", v)
		}
	}
	if s.Randn(0) != 0 {
		t.Error("Randn(0) should be 0")
	}
	if s.Randn(-3) != 0 {
		t.Error("Randn(-3) should be 0")
	}
}

func TestRand01Range(t *testing.T) {
	s := New(3)
	for i := 0; i < 1000; i++ {
		v := s.Rand01()
		if v < 0 || v >= 1 {
			t.Fatalf("Rand01() = %f, out of range", v)
		}
	}
}

func TestSimpleChooseDistinct(t *testing.T) {
	tests := []struct {
		name string
		n, k int
		want int
	}{
		{"subset", 100, 24, 24},
		{"all", 10, 10, 10},
		{"more than available", 5, 9, 5},
		{"none", 10, 0, 0},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			s := New(99)
			got := s.SimpleChoose(tc.n, tc.k)
			if len(got) != tc.want {
				t.Fatalf("len = %d, expected %d", len(got), tc.want)
			}
			seen := make(map[int]bool)
			for _, v := range got {
				if v < 0 || v >= tc.n {
					t.Errorf("value %d out of [0,%d)", v, tc.n)
				}
				if seen[v] {
					t.Errorf("value %d chosen twice", v)
				}
				seen[v] = true
			}
		})
	}
}

func TestStateRoundTripContinuesStream(t *testing.T) {
	s := New(2024)
	s.Randn(10)
	s.Rand01()

	state, err := s.MarshalBinary()
	if err != nil {
		t.Fatalf("MarshalBinary() failed: %v", err)
	}
	want := []int{s.Randn(1 << 20), s.Randn(1 << 20), s.Randn(1 << 20)}

	restored := New(0)
	if err := restored.UnmarshalBinary(state); err != nil {
		t.Fatalf("UnmarshalBinary() failed: %v", err)
	}
	for i, w := range want {
		if got := restored.Randn(1 << 20); got != w {
			t.Errorf("restored draw %d = %d, expected %d", i, got, w)
		}
	}
}
