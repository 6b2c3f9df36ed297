package biquad

import (
	"math"
	"testing"
)

// tolerance for floating-point comparisons.
const eps = 1e-12

func almostEqual(a, b, tol float64) bool {
	return math.Abs(a-b) <= tol
}

func TestProcessSample_Passthrough(t *testing.T) {
	s := NewSection(Passthrough())
	input := []float64{1, 0, -1, 0.5, 0.25}
	for i, x := range input {
		y := s.ProcessSample(x)
		if !almostEqual(y, x, eps) {
			t.Errorf("sample %d: got %v, want %v", i, y, x)
		}
	}
	if !s.IsPassthrough() {
		t.Fatal("expected passthrough coefficients")
	}
}

func TestProcessSample_DFIIT(t *testing.T) {
	// Hand-traced with B0=0.25, B1=0.5, B2=0.25, A1=-0.2, A2=0.04 and an impulse.
	c := Coefficients{B0: 0.25, B1: 0.5, B2: 0.25, A1: -0.2, A2: 0.04}
	s := NewSection(c)

	want := []float64{0.25, 0.55, 0.35, 0.048}
	for i, w := range want {
		var x float64
		if i == 0 {
			x = 1
		}
		y := s.ProcessSample(x)
		if !almostEqual(y, w, eps) {
			t.Errorf("sample %d: got %.15f, want %.15f", i, y, w)
		}
	}
}

func TestProcessBlock_MatchesSample(t *testing.T) {
	c := Coefficients{B0: 0.25, B1: 0.5, B2: 0.25, A1: -0.2, A2: 0.04}

	for _, n := range []int{0, 1, 8, 9} {
		s1 := NewSection(c)
		input := make([]float64, n)
		for i := range input {
			input[i] = math.Sin(float64(i) * 0.7)
		}
		ref := make([]float64, n)
		for i, x := range input {
			ref[i] = s1.ProcessSample(x)
		}

		s2 := NewSection(c)
		block := make([]float64, n)
		copy(block, input)
		s2.ProcessBlock(block)

		for i := range block {
			if !almostEqual(block[i], ref[i], eps) {
				t.Fatalf("n=%d sample %d: ProcessBlock=%.15f, ProcessSample=%.15f", n, i, block[i], ref[i])
			}
		}
		if s1.State() != s2.State() {
			t.Fatalf("n=%d state mismatch: %v vs %v", n, s1.State(), s2.State())
		}
	}
}

func TestSetCoefficientsKeepsState(t *testing.T) {
	s := NewSection(Coefficients{B0: 0.25, B1: 0.5, B2: 0.25, A1: -0.2, A2: 0.04})
	s.ProcessSample(1)
	before := s.State()

	s.SetCoefficients(Coefficients{B0: 0.5, B1: 0.25})
	if s.State() != before {
		t.Fatalf("state changed on coefficient swap: %v -> %v", before, s.State())
	}
	if s.B0 != 0.5 {
		t.Fatalf("B0 = %v, want 0.5", s.B0)
	}
}

func TestReset(t *testing.T) {
	s := NewSection(Coefficients{B0: 0.25, B1: 0.5, B2: 0.25, A1: -0.2, A2: 0.04})
	s.ProcessSample(1)
	s.ProcessSample(0.5)

	if s.State() == [2]float64{0, 0} {
		t.Fatal("state should be non-zero after processing")
	}

	s.Reset()
	if st := s.State(); st != [2]float64{0, 0} {
		t.Fatalf("state after reset = %v, want zero", st)
	}
}

func TestMagnitudeDBPassthrough(t *testing.T) {
	c := Passthrough()
	for _, f := range []float64{10, 1000, 20000} {
		if got := c.MagnitudeDB(f, 48000); !almostEqual(got, 0, 1e-9) {
			t.Fatalf("MagnitudeDB(%v) = %v, want 0", f, got)
		}
	}
}
