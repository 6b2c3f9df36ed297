package testutil

import (
	"math"
	"testing"
)

func TestDeterministicSine(t *testing.T) {
	s := DeterministicSine(1000, 48000, 0.5, 48)

	if s[0] != 0 {
		t.Fatalf("s[0] = %v, want 0", s[0])
	}
	// Quarter period of 1 kHz at 48 kHz is 12 samples.
	RequireNearlyEqual(t, "s[12]", s[12], 0.5, 1e-12)
	RequireNearlyEqual(t, "s[36]", s[36], -0.5, 1e-12)
}

func TestDeterministicNoiseReproducible(t *testing.T) {
	a := DeterministicNoise(7, 0.5, 256)
	b := DeterministicNoise(7, 0.5, 256)
	RequireSliceNearlyEqual(t, a, b, 0)

	for i, v := range a {
		if math.Abs(v) > 0.5 {
			t.Fatalf("index %d: %v outside amplitude", i, v)
		}
	}

	c := DeterministicNoise(8, 0.5, 256)
	same := true
	for i := range a {
		if a[i] != c[i] {
			same = false
			break
		}
	}
	if same {
		t.Fatal("different seeds produced identical noise")
	}
}

func TestDC(t *testing.T) {
	RequireSliceNearlyEqual(t, DC(0.25, 3), []float64{0.25, 0.25, 0.25}, 0)
}

type constRenderer float64

func (c constRenderer) Render(left, right []float64) {
	for i := range left {
		left[i] = float64(c)
		right[i] = -float64(c)
	}
}

func TestRender(t *testing.T) {
	left, right := Render(constRenderer(0.5), 4)
	RequireSliceNearlyEqual(t, left, DC(0.5, 4), 0)
	RequireSliceNearlyEqual(t, right, DC(-0.5, 4), 0)
	RequireAudible(t, left, 0.1)
}
