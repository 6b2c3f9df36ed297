package dither

import (
	"math"
	"math/rand/v2"
	"testing"
)

func TestNewQuantizerValidation(t *testing.T) {
	tests := []struct {
		name string
		opts []Option
	}{
		{"bit depth too small", []Option{WithBitDepth(1)}},
		{"bit depth too large", []Option{WithBitDepth(33)}},
		{"bad dither type", []Option{WithDitherType(DitherType(99))}},
		{"negative amplitude", []Option{WithDitherAmplitude(-1)}},
		{"NaN amplitude", []Option{WithDitherAmplitude(math.NaN())}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := NewQuantizer(tt.opts...); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestNewQuantizerDefaults(t *testing.T) {
	q, err := NewQuantizer(nil)
	if err != nil {
		t.Fatal(err)
	}
	if q.BitDepth() != 16 {
		t.Errorf("BitDepth() = %d, want 16", q.BitDepth())
	}
	if q.DitherType() != DitherTriangular {
		t.Errorf("DitherType() = %v, want triangular", q.DitherType())
	}
	if q.DitherAmplitude() != 1 {
		t.Errorf("DitherAmplitude() = %v, want 1", q.DitherAmplitude())
	}
	if q.FullScale() != math.MaxInt16 {
		t.Errorf("FullScale() = %d, want %d", q.FullScale(), math.MaxInt16)
	}
}

func TestQuantizeWithoutDither(t *testing.T) {
	q, err := NewQuantizer(WithDitherType(DitherNone))
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		in   float64
		want int
	}{
		{0, 0},
		{1, math.MaxInt16},
		{-1, -math.MaxInt16},
		{0.5, 16384},
		{2, math.MaxInt16},
		{-2, math.MinInt16},
		{math.Inf(1), math.MaxInt16},
		{math.Inf(-1), math.MinInt16},
		{math.NaN(), 0},
	}
	for _, tt := range tests {
		if got := q.Quantize(tt.in); got != tt.want {
			t.Errorf("Quantize(%v) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestQuantizeBitDepths(t *testing.T) {
	for _, bits := range []int{8, 16, 24, 32} {
		q, err := NewQuantizer(WithBitDepth(bits), WithDitherType(DitherNone))
		if err != nil {
			t.Fatal(err)
		}
		want := int(math.Exp2(float64(bits-1))) - 1
		if got := q.Quantize(1); got != want {
			t.Errorf("%d-bit Quantize(1) = %d, want %d", bits, got, want)
		}
	}
}

func TestDitherErrorBounded(t *testing.T) {
	bounds := map[DitherType]float64{
		DitherRectangular: 1,
		DitherTriangular:  1.5,
	}

	for dt, bound := range bounds {
		q, err := NewQuantizer(WithDitherType(dt), WithRNG(rand.New(rand.NewPCG(1, 2))))
		if err != nil {
			t.Fatal(err)
		}
		for i := range 10000 {
			x := math.Sin(float64(i) * 0.01)
			exact := x * float64(q.FullScale())
			if d := math.Abs(float64(q.Quantize(x)) - exact); d > bound {
				t.Fatalf("%v: error %v exceeds %v LSB", dt, d, bound)
			}
		}
	}
}

func TestDitherIsUnbiased(t *testing.T) {
	for _, dt := range []DitherType{DitherRectangular, DitherTriangular, DitherGaussian} {
		q, err := NewQuantizer(WithDitherType(dt), WithRNG(rand.New(rand.NewPCG(7, 7))))
		if err != nil {
			t.Fatal(err)
		}

		// 0.3 LSB rounds to 0 without dither; the dithered mean recovers it.
		x := 0.3 / float64(q.FullScale())
		const n = 200000
		sum := 0
		for range n {
			sum += q.Quantize(x)
		}
		if mean := float64(sum) / n; math.Abs(mean-0.3) > 0.02 {
			t.Fatalf("%v: mean = %v, want ~0.3", dt, mean)
		}
	}
}

func TestQuantizerDeterministicWithRNG(t *testing.T) {
	src := make([]float64, 256)
	for i := range src {
		src[i] = math.Sin(float64(i) * 0.1)
	}

	run := func() []int {
		q, err := NewQuantizer(WithRNG(rand.New(rand.NewPCG(42, 0))))
		if err != nil {
			t.Fatal(err)
		}
		dst := make([]int, len(src))
		if n := q.QuantizeBlock(dst, src); n != len(src) {
			t.Fatalf("QuantizeBlock() = %d, want %d", n, len(src))
		}
		return dst
	}

	a, b := run(), run()
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("sample %d differs: %d vs %d", i, a[i], b[i])
		}
	}
}

func TestQuantizeBlockShortDst(t *testing.T) {
	q, err := NewQuantizer(WithDitherType(DitherNone))
	if err != nil {
		t.Fatal(err)
	}
	dst := make([]int, 2)
	if n := q.QuantizeBlock(dst, []float64{1, -1, 0.5}); n != 2 {
		t.Fatalf("QuantizeBlock() = %d, want 2", n)
	}
	if dst[0] != math.MaxInt16 || dst[1] != -math.MaxInt16 {
		t.Fatalf("dst = %v", dst)
	}
}
