package design

import (
	"math"
	"testing"

	"github.com/cwbudde/algo-synthvoice/dsp/filter/biquad"
)

const tol = 1e-9

func almostEqual(a, b, eps float64) bool {
	return math.Abs(a-b) <= eps
}

func TestBiquadDesigners_BasicResponseShape(t *testing.T) {
	sr := 48000.0
	f := 1000.0

	lp := Lowpass(f, DefaultQ, sr)
	if !(lp.MagnitudeDB(100, sr) > lp.MagnitudeDB(10000, sr)) {
		t.Fatal("lowpass shape check failed")
	}
	if got := lp.MagnitudeDB(1, sr); !almostEqual(got, 0, 1e-3) {
		t.Fatalf("lowpass DC gain = %v dB, want 0", got)
	}
	if got := lp.MagnitudeDB(f, sr); !almostEqual(got, -3.0103, 1e-3) {
		t.Fatalf("lowpass cutoff gain = %v dB, want -3.01", got)
	}

	hp := Highpass(f, DefaultQ, sr)
	if !(hp.MagnitudeDB(10000, sr) > hp.MagnitudeDB(100, sr)) {
		t.Fatal("highpass shape check failed")
	}

	bp := Bandpass(f, 2, sr)
	if got := bp.MagnitudeDB(f, sr); !almostEqual(got, 0, 1e-6) {
		t.Fatalf("bandpass center gain = %v dB, want 0", got)
	}
	if !(bp.MagnitudeDB(f, sr) > bp.MagnitudeDB(100, sr)) {
		t.Fatal("bandpass shape check failed")
	}
}

func TestDesignersEdgeFrequencies(t *testing.T) {
	sr := 48000.0

	tests := []struct {
		name string
		got  biquad.Coefficients
		want biquad.Coefficients
	}{
		{name: "lowpass at nyquist opens", got: Lowpass(sr/2, DefaultQ, sr), want: biquad.Passthrough()},
		{name: "lowpass above nyquist opens", got: Lowpass(sr, DefaultQ, sr), want: biquad.Passthrough()},
		{name: "lowpass at zero closes", got: Lowpass(0, DefaultQ, sr), want: biquad.Coefficients{}},
		{name: "highpass at zero opens", got: Highpass(0, DefaultQ, sr), want: biquad.Passthrough()},
		{name: "highpass at nyquist closes", got: Highpass(sr/2, DefaultQ, sr), want: biquad.Coefficients{}},
		{name: "bandpass invalid closes", got: Bandpass(-1, DefaultQ, sr), want: biquad.Coefficients{}},
		{name: "invalid sample rate", got: Lowpass(1000, DefaultQ, 0), want: biquad.Coefficients{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.got != tt.want {
				t.Fatalf("got %+v, want %+v", tt.got, tt.want)
			}
		})
	}
}

func TestInvalidQFallsBackToDefault(t *testing.T) {
	sr := 48000.0
	want := Lowpass(2000, DefaultQ, sr)
	for _, q := range []float64{0, -1, math.NaN(), math.Inf(1)} {
		got := Lowpass(2000, q, sr)
		if !almostEqual(got.B0, want.B0, tol) || !almostEqual(got.A1, want.A1, tol) {
			t.Fatalf("q=%v: got %+v, want %+v", q, got, want)
		}
	}
}
