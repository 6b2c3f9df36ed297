package pitch

import (
	"errors"
	"math"
	"testing"

	"github.com/cwbudde/algo-synthvoice/dsp/core"
	"github.com/cwbudde/algo-synthvoice/dsp/waveform"
	"github.com/cwbudde/algo-synthvoice/dsp/window"
	"github.com/cwbudde/algo-synthvoice/internal/testutil"
	"github.com/cwbudde/algo-synthvoice/synth"
	"github.com/cwbudde/algo-synthvoice/voice"
)

const sampleRate = 48000.0

func TestEstimateSine(t *testing.T) {
	tests := []struct {
		freq float64
		tol  float64
	}{
		{110, 1},
		{440, 1},
		{1000, 1},
		{3520, 2},
	}

	for _, tt := range tests {
		signal := testutil.DeterministicSine(tt.freq, sampleRate, 0.5, 8192)

		got, err := Estimate(signal, Config{SampleRate: sampleRate})
		if err != nil {
			t.Fatalf("Estimate(%v Hz) error = %v", tt.freq, err)
		}
		if math.Abs(got.Frequency-tt.freq) > tt.tol {
			t.Fatalf("Estimate(%v Hz).Frequency = %v", tt.freq, got.Frequency)
		}
		if math.Abs(got.Magnitude-0.5) > 0.1 {
			t.Fatalf("Estimate(%v Hz).Magnitude = %v, want ~0.5", tt.freq, got.Magnitude)
		}
	}
}

func TestEstimateWindows(t *testing.T) {
	signal := testutil.DeterministicSine(523.25, sampleRate, 0.8, 8192)

	for _, w := range []window.Type{window.TypeHann, window.TypeBlackman, window.TypeBlackmanHarris4Term} {
		got, err := Estimate(signal, Config{SampleRate: sampleRate, WindowType: w})
		if err != nil {
			t.Fatalf("%v: Estimate() error = %v", w, err)
		}
		testutil.RequireNearlyEqual(t, w.String()+" frequency", got.Frequency, 523.25, 1)
		testutil.RequireNearlyEqual(t, w.String()+" magnitude", got.Magnitude, 0.8, 0.15)
	}
}

func TestEstimateNote(t *testing.T) {
	signal := testutil.DeterministicSine(core.MIDIToHz(60), sampleRate, 1, 16384)

	got, err := Estimate(signal, Config{SampleRate: sampleRate})
	if err != nil {
		t.Fatalf("Estimate() error = %v", err)
	}
	if math.Round(got.Note) != 60 {
		t.Fatalf("Note = %v, want ~60", got.Note)
	}
}

func TestEstimateSawFundamental(t *testing.T) {
	table := waveform.Saw(waveform.WithSize(8192), waveform.WithFrequency(8192*220/sampleRate))

	got, err := Estimate(table, Config{SampleRate: sampleRate})
	if err != nil {
		t.Fatalf("Estimate() error = %v", err)
	}
	if math.Abs(got.Frequency-220) > 1 {
		t.Fatalf("Frequency = %v, want ~220", got.Frequency)
	}
}

func TestEstimateRange(t *testing.T) {
	low := testutil.DeterministicSine(200, sampleRate, 1, 8192)
	high := testutil.DeterministicSine(2000, sampleRate, 0.3, 8192)
	signal := make([]float64, len(low))
	for i := range signal {
		signal[i] = low[i] + high[i]
	}

	got, err := Estimate(signal, Config{SampleRate: sampleRate, MinFrequency: 1000})
	if err != nil {
		t.Fatalf("Estimate() error = %v", err)
	}
	if math.Abs(got.Frequency-2000) > 2 {
		t.Fatalf("Frequency = %v, want ~2000", got.Frequency)
	}
}

func TestEstimateSilence(t *testing.T) {
	if _, err := Estimate(make([]float64, 1024), Config{SampleRate: sampleRate}); !errors.Is(err, ErrNoPeak) {
		t.Fatalf("Estimate(silence) error = %v, want ErrNoPeak", err)
	}
	if _, err := Estimate(nil, Config{SampleRate: sampleRate}); !errors.Is(err, ErrNoPeak) {
		t.Fatalf("Estimate(nil) error = %v, want ErrNoPeak", err)
	}
}

func TestNewEstimatorInvalidConfig(t *testing.T) {
	tests := []Config{
		{SampleRate: 0, FFTSize: 1024},
		{SampleRate: math.NaN(), FFTSize: 1024},
		{SampleRate: sampleRate, FFTSize: 1000},
		{SampleRate: sampleRate, FFTSize: 8},
		{SampleRate: sampleRate, FFTSize: 1024, MinFrequency: 5000, MaxFrequency: 4000},
	}

	for _, cfg := range tests {
		if _, err := NewEstimator(cfg); err == nil {
			t.Fatalf("NewEstimator(%+v) expected error", cfg)
		}
	}
}

func TestEstimatorDefaults(t *testing.T) {
	e, err := NewEstimator(Config{SampleRate: sampleRate, FFTSize: 1024, MaxFrequency: 1e6})
	if err != nil {
		t.Fatalf("NewEstimator() error = %v", err)
	}
	cfg := e.Config()
	if cfg.MaxFrequency != sampleRate/2 {
		t.Fatalf("MaxFrequency = %v, want %v", cfg.MaxFrequency, sampleRate/2)
	}
	if cfg.MinFrequency != defaultMinFrequency {
		t.Fatalf("MinFrequency = %v, want %v", cfg.MinFrequency, defaultMinFrequency)
	}
}

func TestEstimatorReuse(t *testing.T) {
	e, err := NewEstimator(Config{SampleRate: sampleRate, FFTSize: 8192})
	if err != nil {
		t.Fatalf("NewEstimator() error = %v", err)
	}

	for _, freq := range []float64{300, 600, 300} {
		got, err := e.Estimate(testutil.DeterministicSine(freq, sampleRate, 1, 8192))
		if err != nil {
			t.Fatalf("Estimate(%v) error = %v", freq, err)
		}
		if math.Abs(got.Frequency-freq) > 1 {
			t.Fatalf("Estimate(%v).Frequency = %v", freq, got.Frequency)
		}
	}

	// Shorter input is zero padded.
	got, err := e.Estimate(testutil.DeterministicSine(600, sampleRate, 1, 4096))
	if err != nil {
		t.Fatalf("Estimate(short) error = %v", err)
	}
	if math.Abs(got.Frequency-600) > 2 {
		t.Fatalf("Estimate(short).Frequency = %v", got.Frequency)
	}
}

func TestInterpolate(t *testing.T) {
	if got := interpolate(1, 2, 1); got != 0 {
		t.Fatalf("interpolate(symmetric) = %v, want 0", got)
	}
	if got := interpolate(1, 2, 1.5); got <= 0 {
		t.Fatalf("interpolate(right-heavy) = %v, want > 0", got)
	}
	if got := interpolate(0, 2, 1); got != 0 {
		t.Fatalf("interpolate(zero neighbour) = %v, want 0", got)
	}
}

func TestOscillatorRendersConcertPitch(t *testing.T) {
	engine, err := synth.New(core.ApplyProcessorOptions(
		core.WithSampleRate(sampleRate),
		core.WithBlockSize(64),
	))
	if err != nil {
		t.Fatalf("synth.New() error = %v", err)
	}

	osc, err := voice.NewOscillator(engine)
	if err != nil {
		t.Fatalf("NewOscillator() error = %v", err)
	}
	defer osc.Close()

	osc.Press(69, 1)

	testutil.Render(engine, 4800)
	buf, _ := testutil.Render(engine, 8192)
	testutil.RequireAudible(t, buf, 0.1)

	got, err := Estimate(buf, Config{SampleRate: sampleRate})
	if err != nil {
		t.Fatalf("Estimate() error = %v", err)
	}
	if math.Abs(got.Frequency-440) > 1 {
		t.Fatalf("rendered pitch = %v Hz, want ~440", got.Frequency)
	}
}
