// Package pitch estimates the fundamental frequency of rendered audio from
// its windowed magnitude spectrum.
package pitch

import (
	"errors"
	"fmt"
	"math"
	"math/cmplx"

	algofft "github.com/MeKo-Christian/algo-fft"

	"github.com/cwbudde/algo-synthvoice/dsp/core"
	"github.com/cwbudde/algo-synthvoice/dsp/window"
)

const (
	defaultMinFrequency = 20.0
	minFFTSize          = 16
)

// ErrNoPeak is returned when the search range holds no spectral energy.
var ErrNoPeak = errors.New("pitch: no spectral peak in range")

// Config holds estimation parameters. Zero values select defaults: the FFT
// size is the next power of two of the signal length, the search range is
// 20 Hz to Nyquist and the window is Hann.
type Config struct {
	SampleRate   float64
	FFTSize      int
	MinFrequency float64
	MaxFrequency float64
	WindowType   window.Type
}

// Result describes the strongest partial in the search range.
type Result struct {
	// Frequency is the interpolated peak frequency in Hz.
	Frequency float64
	// Bin is the FFT bin holding the peak.
	Bin int
	// Magnitude is the peak magnitude, normalized so a full-scale sine reads 1.
	Magnitude float64
	// Note is the fractional MIDI note of Frequency.
	Note float64
}

// Estimator reuses its FFT plan and buffers between calls.
type Estimator struct {
	cfg    Config
	plan   *algofft.Plan[complex128]
	coeffs []float64
	gain   float64
	in     []complex128
	out    []complex128
	mag    []float64
}

// NewEstimator returns an estimator for signals of up to cfg.FFTSize
// samples. cfg.FFTSize must be set.
func NewEstimator(cfg Config) (*Estimator, error) {
	if cfg.SampleRate <= 0 || math.IsNaN(cfg.SampleRate) || math.IsInf(cfg.SampleRate, 0) {
		return nil, fmt.Errorf("pitch sample rate must be > 0 and finite: %f", cfg.SampleRate)
	}
	if cfg.FFTSize < minFFTSize || cfg.FFTSize&(cfg.FFTSize-1) != 0 {
		return nil, fmt.Errorf("pitch FFT size must be a power of two >= %d: %d", minFFTSize, cfg.FFTSize)
	}
	if cfg.MinFrequency <= 0 {
		cfg.MinFrequency = defaultMinFrequency
	}
	nyquist := cfg.SampleRate / 2
	if cfg.MaxFrequency <= 0 || cfg.MaxFrequency > nyquist {
		cfg.MaxFrequency = nyquist
	}
	if cfg.MinFrequency >= cfg.MaxFrequency {
		return nil, fmt.Errorf("pitch min frequency must be below max frequency: %f >= %f", cfg.MinFrequency, cfg.MaxFrequency)
	}

	plan, err := algofft.NewPlan64(cfg.FFTSize)
	if err != nil {
		return nil, fmt.Errorf("pitch: %w", err)
	}

	return &Estimator{
		cfg:  cfg,
		plan: plan,
		in:   make([]complex128, cfg.FFTSize),
		out:  make([]complex128, cfg.FFTSize),
		mag:  make([]float64, cfg.FFTSize/2+1),
	}, nil
}

// Config returns the normalized configuration.
func (e *Estimator) Config() Config { return e.cfg }

// Estimate finds the strongest partial of signal. Signals longer than the
// FFT size are truncated; shorter ones are zero padded.
func (e *Estimator) Estimate(signal []float64) (Result, error) {
	if len(signal) == 0 {
		return Result{}, ErrNoPeak
	}
	n := min(len(signal), e.cfg.FFTSize)

	if len(e.coeffs) != n {
		e.coeffs = window.Generate(e.cfg.WindowType, n)
		e.gain = window.CoherentGain(e.coeffs) * float64(n)
	}

	clear(e.in)
	for i := range n {
		e.in[i] = complex(signal[i]*e.coeffs[i], 0)
	}
	if err := e.plan.Forward(e.out, e.in); err != nil {
		return Result{}, fmt.Errorf("pitch: %w", err)
	}
	for i := range e.mag {
		e.mag[i] = cmplx.Abs(e.out[i])
	}

	binHz := e.cfg.SampleRate / float64(e.cfg.FFTSize)
	lo := max(int(math.Ceil(e.cfg.MinFrequency/binHz)), 1)
	hi := min(int(math.Floor(e.cfg.MaxFrequency/binHz)), len(e.mag)-2)

	peak := -1
	for i := lo; i <= hi; i++ {
		if peak < 0 || e.mag[i] > e.mag[peak] {
			peak = i
		}
	}
	if peak < 0 || e.mag[peak] == 0 {
		return Result{}, ErrNoPeak
	}

	offset := interpolate(e.mag[peak-1], e.mag[peak], e.mag[peak+1])
	freq := (float64(peak) + offset) * binHz

	magnitude := e.mag[peak]
	if e.gain > 0 {
		magnitude = 2 * magnitude / e.gain
	}

	return Result{
		Frequency: freq,
		Bin:       peak,
		Magnitude: magnitude,
		Note:      core.HzToMIDI(freq),
	}, nil
}

// Estimate is a one-shot estimation. cfg.FFTSize defaults to the next power
// of two of len(signal).
func Estimate(signal []float64, cfg Config) (Result, error) {
	if cfg.FFTSize <= 0 {
		cfg.FFTSize = max(nextPowerOf2(len(signal)), minFFTSize)
	}
	e, err := NewEstimator(cfg)
	if err != nil {
		return Result{}, err
	}
	return e.Estimate(signal)
}

// interpolate fits a parabola through the log magnitudes around a peak and
// returns the vertex offset in bins, in [-0.5, 0.5].
func interpolate(left, center, right float64) float64 {
	if left <= 0 || right <= 0 {
		return 0
	}
	l, c, r := math.Log(left), math.Log(center), math.Log(right)
	den := l - 2*c + r
	if den == 0 {
		return 0
	}
	return core.Clamp(0.5*(l-r)/den, -0.5, 0.5)
}

func nextPowerOf2(n int) int {
	p := 1
	for p < n {
		p <<= 1
	}
	return p
}
