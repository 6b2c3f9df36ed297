// Package window provides analysis windows for measuring the spectrum of
// rendered voice output.
package window

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-vecmath"
)

// Type identifies a window function. The zero value is Hann.
type Type int

const (
	TypeHann Type = iota
	TypeBlackman
	TypeBlackmanHarris4Term
	TypeRectangular
)

var typeNames = map[Type]string{
	TypeHann:                "hann",
	TypeBlackman:            "blackman",
	TypeBlackmanHarris4Term: "blackman-harris",
	TypeRectangular:         "rectangular",
}

func (t Type) String() string {
	if name, ok := typeNames[t]; ok {
		return name
	}
	return fmt.Sprintf("Type(%d)", int(t))
}

// ParseType maps a window name to its Type.
func ParseType(name string) (Type, error) {
	for t, n := range typeNames {
		if n == name {
			return t, nil
		}
	}
	return 0, fmt.Errorf("unknown window: %q", name)
}

// Option configures window generation.
type Option func(*config)

type config struct {
	periodic bool
}

// WithPeriodic generates the periodic (DFT-even) variant of the window.
func WithPeriodic() Option {
	return func(cfg *config) {
		cfg.periodic = true
	}
}

// Generate returns length coefficients of the selected window.
// Unknown types fall back to rectangular.
func Generate(t Type, length int, opts ...Option) []float64 {
	if length <= 0 {
		return nil
	}

	var cfg config
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	out := make([]float64, length)
	for n := range out {
		out[n] = evalWindow(t, samplePosition(n, length, cfg.periodic))
	}

	return out
}

// Apply multiplies buf in-place by the selected window and returns the
// coefficients used.
func Apply(t Type, buf []float64, opts ...Option) []float64 {
	if len(buf) == 0 {
		return nil
	}

	coeffs := Generate(t, len(buf), opts...)
	vecmath.MulBlockInPlace(buf, coeffs)
	return coeffs
}

// CoherentGain returns the mean of the window coefficients, the factor by
// which a windowed sinusoid's spectral peak is attenuated.
func CoherentGain(coeffs []float64) float64 {
	if len(coeffs) == 0 {
		return 0
	}

	sum := 0.0
	for _, c := range coeffs {
		sum += c
	}

	return sum / float64(len(coeffs))
}

// ENBW returns the equivalent noise bandwidth of the window in bins.
func ENBW(coeffs []float64) float64 {
	var sum, sumSq float64
	for _, c := range coeffs {
		sum += c
		sumSq += c * c
	}
	if sum == 0 {
		return 0
	}
	return float64(len(coeffs)) * sumSq / (sum * sum)
}

var (
	hannCoeffs     = []float64{0.5, -0.5}
	blackmanCoeffs = []float64{7938.0 / 18608.0, -9240.0 / 18608.0, 1430.0 / 18608.0}
	bh4Coeffs      = []float64{0.35875, -0.48829, 0.14128, -0.01168}
)

func evalWindow(t Type, x float64) float64 {
	switch t {
	case TypeHann:
		return cosineFromCoeffs(x, hannCoeffs)
	case TypeBlackman:
		return cosineFromCoeffs(x, blackmanCoeffs)
	case TypeBlackmanHarris4Term:
		return cosineFromCoeffs(x, bh4Coeffs)
	default:
		return 1
	}
}

func cosineFromCoeffs(x float64, coeffs []float64) float64 {
	phase := 2 * math.Pi * x

	sum := 0.0
	for k, c := range coeffs {
		sum += c * math.Cos(float64(k)*phase)
	}

	return sum
}

func samplePosition(n, size int, periodic bool) float64 {
	if size <= 1 {
		return 0
	}

	den := float64(size - 1)
	if periodic {
		den = float64(size)
	}

	return float64(n) / den
}
