package dither

import (
	"fmt"
	"math"
	"math/rand/v2"
)

const (
	defaultBitDepth        = 16
	defaultDitherType      = DitherTriangular
	defaultDitherAmplitude = 1.0
	minBitDepth            = 2
	maxBitDepth            = 32
)

type config struct {
	bitDepth        int
	ditherType      DitherType
	ditherAmplitude float64
	rng             *rand.Rand
}

func defaultConfig() config {
	return config{
		bitDepth:        defaultBitDepth,
		ditherType:      defaultDitherType,
		ditherAmplitude: defaultDitherAmplitude,
	}
}

// Option configures a [Quantizer].
type Option func(*config) error

// WithBitDepth sets the target bit depth (2–32, default 16).
func WithBitDepth(bits int) Option {
	return func(cfg *config) error {
		if bits < minBitDepth || bits > maxBitDepth {
			return fmt.Errorf("dither: bit depth must be in [%d, %d]: %d", minBitDepth, maxBitDepth, bits)
		}
		cfg.bitDepth = bits
		return nil
	}
}

// WithDitherType sets the dither noise PDF (default [DitherTriangular]).
func WithDitherType(dt DitherType) Option {
	return func(cfg *config) error {
		if !dt.Valid() {
			return fmt.Errorf("dither: invalid dither type: %d", dt)
		}
		cfg.ditherType = dt
		return nil
	}
}

// WithDitherAmplitude sets the dither noise amplitude in LSB (default 1).
func WithDitherAmplitude(amp float64) Option {
	return func(cfg *config) error {
		if amp < 0 || math.IsNaN(amp) || math.IsInf(amp, 0) {
			return fmt.Errorf("dither: amplitude must be >= 0 and finite: %f", amp)
		}
		cfg.ditherAmplitude = amp
		return nil
	}
}

// WithRNG sets a deterministic random number generator for reproducible output.
func WithRNG(rng *rand.Rand) Option {
	return func(cfg *config) error {
		cfg.rng = rng
		return nil
	}
}
