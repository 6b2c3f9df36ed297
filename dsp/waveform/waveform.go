package waveform

import (
	"math"
	"math/rand"

	"github.com/cwbudde/algo-synthvoice/dsp/core"
	"github.com/cwbudde/algo-vecmath"
)

// DefaultSize is the number of samples in a generated table.
const DefaultSize = 256

// Option configures table generation.
type Option func(*config)

type config struct {
	size      int
	phase     float64
	amplitude float64
	frequency float64
	seed      int64
}

func defaultConfig() config {
	return config{
		size:      DefaultSize,
		amplitude: 1,
		frequency: 1,
		seed:      1,
	}
}

func applyOptions(opts []Option) config {
	cfg := defaultConfig()
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	return cfg
}

// WithSize sets the table length. Values below 2 are ignored.
func WithSize(size int) Option {
	return func(cfg *config) {
		if size >= 2 {
			cfg.size = size
		}
	}
}

// WithPhase offsets the start of the cycle, in cycles (0.5 = half a period).
func WithPhase(phase float64) Option {
	return func(cfg *config) {
		cfg.phase = phase
	}
}

// WithAmplitude scales the table. The value is clamped to [0, 1].
func WithAmplitude(amplitude float64) Option {
	return func(cfg *config) {
		cfg.amplitude = core.Clamp(amplitude, 0, 1)
	}
}

// WithFrequency sets how many cycles fit into one table (harmonic number).
func WithFrequency(frequency float64) Option {
	return func(cfg *config) {
		if frequency > 0 {
			cfg.frequency = frequency
		}
	}
}

// WithSeed sets the random seed used by [Noise].
func WithSeed(seed int64) Option {
	return func(cfg *config) {
		cfg.seed = seed
	}
}

// Sine returns a sine table.
func Sine(opts ...Option) []float64 {
	return generate(opts, func(x float64) float64 {
		return math.Sin(2 * math.Pi * x)
	})
}

// Triangle returns a triangle table starting at zero and rising.
func Triangle(opts ...Option) []float64 {
	return generate(opts, func(x float64) float64 {
		switch {
		case x < 0.25:
			return 4 * x
		case x < 0.75:
			return 2 - 4*x
		default:
			return 4*x - 4
		}
	})
}

// Saw returns a rising sawtooth table from -1 to 1.
func Saw(opts ...Option) []float64 {
	return generate(opts, func(x float64) float64 {
		return 2*x - 1
	})
}

// Square returns a 50% duty cycle square table.
func Square(opts ...Option) []float64 {
	return generate(opts, func(x float64) float64 {
		if x < 0.5 {
			return 1
		}
		return -1
	})
}

// Noise returns a white noise table in [-amplitude, amplitude].
func Noise(opts ...Option) []float64 {
	cfg := applyOptions(opts)
	out := make([]float64, cfg.size)
	rng := rand.New(rand.NewSource(cfg.seed))
	for i := range out {
		out[i] = (rng.Float64()*2 - 1) * cfg.amplitude
	}
	return out
}

func generate(opts []Option, shape func(x float64) float64) []float64 {
	cfg := applyOptions(opts)
	out := make([]float64, cfg.size)
	for i := range out {
		x := float64(i)/float64(cfg.size)*cfg.frequency + cfg.phase
		x -= math.Floor(x)
		out[i] = shape(x) * cfg.amplitude
	}
	return out
}

// Layer is one weighted input to [Mix].
type Layer struct {
	Table []float64
	Gain  float64
}

// Mix sums weighted tables into a new table the length of the first layer
// and clamps the result to [-1, 1]. Layers of a different length are
// resampled by nearest index.
func Mix(layers ...Layer) []float64 {
	if len(layers) == 0 || len(layers[0].Table) == 0 {
		return nil
	}

	n := len(layers[0].Table)
	out := make([]float64, n)
	scratch := make([]float64, n)

	for _, layer := range layers {
		if len(layer.Table) == 0 {
			continue
		}

		src := layer.Table
		if len(src) != n {
			for i := range scratch {
				scratch[i] = src[i*len(src)/n]
			}
			src = scratch
		}

		vecmath.ScaleBlock(scratch, src, layer.Gain)
		vecmath.AddBlockInPlace(out, scratch)
	}

	for i, v := range out {
		out[i] = core.Clamp(v, -1, 1)
	}
	return out
}

// Full returns a Layer with unity gain.
func Full(table []float64) Layer {
	return Layer{Table: table, Gain: 1}
}
