package dither

import (
	"math"
	"math/rand/v2"
)

// Quantizer maps samples in [-1, 1] to signed integers of a bit depth.
type Quantizer struct {
	bitDepth        int
	ditherType      DitherType
	ditherAmplitude float64
	rng             *rand.Rand

	fullScale float64
	lo, hi    int
}

// NewQuantizer creates a Quantizer. The default configuration is 16-bit
// with triangular dither of amplitude 1 LSB.
func NewQuantizer(opts ...Option) (*Quantizer, error) {
	cfg := defaultConfig()
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		if err := opt(&cfg); err != nil {
			return nil, err
		}
	}

	q := &Quantizer{
		bitDepth:        cfg.bitDepth,
		ditherType:      cfg.ditherType,
		ditherAmplitude: cfg.ditherAmplitude,
		rng:             cfg.rng,
	}
	if q.rng == nil {
		q.rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}

	q.fullScale = math.Exp2(float64(q.bitDepth-1)) - 1
	q.lo = -int(q.fullScale) - 1
	q.hi = int(q.fullScale)
	return q, nil
}

// Quantize converts one sample. Out-of-range input is limited to the
// integer range and NaN maps to zero.
func (q *Quantizer) Quantize(x float64) int {
	if math.IsNaN(x) {
		return 0
	}
	v := math.Round(x*q.fullScale + q.noise())
	return int(max(float64(q.lo), min(float64(q.hi), v)))
}

// QuantizeBlock converts src into dst and returns the number of samples
// written, min(len(dst), len(src)).
func (q *Quantizer) QuantizeBlock(dst []int, src []float64) int {
	n := min(len(dst), len(src))
	for i := range n {
		dst[i] = q.Quantize(src[i])
	}
	return n
}

func (q *Quantizer) noise() float64 {
	switch q.ditherType {
	case DitherRectangular:
		return q.ditherAmplitude * (q.rng.Float64() - 0.5)
	case DitherTriangular:
		return q.ditherAmplitude * (q.rng.Float64() - q.rng.Float64())
	case DitherGaussian:
		return q.ditherAmplitude * 0.5 * q.rng.NormFloat64()
	default:
		return 0
	}
}

// BitDepth returns the target bit depth.
func (q *Quantizer) BitDepth() int { return q.bitDepth }

// DitherType returns the dither noise type.
func (q *Quantizer) DitherType() DitherType { return q.ditherType }

// DitherAmplitude returns the dither noise amplitude in LSB.
func (q *Quantizer) DitherAmplitude() float64 { return q.ditherAmplitude }

// FullScale returns the integer that a sample of 1 maps to.
func (q *Quantizer) FullScale() int { return q.hi }
