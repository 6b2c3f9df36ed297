// Package level measures the loudness of rendered audio: DC offset, RMS,
// peak, crest factor and clipping, in linear units and dBFS.
package level

import (
	"math"

	"github.com/cwbudde/algo-synthvoice/dsp/core"
)

// Stats holds level statistics of a signal. dB values are relative to full
// scale (1.0) and are -Inf for silence.
//
//nolint:revive
type Stats struct {
	Length         int
	DC             float64
	RMS            float64
	RMS_dB         float64
	Peak           float64
	Peak_dB        float64
	PeakPos        int
	CrestFactor    float64
	CrestFactor_dB float64
	ZeroCrossings  int
	// Clipped counts samples with |x| > 1.
	Clipped int
}

func emptyStats() Stats {
	return Stats{
		RMS_dB:         math.Inf(-1),
		Peak_dB:        math.Inf(-1),
		CrestFactor_dB: math.Inf(-1),
	}
}

// Calculate computes all statistics in a single pass.
func Calculate(signal []float64) Stats {
	var m Meter
	m.Update(signal)
	return m.Result()
}

// RMS returns the root-mean-square of the signal.
func RMS(signal []float64) float64 {
	if len(signal) == 0 {
		return 0
	}

	var sumSq float64
	for _, x := range signal {
		sumSq += x * x
	}

	return math.Sqrt(sumSq / float64(len(signal)))
}

// Peak returns the largest absolute sample value.
func Peak(signal []float64) float64 {
	var peak float64
	for _, x := range signal {
		peak = math.Max(peak, math.Abs(x))
	}
	return peak
}

// Meter accumulates level statistics across blocks, so a render loop can
// meter its output without keeping it.
type Meter struct {
	n             int
	sum           float64
	comp          float64
	sumSq         float64
	peak          float64
	peakPos       int
	zeroCrossings int
	clipped       int
	last          float64
}

// NewMeter returns an empty meter.
func NewMeter() *Meter {
	return &Meter{}
}

// Update adds a block of samples.
func (m *Meter) Update(samples []float64) {
	for _, x := range samples {
		// Kahan summation keeps the DC estimate stable over long renders.
		y := x - m.comp
		t := m.sum + y
		m.comp = (t - m.sum) - y
		m.sum = t

		m.sumSq += x * x

		a := math.Abs(x)
		if a > m.peak {
			m.peak = a
			m.peakPos = m.n
		}
		if a > 1 {
			m.clipped++
		}

		if m.n > 0 && m.last*x < 0 {
			m.zeroCrossings++
		}
		m.last = x
		m.n++
	}
}

// Result returns the statistics of everything seen since the last Reset.
func (m *Meter) Result() Stats {
	if m.n == 0 {
		return emptyStats()
	}

	nf := float64(m.n)
	rms := math.Sqrt(m.sumSq / nf)

	var crest, crestDB float64
	if rms > 0 {
		crest = m.peak / rms
		crestDB = core.LinearToDB(crest)
	}

	return Stats{
		Length:         m.n,
		DC:             m.sum / nf,
		RMS:            rms,
		RMS_dB:         core.LinearToDB(rms),
		Peak:           m.peak,
		Peak_dB:        core.LinearToDB(m.peak),
		PeakPos:        m.peakPos,
		CrestFactor:    crest,
		CrestFactor_dB: crestDB,
		ZeroCrossings:  m.zeroCrossings,
		Clipped:        m.clipped,
	}
}

// Reset clears the meter.
func (m *Meter) Reset() {
	*m = Meter{}
}
