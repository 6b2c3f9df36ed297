// Package testutil holds signal generators and assertions shared by the
// package tests.
package testutil

import (
	"math"
	"math/rand/v2"
)

// DeterministicSine generates a sine wave starting at phase zero.
func DeterministicSine(freqHz, sampleRate, amplitude float64, length int) []float64 {
	out := make([]float64, length)
	step := 2 * math.Pi * freqHz / sampleRate
	for i := range out {
		out[i] = amplitude * math.Sin(step*float64(i))
	}
	return out
}

// DeterministicNoise generates white noise in [-amplitude, amplitude] with a
// fixed seed.
func DeterministicNoise(seed uint64, amplitude float64, length int) []float64 {
	out := make([]float64, length)
	rng := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	for i := range out {
		out[i] = (rng.Float64()*2 - 1) * amplitude
	}
	return out
}

// DC generates a constant-valued signal.
func DC(value float64, length int) []float64 {
	out := make([]float64, length)
	for i := range out {
		out[i] = value
	}
	return out
}

// Renderer is a stereo sample source such as a synthesizer.
type Renderer interface {
	Render(left, right []float64)
}

// Render pulls frames of stereo output from r.
func Render(r Renderer, frames int) (left, right []float64) {
	left = make([]float64, frames)
	right = make([]float64, frames)
	r.Render(left, right)
	return left, right
}
