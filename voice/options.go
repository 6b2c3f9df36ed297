package voice

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-synthvoice/synth"
)

// Option configures a voice at construction.
//
// WithCount applies to [Drone] and [Percussive], WithRoot to [Drone] and
// [Oscillator]; WithFrequencies, WithTimes and WithWaveforms only to
// [Percussive]. Filter options apply to every voice.
type Option func(*config) error

type config struct {
	count           int
	root            float64
	filterMode      synth.FilterMode
	filterFrequency float64
	frequencies     Spread[float64]
	times           Spread[float64]
	waveforms       Spread[[]float64]
}

func applyOptions(defaults config, opts []Option) (config, error) {
	cfg := defaults
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		if err := opt(&cfg); err != nil {
			return config{}, err
		}
	}
	return cfg, nil
}

// WithCount sets the number of notes.
func WithCount(count int) Option {
	return func(cfg *config) error {
		if count < 1 {
			return fmt.Errorf("voice count must be > 0: %d", count)
		}
		cfg.count = count
		return nil
	}
}

// WithRoot sets the root frequency in Hz that tuning is relative to.
func WithRoot(hz float64) Option {
	return func(cfg *config) error {
		if hz <= 0 || math.IsNaN(hz) || math.IsInf(hz, 0) {
			return fmt.Errorf("voice root frequency must be > 0 and finite: %f", hz)
		}
		cfg.root = hz
		return nil
	}
}

// WithFilterMode sets the initial filter response.
func WithFilterMode(mode synth.FilterMode) Option {
	return func(cfg *config) error {
		switch mode {
		case synth.FilterLowPass, synth.FilterHighPass, synth.FilterBandPass:
			cfg.filterMode = mode
			return nil
		default:
			return fmt.Errorf("voice filter mode must be low-pass, high-pass or band-pass: %d", mode)
		}
	}
}

// WithFilterFrequency sets the initial base filter frequency in Hz. The
// value is clamped to the engine's Nyquist frequency.
func WithFilterFrequency(hz float64) Option {
	return func(cfg *config) error {
		if hz <= 0 || math.IsNaN(hz) {
			return fmt.Errorf("voice filter frequency must be > 0: %f", hz)
		}
		cfg.filterFrequency = hz
		return nil
	}
}

// WithFrequencies sets the fixed note frequencies in Hz.
func WithFrequencies(frequencies Spread[float64]) Option {
	return func(cfg *config) error {
		if frequencies.Len() == 0 {
			return fmt.Errorf("voice frequencies must not be empty")
		}
		cfg.frequencies = frequencies
		return nil
	}
}

// WithTimes sets the base decay times in seconds.
func WithTimes(times Spread[float64]) Option {
	return func(cfg *config) error {
		if times.Len() == 0 {
			return fmt.Errorf("voice times must not be empty")
		}
		cfg.times = times
		return nil
	}
}

// WithWaveforms sets the note waveforms.
func WithWaveforms(waveforms Spread[[]float64]) Option {
	return func(cfg *config) error {
		if waveforms.Len() == 0 {
			return fmt.Errorf("voice waveforms must not be empty")
		}
		cfg.waveforms = waveforms
		return nil
	}
}
