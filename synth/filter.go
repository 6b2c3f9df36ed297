package synth

import (
	"math"

	"github.com/cwbudde/algo-synthvoice/dsp/filter/biquad"
	"github.com/cwbudde/algo-synthvoice/dsp/filter/design"
)

// FilterMode selects the filter response.
type FilterMode int

const (
	FilterLowPass FilterMode = iota
	FilterHighPass
	FilterBandPass
)

// String returns the mode name.
func (m FilterMode) String() string {
	switch m {
	case FilterLowPass:
		return "low-pass"
	case FilterHighPass:
		return "high-pass"
	case FilterBandPass:
		return "band-pass"
	default:
		return "unknown"
	}
}

// Filter describes the biquad applied to a note. The mode is fixed at
// construction; changing it means building a new Filter.
//
// A block filter reads its frequency and Q inputs on every control tick.
// A static filter snapshots the input values when they are set, so
// modulation only reaches it when the owner sets the inputs again.
type Filter struct {
	mode      FilterMode
	static    bool
	frequency Input
	q         Input
}

// NewBlockFilter returns a filter whose parameters follow their inputs.
func NewBlockFilter(mode FilterMode, frequency, q Input) *Filter {
	f := &Filter{mode: mode}
	f.SetFrequency(frequency)
	f.SetQ(q)
	return f
}

// NewStaticFilter returns a filter with constant parameters.
func NewStaticFilter(mode FilterMode, frequency, q float64) *Filter {
	f := &Filter{mode: mode, static: true}
	f.SetFrequency(Constant(frequency))
	f.SetQ(Constant(q))
	return f
}

// Mode returns the filter response.
func (f *Filter) Mode() FilterMode { return f.mode }

// Static reports whether the filter snapshots its inputs.
func (f *Filter) Static() bool { return f.static }

// Frequency returns the current cutoff/center frequency in Hz.
func (f *Filter) Frequency() float64 { return ValueOr(f.frequency, math.Inf(1)) }

// Q returns the current quality factor.
func (f *Filter) Q() float64 { return ValueOr(f.q, design.DefaultQ) }

// SetFrequency sets the frequency input.
func (f *Filter) SetFrequency(in Input) {
	if f.static && in != nil {
		in = Constant(in.Value())
	}
	f.frequency = in
}

// SetQ sets the quality factor input.
func (f *Filter) SetQ(in Input) {
	if f.static && in != nil {
		in = Constant(in.Value())
	}
	f.q = in
}

// Coefficients designs the biquad for the current parameter values.
func (f *Filter) Coefficients(sampleRate float64) biquad.Coefficients {
	freq := f.Frequency()
	q := f.Q()

	switch f.mode {
	case FilterHighPass:
		return design.Highpass(freq, q, sampleRate)
	case FilterBandPass:
		return design.Bandpass(freq, q, sampleRate)
	default:
		return design.Lowpass(freq, q, sampleRate)
	}
}
