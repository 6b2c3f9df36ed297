package synth

import "math"

var defaultLFOWaveform = []float64{0, 1, 0, -1}

// LFO is a wavetable ramp generator. In periodic mode it loops over its
// waveform at rate cycles per second; in one-shot mode it plays the
// waveform once, from the first to the last sample, and then holds the
// last sample until retriggered.
//
// The output is offset + scale*waveform(phase) with linear interpolation
// between waveform samples.
type LFO struct {
	waveform []float64
	rate     float64
	scale    float64
	offset   float64
	once     bool

	phase float64
}

// LFOOption configures an LFO at construction.
type LFOOption func(*LFO)

// WithWaveform sets the waveform. Nil or empty selects a triangle.
func WithWaveform(waveform []float64) LFOOption {
	return func(l *LFO) { l.SetWaveform(waveform) }
}

// WithRate sets the rate in Hz.
func WithRate(rate float64) LFOOption {
	return func(l *LFO) { l.SetRate(rate) }
}

// WithScale sets the output scale.
func WithScale(scale float64) LFOOption {
	return func(l *LFO) { l.scale = scale }
}

// WithOffset sets the output offset.
func WithOffset(offset float64) LFOOption {
	return func(l *LFO) { l.offset = offset }
}

// Once makes the LFO play its waveform a single time per trigger.
func Once() LFOOption {
	return func(l *LFO) { l.once = true }
}

// NewLFO returns an LFO with rate 1 Hz, scale 1 and offset 0 unless
// overridden by opts.
func NewLFO(opts ...LFOOption) *LFO {
	l := &LFO{rate: 1, scale: 1}
	for _, opt := range opts {
		if opt != nil {
			opt(l)
		}
	}
	return l
}

// Value returns the current output.
func (l *LFO) Value() float64 {
	return l.offset + l.scale*l.sample()
}

// Step advances the phase by dt seconds.
func (l *LFO) Step(dt float64) {
	if dt <= 0 {
		return
	}

	l.phase += l.rate * dt
	if l.once {
		if l.phase > 1 {
			l.phase = 1
		}
		return
	}

	l.phase -= math.Floor(l.phase)
}

// Retrigger restarts the waveform from its first sample.
func (l *LFO) Retrigger() {
	l.phase = 0
}

// Phase returns the position in the current cycle, in [0, 1].
func (l *LFO) Phase() float64 { return l.phase }

// Finished reports whether a one-shot LFO has reached its last sample.
func (l *LFO) Finished() bool { return l.once && l.phase >= 1 }

// Rate returns the rate in Hz.
func (l *LFO) Rate() float64 { return l.rate }

// SetRate sets the rate in Hz. Negative rates are clamped to 0.
func (l *LFO) SetRate(rate float64) {
	if rate < 0 || math.IsNaN(rate) {
		rate = 0
	}
	l.rate = rate
}

// Scale returns the output scale.
func (l *LFO) Scale() float64 { return l.scale }

// SetScale sets the output scale.
func (l *LFO) SetScale(scale float64) { l.scale = scale }

// Offset returns the output offset.
func (l *LFO) Offset() float64 { return l.offset }

// SetOffset sets the output offset.
func (l *LFO) SetOffset(offset float64) { l.offset = offset }

// Waveform returns the waveform, or nil for the default triangle.
func (l *LFO) Waveform() []float64 { return l.waveform }

// SetWaveform replaces the waveform. Nil or empty selects a triangle.
func (l *LFO) SetWaveform(waveform []float64) {
	if len(waveform) == 0 {
		waveform = nil
	}
	l.waveform = waveform
}

// IsOnce reports whether the LFO is one-shot.
func (l *LFO) IsOnce() bool { return l.once }

func (l *LFO) sample() float64 {
	wave := l.waveform
	if wave == nil {
		wave = defaultLFOWaveform
	}

	n := len(wave)
	if n == 1 {
		return wave[0]
	}

	if l.once {
		if l.phase >= 1 {
			return wave[n-1]
		}
		pos := l.phase * float64(n-1)
		i := int(pos)
		frac := pos - float64(i)
		return wave[i] + (wave[i+1]-wave[i])*frac
	}

	pos := l.phase * float64(n)
	i := int(pos) % n
	frac := pos - math.Floor(pos)
	next := wave[(i+1)%n]
	return wave[i] + (next-wave[i])*frac
}
