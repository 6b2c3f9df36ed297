package voice

import (
	"math"

	"github.com/cwbudde/algo-synthvoice/synth"
)

// MinRampTime is the shortest ramp duration in seconds.
const MinRampTime = 0.001

// Lerp ramps a block input linearly from its current value to a new target.
//
// A one-shot position LFO runs from 0 to 1 over the ramp duration and drives
// a constrained-lerp combinator between the start and target values. Setting
// a value starts the next ramp from wherever the output is now, so the
// output never jumps.
type Lerp struct {
	position *synth.LFO
	start    *synth.Param
	target   *synth.Param
	lerp     *synth.Math
}

// NewLerp returns a ramp resting at value with the given duration in
// seconds.
func NewLerp(rate, value float64) *Lerp {
	l := &Lerp{
		position: synth.NewLFO(
			synth.WithWaveform([]float64{-0.5, 0.5}),
			synth.WithOffset(0.5),
			synth.Once(),
		),
		start:  synth.NewParam(value),
		target: synth.NewParam(value),
	}
	l.lerp = synth.NewMath(synth.OpConstrainedLerp, l.start, l.target, l.position)
	l.SetRate(rate)
	return l
}

// Block returns the input to wire into a note or another combinator.
func (l *Lerp) Block() synth.Input { return l.lerp }

// Blocks returns the blocks that must be registered with the engine.
func (l *Lerp) Blocks() []synth.Block {
	return []synth.Block{l.position, l.lerp}
}

// Value returns the current interpolated output.
func (l *Lerp) Value() float64 { return l.lerp.Value() }

// SetValue starts a ramp from the current output to v.
func (l *Lerp) SetValue(v float64) {
	l.start.Set(l.lerp.Value())
	l.target.Set(v)
	l.position.Retrigger()
}

// Start returns the value the current ramp started from.
func (l *Lerp) Start() float64 { return l.start.Value() }

// Target returns the value the current ramp moves toward.
func (l *Lerp) Target() float64 { return l.target.Value() }

// Rate returns the ramp duration in seconds.
func (l *Lerp) Rate() float64 { return 1 / l.position.Rate() }

// SetRate sets the ramp duration in seconds, clamped to at least
// [MinRampTime]. A ramp in progress keeps its position and continues at
// the new speed.
func (l *Lerp) SetRate(seconds float64) {
	l.position.SetRate(1 / clampTime(seconds))
}

// Done reports whether the output has reached the target.
func (l *Lerp) Done() bool { return l.position.Finished() }

func clampTime(seconds float64) float64 {
	if math.IsNaN(seconds) || seconds < MinRampTime {
		return MinRampTime
	}
	return seconds
}
