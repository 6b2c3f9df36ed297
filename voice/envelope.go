package voice

import "github.com/cwbudde/algo-synthvoice/synth"

// AREnvelope is a linear attack/release envelope for block inputs such as
// a filter cutoff. Press ramps toward amount over the attack time, Release
// ramps back to zero over the release time. The amount may be negative.
type AREnvelope struct {
	pressed     bool
	attackTime  float64
	releaseTime float64
	amount      float64
	lerp        *Lerp
}

// NewAREnvelope returns a released envelope resting at zero.
func NewAREnvelope(attackTime, releaseTime, amount float64) *AREnvelope {
	return &AREnvelope{
		attackTime:  attackTime,
		releaseTime: releaseTime,
		amount:      amount,
		lerp:        NewLerp(releaseTime, 0),
	}
}

// Block returns the envelope output.
func (e *AREnvelope) Block() synth.Input { return e.lerp.Block() }

// Blocks returns the blocks that must be registered with the engine.
func (e *AREnvelope) Blocks() []synth.Block { return e.lerp.Blocks() }

// Lerp returns the ramp driving the envelope.
func (e *AREnvelope) Lerp() *Lerp { return e.lerp }

// Value returns the current envelope level.
func (e *AREnvelope) Value() float64 { return e.lerp.Value() }

// Pressed reports whether the envelope is in its attack phase.
func (e *AREnvelope) Pressed() bool { return e.pressed }

// Press starts the attack toward the amount.
func (e *AREnvelope) Press() {
	e.pressed = true
	e.lerp.SetRate(e.attackTime)
	e.lerp.SetValue(e.amount)
}

// Release starts the ramp back to zero.
func (e *AREnvelope) Release() {
	e.lerp.SetRate(e.releaseTime)
	e.lerp.SetValue(0)
	e.pressed = false
}

// AttackTime returns the attack time in seconds.
func (e *AREnvelope) AttackTime() float64 { return e.attackTime }

// SetAttackTime sets the attack time. A running attack picks it up
// immediately.
func (e *AREnvelope) SetAttackTime(seconds float64) {
	e.attackTime = seconds
	if e.pressed {
		e.lerp.SetRate(seconds)
	}
}

// ReleaseTime returns the release time in seconds.
func (e *AREnvelope) ReleaseTime() float64 { return e.releaseTime }

// SetReleaseTime sets the release time. A running release picks it up
// immediately.
func (e *AREnvelope) SetReleaseTime(seconds float64) {
	e.releaseTime = seconds
	if !e.pressed {
		e.lerp.SetRate(seconds)
	}
}

// Amount returns the level reached while pressed.
func (e *AREnvelope) Amount() float64 { return e.amount }

// SetAmount sets the pressed level. While pressed the envelope ramps to the
// new amount from its current value.
func (e *AREnvelope) SetAmount(amount float64) {
	e.amount = amount
	if e.pressed {
		e.lerp.SetValue(amount)
	}
}
