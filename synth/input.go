package synth

import "errors"

var (
	// ErrBlockRegistered is returned when a block is added to a synthesizer twice.
	ErrBlockRegistered = errors.New("synth: block already registered")
	// ErrInvalidConfig is returned for non-positive sample rates or block sizes.
	ErrInvalidConfig = errors.New("synth: invalid processor config")
)

// Input is a scalar modulation source read once per control period.
type Input interface {
	Value() float64
}

// Block is an Input with time-dependent state. Registered blocks are
// advanced by the synthesizer once per control period.
type Block interface {
	Input
	Step(dt float64)
}

// Constant is a fixed Input.
type Constant float64

// Value returns c.
func (c Constant) Value() float64 { return float64(c) }

// ValueOr returns in.Value(), or def if in is nil.
func ValueOr(in Input, def float64) float64 {
	if in == nil {
		return def
	}
	return in.Value()
}

// Param is a mutable Input. Graph nodes that hold a *Param see writes at
// their next evaluation, so a parameter can change without rebuilding the
// node that reads it.
type Param struct {
	v float64
}

// NewParam returns a Param holding v.
func NewParam(v float64) *Param { return &Param{v: v} }

// Value returns the current value.
func (p *Param) Value() float64 { return p.v }

// Set replaces the value.
func (p *Param) Set(v float64) { p.v = v }
