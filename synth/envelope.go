package synth

import "math"

// EnvelopeParams holds the five amplitude envelope parameters.
// Times are in seconds, levels are relative to the note amplitude.
type EnvelopeParams struct {
	AttackTime   float64
	AttackLevel  float64
	DecayTime    float64
	SustainLevel float64
	ReleaseTime  float64
}

// DefaultEnvelopeParams returns an instant gate: full level while pressed,
// silent immediately on release.
func DefaultEnvelopeParams() EnvelopeParams {
	return EnvelopeParams{AttackLevel: 1, SustainLevel: 1}
}

// Envelope is an immutable amplitude envelope. Edits build a new Envelope
// and assign it to the note.
type Envelope struct {
	p EnvelopeParams
}

// NewEnvelope returns an envelope with times clamped to >= 0 and levels
// clamped to [0, 1].
func NewEnvelope(p EnvelopeParams) *Envelope {
	p.AttackTime = nonNegative(p.AttackTime)
	p.DecayTime = nonNegative(p.DecayTime)
	p.ReleaseTime = nonNegative(p.ReleaseTime)
	p.AttackLevel = unit(p.AttackLevel)
	p.SustainLevel = unit(p.SustainLevel)
	return &Envelope{p: p}
}

// Params returns the envelope parameters.
func (e *Envelope) Params() EnvelopeParams { return e.p }

// AttackTime returns the attack time in seconds.
func (e *Envelope) AttackTime() float64 { return e.p.AttackTime }

// AttackLevel returns the peak level reached after the attack.
func (e *Envelope) AttackLevel() float64 { return e.p.AttackLevel }

// DecayTime returns the decay time in seconds.
func (e *Envelope) DecayTime() float64 { return e.p.DecayTime }

// SustainLevel returns the level held until release.
func (e *Envelope) SustainLevel() float64 { return e.p.SustainLevel }

// ReleaseTime returns the release time in seconds.
func (e *Envelope) ReleaseTime() float64 { return e.p.ReleaseTime }

// Stage is the position of a note within its envelope.
type Stage int

const (
	StageIdle Stage = iota
	StageAttack
	StageDecay
	StageSustain
	StageRelease
)

// String returns the stage name.
func (s Stage) String() string {
	switch s {
	case StageIdle:
		return "idle"
	case StageAttack:
		return "attack"
	case StageDecay:
		return "decay"
	case StageSustain:
		return "sustain"
	case StageRelease:
		return "release"
	default:
		return "unknown"
	}
}

var defaultEnvelope = NewEnvelope(DefaultEnvelopeParams())

// envelopeState runs an Envelope one sample at a time. Stage changes start
// from the current level, so retriggers and early releases never jump.
type envelopeState struct {
	stage       Stage
	level       float64
	releaseStep float64
}

func (s *envelopeState) press() {
	s.stage = StageAttack
}

func (s *envelopeState) release(e *Envelope, sampleRate float64) {
	if s.stage == StageIdle {
		return
	}
	s.stage = StageRelease
	s.releaseStep = s.level / math.Max(e.p.ReleaseTime*sampleRate, 1)
}

// next advances one sample and returns the level.
func (s *envelopeState) next(e *Envelope, sampleRate float64) float64 {
	p := e.p

	switch s.stage {
	case StageAttack:
		if p.AttackTime <= 0 {
			s.level = p.AttackLevel
			s.stage = StageDecay
			break
		}
		if s.level >= p.AttackLevel {
			s.stage = StageDecay
			break
		}
		s.level += p.AttackLevel / (p.AttackTime * sampleRate)
		if s.level >= p.AttackLevel {
			s.level = p.AttackLevel
			s.stage = StageDecay
		}
	case StageDecay:
		if p.DecayTime <= 0 {
			s.level = p.SustainLevel
			s.stage = StageSustain
			break
		}
		step := math.Abs(p.AttackLevel-p.SustainLevel) / (p.DecayTime * sampleRate)
		if step == 0 {
			step = 1 / (p.DecayTime * sampleRate)
		}
		if s.level > p.SustainLevel {
			s.level = math.Max(s.level-step, p.SustainLevel)
		} else {
			s.level = math.Min(s.level+step, p.SustainLevel)
		}
		if s.level == p.SustainLevel {
			s.stage = StageSustain
		}
	case StageSustain:
		s.level = p.SustainLevel
	case StageRelease:
		s.level -= s.releaseStep
		if s.level <= 0 || s.releaseStep <= 0 {
			s.level = 0
			s.stage = StageIdle
		}
	case StageIdle:
		s.level = 0
	}

	return s.level
}

func nonNegative(v float64) float64 {
	if v < 0 || math.IsNaN(v) {
		return 0
	}
	return v
}

func unit(v float64) float64 {
	if v < 0 || math.IsNaN(v) {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
