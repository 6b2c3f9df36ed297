package voice

import (
	"math"

	"github.com/cwbudde/algo-synthvoice/dsp/core"
	"github.com/cwbudde/algo-synthvoice/synth"
)

const (
	// DefaultPercussiveCount is the number of notes in a percussive voice.
	DefaultPercussiveCount = 3
	// DefaultPercussiveFilterFrequency is the default filter frequency in Hz.
	DefaultPercussiveFilterFrequency = 20000.0
	// DefaultPercussiveFrequency is the default note frequency in Hz.
	DefaultPercussiveFrequency = 440.0
	// DefaultPercussiveTime is the default decay time in seconds.
	DefaultPercussiveTime = 1.0
)

// Percussive is a single-shot drum voice. Every press restarts all notes
// from their attack level; each note decays to silence at its own rate and
// there is no release phase. A short pitch drop shared by all notes adds a
// click to the attack.
type Percussive struct {
	Base

	frequencies Spread[float64]
	times       Spread[float64]
	waveforms   Spread[[]float64]
	tune        float64
	attackLevel float64
	decay       float64

	click     *synth.LFO
	amplitude *synth.Param
	pan       *synth.Param
}

// NewPercussive creates a percussive voice on engine and registers its
// click generator. It reads [WithCount], [WithFilterMode],
// [WithFilterFrequency], [WithFrequencies], [WithTimes] and
// [WithWaveforms].
func NewPercussive(engine Engine, opts ...Option) (*Percussive, error) {
	if engine == nil {
		return nil, ErrNilEngine
	}

	cfg, err := applyOptions(config{
		count:           DefaultPercussiveCount,
		filterFrequency: DefaultPercussiveFilterFrequency,
		frequencies:     Uniform(DefaultPercussiveFrequency),
		times:           Uniform(DefaultPercussiveTime),
	}, opts)
	if err != nil {
		return nil, err
	}

	p := &Percussive{
		frequencies: cfg.frequencies,
		times:       cfg.times,
		attackLevel: 1,
		click: synth.NewLFO(
			synth.WithWaveform([]float64{1, -1}),
			synth.WithRate(20),
			synth.WithScale(0.3),
			synth.WithOffset(0.33),
			synth.Once(),
		),
		amplitude: synth.NewParam(1),
		pan:       synth.NewParam(0),
	}

	notes := make([]*synth.Note, cfg.count)
	for i := range notes {
		notes[i] = &synth.Note{
			Amplitude: p.amplitude,
			Bend:      p.click,
			Panning:   p.pan,
		}
	}

	if err := p.init(engine, cfg, notes, []synth.Block{p.click}, synth.NewParam(0), nil, p.updateEnvelope); err != nil {
		return nil, err
	}
	p.updateFrequencies()
	p.SetWaveforms(cfg.waveforms)
	return p, nil
}

// Press restarts the voice. It always reports true.
func (p *Percussive) Press(velocity Velocity) bool {
	p.Base.Release()
	p.press(1, velocity)
	p.click.Retrigger()
	return true
}

// Release does nothing; percussive notes always decay on their own. It
// always reports false.
func (p *Percussive) Release() bool { return false }

// Click returns the shared pitch-drop generator.
func (p *Percussive) Click() *synth.LFO { return p.click }

func (p *Percussive) updateFrequencies() {
	scale := math.Exp2(p.tune / 12)
	for i, note := range p.notes {
		note.Frequency = p.frequencies.At(i) * scale
	}
}

// Frequencies returns the base note frequencies in Hz.
func (p *Percussive) Frequencies() Spread[float64] { return p.frequencies }

// SetFrequencies sets the base note frequencies in Hz. An empty spread is
// ignored.
func (p *Percussive) SetFrequencies(frequencies Spread[float64]) {
	if frequencies.Len() == 0 {
		return
	}
	p.frequencies = frequencies
	p.updateFrequencies()
}

// Tune returns the tuning in semitones.
func (p *Percussive) Tune() float64 { return p.tune }

// SetTune transposes every note by semitones.
func (p *Percussive) SetTune(semitones float64) {
	p.tune = semitones
	p.updateFrequencies()
}

// Times returns the base decay times in seconds.
func (p *Percussive) Times() Spread[float64] { return p.times }

// SetTimes sets the base decay times in seconds. An empty spread is
// ignored.
func (p *Percussive) SetTimes(times Spread[float64]) {
	if times.Len() == 0 {
		return
	}
	p.times = times
	p.updateEnvelope()
}

// Waveforms returns the note waveforms.
func (p *Percussive) Waveforms() Spread[[]float64] { return p.waveforms }

// SetWaveforms sets the note waveforms. An empty spread is ignored.
func (p *Percussive) SetWaveforms(waveforms Spread[[]float64]) {
	if waveforms.Len() == 0 {
		return
	}
	p.waveforms = waveforms
	for i, note := range p.notes {
		note.Waveform = waveforms.At(i)
	}
}

// Amplitude returns the voice level.
func (p *Percussive) Amplitude() float64 { return p.amplitude.Value() }

// SetAmplitude sets the voice level, clamped to [0, 1].
func (p *Percussive) SetAmplitude(amplitude float64) {
	p.amplitude.Set(core.Clamp(amplitude, 0, 1))
}

// Pan returns the stereo position from -1 (left) to 1 (right).
func (p *Percussive) Pan() float64 { return p.pan.Value() }

// SetPan sets the stereo position, clamped to [-1, 1].
func (p *Percussive) SetPan(pan float64) {
	p.pan.Set(core.Clamp(pan, -1, 1))
}

// AttackLevel returns the level each hit starts at, before velocity.
func (p *Percussive) AttackLevel() float64 { return p.attackLevel }

// SetAttackLevel sets the attack level, clamped to [0, 1].
func (p *Percussive) SetAttackLevel(level float64) {
	p.attackLevel = core.Clamp(level, 0, 1)
	p.updateEnvelope()
}

// DecayTime returns the decay scaling in octaves.
func (p *Percussive) DecayTime() float64 { return p.decay }

// SetDecayTime scales every decay time by 2^octaves: 1 doubles the decay,
// -1 halves it.
func (p *Percussive) SetDecayTime(octaves float64) {
	p.decay = octaves
	p.updateEnvelope()
}

// Envelope returns the envelope of note i.
func (p *Percussive) Envelope(i int) *synth.Envelope {
	return p.notes[i%len(p.notes)].Envelope
}

func (p *Percussive) updateEnvelope() {
	level := p.velocityMod() * p.attackLevel
	scale := math.Exp2(p.decay)
	for i, note := range p.notes {
		note.Envelope = synth.NewEnvelope(synth.EnvelopeParams{
			AttackLevel: level,
			DecayTime:   p.times.At(i) * scale,
		})
	}
}
