package voice

import (
	"math"

	"github.com/cwbudde/algo-synthvoice/dsp/core"
	"github.com/cwbudde/algo-synthvoice/synth"
)

const (
	// DefaultOscillatorRoot is the oscillator root frequency in Hz (A4).
	DefaultOscillatorRoot = 440.0

	oscillatorFilterFloor = 50.0
)

// Oscillator is a monophonic voice with a single note: ADSR amplitude
// envelope, glide, pitch slew and pitch bend, vibrato, tremolo, auto-pan,
// filter envelope and filter LFO, and waveform looping.
type Oscillator struct {
	Base
	tonal

	coarseTune float64
	fineTune   float64
	bendRange  float64
	bendAmount float64
	loopStart  float64
	loopEnd    float64

	attackTime   float64
	attackLevel  float64
	decayTime    float64
	sustainLevel float64
	releaseTime  float64

	note      *synth.Note
	pitchBend *Lerp
	pitchSlew *synth.LFO
	slew      *synth.Math
	panOffset *synth.Param
	pan       modulator
	panning   *synth.Math
}

// NewOscillator creates an oscillator on engine and registers its blocks.
// It reads [WithRoot] and the filter options.
func NewOscillator(engine Engine, opts ...Option) (*Oscillator, error) {
	if engine == nil {
		return nil, ErrNilEngine
	}

	cfg, err := applyOptions(config{root: DefaultOscillatorRoot}, opts)
	if err != nil {
		return nil, err
	}

	o := &Oscillator{
		tonal:        newTonal(cfg.root, 1, engine.SampleRate()/2, oscillatorFilterFloor),
		loopEnd:      1,
		attackLevel:  1,
		sustainLevel: 0.75,
		pitchBend:    NewLerp(0, 0),
		pitchSlew: synth.NewLFO(
			synth.WithWaveform([]float64{1, 0}),
			synth.WithRate(1/MinRampTime),
			synth.WithScale(0),
			synth.Once(),
		),
		panOffset: synth.NewParam(0),
		pan:       newModulator(),
	}
	o.slew = synth.NewMath(synth.OpSum, o.pitchSlew, o.pitchBend.Block(), nil)
	o.bend.C = o.slew
	o.panning = synth.NewMath(synth.OpSum, o.panOffset, o.pan.out, nil)

	o.note = &synth.Note{
		Frequency: cfg.root,
		Amplitude: o.amp,
		Bend:      o.bend,
		Panning:   o.panning,
	}

	blocks := o.tonalBlocks()
	blocks = append(blocks, o.pitchBend.Blocks()...)
	blocks = append(blocks, o.pan.blocks()...)
	blocks = append(blocks, o.pitchSlew, o.slew, o.panning)

	if err := o.init(engine, cfg, []*synth.Note{o.note}, blocks, o.cutoff, o.filterMax, o.updateEnvelope); err != nil {
		return nil, err
	}
	o.updateRoot()
	return o, nil
}

// Note returns the oscillator's note.
func (o *Oscillator) Note() *synth.Note { return o.note }

// Press plays MIDI note n. It reports false if n is already held; the
// velocity is still applied to the envelope.
func (o *Oscillator) Press(n int, velocity Velocity) bool {
	if !o.press(n, velocity) {
		return false
	}
	o.trigger(core.MIDIToHz(float64(n)))
	o.pitchSlew.Retrigger()
	o.pan.retrigger()
	return true
}

// Release releases the note and the filter envelope.
func (o *Oscillator) Release() bool {
	if !o.Base.Release() {
		return false
	}
	o.filterEnv.Release()
	return true
}

func (o *Oscillator) updateRoot() {
	o.note.Frequency = o.root * math.Exp2(o.coarseTune+o.fineTune/12)
}

// CoarseTune returns the tuning in octaves.
func (o *Oscillator) CoarseTune() float64 { return o.coarseTune }

// SetCoarseTune sets the tuning in octaves: 1 doubles the frequency.
func (o *Oscillator) SetCoarseTune(octaves float64) {
	o.coarseTune = octaves
	o.updateRoot()
}

// FineTune returns the tuning in semitones.
func (o *Oscillator) FineTune() float64 { return o.fineTune }

// SetFineTune sets the tuning in semitones.
func (o *Oscillator) SetFineTune(semitones float64) {
	o.fineTune = semitones
	o.updateRoot()
}

// BendRange returns the full-scale pitch bend in octaves.
func (o *Oscillator) BendRange() float64 { return o.bendRange }

// SetBendRange sets the full-scale pitch bend in octaves. Negative ranges
// invert the bend.
func (o *Oscillator) SetBendRange(octaves float64) {
	o.bendRange = octaves
	o.pitchBend.SetValue(o.bendAmount * o.bendRange)
}

// Bend returns the pitch bend position.
func (o *Oscillator) Bend() float64 { return o.bendAmount }

// SetBend sets the pitch bend position, scaled by the bend range.
func (o *Oscillator) SetBend(bend float64) {
	o.bendAmount = bend
	o.pitchBend.SetValue(o.bendAmount * o.bendRange)
}

// PitchBend returns the ramp that smooths pitch bend changes.
func (o *Oscillator) PitchBend() *Lerp { return o.pitchBend }

// PitchSlew returns the pitch offset in octaves each press starts from.
func (o *Oscillator) PitchSlew() float64 { return o.pitchSlew.Scale() }

// SetPitchSlew sets the pitch offset in octaves each press starts from.
func (o *Oscillator) SetPitchSlew(octaves float64) { o.pitchSlew.SetScale(octaves) }

// PitchSlewTime returns the time in seconds the pitch slew takes to settle.
func (o *Oscillator) PitchSlewTime() float64 { return 1 / o.pitchSlew.Rate() }

// SetPitchSlewTime sets the pitch slew time in seconds.
func (o *Oscillator) SetPitchSlewTime(seconds float64) {
	o.pitchSlew.SetRate(1 / clampTime(seconds))
}

// SetAmplitude sets the base amplitude, clamped to [0, 1].
func (o *Oscillator) SetAmplitude(amplitude float64) {
	o.amplitude.Set(core.Clamp(amplitude, 0, 1))
}

// Pan returns the stereo position from -1 (left) to 1 (right).
func (o *Oscillator) Pan() float64 { return o.panOffset.Value() }

// SetPan sets the stereo position, clamped to [-1, 1].
func (o *Oscillator) SetPan(pan float64) {
	o.panOffset.Set(core.Clamp(pan, -1, 1))
}

// PanRate returns the auto-pan LFO rate in Hz.
func (o *Oscillator) PanRate() float64 { return o.pan.rate() }

// SetPanRate sets the auto-pan LFO rate in Hz.
func (o *Oscillator) SetPanRate(hz float64) { o.pan.setRate(hz) }

// PanDepth returns the auto-pan depth.
func (o *Oscillator) PanDepth() float64 { return o.pan.depth() }

// SetPanDepth sets the auto-pan depth. Negative values invert the LFO.
func (o *Oscillator) SetPanDepth(depth float64) { o.pan.setDepth(depth) }

// PanDelay returns the auto-pan fade-in time in seconds.
func (o *Oscillator) PanDelay() float64 { return o.pan.delayTime() }

// SetPanDelay sets the auto-pan fade-in time in seconds.
func (o *Oscillator) SetPanDelay(seconds float64) { o.pan.setDelayTime(seconds) }

// Waveform returns the note waveform. Nil means the engine default.
func (o *Oscillator) Waveform() []float64 { return o.note.Waveform }

// SetWaveform sets the note waveform and recomputes the loop indices.
func (o *Oscillator) SetWaveform(waveform []float64) {
	o.note.Waveform = waveform
	o.applyWaveformLoop()
}

// WaveformLoop returns the loop points as fractions of the waveform.
func (o *Oscillator) WaveformLoop() (start, end float64) {
	return o.loopStart, o.loopEnd
}

// SetWaveformLoop sets the loop points as fractions of the waveform. Both
// are clamped to [0, 1] with end >= start. The loop always spans at least
// two samples.
func (o *Oscillator) SetWaveformLoop(start, end float64) {
	o.loopStart = core.Clamp(start, 0, 1)
	o.loopEnd = core.Clamp(end, o.loopStart, 1)
	o.applyWaveformLoop()
}

func (o *Oscillator) applyWaveformLoop() {
	size := len(o.note.Waveform)
	if size < 2 {
		return
	}
	start := min(max(int(o.loopStart*float64(size)), 0), size-2)
	end := min(max(int(o.loopEnd*float64(size)), start+2), size)
	o.note.LoopStart = start
	o.note.LoopEnd = end
}

// AttackTime returns the amplitude attack time in seconds.
func (o *Oscillator) AttackTime() float64 { return o.attackTime }

// SetAttackTime sets the amplitude attack time in seconds.
func (o *Oscillator) SetAttackTime(seconds float64) {
	o.attackTime = math.Max(seconds, 0)
	o.updateEnvelope()
}

// AttackLevel returns the level reached after the attack, before velocity.
func (o *Oscillator) AttackLevel() float64 { return o.attackLevel }

// SetAttackLevel sets the attack level, clamped to [0, 1].
func (o *Oscillator) SetAttackLevel(level float64) {
	o.attackLevel = core.Clamp(level, 0, 1)
	o.updateEnvelope()
}

// DecayTime returns the amplitude decay time in seconds.
func (o *Oscillator) DecayTime() float64 { return o.decayTime }

// SetDecayTime sets the amplitude decay time in seconds.
func (o *Oscillator) SetDecayTime(seconds float64) {
	o.decayTime = math.Max(seconds, 0)
	o.updateEnvelope()
}

// SustainLevel returns the held level, before velocity.
func (o *Oscillator) SustainLevel() float64 { return o.sustainLevel }

// SetSustainLevel sets the sustain level, clamped to [0, 1].
func (o *Oscillator) SetSustainLevel(level float64) {
	o.sustainLevel = core.Clamp(level, 0, 1)
	o.updateEnvelope()
}

// ReleaseTime returns the amplitude release time in seconds.
func (o *Oscillator) ReleaseTime() float64 { return o.releaseTime }

// SetReleaseTime sets the amplitude release time in seconds.
func (o *Oscillator) SetReleaseTime(seconds float64) {
	o.releaseTime = math.Max(seconds, 0)
	o.updateEnvelope()
}

// Envelope returns the envelope currently assigned to the note.
func (o *Oscillator) Envelope() *synth.Envelope { return o.note.Envelope }

func (o *Oscillator) updateEnvelope() {
	mod := o.velocityMod()
	o.note.Envelope = synth.NewEnvelope(synth.EnvelopeParams{
		AttackTime:   o.attackTime,
		AttackLevel:  mod * o.attackLevel,
		DecayTime:    o.decayTime,
		SustainLevel: mod * o.sustainLevel,
		ReleaseTime:  o.releaseTime,
	})
}
