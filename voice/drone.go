package voice

import (
	"errors"
	"math"

	"github.com/cwbudde/algo-synthvoice/dsp/core"
	"github.com/cwbudde/algo-synthvoice/synth"
)

const (
	// DefaultDroneCount is the number of oscillators in a drone.
	DefaultDroneCount = 3
	// DefaultDroneRoot is the drone root frequency in Hz (C3).
	DefaultDroneRoot = 130.81

	droneFilterFloor = 40.0
	droneEnvelope    = 0.5
)

// ErrNilEngine is returned by voice constructors given a nil engine.
var ErrNilEngine = errors.New("voice: nil engine")

// Drone is a stack of oscillators sharing one amplitude graph and one pitch
// graph. Each oscillator can be tuned and detuned on its own for chorus
// and interval effects.
type Drone struct {
	Base
	tonal

	tune     Spread[float64]
	detune   Spread[float64]
	waveform []float64

	attackTime  float64
	releaseTime float64
}

// NewDrone creates a drone on engine and registers its blocks. It reads
// [WithCount], [WithRoot] and the filter options.
func NewDrone(engine Engine, opts ...Option) (*Drone, error) {
	if engine == nil {
		return nil, ErrNilEngine
	}

	cfg, err := applyOptions(config{count: DefaultDroneCount, root: DefaultDroneRoot}, opts)
	if err != nil {
		return nil, err
	}

	d := &Drone{
		tonal:       newTonal(cfg.root, 1/float64(cfg.count), engine.SampleRate()/2, droneFilterFloor),
		tune:        Uniform(0.0),
		detune:      Uniform(0.0),
		attackTime:  droneEnvelope,
		releaseTime: droneEnvelope,
	}

	notes := make([]*synth.Note, cfg.count)
	for i := range notes {
		notes[i] = &synth.Note{
			Frequency: cfg.root,
			Amplitude: d.amp,
			Bend:      d.bend,
		}
	}

	if err := d.init(engine, cfg, notes, d.tonalBlocks(), d.cutoff, d.filterMax, d.updateEnvelope); err != nil {
		return nil, err
	}
	d.updateRoot()
	return d, nil
}

// Press plays MIDI note n. It reports false if n is already held; the
// velocity is still updated.
func (d *Drone) Press(n int, velocity Velocity) bool {
	if !d.press(n, velocity) {
		return false
	}
	d.trigger(core.MIDIToHz(float64(n)))
	return true
}

// PressRoot plays the root frequency.
func (d *Drone) PressRoot(velocity Velocity) bool {
	if !d.press(1, velocity) {
		return false
	}
	d.trigger(d.root)
	return true
}

// Release releases the held note and the filter envelope.
func (d *Drone) Release() bool {
	if !d.Base.Release() {
		return false
	}
	d.filterEnv.Release()
	return true
}

func (d *Drone) updateRoot() {
	n := len(d.notes)
	for i, note := range d.notes {
		var octaves float64
		if d.detune.IsUniform() {
			if n > 1 {
				octaves = d.detune.At(0) * float64(i) / float64(n-1)
			}
		} else {
			octaves = d.detune.At(i)
		}
		octaves += d.tune.At(i)
		note.Frequency = d.root * math.Exp2(octaves)
	}
}

// SetRoot sets the root frequency in Hz. Non-positive values are ignored.
func (d *Drone) SetRoot(hz float64) {
	if math.IsNaN(hz) || hz <= 0 {
		return
	}
	d.root = hz
	d.updateRoot()
}

// Tune returns the tuning of each oscillator in octaves.
func (d *Drone) Tune() Spread[float64] { return d.tune }

// SetTune sets the tuning in octaves. A uniform value shifts every
// oscillator by the same amount.
func (d *Drone) SetTune(tune Spread[float64]) {
	d.tune = tune
	d.updateRoot()
}

// Detune returns the detuning of each oscillator in octaves.
func (d *Drone) Detune() Spread[float64] { return d.detune }

// SetDetune sets the detuning in octaves. A uniform value is spread
// linearly from 0 on the first oscillator to the full amount on the last;
// a single oscillator is not detuned.
func (d *Drone) SetDetune(detune Spread[float64]) {
	d.detune = detune
	d.updateRoot()
}

// Waveform returns the shared waveform. Nil means the engine default.
func (d *Drone) Waveform() []float64 { return d.waveform }

// SetWaveform sets the waveform of every oscillator.
func (d *Drone) SetWaveform(waveform []float64) {
	d.waveform = waveform
	for _, note := range d.notes {
		note.Waveform = waveform
	}
}

// SetAmplitude sets the base amplitude of each oscillator, clamped to
// [0, 1].
func (d *Drone) SetAmplitude(amplitude float64) {
	d.amplitude.Set(core.Clamp(amplitude, 0, 1))
}

// AttackTime returns the amplitude attack time in seconds.
func (d *Drone) AttackTime() float64 { return d.attackTime }

// SetAttackTime sets the amplitude attack time in seconds.
func (d *Drone) SetAttackTime(seconds float64) {
	d.attackTime = math.Max(seconds, 0)
	d.updateEnvelope()
}

// ReleaseTime returns the amplitude release time in seconds.
func (d *Drone) ReleaseTime() float64 { return d.releaseTime }

// SetReleaseTime sets the amplitude release time in seconds.
func (d *Drone) SetReleaseTime(seconds float64) {
	d.releaseTime = math.Max(seconds, 0)
	d.updateEnvelope()
}

func (d *Drone) updateEnvelope() {
	env := synth.NewEnvelope(synth.EnvelopeParams{
		AttackTime:   d.attackTime,
		AttackLevel:  1,
		SustainLevel: 1,
		ReleaseTime:  d.releaseTime,
	})
	for _, note := range d.notes {
		note.Envelope = env
	}
}
