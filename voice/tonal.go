package voice

import (
	"math"

	"github.com/cwbudde/algo-synthvoice/synth"
)

// tonal is the modulation graph shared by pitched voices: a glide ramp in
// the log2 domain, vibrato and tremolo, and a filter frequency driven by an
// attack/release envelope and a delayed LFO.
type tonal struct {
	root         float64
	maxFrequency float64

	amplitude *synth.Param
	glide     *Lerp
	tremolo   modulator
	vibrato   modulator
	filterLFO modulator
	filterEnv *AREnvelope

	amp       *synth.Math
	bend      *synth.Math
	cutoff    *synth.Param
	filterSum *synth.Math
	filterMax *synth.Math
}

func newTonal(root, amplitude, nyquist, filterFloor float64) tonal {
	t := tonal{
		root:         root,
		maxFrequency: nyquist,
		amplitude:    synth.NewParam(amplitude),
		glide:        NewLerp(0, 0),
		tremolo:      newModulator(),
		vibrato:      newModulator(),
		filterLFO:    newModulator(),
		filterEnv:    NewAREnvelope(0, 0, 0),
		cutoff:       synth.NewParam(nyquist),
	}
	t.amp = synth.NewMath(synth.OpSum, t.amplitude, t.tremolo.out, nil)
	t.bend = synth.NewMath(synth.OpSum, t.glide.Block(), t.vibrato.out, nil)
	t.filterSum = synth.NewMath(synth.OpSum, t.cutoff, t.filterEnv.Block(), t.filterLFO.out)
	t.filterMax = synth.NewMath(synth.OpMax, t.filterSum, synth.Constant(filterFloor), nil)
	return t
}

func (t *tonal) tonalBlocks() []synth.Block {
	var blocks []synth.Block
	blocks = append(blocks, t.glide.Blocks()...)
	blocks = append(blocks, t.filterEnv.Blocks()...)
	blocks = append(blocks, t.tremolo.blocks()...)
	blocks = append(blocks, t.vibrato.blocks()...)
	blocks = append(blocks, t.filterLFO.blocks()...)
	return append(blocks, t.amp, t.bend, t.filterSum, t.filterMax)
}

// trigger starts the modulation for a new note at hz.
func (t *tonal) trigger(hz float64) {
	t.SetFrequency(hz)
	t.filterEnv.Press()
	t.filterLFO.retrigger()
	t.tremolo.retrigger()
	t.vibrato.retrigger()
}

// Frequency returns the current glide frequency in Hz.
func (t *tonal) Frequency() float64 {
	return t.root * math.Exp2(t.glide.Value())
}

// SetFrequency glides to hz over the glide time. hz is clamped to
// (0, sampleRate/2].
func (t *tonal) SetFrequency(hz float64) {
	if math.IsNaN(hz) || hz <= 0 {
		return
	}
	hz = math.Min(hz, t.maxFrequency)
	t.glide.SetValue(math.Log2(hz / t.root))
}

// Root returns the root frequency in Hz.
func (t *tonal) Root() float64 { return t.root }

// Glide returns the glide time in seconds.
func (t *tonal) Glide() float64 { return t.glide.Rate() }

// SetGlide sets the time in seconds taken to move between frequencies.
func (t *tonal) SetGlide(seconds float64) { t.glide.SetRate(seconds) }

// Amplitude returns the base amplitude.
func (t *tonal) Amplitude() float64 { return t.amplitude.Value() }

// VibratoRate returns the vibrato LFO rate in Hz.
func (t *tonal) VibratoRate() float64 { return t.vibrato.rate() }

// SetVibratoRate sets the vibrato LFO rate in Hz.
func (t *tonal) SetVibratoRate(hz float64) { t.vibrato.setRate(hz) }

// VibratoDepth returns the vibrato depth in octaves.
func (t *tonal) VibratoDepth() float64 { return t.vibrato.depth() }

// SetVibratoDepth sets the vibrato depth in octaves.
func (t *tonal) SetVibratoDepth(octaves float64) { t.vibrato.setDepth(octaves) }

// VibratoDelay returns the vibrato fade-in time in seconds.
func (t *tonal) VibratoDelay() float64 { return t.vibrato.delayTime() }

// SetVibratoDelay sets the vibrato fade-in time in seconds.
func (t *tonal) SetVibratoDelay(seconds float64) { t.vibrato.setDelayTime(seconds) }

// TremoloRate returns the tremolo LFO rate in Hz.
func (t *tonal) TremoloRate() float64 { return t.tremolo.rate() }

// SetTremoloRate sets the tremolo LFO rate in Hz.
func (t *tonal) SetTremoloRate(hz float64) { t.tremolo.setRate(hz) }

// TremoloDepth returns the tremolo depth, added to the amplitude.
func (t *tonal) TremoloDepth() float64 { return t.tremolo.depth() }

// SetTremoloDepth sets the tremolo depth.
func (t *tonal) SetTremoloDepth(depth float64) { t.tremolo.setDepth(depth) }

// TremoloDelay returns the tremolo fade-in time in seconds.
func (t *tonal) TremoloDelay() float64 { return t.tremolo.delayTime() }

// SetTremoloDelay sets the tremolo fade-in time in seconds.
func (t *tonal) SetTremoloDelay(seconds float64) { t.tremolo.setDelayTime(seconds) }

// FilterRate returns the filter LFO rate in Hz.
func (t *tonal) FilterRate() float64 { return t.filterLFO.rate() }

// SetFilterRate sets the filter LFO rate in Hz.
func (t *tonal) SetFilterRate(hz float64) { t.filterLFO.setRate(hz) }

// FilterDepth returns the filter LFO depth in Hz.
func (t *tonal) FilterDepth() float64 { return t.filterLFO.depth() }

// SetFilterDepth sets the filter LFO depth in Hz.
func (t *tonal) SetFilterDepth(hz float64) { t.filterLFO.setDepth(hz) }

// FilterDelay returns the filter LFO fade-in time in seconds.
func (t *tonal) FilterDelay() float64 { return t.filterLFO.delayTime() }

// SetFilterDelay sets the filter LFO fade-in time in seconds.
func (t *tonal) SetFilterDelay(seconds float64) { t.filterLFO.setDelayTime(seconds) }

// FilterAttackTime returns the filter envelope attack time in seconds.
func (t *tonal) FilterAttackTime() float64 { return t.filterEnv.AttackTime() }

// SetFilterAttackTime sets the filter envelope attack time in seconds.
func (t *tonal) SetFilterAttackTime(seconds float64) { t.filterEnv.SetAttackTime(seconds) }

// FilterAmount returns the frequency in Hz the filter envelope adds while
// pressed.
func (t *tonal) FilterAmount() float64 { return t.filterEnv.Amount() }

// SetFilterAmount sets the filter envelope amount in Hz. Negative values
// close the filter.
func (t *tonal) SetFilterAmount(hz float64) { t.filterEnv.SetAmount(hz) }

// FilterReleaseTime returns the filter envelope release time in seconds.
func (t *tonal) FilterReleaseTime() float64 { return t.filterEnv.ReleaseTime() }

// SetFilterReleaseTime sets the filter envelope release time in seconds.
func (t *tonal) SetFilterReleaseTime(seconds float64) { t.filterEnv.SetReleaseTime(seconds) }

// FilterEnvelope returns the filter frequency envelope.
func (t *tonal) FilterEnvelope() *AREnvelope { return t.filterEnv }
