package voice

import (
	"math"
	"slices"

	"github.com/cwbudde/algo-synthvoice/dsp/core"
	"github.com/cwbudde/algo-synthvoice/dsp/filter/design"
	"github.com/cwbudde/algo-synthvoice/synth"
)

// Engine is the synthesis engine a voice plays on. *synth.Synthesizer
// implements it.
type Engine interface {
	SampleRate() float64
	// BlockFilters reports whether filters follow block inputs. When false
	// voices build static filters and refresh them from Update.
	BlockFilters() bool
	Press(notes ...*synth.Note)
	Release(notes ...*synth.Note)
	AddBlocks(blocks ...synth.Block) error
	RemoveBlocks(blocks ...synth.Block)
}

var _ Engine = (*synth.Synthesizer)(nil)

// MinResonance is the lowest filter Q, a critically damped response.
const MinResonance = design.DefaultQ

// Velocity is a normalized note velocity in [0, 1].
type Velocity float64

// MIDIVelocity converts a MIDI velocity (0-127) to a Velocity.
func MIDIVelocity(v int) Velocity {
	return Velocity(core.Clamp(float64(v)/127, 0, 1))
}

// Base holds the state shared by every voice: the held note number, the
// velocity response and the filter applied to all notes. Concrete voices
// embed it.
type Base struct {
	engine Engine
	notes  []*synth.Note
	blocks []synth.Block

	noteNum        int
	velocity       float64
	velocityAmount float64
	onVelocity     func()

	filter      *synth.Filter
	filterMode  synth.FilterMode
	filterBase  *synth.Param
	filterQ     *synth.Param
	filterInput synth.Input

	closed bool
}

// init wires the voice to engine and registers its blocks. filterInput is
// the filter frequency graph built around filterBase; nil uses filterBase
// directly.
func (b *Base) init(engine Engine, cfg config, notes []*synth.Note, blocks []synth.Block, filterBase *synth.Param, filterInput synth.Input, onVelocity func()) error {
	b.engine = engine
	b.notes = notes
	b.blocks = blocks
	b.noteNum = -1
	b.velocityAmount = 1
	b.onVelocity = onVelocity

	b.filterMode = cfg.filterMode
	b.filterBase = filterBase
	b.filterBase.Set(b.nyquist())
	if cfg.filterFrequency > 0 {
		b.filterBase.Set(b.clampFrequency(cfg.filterFrequency))
	}
	b.filterQ = synth.NewParam(MinResonance)
	b.filterInput = filterInput
	if b.filterInput == nil {
		b.filterInput = filterBase
	}
	b.buildFilter()

	if b.onVelocity != nil {
		b.onVelocity()
	}

	return engine.AddBlocks(blocks...)
}

func (b *Base) buildFilter() {
	if b.engine.BlockFilters() {
		b.filter = synth.NewBlockFilter(b.filterMode, b.filterInput, b.filterQ)
	} else {
		b.filter = synth.NewStaticFilter(b.filterMode, b.filterInput.Value(), b.filterQ.Value())
	}
	for _, n := range b.notes {
		n.Filter = b.filter
	}
}

// press records the note and velocity. It reports false when the note is
// already held, in which case only the velocity changes.
func (b *Base) press(note int, velocity Velocity) bool {
	b.velocity = core.Clamp(float64(velocity), 0, 1)
	if b.onVelocity != nil {
		b.onVelocity()
	}
	if note == b.noteNum {
		return false
	}
	b.noteNum = note
	b.engine.Press(b.notes...)
	return true
}

// Release releases the held note. It reports false if nothing was held.
func (b *Base) Release() bool {
	if !b.Pressed() {
		return false
	}
	b.noteNum = 0
	b.engine.Release(b.notes...)
	return true
}

// Pressed reports whether a note is held.
func (b *Base) Pressed() bool { return b.noteNum > 0 }

// NoteNumber returns the held MIDI note, 0 after a release and -1 before
// the first press.
func (b *Base) NoteNumber() int { return b.noteNum }

// Velocity returns the velocity of the last press.
func (b *Base) Velocity() float64 { return b.velocity }

// VelocityAmount returns how strongly the level follows velocity.
func (b *Base) VelocityAmount() float64 { return b.velocityAmount }

// SetVelocityAmount sets the velocity response in [0, 1]. 0 plays every
// note at full level, 1 uses the full dynamic range.
func (b *Base) SetVelocityAmount(amount float64) {
	b.velocityAmount = core.Clamp(amount, 0, 1)
	if b.onVelocity != nil {
		b.onVelocity()
	}
}

func (b *Base) velocityMod() float64 {
	return 1 - (1-b.velocity)*b.velocityAmount
}

// FilterMode returns the filter response.
func (b *Base) FilterMode() synth.FilterMode { return b.filterMode }

// SetFilterMode rebuilds the filter with a new response and attaches it to
// every note.
func (b *Base) SetFilterMode(mode synth.FilterMode) {
	b.filterMode = mode
	b.buildFilter()
}

// FilterFrequency returns the base filter frequency in Hz.
func (b *Base) FilterFrequency() float64 { return b.filterBase.Value() }

// SetFilterFrequency sets the base filter frequency, clamped to
// [1, sampleRate/2]. Modulation is added on top of it.
func (b *Base) SetFilterFrequency(hz float64) {
	b.filterBase.Set(b.clampFrequency(hz))
	b.refreshFilter()
}

// FilterResonance returns the filter Q.
func (b *Base) FilterResonance() float64 { return b.filterQ.Value() }

// SetFilterResonance sets the filter Q, clamped to at least [MinResonance].
func (b *Base) SetFilterResonance(q float64) {
	if math.IsNaN(q) || q < MinResonance {
		q = MinResonance
	}
	b.filterQ.Set(q)
	b.refreshFilter()
}

// Filter returns the filter shared by the voice's notes.
func (b *Base) Filter() *synth.Filter { return b.filter }

// Update refreshes state the engine cannot follow on its own. With static
// filters it copies the current filter modulation into the filter; call it
// once per control period. With block filters it does nothing.
func (b *Base) Update() {
	b.refreshFilter()
}

func (b *Base) refreshFilter() {
	if !b.filter.Static() {
		return
	}
	b.filter.SetFrequency(b.filterInput)
	b.filter.SetQ(b.filterQ)
}

// Notes returns the notes owned by the voice.
func (b *Base) Notes() []*synth.Note { return slices.Clone(b.notes) }

// Blocks returns the blocks the voice registered with its engine.
func (b *Base) Blocks() []synth.Block { return slices.Clone(b.blocks) }

// Close releases the voice and removes its blocks from the engine. The
// voice must not be used afterwards.
func (b *Base) Close() {
	if b.closed {
		return
	}
	b.closed = true
	if b.Pressed() {
		b.noteNum = 0
	}
	b.engine.Release(b.notes...)
	b.engine.RemoveBlocks(b.blocks...)
}

func (b *Base) nyquist() float64 { return b.engine.SampleRate() / 2 }

func (b *Base) clampFrequency(hz float64) float64 {
	if math.IsNaN(hz) {
		return b.nyquist()
	}
	return core.Clamp(hz, 1, b.nyquist())
}
