package synth

import (
	"github.com/cwbudde/algo-synthvoice/dsp/filter/biquad"
	"github.com/cwbudde/algo-synthvoice/dsp/interp"
)

var defaultNoteWaveform = []float64{1, 1, -1, -1}

// Note is one oscillator rendered by the synthesizer. Fields may be edited
// between control ticks while the note plays.
type Note struct {
	// Frequency is the base pitch in Hz.
	Frequency float64
	// Waveform is the single-cycle table. Nil selects a square wave.
	Waveform []float64
	// Amplitude scales the output. Nil means 1.
	Amplitude Input
	// Bend offsets the pitch in octaves. Nil means 0.
	Bend Input
	// Panning places the note from -1 (left) to 1 (right). Nil means center.
	Panning Input
	// Filter is applied to the oscillator output. Nil disables filtering.
	Filter *Filter
	// Envelope shapes the amplitude. Nil selects an instant gate.
	Envelope *Envelope
	// LoopStart and LoopEnd bound the looped region of Waveform in samples.
	// A LoopEnd of 0 loops to the end of the table.
	LoopStart, LoopEnd int

	phase   float64
	env     envelopeState
	section biquad.Section
}

// NewNote returns a note at frequency with default parameters.
func NewNote(frequency float64) *Note {
	return &Note{Frequency: frequency}
}

// Stage returns the current envelope stage.
func (n *Note) Stage() Stage { return n.env.stage }

// Level returns the current envelope level.
func (n *Note) Level() float64 { return n.env.level }

func (n *Note) envelope() *Envelope {
	if n.Envelope == nil {
		return defaultEnvelope
	}
	return n.Envelope
}

func (n *Note) waveform() []float64 {
	if len(n.Waveform) == 0 {
		return defaultNoteWaveform
	}
	return n.Waveform
}

// loop returns the looped index range [start, end) for a table of size.
func (n *Note) loop(size int) (int, int) {
	start, end := n.LoopStart, n.LoopEnd
	if end <= 0 || end > size {
		end = size
	}
	if start < 0 {
		start = 0
	}
	if end-start < 1 {
		return 0, size
	}
	return start, end
}

// oscillate renders len(buf) raw oscillator samples at step table samples
// per frame. Playback runs from the start of the table and wraps inside the
// loop region once it reaches the loop end.
func (n *Note) oscillate(buf []float64, step float64, mode interp.Mode) {
	table := n.waveform()
	start, end := n.loop(len(table))
	span := float64(end - start)

	if n.phase < 0 || n.phase >= float64(end) {
		n.phase = float64(start)
	}

	for i := range buf {
		buf[i] = interp.Loop(mode, table, start, end, n.phase)

		n.phase += step
		for n.phase >= float64(end) {
			n.phase -= span
		}
	}
}
