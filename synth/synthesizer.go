package synth

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-synthvoice/dsp/core"
	"github.com/cwbudde/algo-synthvoice/dsp/interp"
	"github.com/cwbudde/algo-vecmath"
)

// Option configures a Synthesizer.
type Option func(*Synthesizer)

// WithStaticFilters reports to voices that filters cannot follow block
// inputs, so they build static filters and poll modulation in Update.
func WithStaticFilters() Option {
	return func(s *Synthesizer) {
		s.blockFilters = false
	}
}

// WithInterpolation selects how note waveforms are read between table
// samples. The default is linear.
func WithInterpolation(mode interp.Mode) Option {
	return func(s *Synthesizer) {
		s.interp = mode
	}
}

// Synthesizer renders notes and advances registered blocks.
type Synthesizer struct {
	cfg          core.ProcessorConfig
	blockFilters bool
	interp       interp.Mode

	blocks     []Block
	registered map[Block]struct{}
	notes      []*Note

	untilTick int
	voiceBuf  []float64
	mixBuf    []float64
}

// New creates a synthesizer for cfg.
func New(cfg core.ProcessorConfig, opts ...Option) (*Synthesizer, error) {
	if cfg.SampleRate <= 0 || math.IsNaN(cfg.SampleRate) || math.IsInf(cfg.SampleRate, 0) {
		return nil, fmt.Errorf("%w: sample rate must be > 0 and finite: %f", ErrInvalidConfig, cfg.SampleRate)
	}
	if cfg.BlockSize <= 0 {
		return nil, fmt.Errorf("%w: block size must be > 0: %d", ErrInvalidConfig, cfg.BlockSize)
	}

	s := &Synthesizer{
		cfg:          cfg,
		blockFilters: true,
		registered:   make(map[Block]struct{}),
		voiceBuf:     make([]float64, cfg.BlockSize),
		mixBuf:       make([]float64, cfg.BlockSize),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s, nil
}

// Config returns the processor configuration.
func (s *Synthesizer) Config() core.ProcessorConfig { return s.cfg }

// SampleRate returns the output sample rate in Hz.
func (s *Synthesizer) SampleRate() float64 { return s.cfg.SampleRate }

// BlockFilters reports whether filters follow block inputs every tick.
func (s *Synthesizer) BlockFilters() bool { return s.blockFilters }

// Interpolation returns the waveform interpolation mode.
func (s *Synthesizer) Interpolation() interp.Mode { return s.interp }

// Press starts notes. A note that is already sounding restarts its attack
// from its current level.
func (s *Synthesizer) Press(notes ...*Note) {
	for _, n := range notes {
		if n == nil {
			continue
		}
		if !s.Playing(n) {
			n.phase = 0
			n.env = envelopeState{}
			n.section.Reset()
			s.notes = append(s.notes, n)
		}
		n.env.press()
	}
}

// Release moves sounding notes into their release stage.
func (s *Synthesizer) Release(notes ...*Note) {
	for _, n := range notes {
		if n == nil || !s.Playing(n) {
			continue
		}
		n.env.release(n.envelope(), s.cfg.SampleRate)
	}
}

// Playing reports whether n is being rendered.
func (s *Synthesizer) Playing(n *Note) bool {
	for _, p := range s.notes {
		if p == n {
			return true
		}
	}
	return false
}

// Active returns the number of notes being rendered.
func (s *Synthesizer) Active() int { return len(s.notes) }

// AddBlocks registers blocks so they advance every control tick. Nothing
// is registered if any block is nil or already registered.
func (s *Synthesizer) AddBlocks(blocks ...Block) error {
	seen := make(map[Block]struct{}, len(blocks))
	for _, b := range blocks {
		if b == nil {
			return fmt.Errorf("synth: nil block")
		}
		if _, ok := s.registered[b]; ok {
			return fmt.Errorf("%w: %T", ErrBlockRegistered, b)
		}
		if _, ok := seen[b]; ok {
			return fmt.Errorf("%w: %T listed twice", ErrBlockRegistered, b)
		}
		seen[b] = struct{}{}
	}

	for _, b := range blocks {
		s.registered[b] = struct{}{}
		s.blocks = append(s.blocks, b)
	}
	return nil
}

// RemoveBlocks unregisters blocks. Unknown blocks are ignored.
func (s *Synthesizer) RemoveBlocks(blocks ...Block) {
	for _, b := range blocks {
		if _, ok := s.registered[b]; !ok {
			continue
		}
		delete(s.registered, b)
		for i, r := range s.blocks {
			if r == b {
				s.blocks = append(s.blocks[:i], s.blocks[i+1:]...)
				break
			}
		}
	}
}

// Registered reports whether b is registered.
func (s *Synthesizer) Registered(b Block) bool {
	_, ok := s.registered[b]
	return ok
}

// Blocks returns a copy of the registered blocks in registration order.
func (s *Synthesizer) Blocks() []Block {
	out := make([]Block, len(s.blocks))
	copy(out, s.blocks)
	return out
}

// Tick advances every registered block by one control period.
func (s *Synthesizer) Tick() {
	dt := s.cfg.ControlPeriod()
	for _, b := range s.blocks {
		b.Step(dt)
	}
}

// Render renders len(left) frames. Notes are panned with an equal-power
// law when right is non-nil; a nil right renders a mono mix into left.
// Blocks advance at the start of every control period.
func (s *Synthesizer) Render(left, right []float64) {
	n := len(left)
	if right != nil && len(right) < n {
		n = len(right)
	}

	for pos := 0; pos < n; {
		if s.untilTick == 0 {
			s.Tick()
			s.untilTick = s.cfg.BlockSize
		}

		chunk := min(s.untilTick, n-pos)
		var r []float64
		if right != nil {
			r = right[pos : pos+chunk]
		}
		s.renderChunk(left[pos:pos+chunk], r)

		pos += chunk
		s.untilTick -= chunk
	}
}

func (s *Synthesizer) renderChunk(left, right []float64) {
	clear(left)
	clear(right)

	sr := s.cfg.SampleRate
	nyquist := s.cfg.Nyquist()
	voice := s.voiceBuf[:len(left)]
	mix := s.mixBuf[:len(left)]

	for _, n := range s.notes {
		freq := n.Frequency * exp2(ValueOr(n.Bend, 0))
		if freq <= 0 || math.IsNaN(freq) {
			freq = 0
		} else if freq > nyquist {
			freq = nyquist
		}

		table := n.waveform()
		n.oscillate(voice, freq*float64(len(table))/sr, s.interp)

		if n.Filter != nil {
			n.section.SetCoefficients(n.Filter.Coefficients(sr))
			n.section.ProcessBlock(voice)
		}

		amp := ValueOr(n.Amplitude, 1)
		env := n.envelope()
		for i := range voice {
			voice[i] *= amp * n.env.next(env, sr)
		}

		if right == nil {
			vecmath.AddBlockInPlace(left, voice)
			continue
		}

		pan := core.Clamp(ValueOr(n.Panning, 0), -1, 1)
		angle := (pan + 1) * math.Pi / 4
		vecmath.ScaleBlock(mix, voice, math.Cos(angle))
		vecmath.AddBlockInPlace(left, mix)
		vecmath.ScaleBlock(mix, voice, math.Sin(angle))
		vecmath.AddBlockInPlace(right, mix)
	}

	s.dropFinished()
}

func (s *Synthesizer) dropFinished() {
	kept := s.notes[:0]
	for _, n := range s.notes {
		if n.env.stage != StageIdle {
			kept = append(kept, n)
		}
	}
	clear(s.notes[len(kept):])
	s.notes = kept
}
