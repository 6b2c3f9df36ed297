package voice

import "github.com/cwbudde/algo-synthvoice/synth"

// modulator is an LFO whose depth fades in over a one-shot delay ramp. The
// delay restarts on every press, so modulation never starts abruptly.
type modulator struct {
	lfo   *synth.LFO
	delay *synth.LFO
	out   *synth.Math
}

func newModulator() modulator {
	lfo := synth.NewLFO(synth.WithScale(0))
	delay := synth.NewLFO(
		synth.WithWaveform([]float64{0, 1}),
		synth.WithRate(1/MinRampTime),
		synth.Once(),
	)
	return modulator{
		lfo:   lfo,
		delay: delay,
		out:   synth.NewMath(synth.OpProduct, lfo, delay, nil),
	}
}

func (m modulator) blocks() []synth.Block {
	return []synth.Block{m.lfo, m.delay, m.out}
}

func (m modulator) retrigger() { m.delay.Retrigger() }

func (m modulator) rate() float64 { return m.lfo.Rate() }

func (m modulator) setRate(hz float64) { m.lfo.SetRate(hz) }

func (m modulator) depth() float64 { return m.lfo.Scale() }

func (m modulator) setDepth(depth float64) { m.lfo.SetScale(depth) }

func (m modulator) delayTime() float64 { return 1 / m.delay.Rate() }

func (m modulator) setDelayTime(seconds float64) {
	m.delay.SetRate(1 / clampTime(seconds))
}
