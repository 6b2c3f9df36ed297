package percussive

import (
	"math"
	"testing"

	"github.com/cwbudde/algo-synthvoice/dsp/core"
	"github.com/cwbudde/algo-synthvoice/synth"
	"github.com/cwbudde/algo-synthvoice/voice"
)

func newSynth(t *testing.T) *synth.Synthesizer {
	t.Helper()
	s, err := synth.New(core.ApplyProcessorOptions(core.WithSampleRate(48000), core.WithBlockSize(64)))
	if err != nil {
		t.Fatalf("synth.New() error = %v", err)
	}
	return s
}

func frequencies(p *voice.Percussive) []float64 {
	var out []float64
	for _, n := range p.Notes() {
		out = append(out, n.Frequency)
	}
	return out
}

func decays(p *voice.Percussive) []float64 {
	var out []float64
	for i := range p.Notes() {
		out = append(out, p.Envelope(i).DecayTime())
	}
	return out
}

func equal(a, b []float64) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if math.Abs(a[i]-b[i]) > 1e-9 {
			return false
		}
	}
	return true
}

func TestPresets(t *testing.T) {
	tests := []struct {
		name    string
		preset  Preset
		mode    synth.FilterMode
		filter  float64
		freqs   []float64
		decays  []float64
		waveLen int
	}{
		{"kick", Kick, synth.FilterLowPass, 2000, []float64{53, 72, 41}, []float64{0.075, 0.055, 0.095}, 256},
		{"snare", Snare, synth.FilterLowPass, 9500, []float64{90, 135, 165}, []float64{0.115, 0.095, 0.115}, 256},
		{"closed hat", ClosedHat, synth.FilterHighPass, 9500, []float64{90, 135, 165}, []float64{0.1125, 0.0925, 0.1125}, 256},
		{"open hat", OpenHat, synth.FilterHighPass, 9500, []float64{90, 135, 165}, []float64{0.625, 0.605, 0.625}, 256},
		{"ride", Ride, synth.FilterHighPass, 18000, []float64{90, 135, 165}, []float64{1.25, 1.23, 1.25}, 256},
		{"high tom", HighTom, synth.FilterLowPass, 4000, []float64{277.645, 277.645}, []float64{0.275, 0.025}, 256},
		{"mid tom", MidTom, synth.FilterLowPass, 4000, []float64{196.325, 196.325}, []float64{0.275, 0.025}, 256},
		{"floor tom", FloorTom, synth.FilterLowPass, 4000, []float64{131.685, 131.685}, []float64{0.375, 0.025}, 256},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := tt.preset(newSynth(t))
			if err != nil {
				t.Fatalf("preset error = %v", err)
			}
			if p.FilterMode() != tt.mode {
				t.Fatalf("filter mode = %v, want %v", p.FilterMode(), tt.mode)
			}
			if p.FilterFrequency() != tt.filter {
				t.Fatalf("filter frequency = %v, want %v", p.FilterFrequency(), tt.filter)
			}
			if got := frequencies(p); !equal(got, tt.freqs) {
				t.Fatalf("frequencies = %v, want %v", got, tt.freqs)
			}
			if got := decays(p); !equal(got, tt.decays) {
				t.Fatalf("decays = %v, want %v", got, tt.decays)
			}
			for i, n := range p.Notes() {
				if len(n.Waveform) != tt.waveLen {
					t.Fatalf("note %d waveform length = %d, want %d", i, len(n.Waveform), tt.waveLen)
				}
			}
		})
	}
}

func TestCymbalMinimumTime(t *testing.T) {
	p, err := Cymbal(newSynth(t), 0.01, DefaultCymbalFrequency)
	if err != nil {
		t.Fatal(err)
	}
	if got := decays(p); !equal(got, []float64{0.01, 0.001, 0.01}) {
		t.Fatalf("decays = %v, want [0.01 0.001 0.01]", got)
	}

	if _, err := Cymbal(newSynth(t), 0.1, 0); err == nil {
		t.Fatal("expected error for zero filter frequency")
	}
}

func TestKit(t *testing.T) {
	s := newSynth(t)
	kit, err := Kit(s)
	if err != nil {
		t.Fatal(err)
	}
	if len(kit) != len(KitPresets) {
		t.Fatalf("kit size = %d, want %d", len(kit), len(KitPresets))
	}

	registered := 0
	for _, v := range kit {
		registered += len(v.Blocks())
	}
	if len(s.Blocks()) != registered {
		t.Fatalf("engine blocks = %d, want %d", len(s.Blocks()), registered)
	}

	kit[0].Press(1)
	left := make([]float64, 4800)
	right := make([]float64, 4800)
	s.Render(left, right)

	peak := 0.0
	for i := range left {
		peak = math.Max(peak, math.Abs(left[i])+math.Abs(right[i]))
	}
	if peak == 0 {
		t.Fatal("kick rendered silence")
	}

	for _, v := range kit {
		v.Close()
	}
	if len(s.Blocks()) != 0 {
		t.Fatalf("engine blocks after Close = %d, want 0", len(s.Blocks()))
	}
}
