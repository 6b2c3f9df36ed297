package main

import (
	"cmp"
	"fmt"
	"maps"
	"slices"

	"github.com/cwbudde/algo-synthvoice/dsp/waveform"
	"github.com/cwbudde/algo-synthvoice/synth"
	"github.com/cwbudde/algo-synthvoice/voice"
	"github.com/cwbudde/algo-synthvoice/voice/percussive"
)

// event is a voice action scheduled at a time in seconds.
type event struct {
	at float64
	do func()
}

// updater is implemented by voices that need polling for static filters.
type updater interface {
	Update()
}

// performance is a set of voices and the events that play them.
type performance struct {
	voices []updater
	events []event
	close  func()
}

type script func(engine *synth.Synthesizer, duration float64) (*performance, error)

var scripts = map[string]script{
	"drone":      droneScript,
	"oscillator": oscillatorScript,
	"drums":      drumScript,
}

func scriptNames() []string {
	return slices.Sorted(maps.Keys(scripts))
}

func droneScript(engine *synth.Synthesizer, duration float64) (*performance, error) {
	d, err := voice.NewDrone(engine)
	if err != nil {
		return nil, err
	}
	d.SetDetune(voice.Uniform(0.02))
	d.SetVibratoRate(0.3)
	d.SetVibratoDepth(0.005)
	d.SetFilterFrequency(800)
	d.SetFilterRate(0.25)
	d.SetFilterDepth(400)

	return &performance{
		voices: []updater{d},
		events: []event{
			{0, func() { d.PressRoot(1) }},
			{duration * 0.7, func() { d.Release() }},
		},
		close: d.Close,
	}, nil
}

func oscillatorScript(engine *synth.Synthesizer, duration float64) (*performance, error) {
	o, err := voice.NewOscillator(engine)
	if err != nil {
		return nil, err
	}
	o.SetWaveform(waveform.Mix(
		waveform.Full(waveform.Saw()),
		waveform.Full(waveform.Saw(waveform.WithFrequency(2))),
	))

	o.SetGlide(0.05)
	o.SetVibratoDepth(1.0 / 48)
	o.SetVibratoRate(6)
	o.SetVibratoDelay(0.3)
	o.SetPitchSlew(-0.5)
	o.SetPitchSlewTime(0.05)

	o.SetAttackTime(0.01)
	o.SetDecayTime(0.3)
	o.SetSustainLevel(0.6)
	o.SetReleaseTime(0.4)
	o.SetAmplitude(0.7)

	o.SetFilterFrequency(400)
	o.SetFilterResonance(1.5)
	o.SetFilterAttackTime(0.2)
	o.SetFilterAmount(2000)
	o.SetFilterReleaseTime(0.4)
	o.SetPanDepth(0.5)
	o.SetPanRate(0.5)

	notes := []int{57, 60, 64, 69, 64, 60}
	step := duration * 0.8 / float64(len(notes))

	var events []event
	for i, n := range notes {
		events = append(events, event{float64(i) * step, func() { o.Press(n, voice.MIDIVelocity(100)) }})
	}
	events = append(events, event{float64(len(notes)) * step, func() { o.Release() }})

	return &performance{voices: []updater{o}, events: events, close: o.Close}, nil
}

// drumScript plays a 16-step pattern at 120 BPM over the kit.
func drumScript(engine *synth.Synthesizer, duration float64) (*performance, error) {
	kit, err := percussive.Kit(engine)
	if err != nil {
		return nil, err
	}
	const (
		kick = iota
		snare
		closedHat
		openHat
		highTom
		midTom
		floorTom
		ride
	)
	pattern := [16][]int{
		{kick, closedHat}, {}, {closedHat}, {},
		{snare, closedHat}, {}, {closedHat}, {kick},
		{kick, closedHat}, {}, {closedHat}, {highTom},
		{snare, openHat}, {midTom}, {floorTom}, {ride},
	}
	const stepTime = 60.0 / 120 / 4

	p := &performance{close: func() {
		for _, v := range kit {
			v.Close()
		}
	}}
	for _, v := range kit {
		p.voices = append(p.voices, v)
	}

	for i := 0; float64(i)*stepTime < duration; i++ {
		for _, idx := range pattern[i%len(pattern)] {
			v := kit[idx]
			vel := voice.MIDIVelocity(90 + 37*(1-i%2))
			p.events = append(p.events, event{float64(i) * stepTime, func() { v.Press(vel) }})
		}
	}
	return p, nil
}

// render plays the script on engine and returns duration seconds of stereo
// output. Events fire on the first frame at or after their time.
func render(engine *synth.Synthesizer, s script, duration float64) (left, right []float64, err error) {
	perf, err := s(engine, duration)
	if err != nil {
		return nil, nil, err
	}
	defer perf.close()

	events := slices.Clone(perf.events)
	slices.SortStableFunc(events, func(a, b event) int { return cmp.Compare(a.at, b.at) })

	sr := engine.SampleRate()
	frames := int(duration * sr)
	if frames <= 0 {
		return nil, nil, fmt.Errorf("duration too short: %f", duration)
	}
	left = make([]float64, frames)
	right = make([]float64, frames)
	block := engine.Config().BlockSize

	next := 0
	for pos := 0; pos < frames; {
		for next < len(events) && int(events[next].at*sr) <= pos {
			events[next].do()
			next++
		}

		end := min(pos+block, frames)
		if next < len(events) {
			end = min(end, max(int(events[next].at*sr), pos+1))
		}

		for _, v := range perf.voices {
			v.Update()
		}
		engine.Render(left[pos:end], right[pos:end])
		logger.Debug("rendered", "frame", pos, "active", engine.Active())
		pos = end
	}
	return left, right, nil
}
