// Package percussive provides drum presets built on [voice.Percussive].
//
// Each preset is a parameter table: note frequencies, decay times,
// waveforms and a filter chosen for the timbre. The returned voices can be
// retuned and reshaped like any other percussive voice.
package percussive

import (
	"math"

	"github.com/cwbudde/algo-synthvoice/dsp/waveform"
	"github.com/cwbudde/algo-synthvoice/synth"
	"github.com/cwbudde/algo-synthvoice/voice"
)

// DefaultCymbalFrequency is the high-pass frequency of cymbal presets in Hz.
const DefaultCymbalFrequency = 9500.0

// Kick returns a low sine kick drum.
func Kick(engine voice.Engine) (*voice.Percussive, error) {
	sine := waveform.Sine()
	offsetSine := waveform.Sine(waveform.WithPhase(0.5))
	return voice.NewPercussive(engine,
		voice.WithCount(3),
		voice.WithFilterFrequency(2000),
		voice.WithFrequencies(voice.PerIndex(53.0, 72.0, 41.0)),
		voice.WithTimes(voice.PerIndex(0.075, 0.055, 0.095)),
		voice.WithWaveforms(voice.PerIndex(offsetSine, sine, offsetSine)),
	)
}

// Snare returns a snare drum mixing sine tones with noise.
func Snare(engine voice.Engine) (*voice.Percussive, error) {
	noise := waveform.Layer{Table: waveform.Noise(), Gain: 0.5}
	sineNoise := waveform.Mix(waveform.Full(waveform.Sine()), noise)
	offsetSineNoise := waveform.Mix(waveform.Full(waveform.Sine(waveform.WithPhase(0.5))), noise)
	return voice.NewPercussive(engine,
		voice.WithCount(3),
		voice.WithFilterFrequency(9500),
		voice.WithFrequencies(voice.PerIndex(90.0, 135.0, 165.0)),
		voice.WithTimes(voice.PerIndex(0.115, 0.095, 0.115)),
		voice.WithWaveforms(voice.PerIndex(sineNoise, offsetSineNoise, offsetSineNoise)),
	)
}

// Cymbal returns high-passed noise decaying over time seconds. frequency
// is the high-pass frequency in Hz; [DefaultCymbalFrequency] is typical.
func Cymbal(engine voice.Engine, time, frequency float64) (*voice.Percussive, error) {
	return voice.NewPercussive(engine,
		voice.WithCount(3),
		voice.WithFilterMode(synth.FilterHighPass),
		voice.WithFilterFrequency(frequency),
		voice.WithFrequencies(voice.PerIndex(90.0, 135.0, 165.0)),
		voice.WithWaveforms(voice.Uniform(waveform.Noise())),
		voice.WithTimes(voice.PerIndex(time, math.Max(time-0.02, 0.001), time)),
	)
}

// ClosedHat returns a closed hi-hat.
func ClosedHat(engine voice.Engine) (*voice.Percussive, error) {
	return Cymbal(engine, 0.1125, DefaultCymbalFrequency)
}

// OpenHat returns an open hi-hat.
func OpenHat(engine voice.Engine) (*voice.Percussive, error) {
	return Cymbal(engine, 0.625, DefaultCymbalFrequency)
}

// Ride returns a ride cymbal.
func Ride(engine voice.Engine) (*voice.Percussive, error) {
	return Cymbal(engine, 1.25, 18000)
}

// Tom returns a tom drum at frequency Hz decaying over time seconds: a
// triangle body with a short burst of noise.
func Tom(engine voice.Engine, time, frequency float64) (*voice.Percussive, error) {
	return voice.NewPercussive(engine,
		voice.WithCount(2),
		voice.WithFilterFrequency(4000),
		voice.WithWaveforms(voice.PerIndex(waveform.Triangle(), waveform.Noise(waveform.WithAmplitude(0.25)))),
		voice.WithTimes(voice.PerIndex(time, 0.025)),
		voice.WithFrequencies(voice.Uniform(frequency)),
	)
}

// HighTom returns a high rack tom.
func HighTom(engine voice.Engine) (*voice.Percussive, error) {
	return Tom(engine, 0.275, 277.645)
}

// MidTom returns a middle rack tom.
func MidTom(engine voice.Engine) (*voice.Percussive, error) {
	return Tom(engine, 0.275, 196.325)
}

// FloorTom returns a floor tom.
func FloorTom(engine voice.Engine) (*voice.Percussive, error) {
	return Tom(engine, 0.375, 131.685)
}

// Preset builds a drum voice on an engine.
type Preset func(engine voice.Engine) (*voice.Percussive, error)

// KitPresets lists the kit pieces in the order [Kit] builds them.
var KitPresets = []Preset{Kick, Snare, ClosedHat, OpenHat, HighTom, MidTom, FloorTom, Ride}

// Kit builds one voice per entry of [KitPresets]. A driver can map MIDI
// note n to kit[n%len(kit)].
func Kit(engine voice.Engine) ([]*voice.Percussive, error) {
	kit := make([]*voice.Percussive, 0, len(KitPresets))
	for _, preset := range KitPresets {
		v, err := preset(engine)
		if err != nil {
			for _, built := range kit {
				built.Close()
			}
			return nil, err
		}
		kit = append(kit, v)
	}
	return kit, nil
}
