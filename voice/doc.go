// Package voice builds playable instruments on top of a [synth] engine.
//
// A voice owns one or more notes and the modulation graph that drives them:
// glide ramps, delayed LFOs for tremolo, vibrato, panning and filter sweeps,
// and attack/release envelopes for targets the note envelope cannot reach.
// Drivers call Press, Release and the parameter setters; the engine renders
// whatever the graph describes at its next control tick.
//
// Three voice types are provided:
//   - [Drone]: several detuned oscillators sharing one amplitude and one
//     pitch graph.
//   - [Oscillator]: a single note with the full modulation set, ADSR
//     envelope, pitch slew and waveform looping.
//   - [Percussive]: single-shot notes with decay-only envelopes. The
//     percussive subpackage provides drum presets.
//
// Voices are not safe for concurrent use. Parameter changes are clamped to
// their valid range rather than rejected.
package voice
