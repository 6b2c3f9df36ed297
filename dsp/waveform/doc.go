// Package waveform generates single-cycle wavetables for synthesizer notes.
//
// Tables hold float64 samples in [-1, 1]. Every generator is deterministic:
// noise tables use a fixed seed unless [WithSeed] overrides it, so presets
// built from them render identically on every run.
package waveform
