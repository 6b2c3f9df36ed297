// Package biquad provides the second-order IIR runtime used by the
// synthesizer's per-note filter.
//
// A [Section] implements Direct Form II Transposed processing for a single
// second-order section defined by [Coefficients]. Coefficients can be swapped
// between blocks with [Section.SetCoefficients] without clearing the delay
// line, which keeps modulated cutoff sweeps free of clicks.
//
// Coefficient design (low-pass, high-pass, band-pass) lives in dsp/filter/design.
package biquad
