// Package design provides RBJ-style biquad coefficient designers for the
// synthesizer's low-pass, high-pass and band-pass filter modes.
//
// Out-of-range cutoffs never produce unstable sections: a low-pass at or
// above Nyquist (or a high-pass at or below 0 Hz) degrades to an open
// passthrough, the opposite edge degrades to silence.
package design
