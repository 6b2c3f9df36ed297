package core

import "math"

const defaultEpsilon = 1e-12

// Clamp limits value to the inclusive range [min, max].
func Clamp(value, min, max float64) float64 {
	if min > max {
		min, max = max, min
	}

	if value < min {
		return min
	}

	if value > max {
		return max
	}

	return value
}

// NearlyEqual reports whether a and b are equal within eps.
func NearlyEqual(a, b, eps float64) bool {
	if eps <= 0 {
		eps = defaultEpsilon
	}

	diff := math.Abs(a - b)
	if diff <= eps {
		return true
	}

	largest := math.Max(math.Abs(a), math.Abs(b))
	if largest == 0 {
		return diff <= eps
	}

	return diff/largest <= eps
}

// MIDIToHz converts a MIDI note number to a frequency in Hz (A4 = note 69 = 440 Hz).
func MIDIToHz(note float64) float64 {
	return 440 * math.Exp2((note-69)/12)
}

// HzToMIDI converts a frequency in Hz to a fractional MIDI note number.
// Returns NaN for non-positive frequencies.
func HzToMIDI(freq float64) float64 {
	if freq <= 0 {
		return math.NaN()
	}

	return 69 + 12*math.Log2(freq/440)
}

// Octaves returns the distance from ref to freq in octaves (log2 ratio).
// Returns 0 when either frequency is not positive.
func Octaves(freq, ref float64) float64 {
	if freq <= 0 || ref <= 0 {
		return 0
	}

	return math.Log2(freq / ref)
}

// DBToLinear converts dB to linear amplitude (20*log10 convention).
func DBToLinear(db float64) float64 {
	return math.Pow(10, db/20)
}

// LinearToDB converts linear amplitude to dB (20*log10 convention).
// Returns -Inf for zero and NaN for negative values.
func LinearToDB(linear float64) float64 {
	if linear < 0 {
		return math.NaN()
	}

	if linear == 0 {
		return math.Inf(-1)
	}

	return 20 * math.Log10(linear)
}
