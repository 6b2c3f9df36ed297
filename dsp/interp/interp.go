package interp

import "fmt"

// Mode selects the interpolation used for table reads.
type Mode int

const (
	ModeLinear Mode = iota
	ModeHermite
)

// String returns the name of the mode.
func (m Mode) String() string {
	switch m {
	case ModeLinear:
		return "linear"
	case ModeHermite:
		return "hermite"
	default:
		return fmt.Sprintf("Mode(%d)", int(m))
	}
}

// ParseMode maps a mode name to its Mode.
func ParseMode(name string) (Mode, error) {
	switch name {
	case "linear":
		return ModeLinear, nil
	case "hermite":
		return ModeHermite, nil
	default:
		return 0, fmt.Errorf("unknown interpolation mode: %q", name)
	}
}

// Linear interpolates from x0 to x1.
func Linear(t, x0, x1 float64) float64 {
	return x0 + t*(x1-x0)
}

// Hermite4 computes cubic 4-point interpolation.
// It interpolates from x0 to x1 using neighbor points xm1 and x2.
func Hermite4(t, xm1, x0, x1, x2 float64) float64 {
	c0 := x0
	c1 := 0.5 * (x1 - xm1)
	c2 := xm1 - 2.5*x0 + 2*x1 - 0.5*x2
	c3 := 0.5*(x2-xm1) + 1.5*(x0-x1)
	return ((c3*t+c2)*t+c1)*t + c0
}

// Loop reads table at pos, where the region [start, end) repeats. Neighbors
// past the loop end wrap to the loop start. Positions before the loop read
// the table directly. pos must lie in [0, end) and the loop must hold at
// least one sample.
func Loop(mode Mode, table []float64, start, end int, pos float64) float64 {
	idx := int(pos)
	t := pos - float64(idx)
	span := end - start

	at := func(i int) float64 {
		switch {
		case i >= end || (i < 0 && start == 0):
			i = (i - start) % span
			if i < 0 {
				i += span
			}
			i += start
		case i < 0:
			i = 0
		}
		return table[i]
	}

	if mode == ModeHermite {
		return Hermite4(t, at(idx-1), at(idx), at(idx+1), at(idx+2))
	}
	return Linear(t, at(idx), at(idx+1))
}
