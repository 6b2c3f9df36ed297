package synth

import "math"

// MathOperation selects how a [Math] block combines its operands.
type MathOperation int

const (
	// OpSum returns A + B + C.
	OpSum MathOperation = iota
	// OpProduct returns A * B * C.
	OpProduct
	// OpMax returns the largest of A, B and C.
	OpMax
	// OpConstrainedLerp returns A + (B-A)*clamp(C, 0, 1).
	OpConstrainedLerp
)

// String returns the operation name.
func (op MathOperation) String() string {
	switch op {
	case OpSum:
		return "sum"
	case OpProduct:
		return "product"
	case OpMax:
		return "max"
	case OpConstrainedLerp:
		return "constrained_lerp"
	default:
		return "unknown"
	}
}

// Math combines up to three inputs. Operands are read on every evaluation,
// so replacing A, B or C takes effect at the next control tick.
//
// Nil operands are neutral: 0 for sums, 1 for products, ignored by max and
// 0 as the lerp position.
type Math struct {
	Op      MathOperation
	A, B, C Input
}

// NewMath returns a combinator for op over a, b and c.
func NewMath(op MathOperation, a, b, c Input) *Math {
	return &Math{Op: op, A: a, B: b, C: c}
}

// Value evaluates the combinator.
func (m *Math) Value() float64 {
	switch m.Op {
	case OpSum:
		return ValueOr(m.A, 0) + ValueOr(m.B, 0) + ValueOr(m.C, 0)
	case OpProduct:
		return ValueOr(m.A, 1) * ValueOr(m.B, 1) * ValueOr(m.C, 1)
	case OpMax:
		out := math.Inf(-1)
		for _, in := range [...]Input{m.A, m.B, m.C} {
			if in != nil {
				out = math.Max(out, in.Value())
			}
		}
		if math.IsInf(out, -1) {
			return 0
		}
		return out
	case OpConstrainedLerp:
		a := ValueOr(m.A, 0)
		b := ValueOr(m.B, 0)
		t := ValueOr(m.C, 0)
		if t < 0 {
			t = 0
		} else if t > 1 {
			t = 1
		}
		return a + (b-a)*t
	default:
		return 0
	}
}

// Step is a no-op; a combinator has no state of its own.
func (m *Math) Step(float64) {}
