package synth

import (
	"math"
	"testing"
)

func TestMathOperations(t *testing.T) {
	tests := []struct {
		name string
		m    *Math
		want float64
	}{
		{name: "sum", m: NewMath(OpSum, Constant(1), Constant(2), Constant(3)), want: 6},
		{name: "sum nil operands", m: NewMath(OpSum, Constant(1), nil, nil), want: 1},
		{name: "product", m: NewMath(OpProduct, Constant(2), Constant(3), nil), want: 6},
		{name: "max", m: NewMath(OpMax, Constant(-5), Constant(40), nil), want: 40},
		{name: "max all nil", m: NewMath(OpMax, nil, nil, nil), want: 0},
		{name: "lerp mid", m: NewMath(OpConstrainedLerp, Constant(2), Constant(4), Constant(0.5)), want: 3},
		{name: "lerp clamped high", m: NewMath(OpConstrainedLerp, Constant(2), Constant(4), Constant(3)), want: 4},
		{name: "lerp clamped low", m: NewMath(OpConstrainedLerp, Constant(2), Constant(4), Constant(-1)), want: 2},
		{name: "unknown", m: NewMath(MathOperation(42), Constant(1), nil, nil), want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.m.Value(); math.Abs(got-tt.want) > 1e-12 {
				t.Fatalf("Value() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestMathNestedGraph(t *testing.T) {
	lfo := NewLFO(WithWaveform([]float64{0, 1}), Once(), WithRate(1))
	depth := NewMath(OpProduct, Constant(10), lfo, nil)
	floor := NewMath(OpMax, NewMath(OpSum, Constant(20), depth, nil), Constant(40), nil)

	if got := floor.Value(); got != 40 {
		t.Fatalf("floor = %v, want 40", got)
	}

	lfo.Step(1)
	if got := floor.Value(); got != 40 {
		t.Fatalf("floor after ramp = %v, want 40", got)
	}

	floor.A.(*Math).A = Constant(35)
	if got := floor.Value(); got != 45 {
		t.Fatalf("floor after edit = %v, want 45", got)
	}
}

func TestMathOperationString(t *testing.T) {
	if OpConstrainedLerp.String() != "constrained_lerp" || MathOperation(9).String() != "unknown" {
		t.Fatal("unexpected operation names")
	}
}
