package voice

import (
	"math"
	"testing"
)

func TestAREnvelopePressRelease(t *testing.T) {
	e := NewAREnvelope(0.2, 0.4, 5)
	if e.Pressed() {
		t.Fatal("envelope should start released")
	}

	e.Press()
	if !e.Pressed() {
		t.Fatal("Press should set pressed")
	}
	if e.Lerp().Target() != 5 || math.Abs(e.Lerp().Rate()-0.2) > 1e-12 {
		t.Fatalf("pressed ramp target/rate = %v/%v, want 5/0.2", e.Lerp().Target(), e.Lerp().Rate())
	}

	e.Release()
	if e.Pressed() {
		t.Fatal("Release should clear pressed")
	}
	if e.Lerp().Target() != 0 || math.Abs(e.Lerp().Rate()-0.4) > 1e-12 {
		t.Fatalf("released ramp target/rate = %v/%v, want 0/0.4", e.Lerp().Target(), e.Lerp().Rate())
	}
}

func TestAREnvelopeSettersApplyToActivePhase(t *testing.T) {
	e := NewAREnvelope(0.2, 0.4, 5)

	e.SetAttackTime(0.3)
	if math.Abs(e.Lerp().Rate()-0.4) > 1e-12 {
		t.Fatalf("attack time changed the release ramp: rate %v", e.Lerp().Rate())
	}
	e.SetAmount(7)
	if e.Lerp().Target() != 0 {
		t.Fatalf("amount changed the released target: %v", e.Lerp().Target())
	}
	e.SetReleaseTime(0.6)
	if math.Abs(e.Lerp().Rate()-0.6) > 1e-12 {
		t.Fatalf("release rate = %v, want 0.6", e.Lerp().Rate())
	}

	e.Press()
	if e.Lerp().Target() != 7 || math.Abs(e.Lerp().Rate()-0.3) > 1e-12 {
		t.Fatalf("press used target/rate %v/%v, want 7/0.3", e.Lerp().Target(), e.Lerp().Rate())
	}

	e.SetAttackTime(0.1)
	if math.Abs(e.Lerp().Rate()-0.1) > 1e-12 {
		t.Fatalf("attack rate = %v, want 0.1", e.Lerp().Rate())
	}
	e.SetAmount(-3)
	if e.Lerp().Target() != -3 {
		t.Fatalf("pressed target = %v, want -3", e.Lerp().Target())
	}
	e.SetReleaseTime(1)
	if math.Abs(e.Lerp().Rate()-0.1) > 1e-12 {
		t.Fatalf("release time changed the attack ramp: rate %v", e.Lerp().Rate())
	}
	if e.ReleaseTime() != 1 || e.AttackTime() != 0.1 || e.Amount() != -3 {
		t.Fatal("getters do not reflect stored values")
	}
}

func TestAREnvelopeRamps(t *testing.T) {
	s := newSynth(t)
	e := NewAREnvelope(0.01, 0.02, 100)
	if err := s.AddBlocks(e.Blocks()...); err != nil {
		t.Fatal(err)
	}

	e.Press()
	tick(s, 0.01)
	if math.Abs(e.Value()-100) > 1e-9 {
		t.Fatalf("value after attack = %v, want 100", e.Value())
	}

	e.Release()
	tick(s, 0.01)
	if v := e.Value(); v < 40 || v > 60 {
		t.Fatalf("value halfway through release = %v, want ~50", v)
	}
	tick(s, 0.01)
	if math.Abs(e.Value()) > 1e-9 {
		t.Fatalf("value after release = %v, want 0", e.Value())
	}
}
