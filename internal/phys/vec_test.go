package phys

import (
	"math"
	"testing"
)

func TestVecOps(t *testing.T) {
	a := Vec2{3, 4}
	b := Vec2{-1, 2}

	if got := a.Add(b); got != (Vec2{2, 6}) {
		t.Errorf("Add: got %v", got)
	}
	if got := a.Sub(b); got != (Vec2{4, 2}) {
		t.Errorf("Sub: got %v", got)
	}
	if got := a.Scale(2); got != (Vec2{6, 8}) {
		t.Errorf("Scale: got %v", got)
	}
	if got := a.Dot(b); got != 5 {
		t.Errorf("Dot: got %v", got)
	}
	if got := a.Len(); math.Abs(got-5) > 1e-12 {
		t.Errorf("Len: got %v", got)
	}
	if got := a.LenSq(); got != 25 {
		t.Errorf("LenSq: got %v", got)
	}
}

func TestNormalize(t *testing.T) {
	n := Vec2{3, 4}.Normalize()
	if math.Abs(n.Len()-1) > 1e-12 {
		t.Errorf("unit length: got %v", n.Len())
	}
	if got := (Vec2{}).Normalize(); got != (Vec2{}) {
		t.Errorf("zero vector: got %v, expected zero", got)
	}
}
