package geom

import (
	"math"
	"testing"
)

func TestVecArithmetic(t *testing.T) {
	a := Vec3{1, 2, 3}
	b := Vec3{-1, 0.5, 2}

	sum := a.Add(b)
	if sum != (Vec3{0, 2.5, 5}) {
		t.Errorf("add: got %+v", sum)
	}

	diff := a.Sub(b)
	if diff != (Vec3{2, 1.5, 1}) {
		t.Errorf("sub: got %+v", diff)
	}

	if got := a.Dot(b); math.Abs(got-6.0) > 1e-12 {
		t.Errorf("dot: got %f", got)
	}
}

func TestNormalize(t *testing.T) {
	v := Vec3{3, 4, 0}
	u := v.Normalize()
	if math.Abs(u.Norm()-1.0) > 1e-12 {
		t.Errorf("unit norm: got %f", u.Norm())
	}

	if Zero.Normalize() != (Vec3{}) {
		t.Error("normalizing zero should stay zero")
	}
}

func TestDistance(t *testing.T) {
	a := Vec3{0, 0, 0}
	b := Vec3{0, 3, 4}
	if d := a.Distance(b); math.Abs(d-5.0) > 1e-12 {
		t.Errorf("distance: got %f", d)
	}
}

func TestIsValid(t *testing.T) {
	if !(Vec3{1, 2, 3}).IsValid() {
		t.Error("finite vector reported invalid")
	}
	if (Vec3{math.NaN(), 0, 0}).IsValid() {
		t.Error("NaN vector reported valid")
	}
	if (Vec3{0, math.Inf(1), 0}).IsValid() {
		t.Error("Inf vector reported valid")
	}
}

func TestClamp(t *testing.T) {
	cases := []struct {
		x, lo, hi, want float64
	}{
		{5, 0, 10, 5},
		{-1, 0, 10, 0},
		{11, 0, 10, 10},
	}
	for _, c := range cases {
		if got := Clamp(c.x, c.lo, c.hi); got != c.want {
			t.Errorf("clamp(%f): got %f, want %f", c.x, got, c.want)
		}
	}
}
