package geom

import (
	"image"
	"testing"
)

func TestClamp(t *testing.T) {
	cases := []struct {
		v, lo, hi, want float64
	}{
		{5, 0, 10, 5},
		{-3, 0, 10, 0},
		{42, 0, 10, 10},
		{-6, -6, 294, -6},
		{1e9, -6, 294, 294},
		{3, 5, 1, 5},
	}
	for _, c := range cases {
		if got := Clamp(c.v, c.lo, c.hi); got != c.want {
			t.Errorf("Clamp(%v, %v, %v) = %v, want %v", c.v, c.lo, c.hi, got, c.want)
		}
	}
}

func TestClampInt(t *testing.T) {
	if got := ClampInt(300, 0, 299); got != 299 {
		t.Fatalf("got %d", got)
	}
	if got := ClampInt(-1, 0, 299); got != 0 {
		t.Fatalf("got %d", got)
	}
}

func TestPointImageFloors(t *testing.T) {
	if got := Pt(-0.5, 2.9).Image(); got != image.Pt(-1, 2) {
		t.Fatalf("got %v", got)
	}
	if got := Pt(3, 4).Sub(Pt(1, 1)).Add(Pt(0.5, 0)); got != Pt(2.5, 3) {
		t.Fatalf("got %v", got)
	}
}
