package math

import (
	"math"
	"testing"
)

func approx(a, b float32) bool {
	return math.Abs(float64(a-b)) < 1e-5
}

func approxVec(a, b Vec3) bool {
	return approx(a.X, b.X) && approx(a.Y, b.Y) && approx(a.Z, b.Z)
}

func TestVec3Add(t *testing.T) {
	got := Vec3{1, 2, 3}.Add(Vec3{4, 7, 11})
	want := Vec3{5, 9, 14}
	if got != want {
		t.Errorf("Vec3.Add() = %v, want %v", got, want)
	}
}

func TestVec3Sub(t *testing.T) {
	got := Vec3{4, 7, 11}.Sub(Vec3{1, 2, 3})
	want := Vec3{3, 5, 8}
	if got != want {
		t.Errorf("Vec3.Sub() = %v, want %v", got, want)
	}
}

func TestVec3ScaleDiv(t *testing.T) {
	v := Vec3{4, 7, 11}
	if got, want := v.Scale(2), (Vec3{8, 14, 22}); got != want {
		t.Errorf("Vec3.Scale() = %v, want %v", got, want)
	}
	if got, want := (Vec3{8, 14, 22}).Div(2), v; got != want {
		t.Errorf("Vec3.Div() = %v, want %v", got, want)
	}
}

func TestVec3Dot(t *testing.T) {
	got := Vec3{3, 4, 5}.Dot(Vec3{4, 7, 11})
	want := float32(3*4 + 4*7 + 5*11)
	if got != want {
		t.Errorf("Vec3.Dot() = %v, want %v", got, want)
	}
}

func TestVec3Cross(t *testing.T) {
	x := Vec3{1, 0, 0}
	y := Vec3{0, 1, 0}
	got := x.Cross(y)
	want := Vec3{0, 0, 1}
	if got != want {
		t.Errorf("Vec3.Cross() = %v, want %v", got, want)
	}
}

func TestVec3Normalize(t *testing.T) {
	a := Vec3{1, 2, 2}
	if got, want := a.Normalize(), a.Div(3); !approxVec(got, want) {
		t.Errorf("Vec3.Normalize() = %v, want %v", got, want)
	}
	if got := Zero.Normalize(); got != Zero {
		t.Errorf("zero Vec3.Normalize() = %v, want zero vector", got)
	}
}

func TestDistance(t *testing.T) {
	got := Vec3{1, 1, 1}.Distance(Vec3{4, 5, 1})
	if !approx(got, 5) {
		t.Errorf("Distance() = %v, want 5", got)
	}
}

func TestLerp(t *testing.T) {
	a := Vec3{0, 0, 0}
	b := Vec3{2, 4, 6}
	if got, want := Lerp(a, b, 0.5), (Vec3{1, 2, 3}); !approxVec(got, want) {
		t.Errorf("Lerp(0.5) = %v, want %v", got, want)
	}
}

func TestSlerp(t *testing.T) {
	sqrt2 := float32(math.Sqrt2)
	// Points on a non-unit sphere.
	a := Vec3{2, 0, 0}
	b := Vec3{0, 2, 0}

	tests := []struct {
		name string
		t    float32
		want Vec3
	}{
		{"start", 0, a},
		{"end", 1, b},
		{"middle", 0.5, Vec3{sqrt2, sqrt2, 0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Slerp(a, b, tt.t)
			if !approxVec(got, tt.want) {
				t.Errorf("Slerp(t=%v) = %v, want %v", tt.t, got, tt.want)
			}
		})
	}
}

func TestSlerpIdenticalPoints(t *testing.T) {
	a := Vec3{0, 1, 0}
	got := Slerp(a, a, 0.5)
	if !approxVec(got, a) {
		t.Errorf("Slerp(a, a) = %v, want %v", got, a)
	}
}

func TestSortedPair(t *testing.T) {
	if a, b := SortedPair(7, 3); a != 3 || b != 7 {
		t.Errorf("SortedPair(7, 3) = (%d, %d), want (3, 7)", a, b)
	}
	if a, b := SortedPair(3, 7); a != 3 || b != 7 {
		t.Errorf("SortedPair(3, 7) = (%d, %d), want (3, 7)", a, b)
	}
}
