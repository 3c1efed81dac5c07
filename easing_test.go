package blackhole

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

func v3Near(a, b mgl32.Vec3, eps float32) bool {
	return a.Sub(b).Len() < eps
}

func TestEasingCurves(t *testing.T) {
	curves := []struct {
		name string
		fn   func(float32) float32
	}{
		{"inOutCubic", easeInOutCubic},
		{"inOutQuint", easeInOutQuint},
		{"inOutSine", easeInOutSine},
	}
	for _, c := range curves {
		if got := c.fn(0); got > 1e-6 || got < -1e-6 {
			t.Errorf("%s(0) = %v, want 0", c.name, got)
		}
		if got := c.fn(1); got < 1-1e-6 || got > 1+1e-6 {
			t.Errorf("%s(1) = %v, want 1", c.name, got)
		}
		if got := c.fn(0.5); got < 0.5-1e-6 || got > 0.5+1e-6 {
			t.Errorf("%s(0.5) = %v, want 0.5", c.name, got)
		}
		// Nondecreasing over a fine grid.
		prev := c.fn(0)
		for i := 1; i <= 1000; i++ {
			v := c.fn(float32(i) / 1000)
			if v < prev-1e-6 {
				t.Fatalf("%s decreases at t=%v: %v -> %v", c.name, float32(i)/1000, prev, v)
			}
			prev = v
		}
	}
}

func TestBezierPointEndpoints(t *testing.T) {
	p0 := mgl32.Vec3{25, 12, 25}
	p1 := mgl32.Vec3{-15, 8, 20}
	p2 := mgl32.Vec3{12, 3, 8}
	p3 := mgl32.Vec3{0, 1, 5}
	if got := bezierPoint(0, p0, p1, p2, p3); !v3Near(got, p0, 1e-5) {
		t.Errorf("bezierPoint(0) = %v, want %v", got, p0)
	}
	if got := bezierPoint(1, p0, p1, p2, p3); !v3Near(got, p3, 1e-5) {
		t.Errorf("bezierPoint(1) = %v, want %v", got, p3)
	}
	// Midpoint of a cubic is (p0 + 3p1 + 3p2 + p3)/8.
	want := mgl32.Vec3{2, 5.75, 14.25}
	if got := bezierPoint(0.5, p0, p1, p2, p3); !v3Near(got, want, 1e-4) {
		t.Errorf("bezierPoint(0.5) = %v, want %v", got, want)
	}
}

func TestBezierTangent(t *testing.T) {
	p0 := mgl32.Vec3{25, 12, 25}
	p1 := mgl32.Vec3{-15, 8, 20}
	p2 := mgl32.Vec3{12, 3, 8}
	p3 := mgl32.Vec3{0, 1, 5}
	start, err := bezierTangent(0, p0, p1, p2, p3)
	if err != nil {
		t.Fatalf("tangent at 0: %v", err)
	}
	if want := p1.Sub(p0).Normalize(); !v3Near(start, want, 1e-5) {
		t.Errorf("tangent(0) = %v, want %v", start, want)
	}
	end, err := bezierTangent(1, p0, p1, p2, p3)
	if err != nil {
		t.Fatalf("tangent at 1: %v", err)
	}
	if want := p3.Sub(p2).Normalize(); !v3Near(end, want, 1e-5) {
		t.Errorf("tangent(1) = %v, want %v", end, want)
	}
	for i := 0; i <= 100; i++ {
		d, err := bezierTangent(float32(i)/100, p0, p1, p2, p3)
		if err != nil {
			t.Fatalf("tangent at %d/100: %v", i, err)
		}
		if l := d.Len(); l < 1-1e-4 || l > 1+1e-4 {
			t.Fatalf("tangent at %d/100 has length %v", i, l)
		}
	}
}

func TestBezierTangentDegenerate(t *testing.T) {
	p := mgl32.Vec3{1, 2, 3}
	if _, err := bezierTangent(0.5, p, p, p, p); err != errDegenerateTangent {
		t.Fatalf("degenerate tangent error = %v, want %v", err, errDegenerateTangent)
	}
}

func BenchmarkBezierPoint(b *testing.B) {
	b.ReportAllocs()
	p0 := mgl32.Vec3{25, 12, 25}
	p1 := mgl32.Vec3{-15, 8, 20}
	p2 := mgl32.Vec3{12, 3, 8}
	p3 := mgl32.Vec3{0, 1, 5}
	var sink mgl32.Vec3
	for i := 0; i < b.N; i++ {
		sink = bezierPoint(float32(i%1000)/1000, p0, p1, p2, p3)
	}
	_ = sink
}
