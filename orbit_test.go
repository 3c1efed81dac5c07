package blackhole

import (
	"testing"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

func TestOrbitRadiusBounds(t *testing.T) {
	o := Orbit{SemiMajor: 4, Eccentricity: 0.5, AngularSpeed: 1}
	peri := o.SemiMajor * (1 - o.Eccentricity)
	apo := o.SemiMajor * (1 + o.Eccentricity)

	if got := o.Position(0).Len(); math32.Abs(got-peri) > 1e-3 {
		t.Errorf("periapsis radius = %v, want %v", got, peri)
	}
	if got := o.Position(math32.Pi).Len(); math32.Abs(got-apo) > 1e-3 {
		t.Errorf("apoapsis radius = %v, want %v", got, apo)
	}
	for i := 0; i <= 400; i++ {
		r := o.Position(float32(i) * 0.05).Len()
		if r < peri-1e-3 || r > apo+1e-3 {
			t.Fatalf("radius %v at sample %d outside [%v, %v]", r, i, peri, apo)
		}
	}
}

func TestOrbitCircularTangent(t *testing.T) {
	o := Orbit{SemiMajor: 3, AngularSpeed: 0.7}
	for i := 0; i <= 50; i++ {
		tt := float32(i) * 0.37
		theta := tt * o.AngularSpeed
		want := mgl32.Vec3{-math32.Sin(theta), 0, math32.Cos(theta)}
		got := o.Heading(tt)
		if l := got.Len(); l < 1-1e-3 || l > 1+1e-3 {
			t.Fatalf("heading length %v at t=%v", l, tt)
		}
		if got.Dot(want) < 0.9999 {
			t.Fatalf("heading %v at t=%v, want near %v", got, tt, want)
		}
	}
}

func TestOrbitInclination(t *testing.T) {
	flat := Orbit{SemiMajor: 2, AngularSpeed: 1}
	tilted := flat
	tilted.Inclination = math32.Pi / 2

	// A quarter period puts the flat orbit at +Z; the tilted one folds that
	// entirely into -Y.
	p := tilted.Position(math32.Pi / 2)
	if math32.Abs(p.Z()) > 1e-3 {
		t.Errorf("tilted orbit keeps z=%v at quarter period", p.Z())
	}
	if p.Y() > -1 {
		t.Errorf("tilted orbit y=%v, want below -1", p.Y())
	}
}

func TestOrbitBob(t *testing.T) {
	o := Orbit{SemiMajor: 2, AngularSpeed: 1, BobAmplitude: 0.5, BobFrequency: 2}
	base := Orbit{SemiMajor: 2, AngularSpeed: 1}
	for i := 0; i <= 40; i++ {
		tt := float32(i) * 0.21
		dy := o.Position(tt).Y() - base.Position(tt).Y()
		want := 0.5 * math32.Sin(tt*2)
		if math32.Abs(dy-want) > 1e-4 {
			t.Fatalf("bob offset %v at t=%v, want %v", dy, tt, want)
		}
	}
}

func TestOrbitSanitized(t *testing.T) {
	def := DefaultOrbit()
	got := Orbit{SemiMajor: -1, Eccentricity: 2, AngularSpeed: 0}.sanitized()
	if got.SemiMajor != def.SemiMajor {
		t.Errorf("SemiMajor = %v, want default %v", got.SemiMajor, def.SemiMajor)
	}
	if got.Eccentricity != 0.95 {
		t.Errorf("Eccentricity = %v, want 0.95", got.Eccentricity)
	}
	if got.AngularSpeed != def.AngularSpeed {
		t.Errorf("AngularSpeed = %v, want default %v", got.AngularSpeed, def.AngularSpeed)
	}
	if got = (Orbit{SemiMajor: 1, Eccentricity: -0.5, AngularSpeed: 1}).sanitized(); got.Eccentricity != 0 {
		t.Errorf("negative eccentricity kept: %v", got.Eccentricity)
	}
}

func TestOptOrbitSanitizes(t *testing.T) {
	r := NewRenderer(nil, OptOrbit(Orbit{SemiMajor: 5, Eccentricity: 3, AngularSpeed: 2}))
	if r.orbit.Eccentricity != 0.95 {
		t.Fatalf("OptOrbit stored eccentricity %v, want 0.95", r.orbit.Eccentricity)
	}
	if r.orbit.SemiMajor != 5 || r.orbit.AngularSpeed != 2 {
		t.Fatalf("OptOrbit mangled valid fields: %+v", r.orbit)
	}
}

func BenchmarkOrbitPosition(b *testing.B) {
	b.ReportAllocs()
	o := DefaultOrbit()
	var sink mgl32.Vec3
	for i := 0; i < b.N; i++ {
		sink = o.Position(float32(i) * 0.016)
	}
	_ = sink
}
