package blackhole

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

//-----------------------------------------------------------------------------
// CONFIGURATION
//-----------------------------------------------------------------------------

// OptOrbit replaces the satellite orbit. Out-of-range values are clamped so
// the radius stays well defined, see Orbit.sanitized.
func OptOrbit(o Orbit) Option {
	return func(r *Renderer) {
		r.orbit = o.sanitized()
	}
}

//-----------------------------------------------------------------------------
// ORBIT
//-----------------------------------------------------------------------------

// headingEps is the angular step of the forward difference in Heading.
// Headings lag the true tangent by at most this much.
const headingEps = 1e-3

// Orbit is an elliptical path around the origin. Position and Heading are
// pure functions of time, so the satellite needs no per-frame state.
type Orbit struct {
	SemiMajor    float32 // a, world units
	Eccentricity float32 // e, in [0, 0.95]
	AngularSpeed float32 // radians per second
	Inclination  float32 // radians, plane tilt about the +X axis
	BobAmplitude float32 // vertical oscillation applied after the tilt
	BobFrequency float32 // radians per second
}

// DefaultOrbit keeps the satellite a few disk radii out, close enough for the
// lensing to visibly smear it on each pass behind the hole.
func DefaultOrbit() Orbit {
	return Orbit{
		SemiMajor:    3.8,
		Eccentricity: 0.28,
		AngularSpeed: 0.25,
		Inclination:  12 * math32.Pi / 180,
		BobAmplitude: 0.35,
		BobFrequency: 0.6,
	}
}

// Position maps elapsed seconds to a point on the orbit. The polar ellipse
// r = a(1-e^2)/(1+e cos theta) is laid out in the XZ plane, tilted about +X
// and then bobbed vertically.
func (o Orbit) Position(t float32) mgl32.Vec3 {
	theta := t * o.AngularSpeed
	sinT, cosT := math32.Sincos(theta)
	r := o.SemiMajor * (1 - o.Eccentricity*o.Eccentricity) /
		(1 + o.Eccentricity*cosT)
	x := r * cosT
	z := r * sinT
	sinI, cosI := math32.Sincos(o.Inclination)
	y := -z * sinI
	z = z * cosI
	y += o.BobAmplitude * math32.Sin(t*o.BobFrequency)
	return mgl32.Vec3{x, y, z}
}

// Heading estimates the normalized travel direction with a forward
// difference headingEps radians ahead along the path.
func (o Orbit) Heading(t float32) mgl32.Vec3 {
	ahead := o.Position(t + headingEps/o.AngularSpeed)
	return ahead.Sub(o.Position(t)).Normalize()
}

func (o Orbit) sanitized() Orbit {
	def := DefaultOrbit()
	if o.SemiMajor <= 0 {
		o.SemiMajor = def.SemiMajor
	}
	if o.Eccentricity < 0 {
		o.Eccentricity = 0
	}
	if o.Eccentricity > 0.95 {
		o.Eccentricity = 0.95
	}
	if o.AngularSpeed <= 0 {
		o.AngularSpeed = def.AngularSpeed
	}
	return o
}
