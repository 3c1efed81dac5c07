package blackhole

import (
	"errors"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/tanema/gween/ease"
)

// The camera animation leans on the classic Penner curves. gween expects the
// (time, begin, change, duration) signature, so pin begin/change/duration to
// the unit interval and expose plain [0,1] -> [0,1] functions.

func easeInOutCubic(t float32) float32 { return ease.InOutCubic(t, 0, 1, 1) }

func easeInOutQuint(t float32) float32 { return ease.InOutQuint(t, 0, 1, 1) }

func easeInOutSine(t float32) float32 { return ease.InOutSine(t, 0, 1, 1) }

var errDegenerateTangent = errors.New("path tangent is zero length")

// bezierPoint evaluates the cubic Bernstein polynomial at t.
func bezierPoint(t float32, p0, p1, p2, p3 mgl32.Vec3) mgl32.Vec3 {
	u := 1 - t
	uu := u * u
	tt := t * t
	return p0.Mul(uu * u).
		Add(p1.Mul(3 * uu * t)).
		Add(p2.Mul(3 * u * tt)).
		Add(p3.Mul(tt * t))
}

// bezierTangent returns the normalized curve direction at t. Coincident
// control points can make the derivative vanish; that is reported as
// errDegenerateTangent rather than returning NaNs.
func bezierTangent(t float32, p0, p1, p2, p3 mgl32.Vec3) (mgl32.Vec3, error) {
	u := 1 - t
	d := p1.Sub(p0).Mul(3 * u * u).
		Add(p2.Sub(p1).Mul(6 * u * t)).
		Add(p3.Sub(p2).Mul(3 * t * t))
	if d.Len() < 1e-8 {
		return mgl32.Vec3{}, errDegenerateTangent
	}
	return d.Normalize(), nil
}

func clamp01(v float32) float32 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
