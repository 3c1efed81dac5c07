package blackhole

import (
	"fmt"
	"log"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

//-----------------------------------------------------------------------------
// CONFIGURATION
//-----------------------------------------------------------------------------

// OptRenderScale sets the internal render resolution as a fraction of the
// viewport (default 0.75). Values outside (0, 1] are ignored.
func OptRenderScale(scale float32) Option {
	return func(r *Renderer) {
		if scale > 0 && scale <= 1 {
			r.renderScale = scale
		} else {
			log.Printf("[renderer] ignoring render scale %v", scale)
		}
	}
}

//-----------------------------------------------------------------------------
// FRAME SEQUENCING
//-----------------------------------------------------------------------------

const (
	satelliteScale     = 0.18
	satelliteTiltDeg   = -10
	satelliteSpinSpeed = 0.8 // radians per second of self rotation
)

// stepFrame runs one frame body in the fixed pass order. Animation state is
// advanced before the viewport check, so the flight keeps progressing while
// the window is minimized; a zero-area viewport skips all drawing and the
// caller presents the previous buffer unchanged.
func (r *Renderer) stepFrame(in FrameInput) error {
	var dt float32
	if r.lastFrameTime >= 0 {
		dt = float32(in.Time - r.lastFrameTime)
	}
	r.lastFrameTime = in.Time

	r.camera.applyInput(in)
	r.camera.flight.advance(dt)

	if in.ViewportW <= 0 || in.ViewportH <= 0 {
		return nil
	}

	rw, rh := renderResolution(in.ViewportW, in.ViewportH, r.renderScale)
	allocated, err := r.targets.EnsureSized(rw, rh)
	if err != nil {
		return fmt.Errorf("render targets %dx%d: %w", rw, rh, err)
	}
	if allocated {
		log.Printf("[renderer] render targets %dx%d for viewport %dx%d", rw, rh, in.ViewportW, in.ViewportH)
	}

	now := float32(in.Time)
	cam := r.camera.frame(now, rw, rh)

	if err := r.backend.RayMarch(r.targets.primary, &RayMarchInputs{
		Camera:   cam,
		Time:     now,
		Params:   *r.params,
		Galaxy:   r.galaxy,
		ColorMap: r.colorMap,
	}); err != nil {
		return fmt.Errorf("ray march pass: %w", err)
	}
	if err := r.backend.Satellite(r.targets.primary, r.satelliteInputs(now, &cam)); err != nil {
		return fmt.Errorf("satellite pass: %w", err)
	}
	if err := r.bloom.run(r.backend, r.targets); err != nil {
		return fmt.Errorf("bloom chain: %w", err)
	}
	if err := r.backend.Blit(r.targets.tonemapped); err != nil {
		return fmt.Errorf("blit: %w", err)
	}
	return nil
}

// satelliteInputs animates the satellite along its orbit: position from the
// ellipse, yaw following the travel direction, a fixed tilt and a slow self
// spin. The key light always points from the satellite toward the hole.
func (r *Renderer) satelliteInputs(now float32, cam *CameraState) *SatelliteInputs {
	pos := r.orbit.Position(now)
	heading := r.orbit.Heading(now)
	yaw := math32.Atan2(-heading.Z(), heading.X())
	model := mgl32.Translate3D(pos.X(), pos.Y(), pos.Z()).
		Mul4(mgl32.HomogRotate3DY(yaw)).
		Mul4(mgl32.HomogRotate3DX(mgl32.DegToRad(satelliteTiltDeg))).
		Mul4(mgl32.HomogRotate3DY(now * satelliteSpinSpeed)).
		Mul4(mgl32.Scale3D(satelliteScale, satelliteScale, satelliteScale))
	return &SatelliteInputs{
		Model:      model,
		View:       cam.View,
		Projection: cam.Projection,
		CameraPos:  cam.Pos,
		LightDir:   pos.Mul(-1).Normalize(),
	}
}
