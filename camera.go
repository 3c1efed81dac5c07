package blackhole

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

//-----------------------------------------------------------------------------
// CONFIGURATION
//-----------------------------------------------------------------------------

// OptPointerControl enables or disables the manual pointer camera (enabled
// by default). The scripted flight still overrides it while active.
func OptPointerControl(enabled bool) Option {
	return func(r *Renderer) { r.camera.pointerEnabled = enabled }
}

// OptFrontView starts with the front preset placement engaged.
func OptFrontView(enabled bool) Option {
	return func(r *Renderer) { r.camera.frontView = enabled }
}

// OptTopView starts with the top preset placement engaged.
func OptTopView(enabled bool) Option {
	return func(r *Renderer) { r.camera.topView = enabled }
}

// OptCameraRoll sets the roll baked into the camera up vector, in degrees.
func OptCameraRoll(deg float32) Option {
	return func(r *Renderer) { r.camera.rollDeg = deg }
}

// OptFOVScale scales the vertical field of view, fovY = 2*atan(0.5*scale).
// Non-positive values are ignored.
func OptFOVScale(scale float32) Option {
	return func(r *Renderer) {
		if scale > 0 {
			r.camera.fovScale = scale
		}
	}
}

// OptFlightPath replaces the scripted flight control points.
func OptFlightPath(p0, p1, p2, p3 mgl32.Vec3) Option {
	return func(r *Renderer) {
		r.camera.flight.points = [4]mgl32.Vec3{p0, p1, p2, p3}
	}
}

// OptFlightDuration sets how long the scripted flight takes to reach its
// endpoint, in seconds. Non-positive values are ignored.
func OptFlightDuration(seconds float32) Option {
	return func(r *Renderer) {
		if seconds > 0 {
			r.camera.flight.setDuration(seconds)
		}
	}
}

//-----------------------------------------------------------------------------
// FLIGHT PATH
//-----------------------------------------------------------------------------

// flightPath is the scripted camera autopilot: a cubic Bezier flown once over
// a fixed duration, eased in and out.
type flightPath struct {
	points   [4]mgl32.Vec3
	duration float32
	tween    *gween.Tween // linear progress over [0,1], eased at sampling
	progress float32
	active   bool
}

func newFlightPath() *flightPath {
	fp := &flightPath{
		points: [4]mgl32.Vec3{
			{25, 12, 25},
			{-15, 8, 20},
			{12, 3, 8},
			{0, 1, 5},
		},
	}
	fp.setDuration(18)
	return fp
}

func (f *flightPath) setDuration(seconds float32) {
	f.duration = seconds
	f.tween = gween.New(0, 1, seconds, ease.Linear)
	f.progress = 0
}

// activate restarts the flight from the first control point. Activating an
// already running flight does nothing.
func (f *flightPath) activate() {
	if f.active {
		return
	}
	f.active = true
	f.reset()
}

// deactivate freezes the flight where it is; progress is kept.
func (f *flightPath) deactivate() {
	f.active = false
}

func (f *flightPath) toggle() {
	if f.active {
		f.deactivate()
	} else {
		f.activate()
	}
}

func (f *flightPath) reset() {
	f.tween.Reset()
	f.progress = 0
}

// advance moves progress by dt/duration while active, saturating at 1.
func (f *flightPath) advance(dt float32) {
	if !f.active {
		return
	}
	f.progress, _ = f.tween.Update(dt)
}

// position samples the eased Bezier at the current progress.
func (f *flightPath) position() mgl32.Vec3 {
	p := f.points
	return bezierPoint(easeInOutCubic(f.progress), p[0], p[1], p[2], p[3])
}

// heading is the normalized travel direction at the current progress.
func (f *flightPath) heading() (mgl32.Vec3, error) {
	p := f.points
	return bezierTangent(easeInOutCubic(f.progress), p[0], p[1], p[2], p[3])
}

//-----------------------------------------------------------------------------
// CAMERA
//-----------------------------------------------------------------------------

// CameraMode identifies which placement drove the camera this frame.
type CameraMode int

const (
	ModeSweep CameraMode = iota // slow automatic orbit around the origin
	ModeTop
	ModeFront
	ModePointer
	ModeFlight
)

func (m CameraMode) String() string {
	switch m {
	case ModeFlight:
		return "flight"
	case ModePointer:
		return "pointer"
	case ModeFront:
		return "front"
	case ModeTop:
		return "top"
	default:
		return "sweep"
	}
}

// CameraState is the camera output for one frame. It is rebuilt from scratch
// every frame; nothing in it persists.
type CameraState struct {
	Mode       CameraMode
	Pos        mgl32.Vec3
	Target     mgl32.Vec3 // always the origin, where the hole sits
	Up         mgl32.Vec3
	FOVScale   float32
	Roll       float32 // radians
	View       mgl32.Mat4
	Projection mgl32.Mat4
}

// cameraControl arbitrates between the placement modes and derives the
// view/projection pair. Mode changes are edge driven from input.
type cameraControl struct {
	pointerEnabled bool
	frontView      bool
	topView        bool
	rollDeg        float32
	fovScale       float32
	pointer        mgl32.Vec2
	flight         *flightPath
}

func newCameraControl() *cameraControl {
	return &cameraControl{
		pointerEnabled: true,
		fovScale:       1,
		pointer:        mgl32.Vec2{0.5, 0.5},
		flight:         newFlightPath(),
	}
}

// applyInput folds one frame of key edges and pointer position in.
func (c *cameraControl) applyInput(in FrameInput) {
	c.pointer = in.Pointer
	if in.ToggleFlight {
		c.flight.toggle()
	}
	if in.ToggleFront {
		c.frontView = !c.frontView
	}
	if in.ToggleTop {
		c.topView = !c.topView
	}
}

// mode resolves the placement priority: flight beats pointer beats front
// beats top beats sweep. Exactly one wins even when several are engaged.
func (c *cameraControl) mode() CameraMode {
	switch {
	case c.flight.active:
		return ModeFlight
	case c.pointerEnabled:
		return ModePointer
	case c.frontView:
		return ModeFront
	case c.topView:
		return ModeTop
	default:
		return ModeSweep
	}
}

func (c *cameraControl) position(mode CameraMode, t float32) mgl32.Vec3 {
	switch mode {
	case ModeFlight:
		return c.flight.position()
	case ModePointer:
		ox := clamp01(c.pointer.X()) - 0.5
		oy := clamp01(c.pointer.Y()) - 0.5
		return mgl32.Vec3{-math32.Cos(ox*10) * 15, oy * 30, math32.Sin(ox*10) * 15}
	case ModeFront:
		return mgl32.Vec3{10, 1, 10}
	case ModeTop:
		return mgl32.Vec3{15, 15, 0}
	default:
		return mgl32.Vec3{-math32.Cos(t*0.1) * 15, math32.Sin(t*0.1) * 15, math32.Sin(t*0.1) * 15}
	}
}

// frame builds the camera for this frame. The aspect ratio comes from the
// render resolution, matching the offscreen pass it feeds.
func (c *cameraControl) frame(t float32, renderW, renderH int) CameraState {
	mode := c.mode()
	roll := mgl32.DegToRad(c.rollDeg)
	sinR, cosR := math32.Sincos(roll)
	cs := CameraState{
		Mode:     mode,
		Pos:      c.position(mode, t),
		Up:       mgl32.Vec3{sinR, cosR, 0}.Normalize(),
		FOVScale: c.fovScale,
		Roll:     roll,
	}
	fovY := 2 * math32.Atan(0.5*c.fovScale)
	aspect := float32(renderW) / float32(renderH)
	cs.View = mgl32.LookAtV(cs.Pos, cs.Target, cs.Up)
	cs.Projection = mgl32.Perspective(fovY, aspect, 0.1, 500)
	return cs
}
