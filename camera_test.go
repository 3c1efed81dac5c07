package blackhole

import (
	"testing"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

func TestCameraModePriority(t *testing.T) {
	cases := []struct {
		name                        string
		flight, pointer, front, top bool
		want                        CameraMode
	}{
		{"all off", false, false, false, false, ModeSweep},
		{"top only", false, false, false, true, ModeTop},
		{"front beats top", false, false, true, true, ModeFront},
		{"pointer beats presets", false, true, true, true, ModePointer},
		{"flight beats everything", true, true, true, true, ModeFlight},
		{"flight alone", true, false, false, false, ModeFlight},
	}
	for _, tc := range cases {
		c := newCameraControl()
		c.flight.active = tc.flight
		c.pointerEnabled = tc.pointer
		c.frontView = tc.front
		c.topView = tc.top
		if got := c.mode(); got != tc.want {
			t.Errorf("%s: mode = %v, want %v", tc.name, got, tc.want)
		}
	}
}

func TestCameraSweepAtTimeZero(t *testing.T) {
	c := newCameraControl()
	c.pointerEnabled = false
	if got := c.mode(); got != ModeSweep {
		t.Fatalf("mode = %v, want sweep", got)
	}
	got := c.position(ModeSweep, 0)
	if !v3Near(got, mgl32.Vec3{-15, 0, 0}, 1e-5) {
		t.Fatalf("sweep position at t=0 = %v, want (-15, 0, 0)", got)
	}
}

func TestCameraPresetPositions(t *testing.T) {
	c := newCameraControl()
	if got := c.position(ModeFront, 3); got != (mgl32.Vec3{10, 1, 10}) {
		t.Errorf("front position = %v", got)
	}
	if got := c.position(ModeTop, 3); got != (mgl32.Vec3{15, 15, 0}) {
		t.Errorf("top position = %v", got)
	}
}

func TestCameraPointerPosition(t *testing.T) {
	c := newCameraControl()
	c.pointer = mgl32.Vec2{0.25, 0.75}
	got := c.position(ModePointer, 0)
	want := mgl32.Vec3{
		-math32.Cos(-0.25*10) * 15,
		0.25 * 30,
		math32.Sin(-0.25*10) * 15,
	}
	if !v3Near(got, want, 1e-4) {
		t.Fatalf("pointer position = %v, want %v", got, want)
	}

	// Out-of-viewport coordinates clamp to the edges.
	c.pointer = mgl32.Vec2{-3, 7}
	clamped := c.position(ModePointer, 0)
	c.pointer = mgl32.Vec2{0, 1}
	if edge := c.position(ModePointer, 0); !v3Near(clamped, edge, 1e-6) {
		t.Fatalf("clamped position %v differs from edge position %v", clamped, edge)
	}
}

func TestCameraFrameBasis(t *testing.T) {
	c := newCameraControl()
	c.pointerEnabled = false
	c.topView = true
	c.rollDeg = 90
	cs := c.frame(0, 1440, 810)
	if !v3Near(cs.Up, mgl32.Vec3{1, 0, 0}, 1e-5) {
		t.Errorf("up with 90 degree roll = %v, want (1, 0, 0)", cs.Up)
	}
	if cs.Target != (mgl32.Vec3{}) {
		t.Errorf("target = %v, want origin", cs.Target)
	}

	// fovY = 2*atan(0.5) makes the projection's [1][1] entry exactly 2.
	c.topView = false
	c.rollDeg = 0
	cs = c.frame(0, 1440, 810)
	if f := cs.Projection.At(1, 1); math32.Abs(f-2) > 1e-4 {
		t.Errorf("projection[1][1] = %v, want 2", f)
	}
	aspect := float32(1440) / float32(810)
	if f := cs.Projection.At(0, 0); math32.Abs(f-2/aspect) > 1e-4 {
		t.Errorf("projection[0][0] = %v, want %v", f, 2/aspect)
	}

	// The view transform must put the origin straight ahead of the camera.
	origin := mgl32.TransformCoordinate(mgl32.Vec3{}, cs.View)
	if math32.Abs(origin.X()) > 1e-4 || math32.Abs(origin.Y()) > 1e-4 {
		t.Errorf("origin off axis in view space: %v", origin)
	}
	if dist := cs.Pos.Len(); math32.Abs(origin.Z()+dist) > 1e-3 {
		t.Errorf("origin at view depth %v, want %v", origin.Z(), -dist)
	}
}

func TestCameraFOVScale(t *testing.T) {
	c := newCameraControl()
	c.fovScale = 2
	cs := c.frame(0, 100, 100)
	want := 1 / math32.Tan(math32.Atan(1)) // fovY/2 = atan(0.5*2)
	if f := cs.Projection.At(1, 1); math32.Abs(f-want) > 1e-4 {
		t.Errorf("projection[1][1] = %v, want %v", f, want)
	}
}

func TestFlightActivationResets(t *testing.T) {
	f := newFlightPath()
	if f.active {
		t.Fatal("flight starts active")
	}
	f.toggle()
	if !f.active || f.progress != 0 {
		t.Fatalf("after first toggle: active=%v progress=%v", f.active, f.progress)
	}
	f.advance(9)
	if math32.Abs(f.progress-0.5) > 1e-5 {
		t.Fatalf("progress after 9s of 18s = %v, want 0.5", f.progress)
	}

	// Deactivating freezes progress, it does not reset it.
	f.toggle()
	f.advance(5)
	if math32.Abs(f.progress-0.5) > 1e-5 {
		t.Fatalf("progress advanced while inactive: %v", f.progress)
	}

	// Reactivating restarts from the beginning.
	f.toggle()
	if f.progress != 0 {
		t.Fatalf("progress after reactivation = %v, want 0", f.progress)
	}
}

func TestFlightSaturates(t *testing.T) {
	f := newFlightPath()
	f.activate()
	f.advance(18)
	if f.progress != 1 {
		t.Fatalf("progress after full duration = %v, want 1", f.progress)
	}
	f.advance(7)
	if f.progress != 1 {
		t.Fatalf("progress past the end = %v, want 1", f.progress)
	}
	if got := f.position(); !v3Near(got, mgl32.Vec3{0, 1, 5}, 1e-4) {
		t.Fatalf("end position = %v, want last control point", got)
	}
}

func TestFlightPositionEndpoints(t *testing.T) {
	f := newFlightPath()
	if got := f.position(); !v3Near(got, mgl32.Vec3{25, 12, 25}, 1e-4) {
		t.Fatalf("start position = %v, want first control point", got)
	}
	dir, err := f.heading()
	if err != nil {
		t.Fatalf("heading: %v", err)
	}
	want := mgl32.Vec3{-40, -4, -5}.Normalize()
	if !v3Near(dir, want, 1e-4) {
		t.Fatalf("start heading = %v, want %v", dir, want)
	}
}

func TestFlightDegenerateHeading(t *testing.T) {
	f := newFlightPath()
	p := mgl32.Vec3{1, 1, 1}
	f.points = [4]mgl32.Vec3{p, p, p, p}
	if _, err := f.heading(); err == nil {
		t.Fatal("expected an error for a degenerate path")
	}
}

func TestApplyInputEdges(t *testing.T) {
	c := newCameraControl()
	c.applyInput(FrameInput{ToggleFlight: true, ToggleTop: true})
	if !c.flight.active || !c.topView {
		t.Fatalf("toggles not applied: flight=%v top=%v", c.flight.active, c.topView)
	}
	// A held key reported as a fresh edge flips back.
	c.applyInput(FrameInput{ToggleFlight: true})
	if c.flight.active {
		t.Fatal("second flight edge should deactivate")
	}
	if !c.topView {
		t.Fatal("top view lost without an edge")
	}
	c.applyInput(FrameInput{ToggleFront: true})
	if !c.frontView {
		t.Fatal("front toggle not applied")
	}
}

func TestFlightDurationOption(t *testing.T) {
	r := NewRenderer(nil, OptFlightDuration(2))
	r.camera.flight.activate()
	r.camera.flight.advance(1)
	if p := r.camera.flight.progress; math32.Abs(p-0.5) > 1e-5 {
		t.Fatalf("progress after half of custom duration = %v, want 0.5", p)
	}
	// Non-positive durations are ignored.
	r = NewRenderer(nil, OptFlightDuration(-3))
	if d := r.camera.flight.duration; d != 18 {
		t.Fatalf("duration = %v, want default 18", d)
	}
}
