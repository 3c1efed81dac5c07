// Package blackhole renders a real-time black hole: a ray-marched scene pass,
// a small forward-rendered satellite, and a mip-chain bloom with tonemapping,
// driven by a procedural camera.
//
// The package owns frame sequencing and animation state only. Everything that
// touches the graphics API sits behind the Backend interface, with the OpenGL
// implementation in internal/glbackend.
package blackhole

import (
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"

	"github.com/barkimedes/go-deepcopy"
)

//-----------------------------------------------------------------------------
// CONFIGURATION
//-----------------------------------------------------------------------------

// Option configures a Renderer before Run.
type Option func(r *Renderer)

// OptParams replaces the ray-march parameter record wholesale.
func OptParams(p RayMarchParams) Option {
	return func(r *Renderer) { *r.params = p }
}

// OptAssets sets the directory holding the skybox cubemap folder and the disk
// color lookup (default "assets").
func OptAssets(dir string) Option {
	return func(r *Renderer) { r.assetDir = dir }
}

// OptWatchShaders watches the given files or directories and hot-swaps shader
// programs when sources change. Useful together with a backend configured to
// read shaders from disk instead of the embedded copies.
func OptWatchShaders(paths ...string) Option {
	return func(r *Renderer) { r.watchPaths = paths }
}

//-----------------------------------------------------------------------------
// RENDERER
//-----------------------------------------------------------------------------

// Renderer owns the full frame chain: animation state, render targets, the
// bloom and the backend collaborators. It is not safe for concurrent use; Run
// drives everything from the calling goroutine, which must be the one the
// backend was created on.
type Renderer struct {
	backend Backend

	camera  *cameraControl
	orbit   Orbit
	targets *renderTargets
	bloom   *bloomChain
	params  *RayMarchParams

	renderScale float32
	assetDir    string
	watchPaths  []string
	reload      *shaderReloader

	galaxy   Cubemap
	colorMap Texture

	lastFrameTime float64 // -1 until the first frame has run
	lastTitleTime float64
}

// NewRenderer builds a renderer over the given backend with the default
// visualization tuning, then applies the options in order.
func NewRenderer(b Backend, opts ...Option) *Renderer {
	params := DefaultRayMarchParams()
	r := &Renderer{
		backend:       b,
		camera:        newCameraControl(),
		orbit:         DefaultOrbit(),
		bloom:         newBloomChain(),
		params:        &params,
		renderScale:   0.75,
		assetDir:      "assets",
		lastFrameTime: -1,
		lastTitleTime: -1,
	}
	r.targets = newRenderTargets(b, 5)
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Run loads the assets, starts the shader watcher if one was requested and
// drives the frame loop until the window closes or a pass fails.
func (r *Renderer) Run() error {
	if err := r.loadAssets(); err != nil {
		return err
	}
	stopWatch, err := r.startShaderWatch()
	if err != nil {
		return err
	}
	defer stopWatch()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, signals()...)
	done := make(chan struct{})
	defer close(done)
	defer signal.Stop(sig)
	go func() {
		select {
		case <-sig:
			log.Println("[renderer] interrupted, closing")
			r.backend.RequestClose()
		case <-done:
		}
	}()

	for !r.backend.ShouldClose() {
		in := r.backend.Poll()
		r.drainShaderReloads()
		if err := r.stepFrame(in); err != nil {
			return err
		}
		r.updateTitle(in.Time)
		r.backend.Present()
	}
	return nil
}

// loadAssets fetches the skybox cubemap and the disk color lookup once.
func (r *Renderer) loadAssets() error {
	galaxy, err := r.backend.LoadCubemap(filepath.Join(r.assetDir, "skybox_nebula_dark"))
	if err != nil {
		return fmt.Errorf("skybox: %w", err)
	}
	colorMap, err := r.backend.LoadTexture2D(filepath.Join(r.assetDir, "color_map.png"))
	if err != nil {
		return fmt.Errorf("color map: %w", err)
	}
	r.galaxy, r.colorMap = galaxy, colorMap
	return nil
}

// ViewState is a point-in-time snapshot of the animation state, decoupled
// from the live structs so holders can keep it across frames.
type ViewState struct {
	Mode           string
	FlightActive   bool
	FlightProgress float32
	RenderW        int
	RenderH        int
	Params         *RayMarchParams
}

// State deep-copies the current animation state. Call between frames, not
// concurrently with Run.
func (r *Renderer) State() *ViewState {
	s := &ViewState{
		Mode:           r.camera.mode().String(),
		FlightActive:   r.camera.flight.active,
		FlightProgress: r.camera.flight.progress,
		RenderW:        r.targets.w,
		RenderH:        r.targets.h,
		Params:         r.params,
	}
	return deepcopy.MustAnything(s).(*ViewState)
}

// updateTitle refreshes the window title status line about twice a second.
func (r *Renderer) updateTitle(now float64) {
	if r.lastTitleTime >= 0 && now-r.lastTitleTime < 0.5 {
		return
	}
	r.lastTitleTime = now
	s := r.State()
	title := fmt.Sprintf("Wormhole - %s - %dx%d", s.Mode, s.RenderW, s.RenderH)
	if s.FlightActive {
		title = fmt.Sprintf("Wormhole - flight %3.0f%% - %dx%d",
			s.FlightProgress*100, s.RenderW, s.RenderH)
	}
	r.backend.SetTitle(title)
}
