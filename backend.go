package blackhole

import (
	"github.com/go-gl/mathgl/mgl32"
)

// Target is a GPU-resident image buffer that passes draw into instead of the
// visible surface. Release hands the underlying resources back to the
// collaborator that created the target; the core never frees anything itself.
type Target interface {
	Size() (w, h int)
	Release()
}

// TargetFactory allocates offscreen render targets. withDepth requests an
// attached depth buffer (only the primary target needs one).
type TargetFactory interface {
	NewTarget(w, h int, withDepth bool) (Target, error)
}

// Texture is an opaque handle to a sampled 2D image owned by the backend.
type Texture interface {
	TextureID() uint32
}

// Cubemap is an opaque handle to a cube image owned by the backend.
type Cubemap interface {
	CubemapID() uint32
}

// AssetSource loads image assets. The renderer calls it once per asset and
// caches the handles for the process lifetime.
type AssetSource interface {
	// LoadCubemap reads the six face images found in a directory.
	LoadCubemap(dir string) (Cubemap, error)
	LoadTexture2D(path string) (Texture, error)
}

// PassRunner executes the rendering passes. Every method takes a typed
// parameter record; mapping record fields to named shader bindings happens
// inside the implementation, never in the core.
type PassRunner interface {
	// RayMarch draws the black hole into dst (a color+depth target).
	RayMarch(dst Target, in *RayMarchInputs) error
	// Satellite clears dst's depth buffer and draws the satellite mesh with
	// depth testing enabled: the mesh self-occludes and draws over the scene.
	Satellite(dst Target, in *SatelliteInputs) error
	Brightness(dst, src Target) error
	Downsample(dst, src Target) error
	// Upsample combines the next-coarser chain result with the matching
	// same-resolution downsample into dst.
	Upsample(dst, coarse, same Target) error
	Composite(dst, base, bloom Target, strength float32) error
	Tonemap(dst, src Target, p *TonemapParams) error
	// Blit presents src on the default surface at full viewport resolution.
	Blit(src Target) error
}

// ShaderReloader swaps a shader source at runtime. Must only be called from
// the rendering thread; compile failures leave the previous program active.
type ShaderReloader interface {
	ReloadShader(path string, src []byte) error
}

// FrameInput is everything the windowing collaborator reports for one frame.
// The Toggle fields are edges: true only on the frame the key went down.
type FrameInput struct {
	Time                 float64    // seconds since the window was created
	ViewportW, ViewportH int        // framebuffer size, may be 0 when minimized
	Pointer              mgl32.Vec2 // cursor normalized to [0,1] over the viewport
	ToggleFlight         bool
	ToggleFront          bool
	ToggleTop            bool
}

// Backend is the full collaborator surface the Renderer drives. The core
// never reaches past it into the graphics API.
type Backend interface {
	TargetFactory
	PassRunner
	AssetSource
	ShaderReloader
	// Poll pumps window events and returns the current frame's input.
	Poll() FrameInput
	// Present swaps the rendered frame onto the screen (waits for vsync).
	Present()
	ShouldClose() bool
	RequestClose()
	SetTitle(title string)
}
