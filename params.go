package blackhole

import (
	"github.com/go-gl/mathgl/mgl32"
)

// DiskParams shapes the accretion disk of the ray-march pass.
type DiskParams struct {
	Enabled    bool
	Particle   bool // particle-style density instead of the smooth volume
	DensityV   float32
	DensityH   float32
	Height     float32
	Lit        float32
	NoiseLOD   float32
	NoiseScale float32
	Speed      float32
}

// RayMarchParams are the visual toggles and sliders of the primary pass.
// The frame logic hands them to the backend untouched.
type RayMarchParams struct {
	Lensing  bool // bend photon paths around the hole
	DrawHole bool
	Disk     DiskParams
}

// DefaultRayMarchParams is the tuning the visualization ships with.
func DefaultRayMarchParams() RayMarchParams {
	return RayMarchParams{
		Lensing:  true,
		DrawHole: true,
		Disk: DiskParams{
			Enabled:    true,
			Particle:   true,
			DensityV:   2.0,
			DensityH:   4.0,
			Height:     0.55,
			Lit:        0.25,
			NoiseLOD:   5.0,
			NoiseScale: 0.8,
			Speed:      0.5,
		},
	}
}

// RayMarchInputs is the full record for the primary pass.
type RayMarchInputs struct {
	Camera   CameraState
	Time     float32
	Params   RayMarchParams
	Galaxy   Cubemap
	ColorMap Texture
}

// SatelliteInputs is the record for the satellite forward pass. Light and rim
// tinting are fixed in the backend; only the geometry moves per frame.
type SatelliteInputs struct {
	Model      mgl32.Mat4
	View       mgl32.Mat4
	Projection mgl32.Mat4
	CameraPos  mgl32.Vec3
	LightDir   mgl32.Vec3
}

// TonemapParams configures the final color transform.
type TonemapParams struct {
	Enabled bool
	Gamma   float32
}
