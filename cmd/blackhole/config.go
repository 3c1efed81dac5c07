package main

import (
	"fmt"
	"os"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/pelletier/go-toml/v2"

	"github.com/Lioooooo123/blackhole"
)

// config mirrors the renderer options worth tuning from a file. Every field
// is prefilled with the library default, so a partial file only overrides
// what it names.
type config struct {
	Title  string `toml:"title"`
	Width  int    `toml:"width"`
	Height int    `toml:"height"`

	Render struct {
		Scale          float32 `toml:"scale"`
		BloomLevels    int     `toml:"bloom_levels"`
		BloomMaxLevels int     `toml:"bloom_max_levels"`
		BloomStrength  float32 `toml:"bloom_strength"`
		Tonemap        bool    `toml:"tonemap"`
		Gamma          float32 `toml:"gamma"`
	} `toml:"render"`

	Camera struct {
		Pointer        bool    `toml:"pointer"`
		Roll           float32 `toml:"roll"`
		FOVScale       float32 `toml:"fov_scale"`
		FlightDuration float32 `toml:"flight_duration"`
	} `toml:"camera"`

	Disk struct {
		Enabled    bool    `toml:"enabled"`
		Particle   bool    `toml:"particle"`
		Lensing    bool    `toml:"lensing"`
		DrawHole   bool    `toml:"draw_hole"`
		DensityV   float32 `toml:"density_v"`
		DensityH   float32 `toml:"density_h"`
		Height     float32 `toml:"height"`
		Lit        float32 `toml:"lit"`
		NoiseLOD   float32 `toml:"noise_lod"`
		NoiseScale float32 `toml:"noise_scale"`
		Speed      float32 `toml:"speed"`
	} `toml:"disk"`

	Orbit struct {
		SemiMajor    float32 `toml:"semi_major"`
		Eccentricity float32 `toml:"eccentricity"`
		AngularSpeed float32 `toml:"angular_speed"`
		InclinationD float32 `toml:"inclination_deg"`
		BobAmplitude float32 `toml:"bob_amplitude"`
		BobFrequency float32 `toml:"bob_frequency"`
	} `toml:"orbit"`
}

func defaultConfig() *config {
	c := &config{Title: "Wormhole", Width: 1920, Height: 1080}

	c.Render.Scale = 0.75
	c.Render.BloomLevels = 5
	c.Render.BloomMaxLevels = 5
	c.Render.BloomStrength = 0.1
	c.Render.Tonemap = true
	c.Render.Gamma = 2.5

	c.Camera.Pointer = true
	c.Camera.FOVScale = 1
	c.Camera.FlightDuration = 18

	p := blackhole.DefaultRayMarchParams()
	c.Disk.Enabled = p.Disk.Enabled
	c.Disk.Particle = p.Disk.Particle
	c.Disk.Lensing = p.Lensing
	c.Disk.DrawHole = p.DrawHole
	c.Disk.DensityV = p.Disk.DensityV
	c.Disk.DensityH = p.Disk.DensityH
	c.Disk.Height = p.Disk.Height
	c.Disk.Lit = p.Disk.Lit
	c.Disk.NoiseLOD = p.Disk.NoiseLOD
	c.Disk.NoiseScale = p.Disk.NoiseScale
	c.Disk.Speed = p.Disk.Speed

	o := blackhole.DefaultOrbit()
	c.Orbit.SemiMajor = o.SemiMajor
	c.Orbit.Eccentricity = o.Eccentricity
	c.Orbit.AngularSpeed = o.AngularSpeed
	c.Orbit.InclinationD = mgl32.RadToDeg(o.Inclination)
	c.Orbit.BobAmplitude = o.BobAmplitude
	c.Orbit.BobFrequency = o.BobFrequency
	return c
}

// load overlays the TOML file on top of the current values. Unknown keys are
// rejected so typos do not silently fall back to defaults.
func (c *config) load(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()
	dec := toml.NewDecoder(f)
	dec.DisallowUnknownFields()
	if err := dec.Decode(c); err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	return nil
}

// options turns the file values into renderer options. Out-of-range values
// are left to the renderer's own clamping.
func (c *config) options() []blackhole.Option {
	params := blackhole.RayMarchParams{
		Lensing:  c.Disk.Lensing,
		DrawHole: c.Disk.DrawHole,
		Disk: blackhole.DiskParams{
			Enabled:    c.Disk.Enabled,
			Particle:   c.Disk.Particle,
			DensityV:   c.Disk.DensityV,
			DensityH:   c.Disk.DensityH,
			Height:     c.Disk.Height,
			Lit:        c.Disk.Lit,
			NoiseLOD:   c.Disk.NoiseLOD,
			NoiseScale: c.Disk.NoiseScale,
			Speed:      c.Disk.Speed,
		},
	}
	orbit := blackhole.Orbit{
		SemiMajor:    c.Orbit.SemiMajor,
		Eccentricity: c.Orbit.Eccentricity,
		AngularSpeed: c.Orbit.AngularSpeed,
		Inclination:  mgl32.DegToRad(c.Orbit.InclinationD),
		BobAmplitude: c.Orbit.BobAmplitude,
		BobFrequency: c.Orbit.BobFrequency,
	}
	return []blackhole.Option{
		blackhole.OptRenderScale(c.Render.Scale),
		blackhole.OptBloomMaxLevels(c.Render.BloomMaxLevels),
		blackhole.OptBloomLevels(c.Render.BloomLevels),
		blackhole.OptBloomStrength(c.Render.BloomStrength),
		blackhole.OptTonemap(c.Render.Tonemap, c.Render.Gamma),
		blackhole.OptPointerControl(c.Camera.Pointer),
		blackhole.OptCameraRoll(c.Camera.Roll),
		blackhole.OptFOVScale(c.Camera.FOVScale),
		blackhole.OptFlightDuration(c.Camera.FlightDuration),
		blackhole.OptParams(params),
		blackhole.OptOrbit(orbit),
	}
}
