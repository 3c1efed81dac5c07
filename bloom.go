package blackhole

//-----------------------------------------------------------------------------
// CONFIGURATION
//-----------------------------------------------------------------------------

// OptBloomLevels sets how many mip levels the bloom walks per frame (default
// 5). The count is clamped to the reserved maximum on use, so it can be
// lowered and raised freely between frames.
func OptBloomLevels(n int) Option {
	return func(r *Renderer) { r.bloom.levels = n }
}

// OptBloomMaxLevels sets the reserved mip chain length (default 5, capped at
// 8). Reserving more levels allocates more chain targets up front; the active
// count then moves within that bound without reallocating.
func OptBloomMaxLevels(n int) Option {
	return func(r *Renderer) {
		if n < 1 {
			n = 1
		}
		if n > 8 {
			n = 8
		}
		r.targets.maxLevels = n
	}
}

// OptBloomStrength sets the composite blend factor (default 0.1).
func OptBloomStrength(s float32) Option {
	return func(r *Renderer) { r.bloom.strength = s }
}

// OptTonemap configures the final tonemap pass (default enabled, gamma 2.5).
func OptTonemap(enabled bool, gamma float32) Option {
	return func(r *Renderer) {
		r.bloom.tonemap = TonemapParams{Enabled: enabled, Gamma: gamma}
	}
}

//-----------------------------------------------------------------------------
// BLOOM
//-----------------------------------------------------------------------------

// bloomChain runs the image pyramid: brightness extraction, downsampling to
// the coarsest active level, then combining back up in strict reverse order.
// Each upsample consumes what the previous, coarser step just produced, so
// the ordering is not optional.
type bloomChain struct {
	levels   int
	strength float32
	tonemap  TonemapParams
}

func newBloomChain() *bloomChain {
	return &bloomChain{
		levels:   5,
		strength: 0.1,
		tonemap:  TonemapParams{Enabled: true, Gamma: 2.5},
	}
}

// activeLevels clamps the configured count to what the target set reserves.
func (b *bloomChain) activeLevels(rt *renderTargets) int {
	n := b.levels
	if n < 1 {
		n = 1
	}
	if n > rt.maxLevels {
		n = rt.maxLevels
	}
	return n
}

// run executes the bloom over the target chain and leaves the displayable
// frame in rt.tonemapped. Targets beyond the active level count are left
// untouched.
func (b *bloomChain) run(p PassRunner, rt *renderTargets) error {
	n := b.activeLevels(rt)
	if err := p.Brightness(rt.brightness, rt.primary); err != nil {
		return err
	}
	for level := 0; level < n; level++ {
		src := rt.brightness
		if level > 0 {
			src = rt.down[level-1]
		}
		if err := p.Downsample(rt.down[level], src); err != nil {
			return err
		}
	}
	for level := n - 1; level >= 0; level-- {
		coarse := rt.down[level]
		if level < n-1 {
			coarse = rt.up[level+1]
		}
		same := rt.brightness
		if level > 0 {
			same = rt.down[level-1]
		}
		if err := p.Upsample(rt.up[level], coarse, same); err != nil {
			return err
		}
	}
	if err := p.Composite(rt.bloomFinal, rt.primary, rt.up[0], b.strength); err != nil {
		return err
	}
	return p.Tonemap(rt.tonemapped, rt.bloomFinal, &b.tonemap)
}
