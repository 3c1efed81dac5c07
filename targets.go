package blackhole

import (
	"fmt"
)

// renderTargets owns every offscreen buffer of the frame chain and recreates
// them only when the wanted size changes.
//
// For a render resolution WxH the chain holds, all sharing the factory:
//
//	primary     WxH, with depth (ray march + satellite)
//	brightness  WxH
//	down[i]     W>>(i+1) x H>>(i+1), floored at 1x1
//	up[i]       W>>i x H>>i, floored at 1x1
//	bloomFinal  WxH
//	tonemapped  WxH
type renderTargets struct {
	factory   TargetFactory
	maxLevels int
	w, h      int

	primary    Target
	brightness Target
	down       []Target
	up         []Target
	bloomFinal Target
	tonemapped Target
}

func newRenderTargets(factory TargetFactory, maxLevels int) *renderTargets {
	return &renderTargets{factory: factory, maxLevels: maxLevels}
}

// mipSize halves v shift times, never below 1.
func mipSize(v, shift int) int {
	v >>= shift
	if v < 1 {
		return 1
	}
	return v
}

// EnsureSized reallocates the whole chain when (w, h) differs from the last
// allocation, releasing the old targets first. It reports whether it
// allocated, so the caller can log or rebind dependent state. Sizes below
// one pixel are a caller bug and panic.
func (rt *renderTargets) EnsureSized(w, h int) (bool, error) {
	if w < 1 || h < 1 {
		panic(fmt.Sprintf("renderTargets.EnsureSized: bad size %dx%d", w, h))
	}
	if w == rt.w && h == rt.h && rt.primary != nil {
		return false, nil
	}
	rt.release()

	var err error
	if rt.primary, err = rt.factory.NewTarget(w, h, true); err != nil {
		return false, err
	}
	if rt.brightness, err = rt.factory.NewTarget(w, h, false); err != nil {
		return false, err
	}
	rt.down = make([]Target, rt.maxLevels)
	rt.up = make([]Target, rt.maxLevels)
	for i := 0; i < rt.maxLevels; i++ {
		if rt.down[i], err = rt.factory.NewTarget(mipSize(w, i+1), mipSize(h, i+1), false); err != nil {
			return false, err
		}
		if rt.up[i], err = rt.factory.NewTarget(mipSize(w, i), mipSize(h, i), false); err != nil {
			return false, err
		}
	}
	if rt.bloomFinal, err = rt.factory.NewTarget(w, h, false); err != nil {
		return false, err
	}
	if rt.tonemapped, err = rt.factory.NewTarget(w, h, false); err != nil {
		return false, err
	}
	rt.w, rt.h = w, h
	return true, nil
}

// release drops every allocated target and forgets the size, so the next
// EnsureSized allocates from scratch.
func (rt *renderTargets) release() {
	for _, t := range rt.all() {
		if t != nil {
			t.Release()
		}
	}
	rt.primary, rt.brightness = nil, nil
	rt.bloomFinal, rt.tonemapped = nil, nil
	rt.down, rt.up = nil, nil
	rt.w, rt.h = 0, 0
}

func (rt *renderTargets) all() []Target {
	all := []Target{rt.primary, rt.brightness, rt.bloomFinal, rt.tonemapped}
	all = append(all, rt.down...)
	return append(all, rt.up...)
}

// renderResolution scales the viewport down by the render scale fraction,
// truncating, clamped to at least one pixel per axis.
func renderResolution(viewportW, viewportH int, scale float32) (int, int) {
	w := int(float32(viewportW) * scale)
	h := int(float32(viewportH) * scale)
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}
	return w, h
}
