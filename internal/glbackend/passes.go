package glbackend

import (
	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/Lioooooo123/blackhole"
)

// RayMarch draws the ray-marched scene over the whole primary target.
func (b *Backend) RayMarch(dst blackhole.Target, in *blackhole.RayMarchInputs) error {
	t, err := asGL(dst)
	if err != nil {
		return err
	}
	t.bind()
	gl.ClearColor(0, 0, 0, 1)
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)

	p := b.programs.use("raymarch")
	p.setVec2("resolution", mgl32.Vec2{float32(t.w), float32(t.h)})
	p.setFloat("time", in.Time)
	p.setVec3("cameraPos", in.Camera.Pos)
	p.setVec3("cameraUp", in.Camera.Up)
	p.setFloat("fovScale", in.Camera.FOVScale)
	p.setBool("gravitationalLensing", in.Params.Lensing)
	p.setBool("renderBlackHole", in.Params.DrawHole)
	p.setBool("adiskEnabled", in.Params.Disk.Enabled)
	p.setBool("adiskParticle", in.Params.Disk.Particle)
	p.setFloat("adiskDensityV", in.Params.Disk.DensityV)
	p.setFloat("adiskDensityH", in.Params.Disk.DensityH)
	p.setFloat("adiskHeight", in.Params.Disk.Height)
	p.setFloat("adiskLit", in.Params.Disk.Lit)
	p.setFloat("adiskNoiseLOD", in.Params.Disk.NoiseLOD)
	p.setFloat("adiskNoiseScale", in.Params.Disk.NoiseScale)
	p.setFloat("adiskSpeed", in.Params.Disk.Speed)

	p.setInt("colorMap", 0)
	gl.ActiveTexture(gl.TEXTURE0)
	gl.BindTexture(gl.TEXTURE_2D, in.ColorMap.TextureID())
	p.setInt("galaxy", 1)
	gl.ActiveTexture(gl.TEXTURE1)
	gl.BindTexture(gl.TEXTURE_CUBE_MAP, in.Galaxy.CubemapID())

	b.drawQuad()
	return nil
}

// Satellite renders the mesh on top of the ray-marched scene. The depth
// buffer is cleared first; the scene pass writes no usable depth, so only the
// satellite occludes itself.
func (b *Backend) Satellite(dst blackhole.Target, in *blackhole.SatelliteInputs) error {
	t, err := asGL(dst)
	if err != nil {
		return err
	}
	t.bind()
	gl.Clear(gl.DEPTH_BUFFER_BIT)
	gl.Enable(gl.DEPTH_TEST)
	defer gl.Disable(gl.DEPTH_TEST)

	p := b.programs.use("satellite")
	p.setMat4("model", in.Model)
	p.setMat4("view", in.View)
	p.setMat4("projection", in.Projection)
	p.setVec3("cameraPos", in.CameraPos)
	p.setVec3("lightDir", in.LightDir)
	p.setVec3("lightColor", mgl32.Vec3{1, 0.95, 0.85})
	p.setVec3("rimColor", mgl32.Vec3{1.4, 1.2, 0.95})
	p.setFloat("rimStrength", 1.35)

	gl.BindVertexArray(b.mesh.vao)
	gl.DrawArrays(gl.TRIANGLES, 0, b.mesh.count)
	gl.BindVertexArray(0)
	return nil
}

// postPass binds dst, clears it and runs the named program over the quad
// with texture0 already assigned. extra configures further uniforms and
// bindings while the program is active.
func (b *Backend) postPass(name string, dst, src *glTarget, extra func(p *program)) {
	dst.bind()
	gl.ClearColor(0, 0, 0, 1)
	gl.Clear(gl.COLOR_BUFFER_BIT)

	p := b.programs.use(name)
	p.setVec2("resolution", mgl32.Vec2{float32(dst.w), float32(dst.h)})
	p.setInt("texture0", 0)
	gl.ActiveTexture(gl.TEXTURE0)
	gl.BindTexture(gl.TEXTURE_2D, src.color)
	if extra != nil {
		extra(p)
	}
	b.drawQuad()
}

func (b *Backend) Brightness(dst, src blackhole.Target) error {
	d, err := asGL(dst)
	if err != nil {
		return err
	}
	s, err := asGL(src)
	if err != nil {
		return err
	}
	b.postPass("brightness", d, s, nil)
	return nil
}

func (b *Backend) Downsample(dst, src blackhole.Target) error {
	d, err := asGL(dst)
	if err != nil {
		return err
	}
	s, err := asGL(src)
	if err != nil {
		return err
	}
	b.postPass("downsample", d, s, func(p *program) {
		p.setVec2("sourceResolution", mgl32.Vec2{float32(s.w), float32(s.h)})
	})
	return nil
}

func (b *Backend) Upsample(dst, coarse, same blackhole.Target) error {
	d, err := asGL(dst)
	if err != nil {
		return err
	}
	c, err := asGL(coarse)
	if err != nil {
		return err
	}
	sm, err := asGL(same)
	if err != nil {
		return err
	}
	b.postPass("upsample", d, c, func(p *program) {
		p.setInt("texture1", 1)
		gl.ActiveTexture(gl.TEXTURE1)
		gl.BindTexture(gl.TEXTURE_2D, sm.color)
	})
	return nil
}

func (b *Backend) Composite(dst, base, bloom blackhole.Target, strength float32) error {
	d, err := asGL(dst)
	if err != nil {
		return err
	}
	bs, err := asGL(base)
	if err != nil {
		return err
	}
	bl, err := asGL(bloom)
	if err != nil {
		return err
	}
	b.postPass("composite", d, bs, func(p *program) {
		p.setFloat("bloomStrength", strength)
		p.setInt("texture1", 1)
		gl.ActiveTexture(gl.TEXTURE1)
		gl.BindTexture(gl.TEXTURE_2D, bl.color)
	})
	return nil
}

func (b *Backend) Tonemap(dst, src blackhole.Target, tp *blackhole.TonemapParams) error {
	d, err := asGL(dst)
	if err != nil {
		return err
	}
	s, err := asGL(src)
	if err != nil {
		return err
	}
	b.postPass("tonemap", d, s, func(p *program) {
		p.setBool("tonemappingEnabled", tp.Enabled)
		p.setFloat("gamma", tp.Gamma)
	})
	return nil
}

// Blit presents src to the window framebuffer at full viewport resolution.
func (b *Backend) Blit(src blackhole.Target) error {
	s, err := asGL(src)
	if err != nil {
		return err
	}
	gl.BindFramebuffer(gl.FRAMEBUFFER, 0)
	gl.Viewport(0, 0, int32(b.fbW), int32(b.fbH))
	gl.ClearColor(0, 0, 0, 1)
	gl.Clear(gl.COLOR_BUFFER_BIT)

	p := b.programs.use("blit")
	p.setVec2("resolution", mgl32.Vec2{float32(b.fbW), float32(b.fbH)})
	p.setInt("texture0", 0)
	gl.ActiveTexture(gl.TEXTURE0)
	gl.BindTexture(gl.TEXTURE_2D, s.color)
	b.drawQuad()
	return nil
}
