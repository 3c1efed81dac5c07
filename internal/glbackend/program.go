package glbackend

import (
	"embed"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"
)

//go:embed shader/*.vert shader/*.frag
var shaderFS embed.FS

// passPrograms names every pipeline and the sources it links.
var passPrograms = []struct {
	name, vert, frag string
}{
	{"raymarch", "simple.vert", "blackhole_main.frag"},
	{"satellite", "satellite.vert", "satellite.frag"},
	{"brightness", "simple.vert", "bloom_brightness_pass.frag"},
	{"downsample", "simple.vert", "bloom_downsample.frag"},
	{"upsample", "simple.vert", "bloom_upsample.frag"},
	{"composite", "simple.vert", "bloom_composite.frag"},
	{"tonemap", "simple.vert", "tonemapping.frag"},
	{"blit", "simple.vert", "passthrough.frag"},
}

// program is one linked pipeline with a uniform location cache. Locations of
// uniforms the compiler stripped come back as -1, which the gl.Uniform calls
// ignore.
type program struct {
	name     string
	vert     string
	frag     string
	handle   uint32
	uniforms map[string]int32
}

// programSet compiles and owns the pass programs. Sources come from the
// embedded copies unless a directory override is set; reloads swap a source
// by file name and relink every program that uses it.
type programSet struct {
	sources  map[string][]byte
	programs map[string]*program
}

func newProgramSet(dir string) (*programSet, error) {
	ps := &programSet{
		sources:  map[string][]byte{},
		programs: map[string]*program{},
	}
	for _, pp := range passPrograms {
		for _, file := range []string{pp.vert, pp.frag} {
			if _, ok := ps.sources[file]; ok {
				continue
			}
			src, err := loadShaderSource(dir, file)
			if err != nil {
				return nil, err
			}
			ps.sources[file] = src
		}
	}
	for _, pp := range passPrograms {
		p := &program{name: pp.name, vert: pp.vert, frag: pp.frag}
		if err := ps.link(p); err != nil {
			return nil, err
		}
		ps.programs[pp.name] = p
	}
	if dir != "" {
		log.Printf("[glbackend] shaders loaded from %s", dir)
	}
	return ps, nil
}

func loadShaderSource(dir, file string) ([]byte, error) {
	if dir != "" {
		src, err := os.ReadFile(filepath.Join(dir, file))
		if err != nil {
			return nil, fmt.Errorf("shader %s: %w", file, err)
		}
		return src, nil
	}
	src, err := shaderFS.ReadFile("shader/" + file)
	if err != nil {
		return nil, fmt.Errorf("embedded shader %s: %w", file, err)
	}
	return src, nil
}

// link compiles the program's current sources into a fresh handle, replacing
// the old one only on success.
func (ps *programSet) link(p *program) error {
	vert, err := compileShader(p.vert, ps.sources[p.vert], gl.VERTEX_SHADER)
	if err != nil {
		return err
	}
	defer gl.DeleteShader(vert)
	frag, err := compileShader(p.frag, ps.sources[p.frag], gl.FRAGMENT_SHADER)
	if err != nil {
		return err
	}
	defer gl.DeleteShader(frag)

	handle := gl.CreateProgram()
	gl.AttachShader(handle, vert)
	gl.AttachShader(handle, frag)
	gl.LinkProgram(handle)

	var status int32
	gl.GetProgramiv(handle, gl.LINK_STATUS, &status)
	if status == gl.FALSE {
		var logLen int32
		gl.GetProgramiv(handle, gl.INFO_LOG_LENGTH, &logLen)
		msg := strings.Repeat("\x00", int(logLen+1))
		gl.GetProgramInfoLog(handle, logLen, nil, gl.Str(msg))
		gl.DeleteProgram(handle)
		return fmt.Errorf("link %s: %s", p.name, strings.TrimRight(msg, "\x00"))
	}
	if p.handle != 0 {
		gl.DeleteProgram(p.handle)
	}
	p.handle = handle
	p.uniforms = map[string]int32{}
	return nil
}

func compileShader(file string, src []byte, kind uint32) (uint32, error) {
	shader := gl.CreateShader(kind)
	csources, free := gl.Strs(string(src) + "\x00")
	gl.ShaderSource(shader, 1, csources, nil)
	free()
	gl.CompileShader(shader)

	var status int32
	gl.GetShaderiv(shader, gl.COMPILE_STATUS, &status)
	if status == gl.FALSE {
		var logLen int32
		gl.GetShaderiv(shader, gl.INFO_LOG_LENGTH, &logLen)
		msg := strings.Repeat("\x00", int(logLen+1))
		gl.GetShaderInfoLog(shader, logLen, nil, gl.Str(msg))
		gl.DeleteShader(shader)
		return 0, fmt.Errorf("compile %s: %s", file, strings.TrimRight(msg, "\x00"))
	}
	return shader, nil
}

// ReloadShader swaps the source known under path's base name and relinks the
// programs using it. Programs that fail to relink keep their old handle.
func (b *Backend) ReloadShader(path string, src []byte) error {
	base := filepath.Base(path)
	if _, ok := b.programs.sources[base]; !ok {
		return fmt.Errorf("%s is not a known shader", base)
	}
	b.programs.sources[base] = src
	var firstErr error
	for _, p := range b.programs.programs {
		if p.vert != base && p.frag != base {
			continue
		}
		if err := b.programs.link(p); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

func (ps *programSet) use(name string) *program {
	p := ps.programs[name]
	gl.UseProgram(p.handle)
	return p
}

func (p *program) uniform(name string) int32 {
	if loc, ok := p.uniforms[name]; ok {
		return loc
	}
	loc := gl.GetUniformLocation(p.handle, gl.Str(name+"\x00"))
	p.uniforms[name] = loc
	return loc
}

func (p *program) setFloat(name string, v float32) { gl.Uniform1f(p.uniform(name), v) }

func (p *program) setInt(name string, v int32) { gl.Uniform1i(p.uniform(name), v) }

func (p *program) setVec2(name string, v mgl32.Vec2) { gl.Uniform2f(p.uniform(name), v.X(), v.Y()) }

func (p *program) setVec3(name string, v mgl32.Vec3) {
	gl.Uniform3f(p.uniform(name), v.X(), v.Y(), v.Z())
}
func (p *program) setMat4(name string, m mgl32.Mat4) {
	gl.UniformMatrix4fv(p.uniform(name), 1, false, &m[0])
}

func (p *program) setBool(name string, v bool) {
	var i int32
	if v {
		i = 1
	}
	gl.Uniform1i(p.uniform(name), i)
}
