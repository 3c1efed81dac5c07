// Package glbackend is the OpenGL 4.1 core implementation of the renderer's
// backend surface: window and input via GLFW, offscreen targets, the pass
// programs and the asset loaders. Everything here must run on the thread the
// context was created on.
package glbackend

import (
	"fmt"
	"log"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/Lioooooo123/blackhole"
)

// Config selects the window and shader sources for New.
type Config struct {
	Title  string
	Width  int
	Height int
	// ShaderDir, when set, loads shader sources from disk instead of the
	// embedded copies, so they can be edited and hot-reloaded.
	ShaderDir string
}

// Backend drives one GLFW window and its GL context. It implements
// blackhole.Backend.
type Backend struct {
	window   *glfw.Window
	programs *programSet
	quad     uint32 // fullscreen quad VAO
	quadVBO  uint32
	mesh     meshBuffers

	fbW, fbH int
	edges    struct {
		flight, front, top bool
	}
}

// New creates the window, the GL context and compiles every pass program.
// The caller's goroutine must be locked to its OS thread.
func New(cfg Config) (*Backend, error) {
	if cfg.Width <= 0 || cfg.Height <= 0 {
		cfg.Width, cfg.Height = 1920, 1080
	}
	if err := glfw.Init(); err != nil {
		return nil, fmt.Errorf("glfw init: %w", err)
	}
	glfw.WindowHint(glfw.ContextVersionMajor, 4)
	glfw.WindowHint(glfw.ContextVersionMinor, 1)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)
	glfw.WindowHint(glfw.Resizable, glfw.True)

	window, err := glfw.CreateWindow(cfg.Width, cfg.Height, cfg.Title, nil, nil)
	if err != nil {
		glfw.Terminate()
		return nil, fmt.Errorf("create window: %w", err)
	}
	window.MakeContextCurrent()
	glfw.SwapInterval(1) // vsync

	if err := gl.Init(); err != nil {
		window.Destroy()
		glfw.Terminate()
		return nil, fmt.Errorf("gl init: %w", err)
	}
	log.Printf("[glbackend] %s on %s", gl.GoStr(gl.GetString(gl.VERSION)), gl.GoStr(gl.GetString(gl.RENDERER)))

	b := &Backend{window: window}
	b.programs, err = newProgramSet(cfg.ShaderDir)
	if err != nil {
		b.Destroy()
		return nil, err
	}
	b.quad, b.quadVBO = newQuadVAO()
	b.mesh = newMeshBuffers(satelliteMesh())
	b.fbW, b.fbH = window.GetFramebufferSize()

	window.SetKeyCallback(func(w *glfw.Window, key glfw.Key, scancode int, action glfw.Action, mods glfw.ModifierKey) {
		if action != glfw.Press {
			return
		}
		switch key {
		case glfw.KeyC:
			b.edges.flight = true
		case glfw.Key1:
			b.edges.front = true
		case glfw.Key2:
			b.edges.top = true
		case glfw.KeyEscape:
			w.SetShouldClose(true)
		}
	})
	return b, nil
}

// Destroy tears the window and context down. The Backend is unusable after.
func (b *Backend) Destroy() {
	if b.window != nil {
		b.window.Destroy()
		b.window = nil
	}
	glfw.Terminate()
}

// Poll pumps window events and reports this frame's input. Key edges are
// consumed: each press shows up in exactly one report.
func (b *Backend) Poll() blackhole.FrameInput {
	glfw.PollEvents()
	b.fbW, b.fbH = b.window.GetFramebufferSize()

	winW, winH := b.window.GetSize()
	cx, cy := b.window.GetCursorPos()
	pointer := mgl32.Vec2{0.5, 0.5}
	if winW > 0 && winH > 0 {
		pointer = mgl32.Vec2{float32(cx / float64(winW)), float32(cy / float64(winH))}
	}

	in := blackhole.FrameInput{
		Time:         glfw.GetTime(),
		ViewportW:    b.fbW,
		ViewportH:    b.fbH,
		Pointer:      pointer,
		ToggleFlight: b.edges.flight,
		ToggleFront:  b.edges.front,
		ToggleTop:    b.edges.top,
	}
	b.edges.flight, b.edges.front, b.edges.top = false, false, false
	return in
}

func (b *Backend) Present() {
	b.window.SwapBuffers()
}

func (b *Backend) ShouldClose() bool {
	return b.window.ShouldClose()
}

func (b *Backend) RequestClose() {
	b.window.SetShouldClose(true)
}

func (b *Backend) SetTitle(title string) {
	b.window.SetTitle(title)
}

// newQuadVAO uploads the two-triangle fullscreen quad every post pass draws.
func newQuadVAO() (vao, vbo uint32) {
	quad := []float32{
		// x, y, u, v
		-1, -1, 0, 0,
		1, -1, 1, 0,
		1, 1, 1, 1,
		-1, -1, 0, 0,
		1, 1, 1, 1,
		-1, 1, 0, 1,
	}
	gl.GenVertexArrays(1, &vao)
	gl.BindVertexArray(vao)
	gl.GenBuffers(1, &vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(quad)*4, gl.Ptr(quad), gl.STATIC_DRAW)
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointerWithOffset(0, 2, gl.FLOAT, false, 4*4, 0)
	gl.EnableVertexAttribArray(1)
	gl.VertexAttribPointerWithOffset(1, 2, gl.FLOAT, false, 4*4, 2*4)
	gl.BindVertexArray(0)
	return vao, vbo
}

// drawQuad issues the 6 fullscreen vertices with the currently bound program.
func (b *Backend) drawQuad() {
	gl.BindVertexArray(b.quad)
	gl.DrawArrays(gl.TRIANGLES, 0, 6)
	gl.BindVertexArray(0)
}
