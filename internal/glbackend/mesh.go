package glbackend

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"
)

// meshBuilder accumulates interleaved position+normal vertices with flat
// per-triangle normals.
type meshBuilder struct {
	verts []float32
}

func (m *meshBuilder) tri(a, b, c mgl32.Vec3) {
	n := b.Sub(a).Cross(c.Sub(a))
	if l := n.Len(); l > 1e-12 {
		n = n.Mul(1 / l)
	} else {
		n = mgl32.Vec3{0, 1, 0}
	}
	for _, v := range [3]mgl32.Vec3{a, b, c} {
		m.verts = append(m.verts, v.X(), v.Y(), v.Z(), n.X(), n.Y(), n.Z())
	}
}

func (m *meshBuilder) quad(a, b, c, d mgl32.Vec3) {
	m.tri(a, b, c)
	m.tri(a, c, d)
}

func (m *meshBuilder) box(center, half mgl32.Vec3) {
	cx, cy, cz := center.X(), center.Y(), center.Z()
	hx, hy, hz := half.X(), half.Y(), half.Z()
	p := func(sx, sy, sz float32) mgl32.Vec3 {
		return mgl32.Vec3{cx + sx*hx, cy + sy*hy, cz + sz*hz}
	}
	m.quad(p(1, -1, -1), p(1, 1, -1), p(1, 1, 1), p(1, -1, 1))     // +X
	m.quad(p(-1, -1, 1), p(-1, 1, 1), p(-1, 1, -1), p(-1, -1, -1)) // -X
	m.quad(p(-1, 1, -1), p(-1, 1, 1), p(1, 1, 1), p(1, 1, -1))     // +Y
	m.quad(p(-1, -1, 1), p(-1, -1, -1), p(1, -1, -1), p(1, -1, 1)) // -Y
	m.quad(p(-1, -1, 1), p(1, -1, 1), p(1, 1, 1), p(-1, 1, 1))     // +Z
	m.quad(p(1, -1, -1), p(-1, -1, -1), p(-1, 1, -1), p(1, 1, -1)) // -Z
}

// cylinderY extrudes a circle from base to base+height along +Y, with caps.
func (m *meshBuilder) cylinderY(base mgl32.Vec3, radius, height float32, segments int) {
	top := base.Add(mgl32.Vec3{0, height, 0})
	for i := 0; i < segments; i++ {
		s0, c0 := math32.Sincos(2 * math32.Pi * float32(i) / float32(segments))
		s1, c1 := math32.Sincos(2 * math32.Pi * float32(i+1) / float32(segments))
		b0 := base.Add(mgl32.Vec3{radius * c0, 0, radius * s0})
		b1 := base.Add(mgl32.Vec3{radius * c1, 0, radius * s1})
		t0 := b0.Add(mgl32.Vec3{0, height, 0})
		t1 := b1.Add(mgl32.Vec3{0, height, 0})
		m.quad(b0, t0, t1, b1)
		m.tri(top, t1, t0)
		m.tri(base, b0, b1)
	}
}

// cylinderZ extrudes a circle from base to base+length along +Z, with caps.
func (m *meshBuilder) cylinderZ(base mgl32.Vec3, radius, length float32, segments int) {
	front := base.Add(mgl32.Vec3{0, 0, length})
	for i := 0; i < segments; i++ {
		s0, c0 := math32.Sincos(2 * math32.Pi * float32(i) / float32(segments))
		s1, c1 := math32.Sincos(2 * math32.Pi * float32(i+1) / float32(segments))
		b0 := base.Add(mgl32.Vec3{radius * c0, radius * s0, 0})
		b1 := base.Add(mgl32.Vec3{radius * c1, radius * s1, 0})
		f0 := b0.Add(mgl32.Vec3{0, 0, length})
		f1 := b1.Add(mgl32.Vec3{0, 0, length})
		m.quad(b0, b1, f1, f0)
		m.tri(front, f0, f1)
		m.tri(base, b1, b0)
	}
}

// coneY raises an apex height above (or below, for negative height) the base
// circle.
func (m *meshBuilder) coneY(base mgl32.Vec3, radius, height float32, segments int) {
	apex := base.Add(mgl32.Vec3{0, height, 0})
	for i := 0; i < segments; i++ {
		s0, c0 := math32.Sincos(2 * math32.Pi * float32(i) / float32(segments))
		s1, c1 := math32.Sincos(2 * math32.Pi * float32(i+1) / float32(segments))
		b0 := base.Add(mgl32.Vec3{radius * c0, 0, radius * s0})
		b1 := base.Add(mgl32.Vec3{radius * c1, 0, radius * s1})
		if height >= 0 {
			m.tri(b1, b0, apex)
			m.tri(base, b0, b1)
		} else {
			m.tri(b0, b1, apex)
			m.tri(base, b1, b0)
		}
	}
}

// satelliteMesh builds the full satellite in model space: an octagonal body
// with two solar panel wings, a dish, sensor masts and thruster cones. The
// frame loop scales and orients it per frame.
func satelliteMesh() []float32 {
	m := &meshBuilder{}

	// Body and the two arms carrying the wings.
	m.cylinderY(mgl32.Vec3{0, -0.25, 0}, 0.32, 0.5, 8)
	m.box(mgl32.Vec3{0.5, 0, 0}, mgl32.Vec3{0.18, 0.04, 0.04})
	m.box(mgl32.Vec3{-0.5, 0, 0}, mgl32.Vec3{0.18, 0.04, 0.04})

	// Solar panels with frames and cell grid lines.
	for _, side := range []float32{1, -1} {
		px := side * 1.15
		m.box(mgl32.Vec3{px, 0, 0}, mgl32.Vec3{0.75, 0.02, 0.45})
		m.box(mgl32.Vec3{px, 0, 0.45}, mgl32.Vec3{0.75, 0.03, 0.02})
		m.box(mgl32.Vec3{px, 0, -0.45}, mgl32.Vec3{0.75, 0.03, 0.02})
		m.box(mgl32.Vec3{px - side*0.75, 0, 0}, mgl32.Vec3{0.02, 0.03, 0.45})
		m.box(mgl32.Vec3{px + side*0.75, 0, 0}, mgl32.Vec3{0.02, 0.03, 0.45})
		for i := 1; i <= 3; i++ {
			gx := px - 0.75 + 2*0.75*float32(i)/4
			m.box(mgl32.Vec3{gx, 0.02, 0}, mgl32.Vec3{0.008, 0.008, 0.42})
		}
	}

	// Dish assembly on top.
	m.cylinderY(mgl32.Vec3{0, 0.25, 0}, 0.08, 0.06, 12)
	m.box(mgl32.Vec3{0, 0.38, 0.12}, mgl32.Vec3{0.02, 0.08, 0.02})
	m.coneY(mgl32.Vec3{0, 0.32, 0.22}, 0.12, 0.08, 12)

	// Comms masts with tips.
	m.cylinderY(mgl32.Vec3{0.15, 0.25, -0.15}, 0.015, 0.25, 6)
	m.box(mgl32.Vec3{0.15, 0.52, -0.15}, mgl32.Vec3{0.025, 0.025, 0.025})
	m.cylinderY(mgl32.Vec3{-0.15, 0.25, 0.15}, 0.015, 0.2, 6)
	m.box(mgl32.Vec3{-0.15, 0.47, 0.15}, mgl32.Vec3{0.02, 0.02, 0.02})

	// Thrusters under the body.
	for _, sx := range []float32{1, -1} {
		for _, sz := range []float32{1, -1} {
			m.coneY(mgl32.Vec3{sx * 0.2, -0.25, sz * 0.2}, 0.04, -0.08, 8)
		}
	}

	// Forward sensor block with two lenses.
	m.box(mgl32.Vec3{0, 0, 0.38}, mgl32.Vec3{0.12, 0.1, 0.06})
	m.cylinderZ(mgl32.Vec3{0.06, -0.02, 0.44}, 0.025, 0.04, 8)
	m.cylinderZ(mgl32.Vec3{-0.06, -0.02, 0.44}, 0.025, 0.04, 8)

	// Accent strips around the body.
	for i := 0; i < 4; i++ {
		s, c := math32.Sincos(math32.Pi/4 + float32(i)*math32.Pi/2)
		m.box(mgl32.Vec3{c * 0.33, 0, s * 0.33}, mgl32.Vec3{0.015, 0.26, 0.015})
	}

	return m.verts
}

// meshBuffers is the uploaded satellite geometry.
type meshBuffers struct {
	vao, vbo uint32
	count    int32
}

func newMeshBuffers(verts []float32) meshBuffers {
	m := meshBuffers{count: int32(len(verts) / 6)}
	gl.GenVertexArrays(1, &m.vao)
	gl.BindVertexArray(m.vao)
	gl.GenBuffers(1, &m.vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, m.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(verts)*4, gl.Ptr(verts), gl.STATIC_DRAW)
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointerWithOffset(0, 3, gl.FLOAT, false, 6*4, 0)
	gl.EnableVertexAttribArray(1)
	gl.VertexAttribPointerWithOffset(1, 3, gl.FLOAT, false, 6*4, 3*4)
	gl.BindVertexArray(0)
	return m
}
