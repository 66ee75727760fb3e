package game

import (
	"errors"
	"fmt"

	"github.com/go-gl/gl/v3.3-core/gl"
	"github.com/go-gl/mathgl/mgl32"
)

const floatSize = 4 // sizeof(float32), uint32 indices have the same size

// Attribute describes one float vertex attribute, its location is the index in the Layout.
type Attribute struct {
	Size       int32
	Normalized bool
}

type Layout []Attribute

var (
	// position, rgba
	LayoutColored = Layout{{3, false}, {4, false}}

	// position, color, uv, normal, tangent, bitangent
	LayoutCube = Layout{{3, false}, {3, false}, {2, false}, {3, true}, {3, true}, {3, true}}

	// position, normal, uv
	LayoutTerrain = Layout{{3, false}, {3, false}, {2, false}}

	// position, normal, uv, tangent, bitangent
	LayoutModel = Layout{{3, false}, {3, false}, {2, false}, {3, false}, {3, false}}
)

// Stride in floats
func (l Layout) Stride() int32 {
	var s int32
	for _, a := range l {
		s += a.Size
	}
	return s
}

type Vertex struct {
	position  mgl32.Vec3
	normal    mgl32.Vec3
	uv        mgl32.Vec2
	tangent   mgl32.Vec3
	bitangent mgl32.Vec3
}

func (v Vertex) Key(precision int) string {
	return fmt.Sprintf("%v_%v_%v_%v_%v_%v_%v_%v",
		mgl32.Round(v.position[0], precision),
		mgl32.Round(v.position[1], precision),
		mgl32.Round(v.position[2], precision),

		mgl32.Round(v.normal[0], precision),
		mgl32.Round(v.normal[1], precision),
		mgl32.Round(v.normal[2], precision),

		mgl32.Round(v.uv[0], precision),
		mgl32.Round(v.uv[1], precision),
	)
}

type Face struct {
	A, B, C int
}

var errEmptyMesh = errors.New("mesh has no indices")

type meshbuffer struct {
	Vertices []Vertex
	Faces    []Face

	// interleaved data, built from Vertices/Faces on Init if not set directly
	layout  Layout
	data    []float32
	indices []uint32

	vao, vbo, ebo uint32
	initialized   bool

	Bounding   Boundary
	IndexCount int32
}

// newRawMeshbuffer wraps already interleaved vertex data.
func newRawMeshbuffer(layout Layout, data []float32, indices []uint32) *meshbuffer {
	mb := &meshbuffer{
		layout:  layout,
		data:    data,
		indices: indices,
	}

	stride := int(layout.Stride())
	mb.Bounding = NewBoundary()
	for i := 0; i+2 < len(data); i += stride {
		mb.Bounding.AddPoint(mgl32.Vec3{data[i], data[i+1], data[i+2]})
	}
	mb.IndexCount = int32(len(indices))
	return mb
}

func (g *meshbuffer) AddFace(a, b, c Vertex) {
	offset := len(g.Vertices)
	g.Vertices = append(g.Vertices, a, b, c)
	g.Faces = append(g.Faces, Face{offset, offset + 1, offset + 2})
}

func (g *meshbuffer) MergeVertices() {
	// search and mark duplicate vertices
	lookup := map[string]int{}
	unique := []Vertex{}
	changed := map[int]int{}

	for i, v := range g.Vertices {
		key := v.Key(4)

		if j, found := lookup[key]; !found {
			lookup[key] = i
			unique = append(unique, v)
			changed[i] = len(unique) - 1
		} else {
			changed[i] = changed[j]
		}
	}

	cleaned := []Face{}
	for _, f := range g.Faces {
		a, b, c := changed[f.A], changed[f.B], changed[f.C]
		if a == b || b == c || c == a {
			// degenerated
			continue
		}
		cleaned = append(cleaned, Face{a, b, c})
	}

	g.Vertices = unique
	g.Faces = cleaned
}

// ComputeTangents accumulates per face tangents and orthogonalizes them against the vertex normal.
func (g *meshbuffer) ComputeTangents() {
	tan := make([]mgl32.Vec3, len(g.Vertices))
	bit := make([]mgl32.Vec3, len(g.Vertices))

	for _, f := range g.Faces {
		v0, v1, v2 := g.Vertices[f.A], g.Vertices[f.B], g.Vertices[f.C]

		e1 := v1.position.Sub(v0.position)
		e2 := v2.position.Sub(v0.position)
		du1, dv1 := v1.uv[0]-v0.uv[0], v1.uv[1]-v0.uv[1]
		du2, dv2 := v2.uv[0]-v0.uv[0], v2.uv[1]-v0.uv[1]

		det := du1*dv2 - du2*dv1
		if mgl32.FloatEqual(det, 0) {
			continue
		}
		r := 1 / det

		t := e1.Mul(dv2).Sub(e2.Mul(dv1)).Mul(r)
		b := e2.Mul(du1).Sub(e1.Mul(du2)).Mul(r)

		for _, i := range [3]int{f.A, f.B, f.C} {
			tan[i] = tan[i].Add(t)
			bit[i] = bit[i].Add(b)
		}
	}

	for i := range g.Vertices {
		n := g.Vertices[i].normal
		t := tan[i]

		// gram-schmidt
		t = t.Sub(n.Mul(n.Dot(t)))
		if t.Len() < 1e-6 {
			t = anyPerpendicular(n)
		}
		t = t.Normalize()

		b := n.Cross(t)
		if b.Dot(bit[i]) < 0 {
			b = b.Mul(-1)
		}

		g.Vertices[i].tangent = t
		g.Vertices[i].bitangent = b
	}
}

func anyPerpendicular(n mgl32.Vec3) mgl32.Vec3 {
	if mgl32.Abs(n[0]) < 0.9 {
		return n.Cross(mgl32.Vec3{1, 0, 0})
	}
	return n.Cross(mgl32.Vec3{0, 1, 0})
}

func (g *meshbuffer) ComputeBoundary() {
	g.Bounding = NewBoundary()
	for _, v := range g.Vertices {
		g.Bounding.AddPoint(v.position)
	}
}

// interleave converts Vertices and Faces into LayoutModel data.
func (g *meshbuffer) interleave() {
	g.layout = LayoutModel
	g.data = make([]float32, 0, len(g.Vertices)*int(LayoutModel.Stride()))
	g.indices = make([]uint32, 0, len(g.Faces)*3)

	for _, v := range g.Vertices {
		g.data = append(g.data,
			v.position[0], v.position[1], v.position[2],
			v.normal[0], v.normal[1], v.normal[2],
			v.uv[0], v.uv[1],
			v.tangent[0], v.tangent[1], v.tangent[2],
			v.bitangent[0], v.bitangent[1], v.bitangent[2],
		)
	}

	for _, f := range g.Faces {
		g.indices = append(g.indices, uint32(f.A), uint32(f.B), uint32(f.C))
	}
	g.IndexCount = int32(len(g.indices))
}

// Init uploads the mesh, must run on the gl thread.
func (g *meshbuffer) Init() error {
	if g.initialized {
		return nil
	}

	if g.data == nil {
		g.interleave()
	}
	if len(g.indices) == 0 || len(g.data) == 0 {
		return errEmptyMesh
	}

	gl.GenVertexArrays(1, &g.vao)
	gl.BindVertexArray(g.vao)

	gl.GenBuffers(1, &g.vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, g.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(g.data)*floatSize, gl.Ptr(g.data), gl.STATIC_DRAW)

	gl.GenBuffers(1, &g.ebo)
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, g.ebo)
	gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(g.indices)*floatSize, gl.Ptr(g.indices), gl.STATIC_DRAW)

	stride := g.layout.Stride() * floatSize
	var offset int32
	for i, a := range g.layout {
		gl.VertexAttribPointer(uint32(i), a.Size, gl.FLOAT, a.Normalized, stride, gl.PtrOffset(int(offset*floatSize)))
		gl.EnableVertexAttribArray(uint32(i))
		offset += a.Size
	}

	gl.BindVertexArray(0)
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)

	g.IndexCount = int32(len(g.indices))
	g.Vertices, g.Faces = nil, nil
	g.data, g.indices = nil, nil
	g.initialized = true
	return nil
}

func (g *meshbuffer) Draw() {
	if !g.initialized {
		return
	}
	gl.BindVertexArray(g.vao)
	gl.DrawElements(gl.TRIANGLES, g.IndexCount, gl.UNSIGNED_INT, gl.PtrOffset(0))
	gl.BindVertexArray(0)
}

func (g *meshbuffer) Cleanup() {
	if g.ebo != 0 {
		gl.DeleteBuffers(1, &g.ebo)
	}
	if g.vbo != 0 {
		gl.DeleteBuffers(1, &g.vbo)
	}
	if g.vao != 0 {
		gl.DeleteVertexArrays(1, &g.vao)
	}
	g.initialized = false
}
