package game

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

func TestLayoutStride(t *testing.T) {
	tests := []struct {
		layout Layout
		want   int32
	}{
		{LayoutColored, 7},
		{LayoutCube, 17},
		{LayoutTerrain, 8},
		{LayoutModel, 14},
	}

	for _, tt := range tests {
		if s := tt.layout.Stride(); s != tt.want {
			t.Errorf("stride of %v is %v instead of %v", tt.layout, s, tt.want)
		}
	}
}

func TestMergeVertices(t *testing.T) {
	n := mgl32.Vec3{0, 0, 1}
	a := Vertex{position: mgl32.Vec3{0, 0, 0}, normal: n, uv: mgl32.Vec2{0, 0}}
	b := Vertex{position: mgl32.Vec3{1, 0, 0}, normal: n, uv: mgl32.Vec2{1, 0}}
	c := Vertex{position: mgl32.Vec3{1, 1, 0}, normal: n, uv: mgl32.Vec2{1, 1}}
	d := Vertex{position: mgl32.Vec3{0, 1, 0}, normal: n, uv: mgl32.Vec2{0, 1}}

	mb := &meshbuffer{}
	mb.AddFace(a, b, c)
	mb.AddFace(a, c, d)
	// collapses to a line
	mb.AddFace(a, b, Vertex{position: mgl32.Vec3{0.00001, 0, 0}, normal: n})

	if len(mb.Vertices) != 9 || len(mb.Faces) != 3 {
		t.Fatalf("%v vertices and %v faces before merge", len(mb.Vertices), len(mb.Faces))
	}

	mb.MergeVertices()

	if len(mb.Vertices) != 4 {
		t.Errorf("%v vertices after merge instead of 4", len(mb.Vertices))
	}
	if len(mb.Faces) != 2 {
		t.Fatalf("%v faces after merge instead of 2", len(mb.Faces))
	}
	if mb.Faces[0] != (Face{0, 1, 2}) || mb.Faces[1] != (Face{0, 2, 3}) {
		t.Errorf("faces %v", mb.Faces)
	}
}

func TestComputeTangents(t *testing.T) {
	n := mgl32.Vec3{0, 0, 1}
	mb := &meshbuffer{}
	mb.AddFace(
		Vertex{position: mgl32.Vec3{0, 0, 0}, normal: n, uv: mgl32.Vec2{0, 0}},
		Vertex{position: mgl32.Vec3{1, 0, 0}, normal: n, uv: mgl32.Vec2{1, 0}},
		Vertex{position: mgl32.Vec3{0, 1, 0}, normal: n, uv: mgl32.Vec2{0, 1}},
	)
	mb.ComputeTangents()

	for i, v := range mb.Vertices {
		if !vecNear(v.tangent, mgl32.Vec3{1, 0, 0}, 1e-5) {
			t.Errorf("tangent %v of vertex %v", v.tangent, i)
		}
		if !vecNear(v.bitangent, mgl32.Vec3{0, 1, 0}, 1e-5) {
			t.Errorf("bitangent %v of vertex %v", v.bitangent, i)
		}
	}

	// mirrored uvs flip the bitangent
	mb = &meshbuffer{}
	mb.AddFace(
		Vertex{position: mgl32.Vec3{0, 0, 0}, normal: n, uv: mgl32.Vec2{0, 1}},
		Vertex{position: mgl32.Vec3{1, 0, 0}, normal: n, uv: mgl32.Vec2{1, 1}},
		Vertex{position: mgl32.Vec3{0, 1, 0}, normal: n, uv: mgl32.Vec2{0, 0}},
	)
	mb.ComputeTangents()
	if b := mb.Vertices[0].bitangent; !vecNear(b, mgl32.Vec3{0, -1, 0}, 1e-5) {
		t.Errorf("mirrored bitangent %v", b)
	}

	// no uv gradient, any tangent perpendicular to the normal
	mb = &meshbuffer{}
	mb.AddFace(
		Vertex{position: mgl32.Vec3{0, 0, 0}, normal: n},
		Vertex{position: mgl32.Vec3{1, 0, 0}, normal: n},
		Vertex{position: mgl32.Vec3{0, 1, 0}, normal: n},
	)
	mb.ComputeTangents()
	for _, v := range mb.Vertices {
		if mgl32.Abs(v.tangent.Dot(n)) > 1e-5 || !mgl32.FloatEqualThreshold(v.tangent.Len(), 1, 1e-5) {
			t.Errorf("fallback tangent %v", v.tangent)
		}
	}
}

func TestInterleave(t *testing.T) {
	mb := &meshbuffer{}
	mb.AddFace(
		Vertex{position: mgl32.Vec3{1, 2, 3}, normal: mgl32.Vec3{0, 1, 0}, uv: mgl32.Vec2{0.5, 0.25}},
		Vertex{position: mgl32.Vec3{4, 5, 6}},
		Vertex{position: mgl32.Vec3{7, 8, 9}},
	)
	mb.interleave()

	if len(mb.data) != 3*14 {
		t.Fatalf("%v floats instead of %v", len(mb.data), 3*14)
	}
	want := []float32{1, 2, 3, 0, 1, 0, 0.5, 0.25}
	for i, f := range want {
		if mb.data[i] != f {
			t.Errorf("float %v is %v instead of %v", i, mb.data[i], f)
		}
	}
	if mb.data[14] != 4 || mb.data[28] != 7 {
		t.Errorf("second and third vertex start with %v and %v", mb.data[14], mb.data[28])
	}
	if mb.IndexCount != 3 {
		t.Errorf("index count %v", mb.IndexCount)
	}
}

func TestRawMeshbufferBoundary(t *testing.T) {
	mb := CubePrimitive()

	if mb.IndexCount != 36 {
		t.Errorf("cube has %v indices", mb.IndexCount)
	}
	b := mb.Bounding
	if b.Min != (mgl32.Vec3{-0.5, -0.5, -0.5}) || b.Max != (mgl32.Vec3{0.5, 0.5, 0.5}) {
		t.Errorf("cube boundary %v", b)
	}
}

func TestBoundary(t *testing.T) {
	b := NewBoundary()
	if !b.Empty() {
		t.Error("new boundary not empty")
	}

	b.AddPoint(mgl32.Vec3{1, -2, 3})
	if b.Empty() {
		t.Error("boundary with a point is empty")
	}
	if b.Size() != (mgl32.Vec3{}) {
		t.Errorf("size of a point %v", b.Size())
	}

	b.AddPoint(mgl32.Vec3{-1, 2, -3})
	if c := b.Center(); c != (mgl32.Vec3{}) {
		t.Errorf("center %v", c)
	}
	if s := b.Size(); s != (mgl32.Vec3{2, 4, 6}) {
		t.Errorf("size %v", s)
	}

	c, r := b.Sphere()
	if c != (mgl32.Vec3{}) || !mgl32.FloatEqualThreshold(r, mgl32.Vec3{1, 2, 3}.Len(), 1e-5) {
		t.Errorf("sphere %v %v", c, r)
	}
}
