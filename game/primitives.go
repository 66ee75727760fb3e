package game

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// position, rgba
var quadVertices = []float32{
	-0.5, -0.5, 0.5, 1.0, 0.0, 0.0, 1.0,
	0.5, -0.5, 0.5, 0.0, 1.0, 0.0, 1.0,
	-0.5, 0.5, 0.5, 0.0, 0.0, 1.0, 1.0,
	0.5, 0.5, 0.5, 1.0, 1.0, 1.0, 1.0,
}

func TrianglePrimitive() *meshbuffer {
	return newRawMeshbuffer(LayoutColored, quadVertices[:21], []uint32{0, 1, 2})
}

func QuadPrimitive() *meshbuffer {
	return newRawMeshbuffer(LayoutColored, quadVertices, []uint32{
		0, 2, 1,
		1, 3, 2,
	})
}

// 24 vertices for a uv mapped cube with normals and tangent space,
// 17 floats per vertex, see LayoutCube.
var cubeVertices = []float32{
	// positions         colors          uv      normals       tangents      bitangents
	0.5, -0.5, -0.5, 1.0, 1.0, 1.0, 1, 1, 0, -1, 0, -1, 0, 0, 0, 0, 1,
	0.5, -0.5, 0.5, 1.0, 1.0, 1.0, 1, 0, 0, -1, 0, -1, 0, 0, 0, 0, 1,
	-0.5, -0.5, 0.5, 1.0, 1.0, 1.0, 0, 0, 0, -1, 0, -1, 0, 0, 0, 0, 1,
	-0.5, -0.5, -.5, 1.0, 1.0, 1.0, 0, 1, 0, -1, 0, -1, 0, 0, 0, 0, 1,

	0.5, 0.5, -0.5, 1.0, 1.0, 1.0, 1, 1, 1, 0, 0, 0, -1, 0, 0, 0, 1,
	0.5, 0.5, 0.5, 1.0, 1.0, 1.0, 1, 0, 1, 0, 0, 0, -1, 0, 0, 0, 1,

	0.5, 0.5, 0.5, 1.0, 1.0, 1.0, 1, 0, 0, 0, 1, 1, 0, 0, 0, -1, 0,
	-0.5, 0.5, 0.5, 1.0, 1.0, 1.0, 0, 0, 0, 0, 1, 1, 0, 0, 0, -1, 0,

	-0.5, 0.5, 0.5, 1.0, 1.0, 1.0, 0, 0, -1, 0, 0, 0, 1, 0, 0, 0, 1,
	-0.5, 0.5, -.5, 1.0, 1.0, 1.0, 0, 1, -1, 0, 0, 0, 1, 0, 0, 0, 1,

	-0.5, 0.5, -.5, 1.0, 1.0, 1.0, 0, 1, 0, 0, -1, 1, 0, 0, 0, 1, 0,
	0.5, 0.5, -0.5, 1.0, 1.0, 1.0, 1, 1, 0, 0, -1, 1, 0, 0, 0, 1, 0,

	-0.5, 0.5, -.5, 1.0, 1.0, 1.0, 1, 1, 0, 1, 0, 1, 0, 0, 0, 0, 1,
	-0.5, 0.5, 0.5, 1.0, 1.0, 1.0, 1, 0, 0, 1, 0, 1, 0, 0, 0, 0, 1,

	0.5, -0.5, 0.5, 1.0, 1.0, 1.0, 1, 1, 0, 0, 1, 1, 0, 0, 0, -1, 0,
	-0.5, -0.5, 0.5, 1.0, 1.0, 1.0, 0, 1, 0, 0, 1, 1, 0, 0, 0, -1, 0,

	-0.5, -0.5, 0.5, 1.0, 1.0, 1.0, 1, 0, -1, 0, 0, 0, 1, 0, 0, 0, 1,
	-0.5, -0.5, -.5, 1.0, 1.0, 1.0, 1, 1, -1, 0, 0, 0, 1, 0, 0, 0, 1,

	-0.5, -0.5, -.5, 1.0, 1.0, 1.0, 0, 0, 0, 0, -1, 1, 0, 0, 0, 1, 0,
	0.5, -0.5, -0.5, 1.0, 1.0, 1.0, 1, 0, 0, 0, -1, 1, 0, 0, 0, 1, 0,

	0.5, -0.5, -0.5, 1.0, 1.0, 1.0, 0, 1, 1, 0, 0, 0, -1, 0, 0, 0, 1,
	0.5, -0.5, 0.5, 1.0, 1.0, 1.0, 0, 0, 1, 0, 0, 0, -1, 0, 0, 0, 1,

	0.5, 0.5, -0.5, 1.0, 1.0, 1.0, 0, 1, 0, 1, 0, 1, 0, 0, 0, 0, 1,
	0.5, 0.5, 0.5, 1.0, 1.0, 1.0, 0, 0, 0, 1, 0, 1, 0, 0, 0, 0, 1,
}

var cubeIndices = []uint32{
	// down
	0, 1, 2,
	0, 2, 3,
	// back
	14, 6, 7,
	14, 7, 15,
	// right
	20, 4, 5,
	20, 5, 21,
	// left
	16, 8, 9,
	16, 9, 17,
	// front
	18, 10, 11,
	18, 11, 19,
	// up
	22, 12, 13,
	22, 13, 23,
}

// CubePrimitive is a unit cube centered at the origin.
func CubePrimitive() *meshbuffer {
	return newRawMeshbuffer(LayoutCube, cubeVertices, cubeIndices)
}

func SpherePrimitive(radius float64, widthSegments, heightSegments int) *meshbuffer {
	mb := &meshbuffer{}

	if widthSegments < 3 {
		widthSegments = 3
	}
	if heightSegments < 2 {
		heightSegments = 2
	}

	phiStart, phiLength := 0.0, math.Pi*2
	thetaStart, thetaLength := 0.0, math.Pi

	var vertices [][]mgl32.Vec3
	var uvs [][]mgl32.Vec2

	for y := 0; y <= heightSegments; y++ {
		var verticesRow []mgl32.Vec3
		var uvsRow []mgl32.Vec2

		for x := 0; x <= widthSegments; x++ {
			u := float64(x) / float64(widthSegments)
			v := float64(y) / float64(heightSegments)

			vertex := mgl32.Vec3{
				float32(-radius * math.Cos(phiStart+u*phiLength) * math.Sin(thetaStart+v*thetaLength)),
				float32(radius * math.Cos(thetaStart+v*thetaLength)),
				float32(radius * math.Sin(phiStart+u*phiLength) * math.Sin(thetaStart+v*thetaLength)),
			}

			verticesRow = append(verticesRow, vertex)
			uvsRow = append(uvsRow, mgl32.Vec2{float32(u), float32(1 - v)})
		}

		vertices = append(vertices, verticesRow)
		uvs = append(uvs, uvsRow)
	}

	vertex := func(x, y int) Vertex {
		p := vertices[y][x]
		return Vertex{
			position: p,
			normal:   p.Normalize(),
			uv:       uvs[y][x],
		}
	}

	for y := 0; y < heightSegments; y++ {
		for x := 0; x < widthSegments; x++ {
			v1 := vertex(x+1, y)
			v2 := vertex(x, y)
			v3 := vertex(x, y+1)
			v4 := vertex(x+1, y+1)

			switch {
			case y == 0:
				// north pole cap
				mb.AddFace(v1, v3, v4)
			case y == heightSegments-1:
				// south pole cap
				mb.AddFace(v1, v2, v3)
			default:
				mb.AddFace(v1, v2, v4)
				mb.AddFace(v2, v3, v4)
			}
		}
	}

	mb.MergeVertices()
	mb.ComputeTangents()
	mb.ComputeBoundary()
	return mb
}
