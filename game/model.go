package game

import (
	"github.com/go-gl/gl/v3.3-core/gl"
	"github.com/go-gl/mathgl/mgl32"
)

type modelMesh struct {
	mesh     *meshbuffer
	textures [slotCount]*Texture
}

// Model is a set of meshes, each with its own material textures.
type Model struct {
	meshes   []modelMesh
	Bounding Boundary
}

// Draw binds the material textures to units 0..4 before each mesh, the
// program in use samples them as slotSamplers.
func (m *Model) Draw() {
	for _, mm := range m.meshes {
		for slot, t := range mm.textures {
			t.Bind(slot)
		}
		mm.mesh.Draw()
	}
	gl.ActiveTexture(gl.TEXTURE0)
}

// ModelTransform is translate * rotate(euler) * scale.
func ModelTransform(pos, rot, scale mgl32.Vec3) mgl32.Mat4 {
	return mgl32.Translate3D(pos[0], pos[1], pos[2]).
		Mul4(eulerQuat(rot).Mat4()).
		Mul4(mgl32.Scale3D(scale[0], scale[1], scale[2]))
}

// eulerQuat rotates around x, then y, then z.
func eulerQuat(rot mgl32.Vec3) mgl32.Quat {
	qx := mgl32.QuatRotate(rot[0], mgl32.Vec3{1, 0, 0})
	qy := mgl32.QuatRotate(rot[1], mgl32.Vec3{0, 1, 0})
	qz := mgl32.QuatRotate(rot[2], mgl32.Vec3{0, 0, 1})
	return qz.Mul(qy).Mul(qx)
}
