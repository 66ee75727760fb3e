package game

import (
	"github.com/go-gl/mathgl/mgl32"
)

// Planet spins around its tilted y axis, angles in degrees.
type Planet struct {
	Position mgl32.Vec3
	Scale    float32
	Tilt     float32 // around x
	Spin     float32 // per second
}

// World is translate * scale * tilt * spin at time t in seconds.
func (p Planet) World(t float32) mgl32.Mat4 {
	return mgl32.Translate3D(p.Position[0], p.Position[1], p.Position[2]).
		Mul4(mgl32.Scale3D(p.Scale, p.Scale, p.Scale)).
		Mul4(mgl32.HomogRotate3DX(mgl32.DegToRad(p.Tilt))).
		Mul4(mgl32.HomogRotate3DY(mgl32.DegToRad(p.Spin * t)))
}

// Parent is the unscaled frame moons orbit in.
func (p Planet) Parent() mgl32.Mat4 {
	return mgl32.Translate3D(p.Position[0], p.Position[1], p.Position[2])
}

// Moon circles its parent on a tilted plane.
type Moon struct {
	Tilt   float32 // orbit plane around x
	Speed  float32 // degrees per second
	Offset mgl32.Vec3
	Scale  float32
}

func (m Moon) World(parent mgl32.Mat4, t float32) mgl32.Mat4 {
	return parent.
		Mul4(mgl32.HomogRotate3DX(mgl32.DegToRad(m.Tilt))).
		Mul4(mgl32.HomogRotate3DY(mgl32.DegToRad(m.Speed * t))).
		Mul4(mgl32.Translate3D(m.Offset[0], m.Offset[1], m.Offset[2])).
		Mul4(mgl32.Scale3D(m.Scale, m.Scale, m.Scale))
}

const lunarSpeed = 48 / 60.0

var (
	Earth = Planet{Scale: 100, Tilt: 23, Spin: 1}
	Luna  = Moon{Tilt: 5, Speed: lunarSpeed, Offset: mgl32.Vec3{0, 0, 1000}, Scale: 25}

	Mars   = Planet{Position: mgl32.Vec3{5000, 0, 0}, Scale: 50, Tilt: 115, Spin: 2}
	Phobos = Moon{Speed: lunarSpeed, Offset: mgl32.Vec3{1000, 0, 0}, Scale: 8}
	Deimos = Moon{Speed: 2 * lunarSpeed, Offset: mgl32.Vec3{0, 0, 1800}, Scale: 4}
)
