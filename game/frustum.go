package game

import (
	"github.com/go-gl/mathgl/mgl32"
)

type Plane struct {
	Normal   mgl32.Vec3
	Distance float32
}

func (p Plane) Normalize() Plane {
	l := p.Normal.Len()
	if l == 0 {
		return p
	}
	return Plane{p.Normal.Mul(1 / l), p.Distance / l}
}

// Frustum planes point inwards: left, right, bottom, top, near, far
type Frustum [6]Plane

// Mat4ToFrustum extracts the planes of a projection * view matrix.
func Mat4ToFrustum(m mgl32.Mat4) Frustum {
	r := func(i int) mgl32.Vec4 { return m.Row(i) }

	planes := [6]mgl32.Vec4{
		r(3).Add(r(0)),
		r(3).Sub(r(0)),
		r(3).Add(r(1)),
		r(3).Sub(r(1)),
		r(3).Add(r(2)),
		r(3).Sub(r(2)),
	}

	var f Frustum
	for i, p := range planes {
		f[i] = Plane{p.Vec3(), p[3]}.Normalize()
	}
	return f
}

func (f Frustum) ContainsPoint(point mgl32.Vec3) bool {
	for _, p := range f {
		if point.Dot(p.Normal)+p.Distance <= 0 {
			return false
		}
	}
	return true
}

func (f Frustum) IntersectsSphere(center mgl32.Vec3, radius float32) bool {
	for _, p := range f {
		if center.Dot(p.Normal)+p.Distance <= -radius {
			return false
		}
	}
	return true
}

// visible transforms the bounding sphere of b into world space and tests it.
func (f Frustum) visible(b Boundary, world mgl32.Mat4) bool {
	if b.Empty() {
		return true
	}
	c, r := b.Sphere()
	c = mgl32.TransformCoordinate(c, world)
	r *= mgl32.ExtractMaxScale(world)
	return f.IntersectsSphere(c, r)
}
