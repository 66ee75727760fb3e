package game

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// axis aligned bounding box
type Boundary struct {
	Min, Max mgl32.Vec3
}

func NewBoundary() Boundary {
	inf := float32(math.Inf(1))
	return Boundary{
		Min: mgl32.Vec3{inf, inf, inf},
		Max: mgl32.Vec3{-inf, -inf, -inf},
	}
}

func (b *Boundary) AddPoint(p mgl32.Vec3) {
	for i := 0; i < 3; i++ {
		b.Min[i] = min(b.Min[i], p[i])
		b.Max[i] = max(b.Max[i], p[i])
	}
}

func (b Boundary) Empty() bool {
	return b.Min[0] > b.Max[0] || b.Min[1] > b.Max[1] || b.Min[2] > b.Max[2]
}

func (b Boundary) Center() mgl32.Vec3 {
	return b.Min.Add(b.Max).Mul(0.5)
}

func (b Boundary) Size() mgl32.Vec3 {
	return b.Max.Sub(b.Min)
}

func (b Boundary) Sphere() (center mgl32.Vec3, radius float32) {
	return b.Center(), b.Size().Len() * 0.5
}
