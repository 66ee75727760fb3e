package game

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

func TestFrustum(t *testing.T) {
	p := mgl32.Perspective(mgl32.DegToRad(90), 1, 1, 100)
	f := Mat4ToFrustum(p.Mul4(mgl32.Ident4()))

	points := []struct {
		p    mgl32.Vec3
		want bool
	}{
		{mgl32.Vec3{0, 0, -10}, true},
		{mgl32.Vec3{5, -5, -10}, true},
		{mgl32.Vec3{0, 0, 10}, false},
		{mgl32.Vec3{0, 0, -0.5}, false},
		{mgl32.Vec3{0, 0, -200}, false},
		{mgl32.Vec3{20, 0, -10}, false},
	}
	for _, tt := range points {
		if got := f.ContainsPoint(tt.p); got != tt.want {
			t.Errorf("contains %v: %v", tt.p, got)
		}
	}

	if !f.IntersectsSphere(mgl32.Vec3{0, 0, 5}, 10) {
		t.Error("sphere reaching into the frustum culled")
	}
	if f.IntersectsSphere(mgl32.Vec3{0, 0, 20}, 10) {
		t.Error("sphere behind the camera visible")
	}
}

func TestFrustumVisible(t *testing.T) {
	p := mgl32.Perspective(mgl32.DegToRad(90), 1, 1, 100)
	f := Mat4ToFrustum(p)

	b := NewBoundary()
	if !f.visible(b, mgl32.Ident4()) {
		t.Error("empty boundary culled")
	}

	b.AddPoint(mgl32.Vec3{-1, -1, -1})
	b.AddPoint(mgl32.Vec3{1, 1, 1})

	if !f.visible(b, mgl32.Translate3D(0, 0, -50)) {
		t.Error("box in front culled")
	}
	if f.visible(b, mgl32.Translate3D(0, 0, 50)) {
		t.Error("box behind visible")
	}
	// scaled up it reaches the near plane again
	if !f.visible(b, mgl32.Translate3D(0, 0, 50).Mul4(mgl32.Scale3D(40, 40, 40))) {
		t.Error("large box behind culled")
	}
}
