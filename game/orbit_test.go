package game

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

func center(m mgl32.Mat4) mgl32.Vec3 {
	return mgl32.TransformCoordinate(mgl32.Vec3{}, m)
}

func TestEarthWorld(t *testing.T) {
	w := Earth.World(0)

	if c := center(w); !vecEqual(c, mgl32.Vec3{}) {
		t.Errorf("earth at %v", c)
	}

	// north pole tilted by 23 degrees around x
	pole := mgl32.TransformCoordinate(mgl32.Vec3{0, 1, 0}, w)
	want := mgl32.Vec3{0, 100 * cosDeg(23), 100 * sinDeg(23)}
	if !vecNear(pole, want, 1e-3) {
		t.Errorf("pole at %v instead of %v", pole, want)
	}

	// the pole does not move while spinning
	if p := mgl32.TransformCoordinate(mgl32.Vec3{0, 1, 0}, Earth.World(90)); !vecNear(p, want, 1e-3) {
		t.Errorf("pole moved to %v after 90 seconds", p)
	}
}

func TestMoonWorld(t *testing.T) {
	parent := Earth.Parent()

	c := center(Luna.World(parent, 0))
	want := mgl32.Vec3{0, -1000 * sinDeg(5), 1000 * cosDeg(5)}
	if !vecNear(c, want, 1e-2) {
		t.Errorf("moon at %v instead of %v", c, want)
	}

	// a quarter orbit
	c = center(Luna.World(parent, 90/lunarSpeed))
	if !vecNear(c, mgl32.Vec3{1000, 0, 0}, 1e-2) {
		t.Errorf("moon at %v after a quarter orbit", c)
	}

	// scale 25
	edge := mgl32.TransformCoordinate(mgl32.Vec3{1, 0, 0}, Luna.World(parent, 0))
	if d := edge.Sub(center(Luna.World(parent, 0))).Len(); !mgl32.FloatEqualThreshold(d, 25, 1e-3) {
		t.Errorf("moon radius %v instead of 25", d)
	}
}

func TestMarsSystem(t *testing.T) {
	if c := center(Mars.World(10)); !vecEqual(c, mgl32.Vec3{5000, 0, 0}) {
		t.Errorf("mars at %v", c)
	}

	parent := Mars.Parent()

	if c := center(Phobos.World(parent, 0)); !vecNear(c, mgl32.Vec3{6000, 0, 0}, 1e-2) {
		t.Errorf("phobos at %v", c)
	}
	if c := center(Deimos.World(parent, 0)); !vecNear(c, mgl32.Vec3{5000, 0, 1800}, 1e-2) {
		t.Errorf("deimos at %v", c)
	}

	// deimos orbits twice as fast, a quarter orbit of phobos is half an orbit of deimos
	quarter := float32(90 / lunarSpeed)
	if c := center(Deimos.World(parent, quarter)); !vecNear(c, mgl32.Vec3{5000, 0, -1800}, 1e-1) {
		t.Errorf("deimos at %v after half an orbit", c)
	}
	if c := center(Phobos.World(parent, quarter)); !vecNear(c, mgl32.Vec3{5000, 0, -1000}, 1e-1) {
		t.Errorf("phobos at %v after a quarter orbit", c)
	}
}

func sinDeg(deg float32) float32 {
	return float32(math.Sin(float64(mgl32.DegToRad(deg))))
}

func cosDeg(deg float32) float32 {
	return float32(math.Cos(float64(mgl32.DegToRad(deg))))
}
