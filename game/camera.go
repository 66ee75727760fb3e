package game

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// Camera is a free flying first person camera, yaw and pitch in degrees.
type Camera struct {
	Position    mgl32.Vec3
	Yaw, Pitch  float32
	Speed       float32
	Sensitivity float32

	fov, near, far float32
	aspect         float32
}

func NewCamera(cfg CameraConfig, aspect float32) *Camera {
	return &Camera{
		Position:    cfg.Position,
		Speed:       cfg.Speed,
		Sensitivity: cfg.Sensitivity,

		fov:    cfg.Fov,
		near:   cfg.Near,
		far:    cfg.Far,
		aspect: aspect,
	}
}

// Orientation rotates around x by pitch first, then around y by yaw.
func (c *Camera) Orientation() mgl32.Quat {
	qy := mgl32.QuatRotate(mgl32.DegToRad(c.Yaw), mgl32.Vec3{0, 1, 0})
	qx := mgl32.QuatRotate(mgl32.DegToRad(c.Pitch), mgl32.Vec3{1, 0, 0})
	return qy.Mul(qx)
}

func (c *Camera) Forward() mgl32.Vec3 {
	return c.Orientation().Rotate(mgl32.Vec3{0, 0, 1})
}

func (c *Camera) Up() mgl32.Vec3 {
	return c.Orientation().Rotate(mgl32.Vec3{0, 1, 0})
}

// ProcessMouse turns the camera by a cursor delta in screen coordinates.
func (c *Camera) ProcessMouse(dx, dy float32) {
	c.Yaw -= dx * c.Sensitivity
	c.Pitch = mgl32.Clamp(c.Pitch+dy*c.Sensitivity, -90, 90)

	if c.Yaw > 180 {
		c.Yaw -= 360
	}
	if c.Yaw < -180 {
		c.Yaw += 360
	}
}

// Move by one step of Speed along the camera axes.
func (c *Camera) Move(forward, back, left, right bool) {
	q := c.Orientation()
	s := c.Speed

	if forward {
		c.Position = c.Position.Add(q.Rotate(mgl32.Vec3{0, 0, s}))
	}
	if left {
		c.Position = c.Position.Add(q.Rotate(mgl32.Vec3{s, 0, 0}))
	}
	if back {
		c.Position = c.Position.Add(q.Rotate(mgl32.Vec3{0, 0, -s}))
	}
	if right {
		c.Position = c.Position.Add(q.Rotate(mgl32.Vec3{-s, 0, 0}))
	}
}

// LookAt sets yaw and pitch so that the camera faces target.
func (c *Camera) LookAt(target mgl32.Vec3) {
	f := target.Sub(c.Position)
	if f.Len() == 0 {
		return
	}
	f = f.Normalize()

	c.Pitch = mgl32.RadToDeg(float32(-math.Asin(float64(mgl32.Clamp(f[1], -1, 1)))))
	c.Yaw = mgl32.RadToDeg(float32(math.Atan2(float64(f[0]), float64(f[2]))))
}

func (c *Camera) View() mgl32.Mat4 {
	return mgl32.LookAtV(c.Position, c.Position.Add(c.Forward()), c.Up())
}

func (c *Camera) Projection() mgl32.Mat4 {
	return mgl32.Perspective(mgl32.DegToRad(c.fov), c.aspect, c.near, c.far)
}

// Zoom narrows the field of view by offset degrees, limited to 1..90
func (c *Camera) Zoom(offset float32) {
	c.fov = mgl32.Clamp(c.fov-offset, 1, 90)
}

func (c *Camera) Fov() float32 {
	return c.fov
}

func (c *Camera) SetAspect(aspect float32) {
	if aspect > 0 {
		c.aspect = aspect
	}
}

func (c *Camera) SetClipping(near, far float32) {
	c.near, c.far = near, far
}
