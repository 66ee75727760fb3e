package game

import (
	"time"
)

type input interface {
	IsKeyDown(key Key) bool
	MouseDelta() (dx, dy float64)
	MouseScroll() float64
}

// FlyControlSystem turns the camera with the mouse, zooms with the wheel
// and moves it with WASD, one step per update.
type FlyControlSystem struct {
	im     input
	camera *Camera
}

func NewFlyControlSystem(im input, camera *Camera) *FlyControlSystem {
	return &FlyControlSystem{
		im:     im,
		camera: camera,
	}
}

func (s *FlyControlSystem) Update(delta time.Duration) error {
	if dx, dy := s.im.MouseDelta(); dx != 0 || dy != 0 {
		s.camera.ProcessMouse(float32(dx), float32(dy))
	}
	if scroll := s.im.MouseScroll(); scroll != 0 {
		s.camera.Zoom(float32(scroll))
	}

	s.camera.Move(
		s.im.IsKeyDown(KeyW),
		s.im.IsKeyDown(KeyS),
		s.im.IsKeyDown(KeyA),
		s.im.IsKeyDown(KeyD),
	)
	return nil
}
