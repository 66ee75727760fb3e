package game

import (
	"strings"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

func TestNewScene(t *testing.T) {
	cfg := DefaultConfig()

	for _, name := range SceneNames() {
		s, err := NewScene(name, cfg)
		if err != nil || s == nil {
			t.Errorf("scene %s: %v", name, err)
		}
	}

	_, err := NewScene("mars", cfg)
	if err == nil || !strings.Contains(err.Error(), "solar") {
		t.Errorf("unknown scene error %v", err)
	}
}

func TestCubeSceneSetup(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Cube.Position = mgl32.Vec3{0, 0, -6}
	cfg.Cube.Speed = 0.2
	cam := NewCamera(cfg.Camera, 1)

	s, err := NewScene("cube", cfg)
	if err != nil {
		t.Fatal(err)
	}
	s.Setup(NewEngine(), cam)

	if cam.Position != cfg.Cube.Position || cam.Speed != cfg.Cube.Speed {
		t.Errorf("camera at %v speed %v", cam.Position, cam.Speed)
	}
	if !vecEqual(cam.Forward(), mgl32.Vec3{0, 0, 1}) {
		t.Errorf("camera looks along %v instead of the cube", cam.Forward())
	}
}

func TestSolarSceneSetup(t *testing.T) {
	cfg := DefaultConfig()
	cam := NewCamera(cfg.Camera, 1)
	engine := NewEngine()

	s := newSolarScene(cfg)
	if s.Light() != cfg.Solar.Sun {
		t.Errorf("light before setup %v", s.Light())
	}

	s.Setup(engine, cam)

	if cam.Position != cfg.Solar.Start || cam.Speed != cfg.Solar.Speed {
		t.Errorf("camera at %v speed %v", cam.Position, cam.Speed)
	}
	if !vecNear(cam.Forward(), Earth.Position.Sub(cfg.Solar.Start).Normalize(), 1e-5) {
		t.Errorf("camera looks along %v", cam.Forward())
	}
	if len(engine.systems) != 1 {
		t.Fatalf("%v systems added", len(engine.systems))
	}

	// landing switches the light
	cam.Position = mgl32.Vec3{10, 10, 10}
	if err := engine.Update(0); err != nil {
		t.Fatal(err)
	}
	if s.state.Mode() != ModeEarth || s.Light() != cfg.Light {
		t.Errorf("mode %v light %v", s.state.Mode(), s.Light())
	}
	// the surface uses the camera settings
	if cam.Speed != cfg.Camera.Speed || cam.near != cfg.Camera.Near || cam.far != cfg.Camera.Far {
		t.Errorf("surface camera speed %v clipping %v..%v", cam.Speed, cam.near, cam.far)
	}

	// leaving again restores the space settings
	cam.Position = mgl32.Vec3{0, cfg.Solar.Escape + 1, 0}
	if err := engine.Update(0); err != nil {
		t.Fatal(err)
	}
	if s.state.Mode() != ModeSpace {
		t.Fatalf("mode %v after escaping", s.state.Mode())
	}
	if cam.Speed != cfg.Solar.Speed || cam.near != cfg.Solar.Near || cam.far != cfg.Solar.Far {
		t.Errorf("space camera speed %v clipping %v..%v", cam.Speed, cam.near, cam.far)
	}
}

func TestPlacedModel(t *testing.T) {
	m := placedModel{cfg: ModelConfig{
		Position: mgl32.Vec3{1, 2, 3},
		Scale:    mgl32.Vec3{2, 2, 2},
		Spin:     true,
	}}

	w := m.world(0)
	if p := mgl32.TransformCoordinate(mgl32.Vec3{1, 0, 0}, w); !vecNear(p, mgl32.Vec3{3, 2, 3}, 1e-5) {
		t.Errorf("unrotated point at %v", p)
	}

	// spinning turns around y by t radians
	w = m.world(mgl32.DegToRad(90))
	if p := mgl32.TransformCoordinate(mgl32.Vec3{1, 0, 0}, w); !vecNear(p, mgl32.Vec3{1, 2, 1}, 1e-5) {
		t.Errorf("spun point at %v", p)
	}
}
