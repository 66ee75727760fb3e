package game

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

func TestDefaultConfig(t *testing.T) {
	c := DefaultConfig()

	if c.Window.Width != 1280 || c.Window.Height != 720 || c.Window.FPS != 70 {
		t.Errorf("window %+v", c.Window)
	}
	if c.Camera.Position != (mgl32.Vec3{100, 125.5, 100}) || c.Camera.Fov != 45 {
		t.Errorf("camera %+v", c.Camera)
	}
	if c.Camera.Near != 0.1 || c.Camera.Far != 5000 {
		t.Errorf("clipping %v..%v", c.Camera.Near, c.Camera.Far)
	}
	if !vecNear(c.Light, mgl32.Vec3{-1, -1, -1}.Normalize(), 1e-6) {
		t.Errorf("light %v not normalized", c.Light)
	}
	if c.Terrain.HeightScale != 250 || c.Terrain.XZScale != 5 || c.Terrain.Components != 4 {
		t.Errorf("terrain %+v", c.Terrain)
	}

	if c.Cube.Position != (mgl32.Vec3{0, 0, -3}) || c.Cube.Speed != 0.05 || c.Cube.Spin != 20 {
		t.Errorf("cube %+v", c.Cube)
	}

	s := c.Solar
	if s.Start != (mgl32.Vec3{20, 0, -150}) || s.Approach != 120 || s.Escape != 1000 {
		t.Errorf("solar %+v", s)
	}
	if s.CubeMap[0] != "textures/space-cubemap/right.png" || s.CubeMap[5] != "textures/space-cubemap/back.png" {
		t.Errorf("cube map %v", s.CubeMap)
	}
}

func TestLoadConfig(t *testing.T) {
	dir := t.TempDir()

	// missing file
	c, err := LoadConfig(filepath.Join(dir, "missing.yaml"))
	if err != nil {
		t.Fatal(err)
	}
	if c.Window != DefaultConfig().Window {
		t.Errorf("missing file did not result in defaults: %+v", c.Window)
	}

	// partial file
	partial := filepath.Join(dir, "partial.yaml")
	data := `
window:
  width: 640
camera:
  speed: 4
cube:
  speed: 0.5
lightDirection: [0, -2, 0]
models:
  - file: models/box.obj
    position: [1, 2, 3]
`
	if err := os.WriteFile(partial, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}

	c, err = LoadConfig(partial)
	if err != nil {
		t.Fatal(err)
	}
	if c.Window.Width != 640 || c.Window.Height != 720 {
		t.Errorf("window %vx%v", c.Window.Width, c.Window.Height)
	}
	if c.Camera.Speed != 4 || c.Camera.Sensitivity != 1 {
		t.Errorf("camera speed %v sensitivity %v", c.Camera.Speed, c.Camera.Sensitivity)
	}
	if c.Cube.Speed != 0.5 || c.Cube.Position != (mgl32.Vec3{0, 0, -3}) {
		t.Errorf("cube speed %v position %v", c.Cube.Speed, c.Cube.Position)
	}
	if c.Light != (mgl32.Vec3{0, -1, 0}) {
		t.Errorf("light %v", c.Light)
	}
	if len(c.Models) != 1 || c.Models[0].Position != (mgl32.Vec3{1, 2, 3}) || c.Models[0].Scale != (mgl32.Vec3{1, 1, 1}) {
		t.Errorf("models %+v", c.Models)
	}

	// broken file
	broken := filepath.Join(dir, "broken.yaml")
	if err := os.WriteFile(broken, []byte("window: [1, 2"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadConfig(broken); err == nil {
		t.Error("broken yaml accepted")
	}
}

func TestShippedConfig(t *testing.T) {
	c, err := LoadConfig("../assets/config.yaml")
	if err != nil {
		t.Fatal(err)
	}

	if c.Solar.Sphere == "" || len(c.Models) == 0 {
		t.Errorf("sphere %q, %v models", c.Solar.Sphere, len(c.Models))
	}
	if c.Solar.Far != 100000 || c.Solar.Speed != 10 {
		t.Errorf("solar clipping %v speed %v", c.Solar.Far, c.Solar.Speed)
	}
}
