package game

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/go-gl/mathgl/mgl32"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Window  WindowConfig  `yaml:"window"`
	Assets  string        `yaml:"assets"`
	Camera  CameraConfig  `yaml:"camera"`
	Light   mgl32.Vec3    `yaml:"lightDirection"`
	Cube    CubeConfig    `yaml:"cube"`
	Terrain TerrainConfig `yaml:"terrain"`
	Solar   SolarConfig   `yaml:"solar"`
	Models  []ModelConfig `yaml:"models,omitempty"`
}

type WindowConfig struct {
	Width   int    `yaml:"width"`
	Height  int    `yaml:"height"`
	Title   string `yaml:"title"`
	VSync   bool   `yaml:"vsync"`
	Samples int    `yaml:"samples,omitempty"`
	FPS     int    `yaml:"fps,omitempty"`
}

type CameraConfig struct {
	Position    mgl32.Vec3 `yaml:"position"`
	Speed       float32    `yaml:"speed"`
	Sensitivity float32    `yaml:"sensitivity"`
	Fov         float32    `yaml:"fov"`
	Near        float32    `yaml:"near"`
	Far         float32    `yaml:"far"`
}

type CubeConfig struct {
	Texture   string     `yaml:"texture"`
	NormalMap string     `yaml:"normalMap"`
	Spin      float32    `yaml:"spin"` // degrees per second
	Position  mgl32.Vec3 `yaml:"position"`
	Speed     float32    `yaml:"speed"`
}

type TerrainConfig struct {
	Heightmap     string  `yaml:"heightmap"`
	NormalMap     string  `yaml:"normalMap"`
	Components    int     `yaml:"components"`
	HeightScale   float32 `yaml:"heightScale"`
	XZScale       float32 `yaml:"xzScale"`
	MaxResolution int     `yaml:"maxResolution,omitempty"`
	FlatNormals   bool    `yaml:"flatNormals,omitempty"`

	Dirt  string `yaml:"dirt"`
	Sand  string `yaml:"sand"`
	Rock  string `yaml:"rock"`
	Grass string `yaml:"grass"`
	Snow  string `yaml:"snow"`
}

type SolarConfig struct {
	Sphere   string     `yaml:"sphere,omitempty"` // obj, uv sphere primitive if empty
	CubeMap  [6]string  `yaml:"cubeMap"`          // right, left, top, bottom, front, back
	Day      string     `yaml:"day"`
	Night    string     `yaml:"night"`
	Clouds   string     `yaml:"clouds"`
	Moon     string     `yaml:"moon"`
	Mars     string     `yaml:"mars"`
	Phobos   string     `yaml:"phobos"`
	Deimos   string     `yaml:"deimos"`
	Sun      mgl32.Vec3 `yaml:"sunDirection"`
	Start    mgl32.Vec3 `yaml:"start"`
	Landing  mgl32.Vec3 `yaml:"landing"`
	Speed    float32    `yaml:"speed"`
	Near     float32    `yaml:"near"`
	Far      float32    `yaml:"far"`
	Approach float32    `yaml:"approachDistance"`
	Escape   float32    `yaml:"escapeHeight"`
}

type ModelConfig struct {
	File     string     `yaml:"file"`
	Position mgl32.Vec3 `yaml:"position"`
	Rotation mgl32.Vec3 `yaml:"rotation"` // euler radians
	Scale    mgl32.Vec3 `yaml:"scale"`
	Spin     bool       `yaml:"spin,omitempty"`
}

func DefaultConfig() Config {
	c := Config{}
	c.normalize()
	return c
}

// LoadConfig reads a yaml config, a missing file results in the defaults.
func LoadConfig(path string) (Config, error) {
	var c Config

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return DefaultConfig(), nil
	}
	if err != nil {
		return Config{}, fmt.Errorf("read config %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, &c); err != nil {
		return Config{}, fmt.Errorf("parse config %s: %w", path, err)
	}
	c.normalize()
	return c, nil
}

func (c *Config) normalize() {
	if c.Window.Width <= 0 {
		c.Window.Width = 1280
	}
	if c.Window.Height <= 0 {
		c.Window.Height = 720
	}
	if c.Window.Title == "" {
		c.Window.Title = "OpenGL_2233"
	}
	if c.Window.FPS <= 0 {
		c.Window.FPS = 70
	}
	if c.Assets == "" {
		c.Assets = "assets"
	}
	if c.Light == (mgl32.Vec3{}) {
		c.Light = mgl32.Vec3{-0.5, -0.5, -0.5}
	}
	c.Light = c.Light.Normalize()

	cam := &c.Camera
	if cam.Position == (mgl32.Vec3{}) {
		cam.Position = mgl32.Vec3{100, 125.5, 100}
	}
	if cam.Speed <= 0 {
		cam.Speed = 1
	}
	if cam.Sensitivity <= 0 {
		cam.Sensitivity = 1
	}
	if cam.Fov <= 0 {
		cam.Fov = 45
	}
	if cam.Near <= 0 {
		cam.Near = 0.1
	}
	if cam.Far <= cam.Near {
		cam.Far = 5000
	}

	if c.Cube.Texture == "" {
		c.Cube.Texture = "textures/container.png"
	}
	if c.Cube.NormalMap == "" {
		c.Cube.NormalMap = "textures/container_normalMap.png"
	}
	if c.Cube.Spin == 0 {
		c.Cube.Spin = 20
	}
	// the cube sits at the origin
	if c.Cube.Position == (mgl32.Vec3{}) {
		c.Cube.Position = mgl32.Vec3{0, 0, -3}
	}
	if c.Cube.Speed <= 0 {
		c.Cube.Speed = 0.05
	}

	t := &c.Terrain
	if t.Heightmap == "" {
		t.Heightmap = "textures/heightmap.png"
	}
	if t.NormalMap == "" {
		t.NormalMap = "textures/heightnormal.png"
	}
	if t.Components <= 0 || t.Components > 4 {
		t.Components = 4
	}
	if t.HeightScale == 0 {
		t.HeightScale = 250
	}
	if t.XZScale == 0 {
		t.XZScale = 5
	}
	if t.Dirt == "" {
		t.Dirt = "textures/dirt.jpg"
	}
	if t.Sand == "" {
		t.Sand = "textures/sand.jpg"
	}
	if t.Rock == "" {
		t.Rock = "textures/rock.jpg"
	}
	if t.Grass == "" {
		t.Grass = "textures/grass.png"
	}
	if t.Snow == "" {
		t.Snow = "textures/snow.jpg"
	}

	s := &c.Solar
	faces := [6]string{"right", "left", "top", "bottom", "front", "back"}
	for i, f := range s.CubeMap {
		if f == "" {
			s.CubeMap[i] = "textures/space-cubemap/" + faces[i] + ".png"
		}
	}
	def := func(v *string, name string) {
		if *v == "" {
			*v = name
		}
	}
	def(&s.Day, "textures/day.jpg")
	def(&s.Night, "textures/night.jpg")
	def(&s.Clouds, "textures/clouds.jpg")
	def(&s.Moon, "textures/2k_moon.jpg")
	def(&s.Mars, "textures/mars.jpg")
	def(&s.Phobos, "textures/phobos.jpg")
	def(&s.Deimos, "textures/deimos.jpg")
	if s.Sun == (mgl32.Vec3{}) {
		s.Sun = mgl32.Vec3{1, 0, 0}
	}
	s.Sun = s.Sun.Normalize()
	if s.Start == (mgl32.Vec3{}) {
		s.Start = mgl32.Vec3{20, 0, -150}
	}
	if s.Landing == (mgl32.Vec3{}) {
		s.Landing = mgl32.Vec3{100, 300, 100}
	}
	if s.Speed <= 0 {
		s.Speed = 10
	}
	if s.Near <= 0 {
		s.Near = 1
	}
	if s.Far <= s.Near {
		s.Far = 100000
	}
	if s.Approach <= 0 {
		s.Approach = 120
	}
	if s.Escape <= 0 {
		s.Escape = 1000
	}

	for i := range c.Models {
		if c.Models[i].Scale == (mgl32.Vec3{}) {
			c.Models[i].Scale = mgl32.Vec3{1, 1, 1}
		}
	}
}
