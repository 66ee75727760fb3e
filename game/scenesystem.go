package game

import (
	"fmt"
	"log"
	"sort"
	"strings"

	"github.com/go-gl/gl/v3.3-core/gl"
	"github.com/go-gl/mathgl/mgl32"
)

// Scene is one of the demo stages.
type Scene interface {
	// Setup places the camera and adds scene specific systems
	Setup(engine *Engine, camera *Camera)
	// Assets lists what has to be loaded before the first frame
	Assets(ls *assetLoaderSystem) []AssetTask

	ClearColor() mgl32.Vec4
	Light() mgl32.Vec3

	// Render runs on the gl thread
	Render(r *renderSystem) error
}

var sceneLib = map[string]func(cfg Config) Scene{
	"triangle": func(cfg Config) Scene { return &coloredScene{name: "triangle", build: TrianglePrimitive} },
	"quad":     func(cfg Config) Scene { return &coloredScene{name: "quad", build: QuadPrimitive} },
	"cube":     func(cfg Config) Scene { return &cubeScene{cfg: cfg} },
	"terrain":  func(cfg Config) Scene { return &terrainScene{cfg: cfg} },
	"solar":    func(cfg Config) Scene { return newSolarScene(cfg) },
}

func SceneNames() []string {
	names := make([]string, 0, len(sceneLib))
	for n := range sceneLib {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

func NewScene(name string, cfg Config) (Scene, error) {
	f, found := sceneLib[name]
	if !found {
		return nil, fmt.Errorf("unknown scene %q, one of %s", name, strings.Join(SceneNames(), ", "))
	}
	return f(cfg), nil
}

// asset tasks

func shaderTask(ls *assetLoaderSystem, dst **shaderprogram, name string) AssetTask {
	return AssetTask{
		Name: "shader " + name,
		Load: func() (err error) {
			*dst, err = ls.LoadShader(name)
			return err
		},
	}
}

func primitiveTask(ls *assetLoaderSystem, dst **meshbuffer, name string, build func() *meshbuffer) AssetTask {
	return AssetTask{
		Name: "mesh " + name,
		Load: func() (err error) {
			*dst, err = ls.Primitive(name, build)
			return err
		},
	}
}

// textureTask logs failures and leaves the texture unbound
func textureTask(ls *assetLoaderSystem, dst **Texture, name string, opts TextureOptions) AssetTask {
	return AssetTask{
		Name: "texture " + name,
		Load: func() error {
			t, err := ls.LoadTexture(name, opts)
			if err != nil {
				log.Println("error loading texture:", err)
				return nil
			}
			*dst = t
			return nil
		},
	}
}

// triangle / quad

type coloredScene struct {
	name    string
	build   func() *meshbuffer
	program *shaderprogram
	mesh    *meshbuffer
}

func (s *coloredScene) Setup(engine *Engine, camera *Camera) {}

func (s *coloredScene) Assets(ls *assetLoaderSystem) []AssetTask {
	return []AssetTask{
		shaderTask(ls, &s.program, "simple"),
		primitiveTask(ls, &s.mesh, s.name, s.build),
	}
}

func (s *coloredScene) ClearColor() mgl32.Vec4 { return mgl32.Vec4{0.5, 0.2, 0.9, 1} }
func (s *coloredScene) Light() mgl32.Vec3      { return mgl32.Vec3{} }

func (s *coloredScene) Render(r *renderSystem) error {
	r.renderQuad(s.program, s.mesh)
	return nil
}

// cube

type cubeScene struct {
	cfg Config

	program      *shaderprogram
	mesh         *meshbuffer
	main, normal *Texture
}

func (s *cubeScene) Setup(engine *Engine, camera *Camera) {
	camera.Position = s.cfg.Cube.Position
	camera.Speed = s.cfg.Cube.Speed
	camera.LookAt(mgl32.Vec3{})
}

func (s *cubeScene) Assets(ls *assetLoaderSystem) []AssetTask {
	return []AssetTask{
		shaderTask(ls, &s.program, "cube"),
		primitiveTask(ls, &s.mesh, "cube", CubePrimitive),
		textureTask(ls, &s.main, s.cfg.Cube.Texture, TextureOptions{}),
		textureTask(ls, &s.normal, s.cfg.Cube.NormalMap, TextureOptions{}),
	}
}

func (s *cubeScene) ClearColor() mgl32.Vec4 { return mgl32.Vec4{0, 0, 0, 1} }
func (s *cubeScene) Light() mgl32.Vec3      { return s.cfg.Light }

func (s *cubeScene) Render(r *renderSystem) error {
	angle := mgl32.DegToRad(s.cfg.Cube.Spin * r.time)
	world := mgl32.HomogRotate3D(angle, mgl32.Vec3{1, 1, 0}.Normalize())

	r.renderCube(s.program, s.mesh, world, s.main, s.normal)
	return nil
}

// terrain

type placedModel struct {
	model *Model
	cfg   ModelConfig
}

func (m placedModel) world(t float32) mgl32.Mat4 {
	rot := m.cfg.Rotation
	if m.cfg.Spin {
		rot[1] += t
	}
	return ModelTransform(m.cfg.Position, rot, m.cfg.Scale)
}

type terrainScene struct {
	cfg Config

	sky, terrain, model *shaderprogram
	cube, mesh          *meshbuffer
	textures            terrainTextures
	models              []placedModel
}

func (s *terrainScene) Setup(engine *Engine, camera *Camera) {}

func (s *terrainScene) Assets(ls *assetLoaderSystem) []AssetTask {
	t := s.cfg.Terrain

	tasks := []AssetTask{
		shaderTask(ls, &s.sky, "sky"),
		shaderTask(ls, &s.terrain, "terrain"),
		primitiveTask(ls, &s.cube, "cube", CubePrimitive),
		{
			Name: "terrain " + t.Heightmap,
			Load: func() (err error) {
				s.mesh, s.textures[0], err = ls.LoadTerrain(t)
				return err
			},
		},
		textureTask(ls, &s.textures[1], t.NormalMap, TextureOptions{}),
		textureTask(ls, &s.textures[2], t.Dirt, TextureOptions{}),
		textureTask(ls, &s.textures[3], t.Sand, TextureOptions{}),
		textureTask(ls, &s.textures[4], t.Rock, TextureOptions{}),
		textureTask(ls, &s.textures[5], t.Grass, TextureOptions{Components: 4}),
		textureTask(ls, &s.textures[6], t.Snow, TextureOptions{}),
	}

	if len(s.cfg.Models) > 0 {
		tasks = append(tasks, shaderTask(ls, &s.model, "model"))
	}
	for _, mc := range s.cfg.Models {
		mc := mc
		tasks = append(tasks, AssetTask{
			Name: "model " + mc.File,
			Load: func() error {
				m, err := ls.LoadModel(mc.File)
				if err != nil {
					log.Println("error loading model:", err)
					return nil
				}
				s.models = append(s.models, placedModel{m, mc})
				return nil
			},
		})
	}

	return tasks
}

func (s *terrainScene) ClearColor() mgl32.Vec4 { return mgl32.Vec4{0, 0, 0, 1} }
func (s *terrainScene) Light() mgl32.Vec3      { return s.cfg.Light }

func (s *terrainScene) Render(r *renderSystem) error {
	r.renderSkyBox(s.sky, s.cube)
	r.renderTerrain(s.terrain, s.mesh, s.textures)

	for _, m := range s.models {
		r.renderModel(s.model, m.model, m.world(r.time))
	}
	return nil
}

// solar system with the earth surface

type solarScene struct {
	cfg     Config
	state   *GameStateSystem
	surface *terrainScene

	star, planet, moon, mars *shaderprogram
	cube, sphere             *meshbuffer

	stars                     *Texture
	earth                     planetTextures
	luna, red, phobos, deimos *Texture
}

func newSolarScene(cfg Config) *solarScene {
	return &solarScene{
		cfg:     cfg,
		surface: &terrainScene{cfg: cfg},
	}
}

func (s *solarScene) Setup(engine *Engine, camera *Camera) {
	sc := s.cfg.Solar

	camera.Position = sc.Start
	camera.Speed = sc.Speed
	camera.SetClipping(sc.Near, sc.Far)
	camera.LookAt(Earth.Position)

	s.state = NewGameStateSystem(camera, sc)
	s.state.OnModeChange().Subscribe(s.modeCamera(camera), PriorityFirst)
	engine.AddSystem("gamestate", s.state, PriorityBeforeRender)
}

// modeCamera switches speed and clipping between the surface and space settings
func (s *solarScene) modeCamera(camera *Camera) Listener {
	return func(msg interface{}) {
		m := msg.(MessageModeChange)

		switch m.To {
		case ModeEarth:
			camera.Speed = s.cfg.Camera.Speed
			camera.SetClipping(s.cfg.Camera.Near, s.cfg.Camera.Far)
		default:
			camera.Speed = s.cfg.Solar.Speed
			camera.SetClipping(s.cfg.Solar.Near, s.cfg.Solar.Far)
		}
		log.Printf("camera speed %v, clipping %v..%v in %v", camera.Speed, camera.near, camera.far, m.To)
	}
}

func (s *solarScene) Assets(ls *assetLoaderSystem) []AssetTask {
	sc := s.cfg.Solar

	tasks := []AssetTask{
		shaderTask(ls, &s.star, "star"),
		shaderTask(ls, &s.planet, "planet"),
		shaderTask(ls, &s.moon, "moon"),
		shaderTask(ls, &s.mars, "mars"),
		primitiveTask(ls, &s.cube, "cube", CubePrimitive),
		{
			Name: "sphere",
			Load: func() error { return s.loadSphere(ls) },
		},
		{
			Name: "cube map",
			Load: func() error {
				t, err := ls.LoadCubeMap(sc.CubeMap)
				if err != nil {
					log.Println("error loading texture:", err)
					return nil
				}
				s.stars = t
				return nil
			},
		},
		textureTask(ls, &s.earth.Day, sc.Day, TextureOptions{}),
		textureTask(ls, &s.earth.Night, sc.Night, TextureOptions{}),
		textureTask(ls, &s.earth.Clouds, sc.Clouds, TextureOptions{WrapS: gl.REPEAT, WrapT: gl.CLAMP_TO_EDGE}),
		textureTask(ls, &s.luna, sc.Moon, TextureOptions{}),
		textureTask(ls, &s.red, sc.Mars, TextureOptions{}),
		textureTask(ls, &s.phobos, sc.Phobos, TextureOptions{}),
		textureTask(ls, &s.deimos, sc.Deimos, TextureOptions{}),
	}

	return append(tasks, s.surface.Assets(ls)...)
}

// loadSphere prefers the configured obj and falls back to the uv sphere primitive
func (s *solarScene) loadSphere(ls *assetLoaderSystem) error {
	if name := s.cfg.Solar.Sphere; name != "" {
		m, err := ls.LoadModel(name)
		if err == nil {
			s.sphere = m.meshes[0].mesh
			return nil
		}
		log.Printf("sphere %s not usable, using primitive: %v", name, err)
	}

	var err error
	s.sphere, err = ls.Primitive("sphere", func() *meshbuffer {
		return SpherePrimitive(1, 64, 32)
	})
	return err
}

func (s *solarScene) ClearColor() mgl32.Vec4 { return mgl32.Vec4{0, 0, 0, 1} }

func (s *solarScene) Light() mgl32.Vec3 {
	if s.state != nil && s.state.Mode() == ModeEarth {
		return s.cfg.Light
	}
	return s.cfg.Solar.Sun
}

func (s *solarScene) Render(r *renderSystem) error {
	mode := ModeSpace
	if s.state != nil {
		mode = s.state.Mode()
	}

	switch mode {
	case ModeEarth:
		return s.surface.Render(r)
	default:
		r.renderStarBox(s.star, s.cube, s.stars)
		r.renderPlanet(s.planet, s.moon, s.sphere, s.earth, s.luna)
		r.renderMars(s.mars, s.moon, s.sphere, s.red, s.phobos, s.deimos)
	}
	return nil
}
