package game

import (
	"time"

	"github.com/go-gl/gl/v3.3-core/gl"
	"github.com/go-gl/mathgl/mgl32"
)

/*
	clear, render the active scene, swap

	every render function switches its own gl state and sets
	world, view, projection, lightDirection and cameraPosition
*/
type renderSystem struct {
	context *GlContextSystem
	camera  *Camera
	scene   Scene

	light            mgl32.Vec3
	view, projection mgl32.Mat4
	frustum          Frustum
	time             float32

	currentProgram *shaderprogram
}

func NewRenderSystem(context *GlContextSystem, camera *Camera, scene Scene) *renderSystem {
	return &renderSystem{
		context: context,
		camera:  camera,
		scene:   scene,
	}
}

func (s *renderSystem) Update(delta time.Duration) error {
	s.time = float32(s.context.Time())
	s.light = s.scene.Light()

	s.view = s.camera.View()
	s.projection = s.camera.Projection()
	s.frustum = Mat4ToFrustum(s.projection.Mul4(s.view))

	var err error
	s.context.MainThread(func() {
		c := s.scene.ClearColor()
		gl.ClearColor(c[0], c[1], c[2], c[3])
		gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)

		s.currentProgram = nil
		err = s.scene.Render(s)
	})
	if err != nil {
		return err
	}

	// swap buffers
	s.context.Update()
	return nil
}

// use binds the program and updates the uniforms shared by all programs
func (s *renderSystem) use(p *shaderprogram, world mgl32.Mat4) {
	if p != s.currentProgram {
		s.currentProgram = p
		p.Use()
	}

	p.UpdateUniform("world", world)
	p.UpdateUniform("view", s.view)
	p.UpdateUniform("projection", s.projection)
	p.UpdateUniform("lightDirection", s.light)
	p.UpdateUniform("cameraPosition", s.camera.Position)
}

func depth(enable bool) {
	if enable {
		gl.Enable(gl.DEPTH_TEST)
		gl.DepthMask(true)
	} else {
		gl.Disable(gl.DEPTH_TEST)
		gl.DepthMask(false)
	}
}

func culling(enable bool) {
	if enable {
		gl.Enable(gl.CULL_FACE)
		gl.CullFace(gl.BACK)
	} else {
		gl.Disable(gl.CULL_FACE)
	}
}

func bindTextures(textures ...*Texture) {
	for unit, t := range textures {
		t.Bind(unit)
	}
	gl.ActiveTexture(gl.TEXTURE0)
}

func (s *renderSystem) renderQuad(p *shaderprogram, mesh *meshbuffer) {
	depth(false)
	culling(false)

	s.use(p, mgl32.Ident4())
	mesh.Draw()
}

func (s *renderSystem) renderCube(p *shaderprogram, mesh *meshbuffer, world mgl32.Mat4, main, normal *Texture) {
	depth(true)
	culling(true)

	s.use(p, world)
	bindTextures(main, normal)

	mesh.Draw()
}

// renderSkyBox draws the camera centred cube behind everything else
func (s *renderSystem) renderSkyBox(p *shaderprogram, cube *meshbuffer) {
	depth(false)
	culling(false)

	pos := s.camera.Position
	world := mgl32.Translate3D(pos[0], pos[1], pos[2]).Mul4(mgl32.Scale3D(100, 100, 100))
	s.use(p, world)
	cube.Draw()

	depth(true)
	culling(true)
}

func (s *renderSystem) renderStarBox(p *shaderprogram, cube *meshbuffer, stars *Texture) {
	depth(false)
	culling(false)

	pos := s.camera.Position
	world := mgl32.Translate3D(pos[0], pos[1], pos[2]).Mul4(mgl32.Scale3D(10, 10, 10))
	s.use(p, world)
	stars.Bind(0)
	cube.Draw()

	depth(true)
	culling(true)
}

// terrain samplers in texture unit order
var terrainSamplers = [...]string{"mainTex", "normalTex", "dirt", "sand", "rock", "grass", "snow"}

type terrainTextures [len(terrainSamplers)]*Texture

func (s *renderSystem) renderTerrain(p *shaderprogram, mesh *meshbuffer, textures terrainTextures) {
	depth(true)
	culling(true)

	s.use(p, mgl32.Ident4())
	p.UpdateUniform("normalMapped", textures[1] != nil)
	bindTextures(textures[:]...)

	mesh.Draw()
}

// renderModel blends additively over the terrain, models outside the view are skipped
func (s *renderSystem) renderModel(p *shaderprogram, m *Model, world mgl32.Mat4) {
	if !s.frustum.visible(m.Bounding, world) {
		return
	}

	depth(true)
	culling(true)
	gl.Enable(gl.BLEND)
	gl.BlendFunc(gl.ONE_MINUS_DST_COLOR, gl.ONE)

	s.use(p, world)
	m.Draw()

	gl.Disable(gl.BLEND)
}

type planetTextures struct {
	Day, Night, Clouds *Texture
}

// renderPlanet draws earth and its moon
func (s *renderSystem) renderPlanet(planet, moon *shaderprogram, sphere *meshbuffer, earth planetTextures, luna *Texture) {
	depth(true)
	culling(true)

	s.use(planet, Earth.World(s.time))
	planet.UpdateUniform("time", s.time)
	bindTextures(earth.Day, earth.Night, earth.Clouds)

	sphere.Draw()

	s.renderMoon(moon, sphere, Luna.World(Earth.Parent(), s.time), luna)
}

func (s *renderSystem) renderMoon(p *shaderprogram, sphere *meshbuffer, world mgl32.Mat4, t *Texture) {
	if !s.frustum.visible(sphere.Bounding, world) {
		return
	}

	depth(true)
	culling(true)

	s.use(p, world)
	bindTextures(t)

	sphere.Draw()
}

// renderMars draws mars with phobos and deimos
func (s *renderSystem) renderMars(mars, moon *shaderprogram, sphere *meshbuffer, surface, phobos, deimos *Texture) {
	world := Mars.World(s.time)
	if s.frustum.visible(sphere.Bounding, world) {
		depth(true)
		culling(true)

		s.use(mars, world)
		mars.UpdateUniform("time", s.time)
		bindTextures(surface)

		sphere.Draw()
	}

	parent := Mars.Parent()
	s.renderMoon(moon, sphere, Phobos.World(parent, s.time), phobos)
	s.renderMoon(moon, sphere, Deimos.World(parent, s.time), deimos)
}
