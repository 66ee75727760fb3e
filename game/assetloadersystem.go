package game

import (
	"errors"
	"fmt"
	"log"
	"os"
	"path"
	"path/filepath"
	"sync"

	"github.com/go-gl/gl/v3.3-core/gl"
	"github.com/schollz/progressbar/v3"
	"golang.org/x/term"
)

/*
	geometry, model, texture, shader

	everything is cached by name, uploads run on the main thread
*/
type assetLoaderSystem struct {
	lock    sync.Mutex
	path    string
	context *GlContextSystem

	meshbuffers    map[string]*meshbuffer
	models         map[string]*Model
	shaderPrograms map[string]*shaderprogram
	textures       map[string]*Texture
}

var (
	assetInstance *assetLoaderSystem
	assetOnce     sync.Once
)

type AssetOpts struct {
	Path    string
	Context *GlContextSystem
}

func AssetLoaderSystem(opts *AssetOpts) *assetLoaderSystem {
	assetOnce.Do(func() {
		if opts == nil {
			log.Fatal("zero options init of system")
		}

		assetInstance = &assetLoaderSystem{
			path:    opts.Path,
			context: opts.Context,

			meshbuffers:    map[string]*meshbuffer{},
			models:         map[string]*Model{},
			shaderPrograms: map[string]*shaderprogram{},
			textures:       map[string]*Texture{},
		}
	})

	return assetInstance
}

func (ls *assetLoaderSystem) file(name string) string {
	return filepath.Join(ls.path, filepath.FromSlash(name))
}

func (ls *assetLoaderSystem) open(name string) (*os.File, error) {
	f, err := os.Open(ls.file(name))
	if err != nil {
		return nil, err
	}
	return f, nil
}

// LoadShader compiles one of the programs of programLib.
func (ls *assetLoaderSystem) LoadShader(name string) (*shaderprogram, error) {
	ls.lock.Lock()
	defer ls.lock.Unlock()

	if s, found := ls.shaderPrograms[name]; found {
		return s, nil
	}

	src, found := programLib[name]
	if !found {
		return nil, fmt.Errorf("unknown shader program: %s", name)
	}

	vdata, err := os.ReadFile(ls.file("shaders/" + src.Vertex + ".vertex"))
	if err != nil {
		return nil, fmt.Errorf("shader program %s: %w", name, err)
	}
	fdata, err := os.ReadFile(ls.file("shaders/" + src.Fragment + ".fragment"))
	if err != nil {
		return nil, fmt.Errorf("shader program %s: %w", name, err)
	}

	var s *shaderprogram
	ls.context.MainThread(func() {
		s, err = newProgram(name, string(vdata), string(fdata))
		if err == nil {
			s.setSamplers(src.Samplers)
		}
	})
	if err != nil {
		return nil, err
	}

	ls.shaderPrograms[name] = s
	return s, nil
}

func textureKey(name string, opts TextureOptions) string {
	return fmt.Sprintf("%s#%d_%d_%d_%t", name, opts.Components, opts.WrapS, opts.WrapT, opts.Flip)
}

// terrainKey keeps the downsampled heightmap apart from a texture of the same file
func terrainKey(heightmap string) string {
	return "terrain:" + heightmap
}

func (ls *assetLoaderSystem) LoadTexture(name string, opts TextureOptions) (*Texture, error) {
	ls.lock.Lock()
	defer ls.lock.Unlock()

	key := textureKey(name, opts)
	if t, found := ls.textures[key]; found {
		return t, nil
	}

	file, err := ls.open(name)
	if err != nil {
		return nil, fmt.Errorf("load texture: %w", err)
	}
	defer file.Close()

	im, err := decodeImage(file)
	if err != nil {
		return nil, fmt.Errorf("load texture %s: %w", name, err)
	}
	pix, w, h, comp := prepareImage(im, opts)

	var t *Texture
	ls.context.MainThread(func() {
		t = uploadTexture2D(pix, w, h, comp, opts)
	})

	ls.textures[key] = t
	return t, nil
}

// LoadCubeMap expects the faces right, left, top, bottom, front, back.
// Faces that can not be loaded are logged and left empty.
func (ls *assetLoaderSystem) LoadCubeMap(faces [6]string) (*Texture, error) {
	ls.lock.Lock()
	defer ls.lock.Unlock()

	key := fmt.Sprint(faces)
	if t, found := ls.textures[key]; found {
		return t, nil
	}

	var (
		data   [6]*cubeFace
		loaded int
	)
	for i, name := range faces {
		file, err := ls.open(name)
		if err != nil {
			log.Println("error loading texture:", err)
			continue
		}
		im, err := decodeImage(file)
		file.Close()
		if err != nil {
			log.Printf("error loading texture %s: %v", name, err)
			continue
		}

		pix, w, h, comp := prepareImage(im, TextureOptions{})
		data[i] = &cubeFace{pix, w, h, comp}
		loaded++
	}
	if loaded == 0 {
		return nil, errors.New("no cube map face could be loaded")
	}

	var t *Texture
	ls.context.MainThread(func() {
		t = uploadCubeMap(data)
	})

	ls.textures[key] = t
	return t, nil
}

// LoadTerrain uploads the heightmap as texture and generates the terrain mesh from it.
func (ls *assetLoaderSystem) LoadTerrain(cfg TerrainConfig) (*meshbuffer, *Texture, error) {
	ls.lock.Lock()
	defer ls.lock.Unlock()

	file, err := ls.open(cfg.Heightmap)
	if err != nil {
		return nil, nil, fmt.Errorf("load heightmap: %w", err)
	}
	defer file.Close()

	im, err := decodeImage(file)
	if err != nil {
		return nil, nil, fmt.Errorf("load heightmap %s: %w", cfg.Heightmap, err)
	}
	im = downsample(im, cfg.MaxResolution)

	hm, err := NewHeightmap(im)
	if err != nil {
		return nil, nil, fmt.Errorf("load heightmap %s: %w", cfg.Heightmap, err)
	}

	mb := GeneratePlane(hm, PlaneOptions{
		HeightScale: cfg.HeightScale,
		XZScale:     cfg.XZScale,
		FlatNormals: cfg.FlatNormals,
	})
	pix, w, h, comp := prepareImage(im, TextureOptions{Components: cfg.Components})

	var t *Texture
	ls.context.MainThread(func() {
		t = uploadTexture2D(pix, w, h, comp, TextureOptions{})
		err = mb.Init()
	})
	if err != nil {
		return nil, nil, fmt.Errorf("terrain mesh: %w", err)
	}

	log.Printf("terrain %vx%v, %v indices", hm.Width, hm.Height, mb.IndexCount)

	ls.textures[terrainKey(cfg.Heightmap)] = t
	ls.meshbuffers[terrainKey(cfg.Heightmap)] = mb
	return mb, t, nil
}

// Primitive builds and uploads a generated mesh once.
func (ls *assetLoaderSystem) Primitive(name string, build func() *meshbuffer) (*meshbuffer, error) {
	ls.lock.Lock()
	defer ls.lock.Unlock()

	if mb, found := ls.meshbuffers[name]; found {
		return mb, nil
	}

	mb := build()
	var err error
	ls.context.MainThread(func() {
		err = mb.Init()
	})
	if err != nil {
		return nil, fmt.Errorf("primitive %s: %w", name, err)
	}

	ls.meshbuffers[name] = mb
	return mb, nil
}

// LoadModel reads an obj file with its material libraries, missing textures are logged.
func (ls *assetLoaderSystem) LoadModel(name string) (*Model, error) {
	ls.lock.Lock()
	if m, found := ls.models[name]; found {
		ls.lock.Unlock()
		return m, nil
	}

	file, err := ls.open(name)
	if err != nil {
		ls.lock.Unlock()
		return nil, fmt.Errorf("load model: %w", err)
	}
	obj, err := ParseOBJ(file)
	file.Close()
	if err != nil {
		ls.lock.Unlock()
		return nil, fmt.Errorf("load model %s: %w", name, err)
	}

	dir := path.Dir(name)
	materials := map[string]*Material{}
	for _, lib := range obj.MaterialLibs {
		f, err := ls.open(path.Join(dir, lib))
		if err != nil {
			log.Printf("model %s: %v", name, err)
			continue
		}
		mats, err := ParseMTL(f)
		f.Close()
		if err != nil {
			log.Printf("model %s: material library %s: %v", name, lib, err)
			continue
		}
		for n, m := range mats {
			materials[n] = m
		}
	}
	ls.lock.Unlock()

	m := &Model{Bounding: NewBoundary()}
	for _, g := range obj.Groups {
		mm := modelMesh{mesh: g.Mesh}

		if mat, found := materials[g.Material]; found {
			for slot, tex := range mat.Maps {
				if tex == "" {
					continue
				}
				t, err := ls.LoadTexture(path.Join(dir, tex), TextureOptions{WrapS: gl.REPEAT, WrapT: gl.REPEAT})
				if err != nil {
					log.Println("error loading texture:", err)
					continue
				}
				mm.textures[slot] = t
			}
		}

		m.Bounding.AddPoint(g.Mesh.Bounding.Min)
		m.Bounding.AddPoint(g.Mesh.Bounding.Max)
		m.meshes = append(m.meshes, mm)
	}

	ls.lock.Lock()
	defer ls.lock.Unlock()

	var initErr error
	ls.context.MainThread(func() {
		for _, mm := range m.meshes {
			if initErr == nil {
				initErr = mm.mesh.Init()
			}
		}
	})
	if err := initErr; err != nil {
		return nil, fmt.Errorf("load model %s: %w", name, err)
	}

	for i, mm := range m.meshes {
		ls.meshbuffers[fmt.Sprintf("%s:%d", name, i)] = mm.mesh
	}
	ls.models[name] = m
	return m, nil
}

// AssetTask is one step of Preload
type AssetTask struct {
	Name string
	Load func() error
}

// Preload runs all tasks with a progress bar on terminals.
// Failing tasks are logged, the joined errors are returned after all tasks ran.
func (ls *assetLoaderSystem) Preload(tasks []AssetTask) error {
	var bar *progressbar.ProgressBar
	if term.IsTerminal(int(os.Stderr.Fd())) {
		bar = progressbar.Default(int64(len(tasks)), "loading assets")
	} else {
		bar = progressbar.DefaultSilent(int64(len(tasks)), "loading assets")
	}
	defer bar.Finish()

	var errs []error
	for _, t := range tasks {
		bar.Describe(t.Name)
		if err := t.Load(); err != nil {
			log.Printf("loading %s: %v", t.Name, err)
			errs = append(errs, fmt.Errorf("%s: %w", t.Name, err))
		}
		bar.Add(1)
	}

	return errors.Join(errs...)
}

func (ls *assetLoaderSystem) Cleanup() {
	ls.lock.Lock()
	defer ls.lock.Unlock()

	ls.context.MainThread(func() {
		for _, m := range ls.meshbuffers {
			m.Cleanup()
		}
		for _, s := range ls.shaderPrograms {
			s.Cleanup()
		}
		for _, t := range ls.textures {
			t.Cleanup()
		}
	})

	ls.meshbuffers = map[string]*meshbuffer{}
	ls.models = map[string]*Model{}
	ls.shaderPrograms = map[string]*shaderprogram{}
	ls.textures = map[string]*Texture{}
}
