package game

import (
	"fmt"
	"strings"

	"github.com/go-gl/gl/v3.3-core/gl"
	"github.com/go-gl/mathgl/mgl32"
)

type shaderprogram struct {
	name     string
	program  uint32
	uniforms map[string]int32 // location cache, -1 if inactive
}

// newProgram compiles and links, must run on the gl thread.
func newProgram(name, vertexSource, fragmentSource string) (*shaderprogram, error) {
	vshader, err := compileShader(vertexSource, gl.VERTEX_SHADER)
	if err != nil {
		return nil, fmt.Errorf("vertex shader %s: %w", name, err)
	}
	defer gl.DeleteShader(vshader)

	fshader, err := compileShader(fragmentSource, gl.FRAGMENT_SHADER)
	if err != nil {
		return nil, fmt.Errorf("fragment shader %s: %w", name, err)
	}
	defer gl.DeleteShader(fshader)

	program := gl.CreateProgram()
	gl.AttachShader(program, vshader)
	gl.AttachShader(program, fshader)
	gl.LinkProgram(program)

	var status int32
	gl.GetProgramiv(program, gl.LINK_STATUS, &status)
	if status == gl.FALSE {
		var logLength int32
		gl.GetProgramiv(program, gl.INFO_LOG_LENGTH, &logLength)

		info := strings.Repeat("\x00", int(logLength+1))
		gl.GetProgramInfoLog(program, logLength, nil, gl.Str(info))
		gl.DeleteProgram(program)

		return nil, fmt.Errorf("link program %s: %v", name, strings.TrimRight(info, "\x00"))
	}

	return &shaderprogram{
		name:     name,
		program:  program,
		uniforms: map[string]int32{},
	}, nil
}

func compileShader(source string, shaderType uint32) (uint32, error) {
	shader := gl.CreateShader(shaderType)

	csources, free := gl.Strs(source + "\x00")
	gl.ShaderSource(shader, 1, csources, nil)
	free()
	gl.CompileShader(shader)

	var status int32
	gl.GetShaderiv(shader, gl.COMPILE_STATUS, &status)
	if status == gl.FALSE {
		var logLength int32
		gl.GetShaderiv(shader, gl.INFO_LOG_LENGTH, &logLength)

		info := strings.Repeat("\x00", int(logLength+1))
		gl.GetShaderInfoLog(shader, logLength, nil, gl.Str(info))
		gl.DeleteShader(shader)

		return 0, fmt.Errorf("compile: %v", strings.TrimRight(info, "\x00"))
	}

	return shader, nil
}

func (s *shaderprogram) Use() {
	gl.UseProgram(s.program)
}

func (s *shaderprogram) location(name string) int32 {
	if l, found := s.uniforms[name]; found {
		return l
	}
	l := gl.GetUniformLocation(s.program, gl.Str(name+"\x00"))
	s.uniforms[name] = l
	return l
}

// UpdateUniform sets a uniform of the program in use, inactive uniforms are ignored.
func (s *shaderprogram) UpdateUniform(name string, value interface{}) error {
	l := s.location(name)
	if l < 0 {
		return nil
	}

	switch t := value.(type) {
	default:
		return fmt.Errorf("%v has unknown type: %T", name, t)

	case bool:
		var v int32
		if t {
			v = 1
		}
		gl.Uniform1i(l, v)
	case int:
		gl.Uniform1i(l, int32(t))
	case int32:
		gl.Uniform1i(l, t)
	case float64:
		gl.Uniform1f(l, float32(t))
	case float32:
		gl.Uniform1f(l, t)

	case mgl32.Vec2:
		gl.Uniform2fv(l, 1, &t[0])
	case mgl32.Vec3:
		gl.Uniform3fv(l, 1, &t[0])
	case mgl32.Vec4:
		gl.Uniform4fv(l, 1, &t[0])

	case mgl32.Mat3:
		gl.UniformMatrix3fv(l, 1, false, &t[0])
	case mgl32.Mat4:
		gl.UniformMatrix4fv(l, 1, false, &t[0])
	}

	return nil
}

// SetSampler points a sampler uniform at a texture unit, the program stays in use.
func (s *shaderprogram) SetSampler(name string, unit int) {
	s.Use()
	s.UpdateUniform(name, unit)
}

// setSamplers binds the samplers in unit order, must run on the gl thread.
func (s *shaderprogram) setSamplers(names []string) {
	for unit, name := range names {
		s.SetSampler(name, unit)
	}
	gl.UseProgram(0)
}

func (s *shaderprogram) Cleanup() {
	if s.program != 0 {
		gl.DeleteProgram(s.program)
		s.program = 0
	}
}

// shader sources are read from <name>.vertex and <name>.fragment,
// Samplers are bound to texture units in order once after linking
type programSource struct {
	Vertex, Fragment string
	Samplers         []string
}

// the programs of all scenes, a fragment may be shared by several vertex shaders
var programLib = map[string]programSource{
	"simple":  {"simple", "simple", nil},
	"cube":    {"cube", "cube", []string{"mainTex", "normalTex"}},
	"sky":     {"sky", "sky", nil},
	"star":    {"sky", "starbox", []string{"skybox"}},
	"terrain": {"terrain", "terrain", terrainSamplers[:]},
	"model":   {"model", "model", slotSamplers[:]},
	"planet":  {"model", "planet", []string{"day", "night", "clouds"}},
	"moon":    {"model", "moon", []string{"mainTex"}},
	"mars":    {"model", "mars", []string{"mainTex"}},
}
