package game

import (
	"os"
	"regexp"
	"sort"
	"strings"
	"testing"
)

func TestTerrainKey(t *testing.T) {
	name := "textures/heightmap.png"

	for _, comp := range []int{0, 3, 4} {
		if k := textureKey(name, TextureOptions{Components: comp}); k == terrainKey(name) {
			t.Errorf("terrain shares the texture key %q", k)
		}
	}
	if terrainKey(name) == terrainKey("textures/other.png") {
		t.Error("different heightmaps share a key")
	}
}

var samplerDecl = regexp.MustCompile(`uniform sampler\w+ (\w+);`)

func readShader(t *testing.T, file string) string {
	t.Helper()
	data, err := os.ReadFile("../assets/shaders/" + file)
	if err != nil {
		t.Fatal(err)
	}
	return string(data)
}

// every sampler of a fragment shader gets a unit when the program is loaded
func TestProgramLibSamplers(t *testing.T) {
	for name, src := range programLib {
		var declared []string
		for _, m := range samplerDecl.FindAllStringSubmatch(readShader(t, src.Fragment+".fragment"), -1) {
			declared = append(declared, m[1])
		}

		units := append([]string(nil), src.Samplers...)
		sort.Strings(declared)
		sort.Strings(units)
		if strings.Join(declared, ",") != strings.Join(units, ",") {
			t.Errorf("%s: samplers %v, units for %v", name, declared, units)
		}
	}

	if got := programLib["terrain"].Samplers; len(got) != len(terrainTextures{}) || got[1] != "normalTex" {
		t.Errorf("terrain samplers %v", got)
	}
}

// the vertex normals of GeneratePlane reach the terrain lighting
func TestTerrainShaderNormals(t *testing.T) {
	src := readShader(t, "terrain.fragment")

	for _, want := range []string{"in vec3 normal;", "uniform bool normalMapped;", "normalize(normal)"} {
		if !strings.Contains(src, want) {
			t.Errorf("terrain.fragment lacks %q", want)
		}
	}
}
