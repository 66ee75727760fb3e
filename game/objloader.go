package game

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/go-gl/mathgl/mgl32"
)

/*
	wavefront obj/mtl importer
	http://en.wikipedia.org/wiki/Wavefront_OBJ

	object format
	http://paulbourke.net/dataformats/obj/

	material format
	http://paulbourke.net/dataformats/mtl/
*/

// objGroup is the geometry using one material
type objGroup struct {
	Material string
	Mesh     *meshbuffer
}

type objFile struct {
	MaterialLibs []string
	Groups       []objGroup
}

func parseFloats(fields []string, n int) ([]float32, error) {
	if len(fields) < n {
		return nil, fmt.Errorf("expected %v values, got %v", n, len(fields))
	}
	out := make([]float32, n)
	for i := 0; i < n; i++ {
		v, err := strconv.ParseFloat(fields[i], 32)
		if err != nil {
			return nil, err
		}
		out[i] = float32(v)
	}
	return out, nil
}

// resolveIndex converts a 1 based or negative relative index into a slice index.
func resolveIndex(s string, count int) (int, error) {
	i, err := strconv.Atoi(s)
	if err != nil {
		return 0, err
	}
	switch {
	case i > 0 && i <= count:
		return i - 1, nil
	case i < 0 && -i <= count:
		return count + i, nil
	}
	return 0, fmt.Errorf("index %v out of range [1, %v]", i, count)
}

// ParseOBJ reads triangles and polygons, faces are grouped by usemtl.
func ParseOBJ(r io.Reader) (*objFile, error) {
	var (
		vertices []mgl32.Vec3
		normals  []mgl32.Vec3
		uvs      []mgl32.Vec2

		obj     = &objFile{}
		current *meshbuffer
		groups  = map[string]*meshbuffer{}
	)

	useMaterial := func(name string) {
		if mb, found := groups[name]; found {
			current = mb
			return
		}
		current = &meshbuffer{}
		groups[name] = current
		obj.Groups = append(obj.Groups, objGroup{name, current})
	}

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), 1024*1024)

	for lineNo := 1; scanner.Scan(); lineNo++ {
		line := strings.TrimSpace(scanner.Text())
		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}

		var err error
		switch strings.ToLower(fields[0]) {

		// Vertex data

		case "v": // geometric vertices: x, y, z, [w]
			var f []float32
			if f, err = parseFloats(fields[1:], 3); err == nil {
				vertices = append(vertices, mgl32.Vec3{f[0], f[1], f[2]})
			}

		case "vt": // texture vertices: u, v, [w]
			var f []float32
			if f, err = parseFloats(fields[1:], 2); err == nil {
				uvs = append(uvs, mgl32.Vec2{f[0], 1.0 - f[1]})
			}

		case "vn": // vertex normals: i, j, k
			var f []float32
			if f, err = parseFloats(fields[1:], 3); err == nil {
				normals = append(normals, mgl32.Vec3{f[0], f[1], f[2]})
			}

		case "vp", "cstype", "deg", "bmat", "step":

		// Elements

		case "f": // face: v/vt/vn v/vt/vn v/vt/vn ...
			if len(fields) < 4 {
				err = fmt.Errorf("face with %v vertices", len(fields)-1)
				break
			}
			if current == nil {
				useMaterial("")
			}

			poly := make([]Vertex, len(fields)-1)
			hasNormals := true
			for i, f := range fields[1:] {
				a := strings.Split(f, "/")
				var idx int

				// vertex
				if idx, err = resolveIndex(a[0], len(vertices)); err != nil {
					break
				}
				poly[i].position = vertices[idx]

				// uv
				if len(a) > 1 && a[1] != "" {
					if idx, err = resolveIndex(a[1], len(uvs)); err != nil {
						break
					}
					poly[i].uv = uvs[idx]
				}

				// normal
				if len(a) > 2 && a[2] != "" {
					if idx, err = resolveIndex(a[2], len(normals)); err != nil {
						break
					}
					poly[i].normal = normals[idx]
				} else {
					hasNormals = false
				}
			}
			if err != nil {
				break
			}

			if !hasNormals {
				n := poly[1].position.Sub(poly[0].position).Cross(poly[2].position.Sub(poly[0].position))
				if n.Len() > 0 {
					n = n.Normalize()
				}
				for i := range poly {
					poly[i].normal = n
				}
			}

			// polygons are split into a triangle fan
			for i := 1; i+1 < len(poly); i++ {
				current.AddFace(poly[0], poly[i], poly[i+1])
			}

		case "p", "l", "curv", "curv2", "surf":

		// Free-form curve/surface body statements

		case "parm", "trim", "hole", "scrv", "sp", "end", "con":

		// Grouping

		case "g", "s", "mg", "o":

		// Display/render attributes

		case "usemtl": // material name
			useMaterial(strings.Join(fields[1:], " "))
		case "mtllib": // material library
			obj.MaterialLibs = append(obj.MaterialLibs, fields[1:]...)
		case "bevel", "c_interp", "d_interp", "lod",
			"shadow_obj", "trace_obj", "ctech", "stech":

		default:
			if !strings.HasPrefix(fields[0], "#") {
				err = fmt.Errorf("unknown object line type: %s", fields[0])
			}
		}

		if err != nil {
			return nil, fmt.Errorf("line %v: %w", lineNo, err)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}

	// drop materials without faces
	kept := obj.Groups[:0]
	for _, g := range obj.Groups {
		if len(g.Mesh.Faces) == 0 {
			continue
		}
		g.Mesh.MergeVertices()
		g.Mesh.ComputeTangents()
		g.Mesh.ComputeBoundary()
		kept = append(kept, g)
	}
	obj.Groups = kept

	if len(obj.Groups) == 0 {
		return nil, errEmptyMesh
	}
	return obj, nil
}

// texture slots of the model program
const (
	SlotDiffuse = iota
	SlotSpecular
	SlotNormal
	SlotRoughness
	SlotAO

	slotCount
)

var slotSamplers = [slotCount]string{
	"texture_diffuse1",
	"texture_specular1",
	"texture_normal1",
	"texture_roughness1",
	"texture_ao1",
}

type Material struct {
	Name string
	Maps [slotCount]string // texture file per slot, relative to the library
}

// ParseMTL reads the texture maps of every material.
func ParseMTL(r io.Reader) (map[string]*Material, error) {
	materials := map[string]*Material{}
	var current *Material

	scanner := bufio.NewScanner(r)
	for lineNo := 1; scanner.Scan(); lineNo++ {
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 || strings.HasPrefix(fields[0], "#") {
			continue
		}

		key := strings.ToLower(fields[0])
		if key == "newmtl" {
			if len(fields) < 2 {
				return nil, fmt.Errorf("line %v: material without name", lineNo)
			}
			name := strings.Join(fields[1:], " ")
			current = &Material{Name: name}
			materials[name] = current
			continue
		}

		slot := -1
		switch key {
		case "map_kd":
			slot = SlotDiffuse
		case "map_ks":
			slot = SlotSpecular
		case "map_bump", "bump", "norm", "map_kn":
			slot = SlotNormal
		case "map_pr", "map_ns":
			slot = SlotRoughness
		case "map_ka":
			slot = SlotAO
		}
		if slot < 0 || len(fields) < 2 {
			// colors, illumination and other statements are not used
			continue
		}
		if current == nil {
			return nil, fmt.Errorf("line %v: %s before newmtl", lineNo, fields[0])
		}

		// the file name is the last field, options like -bm 1.0 come first
		current.Maps[slot] = fields[len(fields)-1]
	}

	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return materials, nil
}
