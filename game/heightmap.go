package game

import (
	"errors"
	"fmt"
	"image"

	"github.com/go-gl/mathgl/mgl32"
	"golang.org/x/image/draw"
)

var (
	errNoHeightmap    = errors.New("no heightmap data")
	errHeightmapSmall = errors.New("heightmap needs at least 2x2 pixels")
)

// Heightmap holds one 8 bit height sample per pixel, row major.
type Heightmap struct {
	Width, Height int
	Samples       []uint8
}

// NewHeightmap reads the first channel of every pixel.
func NewHeightmap(im image.Image) (*Heightmap, error) {
	if im == nil {
		return nil, errNoHeightmap
	}

	rgba := toRGBA(im)
	w, h := rgba.Rect.Dx(), rgba.Rect.Dy()
	if w < 2 || h < 2 {
		return nil, fmt.Errorf("%w, got %vx%v", errHeightmapSmall, w, h)
	}

	hm := &Heightmap{
		Width:   w,
		Height:  h,
		Samples: make([]uint8, w*h),
	}
	for y := 0; y < h; y++ {
		row := rgba.Pix[y*rgba.Stride:]
		for x := 0; x < w; x++ {
			hm.Samples[y*w+x] = row[x*4]
		}
	}
	return hm, nil
}

// downsample scales im so that no side exceeds side, aspect ratio is kept.
func downsample(im image.Image, side int) image.Image {
	b := im.Bounds()
	if side < 2 || (b.Dx() <= side && b.Dy() <= side) {
		return im
	}

	w, h := side, side
	if b.Dx() > b.Dy() {
		h = b.Dy() * side / b.Dx()
	} else {
		w = b.Dx() * side / b.Dy()
	}
	if w < 2 {
		w = 2
	}
	if h < 2 {
		h = 2
	}

	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.BiLinear.Scale(dst, dst.Bounds(), im, b, draw.Src, nil)
	return dst
}

func (hm *Heightmap) at(x, z int) float32 {
	x = max(0, min(x, hm.Width-1))
	z = max(0, min(z, hm.Height-1))
	return float32(hm.Samples[z*hm.Width+x])
}

// PlaneOptions scale the grid, heights are mapped from 0..255 to 0..HeightScale.
type PlaneOptions struct {
	HeightScale float32
	XZScale     float32
	FlatNormals bool
}

// normal from central differences of the neighbouring heights
func (hm *Heightmap) normal(x, z int, opts PlaneOptions) mgl32.Vec3 {
	if opts.FlatNormals {
		return mgl32.Vec3{0, 1, 0}
	}

	x0, x1 := max(x-1, 0), min(x+1, hm.Width-1)
	z0, z1 := max(z-1, 0), min(z+1, hm.Height-1)

	scale := opts.HeightScale / 255
	dhdx := (hm.at(x1, z) - hm.at(x0, z)) * scale / (float32(x1-x0) * opts.XZScale)
	dhdz := (hm.at(x, z1) - hm.at(x, z0)) * scale / (float32(z1-z0) * opts.XZScale)

	return mgl32.Vec3{-dhdx, 1, -dhdz}.Normalize()
}

// GeneratePlane builds an indexed grid with one vertex per sample,
// interleaved as position, normal and uv (LayoutTerrain).
func GeneratePlane(hm *Heightmap, opts PlaneOptions) *meshbuffer {
	w, h := hm.Width, hm.Height
	stride := int(LayoutTerrain.Stride())

	vertices := make([]float32, 0, w*h*stride)
	for i := 0; i < w*h; i++ {
		x := i % w
		z := i / w

		n := hm.normal(x, z, opts)
		vertices = append(vertices,
			// position
			float32(x)*opts.XZScale,
			hm.at(x, z)/255*opts.HeightScale,
			float32(z)*opts.XZScale,
			// normal
			n[0], n[1], n[2],
			// uv
			float32(x)/float32(w),
			float32(z)/float32(h),
		)
	}

	indices := make([]uint32, 0, (w-1)*(h-1)*6)
	for z := 0; z < h-1; z++ {
		for x := 0; x < w-1; x++ {
			v := uint32(z*w + x)
			vw := uint32(w)

			indices = append(indices,
				v, v+vw, v+vw+1,
				v, v+vw+1, v+1,
			)
		}
	}

	return newRawMeshbuffer(LayoutTerrain, vertices, indices)
}
