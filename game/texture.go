package game

import (
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"io"

	"github.com/go-gl/gl/v3.3-core/gl"
	_ "golang.org/x/image/bmp"
	"golang.org/x/image/draw"
	_ "golang.org/x/image/tiff"
)

type TextureOptions struct {
	Components   int   // 3 or 4, 0 keeps the channels of the image
	WrapS, WrapT int32 // gl.CLAMP_TO_EDGE if zero
	Flip         bool  // first row at the bottom
}

type Texture struct {
	id     uint32
	target uint32

	Width, Height int
}

// Bind to texture unit
func (t *Texture) Bind(unit int) {
	gl.ActiveTexture(gl.TEXTURE0 + uint32(unit))
	if t == nil {
		gl.BindTexture(gl.TEXTURE_2D, 0)
		return
	}
	gl.BindTexture(t.target, t.id)
}

func (t *Texture) Cleanup() {
	if t.id != 0 {
		gl.DeleteTextures(1, &t.id)
		t.id = 0
	}
}

func decodeImage(r io.Reader) (image.Image, error) {
	im, _, err := image.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("decode image: %w", err)
	}
	return im, nil
}

// convert to rgba
func toRGBA(im image.Image) *image.RGBA {
	if rgba, ok := im.(*image.RGBA); ok && rgba.Rect.Min == (image.Point{}) {
		return rgba
	}

	b := im.Bounds()
	rgba := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(rgba, rgba.Bounds(), im, b.Min, draw.Src)
	return rgba
}

func flipVertical(im *image.RGBA) {
	h := im.Rect.Dy()
	row := make([]byte, im.Stride)
	for y := 0; y < h/2; y++ {
		top := im.Pix[y*im.Stride : (y+1)*im.Stride]
		bottom := im.Pix[(h-1-y)*im.Stride : (h-y)*im.Stride]
		copy(row, top)
		copy(top, bottom)
		copy(bottom, row)
	}
}

// packPixels returns tightly packed pixel rows with comp channels.
func packPixels(im *image.RGBA, comp int) []byte {
	w, h := im.Rect.Dx(), im.Rect.Dy()
	if comp == 4 && im.Stride == w*4 {
		return im.Pix[:w*h*4]
	}

	out := make([]byte, 0, w*h*comp)
	for y := 0; y < h; y++ {
		row := im.Pix[y*im.Stride : y*im.Stride+w*4]
		for x := 0; x < w; x++ {
			out = append(out, row[x*4:x*4+comp]...)
		}
	}
	return out
}

// components picks the channel count of the upload. Without a forced count it
// looks at the pixel values, not at the channels stored in the file: a png with
// an alpha channel that is fully opaque is uploaded as rgb. Force 4 to keep the
// alpha channel of such files.
func components(im *image.RGBA, forced int) int {
	switch forced {
	case 3, 4:
		return forced
	}
	if im.Opaque() {
		return 3
	}
	return 4
}

func pixelFormat(comp int) uint32 {
	if comp == 3 {
		return gl.RGB
	}
	return gl.RGBA
}

// prepareImage applies the options and returns the upload data.
func prepareImage(im image.Image, opts TextureOptions) (pix []byte, w, h, comp int) {
	rgba := toRGBA(im)
	if opts.Flip {
		flipVertical(rgba)
	}
	comp = components(rgba, opts.Components)
	return packPixels(rgba, comp), rgba.Rect.Dx(), rgba.Rect.Dy(), comp
}

// uploadTexture2D must run on the gl thread.
func uploadTexture2D(pix []byte, w, h, comp int, opts TextureOptions) *Texture {
	t := &Texture{target: gl.TEXTURE_2D, Width: w, Height: h}

	wrapS, wrapT := opts.WrapS, opts.WrapT
	if wrapS == 0 {
		wrapS = gl.CLAMP_TO_EDGE
	}
	if wrapT == 0 {
		wrapT = gl.CLAMP_TO_EDGE
	}

	gl.GenTextures(1, &t.id)
	gl.BindTexture(gl.TEXTURE_2D, t.id)

	// set texture parameters
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, wrapS)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, wrapT)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.LINEAR_MIPMAP_LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.LINEAR)

	// rgb rows are not 4 byte aligned
	gl.PixelStorei(gl.UNPACK_ALIGNMENT, 1)

	format := pixelFormat(comp)
	gl.TexImage2D(gl.TEXTURE_2D, 0, int32(format), int32(w), int32(h), 0, format, gl.UNSIGNED_BYTE, gl.Ptr(pix))
	gl.GenerateMipmap(gl.TEXTURE_2D)

	gl.BindTexture(gl.TEXTURE_2D, 0)
	return t
}

type cubeFace struct {
	pix        []byte
	w, h, comp int
}

// +x, -x, +y, -y, +z, -z
var cubeMapTargets = [6]uint32{
	gl.TEXTURE_CUBE_MAP_POSITIVE_X,
	gl.TEXTURE_CUBE_MAP_NEGATIVE_X,
	gl.TEXTURE_CUBE_MAP_POSITIVE_Y,
	gl.TEXTURE_CUBE_MAP_NEGATIVE_Y,
	gl.TEXTURE_CUBE_MAP_POSITIVE_Z,
	gl.TEXTURE_CUBE_MAP_NEGATIVE_Z,
}

// uploadCubeMap must run on the gl thread, missing faces stay undefined.
func uploadCubeMap(faces [6]*cubeFace) *Texture {
	t := &Texture{target: gl.TEXTURE_CUBE_MAP}

	gl.GenTextures(1, &t.id)
	gl.BindTexture(gl.TEXTURE_CUBE_MAP, t.id)
	gl.PixelStorei(gl.UNPACK_ALIGNMENT, 1)

	for i, f := range faces {
		if f == nil {
			continue
		}
		format := pixelFormat(f.comp)
		gl.TexImage2D(cubeMapTargets[i], 0, int32(format), int32(f.w), int32(f.h), 0, format, gl.UNSIGNED_BYTE, gl.Ptr(f.pix))
		t.Width, t.Height = f.w, f.h
	}

	gl.TexParameteri(gl.TEXTURE_CUBE_MAP, gl.TEXTURE_MIN_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_CUBE_MAP, gl.TEXTURE_MAG_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_CUBE_MAP, gl.TEXTURE_WRAP_S, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_CUBE_MAP, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_CUBE_MAP, gl.TEXTURE_WRAP_R, gl.CLAMP_TO_EDGE)

	gl.BindTexture(gl.TEXTURE_CUBE_MAP, 0)
	return t
}
