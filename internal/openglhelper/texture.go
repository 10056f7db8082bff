package openglhelper

import (
	"image"

	"github.com/go-gl/gl/v4.6-core/gl"
)

// Texture is a 2D RGBA texture.
type Texture struct {
	ID     uint32
	Width  int
	Height int
}

// NewTexture uploads img with linear filtering, mipmaps and edge clamping.
// Rows are uploaded in memory order, so callers flip images whose first row
// is the top.
func NewTexture(img *image.RGBA) *Texture {
	var id uint32
	gl.GenTextures(1, &id)
	gl.BindTexture(gl.TEXTURE_2D, id)

	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.LINEAR_MIPMAP_LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.LINEAR)

	b := img.Bounds()
	gl.PixelStorei(gl.UNPACK_ROW_LENGTH, int32(img.Stride/4))
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA8, int32(b.Dx()), int32(b.Dy()), 0,
		gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(img.Pix))
	gl.PixelStorei(gl.UNPACK_ROW_LENGTH, 0)
	gl.GenerateMipmap(gl.TEXTURE_2D)

	gl.BindTexture(gl.TEXTURE_2D, 0)

	return &Texture{ID: id, Width: b.Dx(), Height: b.Dy()}
}

// Bind binds the texture to the given texture unit.
func (t *Texture) Bind(unit uint32) {
	gl.ActiveTexture(gl.TEXTURE0 + unit)
	gl.BindTexture(gl.TEXTURE_2D, t.ID)
}

// Delete releases the texture.
func (t *Texture) Delete() {
	gl.DeleteTextures(1, &t.ID)
}
