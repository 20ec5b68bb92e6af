package renderer

import (
	"fmt"
	"image"

	"github.com/go-gl/gl/v3.2-core/gl"
)

// newTexture uploads img as a linearly filtered, edge-clamped RGBA8 texture.
func newTexture(img *image.RGBA) (uint32, error) {
	if img == nil {
		return 0, fmt.Errorf("texture image is nil")
	}
	width := int32(img.Rect.Size().X)
	height := int32(img.Rect.Size().Y)
	if width == 0 || height == 0 {
		return 0, fmt.Errorf("texture image is empty")
	}

	var textureID uint32
	gl.GenTextures(1, &textureID)
	gl.BindTexture(gl.TEXTURE_2D, textureID)

	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.LINEAR)

	// Rows are tightly packed for any width.
	gl.PixelStorei(gl.UNPACK_ALIGNMENT, 1)
	gl.TexImage2D(
		gl.TEXTURE_2D,
		0,
		gl.RGBA8,
		width,
		height,
		0,
		gl.RGBA,
		gl.UNSIGNED_BYTE,
		gl.Ptr(img.Pix),
	)

	gl.BindTexture(gl.TEXTURE_2D, 0)
	return textureID, nil
}
