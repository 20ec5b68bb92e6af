// Package texture decodes sprite images into RGBA pixels ready for upload.
package texture

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"os"

	_ "golang.org/x/image/bmp"
	"golang.org/x/image/draw"
	_ "golang.org/x/image/webp"
)

// Load reads and decodes the image at path.
func Load(path string) (*image.RGBA, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read texture: %w", err)
	}
	img, err := Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", path, err)
	}
	return img, nil
}

// Decode decodes any registered image format and returns it as RGBA with
// the first row at the bottom, matching the GL texture origin.
func Decode(r io.Reader) (*image.RGBA, error) {
	img, format, err := image.Decode(r)
	if err != nil {
		return nil, err
	}
	if img.Bounds().Empty() {
		return nil, fmt.Errorf("%s image has no pixels", format)
	}
	return VFlip(ToRGBA(img)), nil
}

// ToRGBA copies img into a new RGBA image whose bounds start at the origin.
func ToRGBA(img image.Image) *image.RGBA {
	b := img.Bounds()
	rgba := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(rgba, rgba.Bounds(), img, b.Min, draw.Src)
	return rgba
}

// VFlip returns a vertically flipped copy of src.
func VFlip(src *image.RGBA) *image.RGBA {
	bounds := src.Bounds()
	flipped := image.NewRGBA(bounds)
	height := bounds.Dy()
	rowSize := bounds.Dx() * 4

	for y := 0; y < height; y++ {
		srcRow := src.Pix[((height-1)-y)*src.Stride:]
		dstRow := flipped.Pix[y*flipped.Stride:]
		copy(dstRow, srcRow[:rowSize])
	}
	return flipped
}

// White is a 1x1 opaque white image, bound for untextured shapes so the
// shader's texture sample is neutral.
func White() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, 1, 1))
	img.SetRGBA(0, 0, color.RGBA{255, 255, 255, 255})
	return img
}
