package loaders

import (
	"image"
	_ "image/gif"  // GIF decoder
	_ "image/jpeg" // JPEG decoder
	_ "image/png"  // PNG decoder
	"io"
	"os"

	"github.com/pkg/errors"
	_ "golang.org/x/image/bmp"  // BMP decoder
	_ "golang.org/x/image/tiff" // TIFF decoder
	_ "golang.org/x/image/webp" // WebP decoder

	"github.com/df07/go-pathtracer/pkg/material"
)

// ImageData contains a decoded image as packed 8-bit RGB, row-major with
// the top row first
type ImageData struct {
	Width  int
	Height int
	Pixels []byte
}

// Texture wraps the image in a texture
func (d *ImageData) Texture() (*material.ImageTexture, error) {
	return material.NewImageTexture(d.Pixels, d.Width, d.Height)
}

// LoadImage loads a PNG, JPEG, GIF, BMP, TIFF or WebP image
func LoadImage(filename string) (*ImageData, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, errors.Wrap(err, "failed to open image file")
	}
	defer file.Close()

	data, err := DecodeImage(file)
	if err != nil {
		return nil, errors.Wrapf(err, "%s", filename)
	}
	return data, nil
}

// DecodeImage decodes an image in any registered format, dropping alpha
func DecodeImage(r io.Reader) (*ImageData, error) {
	img, format, err := image.Decode(r)
	if err != nil {
		return nil, errors.Wrap(err, "failed to decode image")
	}

	bounds := img.Bounds()
	width := bounds.Dx()
	height := bounds.Dy()
	if width == 0 || height == 0 {
		return nil, errors.Errorf("empty %s image", format)
	}

	pixels := make([]byte, 3*width*height)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			// RGBA returns 16-bit channels
			r, g, b, _ := img.At(x+bounds.Min.X, y+bounds.Min.Y).RGBA()
			i := 3 * (y*width + x)
			pixels[i] = byte(r >> 8)
			pixels[i+1] = byte(g >> 8)
			pixels[i+2] = byte(b >> 8)
		}
	}

	logger.Debugf("decoded %dx%d %s image", width, height, format)
	return &ImageData{Width: width, Height: height, Pixels: pixels}, nil
}
