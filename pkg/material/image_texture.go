package material

import (
	"github.com/pkg/errors"

	"github.com/df07/go-pathtracer/pkg/core"
)

// ImageTexture provides color from a packed RGB image
type ImageTexture struct {
	Width  int
	Height int
	Pixels []byte // Row-major, 3 bytes per pixel, row 0 at the top
}

// NewImageTexture creates a new image texture over a packed RGB buffer of
// width*height*3 bytes
func NewImageTexture(pixels []byte, width, height int) (*ImageTexture, error) {
	if width <= 0 || height <= 0 {
		return nil, errors.Errorf("invalid texture size %dx%d", width, height)
	}
	if len(pixels) < 3*width*height {
		return nil, errors.Errorf("texture %dx%d needs %d bytes, got %d", width, height, 3*width*height, len(pixels))
	}
	return &ImageTexture{
		Width:  width,
		Height: height,
		Pixels: pixels,
	}, nil
}

// Evaluate samples the texture at given UV coordinates using nearest-neighbor filtering.
// V=0 is the bottom row of the image.
func (t *ImageTexture) Evaluate(uv core.Vec2, point core.Vec3) core.Vec3 {
	if t.Width == 0 || t.Height == 0 {
		return core.NewVec3(0, 1, 1)
	}

	x := int(uv.X * float64(t.Width))
	y := int((1.0 - uv.Y) * float64(t.Height))

	// Clamp to image bounds
	if x >= t.Width {
		x = t.Width - 1
	}
	if y >= t.Height {
		y = t.Height - 1
	}
	if x < 0 {
		x = 0
	}
	if y < 0 {
		y = 0
	}

	const scale = 1.0 / 255.0
	i := 3 * (y*t.Width + x)
	return core.NewVec3(float64(t.Pixels[i])*scale, float64(t.Pixels[i+1])*scale, float64(t.Pixels[i+2])*scale)
}
