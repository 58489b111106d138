package output

import (
	"image"
	"image/png"
	"io"
	"os"

	"github.com/pkg/errors"
)

// ErrBufferSize is returned when a pixel buffer does not match the image size.
var ErrBufferSize = errors.New("output: buffer does not match image size")

// EncodePNG writes a packed 8-bit RGB buffer, top row first, as a PNG image
func EncodePNG(w io.Writer, pixels []byte, width, height int) error {
	if width <= 0 || height <= 0 || len(pixels) != 3*width*height {
		return errors.Wrapf(ErrBufferSize, "%d bytes for %dx%d RGB", len(pixels), width, height)
	}

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for i := 0; i < width*height; i++ {
		copy(img.Pix[4*i:4*i+3], pixels[3*i:3*i+3])
		img.Pix[4*i+3] = 255
	}
	return errors.Wrap(png.Encode(w, img), "failed to encode PNG")
}

// WritePNG writes a packed 8-bit RGB buffer to a PNG file
func WritePNG(filename string, pixels []byte, width, height int) error {
	file, err := os.Create(filename)
	if err != nil {
		return errors.Wrap(err, "failed to create output file")
	}

	if err := EncodePNG(file, pixels, width, height); err != nil {
		file.Close()
		return err
	}
	return errors.Wrap(file.Close(), "failed to close output file")
}
