package output

import (
	"bufio"
	"encoding/binary"
	"io"
	"math"
	"os"

	"github.com/klauspost/compress/zstd"
	"github.com/pkg/errors"

	"github.com/df07/go-pathtracer/pkg/core"
)

// radianceMagic starts every radiance dump
var radianceMagic = [4]byte{'P', 'T', 'R', '1'}

// ErrBadRadiance is returned when a radiance dump cannot be decoded.
var ErrBadRadiance = errors.New("output: not a radiance dump")

// EncodeRadiance writes linear radiance as a zstd compressed stream: the
// magic bytes, width and height as little-endian uint32, then one
// little-endian float32 triple per pixel in buffer order.
func EncodeRadiance(w io.Writer, radiance []core.Vec3, width, height int) error {
	if width <= 0 || height <= 0 || len(radiance) != width*height {
		return errors.Wrapf(ErrBufferSize, "%d pixels for %dx%d", len(radiance), width, height)
	}

	stream, err := zstd.NewWriter(w)
	if err != nil {
		return errors.Wrap(err, "failed to create zstd stream")
	}
	buffered := bufio.NewWriter(stream)

	header := make([]byte, 12)
	copy(header, radianceMagic[:])
	binary.LittleEndian.PutUint32(header[4:], uint32(width))
	binary.LittleEndian.PutUint32(header[8:], uint32(height))
	if _, err := buffered.Write(header); err != nil {
		stream.Close()
		return errors.Wrap(err, "failed to write radiance header")
	}

	var pixel [12]byte
	for _, c := range radiance {
		binary.LittleEndian.PutUint32(pixel[0:], math.Float32bits(float32(c.X)))
		binary.LittleEndian.PutUint32(pixel[4:], math.Float32bits(float32(c.Y)))
		binary.LittleEndian.PutUint32(pixel[8:], math.Float32bits(float32(c.Z)))
		if _, err := buffered.Write(pixel[:]); err != nil {
			stream.Close()
			return errors.Wrap(err, "failed to write radiance")
		}
	}

	if err := buffered.Flush(); err != nil {
		stream.Close()
		return errors.Wrap(err, "failed to write radiance")
	}
	return errors.Wrap(stream.Close(), "failed to finish zstd stream")
}

// DecodeRadiance reads a stream written by EncodeRadiance
func DecodeRadiance(r io.Reader) ([]core.Vec3, int, int, error) {
	stream, err := zstd.NewReader(r)
	if err != nil {
		return nil, 0, 0, errors.Wrap(err, "failed to open zstd stream")
	}
	defer stream.Close()

	header := make([]byte, 12)
	if _, err := io.ReadFull(stream, header); err != nil {
		return nil, 0, 0, errors.Wrap(ErrBadRadiance, err.Error())
	}
	if [4]byte(header[:4]) != radianceMagic {
		return nil, 0, 0, errors.Wrapf(ErrBadRadiance, "magic %q", header[:4])
	}
	width := int(binary.LittleEndian.Uint32(header[4:]))
	height := int(binary.LittleEndian.Uint32(header[8:]))

	payload, err := io.ReadAll(stream)
	if err != nil {
		return nil, 0, 0, errors.Wrap(err, "failed to read radiance")
	}
	n := len(payload) / 12
	if len(payload)%12 != 0 || width == 0 || n%width != 0 || n/width != height {
		return nil, 0, 0, errors.Wrapf(ErrBadRadiance, "%d bytes of radiance for %dx%d", len(payload), width, height)
	}

	radiance := make([]core.Vec3, width*height)
	for i := range radiance {
		p := payload[12*i:]
		radiance[i] = core.NewVec3(
			float64(math.Float32frombits(binary.LittleEndian.Uint32(p[0:]))),
			float64(math.Float32frombits(binary.LittleEndian.Uint32(p[4:]))),
			float64(math.Float32frombits(binary.LittleEndian.Uint32(p[8:]))),
		)
	}
	return radiance, width, height, nil
}

// WriteRadiance writes a radiance dump to filename
func WriteRadiance(filename string, radiance []core.Vec3, width, height int) error {
	file, err := os.Create(filename)
	if err != nil {
		return errors.Wrap(err, "failed to create radiance file")
	}

	if err := EncodeRadiance(file, radiance, width, height); err != nil {
		file.Close()
		return err
	}
	return errors.Wrap(file.Close(), "failed to close radiance file")
}

// ReadRadiance reads a radiance dump from filename
func ReadRadiance(filename string) ([]core.Vec3, int, int, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, 0, 0, errors.Wrap(err, "failed to open radiance file")
	}
	defer file.Close()
	return DecodeRadiance(file)
}
