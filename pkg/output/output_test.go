package output

import (
	"bytes"
	"image"
	"image/png"
	"path/filepath"
	"testing"

	"github.com/klauspost/compress/zstd"
	"github.com/pkg/errors"

	"github.com/df07/go-pathtracer/pkg/core"
)

func TestEncodePNG(t *testing.T) {
	// 2x1 image: red then blue
	pixels := []byte{255, 0, 0, 0, 0, 255}

	var buf bytes.Buffer
	if err := EncodePNG(&buf, pixels, 2, 1); err != nil {
		t.Fatalf("EncodePNG failed: %v", err)
	}

	img, err := png.Decode(&buf)
	if err != nil {
		t.Fatalf("Failed to decode PNG: %v", err)
	}
	if img.Bounds() != image.Rect(0, 0, 2, 1) {
		t.Fatalf("Unexpected bounds %v", img.Bounds())
	}
	r, g, b, a := img.At(0, 0).RGBA()
	if r>>8 != 255 || g != 0 || b != 0 || a>>8 != 255 {
		t.Errorf("Expected opaque red at (0,0), got %d %d %d %d", r, g, b, a)
	}
	r, g, b, _ = img.At(1, 0).RGBA()
	if r != 0 || g != 0 || b>>8 != 255 {
		t.Errorf("Expected blue at (1,0), got %d %d %d", r, g, b)
	}
}

func TestEncodePNGBufferSize(t *testing.T) {
	tests := []struct {
		name          string
		pixels        []byte
		width, height int
	}{
		{"short buffer", make([]byte, 5), 2, 1},
		{"long buffer", make([]byte, 7), 2, 1},
		{"zero width", nil, 0, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := EncodePNG(&bytes.Buffer{}, tt.pixels, tt.width, tt.height)
			if errors.Cause(err) != ErrBufferSize {
				t.Errorf("Expected ErrBufferSize, got %v", err)
			}
		})
	}
}

func TestWritePNG(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.png")
	if err := WritePNG(path, make([]byte, 3*4*3), 4, 3); err != nil {
		t.Fatalf("WritePNG failed: %v", err)
	}
	if err := WritePNG(filepath.Join(t.TempDir(), "missing", "out.png"), make([]byte, 3), 1, 1); err == nil {
		t.Error("Expected error for an unwritable path")
	}
}

func TestRadianceRoundTrip(t *testing.T) {
	radiance := []core.Vec3{
		core.NewVec3(0, 0, 0),
		core.NewVec3(0.5, 0.25, 0.125),
		core.NewVec3(15, 15, 15),
		core.NewVec3(1.0/1024, 2, 1024),
		core.NewVec3(3, 2, 1),
		core.NewVec3(0.75, 0, 8),
	}

	path := filepath.Join(t.TempDir(), "film.ptr.zst")
	if err := WriteRadiance(path, radiance, 3, 2); err != nil {
		t.Fatalf("WriteRadiance failed: %v", err)
	}
	got, width, height, err := ReadRadiance(path)
	if err != nil {
		t.Fatalf("ReadRadiance failed: %v", err)
	}
	if width != 3 || height != 2 {
		t.Fatalf("Expected 3x2, got %dx%d", width, height)
	}
	// Every value above is exact in float32
	for i := range radiance {
		if got[i] != radiance[i] {
			t.Errorf("Pixel %d: expected %v, got %v", i, radiance[i], got[i])
		}
	}
}

func compressed(t *testing.T, data []byte) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	stream, err := zstd.NewWriter(&buf)
	if err != nil {
		t.Fatalf("Failed to create zstd stream: %v", err)
	}
	if _, err := stream.Write(data); err != nil {
		t.Fatalf("Failed to compress: %v", err)
	}
	if err := stream.Close(); err != nil {
		t.Fatalf("Failed to finish zstd stream: %v", err)
	}
	return &buf
}

func TestDecodeRadianceRejectsOtherData(t *testing.T) {
	tests := []struct {
		name string
		data []byte
	}{
		{"wrong magic", []byte("PNG?\x01\x00\x00\x00\x01\x00\x00\x00")},
		{"short header", []byte("PTR1\x01")},
		{"missing pixels", append([]byte("PTR1\x02\x00\x00\x00\x02\x00\x00\x00"), make([]byte, 12*3)...)},
		{"zero width", append([]byte("PTR1\x00\x00\x00\x00\x02\x00\x00\x00"), make([]byte, 12)...)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, _, err := DecodeRadiance(compressed(t, tt.data))
			if errors.Cause(err) != ErrBadRadiance {
				t.Errorf("Expected ErrBadRadiance, got %v", err)
			}
		})
	}

	if err := EncodeRadiance(&bytes.Buffer{}, make([]core.Vec3, 3), 2, 2); errors.Cause(err) != ErrBufferSize {
		t.Errorf("Expected ErrBufferSize, got %v", err)
	}
}
