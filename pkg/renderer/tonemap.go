package renderer

import (
	"math"

	"github.com/df07/go-pathtracer/pkg/core"
)

const (
	minRadiance = 1e-4
	gamma       = 2.2
)

// ToneMap converts an averaged radiance value to 8-bit RGB. Each channel is
// the gamma corrected mean of the color scaled down by its brightest channel
// and the color clamped just below one, so overexposed areas keep their hue.
func ToneMap(color core.Vec3) [3]byte {
	color = color.Max(core.NewVec3(minRadiance, minRadiance, minRadiance))
	mul := math.Min(1, 1/color.MaxComponent())

	return [3]byte{
		toneMapChannel(color.X, mul),
		toneMapChannel(color.Y, mul),
		toneMapChannel(color.Z, mul),
	}
}

func toneMapChannel(c, mul float64) byte {
	return byte(math.Pow(0.5*(mul*c+math.Min(0.999, c)), 1/gamma) * 256)
}
