package material

import (
	"math"
	"math/rand"

	"github.com/df07/go-pathtracer/pkg/core"
)

const noiseSize = 1 << 8

// Noise is a marble-like gray texture: a sine along Z phase-shifted by
// six octaves of gradient noise turbulence.
type Noise struct {
	Scale    float64
	gradient [noiseSize]core.Vec3
	perms    [2][noiseSize]int
}

// NewNoise creates a noise texture. The gradient table and permutations are
// drawn from a stream seeded by seed, so equal seeds give equal textures.
func NewNoise(scale float64, seed int64) *Noise {
	random := rand.New(rand.NewSource(seed))
	sampler := core.NewRandomSampler(random)

	n := &Noise{Scale: scale}
	for i := range n.gradient {
		n.gradient[i] = core.SampleOnUnitSphere(sampler.Get2D())
	}
	for p := range n.perms {
		copy(n.perms[p][:], random.Perm(noiseSize))
	}
	return n
}

// Evaluate implements Texture
func (n *Noise) Evaluate(uv core.Vec2, point core.Vec3) core.Vec3 {
	gray := n.turbulence(point, 6)
	value := 0.5 * (1 + math.Sin(n.Scale*point.Z+8*gray))
	return core.NewVec3(value, value, value)
}

func (n *Noise) turbulence(p core.Vec3, depth int) float64 {
	gray, freq, weight := 0.0, n.Scale, 1.0
	for d := 0; d < depth; d++ {
		gray += weight * n.noise(p.Multiply(freq))
		freq *= 2
		weight *= 0.5
	}
	return gray
}

func (n *Noise) noise(p core.Vec3) float64 {
	const mask = noiseSize - 1

	fi, fj, fk := math.Floor(p.X), math.Floor(p.Y), math.Floor(p.Z)
	u, v, w := p.X-fi, p.Y-fj, p.Z-fk
	i, j, k := int(fi), int(fj), int(fk)

	// Hermite smoothing of the cell coordinates
	su := u * u * (3 - 2*u)
	sv := v * v * (3 - 2*v)
	sw := w * w * (3 - 2*w)

	is := [2]int{i & mask, (i + 1) & mask}
	js := [2]int{n.perms[0][j&mask], n.perms[0][(j+1)&mask]}
	ks := [2]int{n.perms[1][k&mask], n.perms[1][(k+1)&mask]}

	sum := 0.0
	for a := 0; a < 2; a++ {
		for b := 0; b < 2; b++ {
			for c := 0; c < 2; c++ {
				g := n.gradient[is[a]^js[b]^ks[c]]
				offset := core.NewVec3(u-float64(a), v-float64(b), w-float64(c))
				weight := lerpWeight(su, a) * lerpWeight(sv, b) * lerpWeight(sw, c)
				sum += weight * g.Dot(offset)
			}
		}
	}
	return sum
}

func lerpWeight(t float64, corner int) float64 {
	if corner == 0 {
		return 1 - t
	}
	return t
}
