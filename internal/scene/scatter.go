package scene

import (
	"math"

	perlin "github.com/aquilax/go-perlin"
	"github.com/go-gl/mathgl/mgl32"
)

// Perlin parameters shared by every scatter: smooth, low-detail noise.
const (
	noiseAlpha  = 2
	noiseBeta   = 2
	noiseOctave = 3

	// jitterOffset moves the jitter samples away from the density samples
	// so the two fields are uncorrelated.
	jitterOffset = 1000.5
)

// Placement is one scattered box, resting on the ground.
type Placement struct {
	X, Z float32
	Size float32
}

// Circle is an area of the ground, on x and z, that must stay free of boxes.
type Circle struct {
	X, Z   float32
	Radius float32
}

func (c Circle) overlaps(x, z, half float32) bool {
	dx, dz := x-c.X, z-c.Z
	reach := c.Radius + half*math.Sqrt2
	return dx*dx+dz*dz < reach*reach
}

// Scatter samples the ground on a grid of forest.Cell and places a box in
// every cell whose noise exceeds forest.Threshold. The same seed always
// yields the same placements. Boxes stay fully on the ground, outside
// forest.Clearing around spawn (x, z) and outside any keepout circle.
func Scatter(forest ForestSpec, ground GroundSpec, seed int64, spawn mgl32.Vec2, keepout ...Circle) []Placement {
	if !forest.Enabled || forest.Cell <= 0 {
		return nil
	}

	p := perlin.NewPerlin(noiseAlpha, noiseBeta, noiseOctave, seed)

	halfX, halfZ := ground.XLen/2, ground.ZLen/2
	cols := int(ground.XLen / forest.Cell)
	rows := int(ground.ZLen / forest.Cell)
	startX := -halfX + forest.Cell/2
	startZ := -halfZ + forest.Cell/2

	clearing := Circle{X: spawn.X(), Z: spawn.Y(), Radius: forest.Clearing}

	var placements []Placement
	for i := 0; i < cols; i++ {
		for j := 0; j < rows; j++ {
			cx := startX + float32(i)*forest.Cell
			cz := startZ + float32(j)*forest.Cell
			sx := float64(cx) * forest.Frequency
			sz := float64(cz) * forest.Frequency

			density := p.Noise2D(sx, sz)
			if density <= forest.Threshold {
				continue
			}

			size := forest.MinSize + float32(strength(density, forest.Threshold))*(forest.MaxSize-forest.MinSize)
			half := size / 2

			drift := forest.Jitter * forest.Cell / 2
			x := cx + float32(clampUnit(p.Noise2D(sx+jitterOffset, sz)))*drift
			z := cz + float32(clampUnit(p.Noise2D(sx, sz+jitterOffset)))*drift

			if abs32(x)+half > halfX || abs32(z)+half > halfZ {
				continue
			}
			if forest.Clearing > 0 && clearing.overlaps(x, z, half) {
				continue
			}
			if blocked(keepout, x, z, half) {
				continue
			}

			placements = append(placements, Placement{X: x, Z: z, Size: size})
		}
	}
	return placements
}

// strength maps noise above threshold onto 0..1.
func strength(density, threshold float64) float64 {
	if threshold >= 1 {
		return 1
	}
	return clamp01((density - threshold) / (1 - threshold))
}

func blocked(keepout []Circle, x, z, half float32) bool {
	for _, c := range keepout {
		if c.overlaps(x, z, half) {
			return true
		}
	}
	return false
}

func clamp01(v float64) float64 {
	return math.Max(0, math.Min(1, v))
}

func clampUnit(v float64) float64 {
	return math.Max(-1, math.Min(1, v))
}

func abs32(v float32) float32 {
	if v < 0 {
		return -v
	}
	return v
}
