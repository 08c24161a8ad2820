package transfer

import (
	"fmt"
	"math"
	"math/rand/v2"
)

var _ = fmt.Print

// NormalSource produces samples from the standard normal distribution.
// *rand.Rand from math/rand/v2 satisfies it.
type NormalSource interface {
	NormFloat64() float64
}

// NewRand returns a deterministic generator for the given seed.
func NewRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// Direction is a unit vector in RGB space.
type Direction [3]float32

// RandomDirection draws a direction uniformly distributed on the unit sphere
// by normalising three independent standard normal samples. A sample whose
// norm is (almost) zero is not rejected; it produces a noisy or NaN direction.
func RandomDirection(src NormalSource) Direction {
	x, y, z := src.NormFloat64(), src.NormFloat64(), src.NormFloat64()
	n := math.Sqrt(x*x + y*y + z*z)
	return Direction{float32(x / n), float32(y / n), float32(z / n)}
}

func (d Direction) Norm() float64 {
	x, y, z := float64(d[0]), float64(d[1]), float64(d[2])
	return math.Sqrt(x*x + y*y + z*z)
}

func (d Direction) String() string {
	return fmt.Sprintf("Direction{%.4f %.4f %.4f}", d[0], d[1], d[2])
}
