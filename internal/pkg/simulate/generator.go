// Package simulate produces the synthetic sensor signal: a bounded,
// mean-reverting random walk per channel.
package simulate

import (
	"math/rand"

	"github.com/sensorscope/sensorscope/internal/pkg/constants"
)

// Generator produces successive values for one channel. The randomness
// source is injected so tests can drive the walk deterministically.
type Generator struct {
	rng *rand.Rand
}

// NewGenerator creates a generator backed by the given randomness source.
func NewGenerator(rng *rand.Rand) *Generator {
	return &Generator{rng: rng}
}

// Next derives the next value from the previous one: a uniform step in
// [-2.5, +2.5], pulled back toward the seed value, clamped to [0, 120].
// It is a pure function of last and one random draw.
func (g *Generator) Next(last float64) float64 {
	step := (g.rng.Float64()*2 - 1) * constants.GeneratorStepRange
	next := last + step - constants.GeneratorReversion*(last-constants.GeneratorSeedValue)
	return clamp(next, constants.GeneratorMin, constants.GeneratorMax)
}

// Seed returns the value an empty channel starts from.
func Seed() float64 {
	return constants.GeneratorSeedValue
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
