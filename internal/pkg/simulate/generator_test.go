package simulate

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGenerator_StaysInBounds(t *testing.T) {
	g := NewGenerator(rand.New(rand.NewSource(1)))

	for _, start := range []float64{0, 1, 50, 119, 120} {
		v := start
		for i := 0; i < 10000; i++ {
			v = g.Next(v)
			assert.GreaterOrEqual(t, v, 0.0)
			assert.LessOrEqual(t, v, 120.0)
		}
	}
}

func TestGenerator_MeanReversion(t *testing.T) {
	// With the step bounded at +-2.5 and reversion at 0.1, any value far
	// from 50 must move toward 50 regardless of the draw.
	g := NewGenerator(rand.New(rand.NewSource(7)))

	for i := 0; i < 1000; i++ {
		next := g.Next(120)
		assert.Less(t, next, 120.0, "walk at the top must fall")

		next = g.Next(0)
		assert.Greater(t, next, 0.0, "walk at the bottom must rise")
	}
}

func TestGenerator_Deterministic(t *testing.T) {
	a := NewGenerator(rand.New(rand.NewSource(42)))
	b := NewGenerator(rand.New(rand.NewSource(42)))

	va, vb := Seed(), Seed()
	for i := 0; i < 100; i++ {
		va = a.Next(va)
		vb = b.Next(vb)
		assert.Equal(t, va, vb)
	}
}

func TestSeed(t *testing.T) {
	assert.Equal(t, 50.0, Seed())
}
