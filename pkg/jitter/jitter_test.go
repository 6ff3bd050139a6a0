package jitter

import (
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDuration(t *testing.T) {
	base := time.Second

	for i := 0; i < 100; i++ {
		d := Duration(base, DefaultJitter)
		assert.GreaterOrEqual(t, d, base)
		assert.LessOrEqual(t, d, base+base/2)
	}
}

func TestDurationWithSeed(t *testing.T) {
	base := time.Second

	a := DurationWithSeed(base, DefaultJitter, rand.New(rand.NewSource(42)))
	b := DurationWithSeed(base, DefaultJitter, rand.New(rand.NewSource(42)))

	assert.Equal(t, a, b, "same seed must give the same jitter")
}

func TestDurationZeroFactor(t *testing.T) {
	assert.Equal(t, time.Second, Duration(time.Second, 0))
}

func TestExponentialBackoff(t *testing.T) {
	base := time.Second
	max := 10 * time.Second

	// attempt 0 — база без удвоений
	d := ExponentialBackoff(base, max, 0, 0)
	assert.Equal(t, base, d)

	// attempt 2 — база, удвоенная дважды
	d = ExponentialBackoff(base, max, 2, 0)
	assert.Equal(t, 4*time.Second, d)

	// большой attempt упирается в потолок
	d = ExponentialBackoff(base, max, 30, 0)
	assert.Equal(t, max, d)
}
