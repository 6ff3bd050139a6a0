package closer

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCloserLIFOOrder(t *testing.T) {
	c := NewCloser(time.Second)

	var order []int
	for i := 1; i <= 3; i++ {
		i := i
		c.Add(func(ctx context.Context) error {
			order = append(order, i)
			return nil
		})
	}

	require.NoError(t, c.Close(context.Background()))
	assert.Equal(t, []int{3, 2, 1}, order)
}

func TestCloserCollectsErrors(t *testing.T) {
	c := NewCloser(time.Second)

	c.Add(func(ctx context.Context) error { return nil })
	c.Add(func(ctx context.Context) error { return assert.AnError })

	err := c.Close(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), assert.AnError.Error())
}

func TestCloserIdempotent(t *testing.T) {
	c := NewCloser(time.Second)

	calls := 0
	c.Add(func(ctx context.Context) error {
		calls++
		return nil
	})

	require.NoError(t, c.Close(context.Background()))
	require.NoError(t, c.Close(context.Background()))
	assert.Equal(t, 1, calls)
}

func TestCloserForcedCloseOnTimeout(t *testing.T) {
	c := NewCloser(2 * time.Second)

	c.Add(func(ctx context.Context) error {
		time.Sleep(200 * time.Millisecond)
		return nil
	})

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	err := c.Close(ctx)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "shutdown interrupted")
}
