package recommend

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/libraria-tech/go-backend/pkg/e"
)

func TestCentroid(t *testing.T) {
	t.Run("empty input", func(t *testing.T) {
		_, err := Centroid(nil)
		assert.ErrorIs(t, err, e.ErrEmptyCentroidInput)

		_, err = Centroid([][]float32{})
		assert.ErrorIs(t, err, e.ErrEmptyCentroidInput)
	})

	t.Run("single vector is identity", func(t *testing.T) {
		v := []float32{0.1, -2.5, 3}

		got, err := Centroid([][]float32{v})
		require.NoError(t, err)
		assert.Equal(t, v, got)
	})

	t.Run("element-wise mean", func(t *testing.T) {
		got, err := Centroid([][]float32{
			{1, 0},
			{0, 1},
		})
		require.NoError(t, err)
		assert.Equal(t, []float32{0.5, 0.5}, got)
	})

	t.Run("mixed dimensions", func(t *testing.T) {
		_, err := Centroid([][]float32{
			{1, 2, 3},
			{1, 2},
		})
		assert.ErrorIs(t, err, e.ErrVectorDimension)
	})

	t.Run("zero-length vectors", func(t *testing.T) {
		_, err := Centroid([][]float32{{}})
		assert.ErrorIs(t, err, e.ErrEmptyVector)
	})
}

func TestL2Distance(t *testing.T) {
	t.Run("identical vectors", func(t *testing.T) {
		d, err := L2Distance([]float32{1, 2, 3}, []float32{1, 2, 3})
		require.NoError(t, err)
		assert.Zero(t, d)
	})

	t.Run("pythagorean triple", func(t *testing.T) {
		d, err := L2Distance([]float32{0, 0}, []float32{3, 4})
		require.NoError(t, err)
		assert.InDelta(t, 5.0, d, 1e-9)
	})

	t.Run("dimension mismatch", func(t *testing.T) {
		_, err := L2Distance([]float32{1}, []float32{1, 2})
		assert.ErrorIs(t, err, e.ErrVectorDimension)
	})
}

func TestRankNearest(t *testing.T) {
	query := []float32{0, 0}

	t.Run("ascending by distance", func(t *testing.T) {
		got := RankNearest(query, map[int64][]float32{
			1: {3, 4}, // 5
			2: {1, 0}, // 1
			3: {0, 2}, // 2
		}, 5)

		require.Len(t, got, 3)
		assert.Equal(t, int64(2), got[0].BookID)
		assert.Equal(t, int64(3), got[1].BookID)
		assert.Equal(t, int64(1), got[2].BookID)
	})

	t.Run("ties broken by smaller id", func(t *testing.T) {
		got := RankNearest(query, map[int64][]float32{
			7: {1, 0},
			2: {0, 1},
			5: {-1, 0},
		}, 5)

		require.Len(t, got, 3)
		assert.Equal(t, int64(2), got[0].BookID)
		assert.Equal(t, int64(5), got[1].BookID)
		assert.Equal(t, int64(7), got[2].BookID)
	})

	t.Run("truncated to k", func(t *testing.T) {
		candidates := map[int64][]float32{}
		for i := int64(1); i <= 10; i++ {
			candidates[i] = []float32{float32(i), 0}
		}

		got := RankNearest(query, candidates, 5)

		require.Len(t, got, 5)
		assert.Equal(t, int64(1), got[0].BookID)
		assert.Equal(t, int64(5), got[4].BookID)
	})

	t.Run("non-positive k", func(t *testing.T) {
		got := RankNearest(query, map[int64][]float32{1: {1, 0}}, 0)
		assert.Empty(t, got)
	})

	t.Run("mismatched candidates skipped", func(t *testing.T) {
		got := RankNearest(query, map[int64][]float32{
			1: {1, 0, 0},
			2: {1, 0},
		}, 5)

		require.Len(t, got, 1)
		assert.Equal(t, int64(2), got[0].BookID)
	})

	t.Run("no candidates", func(t *testing.T) {
		got := RankNearest(query, map[int64][]float32{}, 5)
		assert.Empty(t, got)
	})
}
