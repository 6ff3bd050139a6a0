package tokens

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/libraria-tech/go-backend/pkg/e"
)

func TestManagerRoundTrip(t *testing.T) {
	m := NewManager("test-secret", 15*time.Minute, 24*time.Hour)

	pair, err := m.NewPair(42, time.Now())
	require.NoError(t, err)
	require.NotEmpty(t, pair.Access)
	require.NotEmpty(t, pair.Refresh)

	userID, err := m.Parse(pair.Access)
	require.NoError(t, err)
	assert.Equal(t, int64(42), userID)

	userID, err = m.Parse(pair.Refresh)
	require.NoError(t, err)
	assert.Equal(t, int64(42), userID)
}

func TestManagerParseWrongSecret(t *testing.T) {
	issuer := NewManager("secret-a", 15*time.Minute, 24*time.Hour)
	verifier := NewManager("secret-b", 15*time.Minute, 24*time.Hour)

	pair, err := issuer.NewPair(7, time.Now())
	require.NoError(t, err)

	_, err = verifier.Parse(pair.Access)
	assert.ErrorIs(t, err, e.ErrUnauthorized)
}

func TestManagerParseExpired(t *testing.T) {
	m := NewManager("test-secret", 15*time.Minute, 24*time.Hour)

	pair, err := m.NewPair(7, time.Now().Add(-48*time.Hour))
	require.NoError(t, err)

	_, err = m.Parse(pair.Access)
	assert.ErrorIs(t, err, e.ErrUnauthorized)
}

func TestManagerParseGarbage(t *testing.T) {
	m := NewManager("test-secret", 15*time.Minute, 24*time.Hour)

	_, err := m.Parse("not-a-token")
	assert.ErrorIs(t, err, e.ErrUnauthorized)
}
