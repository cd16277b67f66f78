package spemath

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnvSetGet(t *testing.T) {
	env := NewEnv()
	_, ok := env.Get("x")
	assert.False(t, ok)

	env.Set("x", Number(1))
	v, ok := env.Get("x")
	require.True(t, ok)
	assert.Equal(t, Number(1), v)

	// Latest write wins.
	env.Set("x", Number(2))
	v, _ = env.Get("x")
	assert.Equal(t, Number(2), v)
	assert.Equal(t, 1, env.Len())
}

func TestEnvCloneIsolation(t *testing.T) {
	env := NewEnv()
	env.Set("x", Number(1))

	snap := env.Clone()

	// Writes on either side are invisible to the other.
	snap.Set("y", Number(2))
	env.Set("z", Number(3))

	_, ok := env.Get("y")
	assert.False(t, ok)
	_, ok = snap.Get("z")
	assert.False(t, ok)

	// The shared prefix is intact on both.
	v, ok := snap.Get("x")
	require.True(t, ok)
	assert.Equal(t, Number(1), v)

	snap.Set("x", Number(9))
	v, _ = env.Get("x")
	assert.Equal(t, Number(1), v)
}
