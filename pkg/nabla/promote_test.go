package nabla

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCanPromote(t *testing.T) {
	r := stdRegistry(t)
	assert.True(t, r.CanPromote("ℕ", "ℂ"))
	assert.True(t, r.CanPromote("ℤ", "ℝ"))
	assert.True(t, r.CanPromote("ℝ", "ℝ"))
	assert.False(t, r.CanPromote("ℂ", "ℝ"))
	assert.False(t, r.CanPromote("Bool", "ℝ"))
}

func TestLiftChain(t *testing.T) {
	r := stdRegistry(t)
	assert.Equal(t, []string{"ℤ", "ℚ", "ℝ", "ℂ"}, r.LiftChain("ℤ", "ℂ"))
	assert.Equal(t, []string{"ℝ"}, r.LiftChain("ℝ", "ℝ"))
	assert.Nil(t, r.LiftChain("ℂ", "ℕ"))
}

func TestCommonSupertype(t *testing.T) {
	r := stdRegistry(t)

	meet, ok := r.CommonSupertype("ℤ", "ℝ")
	require.True(t, ok)
	assert.Equal(t, "ℝ", meet)

	meet, ok = r.CommonSupertype("ℝ", "ℤ")
	require.True(t, ok)
	assert.Equal(t, "ℝ", meet)

	meet, ok = r.CommonSupertype("ℕ", "ℕ")
	require.True(t, ok)
	assert.Equal(t, "ℕ", meet)

	meet, ok = r.CommonSupertype("ℚ", "ℂ")
	require.True(t, ok)
	assert.Equal(t, "ℂ", meet)

	_, ok = r.CommonSupertype("Bool", "ℝ")
	assert.False(t, ok)
}
