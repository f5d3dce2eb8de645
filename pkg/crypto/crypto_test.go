package crypto

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRandFloat64(t *testing.T) {
	for i := 0; i < 10000; i++ {
		v := RandFloat64()
		require.GreaterOrEqual(t, v, 0.0)
		require.Less(t, v, 1.0)
	}
}

func TestGenerateRandomString(t *testing.T) {
	s1, err := GenerateRandomString()
	require.NoError(t, err)
	s2, err := GenerateRandomString()
	require.NoError(t, err)
	require.NotEmpty(t, s1)
	require.NotEqual(t, s1, s2)
}
