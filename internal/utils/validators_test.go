package utils

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestIsValidEmail(t *testing.T) {
	require.True(t, IsValidEmail("someone@example.com"))
	require.False(t, IsValidEmail("someone"))
	require.False(t, IsValidEmail("@example.com"))
	require.False(t, IsValidEmail("someone@"))
	require.False(t, IsValidEmail("someone@example"))
}

func TestIsComplexPassword(t *testing.T) {
	require.True(t, IsComplexPassword("Str0ng!pass"))
	require.False(t, IsComplexPassword("short1!"))
	require.False(t, IsComplexPassword("alllowercase1!"))
	require.False(t, IsComplexPassword("ALLUPPERCASE1!"))
	require.False(t, IsComplexPassword("NoNumbers!!"))
	require.False(t, IsComplexPassword("NoSpecials11"))
}
