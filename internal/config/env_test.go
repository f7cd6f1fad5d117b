package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestGetEnv(t *testing.T) {
	t.Setenv("PROX_TEST_STR", "hello")
	require.Equal(t, "hello", GetEnv("PROX_TEST_STR", "fallback"))
	require.Equal(t, "fallback", GetEnv("PROX_TEST_STR_MISSING", "fallback"))
}

func TestGetEnvInt(t *testing.T) {
	t.Setenv("PROX_TEST_INT", "42")
	t.Setenv("PROX_TEST_INT_BAD", "forty-two")
	require.Equal(t, 42, GetEnvInt("PROX_TEST_INT", 7))
	require.Equal(t, 7, GetEnvInt("PROX_TEST_INT_BAD", 7))
	require.Equal(t, 7, GetEnvInt("PROX_TEST_INT_MISSING", 7))
}

func TestGetEnvFloat(t *testing.T) {
	t.Setenv("PROX_TEST_FLOAT", "2.5")
	require.Equal(t, 2.5, GetEnvFloat("PROX_TEST_FLOAT", 1.0))
	require.Equal(t, 1.0, GetEnvFloat("PROX_TEST_FLOAT_MISSING", 1.0))
}

func TestGetEnvDuration(t *testing.T) {
	t.Setenv("PROX_TEST_DUR", "150ms")
	t.Setenv("PROX_TEST_DUR_BAD", "soon")
	require.Equal(t, 150*time.Millisecond, GetEnvDuration("PROX_TEST_DUR", time.Second))
	require.Equal(t, time.Second, GetEnvDuration("PROX_TEST_DUR_BAD", time.Second))
}
