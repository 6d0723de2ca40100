package shor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTarget(t *testing.T) {
	n, err := ParseTarget(" 21 ")
	require.NoError(t, err)
	assert.Equal(t, int64(21), n.Int64())

	n, err = ParseTarget("340282366920938463463374607431768211457")
	require.NoError(t, err)
	assert.Equal(t, "340282366920938463463374607431768211457", n.String())
}

func TestParseTargetRejects(t *testing.T) {
	for _, s := range []string{"", "abc", "1.5", "0x15", "1", "0", "-7", "15a"} {
		_, err := ParseTarget(s)
		assert.ErrorIs(t, err, ErrInvalidInput, "input %q", s)
	}
}
