package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeEmail(t *testing.T) {
	got, err := NormalizeEmail("  Visitor@Example.COM ")
	require.NoError(t, err)
	assert.Equal(t, "visitor@example.com", got)

	for _, bad := range []string{"", "   ", "nope", "a@b", "Visitor <v@example.com>", "two@@example.com"} {
		_, err := NormalizeEmail(bad)
		assert.ErrorIs(t, err, ErrInvalidEmail, "input %q", bad)
	}
}
