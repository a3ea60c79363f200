package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStrToInt64(t *testing.T) {
	n, err := StrToInt64("42")
	require.NoError(t, err)
	assert.EqualValues(t, 42, n)

	n, err = StrToInt64("-7")
	require.NoError(t, err)
	assert.EqualValues(t, -7, n)

	for _, bad := range []string{"", "abc", "12.5", "9223372036854775808"} {
		_, err := StrToInt64(bad)
		assert.Error(t, err, "input %q must not parse", bad)
	}
}
