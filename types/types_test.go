package types

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

var _ = fmt.Print

func TestFormat(t *testing.T) {
	require.Equal(t, "JPEG", FormatExts["jpeg"].String())
	require.Equal(t, "", UNKNOWN.String())
	for ext, f := range FormatExts {
		if f == WEBP {
			require.False(t, f.CanEncode(), ext)
		} else {
			require.True(t, f.CanEncode(), ext)
		}
	}
}
