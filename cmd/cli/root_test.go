package cli

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParsePublicKeyRoundTrip(t *testing.T) {
	hexKey := strings.Repeat("ab", 32)
	pk, err := parsePublicKey(hexKey)
	require.NoError(t, err)
	require.Equal(t, byte(0xab), pk[0])
	require.Equal(t, byte(0xab), pk[31])
}

func TestParsePublicKeyRejectsWrongLength(t *testing.T) {
	_, err := parsePublicKey("abcd")
	require.Error(t, err)
}

func TestParsePublicKeyRejectsInvalidHex(t *testing.T) {
	_, err := parsePublicKey("not-hex-at-all-xx")
	require.Error(t, err)
}

func TestCapacityDefaultsToZeroWhenUnset(t *testing.T) {
	t.Setenv("UNIVERSE_CAPACITY_SHIFT", "")
	require.EqualValues(t, 0, capacity())
}

func TestCapacityHonoursShiftEnv(t *testing.T) {
	t.Setenv("UNIVERSE_CAPACITY_SHIFT", "6")
	require.EqualValues(t, 64, capacity())
}
