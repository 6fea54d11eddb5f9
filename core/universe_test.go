package core

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func testUniverse(t *testing.T, capacity uint32) *Universe {
	t.Helper()
	u, err := New(Config{Capacity: capacity})
	require.NoError(t, err)
	return u
}

func pkFrom(b byte) PublicKey {
	var pk PublicKey
	pk[0] = b
	return pk
}

func TestNewRejectsNonPowerOfTwoCapacity(t *testing.T) {
	tests := []struct {
		name     string
		capacity uint32
	}{
		{"zero-plus-odd", 3},
		{"prime", 127},
		{"non-power", 1000},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := New(Config{Capacity: tc.capacity})
			require.ErrorIs(t, err, ErrCapacityNotPowerOfTwo)
		})
	}
}

func TestNewDefaultsToDefaultCapacity(t *testing.T) {
	u, err := New(Config{})
	require.NoError(t, err)
	require.EqualValues(t, DefaultCapacity, u.Capacity())
}

func TestNewInitialisesAllSlotsDirty(t *testing.T) {
	u := testUniverse(t, 64)
	for i := uint32(0); i < u.capacity; i++ {
		require.True(t, u.dirty.test(i), "slot %d should start dirty", i)
	}
}

func TestHomeIndexIsLowBitsModCapacity(t *testing.T) {
	var pk PublicKey
	pk[0] = 0x10 // low byte of the little-endian uint32
	mask := uint32(63)
	require.EqualValues(t, 0x10&int(mask), home(pk, mask))
}
