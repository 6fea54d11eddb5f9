package core

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/synnergy-network/asset-universe/internal/testutil"
)

func TestSnapshotRoundTrip(t *testing.T) {
	sb, err := testutil.NewSandbox()
	require.NoError(t, err)
	defer sb.Cleanup()

	u, err := New(Config{Capacity: 64, Persistence: NewFilePersistence(sb.Root)})
	require.NoError(t, err)

	issuer := pkFrom(1)
	_, ownershipIdx, possessionIdx, err := u.IssueAsset(issuer, [7]byte{'Q'}, 2, [7]int8{'U'}, 777, 9)
	require.NoError(t, err)
	require.NoError(t, u.Snapshot())

	loaded, err := New(Config{Capacity: 64, Persistence: NewFilePersistence(sb.Root)})
	require.NoError(t, err)
	require.NoError(t, loaded.LoadSnapshot(0))

	require.Equal(t, u.Slot(ownershipIdx), loaded.Slot(ownershipIdx))
	require.Equal(t, u.Slot(possessionIdx), loaded.Slot(possessionIdx))
	require.Equal(t, u.Digest(), loaded.Digest())
}

func TestSnapshotNameEncodesEpochInLastThreeDigits(t *testing.T) {
	require.Equal(t, "universe.000", SnapshotName(0))
	require.Equal(t, "universe.007", SnapshotName(7))
	require.Equal(t, "universe.123", SnapshotName(1123))
}

func TestLoadSnapshotRejectsWrongSize(t *testing.T) {
	sb, err := testutil.NewSandbox()
	require.NoError(t, err)
	defer sb.Cleanup()

	require.NoError(t, sb.WriteFile("universe.000", []byte("too short"), 0o600))

	u, err := New(Config{Capacity: 64, Persistence: NewFilePersistence(sb.Root)})
	require.NoError(t, err)

	err = u.LoadSnapshot(0)
	require.ErrorIs(t, err, ErrSnapshotSizeMismatch)
}
