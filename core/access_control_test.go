package core

import (
	"encoding/json"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/synnergy-network/asset-universe/internal/testutil"
)

func TestAccessControllerGrantRevokeHasRole(t *testing.T) {
	ac := NewAccessController()
	pk := pkFrom(1)

	require.False(t, ac.HasRole(pk, "issuer"))
	require.NoError(t, ac.GrantRole(pk, "issuer"))
	require.True(t, ac.HasRole(pk, "issuer"))

	err := ac.GrantRole(pk, "issuer")
	require.Error(t, err)

	require.NoError(t, ac.RevokeRole(pk, "issuer"))
	require.False(t, ac.HasRole(pk, "issuer"))

	err = ac.RevokeRole(pk, "issuer")
	require.Error(t, err)
}

func TestAccessControllerListRoles(t *testing.T) {
	ac := NewAccessController()
	pk := pkFrom(1)
	require.NoError(t, ac.GrantRole(pk, "issuer"))
	require.NoError(t, ac.GrantRole(pk, "transferer"))

	roles := ac.ListRoles(pk)
	require.ElementsMatch(t, []string{"issuer", "transferer"}, roles)
}

func TestAccessControllerSavePersistsRoles(t *testing.T) {
	sb, err := testutil.NewSandbox()
	require.NoError(t, err)
	defer sb.Cleanup()

	ac := NewAccessController()
	pk := pkFrom(1)
	require.NoError(t, ac.GrantRole(pk, "issuer"))

	p := NewFilePersistence(sb.Root)
	require.NoError(t, ac.Save(p))

	data, err := sb.ReadFile(accessControlSnapshotName)
	require.NoError(t, err)

	var flat map[string][]string
	require.NoError(t, json.Unmarshal(data, &flat))
	require.Contains(t, flat, fmt.Sprintf("%x", pk))
}
