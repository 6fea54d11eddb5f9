package core

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// fakeInvocation is a minimal InvocationContext test double standing in
// for a real contract runtime, which sits outside this module's scope.
type fakeInvocation struct {
	invocator PublicKey
	reward    uint64
	refunds   map[PublicKey]uint64
}

func newFakeInvocation(invocator PublicKey, reward uint64) *fakeInvocation {
	return &fakeInvocation{invocator: invocator, reward: reward, refunds: make(map[PublicKey]uint64)}
}

func (f *fakeInvocation) Invocator() PublicKey      { return f.invocator }
func (f *fakeInvocation) InvocationReward() uint64  { return f.reward }
func (f *fakeInvocation) Transfer(to PublicKey, amount uint64) error {
	f.refunds[to] += amount
	return nil
}

func TestAssetExchangeIssueAssetRefundsShortfallInFull(t *testing.T) {
	u := testUniverse(t, 64)
	ax := NewAssetExchange(u, 1)

	issuer := pkFrom(1)
	ctx := newFakeInvocation(issuer, ax.AssetIssuanceFee-1)

	shares, err := ax.IssueAsset(ctx, [7]byte{'Q'}, 0, [7]int8{}, 100)
	require.NoError(t, err)
	require.EqualValues(t, 0, shares)
	require.EqualValues(t, ax.AssetIssuanceFee-1, ctx.refunds[issuer])
	require.Zero(t, ax.EarnedFees())
}

func TestAssetExchangeIssueAssetRefundsOverpayment(t *testing.T) {
	u := testUniverse(t, 64)
	ax := NewAssetExchange(u, 1)

	issuer := pkFrom(1)
	overpay := ax.AssetIssuanceFee + 500
	ctx := newFakeInvocation(issuer, overpay)

	shares, err := ax.IssueAsset(ctx, [7]byte{'Q'}, 0, [7]int8{}, 100)
	require.NoError(t, err)
	require.EqualValues(t, 100, shares)
	require.EqualValues(t, 500, ctx.refunds[issuer])
	require.EqualValues(t, ax.AssetIssuanceFee, ax.EarnedFees())
}

func TestAssetExchangeTransferClampsFailureToZero(t *testing.T) {
	u := testUniverse(t, 64)
	ax := NewAssetExchange(u, 1)

	issuer := pkFrom(1)
	ctx := newFakeInvocation(issuer, ax.TransferFee)

	// srcOwnershipIdx/srcPossessionIdx 0/0 do not refer to a real holding.
	shares, err := ax.TransferShareOwnershipAndPossession(ctx, 0, 0, pkFrom(2), 10)
	require.NoError(t, err)
	require.EqualValues(t, 0, shares)
}

func TestAssetExchangeTransferSucceeds(t *testing.T) {
	u := testUniverse(t, 64)
	ax := NewAssetExchange(u, 1)

	issuer := pkFrom(1)
	_, ownershipIdx, possessionIdx, err := u.IssueAsset(issuer, [7]byte{'Q'}, 0, [7]int8{}, 1000, 1)
	require.NoError(t, err)

	ctx := newFakeInvocation(issuer, ax.TransferFee)
	recipient := pkFrom(2)
	shares, err := ax.TransferShareOwnershipAndPossession(ctx, ownershipIdx, possessionIdx, recipient, 100)
	require.NoError(t, err)
	require.EqualValues(t, 100, shares)
}

func TestAssetExchangeIssueAssetRejectsUnauthorizedInvocator(t *testing.T) {
	u := testUniverse(t, 64)
	ax := NewAssetExchange(u, 1)
	ax.AccessController = NewAccessController()

	issuer := pkFrom(1)
	ctx := newFakeInvocation(issuer, ax.AssetIssuanceFee)

	shares, err := ax.IssueAsset(ctx, [7]byte{'Q'}, 0, [7]int8{}, 100)
	require.ErrorIs(t, err, ErrUnauthorized)
	require.Zero(t, shares)
	require.Zero(t, ctx.refunds[issuer])
	require.Zero(t, ax.EarnedFees())
}

func TestAssetExchangeIssueAssetAllowsGrantedRole(t *testing.T) {
	u := testUniverse(t, 64)
	ax := NewAssetExchange(u, 1)
	ax.AccessController = NewAccessController()

	issuer := pkFrom(1)
	require.NoError(t, ax.AccessController.GrantRole(issuer, RoleIssuer))

	ctx := newFakeInvocation(issuer, ax.AssetIssuanceFee)
	shares, err := ax.IssueAsset(ctx, [7]byte{'Q'}, 0, [7]int8{}, 100)
	require.NoError(t, err)
	require.EqualValues(t, 100, shares)
}

func TestAssetExchangeTransferRejectsUnauthorizedInvocator(t *testing.T) {
	u := testUniverse(t, 64)
	ax := NewAssetExchange(u, 1)

	issuer := pkFrom(1)
	_, ownershipIdx, possessionIdx, err := u.IssueAsset(issuer, [7]byte{'Q'}, 0, [7]int8{}, 1000, 1)
	require.NoError(t, err)

	ax.AccessController = NewAccessController()
	ctx := newFakeInvocation(issuer, ax.TransferFee)
	shares, err := ax.TransferShareOwnershipAndPossession(ctx, ownershipIdx, possessionIdx, pkFrom(2), 100)
	require.ErrorIs(t, err, ErrUnauthorized)
	require.Zero(t, shares)
	require.Zero(t, ctx.refunds[issuer])
}
