package core

// InvocationContext is the slice of a contract runtime's invocation
// state that a fee-charging gateway needs: who called, how much value
// they attached, and a way to refund value. spec.md treats the contract
// runtime as an external collaborator; this interface is the seam
// between that collaborator and the universe's mutation API.
type InvocationContext interface {
	Invocator() PublicKey
	InvocationReward() uint64
	Transfer(to PublicKey, amount uint64) error
}

// AssetExchange is the reference contract-side gateway to the universe's
// mutation API, grounded on original_source/src/smart_contracts/Qx.h's
// IssueAsset and TransferShareOwnershipAndPossession procedures: it
// charges a fixed fee out of the invocation's attached reward, refunds
// any excess, and refunds the reward in full (performing no mutation) if
// it falls short of the fee.
type AssetExchange struct {
	Universe *Universe

	AssetIssuanceFee uint64
	TransferFee      uint64

	// ManagingContractIndex identifies this gateway's records in the
	// universe's slot table.
	ManagingContractIndex uint16

	// AccessController, when non-nil, gates IssueAsset and
	// TransferShareOwnershipAndPossession to invocators holding
	// RoleIssuer/RoleTransferer respectively. A nil AccessController
	// (the default) leaves both procedures open, matching Qx.h's
	// reference behaviour of charging a fee with no caller allowlist.
	AccessController *AccessController

	earned uint64
}

// DefaultAssetIssuanceFee and DefaultTransferFee mirror Qx.h's INITIALIZE
// block.
const (
	DefaultAssetIssuanceFee uint64 = 1_000_000_000
	DefaultTransferFee      uint64 = 1_000_000
)

// Roles an AssetExchange's AccessController may gate its procedures on.
const (
	RoleIssuer     = "issuer"
	RoleTransferer = "transferer"
)

// NewAssetExchange returns a gateway over u using the reference fee
// schedule.
func NewAssetExchange(u *Universe, managingContractIndex uint16) *AssetExchange {
	return &AssetExchange{
		Universe:              u,
		AssetIssuanceFee:      DefaultAssetIssuanceFee,
		TransferFee:           DefaultTransferFee,
		ManagingContractIndex: managingContractIndex,
	}
}

// IssueAsset charges AssetIssuanceFee from ctx's attached reward and, if
// it is covered, issues numberOfShares of a new asset to the invocator.
// It returns the number of shares actually issued, which is zero
// (without error) when the reward did not cover the fee.
func (ax *AssetExchange) IssueAsset(ctx InvocationContext, name [7]byte, decimalPlaces int8, unit [7]int8, numberOfShares int64) (int64, error) {
	if ax.AccessController != nil && !ax.AccessController.HasRole(ctx.Invocator(), RoleIssuer) {
		return 0, ErrUnauthorized
	}

	reward := ctx.InvocationReward()
	if reward < ax.AssetIssuanceFee {
		if reward > 0 {
			if err := ctx.Transfer(ctx.Invocator(), reward); err != nil {
				return 0, err
			}
		}
		return 0, nil
	}
	if reward > ax.AssetIssuanceFee {
		if err := ctx.Transfer(ctx.Invocator(), reward-ax.AssetIssuanceFee); err != nil {
			return 0, err
		}
	}
	ax.earned += ax.AssetIssuanceFee

	_, _, _, err := ax.Universe.IssueAsset(ctx.Invocator(), name, decimalPlaces, unit, numberOfShares, ax.ManagingContractIndex)
	if err != nil {
		return 0, err
	}
	return numberOfShares, nil
}

// TransferShareOwnershipAndPossession charges TransferFee from ctx's
// attached reward and, if it is covered, transfers numberOfShares from
// the ownership/possession pair at srcOwnershipIdx/srcPossessionIdx to
// newOwner. A failed transfer (a precondition violation or any other
// error from the universe) is reported as zero shares transferred,
// matching Qx.h's "< 0 ? 0 : shares" clamp, rather than as an error.
func (ax *AssetExchange) TransferShareOwnershipAndPossession(ctx InvocationContext, srcOwnershipIdx, srcPossessionIdx uint32, newOwner PublicKey, numberOfShares int64) (int64, error) {
	if ax.AccessController != nil && !ax.AccessController.HasRole(ctx.Invocator(), RoleTransferer) {
		return 0, ErrUnauthorized
	}

	reward := ctx.InvocationReward()
	if reward < ax.TransferFee {
		if reward > 0 {
			if err := ctx.Transfer(ctx.Invocator(), reward); err != nil {
				return 0, err
			}
		}
		return 0, nil
	}
	if reward > ax.TransferFee {
		if err := ctx.Transfer(ctx.Invocator(), reward-ax.TransferFee); err != nil {
			return 0, err
		}
	}
	ax.earned += ax.TransferFee

	_, _, err := ax.Universe.TransferShareOwnershipAndPossession(srcOwnershipIdx, srcPossessionIdx, newOwner, numberOfShares, true)
	if err != nil {
		return 0, nil
	}
	return numberOfShares, nil
}

// EarnedFees returns the total fees this gateway has collected.
func (ax *AssetExchange) EarnedFees() uint64 { return ax.earned }
