package core

import "fmt"

// IssueAsset creates a new issuance record for issuer and a matching
// ownership/possession pair crediting issuer with numberOfShares, per
// spec section 4.B. It acquires the universe lock for its whole
// duration.
func (u *Universe) IssueAsset(issuer PublicKey, name [7]byte, decimalPlaces int8, unit [7]int8, numberOfShares int64, managingContractIndex uint16) (issuanceIdx, ownershipIdx, possessionIdx uint32, err error) {
	u.lock.Lock()
	defer u.lock.Unlock()
	return u.issueAssetLocked(issuer, name, decimalPlaces, unit, numberOfShares, managingContractIndex)
}

func (u *Universe) issueAssetLocked(issuer PublicKey, name [7]byte, decimalPlaces int8, unit [7]int8, numberOfShares int64, managingContractIndex uint16) (uint32, uint32, uint32, error) {
	issuanceIdx, err := u.probeEmpty(home(issuer, u.mask))
	if err != nil {
		return 0, 0, 0, fmt.Errorf("issue asset: claim issuance slot: %w", err)
	}
	u.slots[issuanceIdx] = Slot{
		PublicKey:     issuer,
		Tag:           TagIssuance,
		Name:          name,
		DecimalPlaces: decimalPlaces,
		Unit:          unit,
	}

	ownershipIdx, err := u.probeEmpty((issuanceIdx + 1) & u.mask)
	if err != nil {
		return 0, 0, 0, fmt.Errorf("issue asset: claim ownership slot: %w", err)
	}
	u.slots[ownershipIdx] = Slot{
		PublicKey:             issuer,
		Tag:                   TagOwnership,
		ManagingContractIndex: managingContractIndex,
		RefIndex:              issuanceIdx,
		NumberOfShares:        numberOfShares,
	}

	possessionIdx, err := u.probeEmpty((ownershipIdx + 1) & u.mask)
	if err != nil {
		return 0, 0, 0, fmt.Errorf("issue asset: claim possession slot: %w", err)
	}
	u.slots[possessionIdx] = Slot{
		PublicKey:             issuer,
		Tag:                   TagPossession,
		ManagingContractIndex: managingContractIndex,
		RefIndex:              ownershipIdx,
		NumberOfShares:        numberOfShares,
	}

	u.dirty.set(issuanceIdx)
	u.dirty.set(ownershipIdx)
	u.dirty.set(possessionIdx)

	return issuanceIdx, ownershipIdx, possessionIdx, nil
}

// TransferShareOwnershipAndPossession moves numberOfShares from the
// ownership/possession pair at srcOwnershipIdx/srcPossessionIdx to
// destination, per spec section 4.B. When lock is true it acquires the
// universe lock; callers that already hold it (for example a contract
// batching several transfers under one acquisition) pass false.
func (u *Universe) TransferShareOwnershipAndPossession(srcOwnershipIdx, srcPossessionIdx uint32, destination PublicKey, numberOfShares int64, lock bool) (dstOwnershipIdx, dstPossessionIdx uint32, err error) {
	if numberOfShares <= 0 {
		return 0, 0, fmt.Errorf("%w: number of shares must be positive", ErrTransferPrecondition)
	}
	if lock {
		u.lock.Lock()
		defer u.lock.Unlock()
	}

	srcOwn := u.slots[srcOwnershipIdx]
	srcPos := u.slots[srcPossessionIdx]
	if srcOwn.Tag != TagOwnership || srcOwn.NumberOfShares < numberOfShares ||
		srcPos.Tag != TagPossession || srcPos.NumberOfShares < numberOfShares ||
		srcPos.RefIndex != srcOwnershipIdx {
		return 0, 0, ErrTransferPrecondition
	}

	dstOwnershipIdx, err = u.probeOwnershipMerge(home(destination, u.mask), destination, srcOwn.ManagingContractIndex, srcOwn.RefIndex)
	if err != nil {
		return 0, 0, fmt.Errorf("transfer: claim destination ownership slot: %w", err)
	}
	if u.slots[dstOwnershipIdx].Tag == TagEmpty {
		u.slots[dstOwnershipIdx] = Slot{
			PublicKey:             destination,
			Tag:                   TagOwnership,
			ManagingContractIndex: srcOwn.ManagingContractIndex,
			RefIndex:              srcOwn.RefIndex,
		}
	}
	u.slots[srcOwnershipIdx].NumberOfShares -= numberOfShares
	u.slots[dstOwnershipIdx].NumberOfShares += numberOfShares

	dstPossessionIdx, err = u.probePossessionMerge(home(destination, u.mask), destination, srcPos.ManagingContractIndex, dstOwnershipIdx)
	if err != nil {
		return 0, 0, fmt.Errorf("transfer: claim destination possession slot: %w", err)
	}
	if u.slots[dstPossessionIdx].Tag == TagEmpty {
		u.slots[dstPossessionIdx] = Slot{
			PublicKey:             destination,
			Tag:                   TagPossession,
			ManagingContractIndex: srcPos.ManagingContractIndex,
			RefIndex:              dstOwnershipIdx,
		}
	}
	u.slots[srcPossessionIdx].NumberOfShares -= numberOfShares
	u.slots[dstPossessionIdx].NumberOfShares += numberOfShares

	u.dirty.set(srcOwnershipIdx)
	u.dirty.set(srcPossessionIdx)
	u.dirty.set(dstOwnershipIdx)
	u.dirty.set(dstPossessionIdx)

	return dstOwnershipIdx, dstPossessionIdx, nil
}

// probeEmpty walks forward from start, wrapping around the table, until
// it finds an empty slot.
func (u *Universe) probeEmpty(start uint32) (uint32, error) {
	idx := start
	for i := uint32(0); i < u.capacity; i++ {
		if u.slots[idx].Tag == TagEmpty {
			return idx, nil
		}
		idx = (idx + 1) & u.mask
	}
	return 0, ErrTableFull
}

// probeOwnershipMerge walks forward from start looking for an existing
// ownership slot for (pk, managingContractIndex, issuanceIdx) to merge
// into, or the first empty slot if none exists.
func (u *Universe) probeOwnershipMerge(start uint32, pk PublicKey, managingContractIndex uint16, issuanceIdx uint32) (uint32, error) {
	idx := start
	for i := uint32(0); i < u.capacity; i++ {
		s := u.slots[idx]
		if s.Tag == TagEmpty {
			return idx, nil
		}
		if s.Tag == TagOwnership && s.PublicKey == pk && s.ManagingContractIndex == managingContractIndex && s.RefIndex == issuanceIdx {
			return idx, nil
		}
		idx = (idx + 1) & u.mask
	}
	return 0, ErrTableFull
}

// probePossessionMerge walks forward from start looking for an existing
// possession slot for (pk, managingContractIndex, ownershipIdx) to merge
// into, or the first empty slot if none exists.
func (u *Universe) probePossessionMerge(start uint32, pk PublicKey, managingContractIndex uint16, ownershipIdx uint32) (uint32, error) {
	idx := start
	for i := uint32(0); i < u.capacity; i++ {
		s := u.slots[idx]
		if s.Tag == TagEmpty {
			return idx, nil
		}
		if s.Tag == TagPossession && s.PublicKey == pk && s.ManagingContractIndex == managingContractIndex && s.RefIndex == ownershipIdx {
			return idx, nil
		}
		idx = (idx + 1) & u.mask
	}
	return 0, ErrTableFull
}
