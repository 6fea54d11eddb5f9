package core

import (
	"fmt"

	"github.com/sirupsen/logrus"
)

// EndEpoch performs the end-of-epoch compaction described by spec
// section 4.D: every live possession line is rebuilt into scratch,
// coalescing split ownership/possession records for the same logical
// holder and rewriting referential back-pointers to match scratch's new
// positions. scratch must have length equal to the universe's capacity;
// its contents are discarded before the pass begins. On success scratch
// is copied over the universe's table, every slot is marked dirty (a full
// digest rebuild is required after compaction), and Epoch is advanced.
func (u *Universe) EndEpoch(scratch []Slot) error {
	if uint32(len(scratch)) != u.capacity {
		return fmt.Errorf("%w: want %d got %d", ErrScratchSizeMismatch, u.capacity, len(scratch))
	}

	u.lock.Lock()
	defer u.lock.Unlock()

	for i := range scratch {
		scratch[i] = Slot{}
	}

	var compacted int
	for i := uint32(0); i < u.capacity; i++ {
		pos := u.slots[i]
		if pos.Tag != TagPossession || pos.NumberOfShares <= 0 {
			continue
		}

		oldOwn := u.slots[pos.RefIndex]
		oldIssuance := u.slots[oldOwn.RefIndex]

		issuanceIdx, err := compactProbeIssuance(scratch, u.mask, home(oldIssuance.PublicKey, u.mask), oldIssuance)
		if err != nil {
			return fmt.Errorf("end epoch: place issuance: %w", err)
		}
		if scratch[issuanceIdx].Tag == TagEmpty {
			scratch[issuanceIdx] = oldIssuance
		}

		ownershipIdx, err := compactProbeOwnership(scratch, u.mask, home(oldOwn.PublicKey, u.mask), oldOwn.PublicKey, oldOwn.ManagingContractIndex, issuanceIdx)
		if err != nil {
			return fmt.Errorf("end epoch: place ownership: %w", err)
		}
		if scratch[ownershipIdx].Tag == TagEmpty {
			scratch[ownershipIdx] = Slot{
				PublicKey:             oldOwn.PublicKey,
				Tag:                   TagOwnership,
				ManagingContractIndex: oldOwn.ManagingContractIndex,
				RefIndex:              issuanceIdx,
			}
		}
		scratch[ownershipIdx].NumberOfShares += pos.NumberOfShares

		possessionIdx, err := compactProbePossession(scratch, u.mask, home(pos.PublicKey, u.mask), pos.PublicKey, pos.ManagingContractIndex, ownershipIdx)
		if err != nil {
			return fmt.Errorf("end epoch: place possession: %w", err)
		}
		if scratch[possessionIdx].Tag == TagEmpty {
			scratch[possessionIdx] = Slot{
				PublicKey:             pos.PublicKey,
				Tag:                   TagPossession,
				ManagingContractIndex: pos.ManagingContractIndex,
				RefIndex:              ownershipIdx,
			}
		}
		scratch[possessionIdx].NumberOfShares += pos.NumberOfShares

		compacted++
	}

	copy(u.slots, scratch)
	u.dirty.setAll()
	u.epoch++

	logrus.WithFields(logrus.Fields{"epoch": u.epoch, "possession_lines": compacted}).Info("asset universe compacted")
	return nil
}

// compactProbeIssuance finds (or allocates) the scratch slot for an
// issuance record identified by (PublicKey, Name).
func compactProbeIssuance(scratch []Slot, mask, start uint32, src Slot) (uint32, error) {
	idx := start
	for i := uint32(0); i <= mask; i++ {
		s := scratch[idx]
		if s.Tag == TagEmpty {
			return idx, nil
		}
		if s.Tag == TagIssuance && s.PublicKey == src.PublicKey && s.Name == src.Name {
			return idx, nil
		}
		idx = (idx + 1) & mask
	}
	return 0, ErrTableFull
}

// compactProbeOwnership finds (or allocates) the scratch slot for an
// ownership record identified by (PublicKey, ManagingContractIndex,
// issuanceIdx).
func compactProbeOwnership(scratch []Slot, mask, start uint32, pk PublicKey, managingContractIndex uint16, issuanceIdx uint32) (uint32, error) {
	idx := start
	for i := uint32(0); i <= mask; i++ {
		s := scratch[idx]
		if s.Tag == TagEmpty {
			return idx, nil
		}
		if s.Tag == TagOwnership && s.PublicKey == pk && s.ManagingContractIndex == managingContractIndex && s.RefIndex == issuanceIdx {
			return idx, nil
		}
		idx = (idx + 1) & mask
	}
	return 0, ErrTableFull
}

// compactProbePossession finds (or allocates) the scratch slot for a
// possession record identified by (PublicKey, ManagingContractIndex,
// ownershipIdx).
func compactProbePossession(scratch []Slot, mask, start uint32, pk PublicKey, managingContractIndex uint16, ownershipIdx uint32) (uint32, error) {
	idx := start
	for i := uint32(0); i <= mask; i++ {
		s := scratch[idx]
		if s.Tag == TagEmpty {
			return idx, nil
		}
		if s.Tag == TagPossession && s.PublicKey == pk && s.ManagingContractIndex == managingContractIndex && s.RefIndex == ownershipIdx {
			return idx, nil
		}
		idx = (idx + 1) & mask
	}
	return 0, ErrTableFull
}
