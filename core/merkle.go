package core

// Digest recomputes and returns the universe's root hash, per spec
// section 4.C. It only rehashes leaves and internal nodes whose dirty
// bit is set, walking level by level over a single flat array of
// 2*Capacity-1 nodes (leaves at [0, Capacity), each inner level
// following the previous one). The same dirty bitmap is reused at every
// level: a pair's two bits are cleared before its parent's bit is set,
// so the reused bit positions never retain stale state from the level
// that just finished with them.
func (u *Universe) Digest() Hash32 {
	u.lock.Lock()
	defer u.lock.Unlock()
	return u.digestLocked()
}

func (u *Universe) digestLocked() Hash32 {
	for i := uint32(0); i < u.capacity; i++ {
		if u.dirty.test(i) {
			u.tree[i] = u.hasher.SumSlot(u.slots[i].Bytes())
		}
	}

	levelStart := uint32(0)
	levelSize := u.capacity
	for levelSize > 1 {
		nextStart := levelStart + levelSize
		for i := uint32(0); i < levelSize; i += 2 {
			if u.dirty.testPair(i) {
				parent := nextStart + i/2
				u.tree[parent] = u.hasher.SumPair(u.tree[levelStart+i], u.tree[levelStart+i+1])
				u.dirty.clearPair(i)
				u.dirty.set(i / 2)
			}
		}
		levelStart = nextStart
		levelSize /= 2
	}

	// The root's own bit (word 0, bit 0) was just set by the last pass
	// over the level below it and is never consumed by a further pair
	// pass, since the root has no parent. Clear it here so the next
	// Digest does not redundantly re-hash leaf 0 and its full left
	// spine, matching assets.h's explicit assetChangeFlags[0] = 0.
	u.dirty.clear(0)

	return u.tree[len(u.tree)-1]
}
