package core

// dirtyBitmap tracks which slots (at the leaf level) or which nodes (when
// reinterpreted at an inner Merkle level) have changed since the last
// digest. The same backing array is reused across every tree level: a
// level never needs more bits than the leaf level did, so writing a
// parent's dirty bit back into the low end of the array never collides
// with a pair this same pass has not yet consumed. See core/merkle.go.
type dirtyBitmap struct {
	words []uint64
}

func newDirtyBitmap(capacity uint32) dirtyBitmap {
	n := capacity / 64
	if n == 0 {
		n = 1
	}
	return dirtyBitmap{words: make([]uint64, n)}
}

func (d dirtyBitmap) test(i uint32) bool {
	return d.words[i>>6]&(uint64(1)<<(i&63)) != 0
}

func (d dirtyBitmap) set(i uint32) {
	d.words[i>>6] |= uint64(1) << (i & 63)
}

func (d dirtyBitmap) clear(i uint32) {
	d.words[i>>6] &^= uint64(1) << (i & 63)
}

// testPair reports whether either bit of the pair (i, i+1) is set. i must
// be even.
func (d dirtyBitmap) testPair(i uint32) bool {
	return d.words[i>>6]&(uint64(3)<<(i&63)) != 0
}

// clearPair clears both bits of the pair (i, i+1). i must be even.
func (d dirtyBitmap) clearPair(i uint32) {
	d.words[i>>6] &^= uint64(3) << (i & 63)
}

func (d dirtyBitmap) setAll() {
	for i := range d.words {
		d.words[i] = ^uint64(0)
	}
}
