package core

import (
	"encoding/binary"
	"fmt"
	"runtime"
	"sync/atomic"

	"github.com/sirupsen/logrus"
)

// DefaultCapacity is the slot table size used when Config.Capacity is
// left at zero, matching spec.md's fixed CAPACITY = 2^24. Tests and
// embedders may choose a smaller power-of-two capacity; see DESIGN.md's
// Open Question decision on configurable capacity.
const DefaultCapacity = 1 << 24

// spinLock is a busy-wait compare-and-swap lock, per spec section 5: the
// universe is guarded by a single coarse-grained lock that never
// suspends the caller, unlike the sync.RWMutex used elsewhere in this
// codebase's ledger types.
type spinLock struct {
	state int32
}

func (l *spinLock) Lock() {
	for !atomic.CompareAndSwapInt32(&l.state, 0, 1) {
		runtime.Gosched()
	}
}

func (l *spinLock) Unlock() {
	atomic.StoreInt32(&l.state, 0)
}

// Config configures a new Universe. A zero Config is valid and yields a
// universe of DefaultCapacity with the default hasher and an
// unconfigured (directory-less) file persistence.
type Config struct {
	// Capacity is the number of slots in the table. Must be a power of
	// two. Zero selects DefaultCapacity.
	Capacity uint32
	// Hasher computes leaf and inner Merkle digests. Nil selects
	// NewDefaultHasher().
	Hasher Hasher
	// Persistence saves and loads snapshots. Nil selects a
	// FilePersistence rooted at the current working directory.
	Persistence Persistence
}

// Universe is the content-addressed asset slot table described by
// spec.md: a single open-addressed hash table shared by issuance,
// ownership, and possession records, with an incremental Merkle digester
// layered over it and guarded by one spinlock.
type Universe struct {
	capacity uint32
	mask     uint32

	lock spinLock

	slots []Slot
	tree  []Hash32
	dirty dirtyBitmap

	hasher  Hasher
	persist Persistence

	epoch int
}

// New allocates a Universe per cfg.
func New(cfg Config) (*Universe, error) {
	capacity := cfg.Capacity
	if capacity == 0 {
		capacity = DefaultCapacity
	}
	if capacity == 0 || capacity&(capacity-1) != 0 {
		return nil, fmt.Errorf("%w: %d", ErrCapacityNotPowerOfTwo, capacity)
	}

	hasher := cfg.Hasher
	if hasher == nil {
		hasher = NewDefaultHasher()
	}
	persist := cfg.Persistence
	if persist == nil {
		persist = NewFilePersistence("")
	}

	u := &Universe{
		capacity: capacity,
		mask:     capacity - 1,
		slots:    make([]Slot, capacity),
		tree:     make([]Hash32, 2*uint64(capacity)-1),
		dirty:    newDirtyBitmap(capacity),
		hasher:   hasher,
		persist:  persist,
	}
	u.dirty.setAll()

	logrus.WithFields(logrus.Fields{"capacity": capacity}).Info("asset universe initialised")
	return u, nil
}

// Capacity returns the number of slots in the table.
func (u *Universe) Capacity() uint32 { return u.capacity }

// Epoch returns the current epoch: the epoch last loaded by LoadSnapshot
// (zero for a fresh table), advanced by one for each EndEpoch since.
func (u *Universe) Epoch() int { return u.epoch }

// Slot returns a copy of the slot at index idx. idx must be < Capacity.
// Callers that need a consistent view across multiple slots should hold
// their own coordination; Slot does not acquire the universe's lock.
func (u *Universe) Slot(idx uint32) Slot { return u.slots[idx] }

// home computes the home index for a public key: the low 32 bits of the
// key, taken as little-endian, modulo capacity.
func home(pk PublicKey, mask uint32) uint32 {
	return binary.LittleEndian.Uint32(pk[:4]) & mask
}
