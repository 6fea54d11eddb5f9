package core

import "errors"

// Sentinel errors returned by the asset universe. Callers should compare
// against these with errors.Is rather than matching error strings.
var (
	// ErrCapacityNotPowerOfTwo is returned by New when the requested
	// capacity is not a power of two.
	ErrCapacityNotPowerOfTwo = errors.New("asset universe: capacity must be a power of two")

	// ErrTableFull is returned by a probe that walked every slot in the
	// table without finding an empty or matching one. The universal
	// invariant that the table never reaches full occupancy means
	// production callers should never observe this; it exists so a
	// probing bug fails loudly instead of looping forever.
	ErrTableFull = errors.New("asset universe: table full during probe")

	// ErrTransferPrecondition is returned when a transfer's source slots
	// do not satisfy the preconditions in spec section 4.B (wrong tag,
	// insufficient shares, or a possession/ownership mismatch).
	ErrTransferPrecondition = errors.New("asset universe: transfer precondition failed")

	// ErrSnapshotSizeMismatch is returned when a loaded snapshot's byte
	// length does not match the universe's configured capacity.
	ErrSnapshotSizeMismatch = errors.New("asset universe: snapshot size mismatch")

	// ErrScratchSizeMismatch is returned by EndEpoch when the caller's
	// scratch buffer is not sized to the universe's capacity.
	ErrScratchSizeMismatch = errors.New("asset universe: scratch buffer size mismatch")

	// ErrUnauthorized is returned by an AssetExchange procedure when its
	// AccessController is set and the invocator holds none of the roles
	// that procedure accepts.
	ErrUnauthorized = errors.New("asset universe: invocator not authorized")
)
