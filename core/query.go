package core

import "encoding/binary"

// Wire message types, per spec section 6. Codes 36-41 are reserved by
// the surrounding network protocol for asset queries; EndResponse is the
// terminator every query stream ends with, regardless of how many
// matching records it produced.
const (
	MsgRequestIssuedAssets    uint8 = 36
	MsgRespondIssuedAssets    uint8 = 37
	MsgRequestOwnedAssets     uint8 = 38
	MsgRespondOwnedAssets     uint8 = 39
	MsgRequestPossessedAssets uint8 = 40
	MsgRespondPossessedAssets uint8 = 41
	MsgEndResponse            uint8 = 255
)

// Peer is an opaque handle to whatever transport connection a Responder
// implementation delivers responses over. The universe never inspects
// it; RPC delivery is outside this module's scope per spec.md.
type Peer interface{}

// Responder enqueues a response message for delivery to peer. The
// universe's query handlers call it once per matching record found,
// then once more with MsgEndResponse once the scan is exhausted.
// Delivery, batching, and backpressure are the responder's concern.
type Responder interface {
	EnqueueResponse(peer Peer, payload []byte, msgType uint8, correlationID uint32) error
}

// RespondIssuedAssets is the payload for MsgRespondIssuedAssets.
type RespondIssuedAssets struct {
	Asset [SlotSizeBytes]byte
	Tick  uint32
}

// Bytes encodes the response in wire order.
func (r RespondIssuedAssets) Bytes() []byte {
	buf := make([]byte, SlotSizeBytes+4)
	copy(buf[:SlotSizeBytes], r.Asset[:])
	binary.LittleEndian.PutUint32(buf[SlotSizeBytes:], r.Tick)
	return buf
}

// RespondOwnedAssets is the payload for MsgRespondOwnedAssets: the
// ownership slot plus the issuance slot it references, so a caller never
// needs a follow-up round trip to resolve the asset's name.
type RespondOwnedAssets struct {
	Ownership [SlotSizeBytes]byte
	Issuance  [SlotSizeBytes]byte
	Tick      uint32
}

func (r RespondOwnedAssets) Bytes() []byte {
	buf := make([]byte, 2*SlotSizeBytes+4)
	copy(buf[:SlotSizeBytes], r.Ownership[:])
	copy(buf[SlotSizeBytes:2*SlotSizeBytes], r.Issuance[:])
	binary.LittleEndian.PutUint32(buf[2*SlotSizeBytes:], r.Tick)
	return buf
}

// RespondPossessedAssets is the payload for MsgRespondPossessedAssets:
// the possession slot plus the ownership and issuance slots it
// transitively references.
type RespondPossessedAssets struct {
	Possession [SlotSizeBytes]byte
	Ownership  [SlotSizeBytes]byte
	Issuance   [SlotSizeBytes]byte
	Tick       uint32
}

func (r RespondPossessedAssets) Bytes() []byte {
	buf := make([]byte, 3*SlotSizeBytes+4)
	copy(buf[:SlotSizeBytes], r.Possession[:])
	copy(buf[SlotSizeBytes:2*SlotSizeBytes], r.Ownership[:])
	copy(buf[2*SlotSizeBytes:3*SlotSizeBytes], r.Issuance[:])
	binary.LittleEndian.PutUint32(buf[3*SlotSizeBytes:], r.Tick)
	return buf
}

// HandleRequestIssuedAssets walks the table from pk's home index,
// emitting one RespondIssuedAssets per issuance slot owned by pk, then
// an MsgEndResponse terminator. It relies on the universal invariant
// that the table never fills completely, so the walk is guaranteed to
// reach an empty slot.
func (u *Universe) HandleRequestIssuedAssets(peer Peer, correlationID, tick uint32, pk PublicKey, r Responder) error {
	u.lock.Lock()
	defer u.lock.Unlock()

	idx := home(pk, u.mask)
	for {
		s := u.slots[idx]
		if s.Tag == TagEmpty {
			return r.EnqueueResponse(peer, nil, MsgEndResponse, correlationID)
		}
		if s.Tag == TagIssuance && s.PublicKey == pk {
			resp := RespondIssuedAssets{Asset: s.Bytes(), Tick: tick}
			if err := r.EnqueueResponse(peer, resp.Bytes(), MsgRespondIssuedAssets, correlationID); err != nil {
				return err
			}
		}
		idx = (idx + 1) & u.mask
	}
}

// HandleRequestOwnedAssets walks the table from pk's home index,
// emitting one RespondOwnedAssets per ownership slot held by pk, then an
// MsgEndResponse terminator.
func (u *Universe) HandleRequestOwnedAssets(peer Peer, correlationID, tick uint32, pk PublicKey, r Responder) error {
	u.lock.Lock()
	defer u.lock.Unlock()

	idx := home(pk, u.mask)
	for {
		s := u.slots[idx]
		if s.Tag == TagEmpty {
			return r.EnqueueResponse(peer, nil, MsgEndResponse, correlationID)
		}
		if s.Tag == TagOwnership && s.PublicKey == pk {
			issuance := u.slots[s.RefIndex]
			resp := RespondOwnedAssets{Ownership: s.Bytes(), Issuance: issuance.Bytes(), Tick: tick}
			if err := r.EnqueueResponse(peer, resp.Bytes(), MsgRespondOwnedAssets, correlationID); err != nil {
				return err
			}
		}
		idx = (idx + 1) & u.mask
	}
}

// HandleRequestPossessedAssets walks the table from pk's home index,
// emitting one RespondPossessedAssets per possession slot held by pk,
// then an MsgEndResponse terminator.
func (u *Universe) HandleRequestPossessedAssets(peer Peer, correlationID, tick uint32, pk PublicKey, r Responder) error {
	u.lock.Lock()
	defer u.lock.Unlock()

	idx := home(pk, u.mask)
	for {
		s := u.slots[idx]
		if s.Tag == TagEmpty {
			return r.EnqueueResponse(peer, nil, MsgEndResponse, correlationID)
		}
		if s.Tag == TagPossession && s.PublicKey == pk {
			ownership := u.slots[s.RefIndex]
			issuance := u.slots[ownership.RefIndex]
			resp := RespondPossessedAssets{Possession: s.Bytes(), Ownership: ownership.Bytes(), Issuance: issuance.Bytes(), Tick: tick}
			if err := r.EnqueueResponse(peer, resp.Bytes(), MsgRespondPossessedAssets, correlationID); err != nil {
				return err
			}
		}
		idx = (idx + 1) & u.mask
	}
}
