package core

import "encoding/binary"

// SlotSizeBytes is the fixed on-disk and on-wire size of a single slot, in
// both the issuance and ownership/possession layouts.
const SlotSizeBytes = 48

// PublicKey identifies an asset issuer, owner, or possessor.
type PublicKey [32]byte

// Tag discriminates the three record kinds that share the universe's slot
// array. It occupies the same byte offset (32) regardless of which
// variant is stored, matching the C union this layout is derived from.
type Tag byte

const (
	TagEmpty      Tag = 0
	TagIssuance   Tag = 1
	TagOwnership  Tag = 2
	TagPossession Tag = 3
)

func (t Tag) String() string {
	switch t {
	case TagEmpty:
		return "empty"
	case TagIssuance:
		return "issuance"
	case TagOwnership:
		return "ownership"
	case TagPossession:
		return "possession"
	default:
		return "unknown"
	}
}

// Slot is a single 48-byte record in the universe's slot table. Depending
// on Tag, only a subset of the fields is meaningful:
//
//   - TagIssuance: PublicKey, Name, DecimalPlaces, Unit
//   - TagOwnership: PublicKey, ManagingContractIndex, RefIndex
//     (the owned asset's issuance index), NumberOfShares
//   - TagPossession: PublicKey, ManagingContractIndex, RefIndex
//     (the possessed asset's ownership index), NumberOfShares
type Slot struct {
	PublicKey PublicKey
	Tag       Tag

	// Issuance fields.
	Name          [7]byte
	DecimalPlaces int8
	Unit          [7]int8

	// Ownership/possession fields. RefIndex holds the issuance index for
	// an ownership slot, or the ownership index for a possession slot.
	ManagingContractIndex uint16
	RefIndex              uint32
	NumberOfShares        int64
}

// IssuanceIndex returns RefIndex under the name it carries when this slot
// is an ownership record.
func (s Slot) IssuanceIndex() uint32 { return s.RefIndex }

// OwnershipIndex returns RefIndex under the name it carries when this slot
// is a possession record.
func (s Slot) OwnershipIndex() uint32 { return s.RefIndex }

// Bytes encodes the slot into its fixed 48-byte little-endian wire and
// snapshot representation.
func (s Slot) Bytes() [SlotSizeBytes]byte {
	var b [SlotSizeBytes]byte
	copy(b[0:32], s.PublicKey[:])
	b[32] = byte(s.Tag)

	switch s.Tag {
	case TagIssuance:
		copy(b[33:40], s.Name[:])
		b[40] = byte(s.DecimalPlaces)
		for i, v := range s.Unit {
			b[41+i] = byte(v)
		}
	case TagOwnership, TagPossession:
		// b[33] is padding and stays zero.
		binary.LittleEndian.PutUint16(b[34:36], s.ManagingContractIndex)
		binary.LittleEndian.PutUint32(b[36:40], s.RefIndex)
		binary.LittleEndian.PutUint64(b[40:48], uint64(s.NumberOfShares))
	}
	return b
}

// SlotFromBytes decodes a 48-byte slot encoded by Bytes.
func SlotFromBytes(b [SlotSizeBytes]byte) Slot {
	var s Slot
	copy(s.PublicKey[:], b[0:32])
	s.Tag = Tag(b[32])

	switch s.Tag {
	case TagIssuance:
		copy(s.Name[:], b[33:40])
		s.DecimalPlaces = int8(b[40])
		for i := range s.Unit {
			s.Unit[i] = int8(b[41+i])
		}
	case TagOwnership, TagPossession:
		s.ManagingContractIndex = binary.LittleEndian.Uint16(b[34:36])
		s.RefIndex = binary.LittleEndian.Uint32(b[36:40])
		s.NumberOfShares = int64(binary.LittleEndian.Uint64(b[40:48]))
	}
	return s
}
