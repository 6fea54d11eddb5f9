package core

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestSlotBytesRoundTripIssuance(t *testing.T) {
	want := Slot{
		PublicKey:     pkFrom(3),
		Tag:           TagIssuance,
		Name:          [7]byte{'G', 'O', 'L', 'D'},
		DecimalPlaces: 2,
		Unit:          [7]int8{1, 2, 3},
	}

	got := SlotFromBytes(want.Bytes())
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("issuance slot round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestSlotBytesRoundTripOwnership(t *testing.T) {
	want := Slot{
		PublicKey:             pkFrom(7),
		Tag:                   TagOwnership,
		ManagingContractIndex: 42,
		RefIndex:              1234,
		NumberOfShares:        -500,
	}

	got := SlotFromBytes(want.Bytes())
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("ownership slot round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestSlotBytesIgnoresForeignFieldsByTag(t *testing.T) {
	// A possession slot's encoding must not leak issuance-only fields,
	// since both share the same byte range on the wire.
	s := Slot{
		PublicKey:      pkFrom(1),
		Tag:            TagPossession,
		RefIndex:       9,
		NumberOfShares: 10,
		Name:           [7]byte{'u', 'n', 'u', 's', 'e', 'd'},
	}

	decoded := SlotFromBytes(s.Bytes())
	want := Slot{
		PublicKey:      s.PublicKey,
		Tag:            TagPossession,
		RefIndex:       9,
		NumberOfShares: 10,
	}
	if diff := cmp.Diff(want, decoded); diff != "" {
		t.Fatalf("possession slot leaked unrelated fields (-want +got):\n%s", diff)
	}
}
