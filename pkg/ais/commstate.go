package ais

import "github.com/bft-labs/aisparser/pkg/sixbit"

// SOTDMA is the self-organized TDMA communication state.
type SOTDMA struct {
	SyncState   uint8  `json:"sync_state" yaml:"sync_state"`
	SlotTimeout uint8  `json:"slot_timeout" yaml:"slot_timeout"`
	SubMessage  uint16 `json:"sub_message" yaml:"sub_message"`
}

// ITDMA is the incremental TDMA communication state.
type ITDMA struct {
	SyncState     uint8  `json:"sync_state" yaml:"sync_state"`
	SlotIncrement uint16 `json:"slot_increment" yaml:"slot_increment"`
	NumSlots      uint8  `json:"num_slots" yaml:"num_slots"`
	Keep          bool   `json:"keep" yaml:"keep"`
}

// commStateBits is the width of a SOTDMA or ITDMA state including sync state.
const commStateBits = 19

func readSOTDMA(c *sixbit.Cursor) *SOTDMA {
	return &SOTDMA{
		SyncState:   uint8(c.Uint(2)),
		SlotTimeout: uint8(c.Uint(3)),
		SubMessage:  uint16(c.Uint(14)),
	}
}

func readITDMA(c *sixbit.Cursor) *ITDMA {
	return &ITDMA{
		SyncState:     uint8(c.Uint(2)),
		SlotIncrement: uint16(c.Uint(13)),
		NumSlots:      uint8(c.Uint(3)),
		Keep:          c.Bool(),
	}
}

// readCommState reads the state selected by itdma when enough bits remain.
func readCommState(c *sixbit.Cursor, itdma bool) (*SOTDMA, *ITDMA) {
	if c.Remaining() < commStateBits {
		return nil, nil
	}
	if itdma {
		return nil, readITDMA(c)
	}
	return readSOTDMA(c), nil
}
