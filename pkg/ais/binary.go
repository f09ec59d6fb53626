package ais

import (
	"github.com/bft-labs/aisparser/pkg/binapp"
	"github.com/bft-labs/aisparser/pkg/sixbit"
)

// AddressedBinary is the type 6 addressed binary message. Application is
// never nil; unregistered applications decode to *binapp.Unknown.
type AddressedBinary struct {
	Header      `yaml:",inline"`
	Sequence    uint8              `json:"sequence" yaml:"sequence"`
	Dest        uint32             `json:"dest_mmsi" yaml:"dest_mmsi"`
	Retransmit  bool               `json:"retransmit" yaml:"retransmit"`
	DAC         uint16             `json:"dac" yaml:"dac"`
	FI          uint8              `json:"fi" yaml:"fi"`
	Application binapp.Application `json:"application" yaml:"application"`
	Data        *sixbit.Payload    `json:"-" yaml:"-"`
}

func decodeAddressedBinary(h Header, c *sixbit.Cursor) (Message, error) {
	m := &AddressedBinary{
		Header:     h,
		Sequence:   uint8(c.Uint(2)),
		Dest:       c.Uint(30),
		Retransmit: c.Bool(),
	}
	c.Skip(1)
	m.DAC, m.FI = readAppID(c)
	m.Data = c.Rest()
	m.Application = binapp.Decode(binapp.Context{MessageType: h.Type, DAC: m.DAC, FI: m.FI, Data: m.Data})
	return m, nil
}

// BroadcastBinary is the type 8 broadcast binary message.
type BroadcastBinary struct {
	Header      `yaml:",inline"`
	DAC         uint16             `json:"dac" yaml:"dac"`
	FI          uint8              `json:"fi" yaml:"fi"`
	Application binapp.Application `json:"application" yaml:"application"`
	Data        *sixbit.Payload    `json:"-" yaml:"-"`
}

func decodeBroadcastBinary(h Header, c *sixbit.Cursor) (Message, error) {
	c.Skip(2)
	m := &BroadcastBinary{Header: h}
	m.DAC, m.FI = readAppID(c)
	m.Data = c.Rest()
	m.Application = binapp.Decode(binapp.Context{MessageType: h.Type, DAC: m.DAC, FI: m.FI, Data: m.Data})
	return m, nil
}

// readAppID splits the 16-bit application identifier into its 10-bit
// designated area code and 6-bit function identifier.
func readAppID(c *sixbit.Cursor) (uint16, uint8) {
	id := c.Uint(16)
	return uint16(id >> 6), uint8(id & 0x3f)
}

// SingleSlotBinary is the type 25 single slot binary message. DAC and FI
// are only set for structured messages; the data is not interpreted.
type SingleSlotBinary struct {
	Header     `yaml:",inline"`
	Addressed  bool            `json:"addressed" yaml:"addressed"`
	Structured bool            `json:"structured" yaml:"structured"`
	Dest       uint32          `json:"dest_mmsi,omitempty" yaml:"dest_mmsi,omitempty"`
	DAC        uint16          `json:"dac,omitempty" yaml:"dac,omitempty"`
	FI         uint8           `json:"fi,omitempty" yaml:"fi,omitempty"`
	Data       *sixbit.Payload `json:"data" yaml:"data"`
}

func decodeSingleSlotBinary(h Header, c *sixbit.Cursor) (Message, error) {
	m := &SingleSlotBinary{Header: h}
	m.Addressed, m.Structured, m.Dest, m.DAC, m.FI = readSlotEnvelope(c)
	m.Data = c.Rest()
	return m, nil
}

// MultiSlotBinary is the type 26 multiple slot binary message. It ends
// with a 20-bit radio status whose first bit selects the state.
type MultiSlotBinary struct {
	Header     `yaml:",inline"`
	Addressed  bool            `json:"addressed" yaml:"addressed"`
	Structured bool            `json:"structured" yaml:"structured"`
	Dest       uint32          `json:"dest_mmsi,omitempty" yaml:"dest_mmsi,omitempty"`
	DAC        uint16          `json:"dac,omitempty" yaml:"dac,omitempty"`
	FI         uint8           `json:"fi,omitempty" yaml:"fi,omitempty"`
	Data       *sixbit.Payload `json:"data" yaml:"data"`
	CommState  bool            `json:"comm_state" yaml:"comm_state"`
	SOTDMA     *SOTDMA         `json:"sotdma,omitempty" yaml:"sotdma,omitempty"`
	ITDMA      *ITDMA          `json:"itdma,omitempty" yaml:"itdma,omitempty"`
}

const radioStatusBits = 1 + commStateBits

func decodeMultiSlotBinary(h Header, c *sixbit.Cursor) (Message, error) {
	m := &MultiSlotBinary{Header: h}
	m.Addressed, m.Structured, m.Dest, m.DAC, m.FI = readSlotEnvelope(c)
	m.Data = c.Bits(c.Remaining() - radioStatusBits)
	m.CommState = c.Bool()
	m.SOTDMA, m.ITDMA = readCommState(c, m.CommState)
	return m, nil
}

func readSlotEnvelope(c *sixbit.Cursor) (addressed, structured bool, dest uint32, dac uint16, fi uint8) {
	addressed = c.Bool()
	structured = c.Bool()
	if addressed {
		dest = c.Uint(30)
		c.Skip(2)
	}
	if structured {
		dac, fi = readAppID(c)
	}
	return
}
