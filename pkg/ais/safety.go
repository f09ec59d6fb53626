package ais

import "github.com/bft-labs/aisparser/pkg/sixbit"

// Ack acknowledges one addressed message.
type Ack struct {
	Dest     uint32 `json:"dest_mmsi" yaml:"dest_mmsi"`
	Sequence uint8  `json:"sequence" yaml:"sequence"`
}

// Acknowledge is the type 7 binary acknowledge and the type 13 safety
// related acknowledge. It carries between one and four acks.
type Acknowledge struct {
	Header `yaml:",inline"`
	Acks   []Ack `json:"acks" yaml:"acks"`
}

const ackBits = 32

func decodeAcknowledge(h Header, c *sixbit.Cursor) (Message, error) {
	c.Skip(2)
	m := &Acknowledge{Header: h}
	for len(m.Acks) < 4 && c.Remaining() >= ackBits {
		m.Acks = append(m.Acks, Ack{Dest: c.Uint(30), Sequence: uint8(c.Uint(2))})
	}
	return m, nil
}

// AddressedSafety is the type 12 addressed safety related message.
type AddressedSafety struct {
	Header     `yaml:",inline"`
	Sequence   uint8  `json:"sequence" yaml:"sequence"`
	Dest       uint32 `json:"dest_mmsi" yaml:"dest_mmsi"`
	Retransmit bool   `json:"retransmit" yaml:"retransmit"`
	Text       string `json:"text" yaml:"text"`
}

func decodeAddressedSafety(h Header, c *sixbit.Cursor) (Message, error) {
	m := &AddressedSafety{
		Header:     h,
		Sequence:   uint8(c.Uint(2)),
		Dest:       c.Uint(30),
		Retransmit: c.Bool(),
	}
	c.Skip(1)
	m.Text = c.Text(c.Remaining() / 6)
	return m, nil
}

// BroadcastSafety is the type 14 safety related broadcast message.
type BroadcastSafety struct {
	Header `yaml:",inline"`
	Text   string `json:"text" yaml:"text"`
}

func decodeBroadcastSafety(h Header, c *sixbit.Cursor) (Message, error) {
	c.Skip(2)
	return &BroadcastSafety{Header: h, Text: c.Text(c.Remaining() / 6)}, nil
}
