package ais

import (
	"github.com/bft-labs/aisparser/internal/domain"
	"github.com/bft-labs/aisparser/pkg/position"
	"github.com/bft-labs/aisparser/pkg/sixbit"
)

// Errors returned by Decode. Match with errors.Is.
var (
	ErrUnsupportedMessageType = domain.ErrUnsupportedMessageType
	ErrBitRangeExceeded       = domain.ErrBitRangeExceeded
)

// UnsupportedTypeError reports a message type without a decoder.
type UnsupportedTypeError = domain.UnsupportedTypeError

// Message is a decoded AIS message. The concrete type is one of the
// record structs in this package.
type Message interface {
	GetHeader() Header
}

// Positioned is implemented by messages that report a position.
type Positioned interface {
	Message
	Position() position.Point
}

// Named is implemented by messages that carry a vessel or station name.
type Named interface {
	Message
	VesselName() string
}

// Header is common to every message type.
type Header struct {
	Type   uint8  `json:"type" yaml:"type"`
	Repeat uint8  `json:"repeat" yaml:"repeat"`
	MMSI   uint32 `json:"mmsi" yaml:"mmsi"`
}

// GetHeader returns the common header.
func (h Header) GetHeader() Header { return h }

// headerBits is the width of the common header.
const headerBits = 38

type decodeFunc func(h Header, c *sixbit.Cursor) (Message, error)

type layout struct {
	name    string
	minBits int
	decode  decodeFunc
}

var layouts = map[uint8]layout{
	1:  {"position_report", 149, decodePositionReport},
	2:  {"position_report", 149, decodePositionReport},
	3:  {"position_report", 149, decodePositionReport},
	4:  {"base_station_report", 168, decodeBaseStation},
	5:  {"static_voyage_data", 422, decodeStaticVoyage},
	6:  {"addressed_binary", 88, decodeAddressedBinary},
	7:  {"binary_ack", 72, decodeAcknowledge},
	8:  {"broadcast_binary", 56, decodeBroadcastBinary},
	9:  {"sar_aircraft_report", 168, decodeSARAircraft},
	10: {"utc_inquiry", 72, decodeUTCInquiry},
	11: {"utc_response", 168, decodeBaseStation},
	12: {"addressed_safety", 72, decodeAddressedSafety},
	13: {"safety_ack", 72, decodeAcknowledge},
	14: {"broadcast_safety", 40, decodeBroadcastSafety},
	15: {"interrogation", 88, decodeInterrogation},
	16: {"assignment_command", 92, decodeAssignment},
	17: {"dgnss_broadcast", 80, decodeDGNSS},
	18: {"class_b_position_report", 168, decodeClassB},
	19: {"extended_class_b_report", 312, decodeExtendedClassB},
	20: {"data_link_management", 72, decodeDataLink},
	21: {"aid_to_navigation_report", 272, decodeAidToNavigation},
	22: {"channel_management", 168, decodeChannelManagement},
	23: {"group_assignment", 160, decodeGroupAssignment},
	24: {"static_data_report", 160, decodeStaticData},
	25: {"single_slot_binary", 40, decodeSingleSlotBinary},
	26: {"multi_slot_binary", 60, decodeMultiSlotBinary},
	27: {"long_range_report", 96, decodeLongRange},
}

// Decode extracts the typed record from an unpacked payload.
// Payloads shorter than the mandatory fields of their type fail with a
// *sixbit.BitRangeError; optional trailing fields are read when present.
func Decode(p *sixbit.Payload) (Message, error) {
	t, err := p.Uint(0, 6)
	if err != nil {
		return nil, err
	}
	l, ok := layouts[uint8(t)]
	if !ok {
		return nil, &UnsupportedTypeError{Type: uint8(t)}
	}
	if p.Len() < l.minBits {
		return nil, &sixbit.BitRangeError{Offset: 0, Width: l.minBits, Available: p.Len()}
	}

	c := sixbit.NewCursor(p)
	h := Header{
		Type:   uint8(c.Uint(6)),
		Repeat: uint8(c.Uint(2)),
		MMSI:   c.Uint(30),
	}
	m, err := l.decode(h, c)
	if err != nil {
		return nil, err
	}
	if err := c.Err(); err != nil {
		return nil, err
	}
	return m, nil
}

// DecodeText unpacks armored text and decodes it.
func DecodeText(text string, fill int) (Message, error) {
	p, err := sixbit.Decode(text, fill)
	if err != nil {
		return nil, err
	}
	return Decode(p)
}

// Supported reports whether a decoder exists for message type t.
func Supported(t uint8) bool {
	_, ok := layouts[t]
	return ok
}

// KindOf returns a short snake_case name for message type t, or "unknown".
func KindOf(t uint8) string {
	if l, ok := layouts[t]; ok {
		return l.name
	}
	return "unknown"
}
