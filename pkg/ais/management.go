package ais

import (
	"github.com/bft-labs/aisparser/pkg/position"
	"github.com/bft-labs/aisparser/pkg/sixbit"
)

// Request is one interrogation of a station for a message type.
type Request struct {
	Dest        uint32 `json:"dest_mmsi" yaml:"dest_mmsi"`
	MessageType uint8  `json:"message_type" yaml:"message_type"`
	SlotOffset  uint16 `json:"slot_offset" yaml:"slot_offset"`
}

// Interrogation is the type 15 interrogation. The first station may be
// asked for two message types, and an optional second station for one.
type Interrogation struct {
	Header   `yaml:",inline"`
	Requests []Request `json:"requests" yaml:"requests"`
}

func decodeInterrogation(h Header, c *sixbit.Cursor) (Message, error) {
	c.Skip(2)
	m := &Interrogation{Header: h}
	first := c.Uint(30)
	m.Requests = append(m.Requests, Request{Dest: first, MessageType: uint8(c.Uint(6)), SlotOffset: uint16(c.Uint(12))})
	if c.Remaining() >= 20 {
		c.Skip(2)
		m.Requests = append(m.Requests, Request{Dest: first, MessageType: uint8(c.Uint(6)), SlotOffset: uint16(c.Uint(12))})
	}
	if c.Remaining() >= 50 {
		c.Skip(2)
		m.Requests = append(m.Requests, Request{Dest: c.Uint(30), MessageType: uint8(c.Uint(6)), SlotOffset: uint16(c.Uint(12))})
	}
	return m, nil
}

// Assignment sets the reporting schedule of one station.
type Assignment struct {
	Dest      uint32 `json:"dest_mmsi" yaml:"dest_mmsi"`
	Offset    uint16 `json:"offset" yaml:"offset"`
	Increment uint16 `json:"increment" yaml:"increment"`
}

// AssignmentCommand is the type 16 assignment mode command for one or
// two stations.
type AssignmentCommand struct {
	Header      `yaml:",inline"`
	Assignments []Assignment `json:"assignments" yaml:"assignments"`
}

const assignmentBits = 52

func decodeAssignment(h Header, c *sixbit.Cursor) (Message, error) {
	c.Skip(2)
	m := &AssignmentCommand{Header: h}
	for len(m.Assignments) < 2 && (len(m.Assignments) == 0 || c.Remaining() >= assignmentBits) {
		m.Assignments = append(m.Assignments, Assignment{
			Dest:      c.Uint(30),
			Offset:    uint16(c.Uint(12)),
			Increment: uint16(c.Uint(10)),
		})
	}
	return m, nil
}

// DGNSSBroadcast is the type 17 GNSS broadcast binary message. The
// reference station position is in 1/10 minute on the wire and stored in
// the common 1/10000 minute scale. The correction header is only present
// when at least 40 bits follow the position.
type DGNSSBroadcast struct {
	Header      `yaml:",inline"`
	Lon         int32           `json:"lon" yaml:"lon"`
	Lat         int32           `json:"lat" yaml:"lat"`
	MessageType uint8           `json:"message_type" yaml:"message_type"`
	StationID   uint16          `json:"station_id" yaml:"station_id"`
	ZCount      uint16          `json:"z_count" yaml:"z_count"`
	Sequence    uint8           `json:"sequence" yaml:"sequence"`
	Words       uint8           `json:"words" yaml:"words"`
	Health      uint8           `json:"health" yaml:"health"`
	Data        *sixbit.Payload `json:"data,omitempty" yaml:"data,omitempty"`
}

const dgnssHeaderBits = 40

func decodeDGNSS(h Header, c *sixbit.Cursor) (Message, error) {
	c.Skip(2)
	m := &DGNSSBroadcast{
		Header: h,
		Lon:    position.FromTenthMinutes(c.Int(18)),
		Lat:    position.FromTenthMinutes(c.Int(17)),
	}
	c.Skip(5)
	if c.Remaining() < dgnssHeaderBits {
		return m, nil
	}
	m.MessageType = uint8(c.Uint(6))
	m.StationID = uint16(c.Uint(10))
	m.ZCount = uint16(c.Uint(13))
	m.Sequence = uint8(c.Uint(3))
	m.Words = uint8(c.Uint(5))
	m.Health = uint8(c.Uint(3))
	m.Data = c.Rest()
	return m, nil
}

func (m *DGNSSBroadcast) Position() position.Point {
	return position.Point{Lat: m.Lat, Lon: m.Lon}
}

// Reservation is one data link slot reservation.
type Reservation struct {
	Offset    uint16 `json:"offset" yaml:"offset"`
	Slots     uint8  `json:"slots" yaml:"slots"`
	Timeout   uint8  `json:"timeout" yaml:"timeout"`
	Increment uint16 `json:"increment" yaml:"increment"`
}

// DataLinkManagement is the type 20 data link management message.
type DataLinkManagement struct {
	Header       `yaml:",inline"`
	Reservations []Reservation `json:"reservations" yaml:"reservations"`
}

const reservationBits = 30

func decodeDataLink(h Header, c *sixbit.Cursor) (Message, error) {
	c.Skip(2)
	m := &DataLinkManagement{Header: h}
	for len(m.Reservations) < 4 && c.Remaining() >= reservationBits {
		m.Reservations = append(m.Reservations, Reservation{
			Offset:    uint16(c.Uint(12)),
			Slots:     uint8(c.Uint(4)),
			Timeout:   uint8(c.Uint(3)),
			Increment: uint16(c.Uint(11)),
		})
	}
	return m, nil
}

// Area is a rectangle given by its north-east and south-west corners.
type Area struct {
	NorthEast position.Point `json:"north_east" yaml:"north_east"`
	SouthWest position.Point `json:"south_west" yaml:"south_west"`
}

// readArea reads a 70-bit box in 1/10 minute.
func readArea(c *sixbit.Cursor) Area {
	var a Area
	a.NorthEast.Lon = position.FromTenthMinutes(c.Int(18))
	a.NorthEast.Lat = position.FromTenthMinutes(c.Int(17))
	a.SouthWest.Lon = position.FromTenthMinutes(c.Int(18))
	a.SouthWest.Lat = position.FromTenthMinutes(c.Int(17))
	return a
}

// ChannelManagement is the type 22 channel management message. When
// Addressed is set the region carries two destination MMSIs instead of
// an area.
type ChannelManagement struct {
	Header    `yaml:",inline"`
	ChannelA  uint16 `json:"channel_a" yaml:"channel_a"`
	ChannelB  uint16 `json:"channel_b" yaml:"channel_b"`
	TxRxMode  uint8  `json:"txrx_mode" yaml:"txrx_mode"`
	LowPower  bool   `json:"low_power" yaml:"low_power"`
	Area      *Area  `json:"area,omitempty" yaml:"area,omitempty"`
	Dest1     uint32 `json:"dest1_mmsi,omitempty" yaml:"dest1_mmsi,omitempty"`
	Dest2     uint32 `json:"dest2_mmsi,omitempty" yaml:"dest2_mmsi,omitempty"`
	Addressed bool   `json:"addressed" yaml:"addressed"`
	BandA     bool   `json:"band_a" yaml:"band_a"`
	BandB     bool   `json:"band_b" yaml:"band_b"`
	ZoneSize  uint8  `json:"zone_size" yaml:"zone_size"`
}

func decodeChannelManagement(h Header, c *sixbit.Cursor) (Message, error) {
	c.Skip(2)
	m := &ChannelManagement{
		Header:   h,
		ChannelA: uint16(c.Uint(12)),
		ChannelB: uint16(c.Uint(12)),
		TxRxMode: uint8(c.Uint(4)),
		LowPower: c.Bool(),
	}
	region := c.Bits(70)
	m.Addressed = c.Bool()
	m.BandA = c.Bool()
	m.BandB = c.Bool()
	m.ZoneSize = uint8(c.Uint(3))
	c.Skip(23)
	if c.Err() != nil {
		return m, nil
	}

	rc := sixbit.NewCursor(region)
	if m.Addressed {
		m.Dest1 = rc.Uint(30)
		rc.Skip(5)
		m.Dest2 = rc.Uint(30)
	} else {
		a := readArea(rc)
		m.Area = &a
	}
	return m, rc.Err()
}

// GroupAssignment is the type 23 group assignment command.
type GroupAssignment struct {
	Header      `yaml:",inline"`
	Area        Area  `json:"area" yaml:"area"`
	StationType uint8 `json:"station_type" yaml:"station_type"`
	ShipType    uint8 `json:"ship_type" yaml:"ship_type"`
	TxRxMode    uint8 `json:"txrx_mode" yaml:"txrx_mode"`
	Interval    uint8 `json:"interval" yaml:"interval"`
	Quiet       uint8 `json:"quiet" yaml:"quiet"`
}

func decodeGroupAssignment(h Header, c *sixbit.Cursor) (Message, error) {
	c.Skip(2)
	m := &GroupAssignment{
		Header:      h,
		Area:        readArea(c),
		StationType: uint8(c.Uint(4)),
		ShipType:    uint8(c.Uint(8)),
	}
	c.Skip(22)
	m.TxRxMode = uint8(c.Uint(2))
	m.Interval = uint8(c.Uint(4))
	m.Quiet = uint8(c.Uint(4))
	c.Skip(6)
	return m, nil
}
