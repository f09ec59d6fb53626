package ais

import (
	"fmt"

	"github.com/bft-labs/aisparser/pkg/position"
	"github.com/bft-labs/aisparser/pkg/sixbit"
)

// Dimensions are distances in meters from the position reference point.
type Dimensions struct {
	Bow       uint16 `json:"bow" yaml:"bow"`
	Stern     uint16 `json:"stern" yaml:"stern"`
	Port      uint8  `json:"port" yaml:"port"`
	Starboard uint8  `json:"starboard" yaml:"starboard"`
}

func readDimensions(c *sixbit.Cursor) Dimensions {
	return Dimensions{
		Bow:       uint16(c.Uint(9)),
		Stern:     uint16(c.Uint(9)),
		Port:      uint8(c.Uint(6)),
		Starboard: uint8(c.Uint(6)),
	}
}

// Length returns the overall length in meters.
func (d Dimensions) Length() int { return int(d.Bow) + int(d.Stern) }

// Beam returns the overall width in meters.
func (d Dimensions) Beam() int { return int(d.Port) + int(d.Starboard) }

// StaticVoyageData is the type 5 Class A static and voyage related data.
// Draught is in tenths of a meter.
type StaticVoyageData struct {
	Header      `yaml:",inline"`
	Version     uint8      `json:"version" yaml:"version"`
	IMO         uint32     `json:"imo" yaml:"imo"`
	CallSign    string     `json:"callsign" yaml:"callsign"`
	Name        string     `json:"name" yaml:"name"`
	ShipType    uint8      `json:"ship_type" yaml:"ship_type"`
	Dimensions  Dimensions `json:"dimensions" yaml:"dimensions"`
	EPFD        uint8      `json:"epfd" yaml:"epfd"`
	ETA         ETA        `json:"eta" yaml:"eta"`
	Draught     uint8      `json:"draught" yaml:"draught"`
	Destination string     `json:"destination" yaml:"destination"`
	DTE         bool       `json:"dte" yaml:"dte"`
}

func decodeStaticVoyage(h Header, c *sixbit.Cursor) (Message, error) {
	m := &StaticVoyageData{
		Header:      h,
		Version:     uint8(c.Uint(2)),
		IMO:         c.Uint(30),
		CallSign:    c.Text(7),
		Name:        c.Text(20),
		ShipType:    uint8(c.Uint(8)),
		Dimensions:  readDimensions(c),
		EPFD:        uint8(c.Uint(4)),
		ETA:         readETA(c),
		Draught:     uint8(c.Uint(8)),
		Destination: c.Text(20),
	}
	// Some transmitters stop after the destination.
	if c.Remaining() > 0 {
		m.DTE = c.Bool()
	}
	return m, nil
}

func (m *StaticVoyageData) VesselName() string { return m.Name }

// StaticDataReport is one part of the type 24 Class B static data report.
// Part 0 (A) carries the name, part 1 (B) everything else.
type StaticDataReport struct {
	Header     `yaml:",inline"`
	Part       uint8      `json:"part" yaml:"part"`
	Name       string     `json:"name,omitempty" yaml:"name,omitempty"`
	ShipType   uint8      `json:"ship_type,omitempty" yaml:"ship_type,omitempty"`
	VendorID   string     `json:"vendor_id,omitempty" yaml:"vendor_id,omitempty"`
	CallSign   string     `json:"callsign,omitempty" yaml:"callsign,omitempty"`
	Dimensions Dimensions `json:"dimensions" yaml:"dimensions"`
}

// Type 24 part numbers.
const (
	PartA uint8 = 0
	PartB uint8 = 1
)

// ErrInvalidPart is returned for type 24 part numbers other than A and B.
var ErrInvalidPart = fmt.Errorf("%w: static data report part", ErrUnsupportedMessageType)

func decodeStaticData(h Header, c *sixbit.Cursor) (Message, error) {
	m := &StaticDataReport{Header: h, Part: uint8(c.Uint(2))}
	switch m.Part {
	case PartA:
		m.Name = c.Text(20)
	case PartB:
		m.ShipType = uint8(c.Uint(8))
		m.VendorID = c.Text(7)
		m.CallSign = c.Text(7)
		m.Dimensions = readDimensions(c)
	default:
		return nil, fmt.Errorf("%w %d", ErrInvalidPart, m.Part)
	}
	return m, nil
}

func (m *StaticDataReport) VesselName() string { return m.Name }

// AidToNavigationReport is the type 21 aid-to-navigation report.
type AidToNavigationReport struct {
	Header        `yaml:",inline"`
	AidType       uint8      `json:"aid_type" yaml:"aid_type"`
	Name          string     `json:"name" yaml:"name"`
	Accuracy      bool       `json:"accuracy" yaml:"accuracy"`
	Lon           int32      `json:"lon" yaml:"lon"`
	Lat           int32      `json:"lat" yaml:"lat"`
	Dimensions    Dimensions `json:"dimensions" yaml:"dimensions"`
	EPFD          uint8      `json:"epfd" yaml:"epfd"`
	Second        uint8      `json:"second" yaml:"second"`
	OffPosition   bool       `json:"off_position" yaml:"off_position"`
	Regional      uint8      `json:"regional" yaml:"regional"`
	RAIM          bool       `json:"raim" yaml:"raim"`
	Virtual       bool       `json:"virtual" yaml:"virtual"`
	Assigned      bool       `json:"assigned" yaml:"assigned"`
	NameExtension string     `json:"name_extension,omitempty" yaml:"name_extension,omitempty"`
}

func decodeAidToNavigation(h Header, c *sixbit.Cursor) (Message, error) {
	m := &AidToNavigationReport{
		Header:      h,
		AidType:     uint8(c.Uint(5)),
		Name:        c.Text(20),
		Accuracy:    c.Bool(),
		Lon:         c.Int(28),
		Lat:         c.Int(27),
		Dimensions:  readDimensions(c),
		EPFD:        uint8(c.Uint(4)),
		Second:      uint8(c.Uint(6)),
		OffPosition: c.Bool(),
		Regional:    uint8(c.Uint(8)),
		RAIM:        c.Bool(),
		Virtual:     c.Bool(),
		Assigned:    c.Bool(),
	}
	c.Skip(1)
	if n := c.Remaining() / 6; n > 0 {
		if n > 14 {
			n = 14
		}
		m.NameExtension = c.Text(n)
	}
	return m, nil
}

func (m *AidToNavigationReport) Position() position.Point {
	return position.Point{Lat: m.Lat, Lon: m.Lon}
}

// VesselName joins the name and its extension.
func (m *AidToNavigationReport) VesselName() string { return m.Name + m.NameExtension }
