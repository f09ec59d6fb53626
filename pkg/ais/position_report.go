package ais

import (
	"math"

	"github.com/bft-labs/aisparser/pkg/position"
	"github.com/bft-labs/aisparser/pkg/sixbit"
)

// Not-available values of the kinematic fields.
const (
	SpeedNotAvailable   uint16 = 1023
	CourseNotAvailable  uint16 = 3600
	HeadingNotAvailable uint16 = 511
	ROTNotAvailable     int8   = -128
	SecondNotAvailable  uint8  = 60
)

// PositionReport is a Class A position report (types 1, 2 and 3).
// Types 1 and 2 carry a SOTDMA communication state, type 3 an ITDMA state.
type PositionReport struct {
	Header    `yaml:",inline"`
	NavStatus uint8   `json:"nav_status" yaml:"nav_status"`
	ROT       int8    `json:"rot" yaml:"rot"`
	SOG       uint16  `json:"sog" yaml:"sog"`
	Accuracy  bool    `json:"accuracy" yaml:"accuracy"`
	Lon       int32   `json:"lon" yaml:"lon"`
	Lat       int32   `json:"lat" yaml:"lat"`
	COG       uint16  `json:"cog" yaml:"cog"`
	Heading   uint16  `json:"heading" yaml:"heading"`
	Second    uint8   `json:"second" yaml:"second"`
	Regional  uint8   `json:"regional" yaml:"regional"`
	Spare     uint8   `json:"spare" yaml:"spare"`
	RAIM      bool    `json:"raim" yaml:"raim"`
	SOTDMA    *SOTDMA `json:"sotdma,omitempty" yaml:"sotdma,omitempty"`
	ITDMA     *ITDMA  `json:"itdma,omitempty" yaml:"itdma,omitempty"`
}

func decodePositionReport(h Header, c *sixbit.Cursor) (Message, error) {
	m := &PositionReport{
		Header:    h,
		NavStatus: uint8(c.Uint(4)),
		ROT:       int8(c.Int(8)),
		SOG:       uint16(c.Uint(10)),
		Accuracy:  c.Bool(),
		Lon:       c.Int(28),
		Lat:       c.Int(27),
		COG:       uint16(c.Uint(12)),
		Heading:   uint16(c.Uint(9)),
		Second:    uint8(c.Uint(6)),
		Regional:  uint8(c.Uint(4)),
		Spare:     uint8(c.Uint(1)),
		RAIM:      c.Bool(),
	}
	m.SOTDMA, m.ITDMA = readCommState(c, h.Type == 3)
	return m, nil
}

// Position returns the reported position.
func (m *PositionReport) Position() position.Point {
	return position.Point{Lat: m.Lat, Lon: m.Lon}
}

// Speed returns the speed over ground in knots.
func (m *PositionReport) Speed() (float64, bool) { return speedKnots(m.SOG) }

// Course returns the course over ground in degrees.
func (m *PositionReport) Course() (float64, bool) { return courseDegrees(m.COG) }

// RateOfTurn returns the rate of turn in degrees per minute. Values of
// ±127 mean turning faster than 5 degrees per 30 seconds without a
// turn indicator and are reported as ±708.
func (m *PositionReport) RateOfTurn() (float64, bool) {
	if m.ROT == ROTNotAvailable {
		return 0, false
	}
	v := float64(m.ROT) / 4.733
	return math.Copysign(v*v, v), true
}

func speedKnots(sog uint16) (float64, bool) {
	if sog == SpeedNotAvailable {
		return 0, false
	}
	return float64(sog) / 10, true
}

func courseDegrees(cog uint16) (float64, bool) {
	if cog >= CourseNotAvailable {
		return 0, false
	}
	return float64(cog) / 10, true
}

// LongRangeReport is the type 27 position report for long range
// reception. Positions are scaled to 1/10000 minute.
type LongRangeReport struct {
	Header    `yaml:",inline"`
	Accuracy  bool   `json:"accuracy" yaml:"accuracy"`
	RAIM      bool   `json:"raim" yaml:"raim"`
	NavStatus uint8  `json:"nav_status" yaml:"nav_status"`
	Lon       int32  `json:"lon" yaml:"lon"`
	Lat       int32  `json:"lat" yaml:"lat"`
	SOG       uint8  `json:"sog" yaml:"sog"`
	COG       uint16 `json:"cog" yaml:"cog"`
	GNSS      bool   `json:"gnss" yaml:"gnss"`
}

func decodeLongRange(h Header, c *sixbit.Cursor) (Message, error) {
	m := &LongRangeReport{
		Header:    h,
		Accuracy:  c.Bool(),
		RAIM:      c.Bool(),
		NavStatus: uint8(c.Uint(4)),
		Lon:       position.FromTenthMinutes(c.Int(18)),
		Lat:       position.FromTenthMinutes(c.Int(17)),
		SOG:       uint8(c.Uint(6)),
		COG:       uint16(c.Uint(9)),
		GNSS:      c.Bool(),
	}
	c.Skip(1)
	return m, nil
}

func (m *LongRangeReport) Position() position.Point {
	return position.Point{Lat: m.Lat, Lon: m.Lon}
}

// SARAircraftReport is the type 9 standard search and rescue aircraft
// position report. Altitude is in meters; 4095 means not available.
type SARAircraftReport struct {
	Header    `yaml:",inline"`
	Altitude  uint16  `json:"altitude" yaml:"altitude"`
	SOG       uint16  `json:"sog" yaml:"sog"`
	Accuracy  bool    `json:"accuracy" yaml:"accuracy"`
	Lon       int32   `json:"lon" yaml:"lon"`
	Lat       int32   `json:"lat" yaml:"lat"`
	COG       uint16  `json:"cog" yaml:"cog"`
	Second    uint8   `json:"second" yaml:"second"`
	Regional  uint8   `json:"regional" yaml:"regional"`
	DTE       bool    `json:"dte" yaml:"dte"`
	Assigned  bool    `json:"assigned" yaml:"assigned"`
	RAIM      bool    `json:"raim" yaml:"raim"`
	CommState bool    `json:"comm_state" yaml:"comm_state"`
	SOTDMA    *SOTDMA `json:"sotdma,omitempty" yaml:"sotdma,omitempty"`
	ITDMA     *ITDMA  `json:"itdma,omitempty" yaml:"itdma,omitempty"`
}

func decodeSARAircraft(h Header, c *sixbit.Cursor) (Message, error) {
	m := &SARAircraftReport{
		Header:   h,
		Altitude: uint16(c.Uint(12)),
		SOG:      uint16(c.Uint(10)),
		Accuracy: c.Bool(),
		Lon:      c.Int(28),
		Lat:      c.Int(27),
		COG:      uint16(c.Uint(12)),
		Second:   uint8(c.Uint(6)),
		Regional: uint8(c.Uint(8)),
		DTE:      c.Bool(),
	}
	c.Skip(3)
	m.Assigned = c.Bool()
	m.RAIM = c.Bool()
	m.CommState = c.Bool()
	m.SOTDMA, m.ITDMA = readCommState(c, m.CommState)
	return m, nil
}

func (m *SARAircraftReport) Position() position.Point {
	return position.Point{Lat: m.Lat, Lon: m.Lon}
}
