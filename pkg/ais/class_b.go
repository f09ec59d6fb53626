package ais

import (
	"github.com/bft-labs/aisparser/pkg/position"
	"github.com/bft-labs/aisparser/pkg/sixbit"
)

// ClassBPositionReport is the type 18 standard Class B position report.
// CommState selects between the SOTDMA (false) and ITDMA (true) state.
type ClassBPositionReport struct {
	Header    `yaml:",inline"`
	Regional1 uint8   `json:"regional1" yaml:"regional1"`
	SOG       uint16  `json:"sog" yaml:"sog"`
	Accuracy  bool    `json:"accuracy" yaml:"accuracy"`
	Lon       int32   `json:"lon" yaml:"lon"`
	Lat       int32   `json:"lat" yaml:"lat"`
	COG       uint16  `json:"cog" yaml:"cog"`
	Heading   uint16  `json:"heading" yaml:"heading"`
	Second    uint8   `json:"second" yaml:"second"`
	Regional2 uint8   `json:"regional2" yaml:"regional2"`
	CSUnit    bool    `json:"cs_unit" yaml:"cs_unit"`
	Display   bool    `json:"display" yaml:"display"`
	DSC       bool    `json:"dsc" yaml:"dsc"`
	Band      bool    `json:"band" yaml:"band"`
	Msg22     bool    `json:"msg22" yaml:"msg22"`
	Assigned  bool    `json:"assigned" yaml:"assigned"`
	RAIM      bool    `json:"raim" yaml:"raim"`
	CommState bool    `json:"comm_state" yaml:"comm_state"`
	SOTDMA    *SOTDMA `json:"sotdma,omitempty" yaml:"sotdma,omitempty"`
	ITDMA     *ITDMA  `json:"itdma,omitempty" yaml:"itdma,omitempty"`
}

func decodeClassB(h Header, c *sixbit.Cursor) (Message, error) {
	m := &ClassBPositionReport{
		Header:    h,
		Regional1: uint8(c.Uint(8)),
		SOG:       uint16(c.Uint(10)),
		Accuracy:  c.Bool(),
		Lon:       c.Int(28),
		Lat:       c.Int(27),
		COG:       uint16(c.Uint(12)),
		Heading:   uint16(c.Uint(9)),
		Second:    uint8(c.Uint(6)),
		Regional2: uint8(c.Uint(2)),
		CSUnit:    c.Bool(),
		Display:   c.Bool(),
		DSC:       c.Bool(),
		Band:      c.Bool(),
		Msg22:     c.Bool(),
		Assigned:  c.Bool(),
		RAIM:      c.Bool(),
		CommState: c.Bool(),
	}
	m.SOTDMA, m.ITDMA = readCommState(c, m.CommState)
	return m, nil
}

func (m *ClassBPositionReport) Position() position.Point {
	return position.Point{Lat: m.Lat, Lon: m.Lon}
}

// Speed returns the speed over ground in knots.
func (m *ClassBPositionReport) Speed() (float64, bool) { return speedKnots(m.SOG) }

// Course returns the course over ground in degrees.
func (m *ClassBPositionReport) Course() (float64, bool) { return courseDegrees(m.COG) }

// ExtendedClassBReport is the type 19 extended Class B position report,
// which adds static data to the position.
type ExtendedClassBReport struct {
	Header     `yaml:",inline"`
	Regional1  uint8      `json:"regional1" yaml:"regional1"`
	SOG        uint16     `json:"sog" yaml:"sog"`
	Accuracy   bool       `json:"accuracy" yaml:"accuracy"`
	Lon        int32      `json:"lon" yaml:"lon"`
	Lat        int32      `json:"lat" yaml:"lat"`
	COG        uint16     `json:"cog" yaml:"cog"`
	Heading    uint16     `json:"heading" yaml:"heading"`
	Second     uint8      `json:"second" yaml:"second"`
	Regional2  uint8      `json:"regional2" yaml:"regional2"`
	Name       string     `json:"name" yaml:"name"`
	ShipType   uint8      `json:"ship_type" yaml:"ship_type"`
	Dimensions Dimensions `json:"dimensions" yaml:"dimensions"`
	EPFD       uint8      `json:"epfd" yaml:"epfd"`
	RAIM       bool       `json:"raim" yaml:"raim"`
	DTE        bool       `json:"dte" yaml:"dte"`
}

func decodeExtendedClassB(h Header, c *sixbit.Cursor) (Message, error) {
	m := &ExtendedClassBReport{
		Header:     h,
		Regional1:  uint8(c.Uint(8)),
		SOG:        uint16(c.Uint(10)),
		Accuracy:   c.Bool(),
		Lon:        c.Int(28),
		Lat:        c.Int(27),
		COG:        uint16(c.Uint(12)),
		Heading:    uint16(c.Uint(9)),
		Second:     uint8(c.Uint(6)),
		Regional2:  uint8(c.Uint(4)),
		Name:       c.Text(20),
		ShipType:   uint8(c.Uint(8)),
		Dimensions: readDimensions(c),
		EPFD:       uint8(c.Uint(4)),
		RAIM:       c.Bool(),
		DTE:        c.Bool(),
	}
	c.Skip(5)
	return m, nil
}

func (m *ExtendedClassBReport) Position() position.Point {
	return position.Point{Lat: m.Lat, Lon: m.Lon}
}

func (m *ExtendedClassBReport) VesselName() string { return m.Name }
