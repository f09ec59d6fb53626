package binapp

import (
	"github.com/bft-labs/aisparser/pkg/position"
	"github.com/bft-labs/aisparser/pkg/sixbit"
)

func init() {
	Register(seawayDACs, 1, 4, decodePAWSSCurrent)
	Register(seawayDACs, 1, 5, decodePAWSSSalinity)
	Register(seawayDACs, 2, 3, decodePAWSSProcession)
}

// PAWSSCurrent holds up to six hydrographic current reports.
type PAWSSCurrent struct {
	Reports []CurrentReport `json:"reports" yaml:"reports"`
}

// CurrentReport is one station of a PAWSSCurrent message.
type CurrentReport struct {
	Station   `yaml:",inline"`
	Speed     uint8  `json:"speed" yaml:"speed"`
	Direction uint16 `json:"direction" yaml:"direction"`
}

func (*PAWSSCurrent) Name() string { return "pawss.current" }

func decodePAWSSCurrent(c *sixbit.Cursor) Application {
	return &PAWSSCurrent{Reports: repeated(c, seawayReportBits, 6, func(c *sixbit.Cursor) CurrentReport {
		r := CurrentReport{
			Station:   readStation(c),
			Speed:     uint8(c.Uint(8)),
			Direction: uint16(c.Uint(9)),
		}
		c.Skip(16)
		return r
	})}
}

// PAWSSSalinity holds up to six salinity and water temperature reports.
type PAWSSSalinity struct {
	Reports []SalinityReport `json:"reports" yaml:"reports"`
}

// SalinityReport is one station of a PAWSSSalinity message.
type SalinityReport struct {
	Station   `yaml:",inline"`
	Salinity  uint16 `json:"salinity" yaml:"salinity"`
	WaterTemp int16  `json:"water_temp" yaml:"water_temp"`
}

func (*PAWSSSalinity) Name() string { return "pawss.salinity" }

func decodePAWSSSalinity(c *sixbit.Cursor) Application {
	return &PAWSSSalinity{Reports: repeated(c, seawayReportBits, 6, func(c *sixbit.Cursor) SalinityReport {
		r := SalinityReport{
			Station:   readStation(c),
			Salinity:  uint16(c.Uint(10)),
			WaterTemp: int16(c.Int(10)),
		}
		c.Skip(13)
		return r
	})}
}

// PAWSSProcession is the vessel procession order at a waypoint, up to four vessels.
type PAWSSProcession struct {
	Time      Timetag           `json:"time" yaml:"time"`
	Direction string            `json:"direction" yaml:"direction"`
	Position  position.Point    `json:"position" yaml:"position"`
	Vessels   []ProcessionEntry `json:"vessels" yaml:"vessels"`
}

// ProcessionEntry is one vessel of a procession order.
type ProcessionEntry struct {
	Order        uint8  `json:"order" yaml:"order"`
	VesselName   string `json:"vessel_name" yaml:"vessel_name"`
	PositionName string `json:"position_name" yaml:"position_name"`
	Hour         uint8  `json:"hour" yaml:"hour"`
	Minute       uint8  `json:"minute" yaml:"minute"`
}

func (*PAWSSProcession) Name() string { return "pawss.procession" }

func decodePAWSSProcession(c *sixbit.Cursor) Application {
	m := &PAWSSProcession{
		Time:      readTimetag(c),
		Direction: c.Text(16),
		Position:  readPoint(c, true),
	}
	c.Skip(3)
	m.Vessels = repeated(c, pawssVesselBits, 4, func(c *sixbit.Cursor) ProcessionEntry {
		e := ProcessionEntry{
			Order:        uint8(c.Uint(5)),
			VesselName:   c.Text(15),
			PositionName: c.Text(13),
			Hour:         uint8(c.Uint(5)),
			Minute:       uint8(c.Uint(6)),
		}
		c.Skip(6)
		return e
	})
	return m
}
