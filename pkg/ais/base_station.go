package ais

import (
	"time"

	"github.com/bft-labs/aisparser/pkg/position"
	"github.com/bft-labs/aisparser/pkg/sixbit"
)

// BaseStationReport is the type 4 base station report and the type 11
// UTC/date response, which share a layout.
type BaseStationReport struct {
	Header   `yaml:",inline"`
	Year     uint16  `json:"year" yaml:"year"`
	Month    uint8   `json:"month" yaml:"month"`
	Day      uint8   `json:"day" yaml:"day"`
	Hour     uint8   `json:"hour" yaml:"hour"`
	Minute   uint8   `json:"minute" yaml:"minute"`
	Second   uint8   `json:"second" yaml:"second"`
	Accuracy bool    `json:"accuracy" yaml:"accuracy"`
	Lon      int32   `json:"lon" yaml:"lon"`
	Lat      int32   `json:"lat" yaml:"lat"`
	EPFD     uint8   `json:"epfd" yaml:"epfd"`
	RAIM     bool    `json:"raim" yaml:"raim"`
	SOTDMA   *SOTDMA `json:"sotdma,omitempty" yaml:"sotdma,omitempty"`
}

func decodeBaseStation(h Header, c *sixbit.Cursor) (Message, error) {
	m := &BaseStationReport{
		Header:   h,
		Year:     uint16(c.Uint(14)),
		Month:    uint8(c.Uint(4)),
		Day:      uint8(c.Uint(5)),
		Hour:     uint8(c.Uint(5)),
		Minute:   uint8(c.Uint(6)),
		Second:   uint8(c.Uint(6)),
		Accuracy: c.Bool(),
		Lon:      c.Int(28),
		Lat:      c.Int(27),
		EPFD:     uint8(c.Uint(4)),
	}
	c.Skip(10)
	m.RAIM = c.Bool()
	m.SOTDMA, _ = readCommState(c, false)
	return m, nil
}

func (m *BaseStationReport) Position() position.Point {
	return position.Point{Lat: m.Lat, Lon: m.Lon}
}

// Time returns the reported UTC time. ok is false when any of the fields
// hold their not-available value.
func (m *BaseStationReport) Time() (t time.Time, ok bool) {
	if m.Year == 0 || m.Month == 0 || m.Day == 0 || m.Hour > 23 || m.Minute > 59 || m.Second > 59 {
		return time.Time{}, false
	}
	return time.Date(int(m.Year), time.Month(m.Month), int(m.Day),
		int(m.Hour), int(m.Minute), int(m.Second), 0, time.UTC), true
}

// UTCInquiry is the type 10 UTC/date inquiry.
type UTCInquiry struct {
	Header `yaml:",inline"`
	Dest   uint32 `json:"dest_mmsi" yaml:"dest_mmsi"`
}

func decodeUTCInquiry(h Header, c *sixbit.Cursor) (Message, error) {
	c.Skip(2)
	m := &UTCInquiry{Header: h, Dest: c.Uint(30)}
	c.Skip(2)
	return m, nil
}
