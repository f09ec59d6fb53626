package binapp

import (
	"fmt"

	"github.com/bft-labs/aisparser/pkg/position"
	"github.com/bft-labs/aisparser/pkg/sixbit"
)

// Timetag is the 20-bit UTC month/day/hour/minute stamp used by the
// Seaway, PAWSS and IMO applications.
type Timetag struct {
	Month  uint8 `json:"month" yaml:"month"`
	Day    uint8 `json:"day" yaml:"day"`
	Hour   uint8 `json:"hour" yaml:"hour"`
	Minute uint8 `json:"minute" yaml:"minute"`
}

func readTimetag(c *sixbit.Cursor) Timetag {
	return Timetag{
		Month:  uint8(c.Uint(4)),
		Day:    uint8(c.Uint(5)),
		Hour:   uint8(c.Uint(5)),
		Minute: uint8(c.Uint(6)),
	}
}

// Available reports whether every component holds a real value.
func (t Timetag) Available() bool {
	return t.Month >= 1 && t.Month <= 12 && t.Day >= 1 && t.Hour < 24 && t.Minute < 60
}

func (t Timetag) String() string {
	return fmt.Sprintf("%02d-%02d %02d:%02d", t.Month, t.Day, t.Hour, t.Minute)
}

// readPoint reads a longitude/latitude pair in 1/1000 minute and scales
// it to 1/10000 minute. lonFirst selects the field order.
func readPoint(c *sixbit.Cursor, lonFirst bool) position.Point {
	var p position.Point
	if lonFirst {
		p.Lon = position.FromThousandthMinutes(c.Int(25))
		p.Lat = position.FromThousandthMinutes(c.Int(24))
	} else {
		p.Lat = position.FromThousandthMinutes(c.Int(24))
		p.Lon = position.FromThousandthMinutes(c.Int(25))
	}
	return p
}
