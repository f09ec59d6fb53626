package ais

import (
	"fmt"
	"time"

	"github.com/bft-labs/aisparser/pkg/sixbit"
)

// ETA is an estimated time of arrival without a year.
// The default "not available" value is month 0, day 0, hour 24, minute 60.
type ETA struct {
	Month  uint8 `json:"month" yaml:"month"`
	Day    uint8 `json:"day" yaml:"day"`
	Hour   uint8 `json:"hour" yaml:"hour"`
	Minute uint8 `json:"minute" yaml:"minute"`
}

// ETANotAvailable is the default value sent when no ETA is set.
var ETANotAvailable = ETA{Month: 0, Day: 0, Hour: 24, Minute: 60}

func readETA(c *sixbit.Cursor) ETA {
	return ETA{
		Month:  uint8(c.Uint(4)),
		Day:    uint8(c.Uint(5)),
		Hour:   uint8(c.Uint(5)),
		Minute: uint8(c.Uint(6)),
	}
}

// Available reports whether month and day are set.
func (e ETA) Available() bool {
	return e.Month >= 1 && e.Month <= 12 && e.Day >= 1
}

// Time resolves the ETA to the first matching instant at or after ref.
// Unknown hour or minute count as zero.
func (e ETA) Time(ref time.Time) (time.Time, bool) {
	if !e.Available() {
		return time.Time{}, false
	}
	hour, minute := int(e.Hour), int(e.Minute)
	if hour > 23 {
		hour = 0
	}
	if minute > 59 {
		minute = 0
	}
	ref = ref.UTC()
	t := time.Date(ref.Year(), time.Month(e.Month), int(e.Day), hour, minute, 0, 0, time.UTC)
	if t.Before(ref.AddDate(0, 0, -1)) {
		t = t.AddDate(1, 0, 0)
	}
	return t, true
}

func (e ETA) String() string {
	return fmt.Sprintf("%02d-%02d %02d:%02d", e.Month, e.Day, e.Hour, e.Minute)
}
