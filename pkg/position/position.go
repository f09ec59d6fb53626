package position

import (
	"fmt"
	"math"
)

// Raw positions are signed integers in 1/10000 minute of arc.
const (
	UnitsPerMinute = 10000
	UnitsPerDegree = 60 * UnitsPerMinute

	// LatitudeNotAvailable (91 degrees) is transmitted when no latitude is known.
	LatitudeNotAvailable int32 = 91 * UnitsPerDegree

	// LongitudeNotAvailable (181 degrees) is transmitted when no longitude is known.
	LongitudeNotAvailable int32 = 181 * UnitsPerDegree
)

// ToDecimal converts a raw coordinate to decimal degrees.
func ToDecimal(raw int32) float64 {
	return float64(raw) / UnitsPerDegree
}

// DegreesMinutes is a coordinate split into whole degrees and minutes.
// Degrees carries the sign; Minutes is never negative. Negative is set
// for every coordinate below zero, including those between 0 and -1 degree
// where Degrees is 0.
type DegreesMinutes struct {
	Degrees  int
	Minutes  float64
	Negative bool
}

// ToDegreesMinutes splits a raw coordinate. Degrees are truncated toward zero.
func ToDegreesMinutes(raw int32) DegreesMinutes {
	deg := raw / UnitsPerDegree
	rem := int64(raw) - int64(deg)*UnitsPerDegree
	if rem < 0 {
		rem = -rem
	}
	return DegreesMinutes{
		Degrees:  int(deg),
		Minutes:  float64(rem) / UnitsPerMinute,
		Negative: raw < 0,
	}
}

// Raw converts back to 1/10000 minute units.
func (dm DegreesMinutes) Raw() int32 {
	deg := dm.Degrees
	if deg < 0 {
		deg = -deg
	}
	v := int32(deg)*UnitsPerDegree + int32(math.Round(dm.Minutes*UnitsPerMinute))
	if dm.Negative {
		return -v
	}
	return v
}

// Format renders the coordinate with a hemisphere letter, for example
// "63°24.9766'N". pos and neg are the hemisphere letters.
func (dm DegreesMinutes) Format(pos, neg byte) string {
	deg := dm.Degrees
	h := pos
	if dm.Negative {
		h = neg
		deg = -deg
	}
	return fmt.Sprintf("%d°%07.4f'%c", deg, dm.Minutes, h)
}

// Latitude returns decimal degrees, or false for the not-available sentinel.
func Latitude(raw int32) (float64, bool) {
	if raw == LatitudeNotAvailable {
		return 0, false
	}
	return ToDecimal(raw), true
}

// Longitude returns decimal degrees, or false for the not-available sentinel.
func Longitude(raw int32) (float64, bool) {
	if raw == LongitudeNotAvailable {
		return 0, false
	}
	return ToDecimal(raw), true
}

// ValidLatitude reports whether raw lies within ±90 degrees.
func ValidLatitude(raw int32) bool {
	return raw >= -90*UnitsPerDegree && raw <= 90*UnitsPerDegree
}

// ValidLongitude reports whether raw lies within ±180 degrees.
func ValidLongitude(raw int32) bool {
	return raw >= -180*UnitsPerDegree && raw <= 180*UnitsPerDegree
}
