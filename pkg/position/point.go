package position

// Point is a raw latitude/longitude pair in 1/10000 minute.
type Point struct {
	Lat int32 `json:"lat" yaml:"lat"`
	Lon int32 `json:"lon" yaml:"lon"`
}

// Unavailable is the point transmitted when no position is known.
var Unavailable = Point{Lat: LatitudeNotAvailable, Lon: LongitudeNotAvailable}

// Available reports whether both coordinates are present and physically valid.
func (p Point) Available() bool {
	return p.Lat != LatitudeNotAvailable && p.Lon != LongitudeNotAvailable &&
		ValidLatitude(p.Lat) && ValidLongitude(p.Lon)
}

// Decimal returns the coordinates in decimal degrees.
func (p Point) Decimal() (lat, lon float64) {
	return ToDecimal(p.Lat), ToDecimal(p.Lon)
}

func (p Point) String() string {
	if !p.Available() {
		return "unavailable"
	}
	return ToDegreesMinutes(p.Lat).Format('N', 'S') + " " + ToDegreesMinutes(p.Lon).Format('E', 'W')
}

// FromTenthMinutes scales a 1/10 minute coordinate (types 17, 22, 23, 27).
// The not-available sentinels scale onto the raw sentinels exactly.
func FromTenthMinutes(raw int32) int32 { return raw * 1000 }

// FromThousandthMinutes scales a 1/1000 minute coordinate (binary applications).
func FromThousandthMinutes(raw int32) int32 { return raw * 10 }
