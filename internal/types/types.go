// README: Common value types shared across modules.
package types

type ID string

// Point is a WGS84 coordinate pair. Equality is by coordinates; the
// optional address is presentation-only.
type Point struct {
	Lat     float64
	Lng     float64
	Address string
}

// Valid reports whether the coordinates fall inside the WGS84 ranges.
func (p Point) Valid() bool {
	return p.Lat >= -90 && p.Lat <= 90 && p.Lng >= -180 && p.Lng <= 180
}

// SamePlace compares by coordinates only.
func (p Point) SamePlace(o Point) bool {
	return p.Lat == o.Lat && p.Lng == o.Lng
}
