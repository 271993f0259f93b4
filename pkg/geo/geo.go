// Package geo decides whether a device coordinate falls inside the circular
// admission zone around the allowed site. Pure functions, no error paths:
// malformed coordinates are rejected upstream.
package geo

import "math"

const earthRadiusKm = 6371.0

// Point is a WGS84 coordinate in decimal degrees.
type Point struct {
	Lat float64
	Lon float64
}

// Distance returns the great-circle distance between two points in
// kilometers (haversine formula).
func Distance(a, b Point) float64 {
	lat1 := toRadians(a.Lat)
	lat2 := toRadians(b.Lat)
	dLat := toRadians(b.Lat - a.Lat)
	dLon := toRadians(b.Lon - a.Lon)

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Sin(dLon/2)*math.Sin(dLon/2)
	c := 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))

	return earthRadiusKm * c
}

// Admit reports whether point lies within maxRadiusKm of allowed.
func Admit(point, allowed Point, maxRadiusKm float64) bool {
	return Distance(point, allowed) <= maxRadiusKm
}

func toRadians(deg float64) float64 {
	return deg * math.Pi / 180
}
