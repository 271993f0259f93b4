package geo

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

var site = Point{Lat: 12.8324706, Lon: 80.2286148}

// latOffset moves a point north by roughly km kilometers. Along a meridian
// the great-circle distance is exactly R * delta-lat, which keeps the
// expected distances in the cases below honest.
func latOffset(p Point, km float64) Point {
	return Point{Lat: p.Lat + km*(180.0/math.Pi)/6371.0, Lon: p.Lon}
}

func TestDistance(t *testing.T) {
	assert.InDelta(t, 0.0, Distance(site, site), 1e-9)

	near := latOffset(site, 0.5)
	assert.InDelta(t, 0.5, Distance(site, near), 0.001)

	// symmetry
	assert.InDelta(t, Distance(site, near), Distance(near, site), 1e-12)
}

func TestAdmit(t *testing.T) {
	testCases := []struct {
		name     string
		point    Point
		admitted bool
	}{
		{"at the site", site, true},
		{"half a kilometer out", latOffset(site, 0.5), true},
		{"just inside the radius", latOffset(site, 0.99), true},
		{"just outside the radius", latOffset(site, 1.01), false},
		{"far away", Point{Lat: 13.0827, Lon: 80.2707}, false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.admitted, Admit(tc.point, site, 1.0))
		})
	}
}
