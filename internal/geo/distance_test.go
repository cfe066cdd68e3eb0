package geo

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDistanceKMSamePoint(t *testing.T) {
	p := Point{Lat: 29.9511, Lon: -90.0715}
	assert.Equal(t, 0.0, DistanceKM(p, p))
}

func TestDistanceKMOneDegreeAtEquator(t *testing.T) {
	// One degree of longitude on the equator is ~111.19 km.
	d := DistanceKM(Point{Lat: 0, Lon: 0}, Point{Lat: 0, Lon: 1})
	assert.InDelta(t, 111.19, d, 0.1)
}

func TestDistanceKMParisLondon(t *testing.T) {
	paris := Point{Lat: 48.8566, Lon: 2.3522}
	london := Point{Lat: 51.5074, Lon: -0.1278}
	d := DistanceKM(paris, london)
	assert.InDelta(t, 344, d, 5)
}

func TestDistanceKMSymmetric(t *testing.T) {
	a := Point{Lat: 29.7604, Lon: -95.3698}
	b := Point{Lat: 30.2672, Lon: -97.7431}
	assert.Equal(t, DistanceKM(a, b), DistanceKM(b, a))
}
