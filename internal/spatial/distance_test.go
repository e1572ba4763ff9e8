package spatial

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHaversineDistanceKnownPair(t *testing.T) {
	// Times Square to Grand Central, roughly 1.1 km
	d := HaversineDistance(40.7580, -73.9855, 40.7527, -73.9772)
	assert.InDelta(t, 900, d, 200)
}

func TestHaversineDistanceZero(t *testing.T) {
	assert.InDelta(t, 0, HaversineDistance(40.7, -74.0, 40.7, -74.0), 1e-6)
}

func TestDestinationPointRoundTrip(t *testing.T) {
	lat, lon := DestinationPoint(40.7128, -74.0060, 90, 2000)
	assert.InDelta(t, 2000, HaversineDistance(40.7128, -74.0060, lat, lon), 1)
	assert.Greater(t, lon, -74.0060)
}
