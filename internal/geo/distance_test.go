package geo

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDistance_SamePointIsZero(t *testing.T) {
	points := []Point{
		{Latitude: 5.89212, Longitude: -73.65214},
		{Latitude: 0, Longitude: 0},
		{Latitude: 90, Longitude: 180},
		{Latitude: -45.5, Longitude: 170.25},
	}
	for _, p := range points {
		assert.Equal(t, 0.0, Distance(p, p))
	}
}

func TestDistance_Symmetric(t *testing.T) {
	pairs := [][2]Point{
		{{Latitude: 5.53528, Longitude: -73.36778}, {Latitude: 5.61667, Longitude: -73.81667}},
		{{Latitude: 51.505, Longitude: -0.09}, {Latitude: 48.8566, Longitude: 2.3522}},
		{{Latitude: -33.86, Longitude: 151.2}, {Latitude: 40.71, Longitude: -74.0}},
	}
	for _, pair := range pairs {
		assert.InDelta(t, Distance(pair[0], pair[1]), Distance(pair[1], pair[0]), 1e-6)
	}
}

func TestDistance_KnownValues(t *testing.T) {
	// Один градус долготы на экваторе
	d := Distance(Point{0, 0}, Point{0, 1})
	assert.InDelta(t, 111195, d, 111195*0.005)

	// Лондон - Париж, около 343.5 км
	d = Distance(Point{51.5074, -0.1278}, Point{48.8566, 2.3522})
	assert.InDelta(t, 343500, d, 343500*0.005)
}

func TestDistance_Antipodes(t *testing.T) {
	d := Distance(Point{0, 0}, Point{0, 180})
	assert.InDelta(t, math.Pi*EarthRadiusMeters, d, 1)
}

func TestOffset_RoundTrip(t *testing.T) {
	center := Point{Latitude: 5.89212, Longitude: -73.65214}
	for _, bearing := range []float64{0, 45, 90, 180, 270} {
		moved := Offset(center, 150, bearing)
		assert.InDelta(t, 150, Distance(center, moved), 0.01)
	}
}

func TestPoint_Validate(t *testing.T) {
	require.NoError(t, Point{Latitude: 90, Longitude: -180}.Validate())
	assert.Error(t, Point{Latitude: 90.1, Longitude: 0}.Validate())
	assert.Error(t, Point{Latitude: 0, Longitude: 180.5}.Validate())
	assert.Error(t, Point{Latitude: math.NaN(), Longitude: 0}.Validate())
}
