package utils

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuildCoordinateMapURL(t *testing.T) {
	lat, lng := 12.9716, 77.5946
	assert.Equal(t, "https://www.google.com/maps?q=12.9716,77.5946", BuildCoordinateMapURL(&lat, &lng))

	zero := 0.0
	assert.Equal(t, "https://www.google.com/maps?q=0,0", BuildCoordinateMapURL(&zero, &zero))

	assert.Empty(t, BuildCoordinateMapURL(nil, &lng))
	assert.Empty(t, BuildCoordinateMapURL(&lat, nil))

	nan := math.NaN()
	assert.Empty(t, BuildCoordinateMapURL(&nan, &lng))
}

func TestBuildAddressMapURL(t *testing.T) {
	assert.Equal(t,
		"https://www.google.com/maps/search/?api=1&query=12+MG+Road%2C+Bengaluru",
		BuildAddressMapURL("12 MG Road, Bengaluru"))

	assert.Empty(t, BuildAddressMapURL("   "))
}
