package models

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateTrackingIDFormat(t *testing.T) {
	pattern := regexp.MustCompile(`^BMR-[0-9A-Z]+-[0-9A-Z]{6}$`)

	for i := 0; i < 100; i++ {
		id := GenerateTrackingID()
		require.Regexp(t, pattern, id)
	}
}

func TestGenerateTrackingIDSampleUniqueness(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 1000; i++ {
		id := GenerateTrackingID()
		assert.False(t, seen[id], "duplicate tracking id %s", id)
		seen[id] = true
	}
}

func TestIsValidStatus(t *testing.T) {
	for _, status := range StatusValues {
		assert.True(t, IsValidStatus(status), status)
	}

	assert.False(t, IsValidStatus(""))
	assert.False(t, IsValidStatus("pending"), "membership check is case sensitive")
	assert.False(t, IsValidStatus("Shipped"))
}

func TestStatusListString(t *testing.T) {
	list := StatusListString()
	assert.Contains(t, list, StatusPending)
	assert.Contains(t, list, StatusCancelled)
}

func TestIsPickupAndDrop(t *testing.T) {
	assert.True(t, IsPickupAndDrop("Pickup & Drop"))
	assert.True(t, IsPickupAndDrop("pickup & drop"))
	assert.True(t, IsPickupAndDrop("  PICKUP & DROP  "))
	assert.False(t, IsPickupAndDrop("Self Drop"))
	assert.False(t, IsPickupAndDrop(""))
}
