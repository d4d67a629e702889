package routes

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTechnicianClearUpdatesResetsFullSnapshot(t *testing.T) {
	updates := technicianClearUpdates()

	require.Len(t, updates, 4)

	// The roster link is dropped and the denormalized copy is wiped so a
	// tracked booking no longer shows a removed technician.
	assert.Nil(t, updates["technician_id"])
	assert.Equal(t, "", updates["technician"])
	assert.Equal(t, "", updates["technician_name"])
	assert.Equal(t, "", updates["technician_phone"])
}
