package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bookmyrepair-server/models"
)

func strPtr(s string) *string    { return &s }
func f64Ptr(v float64) *float64 { return &v }

func TestResolveLocationCreateMirrorsPickupFields(t *testing.T) {
	p := &BookingPatch{
		Address: strPtr("12 MG Road, Bengaluru"),
		Phone:   strPtr("+919876543210"),
	}
	p.Normalize()

	d := ResolveLocation(nil, p)

	assert.True(t, d.SetAddress)
	assert.True(t, d.SetLocation)
	assert.Equal(t, "12 MG Road, Bengaluru", d.Address)
	assert.Equal(t, "12 MG Road, Bengaluru", d.Location)

	require.True(t, d.SetPickupOption)
	assert.Equal(t, models.DefaultPickupOption, d.PickupOption)

	require.True(t, d.SetPickupAddress)
	assert.Equal(t, "12 MG Road, Bengaluru", d.PickupAddress)

	require.True(t, d.SetPickupPhone)
	assert.Equal(t, "+919876543210", d.PickupPhone)

	require.True(t, d.SetPickupMapURL)
	assert.Contains(t, d.PickupMapURL, "https://www.google.com/maps/search/?api=1&query=")
	assert.Contains(t, d.PickupMapURL, "12+MG+Road%2C+Bengaluru")
}

func TestResolveLocationCreateSelfDropClearsPickupFields(t *testing.T) {
	p := &BookingPatch{
		Address:      strPtr("12 MG Road"),
		Phone:        strPtr("9876543210"),
		PickupOption: strPtr("Self Drop"),
	}
	p.Normalize()

	d := ResolveLocation(nil, p)

	require.True(t, d.SetPickupOption)
	assert.Equal(t, "Self Drop", d.PickupOption)

	require.True(t, d.SetPickupAddress)
	assert.Empty(t, d.PickupAddress)
	require.True(t, d.SetPickupPhone)
	assert.Empty(t, d.PickupPhone)
	require.True(t, d.SetPickupMapURL)
	assert.Empty(t, d.PickupMapURL)
}

func TestResolveLocationLocationOnlyBackfillsAddress(t *testing.T) {
	p := &BookingPatch{Location: strPtr("Sector 18, Noida")}
	p.Normalize()

	d := ResolveLocation(nil, p)

	assert.True(t, d.SetAddress)
	assert.Equal(t, "Sector 18, Noida", d.Address)
	assert.Equal(t, "Sector 18, Noida", d.Location)
}

func TestResolveLocationUpdate(t *testing.T) {
	existing := &models.Booking{
		Address:       "Old Address",
		Location:      "Old Address",
		Phone:         "1112223333",
		PickupOption:  models.DefaultPickupOption,
		PickupAddress: "Old Address",
		PickupPhone:   "1112223333",
	}

	tests := []struct {
		name   string
		patch  BookingPatch
		verify func(t *testing.T, d DerivedLocation)
	}{
		{
			name:  "unrelated field change leaves pickup alone",
			patch: BookingPatch{Name: strPtr("New Name")},
			verify: func(t *testing.T, d DerivedLocation) {
				assert.False(t, d.SetAddress)
				assert.False(t, d.SetPickupAddress)
				assert.False(t, d.SetPickupPhone)
				assert.False(t, d.SetPickupMapURL)
			},
		},
		{
			name:  "address change re-mirrors pickup address",
			patch: BookingPatch{Address: strPtr("New Address")},
			verify: func(t *testing.T, d DerivedLocation) {
				require.True(t, d.SetPickupAddress)
				assert.Equal(t, "New Address", d.PickupAddress)
				require.True(t, d.SetPickupMapURL)
				assert.Contains(t, d.PickupMapURL, "New+Address")
				assert.False(t, d.SetPickupPhone)
			},
		},
		{
			name:  "switching away from pickup clears derived fields",
			patch: BookingPatch{PickupOption: strPtr("Self Drop")},
			verify: func(t *testing.T, d DerivedLocation) {
				require.True(t, d.SetPickupAddress)
				assert.Empty(t, d.PickupAddress)
				require.True(t, d.SetPickupPhone)
				assert.Empty(t, d.PickupPhone)
				require.True(t, d.SetPickupMapURL)
				assert.Empty(t, d.PickupMapURL)
			},
		},
		{
			name:  "explicit pickup address wins over derivation",
			patch: BookingPatch{Address: strPtr("New Address"), PickupAddress: strPtr("Office Reception")},
			verify: func(t *testing.T, d DerivedLocation) {
				require.True(t, d.SetPickupAddress)
				assert.Equal(t, "Office Reception", d.PickupAddress)
				require.True(t, d.SetPickupMapURL)
				assert.Contains(t, d.PickupMapURL, "Office+Reception")
			},
		},
		{
			name:  "explicit pickup map url is recomputed from pickup address",
			patch: BookingPatch{PickupAddress: strPtr("Office Reception"), PickupMapURL: strPtr("https://example.com/manual")},
			verify: func(t *testing.T, d DerivedLocation) {
				require.True(t, d.SetPickupMapURL)
				assert.Contains(t, d.PickupMapURL, "google.com/maps/search")
			},
		},
		{
			name:  "phone change re-mirrors pickup phone only",
			patch: BookingPatch{Phone: strPtr("9998887777")},
			verify: func(t *testing.T, d DerivedLocation) {
				assert.False(t, d.SetPickupAddress)
				require.True(t, d.SetPickupPhone)
				assert.Equal(t, "9998887777", d.PickupPhone)
			},
		},
		{
			name:  "empty pickup option is ignored",
			patch: BookingPatch{PickupOption: strPtr("")},
			verify: func(t *testing.T, d DerivedLocation) {
				assert.False(t, d.SetPickupOption)
				assert.False(t, d.SetPickupAddress)
			},
		},
		{
			name:  "pickup option case differences keep mirroring",
			patch: BookingPatch{PickupOption: strPtr("pickup & drop"), Address: strPtr("New Address")},
			verify: func(t *testing.T, d DerivedLocation) {
				require.True(t, d.SetPickupAddress)
				assert.Equal(t, "New Address", d.PickupAddress)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			patch := tt.patch
			patch.Normalize()
			tt.verify(t, ResolveLocation(existing, &patch))
		})
	}
}

func TestResolveLocationIsIdempotent(t *testing.T) {
	p := &BookingPatch{
		Address: strPtr("12 MG Road"),
		Phone:   strPtr("9876543210"),
	}
	p.Normalize()

	first := ResolveLocation(nil, p)

	settled := &models.Booking{
		Address:       first.Address,
		Location:      first.Location,
		Phone:         "9876543210",
		PickupOption:  first.PickupOption,
		PickupAddress: first.PickupAddress,
		PickupPhone:   first.PickupPhone,
		PickupMapURL:  first.PickupMapURL,
	}

	again := ResolveLocation(settled, p)
	assert.Equal(t, first.PickupAddress, again.PickupAddress)
	assert.Equal(t, first.PickupPhone, again.PickupPhone)
	assert.Equal(t, first.PickupMapURL, again.PickupMapURL)
}

func TestResolveLiveLocation(t *testing.T) {
	t.Run("missing coordinates", func(t *testing.T) {
		p := &BookingPatch{Lat: f64Ptr(12.97)}
		p.Normalize()
		_, _, ok := ResolveLiveLocation(p)
		assert.False(t, ok)
	})

	t.Run("top level pair", func(t *testing.T) {
		p := &BookingPatch{Lat: f64Ptr(12.97), Lng: f64Ptr(77.59)}
		p.Normalize()
		live, mapURL, ok := ResolveLiveLocation(p)
		require.True(t, ok)
		require.NotNil(t, live.Lat)
		require.NotNil(t, live.Lng)
		require.NotNil(t, live.UpdatedAt)
		assert.Equal(t, 12.97, *live.Lat)
		assert.Equal(t, 77.59, *live.Lng)
		assert.Equal(t, "https://www.google.com/maps?q=12.97,77.59", mapURL)
	})

	t.Run("nested object wins", func(t *testing.T) {
		p := &BookingPatch{
			Lat:          f64Ptr(1),
			Lng:          f64Ptr(2),
			LiveLocation: &PatchCoordinates{Lat: f64Ptr(28.61), Lng: f64Ptr(77.2)},
		}
		p.Normalize()
		live, _, ok := ResolveLiveLocation(p)
		require.True(t, ok)
		assert.Equal(t, 28.61, *live.Lat)
		assert.Equal(t, 77.2, *live.Lng)
	})
}
