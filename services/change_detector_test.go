package services

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"bookmyrepair-server/models"
)

func TestShouldNotifyCustomer(t *testing.T) {
	base := models.Booking{
		Status:          models.StatusPending,
		Service:         "Screen Replacement",
		AdminNote:       "note",
		TechnicianName:  "Ravi",
		TechnicianPhone: "9990001111",
		MapURL:          "",
		PickupAddress:   "12 MG Road",
		PickupPhone:     "9876543210",
	}

	tests := []struct {
		name   string
		mutate func(b *models.Booking)
		flags  ChangeFlags
		want   bool
	}{
		{
			name:   "no changes no flags",
			mutate: func(b *models.Booking) {},
			flags:  ChangeFlags{},
			want:   false,
		},
		{
			name:   "status changed",
			mutate: func(b *models.Booking) { b.Status = models.StatusAssigned },
			flags:  ChangeFlags{StatusProvided: true},
			want:   true,
		},
		{
			name:   "status resubmitted with different case",
			mutate: func(b *models.Booking) { b.Status = "PENDING" },
			flags:  ChangeFlags{StatusProvided: true},
			want:   false,
		},
		{
			name:   "status changed without flag",
			mutate: func(b *models.Booking) { b.Status = models.StatusAssigned },
			flags:  ChangeFlags{},
			want:   false,
		},
		{
			name:   "admin note changed",
			mutate: func(b *models.Booking) { b.AdminNote = "part ordered" },
			flags:  ChangeFlags{AdminNoteProvided: true},
			want:   true,
		},
		{
			name:   "admin note resubmitted unchanged",
			mutate: func(b *models.Booking) {},
			flags:  ChangeFlags{AdminNoteProvided: true},
			want:   false,
		},
		{
			name:   "service changed",
			mutate: func(b *models.Booking) { b.Service = "Battery Replacement" },
			flags:  ChangeFlags{ServiceProvided: true},
			want:   true,
		},
		{
			name:   "technician changed",
			mutate: func(b *models.Booking) { b.TechnicianName = "Suresh" },
			flags:  ChangeFlags{TechnicianProvided: true},
			want:   true,
		},
		{
			name:   "technician phone changed",
			mutate: func(b *models.Booking) { b.TechnicianPhone = "8885556666" },
			flags:  ChangeFlags{TechnicianPhoneProvided: true},
			want:   true,
		},
		{
			name:   "coordinates provided alone",
			mutate: func(b *models.Booking) {},
			flags:  ChangeFlags{CoordinatesProvided: true},
			want:   true,
		},
		{
			name:   "map url appeared without any flag",
			mutate: func(b *models.Booking) { b.MapURL = "https://www.google.com/maps?q=1,2" },
			flags:  ChangeFlags{},
			want:   true,
		},
		{
			name:   "pickup address re-derived to a new value",
			mutate: func(b *models.Booking) { b.PickupAddress = "Sector 18" },
			flags:  ChangeFlags{PickupAddressSet: true},
			want:   true,
		},
		{
			name:   "pickup address re-derived to the same value",
			mutate: func(b *models.Booking) {},
			flags:  ChangeFlags{PickupAddressSet: true},
			want:   false,
		},
		{
			name:   "pickup phone re-derived to a new value",
			mutate: func(b *models.Booking) { b.PickupPhone = "1231231234" },
			flags:  ChangeFlags{PickupPhoneSet: true},
			want:   true,
		},
		{
			name:   "customer address change alone stays quiet",
			mutate: func(b *models.Booking) { b.Address = "Somewhere Else" },
			flags:  ChangeFlags{},
			want:   false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			prev := base
			next := base
			tt.mutate(&next)
			assert.Equal(t, tt.want, ShouldNotifyCustomer(&prev, &next, tt.flags))
		})
	}
}

func TestTechnicianDisplayNameFallsBackToAlias(t *testing.T) {
	prev := models.Booking{Technician: "Ravi"}
	next := models.Booking{Technician: "Ravi", TechnicianName: "Ravi"}
	assert.False(t, ShouldNotifyCustomer(&prev, &next, ChangeFlags{TechnicianProvided: true}))

	next.TechnicianName = "Suresh"
	assert.True(t, ShouldNotifyCustomer(&prev, &next, ChangeFlags{TechnicianProvided: true}))
}
