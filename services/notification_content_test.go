package services

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"bookmyrepair-server/models"
)

func TestStatusMessageLine(t *testing.T) {
	withTech := &models.Booking{TechnicianName: "Ravi"}
	noTech := &models.Booking{}

	tests := []struct {
		name    string
		status  string
		booking *models.Booking
		want    string
	}{
		{"pending", "Pending", noTech, "Your phone repair is pending."},
		{"assigned with technician", "Assigned", withTech, "Technician Ravi has been assigned for your pickup."},
		{"assigned without technician", "Assigned", noTech, "A technician has been assigned for your pickup."},
		{"pickup started with technician", "Pickup Started", withTech, "Technician Ravi is on the way and should reach you in about 2 minutes."},
		{"pickup started without technician", "pickup started", noTech, "Your technician is on the way and should reach you in about 2 minutes."},
		{"in service", "In Service", noTech, "Your device is now in service."},
		{"in progress", "In Progress", noTech, "Your phone repair status is In Progress."},
		{"completed", "Completed", noTech, "Your phone repair is completed."},
		{"cancelled echoes the status", "Cancelled", noTech, "Your phone repair status is Cancelled."},
		{"empty status", "", noTech, "Your phone repair status is updated."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, StatusMessageLine(tt.status, tt.booking))
		})
	}
}

func TestStatusSubject(t *testing.T) {
	b := &models.Booking{TrackingID: "BMR-ABC123-XYZ789", TechnicianName: "Ravi"}

	assert.Equal(t, "Final Confirmation: Repair Completed (BMR-ABC123-XYZ789)", StatusSubject("Completed", b))
	assert.Equal(t, "Technician Assigned: Ravi (BMR-ABC123-XYZ789)", StatusSubject("Assigned", b))
	assert.Equal(t, "Technician On The Way: ETA 2 Min (BMR-ABC123-XYZ789)", StatusSubject("Pickup Started", b))
	assert.Equal(t, "Repair Status Update: In Progress", StatusSubject("In Progress", b))
	assert.Equal(t, "Repair Status Update: Updated", StatusSubject("", b))

	noTech := &models.Booking{ID: 42}
	assert.Equal(t, "Technician Assigned (42)", StatusSubject("Assigned", noTech))
}

func TestBookingSummaryText(t *testing.T) {
	b := &models.Booking{
		TrackingID:    "BMR-ABC123-XYZ789",
		Name:          "Asha",
		Phone:         "9876543210",
		Email:         "asha@example.com",
		Brand:         "Apple",
		Model:         "iPhone 13",
		Service:       "Screen Replacement",
		Address:       "12 MG Road",
		PickupAddress: "12 MG Road",
		PickupPhone:   "9876543210",
	}

	text := BookingSummaryText(b)

	assert.Contains(t, text, "Booking ID: BMR-ABC123-XYZ789")
	assert.Contains(t, text, "Device: Apple iPhone 13")
	assert.Contains(t, text, "Service Mode: "+models.DefaultPickupOption)
	assert.Contains(t, text, "Status: "+models.StatusPending)
	assert.Contains(t, text, "Pickup Location: 12 MG Road")
	assert.NotContains(t, text, "Technician:")
	assert.NotContains(t, text, "Live Location:")
}

func TestBookingSummaryTextDashesForMissingFields(t *testing.T) {
	text := BookingSummaryText(&models.Booking{ID: 7})

	assert.True(t, strings.HasPrefix(text, "Booking ID: 7\n"))
	assert.Contains(t, text, "Customer: -")
	assert.Contains(t, text, "Device: - -")
	assert.Contains(t, text, "Address: -")
}

func TestBuildStatusUpdateText(t *testing.T) {
	b := &models.Booking{
		TrackingID:      "BMR-ABC123-XYZ789",
		Brand:           "Samsung",
		Model:           "Galaxy S22",
		Service:         "Battery Replacement",
		Status:          models.StatusPickupStarted,
		TechnicianName:  "Ravi",
		TechnicianPhone: "9990001111",
		MapURL:          "https://www.google.com/maps?q=12.97,77.59",
		AdminNote:       "  Technician left the hub  ",
	}

	text := BuildStatusUpdateText(b, models.StatusAssigned)

	assert.True(t, strings.HasPrefix(text, "Technician Ravi is on the way"))
	assert.Contains(t, text, "Previous Status: Assigned")
	assert.Contains(t, text, "Current Status: Pickup Started")
	assert.Contains(t, text, "Live Location: https://www.google.com/maps?q=12.97,77.59")
	assert.Contains(t, text, "Admin Update: Technician left the hub")
}

func TestBuildStatusUpdateTextDefaultsStatusToPending(t *testing.T) {
	text := BuildStatusUpdateText(&models.Booking{ID: 9}, "")

	assert.Contains(t, text, "Current Status: "+models.StatusPending)
	assert.Contains(t, text, "Previous Status: -")
	assert.NotContains(t, text, "Admin Update:")
}
