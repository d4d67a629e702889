package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bookmyrepair-server/config"
	"bookmyrepair-server/models"
)

func TestDispatcherUnconfiguredChannels(t *testing.T) {
	d := NewDispatcher(&config.Config{})
	b := &models.Booking{TrackingID: "BMR-ABC123-XYZ789", Email: "asha@example.com", Phone: "9876543210"}

	result := d.SendBookingCreated(b)

	assert.False(t, result.Email.Configured)
	assert.False(t, result.Email.CustomerSent)
	assert.False(t, result.Email.AdminSent)
	require.NotEmpty(t, result.Email.Errors)

	assert.False(t, result.WhatsApp.Configured)
	assert.False(t, result.WhatsApp.CustomerSent)
	require.NotEmpty(t, result.WhatsApp.Errors)

	status := d.SendStatusChanged(b, models.StatusPending)
	assert.False(t, status.Email.Configured)
	assert.False(t, status.WhatsApp.Configured)
}

func TestDispatcherPlaceholderPasswordIsUnconfigured(t *testing.T) {
	cfg := &config.Config{}
	cfg.Mail.User = "shop@example.com"
	cfg.Mail.AppPassword = "REPLACE_WITH_REAL_PASSWORD"

	d := NewDispatcher(cfg)
	assert.False(t, d.emailConfigured())

	cfg.Mail.AppPassword = "abcdwxyzabcdwxyz"
	d = NewDispatcher(cfg)
	assert.True(t, d.emailConfigured())
}
