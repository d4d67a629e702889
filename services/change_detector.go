package services

import (
	"strings"

	"bookmyrepair-server/models"
)

// ChangeFlags records which customer-relevant fields were explicitly part
// of a request. Fields only count as changed when they were asked for:
// re-saving identical data must not spam the customer.
type ChangeFlags struct {
	StatusProvided          bool
	AdminNoteProvided       bool
	ServiceProvided         bool
	TechnicianProvided      bool
	TechnicianPhoneProvided bool
	CoordinatesProvided     bool
	PickupAddressSet        bool
	PickupPhoneSet          bool
}

func technicianDisplayName(b *models.Booking) string {
	if b.TechnicianName != "" {
		return b.TechnicianName
	}
	return b.Technician
}

// ShouldNotifyCustomer compares the previous and next booking snapshots
// and decides whether the mutation warrants a customer notification.
func ShouldNotifyCustomer(prev, next *models.Booking, flags ChangeFlags) bool {
	statusChanged := flags.StatusProvided &&
		!strings.EqualFold(strings.TrimSpace(prev.Status), strings.TrimSpace(next.Status))

	adminNoteChanged := flags.AdminNoteProvided &&
		strings.TrimSpace(prev.AdminNote) != strings.TrimSpace(next.AdminNote)

	serviceChanged := flags.ServiceProvided &&
		strings.TrimSpace(prev.Service) != strings.TrimSpace(next.Service)

	technicianChanged := flags.TechnicianProvided &&
		technicianDisplayName(prev) != technicianDisplayName(next)

	technicianPhoneChanged := flags.TechnicianPhoneProvided &&
		prev.TechnicianPhone != next.TechnicianPhone

	mapAddedOrChanged := flags.CoordinatesProvided || prev.MapURL != next.MapURL

	pickupAddressChanged := flags.PickupAddressSet && prev.PickupAddress != next.PickupAddress

	pickupPhoneChanged := flags.PickupPhoneSet && prev.PickupPhone != next.PickupPhone

	return statusChanged ||
		adminNoteChanged ||
		serviceChanged ||
		technicianChanged ||
		technicianPhoneChanged ||
		mapAddedOrChanged ||
		pickupAddressChanged ||
		pickupPhoneChanged
}
