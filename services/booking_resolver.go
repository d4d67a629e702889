package services

import (
	"time"

	"bookmyrepair-server/models"
	"bookmyrepair-server/utils"
)

// DerivedLocation carries the address/pickup fields computed from a patch
// against prior booking state. A Set* flag marks a field the request
// actually changes; unflagged fields keep their stored value.
type DerivedLocation struct {
	Address       string
	Location      string
	PickupOption  string
	PickupAddress string
	PickupPhone   string
	PickupMapURL  string

	SetAddress       bool
	SetLocation      bool
	SetPickupOption  bool
	SetPickupAddress bool
	SetPickupPhone   bool
	SetPickupMapURL  bool
}

// ResolveLocation computes the derived location fields for a booking
// mutation. existing is nil at creation time. The patch must already be
// normalized.
//
// Rules, in order:
//  1. address from explicit address, else explicit location;
//  2. back-fill the counterpart view when only one of address/location
//     was supplied;
//  3. pickupOption from explicit input, else existing, else the default
//     "Pickup & Drop" mode;
//  4. pickupAddress from explicit input; else re-derived from the
//     effective option and address whenever this request changed either;
//  5. pickupMapUrl follows pickupAddress deterministically;
//  6. pickupPhone symmetric to rule 4, with phone in place of address.
func ResolveLocation(existing *models.Booking, p *BookingPatch) DerivedLocation {
	var d DerivedLocation

	existingAddress, existingPhone, existingOption := "", "", ""
	if existing != nil {
		existingAddress = existing.Address
		existingPhone = existing.Phone
		existingOption = existing.PickupOption
	}

	if p.Address != nil {
		d.Address = *p.Address
		d.SetAddress = true
	}
	if p.Location != nil {
		d.Location = *p.Location
		d.SetLocation = true
	}
	if d.SetAddress && !d.SetLocation && d.Address != "" {
		d.Location = d.Address
		d.SetLocation = true
	}
	if d.SetLocation && !d.SetAddress && d.Location != "" {
		d.Address = d.Location
		d.SetAddress = true
	}

	// An explicit empty pickupOption is ignored: the field is enum-like
	// and always falls back to the stored value or the default mode.
	if p.PickupOption != nil && *p.PickupOption != "" {
		d.PickupOption = *p.PickupOption
		d.SetPickupOption = true
	}
	effectiveOption := existingOption
	if d.SetPickupOption {
		effectiveOption = d.PickupOption
	}
	if effectiveOption == "" {
		effectiveOption = models.DefaultPickupOption
		if existing == nil {
			d.PickupOption = effectiveOption
			d.SetPickupOption = true
		}
	}

	addressChanged := d.SetAddress || d.SetLocation
	effectiveAddress := existingAddress
	if d.SetAddress && d.Address != "" {
		effectiveAddress = d.Address
	}

	switch {
	case p.PickupAddress != nil:
		d.PickupAddress = *p.PickupAddress
		d.SetPickupAddress = true
	case d.SetPickupOption || addressChanged || existing == nil:
		if models.IsPickupAndDrop(effectiveOption) {
			d.PickupAddress = effectiveAddress
		} else {
			d.PickupAddress = ""
		}
		d.SetPickupAddress = true
	}

	if p.PickupMapURL != nil {
		d.PickupMapURL = *p.PickupMapURL
		d.SetPickupMapURL = true
	}
	if d.SetPickupAddress {
		d.PickupMapURL = utils.BuildAddressMapURL(d.PickupAddress)
		d.SetPickupMapURL = true
	}

	phoneChanged := p.Phone != nil
	effectivePhone := existingPhone
	if phoneChanged && *p.Phone != "" {
		effectivePhone = *p.Phone
	}

	switch {
	case p.PickupPhone != nil:
		d.PickupPhone = *p.PickupPhone
		d.SetPickupPhone = true
	case d.SetPickupOption || phoneChanged || existing == nil:
		if models.IsPickupAndDrop(effectiveOption) {
			d.PickupPhone = effectivePhone
		} else {
			d.PickupPhone = ""
		}
		d.SetPickupPhone = true
	}

	return d
}

// ResolveLiveLocation produces the live-location snapshot stamped now,
// together with its deterministic map link, when both coordinates are
// present and finite.
func ResolveLiveLocation(p *BookingPatch) (*models.LiveLocation, string, bool) {
	lat, lng, ok := p.Coordinates()
	if !ok {
		return nil, "", false
	}
	now := time.Now()
	return &models.LiveLocation{Lat: lat, Lng: lng, UpdatedAt: &now}, utils.BuildCoordinateMapURL(lat, lng), true
}
