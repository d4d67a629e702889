package services

import (
	"bookmyrepair-server/utils"
)

// PatchCoordinates mirrors the nested liveLocation object accepted by the
// booking endpoints.
type PatchCoordinates struct {
	Lat *float64 `json:"lat"`
	Lng *float64 `json:"lng"`
}

// BookingPatch is the explicit partial-update body for bookings. Every
// attribute is a pointer: nil means "field omitted, leave unchanged",
// non-nil means "apply this value", including an explicit empty string.
type BookingPatch struct {
	Brand          *string   `json:"brand"`
	Model          *string   `json:"model"`
	Service        *string   `json:"service"`
	SelectedIssues *[]string `json:"selectedIssues"`
	IssueOne       *string   `json:"issueOne"`
	IssueTwo       *string   `json:"issueTwo"`

	Name  *string `json:"name"`
	Phone *string `json:"phone"`
	Email *string `json:"email"`

	PickupOption  *string `json:"pickupOption"`
	Address       *string `json:"address"`
	Location      *string `json:"location"`
	PickupAddress *string `json:"pickupAddress"`
	PickupPhone   *string `json:"pickupPhone"`
	PickupMapURL  *string `json:"pickupMapUrl"`

	Status    *string `json:"status"`
	AdminNote *string `json:"adminNote"`

	TechnicianID    *uint   `json:"technicianId"`
	Technician      *string `json:"technician"`
	TechnicianName  *string `json:"technicianName"`
	TechnicianPhone *string `json:"technicianPhone"`

	MapURL       *string           `json:"mapUrl"`
	Lat          *float64          `json:"lat"`
	Lng          *float64          `json:"lng"`
	LiveLocation *PatchCoordinates `json:"liveLocation"`
}

// Normalize cleans every present field in place: strings are trimmed,
// emails lower-cased, empty issue tags dropped, coordinates reduced to
// finite numbers or nil. It never fails; validation belongs to the
// handlers.
func (p *BookingPatch) Normalize() {
	cleanInPlace := func(s *string) {
		if s != nil {
			*s = utils.CleanString(*s)
		}
	}

	cleanInPlace(p.Brand)
	cleanInPlace(p.Model)
	cleanInPlace(p.Service)
	cleanInPlace(p.IssueOne)
	cleanInPlace(p.IssueTwo)
	cleanInPlace(p.Name)
	cleanInPlace(p.PickupOption)
	cleanInPlace(p.Address)
	cleanInPlace(p.Location)
	cleanInPlace(p.PickupAddress)
	cleanInPlace(p.PickupMapURL)
	cleanInPlace(p.Status)
	cleanInPlace(p.AdminNote)
	cleanInPlace(p.Technician)
	cleanInPlace(p.TechnicianName)
	cleanInPlace(p.MapURL)

	if p.Email != nil {
		*p.Email = utils.CleanEmail(*p.Email)
	}
	if p.Phone != nil {
		*p.Phone = utils.CleanPhone(*p.Phone)
	}
	if p.PickupPhone != nil {
		*p.PickupPhone = utils.CleanPhone(*p.PickupPhone)
	}
	if p.TechnicianPhone != nil {
		*p.TechnicianPhone = utils.CleanPhone(*p.TechnicianPhone)
	}

	if p.SelectedIssues != nil {
		*p.SelectedIssues = utils.CleanIssues(*p.SelectedIssues)
	}

	p.Lat = utils.FiniteOrNil(p.Lat)
	p.Lng = utils.FiniteOrNil(p.Lng)
	if p.LiveLocation != nil {
		p.LiveLocation.Lat = utils.FiniteOrNil(p.LiveLocation.Lat)
		p.LiveLocation.Lng = utils.FiniteOrNil(p.LiveLocation.Lng)
	}
}

// Coordinates resolves the coordinate pair from either the top-level
// lat/lng fields or the nested liveLocation object, nested values first.
// Both must be present and finite for ok to be true.
func (p *BookingPatch) Coordinates() (lat, lng *float64, ok bool) {
	lat, lng = p.Lat, p.Lng
	if p.LiveLocation != nil {
		if p.LiveLocation.Lat != nil {
			lat = p.LiveLocation.Lat
		}
		if p.LiveLocation.Lng != nil {
			lng = p.LiveLocation.Lng
		}
	}
	return lat, lng, lat != nil && lng != nil
}

// ResolvedTechnicianName picks the technician display name from either the
// technicianName or technician alias field.
func (p *BookingPatch) ResolvedTechnicianName() string {
	if p.TechnicianName != nil && *p.TechnicianName != "" {
		return *p.TechnicianName
	}
	if p.Technician != nil {
		return *p.Technician
	}
	return ""
}

// TechnicianProvided reports whether any technician name field was part of
// the request.
func (p *BookingPatch) TechnicianProvided() bool {
	return p.Technician != nil || p.TechnicianName != nil
}
