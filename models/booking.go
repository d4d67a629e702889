package models

import (
	"crypto/rand"
	"strconv"
	"strings"
	"time"

	"github.com/lib/pq"
)

// Booking status vocabulary. Transitions are validated against membership
// only; any status may follow any other.
const (
	StatusPending       = "Pending"
	StatusAssigned      = "Assigned"
	StatusPickupStarted = "Pickup Started"
	StatusInService     = "In Service"
	StatusInProgress    = "In Progress"
	StatusCompleted     = "Completed"
	StatusCancelled     = "Cancelled"
)

// StatusValues lists the accepted booking statuses in expected
// progression order.
var StatusValues = []string{
	StatusPending,
	StatusAssigned,
	StatusPickupStarted,
	StatusInService,
	StatusInProgress,
	StatusCompleted,
	StatusCancelled,
}

// IsValidStatus reports whether s belongs to the status vocabulary.
func IsValidStatus(s string) bool {
	for _, v := range StatusValues {
		if v == s {
			return true
		}
	}
	return false
}

// StatusListString returns the vocabulary joined for error messages.
func StatusListString() string {
	return strings.Join(StatusValues, ", ")
}

// DefaultPickupOption is the service mode where the provider collects and
// returns the device at the customer's address.
const DefaultPickupOption = "Pickup & Drop"

// IsPickupAndDrop compares a pickup option against the default mode.
// The comparison ignores case.
func IsPickupAndDrop(option string) bool {
	return strings.EqualFold(strings.TrimSpace(option), DefaultPickupOption)
}

// LiveLocation is the last reported technician position for a booking.
type LiveLocation struct {
	Lat       *float64   `json:"lat" gorm:"type:decimal(10,8)"`
	Lng       *float64   `json:"lng" gorm:"type:decimal(11,8)"`
	UpdatedAt *time.Time `json:"updatedAt"`
}

// Booking is the central entity: a device-repair request with its derived
// pickup/location fields, denormalized technician snapshot and status.
type Booking struct {
	ID         uint   `json:"id" gorm:"primaryKey"`
	TrackingID string `json:"trackingId" gorm:"column:tracking_id;uniqueIndex;size:40;not null"`

	Brand          string         `json:"brand" gorm:"size:100;not null"`
	Model          string         `json:"model" gorm:"size:100;not null"`
	Service        string         `json:"service" gorm:"size:200;not null"`
	SelectedIssues pq.StringArray `json:"selectedIssues" gorm:"type:text[]"`
	IssueOne       string         `json:"issueOne" gorm:"size:500"`
	IssueTwo       string         `json:"issueTwo" gorm:"size:500"`

	Name  string `json:"name" gorm:"size:200;not null"`
	Phone string `json:"phone" gorm:"size:30;not null;index"`
	Email string `json:"email" gorm:"size:200"`

	PickupOption  string `json:"pickupOption" gorm:"size:50;default:'Pickup & Drop'"`
	Address       string `json:"address" gorm:"size:500;not null"`
	Location      string `json:"location" gorm:"size:500"`
	PickupAddress string `json:"pickupAddress" gorm:"size:500"`
	PickupPhone   string `json:"pickupPhone" gorm:"size:30"`
	PickupMapURL  string `json:"pickupMapUrl" gorm:"column:pickup_map_url;size:700"`

	Status string `json:"status" gorm:"size:30;default:'Pending'"`

	Technician      string `json:"technician" gorm:"size:200"`
	TechnicianID    *uint  `json:"technicianId" gorm:"column:technician_id"`
	TechnicianName  string `json:"technicianName" gorm:"size:200"`
	TechnicianPhone string `json:"technicianPhone" gorm:"size:30"`

	LiveLocation LiveLocation `json:"liveLocation" gorm:"embedded;embeddedPrefix:live_"`
	MapURL       string       `json:"mapUrl" gorm:"column:map_url;size:700"`

	AdminNote string `json:"adminNote" gorm:"size:1000"`

	CreatedAt time.Time `json:"createdAt" gorm:"autoCreateTime"`
	UpdatedAt time.Time `json:"updatedAt" gorm:"autoUpdateTime"`
}

func (Booking) TableName() string {
	return "bookings"
}

const trackingAlphabet = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ"

// GenerateTrackingID produces a customer-facing booking identifier of the
// form BMR-<base36 millis>-<6 random base36 chars>, uppercase. Uniqueness
// is enforced by the tracking_id unique index; callers retry on conflict.
func GenerateTrackingID() string {
	ts := strings.ToUpper(strconv.FormatInt(time.Now().UnixMilli(), 36))

	buf := make([]byte, 6)
	if _, err := rand.Read(buf); err != nil {
		// crypto/rand is documented to never fail on supported platforms;
		// fall back to a timestamp-derived suffix just in case.
		ns := strings.ToUpper(strconv.FormatInt(time.Now().UnixNano(), 36))
		for len(ns) < 6 {
			ns = "0" + ns
		}
		return "BMR-" + ts + "-" + ns[len(ns)-6:]
	}
	for i, b := range buf {
		buf[i] = trackingAlphabet[int(b)%len(trackingAlphabet)]
	}

	return "BMR-" + ts + "-" + string(buf)
}
