package services

import (
	"fmt"
	"html"
	"strings"

	"bookmyrepair-server/models"
)

func bookingDisplayID(b *models.Booking) string {
	if b.TrackingID != "" {
		return b.TrackingID
	}
	if b.ID != 0 {
		return fmt.Sprintf("%d", b.ID)
	}
	return "-"
}

func orDash(v string) string {
	if v == "" {
		return "-"
	}
	return v
}

func summaryRows(b *models.Booking) [][2]string {
	address := b.Address
	if address == "" {
		address = b.Location
	}
	status := b.Status
	if status == "" {
		status = models.StatusPending
	}
	option := b.PickupOption
	if option == "" {
		option = models.DefaultPickupOption
	}

	rows := [][2]string{
		{"Booking ID", bookingDisplayID(b)},
		{"Customer", orDash(b.Name)},
		{"Phone", orDash(b.Phone)},
		{"Email", orDash(b.Email)},
		{"Device", orDash(b.Brand) + " " + orDash(b.Model)},
		{"Issue", orDash(b.Service)},
		{"Service Mode", option},
		{"Address", orDash(address)},
		{"Status", status},
	}

	if name := technicianDisplayName(b); name != "" {
		rows = append(rows, [2]string{"Technician", name})
	}
	if b.TechnicianPhone != "" {
		rows = append(rows, [2]string{"Technician Phone", b.TechnicianPhone})
	}
	if b.MapURL != "" {
		rows = append(rows, [2]string{"Live Location", b.MapURL})
	}
	if b.PickupAddress != "" {
		rows = append(rows, [2]string{"Pickup Location", b.PickupAddress})
	}
	if b.PickupPhone != "" {
		rows = append(rows, [2]string{"Pickup Phone", b.PickupPhone})
	}
	if b.PickupMapURL != "" {
		rows = append(rows, [2]string{"Pickup Map", b.PickupMapURL})
	}

	return rows
}

// BookingSummaryText renders the plain-text booking summary used in
// creation notifications.
func BookingSummaryText(b *models.Booking) string {
	rows := summaryRows(b)
	lines := make([]string, 0, len(rows))
	for _, row := range rows {
		lines = append(lines, row[0]+": "+row[1])
	}
	return strings.Join(lines, "\n")
}

func bookingSummaryHTML(b *models.Booking) string {
	var table strings.Builder
	for _, row := range summaryRows(b) {
		table.WriteString("<tr><td><strong>" + html.EscapeString(row[0]) + "</strong></td><td>" +
			html.EscapeString(row[1]) + "</td></tr>")
	}

	return `<div style="font-family:Arial,sans-serif;line-height:1.5;">` +
		`<p>Hello,</p>` +
		`<p>Your repair booking has been created successfully.</p>` +
		`<table cellpadding="6" cellspacing="0" border="1" style="border-collapse:collapse;">` +
		table.String() +
		`</table>` +
		`<p>Thank you for booking with us.</p>` +
		`</div>`
}

// StatusMessageLine is the customer-facing headline for a status value.
func StatusMessageLine(status string, b *models.Booking) string {
	normalized := strings.ToLower(strings.TrimSpace(status))
	technicianName := technicianDisplayName(b)

	switch normalized {
	case "pending":
		return "Your phone repair is pending."
	case "assigned":
		if technicianName != "" {
			return fmt.Sprintf("Technician %s has been assigned for your pickup.", technicianName)
		}
		return "A technician has been assigned for your pickup."
	case "pickup started":
		if technicianName != "" {
			return fmt.Sprintf("Technician %s is on the way and should reach you in about 2 minutes.", technicianName)
		}
		return "Your technician is on the way and should reach you in about 2 minutes."
	case "in service":
		return "Your device is now in service."
	case "in progress":
		return "Your phone repair status is In Progress."
	case "completed":
		return "Your phone repair is completed."
	}

	if status == "" {
		status = "updated"
	}
	return fmt.Sprintf("Your phone repair status is %s.", status)
}

// StatusSubject is the email subject for a status-change notification.
func StatusSubject(status string, b *models.Booking) string {
	normalized := strings.ToLower(strings.TrimSpace(status))
	bookingID := bookingDisplayID(b)
	technicianName := technicianDisplayName(b)

	switch normalized {
	case "completed":
		return fmt.Sprintf("Final Confirmation: Repair Completed (%s)", bookingID)
	case "assigned":
		if technicianName != "" {
			return fmt.Sprintf("Technician Assigned: %s (%s)", technicianName, bookingID)
		}
		return fmt.Sprintf("Technician Assigned (%s)", bookingID)
	case "pickup started":
		return fmt.Sprintf("Technician On The Way: ETA 2 Min (%s)", bookingID)
	}

	if status == "" {
		status = "Updated"
	}
	return fmt.Sprintf("Repair Status Update: %s", status)
}

// BuildStatusUpdateText renders the plain-text body of a status-change
// notification.
func BuildStatusUpdateText(b *models.Booking, previousStatus string) string {
	currentStatus := b.Status
	if currentStatus == "" {
		currentStatus = models.StatusPending
	}

	lines := []string{
		StatusMessageLine(currentStatus, b),
		"",
		"Booking ID: " + bookingDisplayID(b),
		"Device: " + orDash(b.Brand) + " " + orDash(b.Model),
		"Issue: " + orDash(b.Service),
		"Previous Status: " + orDash(previousStatus),
		"Current Status: " + currentStatus,
	}

	if name := technicianDisplayName(b); name != "" {
		lines = append(lines, "Technician: "+name)
	}
	if b.TechnicianPhone != "" {
		lines = append(lines, "Technician Phone: "+b.TechnicianPhone)
	}
	if b.MapURL != "" {
		lines = append(lines, "Live Location: "+b.MapURL)
	}
	if b.PickupAddress != "" {
		lines = append(lines, "Pickup Location: "+b.PickupAddress)
	}
	if b.PickupPhone != "" {
		lines = append(lines, "Pickup Phone: "+b.PickupPhone)
	}
	if b.PickupMapURL != "" {
		lines = append(lines, "Pickup Map: "+b.PickupMapURL)
	}
	if note := strings.TrimSpace(b.AdminNote); note != "" {
		lines = append(lines, "Admin Update: "+note)
	}

	return strings.Join(lines, "\n")
}

func buildStatusUpdateHTML(b *models.Booking, previousStatus string) string {
	currentStatus := b.Status
	if currentStatus == "" {
		currentStatus = models.StatusPending
	}

	var body strings.Builder
	body.WriteString(`<div style="font-family:Arial,sans-serif;line-height:1.5;">`)
	body.WriteString("<p>" + html.EscapeString(StatusMessageLine(currentStatus, b)) + "</p>")
	body.WriteString("<p><strong>Booking ID:</strong> " + html.EscapeString(bookingDisplayID(b)) + "</p>")
	body.WriteString("<p><strong>Device:</strong> " + html.EscapeString(orDash(b.Brand)+" "+orDash(b.Model)) + "</p>")
	body.WriteString("<p><strong>Issue:</strong> " + html.EscapeString(orDash(b.Service)) + "</p>")
	body.WriteString("<p><strong>Previous Status:</strong> " + html.EscapeString(orDash(previousStatus)) + "</p>")
	body.WriteString("<p><strong>Current Status:</strong> " + html.EscapeString(currentStatus) + "</p>")

	if name := technicianDisplayName(b); name != "" {
		body.WriteString("<p><strong>Technician:</strong> " + html.EscapeString(name) + "</p>")
	}
	if b.TechnicianPhone != "" {
		body.WriteString("<p><strong>Technician Phone:</strong> " + html.EscapeString(b.TechnicianPhone) + "</p>")
	}
	if b.MapURL != "" {
		body.WriteString(`<p><strong>Live Location:</strong> <a href="` + b.MapURL + `" target="_blank" rel="noreferrer">View Map</a></p>`)
	}
	if b.PickupAddress != "" {
		body.WriteString("<p><strong>Pickup Location:</strong> " + html.EscapeString(b.PickupAddress) + "</p>")
	}
	if b.PickupPhone != "" {
		body.WriteString("<p><strong>Pickup Phone:</strong> " + html.EscapeString(b.PickupPhone) + "</p>")
	}
	if b.PickupMapURL != "" {
		body.WriteString(`<p><strong>Pickup Map:</strong> <a href="` + b.PickupMapURL + `" target="_blank" rel="noreferrer">Open Pickup Map</a></p>`)
	}
	if note := strings.TrimSpace(b.AdminNote); note != "" {
		body.WriteString("<p><strong>Admin Update:</strong> " + html.EscapeString(note) + "</p>")
	}

	body.WriteString("</div>")
	return body.String()
}
