package websocket

import (
	"encoding/json"
	"testing"
	"time"

	"bookmyrepair-server/models"
)

func newTestClient(hub *Hub, id string, bookingID uint) *Client {
	return &Client{
		Hub:       hub,
		ID:        id,
		BookingID: bookingID,
		Send:      make(chan []byte, 8),
	}
}

func receiveEvent(t *testing.T, c *Client) *Event {
	t.Helper()
	select {
	case payload := <-c.Send:
		var event Event
		if err := json.Unmarshal(payload, &event); err != nil {
			t.Fatalf("unmarshal event: %v", err)
		}
		return &event
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for event")
		return nil
	}
}

func expectNoEvent(t *testing.T, c *Client) {
	t.Helper()
	select {
	case payload := <-c.Send:
		t.Fatalf("unexpected event: %s", payload)
	case <-time.After(100 * time.Millisecond):
	}
}

func TestHubDeliversStatusToBookingRoom(t *testing.T) {
	hub := NewHub()
	go hub.Run()

	client := newTestClient(hub, "c1", 7)
	hub.Register <- client

	booking := &models.Booking{ID: 7, TrackingID: "BMR-ABC123-XYZ789", Status: models.StatusAssigned, TechnicianName: "Ravi"}
	hub.PublishStatus(booking, models.StatusPending)

	event := receiveEvent(t, client)
	if event.Type != EventStatus {
		t.Fatalf("expected %q event, got %q", EventStatus, event.Type)
	}
	if event.BookingID != 7 {
		t.Fatalf("expected booking 7, got %d", event.BookingID)
	}
	if event.TrackingID != "BMR-ABC123-XYZ789" {
		t.Fatalf("unexpected tracking id %q", event.TrackingID)
	}

	data, ok := event.Data.(map[string]interface{})
	if !ok {
		t.Fatalf("expected data object, got %T", event.Data)
	}
	if data["status"] != models.StatusAssigned {
		t.Fatalf("expected status %q, got %v", models.StatusAssigned, data["status"])
	}
	if data["previousStatus"] != models.StatusPending {
		t.Fatalf("expected previous status %q, got %v", models.StatusPending, data["previousStatus"])
	}
}

func TestHubIsolatesBookingRooms(t *testing.T) {
	hub := NewHub()
	go hub.Run()

	mine := newTestClient(hub, "mine", 1)
	other := newTestClient(hub, "other", 2)
	hub.Register <- mine
	hub.Register <- other

	hub.PublishLiveLocation(&models.Booking{ID: 1, MapURL: "https://www.google.com/maps?q=1,2"})

	event := receiveEvent(t, mine)
	if event.Type != EventLiveLocation {
		t.Fatalf("expected %q event, got %q", EventLiveLocation, event.Type)
	}
	expectNoEvent(t, other)
}

func TestHubFansOutToAllRoomClients(t *testing.T) {
	hub := NewHub()
	go hub.Run()

	first := newTestClient(hub, "first", 3)
	second := newTestClient(hub, "second", 3)
	hub.Register <- first
	hub.Register <- second

	hub.PublishStatus(&models.Booking{ID: 3, Status: models.StatusCompleted}, models.StatusInProgress)

	receiveEvent(t, first)
	receiveEvent(t, second)
}

func TestHubUnregisterClosesSendChannel(t *testing.T) {
	hub := NewHub()
	go hub.Run()

	client := newTestClient(hub, "gone", 4)
	hub.Register <- client
	hub.Unregister <- client

	select {
	case _, open := <-client.Send:
		if open {
			t.Fatal("expected send channel to be closed")
		}
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for channel close")
	}

	// Publishing after unregister must not panic or deliver.
	hub.PublishStatus(&models.Booking{ID: 4, Status: models.StatusCancelled}, models.StatusPending)
	time.Sleep(50 * time.Millisecond)
}
