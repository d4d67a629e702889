package websocket

import (
	"encoding/json"
	"log"
	"sync"
	"time"

	"bookmyrepair-server/models"
)

// Event is one tracking update pushed to subscribed customers.
type Event struct {
	Type       string      `json:"type"`
	BookingID  uint        `json:"bookingId"`
	TrackingID string      `json:"trackingId"`
	Data       interface{} `json:"data,omitempty"`
	Timestamp  time.Time   `json:"timestamp"`
}

// Event types emitted by the booking handlers.
const (
	EventStatus       = "status"
	EventLiveLocation = "live-location"
)

// Hub fans booking events out to the websocket clients tracking each
// booking. Clients for different bookings are isolated from each other.
type Hub struct {
	rooms map[uint]map[string]*Client

	Register   chan *Client
	Unregister chan *Client
	Events     chan *Event

	mu sync.RWMutex
}

// NewHub creates a new tracking hub
func NewHub() *Hub {
	return &Hub{
		rooms:      make(map[uint]map[string]*Client),
		Register:   make(chan *Client),
		Unregister: make(chan *Client),
		Events:     make(chan *Event, 64),
	}
}

// Run starts the hub's main loop
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.Register:
			h.mu.Lock()
			if h.rooms[client.BookingID] == nil {
				h.rooms[client.BookingID] = make(map[string]*Client)
			}
			h.rooms[client.BookingID][client.ID] = client
			h.mu.Unlock()
			log.Printf("🔌 Tracking client registered: id=%s booking=%d", client.ID, client.BookingID)

		case client := <-h.Unregister:
			h.mu.Lock()
			if room, ok := h.rooms[client.BookingID]; ok {
				if _, ok := room[client.ID]; ok {
					delete(room, client.ID)
					close(client.Send)
					if len(room) == 0 {
						delete(h.rooms, client.BookingID)
					}
				}
			}
			h.mu.Unlock()
			log.Printf("🔌 Tracking client unregistered: id=%s booking=%d", client.ID, client.BookingID)

		case event := <-h.Events:
			h.deliver(event)
		}
	}
}

func (h *Hub) deliver(event *Event) {
	payload, err := json.Marshal(event)
	if err != nil {
		log.Printf("❌ Failed to marshal tracking event: %v", err)
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()

	for _, client := range h.rooms[event.BookingID] {
		select {
		case client.Send <- payload:
		default:
			// Slow consumer; drop the event rather than block the hub.
			log.Printf("⚠️ Dropping tracking event for slow client %s", client.ID)
		}
	}
}

func (h *Hub) publish(event *Event) {
	select {
	case h.Events <- event:
	default:
		log.Printf("⚠️ Tracking event channel full, dropping %s event for booking %d", event.Type, event.BookingID)
	}
}

// PublishStatus pushes a status transition to a booking's trackers.
func (h *Hub) PublishStatus(b *models.Booking, previousStatus string) {
	h.publish(&Event{
		Type:       EventStatus,
		BookingID:  b.ID,
		TrackingID: b.TrackingID,
		Data: map[string]interface{}{
			"previousStatus": previousStatus,
			"status":         b.Status,
			"technicianName": b.TechnicianName,
			"adminNote":      b.AdminNote,
		},
		Timestamp: time.Now(),
	})
}

// PublishLiveLocation pushes the latest technician position to a
// booking's trackers.
func (h *Hub) PublishLiveLocation(b *models.Booking) {
	h.publish(&Event{
		Type:       EventLiveLocation,
		BookingID:  b.ID,
		TrackingID: b.TrackingID,
		Data: map[string]interface{}{
			"liveLocation": b.LiveLocation,
			"mapUrl":       b.MapURL,
			"status":       b.Status,
		},
		Timestamp: time.Now(),
	})
}
