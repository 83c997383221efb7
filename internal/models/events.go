package models

import "time"

// Event types
const (
	EventTypeOrderCreated    = "ORDER_CREATED"
	EventTypeContactReceived = "CONTACT_RECEIVED"
)

// BaseEvent contains common fields for all events
type BaseEvent struct {
	EventID   string    `json:"event_id"`
	EventType string    `json:"event_type"`
	Timestamp time.Time `json:"timestamp"`
}

// OrderCreatedEvent published after an order is persisted. Carries the full
// order so the notification worker can format the confirmation without a
// read back to the store.
type OrderCreatedEvent struct {
	BaseEvent
	Order Order `json:"order"`
}

// ContactReceivedEvent published when a contact form is submitted.
type ContactReceivedEvent struct {
	BaseEvent
	Contact ContactMessage `json:"contact"`
}
