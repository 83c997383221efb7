package broker

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"bakery-service/internal/models"

	"github.com/segmentio/kafka-go"
)

// EventPublisher handles publishing notification events
type EventPublisher struct {
	producer *Producer
}

// NewEventPublisher creates a new event publisher
func NewEventPublisher(producer *Producer) *EventPublisher {
	return &EventPublisher{producer: producer}
}

// PublishOrderCreated publishes an OrderCreated event keyed by order number.
func (ep *EventPublisher) PublishOrderCreated(ctx context.Context, event *models.OrderCreatedEvent) error {
	return ep.producer.PublishEvent(ctx, event.Order.OrderNumber, event)
}

// PublishContactReceived publishes a ContactReceived event keyed by sender.
func (ep *EventPublisher) PublishContactReceived(ctx context.Context, event *models.ContactReceivedEvent) error {
	key := fmt.Sprintf("contact-%s", event.Contact.Email)
	return ep.producer.PublishEvent(ctx, key, event)
}

// EventHandler routes consumed notification events to registered callbacks.
type EventHandler struct {
	onOrderCreated    func(context.Context, *models.OrderCreatedEvent) error
	onContactReceived func(context.Context, *models.ContactReceivedEvent) error
}

// NewEventHandler creates a new event handler
func NewEventHandler() *EventHandler {
	return &EventHandler{}
}

// OnOrderCreated registers a handler for OrderCreated events
func (eh *EventHandler) OnOrderCreated(handler func(context.Context, *models.OrderCreatedEvent) error) {
	eh.onOrderCreated = handler
}

// OnContactReceived registers a handler for ContactReceived events
func (eh *EventHandler) OnContactReceived(handler func(context.Context, *models.ContactReceivedEvent) error) {
	eh.onContactReceived = handler
}

// HandleMessage routes messages to appropriate handlers
func (eh *EventHandler) HandleMessage(ctx context.Context, msg kafka.Message) error {
	var baseEvent models.BaseEvent
	if err := json.Unmarshal(msg.Value, &baseEvent); err != nil {
		return fmt.Errorf("failed to unmarshal base event: %w", err)
	}

	log.Printf("Handling event: type=%s, id=%s", baseEvent.EventType, baseEvent.EventID)

	switch baseEvent.EventType {
	case models.EventTypeOrderCreated:
		if eh.onOrderCreated != nil {
			var event models.OrderCreatedEvent
			if err := json.Unmarshal(msg.Value, &event); err != nil {
				return fmt.Errorf("failed to unmarshal OrderCreated event: %w", err)
			}
			return eh.onOrderCreated(ctx, &event)
		}

	case models.EventTypeContactReceived:
		if eh.onContactReceived != nil {
			var event models.ContactReceivedEvent
			if err := json.Unmarshal(msg.Value, &event); err != nil {
				return fmt.Errorf("failed to unmarshal ContactReceived event: %w", err)
			}
			return eh.onContactReceived(ctx, &event)
		}

	default:
		log.Printf("Unhandled event type: %s", baseEvent.EventType)
	}

	return nil
}
