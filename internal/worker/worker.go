package worker

import (
	"context"
	"log"

	"bakery-service/internal/broker"
	"bakery-service/internal/mailer"
	"bakery-service/internal/models"
	"bakery-service/internal/util"
)

// NotificationWorker drains the notification topic and drives the mailer.
// Send failures are counted and logged; messages are still committed so a
// broken relay cannot wedge the consumer group. Best-effort is the contract.
type NotificationWorker struct {
	consumer     *broker.Consumer
	eventHandler *broker.EventHandler
	mailer       *mailer.Mailer
}

// NewNotificationWorker creates a new notification worker
func NewNotificationWorker(consumer *broker.Consumer, m *mailer.Mailer) *NotificationWorker {
	eventHandler := broker.NewEventHandler()
	w := &NotificationWorker{
		consumer:     consumer,
		eventHandler: eventHandler,
		mailer:       m,
	}

	eventHandler.OnOrderCreated(w.handleOrderCreated)
	eventHandler.OnContactReceived(w.handleContactReceived)

	return w
}

// Start starts the worker
func (w *NotificationWorker) Start(ctx context.Context) error {
	log.Println("Starting notification worker...")
	return w.consumer.StartConsuming(ctx, w.eventHandler.HandleMessage)
}

// Stop stops the worker
func (w *NotificationWorker) Stop() error {
	log.Println("Stopping notification worker...")
	return w.consumer.Close()
}

func (w *NotificationWorker) handleOrderCreated(ctx context.Context, event *models.OrderCreatedEvent) error {
	if err := w.mailer.SendOrderConfirmation(&event.Order); err != nil {
		util.NotificationsFailedTotal.WithLabelValues("order").Inc()
		log.Printf("Failed to send order confirmation for %s: %v", event.Order.OrderNumber, err)
		return nil
	}
	if w.mailer.Enabled() {
		util.NotificationsSentTotal.WithLabelValues("order").Inc()
	}
	return nil
}

func (w *NotificationWorker) handleContactReceived(ctx context.Context, event *models.ContactReceivedEvent) error {
	if err := w.mailer.SendContactNotification(&event.Contact); err != nil {
		util.NotificationsFailedTotal.WithLabelValues("contact").Inc()
		log.Printf("Failed to send contact notification from %s: %v", event.Contact.Email, err)
		return nil
	}
	if w.mailer.Enabled() {
		util.NotificationsSentTotal.WithLabelValues("contact").Inc()
	}
	return nil
}
