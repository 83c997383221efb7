package service

import (
	"context"
	"time"

	"bakery-service/internal/broker"
	"bakery-service/internal/mailer"
	"bakery-service/internal/models"
	"bakery-service/internal/transport"
	"bakery-service/internal/util"
	"bakery-service/internal/validate"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ContactService handles contact-form intake. Messages are never persisted;
// a valid submission is forwarded to the notification side-channel and the
// request succeeds regardless of what happens there.
type ContactService struct {
	eventPublisher *broker.EventPublisher
	mailer         *mailer.Mailer
	logger         *zap.Logger
}

// NewContactService creates a contact service. eventPublisher may be nil
// when Kafka is not configured.
func NewContactService(eventPublisher *broker.EventPublisher, mailer *mailer.Mailer) *ContactService {
	return &ContactService{
		eventPublisher: eventPublisher,
		mailer:         mailer,
		logger:         util.GetLogger(),
	}
}

// Submit validates a contact submission and dispatches the notification.
func (s *ContactService) Submit(ctx context.Context, sub *transport.ContactSubmission) validate.Errors {
	ctx, span := util.StartSpan(ctx, "ContactService.Submit")
	defer span.End()

	if verrs := validate.Contact(sub); verrs != nil {
		return verrs
	}

	contact := models.ContactMessage{
		Name:    sub.Name,
		Email:   sub.Email,
		Phone:   sub.Phone,
		Message: sub.Message,
	}

	util.ContactMessagesTotal.Inc()
	s.logger.Info("Contact message received", zap.String("email", contact.Email))

	s.notifyContactReceived(ctx, &contact)
	return nil
}

func (s *ContactService) notifyContactReceived(ctx context.Context, contact *models.ContactMessage) {
	if s.eventPublisher != nil {
		event := &models.ContactReceivedEvent{
			BaseEvent: models.BaseEvent{
				EventID:   uuid.New().String(),
				EventType: models.EventTypeContactReceived,
				Timestamp: time.Now(),
			},
			Contact: *contact,
		}
		err := s.eventPublisher.PublishContactReceived(ctx, event)
		if err == nil {
			return
		}
		s.logger.Error("Failed to publish ContactReceived event, falling back to direct mail",
			zap.String("email", contact.Email), zap.Error(err))
	}

	if s.mailer == nil {
		return
	}
	snapshot := *contact
	go func() {
		if err := s.mailer.SendContactNotification(&snapshot); err != nil {
			util.NotificationsFailedTotal.WithLabelValues("contact").Inc()
			s.logger.Error("Failed to send contact notification",
				zap.String("email", snapshot.Email), zap.Error(err))
		}
	}()
}
