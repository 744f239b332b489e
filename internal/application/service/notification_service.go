package service

import (
	"context"
	"fmt"

	"github.com/eazybank/banking/internal/domain"
	"go.uber.org/zap"
)

// NotificationService handles side effects like SMS, emails, etc.
type NotificationService struct {
	logger *zap.Logger
}

func NewNotificationService(logger *zap.Logger) *NotificationService {
	return &NotificationService{logger: logger}
}

// HandleAccountEvent reacts to account lifecycle events from the stream.
func (s *NotificationService) HandleAccountEvent(ctx context.Context, event domain.DomainEvent) error {
	accountEvent, ok := event.(*domain.AccountEvent)
	if !ok {
		return fmt.Errorf("invalid event type")
	}

	payload := accountEvent.Payload

	s.logger.Info("handling account event",
		zap.String("event_id", event.GetEventID()),
		zap.String("event_type", event.GetEventType()),
		zap.String("mobile_number", payload.MobileNumber),
	)

	var message string
	switch event.GetEventType() {
	case domain.EventTypeAccountCreated:
		message = fmt.Sprintf("Welcome to EazyBank, %s! Your %s account %d is ready.",
			payload.CustomerName, payload.AccountType, payload.AccountNumber)
	case domain.EventTypeAccountUpdated:
		message = fmt.Sprintf("Your account %d details were updated.", payload.AccountNumber)
	case domain.EventTypeAccountDeleted:
		message = fmt.Sprintf("Your account %d has been closed. We are sorry to see you go.", payload.AccountNumber)
	default:
		return fmt.Errorf("unknown event type: %s", event.GetEventType())
	}

	// Simulate SMS sending
	s.logger.Info("SMS notification sent",
		zap.String("mobile_number", payload.MobileNumber),
		zap.String("message", message),
	)

	return nil
}
