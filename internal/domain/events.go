package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Event types
const (
	EventTypeAccountCreated = "account.created"
	EventTypeAccountUpdated = "account.updated"
	EventTypeAccountDeleted = "account.deleted"
)

// DomainEvent represents a domain event
type DomainEvent interface {
	GetEventID() string
	GetEventType() string
	GetAggregateID() string
	GetOccurredAt() time.Time
	GetPayload() interface{}
}

// BaseEvent provides common event fields
type BaseEvent struct {
	EventID     string    `json:"event_id"`
	EventType   string    `json:"event_type"`
	AggregateID string    `json:"aggregate_id"`
	OccurredAt  time.Time `json:"occurred_at"`
}

func (e BaseEvent) GetEventID() string       { return e.EventID }
func (e BaseEvent) GetEventType() string     { return e.EventType }
func (e BaseEvent) GetAggregateID() string   { return e.AggregateID }
func (e BaseEvent) GetOccurredAt() time.Time { return e.OccurredAt }

// AccountEvent covers the account lifecycle: created, updated, deleted.
// The aggregate id is the customer's mobile number.
type AccountEvent struct {
	BaseEvent
	Payload AccountEventPayload `json:"payload"`
}

func (e AccountEvent) GetPayload() interface{} { return e.Payload }

type AccountEventPayload struct {
	MobileNumber  string `json:"mobile_number"`
	CustomerName  string `json:"customer_name"`
	Email         string `json:"email"`
	AccountNumber int64  `json:"account_number"`
	AccountType   string `json:"account_type"`
	BranchAddress string `json:"branch_address"`
}

func NewAccountEvent(eventType string, payload AccountEventPayload) *AccountEvent {
	return &AccountEvent{
		BaseEvent: BaseEvent{
			EventID:     uuid.New().String(),
			EventType:   eventType,
			AggregateID: payload.MobileNumber,
			OccurredAt:  time.Now(),
		},
		Payload: payload,
	}
}

// EventPublisher interface
type EventPublisher interface {
	Publish(ctx context.Context, event DomainEvent) error
}

// EventSubscriber interface
type EventSubscriber interface {
	Subscribe(ctx context.Context, eventType string, handler EventHandler) error
}

// EventHandler processes events
type EventHandler func(ctx context.Context, event DomainEvent) error
