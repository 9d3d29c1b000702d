package events

import (
	"time"

	"github.com/google/uuid"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventUserAuthenticated    EventType = "user_authenticated"
	EventAuthenticationFailed EventType = "authentication_failed"
	EventUserRegistered       EventType = "user_registered"
	EventPasswordChanged      EventType = "password_changed"
	EventCustomerCreated      EventType = "customer_created"
)

// Actor identifies the account an event is about. AccountID is zero when
// the account is unknown, as for a failed login.
type Actor struct {
	AccountID int64  `json:"account_id,omitempty"`
	Username  string `json:"username"`
}

// Event represents a domain event emitted by services.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	Actor     Actor       `json:"actor"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload,omitempty"`
}

// New stamps an event with a fresh id and the current time.
func New(eventType EventType, actor Actor, payload interface{}) Event {
	return Event{
		ID:        uuid.NewString(),
		Type:      eventType,
		Actor:     actor,
		Timestamp: time.Now().UTC(),
		Payload:   payload,
	}
}

// AuthenticationFailedPayload payload.
type AuthenticationFailedPayload struct {
	Reason string `json:"reason"`
}

// UserRegisteredPayload payload.
type UserRegisteredPayload struct {
	Role string `json:"role"`
}

// CustomerCreatedPayload payload.
type CustomerCreatedPayload struct {
	CustomerID int64 `json:"customer_id"`
}
