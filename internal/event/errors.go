package event

import "errors"

// Sentinel errors for the event bus.
var (
	ErrNilHandler           = errors.New("handler is nil")
	ErrInvalidTopic         = errors.New("topic pattern is invalid")
	ErrInvalidEvent         = errors.New("event does not provide a topic")
	ErrInvalidSubscription  = errors.New("subscription is nil")
	ErrSubscriptionNotFound = errors.New("subscription not found")
)
