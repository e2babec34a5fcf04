package event

import (
	"context"
	"sort"
	"sync"
	"sync/atomic"

	"github.com/dshills/deckforge/internal/event/topic"
)

// Bus is the central notification hub. Components publish typed events and
// subscribe to dot-notation topic patterns.
type Bus interface {
	// Publish delivers an event synchronously to every matching active
	// subscription, in priority order. Handler errors and panics are
	// counted, not propagated; delivery continues to later handlers.
	Publish(ctx context.Context, event any) error

	// Subscribe registers a handler for a topic pattern. The pattern may
	// contain "*" and "**" wildcards.
	Subscribe(pattern topic.Topic, handler Handler, opts ...SubscriptionOption) (Subscription, error)

	// SubscribeFunc is a convenience wrapper around Subscribe.
	SubscribeFunc(pattern topic.Topic, fn HandlerFunc, opts ...SubscriptionOption) (Subscription, error)

	// Unsubscribe cancels and removes a subscription.
	Unsubscribe(sub Subscription) error

	// Stats returns current bus counters.
	Stats() Stats
}

// bus is the default synchronous Bus implementation.
type bus struct {
	mu   sync.RWMutex
	subs map[string]*subscription

	eventsPublished atomic.Uint64
	eventsDelivered atomic.Uint64
	handlerErrors   atomic.Uint64
	handlerPanics   atomic.Uint64
}

// NewBus creates an empty event bus, ready for use.
func NewBus() Bus {
	return &bus{subs: make(map[string]*subscription)}
}

// Publish delivers the event to matching subscriptions.
func (b *bus) Publish(ctx context.Context, event any) error {
	tp, ok := event.(TopicProvider)
	if !ok {
		return ErrInvalidEvent
	}
	eventTopic := tp.EventTopic()
	if eventTopic == "" {
		return ErrInvalidEvent
	}

	matched := b.matchActive(eventTopic)
	if len(matched) == 0 {
		return nil
	}

	b.eventsPublished.Add(1)

	for _, sub := range matched {
		if !sub.shouldDeliver(event) {
			continue
		}
		if b.deliver(ctx, sub, event) && sub.config.Once {
			sub.Cancel()
			b.remove(sub.id)
		}
	}
	return nil
}

// deliver runs one handler with panic isolation. A handler panic must not
// take down the publisher.
func (b *bus) deliver(ctx context.Context, sub *subscription, event any) (delivered bool) {
	defer func() {
		if r := recover(); r != nil {
			b.handlerPanics.Add(1)
			delivered = false
		}
	}()

	if err := sub.handler.Handle(ctx, event); err != nil {
		b.handlerErrors.Add(1)
		return false
	}
	b.eventsDelivered.Add(1)
	return true
}

// Subscribe registers a handler for a topic pattern.
func (b *bus) Subscribe(pattern topic.Topic, handler Handler, opts ...SubscriptionOption) (Subscription, error) {
	if handler == nil {
		return nil, ErrNilHandler
	}
	if !pattern.IsValid() {
		return nil, ErrInvalidTopic
	}

	sub := newSubscription(generateID(), pattern, handler, opts...)

	b.mu.Lock()
	b.subs[sub.id] = sub
	b.mu.Unlock()

	return sub, nil
}

// SubscribeFunc registers a function handler for a topic pattern.
func (b *bus) SubscribeFunc(pattern topic.Topic, fn HandlerFunc, opts ...SubscriptionOption) (Subscription, error) {
	return b.Subscribe(pattern, fn, opts...)
}

// Unsubscribe cancels and removes a subscription.
func (b *bus) Unsubscribe(sub Subscription) error {
	if sub == nil {
		return ErrInvalidSubscription
	}
	sub.Cancel()
	if !b.remove(sub.ID()) {
		return ErrSubscriptionNotFound
	}
	return nil
}

// Stats returns current bus counters.
func (b *bus) Stats() Stats {
	b.mu.RLock()
	active := 0
	for _, sub := range b.subs {
		if sub.IsActive() {
			active++
		}
	}
	b.mu.RUnlock()

	return Stats{
		EventsPublished:   b.eventsPublished.Load(),
		EventsDelivered:   b.eventsDelivered.Load(),
		HandlerErrors:     b.handlerErrors.Load(),
		HandlerPanics:     b.handlerPanics.Load(),
		ActiveSubscribers: active,
	}
}

// matchActive returns active subscriptions whose pattern matches eventTopic,
// sorted by priority. The snapshot is taken under the read lock so handlers
// may subscribe or unsubscribe during delivery.
func (b *bus) matchActive(eventTopic topic.Topic) []*subscription {
	b.mu.RLock()
	var matched []*subscription
	for _, sub := range b.subs {
		if sub.IsActive() && eventTopic.Matches(sub.topic) {
			matched = append(matched, sub)
		}
	}
	b.mu.RUnlock()

	sort.SliceStable(matched, func(i, j int) bool {
		return matched[i].config.Priority < matched[j].config.Priority
	})
	return matched
}

func (b *bus) remove(id string) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	if _, ok := b.subs[id]; !ok {
		return false
	}
	delete(b.subs, id)
	return true
}
