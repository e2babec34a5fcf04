package app

import (
	"context"

	"github.com/dshills/deckforge/internal/deck"
	"github.com/dshills/deckforge/internal/event"
	"github.com/dshills/deckforge/internal/event/events"
)

// subscribeLogging wires the logger into the event bus. It runs at low
// priority so real handlers see every event first.
func (app *Application) subscribeLogging() {
	log := app.logger.WithComponent("events")

	_, err := app.eventBus.SubscribeFunc("**", func(_ context.Context, ev any) error {
		if tp, ok := ev.(event.TopicProvider); ok {
			log.Debug("event %s", tp.EventTopic())
		}
		return nil
	}, event.WithPriority(event.PriorityLow))
	if err != nil {
		app.logger.Warn("event logging: %v", err)
	}
}

// observeDeck bridges deck mutations onto the event bus so the UI and
// macros can react to edits regardless of who made them.
func (app *Application) observeDeck() {
	app.deck.SetObserver(func(ch deck.Change) {
		switch ch.Kind {
		case deck.ChangeEntryAdded:
			publish(app, events.TopicDeckEntryAdded, events.DeckEntryAdded{
				CardName: ch.Entry.Card.Name,
				Zone:     ch.Entry.Zone,
				Count:    ch.NewCount,
			})
		case deck.ChangeEntryRemoved:
			publish(app, events.TopicDeckEntryRemoved, events.DeckEntryRemoved{
				CardName: ch.Entry.Card.Name,
				Zone:     ch.Entry.Zone,
			})
		case deck.ChangeCountChanged:
			publish(app, events.TopicDeckEntryCountChanged, events.DeckEntryCountChanged{
				CardName: ch.Entry.Card.Name,
				Zone:     ch.Entry.Zone,
				OldCount: ch.OldCount,
				NewCount: ch.NewCount,
			})
		case deck.ChangeCleared:
			publish(app, events.TopicDeckCleared, events.DeckCleared{Name: ch.Name})
		}
	})
}
