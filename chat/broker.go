package chat

import "log"

// Broker fans an event out to live sessions. Delivery is at-most-once per
// currently registered session with no queuing for absent users; durability
// is the store's job, not the broker's.
type Broker interface {
	Publish(userID uint, event string, payload any)
	Broadcast(event string, payload any)
}

type sessionBroker struct {
	registry *Registry
}

func NewBroker(registry *Registry) Broker {
	return &sessionBroker{registry: registry}
}

func (b *sessionBroker) Publish(userID uint, event string, payload any) {
	for _, s := range b.registry.SessionsFor(userID) {
		if err := s.Emit(event, payload); err != nil {
			log.Printf("chat: dropped %s for session %s: %v", event, s.ID(), err)
		}
	}
}

func (b *sessionBroker) Broadcast(event string, payload any) {
	for _, s := range b.registry.All() {
		if err := s.Emit(event, payload); err != nil {
			log.Printf("chat: dropped %s for session %s: %v", event, s.ID(), err)
		}
	}
}
