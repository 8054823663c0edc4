package chat

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBrokerPublishReachesEverySession(t *testing.T) {
	registry := NewRegistry()
	broker := NewBroker(registry)

	phone := newFakeSession("phone")
	laptop := newFakeSession("laptop")
	other := newFakeSession("bob-1")
	registry.Join(alice, phone)
	registry.Join(alice, laptop)
	registry.Join(bob, other)

	broker.Publish(alice, EventUserTyping, &TypingPayload{UserID: bob, IsTyping: true})

	assert.Len(t, phone.received(EventUserTyping), 1)
	assert.Len(t, laptop.received(EventUserTyping), 1)
	assert.Empty(t, other.received(EventUserTyping))
}

func TestBrokerPublishToOfflineUserIsNoop(t *testing.T) {
	broker := NewBroker(NewRegistry())

	// No sessions registered; nothing to deliver, nothing to report.
	broker.Publish(alice, EventNewMessage, &NewMessagePayload{ID: 1})
}

func TestBrokerPublishKeepsSessionOrder(t *testing.T) {
	registry := NewRegistry()
	broker := NewBroker(registry)

	s := newFakeSession("s1")
	registry.Join(alice, s)

	broker.Publish(alice, EventNewMessage, &NewMessagePayload{ID: 1})
	broker.Publish(alice, EventMessageDeleted, &MessageDeletedPayload{MessageID: 1})

	require.Len(t, s.events, 2)
	assert.Equal(t, EventNewMessage, s.events[0].event)
	assert.Equal(t, EventMessageDeleted, s.events[1].event)
}

func TestBrokerFailedEmitDoesNotBlockOthers(t *testing.T) {
	registry := NewRegistry()
	broker := NewBroker(registry)

	dead := newFakeSession("dead")
	dead.fail = true
	live := newFakeSession("live")
	registry.Join(alice, dead)
	registry.Join(alice, live)

	broker.Publish(alice, EventNewMessage, &NewMessagePayload{ID: 1})

	assert.Len(t, live.received(EventNewMessage), 1)
}

func TestBrokerBroadcast(t *testing.T) {
	registry := NewRegistry()
	broker := NewBroker(registry)

	sessions := []*fakeSession{newFakeSession("a"), newFakeSession("b"), newFakeSession("c")}
	registry.Join(alice, sessions[0])
	registry.Join(bob, sessions[1])
	registry.Join(carol, sessions[2])

	broker.Broadcast(EventUserOnline, &PresencePayload{UserID: alice, IsOnline: true})

	for _, s := range sessions {
		assert.Len(t, s.received(EventUserOnline), 1)
	}
}
