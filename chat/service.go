package chat

import (
	"log"

	"pairchat-service/model"
)

// Name substituted when the sender lookup fails; the failure is non-fatal.
const unknownSender = "Unknown"

// Service orchestrates the store, the presence registry and the broker for
// every inbound live-channel event. Persistence always completes (or fails)
// before any broadcast goes out, and the service never holds state across
// the store call and the publish calls.
type Service struct {
	store    MessageStore
	broker   Broker
	users    UserDirectory
	lastSeen LastSeenStore
}

func NewService(store MessageStore, broker Broker, users UserDirectory, lastSeen LastSeenStore) *Service {
	return &Service{
		store:    store,
		broker:   broker,
		users:    users,
		lastSeen: lastSeen,
	}
}

// Send persists the message and fans it out to both participants. The
// sender receives its own message back as the durable-write acknowledgment
// carrying the authoritative id and timestamp. The returned payload is what
// went over the wire.
func (s *Service) Send(ev SendMessageEvent) (*NewMessagePayload, error) {
	var att *Attachment
	if ev.Type != "" && ev.Type != "text" {
		att = &Attachment{
			Type:     ev.Type,
			MediaURL: ev.MediaURL,
			FileSize: ev.FileSize,
			Duration: ev.Duration,
		}
	}

	message, err := s.store.Append(ev.SenderID, ev.ReceiverID, ev.Body, att)
	if err != nil {
		return nil, err
	}

	senderName, err := s.users.DisplayName(message.SenderID)
	if err != nil {
		log.Printf("chat: sender name lookup for user %d failed: %v", message.SenderID, err)
		senderName = unknownSender
	}

	payload := &NewMessagePayload{
		ID:          message.ID,
		SenderID:    message.SenderID,
		ReceiverID:  message.ReceiverID,
		MessageText: message.Body,
		SenderName:  senderName,
		Timestamp:   message.CreatedAt,
		MessageType: message.Type,
		MediaURL:    message.MediaURL,
		FileSize:    message.FileSize,
		Duration:    message.Duration,
		Status:      message.Status,
	}

	s.broker.Publish(message.ReceiverID, EventNewMessage, payload)
	s.broker.Publish(message.SenderID, EventNewMessage, payload)

	// Secondary, lossy signal; its fate never affects the delivery above.
	s.broker.Publish(message.ReceiverID, EventNewNotification, &NotificationPayload{
		SenderID:    message.SenderID,
		SenderName:  senderName,
		MessageText: message.Body,
		MessageID:   message.ID,
		Timestamp:   message.CreatedAt,
	})

	return payload, nil
}

// DeleteForMe hides the message for the requesting user only and confirms
// on that user's own channel. The other participant sees nothing.
func (s *Service) DeleteForMe(messageID, userID uint) error {
	if err := s.store.SoftDelete(messageID, userID); err != nil {
		return err
	}
	s.broker.Publish(userID, EventMessageDeleted, &MessageDeletedPayload{MessageID: messageID})
	return nil
}

// DeleteForEveryone removes the message for both participants. The
// retraction targets are taken from the store's pre-deletion snapshot, not
// from the request.
func (s *Service) DeleteForEveryone(messageID, userID uint) error {
	message, err := s.store.HardDelete(messageID, userID)
	if err != nil {
		return err
	}

	retraction := &MessageDeletedPayload{MessageID: message.ID}
	s.broker.Publish(message.SenderID, EventMessageDeleted, retraction)
	s.broker.Publish(message.ReceiverID, EventMessageDeleted, retraction)
	return nil
}

// Typing relays a typing indicator to the peer. Nothing is persisted.
func (s *Service) Typing(ev TypingEvent) {
	s.broker.Publish(ev.ChatWithUserID, EventUserTyping, &TypingPayload{
		UserID:   ev.UserID,
		IsTyping: ev.IsTyping,
	})
}

// Presence announces a user's online state to every registered session,
// not just contacts. Known scope limitation, kept as-is.
func (s *Service) Presence(ev PresenceEvent) {
	payload := &PresencePayload{
		UserID:   ev.UserID,
		IsOnline: ev.IsOnline,
	}
	if s.lastSeen != nil {
		if !ev.IsOnline {
			s.lastSeen.Touch(ev.UserID)
		}
		if seen, ok := s.lastSeen.Get(ev.UserID); ok {
			payload.LastSeen = &seen
		}
	}
	s.broker.Broadcast(EventUserOnline, payload)
}

// StatusUpdate advances a message status best-effort and echoes the update
// on the named owner's channel. The caller is not verified to be a
// participant; see the hardening note in DESIGN.md.
func (s *Service) StatusUpdate(ev StatusUpdateEvent) {
	if err := s.store.UpdateStatus(ev.MessageID, ev.Status); err != nil {
		log.Printf("chat: status update for message %d: %v", ev.MessageID, err)
	}
	s.broker.Publish(ev.UserID, EventMessageStatus, &StatusPayload{
		MessageID: ev.MessageID,
		Status:    ev.Status,
	})
}

// History returns the requesting user's view of the conversation.
func (s *Service) History(userID, peerID uint) ([]model.Message, error) {
	return s.store.History(userID, peerID)
}
