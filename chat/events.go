package chat

import "time"

// Live channel event names.
const (
	EventNewMessage      = "new_message"
	EventNewNotification = "new_notification"
	EventMessageDeleted  = "message_deleted"
	EventMessageError    = "message_error"
	EventDeleteError     = "delete_error"
	EventUserTyping      = "user_typing"
	EventUserOnline      = "user_online"
	EventMessageStatus   = "message_status_update"
)

// Delete modes carried by delete_message events.
const (
	DeleteForMe       = "for_me"
	DeleteForEveryone = "for_everyone"
)

// Inbound events. Decoded and validated at the socket boundary before any
// handler runs.

type JoinEvent struct {
	UserID uint `json:"userId"`
}

type SendMessageEvent struct {
	SenderID   uint    `json:"senderId"`
	ReceiverID uint    `json:"receiverId"`
	Body       string  `json:"body"`
	Type       string  `json:"type,omitempty"`
	MediaURL   string  `json:"mediaUrl,omitempty"`
	FileSize   int64   `json:"fileSize,omitempty"`
	Duration   float64 `json:"duration,omitempty"`
}

type DeleteMessageEvent struct {
	MessageID  uint   `json:"messageId"`
	UserID     uint   `json:"userId"`
	DeleteType string `json:"deleteType"`
}

type TypingEvent struct {
	UserID         uint `json:"userId"`
	IsTyping       bool `json:"isTyping"`
	ChatWithUserID uint `json:"chatWithUserId"`
}

type PresenceEvent struct {
	UserID   uint `json:"userId"`
	IsOnline bool `json:"isOnline"`
}

type StatusUpdateEvent struct {
	MessageID uint   `json:"messageId"`
	Status    string `json:"status"`
	UserID    uint   `json:"userId"`
}

// Outbound payloads.

type NewMessagePayload struct {
	ID          uint      `json:"id"`
	SenderID    uint      `json:"senderId"`
	ReceiverID  uint      `json:"receiverId"`
	MessageText string    `json:"messageText"`
	SenderName  string    `json:"senderName"`
	Timestamp   time.Time `json:"timestamp"`
	MessageType string    `json:"messageType"`
	MediaURL    string    `json:"mediaUrl,omitempty"`
	FileSize    int64     `json:"fileSize,omitempty"`
	Duration    float64   `json:"duration,omitempty"`
	Status      string    `json:"status"`
}

type NotificationPayload struct {
	SenderID    uint      `json:"senderId"`
	SenderName  string    `json:"senderName"`
	MessageText string    `json:"messageText"`
	MessageID   uint      `json:"messageId"`
	Timestamp   time.Time `json:"timestamp"`
}

type MessageDeletedPayload struct {
	MessageID uint `json:"messageId"`
}

type ErrorPayload struct {
	Error string `json:"error"`
}

type TypingPayload struct {
	UserID   uint `json:"userId"`
	IsTyping bool `json:"isTyping"`
}

type PresencePayload struct {
	UserID   uint       `json:"userId"`
	IsOnline bool       `json:"isOnline"`
	LastSeen *time.Time `json:"lastSeen,omitempty"`
}

type StatusPayload struct {
	MessageID uint   `json:"messageId"`
	Status    string `json:"status"`
}
