package model

import "time"

// Message is one direct message between two users. The row is immutable
// after creation except for Status; removal is a hard delete of the row,
// never an in-place mutation.
type Message struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	SenderID   uint      `gorm:"not null;index:idx_messages_pair" json:"sender_id"`
	ReceiverID uint      `gorm:"not null;index:idx_messages_pair" json:"receiver_id"`
	Sender     User      `gorm:"foreignKey:SenderID" json:"-"`
	Receiver   User      `gorm:"foreignKey:ReceiverID" json:"-"`
	Body       string    `gorm:"not null" json:"body"`
	Type       string    `gorm:"column:message_type;not null;default:text" json:"message_type"`
	MediaURL   string    `json:"media_url,omitempty"`
	FileSize   int64     `json:"file_size,omitempty"`
	Duration   float64   `json:"duration,omitempty"`
	Status     string    `gorm:"not null;default:sent" json:"status"`
	CreatedAt  time.Time `json:"created_at"`
}

// DeletedMessage marks a message as hidden for one of its participants
// ("delete for me"). The (message, user) pair is unique so repeated delete
// requests are no-ops, and markers go away with the message row.
type DeletedMessage struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	MessageID uint      `gorm:"not null;uniqueIndex:idx_deleted_message_user" json:"message_id"`
	UserID    uint      `gorm:"not null;uniqueIndex:idx_deleted_message_user" json:"user_id"`
	Message   Message   `gorm:"foreignKey:MessageID;constraint:OnDelete:CASCADE" json:"-"`
	DeletedAt time.Time `json:"deleted_at"`
}
