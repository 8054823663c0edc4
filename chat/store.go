package chat

import (
	"errors"
	"fmt"
	"log"
	"time"

	"pairchat-service/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Message delivery statuses. A status only ever moves forward.
const (
	StatusSent      = "sent"
	StatusDelivered = "delivered"
	StatusRead      = "read"
)

var statusRank = map[string]int{
	StatusSent:      0,
	StatusDelivered: 1,
	StatusRead:      2,
}

// Attachment carries the opaque media metadata attached to a message.
// Upload and URL issuance happen elsewhere; the store only records it.
type Attachment struct {
	Type     string
	MediaURL string
	FileSize int64
	Duration float64
}

// MessageStore is the durable log of messages and per-user deletion
// markers, the single source of truth for history.
type MessageStore interface {
	Append(senderID, receiverID uint, body string, att *Attachment) (*model.Message, error)
	History(userA, userB uint) ([]model.Message, error)
	SoftDelete(messageID, userID uint) error
	HardDelete(messageID, userID uint) (*model.Message, error)
	UpdateStatus(messageID uint, status string) error
}

type GormStore struct {
	db *gorm.DB
}

func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

// Append persists a new message with status "sent". The insert is a single
// row write, so it is all-or-nothing.
func (s *GormStore) Append(senderID, receiverID uint, body string, att *Attachment) (*model.Message, error) {
	if senderID == 0 || receiverID == 0 || body == "" {
		return nil, ErrValidation
	}
	if senderID == receiverID {
		return nil, fmt.Errorf("%w: sender and receiver must differ", ErrValidation)
	}

	message := &model.Message{
		SenderID:   senderID,
		ReceiverID: receiverID,
		Body:       body,
		Type:       "text",
		Status:     StatusSent,
	}
	if att != nil {
		message.Type = att.Type
		message.MediaURL = att.MediaURL
		message.FileSize = att.FileSize
		message.Duration = att.Duration
	}

	if err := s.db.Omit(clause.Associations).Create(message).Error; err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	return message, nil
}

// History returns the conversation between userA and userB ascending by
// creation time, minus the messages userA deleted for themselves. The
// other participant's markers never affect this query.
func (s *GormStore) History(userA, userB uint) ([]model.Message, error) {
	hidden := s.db.Model(&model.DeletedMessage{}).
		Select("message_id").
		Where("user_id = ?", userA)

	messages := []model.Message{}
	err := s.db.
		Where("(sender_id = ? AND receiver_id = ?) OR (sender_id = ? AND receiver_id = ?)",
			userA, userB, userB, userA).
		Where("id NOT IN (?)", hidden).
		Order("created_at asc, id asc").
		Find(&messages).Error
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	return messages, nil
}

// SoftDelete records a deletion marker for one participant. Re-recording
// an existing marker is a no-op.
func (s *GormStore) SoftDelete(messageID, userID uint) error {
	message := new(model.Message)
	if err := s.db.First(message, messageID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFoundOrForbidden
		}
		return fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	if message.SenderID != userID && message.ReceiverID != userID {
		return ErrNotFoundOrForbidden
	}

	marker := model.DeletedMessage{
		MessageID: messageID,
		UserID:    userID,
		DeletedAt: time.Now(),
	}
	err := s.db.Omit(clause.Associations).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&marker).Error
	if err != nil {
		return fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	return nil
}

// HardDelete removes the message row and its markers in one transaction
// and returns the pre-deletion snapshot so the caller still knows both
// participants. Only the sender may hard-delete.
func (s *GormStore) HardDelete(messageID, userID uint) (*model.Message, error) {
	message := new(model.Message)
	if err := s.db.First(message, messageID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	if message.SenderID != userID {
		return nil, ErrForbidden
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("message_id = ?", messageID).
			Delete(&model.DeletedMessage{}).Error; err != nil {
			return err
		}
		return tx.Delete(&model.Message{}, messageID).Error
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	return message, nil
}

// UpdateStatus advances a message status. Regressions, unknown targets and
// write failures are logged and swallowed: status updates are best-effort
// and must never abort the caller's event handling.
func (s *GormStore) UpdateStatus(messageID uint, status string) error {
	rank, ok := statusRank[status]
	if !ok {
		log.Printf("chat: ignoring unknown status %q for message %d", status, messageID)
		return nil
	}

	lower := make([]string, 0, len(statusRank))
	for name, r := range statusRank {
		if r < rank {
			lower = append(lower, name)
		}
	}
	if len(lower) == 0 {
		// Initial status, nothing can move back to it.
		log.Printf("chat: status update to %q skipped for message %d", status, messageID)
		return nil
	}

	result := s.db.Model(&model.Message{}).
		Where("id = ? AND status IN ?", messageID, lower).
		Update("status", status)
	if result.Error != nil {
		log.Printf("chat: status update for message %d failed: %v", messageID, result.Error)
		return nil
	}
	if result.RowsAffected == 0 {
		log.Printf("chat: status update to %q skipped for message %d", status, messageID)
	}
	return nil
}
