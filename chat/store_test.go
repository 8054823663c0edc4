package chat

import (
	"testing"
	"time"

	"pairchat-service/model"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const (
	alice = uint(1)
	bob   = uint(2)
	carol = uint(3)
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	// A pooled second connection would see its own empty memory database.
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&model.User{},
		&model.Message{},
		&model.DeletedMessage{},
		&model.Attachment{},
	))

	for _, username := range []string{"alice", "bob", "carol"} {
		require.NoError(t, db.Create(&model.User{
			Username: username,
			Email:    username + "@example.com",
			Password: "x",
			Role:     "user",
		}).Error)
	}

	return db
}

func TestAppendAssignsIdentity(t *testing.T) {
	store := NewGormStore(newTestDB(t))

	message, err := store.Append(alice, bob, "hi", nil)
	require.NoError(t, err)

	assert.NotZero(t, message.ID)
	assert.Equal(t, alice, message.SenderID)
	assert.Equal(t, bob, message.ReceiverID)
	assert.Equal(t, "hi", message.Body)
	assert.Equal(t, "text", message.Type)
	assert.Equal(t, StatusSent, message.Status)
	assert.False(t, message.CreatedAt.IsZero())

	second, err := store.Append(alice, bob, "again", nil)
	require.NoError(t, err)
	assert.Greater(t, second.ID, message.ID)
}

func TestAppendValidation(t *testing.T) {
	store := NewGormStore(newTestDB(t))

	tests := []struct {
		name       string
		senderID   uint
		receiverID uint
		body       string
	}{
		{"empty body", alice, bob, ""},
		{"missing sender", 0, bob, "hi"},
		{"missing receiver", alice, 0, "hi"},
		{"self message", alice, alice, "hi"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := store.Append(tt.senderID, tt.receiverID, tt.body, nil)
			assert.ErrorIs(t, err, ErrValidation)
		})
	}

	history, err := store.History(alice, bob)
	require.NoError(t, err)
	assert.Empty(t, history)
}

func TestAppendWithAttachment(t *testing.T) {
	store := NewGormStore(newTestDB(t))

	message, err := store.Append(alice, bob, "voice note", &Attachment{
		Type:     "audio",
		MediaURL: "/v1/messenger/attachment/7",
		FileSize: 2048,
		Duration: 12.5,
	})
	require.NoError(t, err)

	assert.Equal(t, "audio", message.Type)
	assert.Equal(t, "/v1/messenger/attachment/7", message.MediaURL)
	assert.Equal(t, int64(2048), message.FileSize)
	assert.Equal(t, 12.5, message.Duration)
}

func TestHistoryOrderedByCreationTime(t *testing.T) {
	db := newTestDB(t)
	store := NewGormStore(db)

	// Insert out of order; history must come back by created_at, not by
	// insertion order.
	base := time.Now().Add(-time.Hour)
	for _, offset := range []time.Duration{30 * time.Minute, 10 * time.Minute, 20 * time.Minute} {
		require.NoError(t, db.Create(&model.Message{
			SenderID:   alice,
			ReceiverID: bob,
			Body:       offset.String(),
			Type:       "text",
			Status:     StatusSent,
			CreatedAt:  base.Add(offset),
		}).Error)
	}

	history, err := store.History(alice, bob)
	require.NoError(t, err)
	require.Len(t, history, 3)
	for i := 1; i < len(history); i++ {
		assert.False(t, history[i].CreatedAt.Before(history[i-1].CreatedAt))
	}
}

func TestHistoryIncludesBothDirections(t *testing.T) {
	store := NewGormStore(newTestDB(t))

	_, err := store.Append(alice, bob, "ping", nil)
	require.NoError(t, err)
	_, err = store.Append(bob, alice, "pong", nil)
	require.NoError(t, err)
	_, err = store.Append(alice, carol, "other conversation", nil)
	require.NoError(t, err)

	history, err := store.History(alice, bob)
	require.NoError(t, err)
	require.Len(t, history, 2)
	assert.Equal(t, "ping", history[0].Body)
	assert.Equal(t, "pong", history[1].Body)
}

func TestSoftDeleteHidesForRequesterOnly(t *testing.T) {
	store := NewGormStore(newTestDB(t))

	message, err := store.Append(alice, bob, "hi", nil)
	require.NoError(t, err)

	require.NoError(t, store.SoftDelete(message.ID, bob))

	bobView, err := store.History(bob, alice)
	require.NoError(t, err)
	assert.Empty(t, bobView)

	aliceView, err := store.History(alice, bob)
	require.NoError(t, err)
	assert.Len(t, aliceView, 1)
}

func TestSoftDeleteIdempotent(t *testing.T) {
	db := newTestDB(t)
	store := NewGormStore(db)

	message, err := store.Append(alice, bob, "hi", nil)
	require.NoError(t, err)

	require.NoError(t, store.SoftDelete(message.ID, alice))
	require.NoError(t, store.SoftDelete(message.ID, alice))

	var markers int64
	require.NoError(t, db.Model(&model.DeletedMessage{}).Count(&markers).Error)
	assert.Equal(t, int64(1), markers)
}

func TestSoftDeleteRequiresParticipant(t *testing.T) {
	store := NewGormStore(newTestDB(t))

	message, err := store.Append(alice, bob, "hi", nil)
	require.NoError(t, err)

	assert.ErrorIs(t, store.SoftDelete(message.ID, carol), ErrNotFoundOrForbidden)
	assert.ErrorIs(t, store.SoftDelete(message.ID+100, alice), ErrNotFoundOrForbidden)
}

func TestHardDeleteRemovesRowAndMarkers(t *testing.T) {
	db := newTestDB(t)
	store := NewGormStore(db)

	message, err := store.Append(alice, bob, "hi", nil)
	require.NoError(t, err)
	require.NoError(t, store.SoftDelete(message.ID, bob))

	snapshot, err := store.HardDelete(message.ID, alice)
	require.NoError(t, err)
	assert.Equal(t, message.ID, snapshot.ID)
	assert.Equal(t, alice, snapshot.SenderID)
	assert.Equal(t, bob, snapshot.ReceiverID)

	for _, view := range [][2]uint{{alice, bob}, {bob, alice}} {
		history, err := store.History(view[0], view[1])
		require.NoError(t, err)
		assert.Empty(t, history)
	}

	var markers int64
	require.NoError(t, db.Model(&model.DeletedMessage{}).Count(&markers).Error)
	assert.Zero(t, markers)
}

func TestHardDeleteSenderOnly(t *testing.T) {
	store := NewGormStore(newTestDB(t))

	message, err := store.Append(alice, bob, "hi", nil)
	require.NoError(t, err)

	_, err = store.HardDelete(message.ID, bob)
	assert.ErrorIs(t, err, ErrForbidden)

	// The message is untouched.
	history, err := store.History(bob, alice)
	require.NoError(t, err)
	assert.Len(t, history, 1)
}

func TestHardDeleteMissingMessage(t *testing.T) {
	store := NewGormStore(newTestDB(t))

	_, err := store.HardDelete(42, alice)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestUpdateStatusAdvances(t *testing.T) {
	db := newTestDB(t)
	store := NewGormStore(db)

	message, err := store.Append(alice, bob, "hi", nil)
	require.NoError(t, err)

	require.NoError(t, store.UpdateStatus(message.ID, StatusDelivered))
	require.NoError(t, store.UpdateStatus(message.ID, StatusRead))

	current := new(model.Message)
	require.NoError(t, db.First(current, message.ID).Error)
	assert.Equal(t, StatusRead, current.Status)
}

func TestUpdateStatusNeverRegresses(t *testing.T) {
	db := newTestDB(t)
	store := NewGormStore(db)

	message, err := store.Append(alice, bob, "hi", nil)
	require.NoError(t, err)

	require.NoError(t, store.UpdateStatus(message.ID, StatusRead))
	require.NoError(t, store.UpdateStatus(message.ID, StatusDelivered))
	require.NoError(t, store.UpdateStatus(message.ID, StatusSent))

	current := new(model.Message)
	require.NoError(t, db.First(current, message.ID).Error)
	assert.Equal(t, StatusRead, current.Status)
}

func TestUpdateStatusMissingMessageIsSilent(t *testing.T) {
	store := NewGormStore(newTestDB(t))

	assert.NoError(t, store.UpdateStatus(42, StatusDelivered))
	assert.NoError(t, store.UpdateStatus(42, "bogus"))
}
