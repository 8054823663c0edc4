package chat

import (
	"pairchat-service/model"

	"gorm.io/gorm"
)

// UserDirectory resolves a user's display name for outbound payloads.
type UserDirectory interface {
	DisplayName(userID uint) (string, error)
}

type gormDirectory struct {
	db *gorm.DB
}

func NewGormDirectory(db *gorm.DB) UserDirectory {
	return &gormDirectory{db: db}
}

func (d *gormDirectory) DisplayName(userID uint) (string, error) {
	user := new(model.User)
	if err := d.db.First(user, userID).Error; err != nil {
		return "", err
	}
	return user.Username, nil
}
