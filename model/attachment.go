package model

import "gorm.io/gorm"

// Attachment holds an uploaded binary payload, base64-encoded. Messages
// reference attachments only through the served URL, never by foreign key.
type Attachment struct {
	gorm.Model
	Name     string `gorm:"not null" json:"name"`
	MimeType string `gorm:"not null" json:"mime_type"`
	Size     int64  `gorm:"not null" json:"size"`
	Data     string `gorm:"not null" json:"-"`
}
