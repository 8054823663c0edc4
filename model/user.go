package model

import "gorm.io/gorm"

// User account. The chat core only ever reads ID and Username; everything
// else belongs to the auth surface.
type User struct {
	gorm.Model
	Username string `gorm:"uniqueIndex;not null" json:"username"`
	Email    string `gorm:"uniqueIndex;not null" json:"email"`
	Password string `gorm:"not null" json:"-"`
	Role     string `json:"role"`

	Otp_enabled bool `gorm:"default:false;"`
	Otp_secret  string
}
