package models

import "time"

type User struct {
	ID        uint   `gorm:"primarykey"`
	Username  string `gorm:"size:255;not null;uniqueIndex"`
	Email     string `gorm:"size:255;not null;uniqueIndex"`
	Password  string `gorm:"not null"` // bcrypt digest, never plaintext
	CreatedAt time.Time
	UpdatedAt time.Time
}
