package model

import "time"

type User struct {
	ID           uint       `gorm:"primarykey" json:"id"`
	Username     string     `gorm:"size:150;not null;uniqueIndex" json:"username"`
	Email        string     `gorm:"size:254;not null" json:"email"`
	PasswordHash string     `gorm:"size:255;not null" json:"-"`
	DateJoined   time.Time  `gorm:"not null" json:"date_joined"`
	LastLogin    *time.Time `json:"last_login,omitempty"`
}
