package models

import (
	"time"
)

// UserStatus is the durable presence projection. The websocket hub is the
// source of truth for who is online; this column only mirrors it.
const (
	UserStatusOnline  = "ONLINE"
	UserStatusOffline = "OFFLINE"
)

type User struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	Username  string    `gorm:"uniqueIndex;not null" json:"username"`
	Email     string    `gorm:"uniqueIndex;not null" json:"email"`
	Password  string    `gorm:"not null" json:"-"`
	Status    string    `gorm:"default:'OFFLINE'" json:"status"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
