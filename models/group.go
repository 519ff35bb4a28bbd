package models

import (
	"time"
)

// Group is the external group entity a GROUP chatroom is bound to.
// Membership changes must be propagated into the chatroom's participant set.
type Group struct {
	ID          uint      `gorm:"primarykey" json:"id"`
	Name        string    `gorm:"not null" json:"name"`
	CreatedByID uint      `gorm:"column:created_by_id" json:"created_by_id"`
	Members     []User    `gorm:"many2many:group_members" json:"members,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
