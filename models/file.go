package models

import (
	"time"
)

// File is attachment metadata. The bytes live in external storage; messages
// only hold a reference, registered out-of-band before the message is sent.
type File struct {
	ID           uint      `gorm:"primarykey" json:"id"`
	URL          string    `gorm:"column:url;not null" json:"url"`
	Name         string    `gorm:"not null" json:"name"`
	Size         int64     `gorm:"not null" json:"size"`
	MimeType     string    `gorm:"column:mime_type" json:"mime_type"`
	UploadedByID uint      `gorm:"column:uploaded_by_id" json:"uploaded_by_id"`
	UploadedBy   *User     `gorm:"foreignKey:UploadedByID" json:"uploaded_by,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}
