package models

import (
	"time"

	"gorm.io/gorm"
)

type Document struct {
	ID               uint64         `gorm:"primarykey" json:"id"`
	ProjectID        uint64         `gorm:"not null;index" json:"project_id"`
	Category         string         `gorm:"type:varchar(100);not null" json:"category"`
	Filename         string         `gorm:"type:varchar(255);not null" json:"filename"`
	FilePath         string         `gorm:"type:varchar(1024);not null" json:"file_path"`
	UploadedByUserID uint64         `gorm:"not null" json:"uploaded_by_user_id"`
	CreatedAt        time.Time      `json:"upload_date"`
	DeletedAt        gorm.DeletedAt `gorm:"index" json:"-"`

	// Relations
	Project Project `gorm:"foreignKey:ProjectID" json:"project,omitempty"`
}
