package models

import (
	"time"

	"gorm.io/gorm"
)

type Cost struct {
	ID          uint64         `gorm:"primarykey" json:"id"`
	ProjectID   uint64         `gorm:"not null;index" json:"project_id"`
	Category    string         `gorm:"type:varchar(100);not null" json:"category"`
	Amount      float64        `gorm:"not null" json:"amount"`
	Date        time.Time      `gorm:"not null" json:"date"`
	Description string         `gorm:"type:text" json:"description"`
	CreatedAt   time.Time      `json:"created_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`

	// Relations
	Project Project `gorm:"foreignKey:ProjectID" json:"project,omitempty"`
}
