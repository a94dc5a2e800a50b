package models

import (
	"time"

	"gorm.io/gorm"
)

// Relationship links two entities (project, task or resource) with a typed
// edge such as dependency, allocation or relates-to.
type Relationship struct {
	ID               uint64         `gorm:"primarykey" json:"id"`
	FromEntityType   string         `gorm:"type:varchar(20);not null" json:"from_entity_type"`
	FromEntityID     uint64         `gorm:"not null" json:"from_entity_id"`
	ToEntityType     string         `gorm:"type:varchar(20);not null" json:"to_entity_type"`
	ToEntityID       uint64         `gorm:"not null" json:"to_entity_id"`
	RelationshipType string         `gorm:"type:varchar(50);not null" json:"relationship_type"`
	CreatedAt        time.Time      `json:"created_at"`
	DeletedAt        gorm.DeletedAt `gorm:"index" json:"-"`
}
