package models

import (
	"time"

	"gorm.io/gorm"
)

type ResourceType string

const (
	ResourceTypePerson    ResourceType = "person"
	ResourceTypeEquipment ResourceType = "equipment"
	ResourceTypeSoftware  ResourceType = "software"
)

// ValidResourceType reports whether t is one of the known resource types.
func ValidResourceType(t ResourceType) bool {
	switch t {
	case ResourceTypePerson, ResourceTypeEquipment, ResourceTypeSoftware:
		return true
	}
	return false
}

type Resource struct {
	ID           uint64         `gorm:"primarykey" json:"id"`
	Name         string         `gorm:"type:varchar(255);not null" json:"name"`
	Type         ResourceType   `gorm:"type:varchar(20);not null" json:"type"`
	Availability string         `gorm:"type:varchar(50);not null;default:'available'" json:"availability"`
	CostPerHour  float64        `json:"cost_per_hour"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`

	// Relations
	Tasks []Task `gorm:"many2many:task_resources" json:"-"`
}

type ResourceAllocation struct {
	ID             uint64         `gorm:"primarykey" json:"id"`
	ResourceID     uint64         `gorm:"not null;index" json:"resource_id"`
	ProjectID      uint64         `gorm:"not null;index" json:"project_id"`
	TaskID         *uint64        `gorm:"index" json:"task_id"`
	AllocatedHours float64        `gorm:"not null" json:"allocated_hours"`
	AllocationDate time.Time      `gorm:"not null" json:"allocation_date"`
	CreatedAt      time.Time      `json:"created_at"`
	DeletedAt      gorm.DeletedAt `gorm:"index" json:"-"`

	// Relations
	Resource Resource `gorm:"foreignKey:ResourceID" json:"resource,omitempty"`
	Project  Project  `gorm:"foreignKey:ProjectID" json:"project,omitempty"`
}
