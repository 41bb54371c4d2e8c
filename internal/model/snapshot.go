package model

import (
	"time"

	"github.com/google/uuid"
)

// InventorySnapshot records a physical count against the system's expected
// stock, both in javas. Difference = physical - expected.
type InventorySnapshot struct {
	ID                  uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Date                time.Time `gorm:"not null"`
	PhysicalCount       float64   `gorm:"not null"`
	SystemExpectedCount float64   `gorm:"not null"`
	Difference          float64   `gorm:"not null"`
}

func (InventorySnapshot) TableName() string { return "inventory_snapshots" }
