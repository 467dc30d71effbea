package models

import (
	"time"

	"github.com/google/uuid"
)

// ProducerType classifies a producer (nursery, finisher, ...) and selects
// which price rule applies to their loads.
type ProducerType struct {
	ID        uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	Name      string    `gorm:"column:name;not null;uniqueIndex"`
	Active    bool      `gorm:"column:active;not null;default:true"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
}
