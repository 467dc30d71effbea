package models

import (
	"time"

	"github.com/google/uuid"
)

// Producer is a load destination; its type drives pricing.
type Producer struct {
	ID             uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	Name           string    `gorm:"column:name;not null"`
	Location       *string   `gorm:"column:location"`
	ProducerTypeID uuid.UUID `gorm:"column:producer_type_id;type:uuid;not null"`
	Active         bool      `gorm:"column:active;not null;default:true"`
	CreatedAt      time.Time `gorm:"column:created_at;autoCreateTime"`

	ProducerType *ProducerType `gorm:"foreignKey:ProducerTypeID"`
}
