package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Load is one freight trip by a driver on a calendar date. EndOdometer stays
// nil while the trip is in progress and is set once on finalization.
type Load struct {
	ID            uuid.UUID        `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	DriverID      uuid.UUID        `gorm:"column:driver_id;type:uuid;not null;index"`
	Date          time.Time        `gorm:"column:date;type:date;not null;index"`
	StartOdometer decimal.Decimal  `gorm:"column:start_odometer;type:numeric(10,1);not null"`
	EndOdometer   *decimal.Decimal `gorm:"column:end_odometer;type:numeric(10,1)"`
	CreatedAt     time.Time        `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt     time.Time        `gorm:"column:updated_at;autoUpdateTime"`

	Driver *User      `gorm:"foreignKey:DriverID"`
	Items  []LoadItem `gorm:"foreignKey:LoadID"`
}
