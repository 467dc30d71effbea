package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CommissionRule is one vigency of the global driver commission percentage.
// At most one rule is open (ValidTo nil) at a time; the timeline is advanced
// by closing the open rule and inserting a new one in a single transaction.
type CommissionRule struct {
	ID         uuid.UUID       `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	Percentage decimal.Decimal `gorm:"column:percentage;type:numeric(5,2);not null"`
	ValidFrom  time.Time       `gorm:"column:valid_from;type:date;not null"`
	ValidTo    *time.Time      `gorm:"column:valid_to;type:date"`
	CreatedAt  time.Time       `gorm:"column:created_at;autoCreateTime"`
}
