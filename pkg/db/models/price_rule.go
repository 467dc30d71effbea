package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PriceRule is one version of the freight price table for a producer type.
// Rules are append-mostly: new versions are inserted, prior ones closed by
// setting ValidTo. A nil ValidTo means the rule is open-ended.
//
// When MinTonnage is set, FixedFee must be set as well: loads below the
// minimum tonnage pay the flat fee instead of the per-ton rate.
type PriceRule struct {
	ID             uuid.UUID        `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	ProducerTypeID uuid.UUID        `gorm:"column:producer_type_id;type:uuid;not null;index"`
	PerTonRate     decimal.Decimal  `gorm:"column:per_ton_rate;type:numeric(12,2);not null"`
	FixedFee       *decimal.Decimal `gorm:"column:fixed_fee;type:numeric(12,2)"`
	MinTonnage     *decimal.Decimal `gorm:"column:min_tonnage;type:numeric(8,2)"`
	ValidFrom      time.Time        `gorm:"column:valid_from;type:date;not null"`
	ValidTo        *time.Time       `gorm:"column:valid_to;type:date"`
	Active         bool             `gorm:"column:active;not null;default:true"`
	CreatedAt      time.Time        `gorm:"column:created_at;autoCreateTime"`

	ProducerType *ProducerType `gorm:"foreignKey:ProducerTypeID"`
}
