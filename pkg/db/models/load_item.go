package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// LoadItem is one delivery within a load. ComputedValue is written once by
// the pricing allocator at creation time and never recomputed.
type LoadItem struct {
	ID            uuid.UUID       `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	LoadID        uuid.UUID       `gorm:"column:load_id;type:uuid;not null;index"`
	FactoryID     uuid.UUID       `gorm:"column:factory_id;type:uuid;not null"`
	ProducerID    uuid.UUID       `gorm:"column:producer_id;type:uuid;not null"`
	FeedTypeID    uuid.UUID       `gorm:"column:feed_type_id;type:uuid;not null"`
	InvoiceNumber string          `gorm:"column:invoice_number;not null"`
	QuantityKg    decimal.Decimal `gorm:"column:quantity_kg;type:numeric(12,2);not null"`
	ComputedValue decimal.Decimal `gorm:"column:computed_value;type:numeric(12,2);not null"`
	CreatedAt     time.Time       `gorm:"column:created_at;autoCreateTime"`

	Factory  *Factory  `gorm:"foreignKey:FactoryID"`
	Producer *Producer `gorm:"foreignKey:ProducerID"`
	FeedType *FeedType `gorm:"foreignKey:FeedTypeID"`
}
