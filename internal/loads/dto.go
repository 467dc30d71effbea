package loads

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/vbmartins/cargalog-backend/pkg/enums"
)

// Actor identifies the authenticated caller for scoping decisions.
type Actor struct {
	UserID uuid.UUID
	Role   enums.UserRole
}

// CreateItemInput is one delivery on a new load.
type CreateItemInput struct {
	FactoryID     uuid.UUID       `json:"factory_id"`
	ProducerID    uuid.UUID       `json:"producer_id"`
	FeedTypeID    uuid.UUID       `json:"feed_type_id"`
	InvoiceNumber string          `json:"invoice_number"`
	QuantityKg    decimal.Decimal `json:"quantity_kg"`
}

// CreateInput captures a new load with its items.
type CreateInput struct {
	DriverID      uuid.UUID
	Date          time.Time
	StartOdometer decimal.Decimal
	EndOdometer   *decimal.Decimal
	Items         []CreateItemInput
}

// ListFilter narrows the load listing. Month and Year apply together;
// DriverID restricts to one driver.
type ListFilter struct {
	Month    int
	Year     int
	DriverID *uuid.UUID
}

// Summary is one load row on the listing, with aggregates over its items and
// the commission percentage in effect on the load date.
type Summary struct {
	ID                uuid.UUID        `json:"id"`
	DriverID          uuid.UUID        `json:"driver_id"`
	DriverName        string           `json:"driver_name"`
	Date              time.Time        `json:"date"`
	StartOdometer     decimal.Decimal  `json:"start_odometer"`
	EndOdometer       *decimal.Decimal `json:"end_odometer,omitempty"`
	ItemCount         int              `json:"item_count"`
	TotalKg           decimal.Decimal  `json:"total_kg"`
	TotalValue        decimal.Decimal  `json:"total_value"`
	CommissionPercent decimal.Decimal  `json:"commission_percent"`
	CommissionValue   decimal.Decimal  `json:"commission_value"`
}

// ItemDetail is one delivery with its catalog names resolved.
type ItemDetail struct {
	ID               uuid.UUID       `json:"id"`
	FactoryID        uuid.UUID       `json:"factory_id"`
	FactoryName      string          `json:"factory_name"`
	ProducerID       uuid.UUID       `json:"producer_id"`
	ProducerName     string          `json:"producer_name"`
	ProducerLocation *string         `json:"producer_location,omitempty"`
	ProducerTypeName string          `json:"producer_type_name"`
	FeedTypeID       uuid.UUID       `json:"feed_type_id"`
	FeedTypeName     string          `json:"feed_type_name"`
	InvoiceNumber    string          `json:"invoice_number"`
	QuantityKg       decimal.Decimal `json:"quantity_kg"`
	ComputedValue    decimal.Decimal `json:"computed_value"`
}

// Detail is a load with its items expanded.
type Detail struct {
	Summary
	Items []ItemDetail `json:"items"`
}
