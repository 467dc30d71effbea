package reports

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Period selects one calendar month.
type Period struct {
	Month int
	Year  int
}

// Totals aggregates all loads in the period.
type Totals struct {
	TotalLoads    int64           `json:"total_loads"`
	ActiveDrivers int64           `json:"active_drivers"`
	TotalKg       decimal.Decimal `json:"total_kg"`
	TotalValue    decimal.Decimal `json:"total_value"`
	AvgDistance   decimal.Decimal `json:"avg_distance"`
}

// DriverBreakdown aggregates one driver's activity in the period.
type DriverBreakdown struct {
	DriverID      uuid.UUID       `json:"driver_id" gorm:"column:driver_id"`
	DriverName    string          `json:"driver_name" gorm:"column:driver_name"`
	TotalLoads    int64           `json:"total_loads" gorm:"column:total_loads"`
	TotalKg       decimal.Decimal `json:"total_kg" gorm:"column:total_kg"`
	TotalValue    decimal.Decimal `json:"total_value" gorm:"column:total_value"`
	TotalDistance decimal.Decimal `json:"total_distance" gorm:"column:total_distance"`
}

// Dashboard is the admin landing view for one month.
type Dashboard struct {
	Totals    Totals            `json:"totals"`
	PerDriver []DriverBreakdown `json:"per_driver"`
}

// ConferenceRow is one delivery line on the monthly conference report, used
// to check invoices against producers.
type ConferenceRow struct {
	Date          time.Time       `json:"date" gorm:"column:date"`
	DriverName    string          `json:"driver_name" gorm:"column:driver_name"`
	InvoiceNumber string          `json:"invoice_number" gorm:"column:invoice_number"`
	ProducerName  string          `json:"producer_name" gorm:"column:producer_name"`
	QuantityKg    decimal.Decimal `json:"quantity_kg" gorm:"column:quantity_kg"`
	ComputedValue decimal.Decimal `json:"computed_value" gorm:"column:computed_value"`
}
