package loads

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/vbmartins/cargalog-backend/pkg/db/models"
)

// Repository handles load and load item persistence.
type Repository struct {
	db *gorm.DB
}

// NewRepository binds a GORM DB to load operations.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// InsertLoadTx persists the load header inside the transaction.
func (r *Repository) InsertLoadTx(tx *gorm.DB, load *models.Load) error {
	if tx == nil {
		return gorm.ErrInvalidTransaction
	}
	return tx.Create(load).Error
}

// InsertItemsTx persists the computed items inside the transaction.
func (r *Repository) InsertItemsTx(tx *gorm.DB, items []models.LoadItem) error {
	if tx == nil {
		return gorm.ErrInvalidTransaction
	}
	return tx.Create(&items).Error
}

// FindProducer returns a producer by id, for the type lookup during pricing.
func (r *Repository) FindProducer(ctx context.Context, id uuid.UUID) (*models.Producer, error) {
	var producer models.Producer
	err := r.db.WithContext(ctx).First(&producer, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &producer, nil
}

// FindByID returns a load with its driver, items and catalog relations.
func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Load, error) {
	var load models.Load
	err := r.db.WithContext(ctx).
		Preload("Driver").
		Preload("Items").
		Preload("Items.Factory").
		Preload("Items.Producer").
		Preload("Items.Producer.ProducerType").
		Preload("Items.FeedType").
		First(&load, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &load, nil
}

// List returns loads matching the filter with driver and items preloaded,
// newest date first. The month filter is a half-open date range so it works
// the same on every backend.
func (r *Repository) List(ctx context.Context, filter ListFilter) ([]models.Load, error) {
	query := r.db.WithContext(ctx).
		Preload("Driver").
		Preload("Items")

	if filter.DriverID != nil {
		query = query.Where("driver_id = ?", *filter.DriverID)
	}
	if filter.Month > 0 && filter.Year > 0 {
		start := time.Date(filter.Year, time.Month(filter.Month), 1, 0, 0, 0, 0, time.UTC)
		query = query.Where("date >= ? AND date < ?", start, start.AddDate(0, 1, 0))
	}

	var loads []models.Load
	if err := query.Order("date DESC, created_at DESC").Find(&loads).Error; err != nil {
		return nil, err
	}
	return loads, nil
}

// SetEndOdometer finalizes the trip.
func (r *Repository) SetEndOdometer(ctx context.Context, id uuid.UUID, value decimal.Decimal) error {
	return r.db.WithContext(ctx).
		Model(&models.Load{}).
		Where("id = ?", id).
		Update("end_odometer", value).Error
}
