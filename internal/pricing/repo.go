package pricing

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/vbmartins/cargalog-backend/pkg/db/models"
)

// Repository handles price rule persistence. Rules are append-mostly; the
// only in-place mutation is closing an open vigency.
type Repository struct {
	db *gorm.DB
}

// NewRepository binds a GORM DB to price rule operations.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// ListByProducerType returns the active rules for one producer type in
// insertion order, which the resolver relies on for tie-breaking.
func (r *Repository) ListByProducerType(ctx context.Context, producerTypeID uuid.UUID) ([]models.PriceRule, error) {
	var rules []models.PriceRule
	err := r.db.WithContext(ctx).
		Where("producer_type_id = ? AND active = ?", producerTypeID, true).
		Order("created_at ASC").
		Find(&rules).Error
	if err != nil {
		return nil, err
	}
	return rules, nil
}

// ListAll returns every active rule with its producer type, newest vigency first.
func (r *Repository) ListAll(ctx context.Context) ([]models.PriceRule, error) {
	var rules []models.PriceRule
	err := r.db.WithContext(ctx).
		Preload("ProducerType").
		Where("active = ?", true).
		Order("valid_from DESC").
		Find(&rules).Error
	if err != nil {
		return nil, err
	}
	return rules, nil
}

// Insert persists a new rule version.
func (r *Repository) Insert(ctx context.Context, rule *models.PriceRule) error {
	return r.db.WithContext(ctx).Create(rule).Error
}

// CloseOpenRule sets the end date on an open-ended rule.
func (r *Repository) CloseOpenRule(ctx context.Context, id uuid.UUID, endDate time.Time) error {
	result := r.db.WithContext(ctx).
		Model(&models.PriceRule{}).
		Where("id = ? AND valid_to IS NULL", id).
		Update("valid_to", DateOnly(endDate))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
