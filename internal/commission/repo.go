package commission

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/vbmartins/cargalog-backend/internal/pricing"
	"github.com/vbmartins/cargalog-backend/pkg/db/models"
)

// Repository handles the commission vigency timeline.
type Repository struct {
	db *gorm.DB
}

// NewRepository binds a GORM DB to commission operations.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// List returns the full timeline, newest vigency first.
func (r *Repository) List(ctx context.Context) ([]models.CommissionRule, error) {
	var rules []models.CommissionRule
	err := r.db.WithContext(ctx).
		Order("valid_from DESC, created_at DESC").
		Find(&rules).Error
	if err != nil {
		return nil, err
	}
	return rules, nil
}

// ListAsc returns the timeline in insertion order for the resolver.
func (r *Repository) ListAsc(ctx context.Context) ([]models.CommissionRule, error) {
	var rules []models.CommissionRule
	err := r.db.WithContext(ctx).
		Order("created_at ASC").
		Find(&rules).Error
	if err != nil {
		return nil, err
	}
	return rules, nil
}

// FindOpenTx returns the open rule (nil ValidTo) inside the transaction, or
// nil when the timeline is empty.
func (r *Repository) FindOpenTx(tx *gorm.DB) (*models.CommissionRule, error) {
	if tx == nil {
		return nil, gorm.ErrInvalidTransaction
	}
	var rule models.CommissionRule
	err := tx.
		Where("valid_to IS NULL").
		Order("valid_from DESC").
		First(&rule).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &rule, nil
}

// UpdatePercentageTx corrects the percentage of an existing rule in place.
func (r *Repository) UpdatePercentageTx(tx *gorm.DB, id uuid.UUID, percentage decimal.Decimal) error {
	if tx == nil {
		return gorm.ErrInvalidTransaction
	}
	return tx.
		Model(&models.CommissionRule{}).
		Where("id = ?", id).
		Update("percentage", percentage).Error
}

// CloseTx stamps the end date on the open rule.
func (r *Repository) CloseTx(tx *gorm.DB, id uuid.UUID, endDate time.Time) error {
	if tx == nil {
		return gorm.ErrInvalidTransaction
	}
	return tx.
		Model(&models.CommissionRule{}).
		Where("id = ?", id).
		Update("valid_to", pricing.DateOnly(endDate)).Error
}

// InsertTx appends a new open vigency.
func (r *Repository) InsertTx(tx *gorm.DB, rule *models.CommissionRule) error {
	if tx == nil {
		return gorm.ErrInvalidTransaction
	}
	return tx.Create(rule).Error
}
