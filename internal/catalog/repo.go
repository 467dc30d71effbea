package catalog

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/vbmartins/cargalog-backend/pkg/db/models"
)

// Repository handles the reference entities loads are built from: producer
// types, producers, factories and feed types.
type Repository struct {
	db *gorm.DB
}

// NewRepository binds a GORM DB to catalog operations.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) ListProducerTypes(ctx context.Context) ([]models.ProducerType, error) {
	var types []models.ProducerType
	err := r.db.WithContext(ctx).
		Where("active = ?", true).
		Order("name ASC").
		Find(&types).Error
	if err != nil {
		return nil, err
	}
	return types, nil
}

func (r *Repository) CreateProducerType(ctx context.Context, pt *models.ProducerType) error {
	return r.db.WithContext(ctx).Create(pt).Error
}

func (r *Repository) ListProducers(ctx context.Context) ([]models.Producer, error) {
	var producers []models.Producer
	err := r.db.WithContext(ctx).
		Preload("ProducerType").
		Where("active = ?", true).
		Order("name ASC").
		Find(&producers).Error
	if err != nil {
		return nil, err
	}
	return producers, nil
}

func (r *Repository) CreateProducer(ctx context.Context, producer *models.Producer) error {
	return r.db.WithContext(ctx).Create(producer).Error
}

func (r *Repository) ListFactories(ctx context.Context) ([]models.Factory, error) {
	var factories []models.Factory
	err := r.db.WithContext(ctx).
		Where("active = ?", true).
		Order("name ASC").
		Find(&factories).Error
	if err != nil {
		return nil, err
	}
	return factories, nil
}

func (r *Repository) CreateFactory(ctx context.Context, factory *models.Factory) error {
	return r.db.WithContext(ctx).Create(factory).Error
}

func (r *Repository) ListFeedTypes(ctx context.Context) ([]models.FeedType, error) {
	var feedTypes []models.FeedType
	err := r.db.WithContext(ctx).
		Where("active = ?", true).
		Order("name ASC").
		Find(&feedTypes).Error
	if err != nil {
		return nil, err
	}
	return feedTypes, nil
}

func (r *Repository) CreateFeedType(ctx context.Context, ft *models.FeedType) error {
	return r.db.WithContext(ctx).Create(ft).Error
}

// ProducerTypeExists checks the referenced type before creating a producer.
func (r *Repository) ProducerTypeExists(ctx context.Context, id uuid.UUID) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.ProducerType{}).
		Where("id = ? AND active = ?", id, true).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}
