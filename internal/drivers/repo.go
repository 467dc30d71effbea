package drivers

import (
	"context"

	"gorm.io/gorm"

	"github.com/vbmartins/cargalog-backend/pkg/db/models"
	"github.com/vbmartins/cargalog-backend/pkg/enums"
)

// Repository handles driver accounts in the users table.
type Repository struct {
	db *gorm.DB
}

// NewRepository binds a GORM DB to driver operations.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// List returns every driver account ordered by name. Inactive drivers stay in
// the listing so past loads keep a visible owner.
func (r *Repository) List(ctx context.Context) ([]models.User, error) {
	var users []models.User
	err := r.db.WithContext(ctx).
		Where("role = ?", enums.UserRoleDriver).
		Order("name ASC").
		Find(&users).Error
	if err != nil {
		return nil, err
	}
	return users, nil
}

// Create persists a new driver account.
func (r *Repository) Create(ctx context.Context, user *models.User) error {
	return r.db.WithContext(ctx).Create(user).Error
}
