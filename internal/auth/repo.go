package auth

import (
	"context"

	"gorm.io/gorm"

	"github.com/vbmartins/cargalog-backend/pkg/db/models"
)

// Repository looks up accounts for authentication.
type Repository struct {
	db *gorm.DB
}

// NewRepository binds a GORM DB to auth lookups.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// FindByUsername returns the account with the given username.
func (r *Repository) FindByUsername(ctx context.Context, username string) (*models.User, error) {
	var user models.User
	err := r.db.WithContext(ctx).First(&user, "username = ?", username).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}
