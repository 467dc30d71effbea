package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/vbmartins/cargalog-backend/pkg/enums"
)

// User is an authenticated account: a back-office admin or a driver.
type User struct {
	ID           uuid.UUID      `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	Name         string         `gorm:"column:name;not null"`
	Username     string         `gorm:"column:username;not null;uniqueIndex"`
	PasswordHash string         `gorm:"column:password_hash;not null"`
	Role         enums.UserRole `gorm:"column:role;not null"`
	Active       bool           `gorm:"column:active;not null;default:true"`
	CreatedAt    time.Time      `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt    time.Time      `gorm:"column:updated_at;autoUpdateTime"`
}
