package drivers

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/vbmartins/cargalog-backend/pkg/config"
	"github.com/vbmartins/cargalog-backend/pkg/db"
	"github.com/vbmartins/cargalog-backend/pkg/db/models"
	"github.com/vbmartins/cargalog-backend/pkg/enums"
	pkgerrors "github.com/vbmartins/cargalog-backend/pkg/errors"
	"github.com/vbmartins/cargalog-backend/pkg/security"
)

type repository interface {
	List(ctx context.Context) ([]models.User, error)
	Create(ctx context.Context, user *models.User) error
}

// DriverDTO is a driver account without credential fields.
type DriverDTO struct {
	ID       uuid.UUID `json:"id"`
	Name     string    `json:"name"`
	Username string    `json:"username"`
	Active   bool      `json:"active"`
}

// CreateInput captures a new driver registration.
type CreateInput struct {
	Name     string
	Username string
	Password string
}

// Service manages driver accounts.
type Service interface {
	List(ctx context.Context) ([]DriverDTO, error)
	Create(ctx context.Context, input CreateInput) (*DriverDTO, error)
}

type service struct {
	repo        repository
	passwordCfg config.PasswordConfig
}

// NewService builds the driver account service.
func NewService(repo repository, passwordCfg config.PasswordConfig) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("drivers repository required")
	}
	return &service{repo: repo, passwordCfg: passwordCfg}, nil
}

func (s *service) List(ctx context.Context) ([]DriverDTO, error) {
	users, err := s.repo.List(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list drivers")
	}

	dtos := make([]DriverDTO, 0, len(users))
	for _, user := range users {
		dtos = append(dtos, fromModel(&user))
	}
	return dtos, nil
}

func (s *service) Create(ctx context.Context, input CreateInput) (*DriverDTO, error) {
	name := strings.TrimSpace(input.Name)
	username := strings.ToLower(strings.TrimSpace(input.Username))
	if name == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "name is required")
	}
	if username == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "username is required")
	}
	if len(input.Password) < 6 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "password must have at least 6 characters")
	}

	hash, err := security.HashPassword(input.Password, s.passwordCfg)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "hash password")
	}

	user := &models.User{
		Name:         name,
		Username:     username,
		PasswordHash: hash,
		Role:         enums.UserRoleDriver,
		Active:       true,
	}
	if err := s.repo.Create(ctx, user); err != nil {
		if db.IsUniqueViolation(err, "") {
			return nil, pkgerrors.New(pkgerrors.CodeConflict, "username already exists")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create driver")
	}

	dto := fromModel(user)
	return &dto, nil
}

func fromModel(user *models.User) DriverDTO {
	return DriverDTO{
		ID:       user.ID,
		Name:     user.Name,
		Username: user.Username,
		Active:   user.Active,
	}
}
