package catalog

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/vbmartins/cargalog-backend/pkg/db"
	"github.com/vbmartins/cargalog-backend/pkg/db/models"
	pkgerrors "github.com/vbmartins/cargalog-backend/pkg/errors"
)

type repository interface {
	ListProducerTypes(ctx context.Context) ([]models.ProducerType, error)
	CreateProducerType(ctx context.Context, pt *models.ProducerType) error
	ListProducers(ctx context.Context) ([]models.Producer, error)
	CreateProducer(ctx context.Context, producer *models.Producer) error
	ListFactories(ctx context.Context) ([]models.Factory, error)
	CreateFactory(ctx context.Context, factory *models.Factory) error
	ListFeedTypes(ctx context.Context) ([]models.FeedType, error)
	CreateFeedType(ctx context.Context, ft *models.FeedType) error
	ProducerTypeExists(ctx context.Context, id uuid.UUID) (bool, error)
}

// CreateProducerInput captures a new producer registration.
type CreateProducerInput struct {
	Name           string
	Location       *string
	ProducerTypeID uuid.UUID
}

// Service exposes the reference catalog used when registering loads.
type Service interface {
	ListProducerTypes(ctx context.Context) ([]models.ProducerType, error)
	CreateProducerType(ctx context.Context, name string) (*models.ProducerType, error)
	ListProducers(ctx context.Context) ([]models.Producer, error)
	CreateProducer(ctx context.Context, input CreateProducerInput) (*models.Producer, error)
	ListFactories(ctx context.Context) ([]models.Factory, error)
	CreateFactory(ctx context.Context, name string) (*models.Factory, error)
	ListFeedTypes(ctx context.Context) ([]models.FeedType, error)
	CreateFeedType(ctx context.Context, name string) (*models.FeedType, error)
}

type service struct {
	repo repository
}

// NewService builds the catalog service.
func NewService(repo repository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("catalog repository required")
	}
	return &service{repo: repo}, nil
}

func (s *service) ListProducerTypes(ctx context.Context) ([]models.ProducerType, error) {
	types, err := s.repo.ListProducerTypes(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list producer types")
	}
	return types, nil
}

func (s *service) CreateProducerType(ctx context.Context, name string) (*models.ProducerType, error) {
	name, err := cleanName(name)
	if err != nil {
		return nil, err
	}
	pt := &models.ProducerType{Name: name, Active: true}
	if err := s.repo.CreateProducerType(ctx, pt); err != nil {
		return nil, mapCreateError(err, "producer type")
	}
	return pt, nil
}

func (s *service) ListProducers(ctx context.Context) ([]models.Producer, error) {
	producers, err := s.repo.ListProducers(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list producers")
	}
	return producers, nil
}

func (s *service) CreateProducer(ctx context.Context, input CreateProducerInput) (*models.Producer, error) {
	name, err := cleanName(input.Name)
	if err != nil {
		return nil, err
	}
	if input.ProducerTypeID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "producer_type_id is required")
	}

	exists, err := s.repo.ProducerTypeExists(ctx, input.ProducerTypeID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "check producer type")
	}
	if !exists {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "producer type not found")
	}

	producer := &models.Producer{
		Name:           name,
		Location:       input.Location,
		ProducerTypeID: input.ProducerTypeID,
		Active:         true,
	}
	if err := s.repo.CreateProducer(ctx, producer); err != nil {
		return nil, mapCreateError(err, "producer")
	}
	return producer, nil
}

func (s *service) ListFactories(ctx context.Context) ([]models.Factory, error) {
	factories, err := s.repo.ListFactories(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list factories")
	}
	return factories, nil
}

func (s *service) CreateFactory(ctx context.Context, name string) (*models.Factory, error) {
	name, err := cleanName(name)
	if err != nil {
		return nil, err
	}
	factory := &models.Factory{Name: name, Active: true}
	if err := s.repo.CreateFactory(ctx, factory); err != nil {
		return nil, mapCreateError(err, "factory")
	}
	return factory, nil
}

func (s *service) ListFeedTypes(ctx context.Context) ([]models.FeedType, error) {
	feedTypes, err := s.repo.ListFeedTypes(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list feed types")
	}
	return feedTypes, nil
}

func (s *service) CreateFeedType(ctx context.Context, name string) (*models.FeedType, error) {
	name, err := cleanName(name)
	if err != nil {
		return nil, err
	}
	ft := &models.FeedType{Name: name, Active: true}
	if err := s.repo.CreateFeedType(ctx, ft); err != nil {
		return nil, mapCreateError(err, "feed type")
	}
	return ft, nil
}

func cleanName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", pkgerrors.New(pkgerrors.CodeValidation, "name is required")
	}
	return name, nil
}

func mapCreateError(err error, entity string) error {
	if db.IsUniqueViolation(err, "") {
		return pkgerrors.New(pkgerrors.CodeConflict, entity+" already exists")
	}
	return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create "+entity)
}
