package loads

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/vbmartins/cargalog-backend/internal/pricing"
	"github.com/vbmartins/cargalog-backend/pkg/db/models"
	"github.com/vbmartins/cargalog-backend/pkg/enums"
	pkgerrors "github.com/vbmartins/cargalog-backend/pkg/errors"
)

type repository interface {
	InsertLoadTx(tx *gorm.DB, load *models.Load) error
	InsertItemsTx(tx *gorm.DB, items []models.LoadItem) error
	FindProducer(ctx context.Context, id uuid.UUID) (*models.Producer, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.Load, error)
	List(ctx context.Context, filter ListFilter) ([]models.Load, error)
	SetEndOdometer(ctx context.Context, id uuid.UUID, value decimal.Decimal) error
}

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

type allocator interface {
	AllocateLoadValues(ctx context.Context, date time.Time, items []pricing.ItemInput) ([]decimal.Decimal, error)
}

type commissionResolver interface {
	ResolvePercentage(ctx context.Context, date time.Time) (decimal.Decimal, error)
}

// Service defines load lifecycle operations. Item values are computed once at
// creation; the commission is joined live against the load date on every read.
type Service interface {
	Create(ctx context.Context, actor Actor, input CreateInput) (*models.Load, error)
	List(ctx context.Context, actor Actor, filter ListFilter) ([]Summary, error)
	Get(ctx context.Context, actor Actor, id uuid.UUID) (*Detail, error)
	Finalize(ctx context.Context, actor Actor, id uuid.UUID, endOdometer decimal.Decimal) error
}

type service struct {
	repo       repository
	tx         txRunner
	pricing    allocator
	commission commissionResolver
}

// NewService builds the load service with the required dependencies.
func NewService(repo repository, tx txRunner, pricingSvc allocator, commission commissionResolver) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("loads repository required")
	}
	if tx == nil {
		return nil, fmt.Errorf("transaction runner required")
	}
	if pricingSvc == nil {
		return nil, fmt.Errorf("pricing service required")
	}
	if commission == nil {
		return nil, fmt.Errorf("commission resolver required")
	}
	return &service{repo: repo, tx: tx, pricing: pricingSvc, commission: commission}, nil
}

var hundred = decimal.NewFromInt(100)

func (s *service) Create(ctx context.Context, actor Actor, input CreateInput) (*models.Load, error) {
	driverID := input.DriverID
	if actor.Role == enums.UserRoleDriver {
		driverID = actor.UserID
	}
	if driverID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "driver_id is required")
	}
	if input.Date.IsZero() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "date is required")
	}
	if !input.StartOdometer.IsPositive() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "start_odometer must be positive")
	}
	if input.EndOdometer != nil && input.EndOdometer.LessThan(input.StartOdometer) {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "end_odometer must not precede start_odometer")
	}
	if len(input.Items) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "at least one load item is required")
	}

	date := pricing.DateOnly(input.Date)

	allocInputs := make([]pricing.ItemInput, len(input.Items))
	for i, item := range input.Items {
		if item.FactoryID == uuid.Nil || item.ProducerID == uuid.Nil || item.FeedTypeID == uuid.Nil {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("item %d: factory_id, producer_id and feed_type_id are required", i))
		}
		if item.InvoiceNumber == "" {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("item %d: invoice_number is required", i))
		}

		producer, err := s.repo.FindProducer(ctx, item.ProducerID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, pkgerrors.New(pkgerrors.CodeNotFound, fmt.Sprintf("item %d: producer not found", i))
			}
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load producer")
		}

		allocInputs[i] = pricing.ItemInput{
			QuantityKg:     item.QuantityKg,
			ProducerTypeID: producer.ProducerTypeID,
		}
	}

	values, err := s.pricing.AllocateLoadValues(ctx, date, allocInputs)
	if err != nil {
		return nil, err
	}

	load := &models.Load{
		DriverID:      driverID,
		Date:          date,
		StartOdometer: input.StartOdometer,
		EndOdometer:   input.EndOdometer,
	}

	err = s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		if err := s.repo.InsertLoadTx(tx, load); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "insert load")
		}

		items := make([]models.LoadItem, len(input.Items))
		for i, item := range input.Items {
			items[i] = models.LoadItem{
				LoadID:        load.ID,
				FactoryID:     item.FactoryID,
				ProducerID:    item.ProducerID,
				FeedTypeID:    item.FeedTypeID,
				InvoiceNumber: item.InvoiceNumber,
				QuantityKg:    item.QuantityKg,
				ComputedValue: values[i],
			}
		}
		if err := s.repo.InsertItemsTx(tx, items); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "insert load items")
		}
		load.Items = items
		return nil
	})
	if err != nil {
		return nil, err
	}
	return load, nil
}

func (s *service) List(ctx context.Context, actor Actor, filter ListFilter) ([]Summary, error) {
	// Drivers only ever see their own loads, whatever the filter says.
	if actor.Role == enums.UserRoleDriver {
		id := actor.UserID
		filter.DriverID = &id
	}

	loads, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list loads")
	}

	summaries := make([]Summary, 0, len(loads))
	for i := range loads {
		summary, err := s.summarize(ctx, &loads[i])
		if err != nil {
			return nil, err
		}
		summaries = append(summaries, *summary)
	}
	return summaries, nil
}

func (s *service) Get(ctx context.Context, actor Actor, id uuid.UUID) (*Detail, error) {
	if id == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "load id is required")
	}

	load, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "load not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load load")
	}
	if actor.Role == enums.UserRoleDriver && load.DriverID != actor.UserID {
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, "load does not belong to driver")
	}

	summary, err := s.summarize(ctx, load)
	if err != nil {
		return nil, err
	}

	detail := &Detail{Summary: *summary, Items: make([]ItemDetail, 0, len(load.Items))}
	for _, item := range load.Items {
		row := ItemDetail{
			ID:            item.ID,
			FactoryID:     item.FactoryID,
			ProducerID:    item.ProducerID,
			FeedTypeID:    item.FeedTypeID,
			InvoiceNumber: item.InvoiceNumber,
			QuantityKg:    item.QuantityKg,
			ComputedValue: item.ComputedValue,
		}
		if item.Factory != nil {
			row.FactoryName = item.Factory.Name
		}
		if item.Producer != nil {
			row.ProducerName = item.Producer.Name
			row.ProducerLocation = item.Producer.Location
			if item.Producer.ProducerType != nil {
				row.ProducerTypeName = item.Producer.ProducerType.Name
			}
		}
		if item.FeedType != nil {
			row.FeedTypeName = item.FeedType.Name
		}
		detail.Items = append(detail.Items, row)
	}
	return detail, nil
}

func (s *service) Finalize(ctx context.Context, actor Actor, id uuid.UUID, endOdometer decimal.Decimal) error {
	if id == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "load id is required")
	}

	load, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.New(pkgerrors.CodeNotFound, "load not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load load")
	}
	if actor.Role == enums.UserRoleDriver && load.DriverID != actor.UserID {
		return pkgerrors.New(pkgerrors.CodeForbidden, "load does not belong to driver")
	}
	if endOdometer.LessThan(load.StartOdometer) {
		return pkgerrors.New(pkgerrors.CodeValidation, "end_odometer must not precede start_odometer")
	}

	if err := s.repo.SetEndOdometer(ctx, id, endOdometer); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update end odometer")
	}
	return nil
}

// summarize aggregates item totals and joins the commission in effect on the
// load date. Stored item values are never touched.
func (s *service) summarize(ctx context.Context, load *models.Load) (*Summary, error) {
	totalKg := decimal.Zero
	totalValue := decimal.Zero
	for _, item := range load.Items {
		totalKg = totalKg.Add(item.QuantityKg)
		totalValue = totalValue.Add(item.ComputedValue)
	}

	percent, err := s.commission.ResolvePercentage(ctx, load.Date)
	if err != nil {
		return nil, err
	}

	summary := &Summary{
		ID:                load.ID,
		DriverID:          load.DriverID,
		Date:              load.Date,
		StartOdometer:     load.StartOdometer,
		EndOdometer:       load.EndOdometer,
		ItemCount:         len(load.Items),
		TotalKg:           totalKg,
		TotalValue:        totalValue,
		CommissionPercent: percent,
		CommissionValue:   totalValue.Mul(percent).Div(hundred),
	}
	if load.Driver != nil {
		summary.DriverName = load.Driver.Name
	}
	return summary, nil
}
