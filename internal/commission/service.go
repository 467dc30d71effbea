package commission

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/vbmartins/cargalog-backend/internal/pricing"
	"github.com/vbmartins/cargalog-backend/pkg/db/models"
	pkgerrors "github.com/vbmartins/cargalog-backend/pkg/errors"
	"github.com/vbmartins/cargalog-backend/pkg/logger"
)

type repository interface {
	List(ctx context.Context) ([]models.CommissionRule, error)
	ListAsc(ctx context.Context) ([]models.CommissionRule, error)
	FindOpenTx(tx *gorm.DB) (*models.CommissionRule, error)
	UpdatePercentageTx(tx *gorm.DB, id uuid.UUID, percentage decimal.Decimal) error
	CloseTx(tx *gorm.DB, id uuid.UUID, endDate time.Time) error
	InsertTx(tx *gorm.DB, rule *models.CommissionRule) error
}

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

// Service manages the global commission percentage timeline.
type Service interface {
	// ResolvePercentage returns the percentage in effect on the given date.
	// A gap in the timeline resolves to zero, mirroring the price fail-open.
	ResolvePercentage(ctx context.Context, date time.Time) (decimal.Decimal, error)
	// History returns all vigencies, newest first.
	History(ctx context.Context) ([]models.CommissionRule, error)
	// ApplyNewVigency advances the timeline atomically: a vigency starting on
	// the open rule's start date corrects it in place; a later start closes
	// the open rule the day before and opens a new one; an earlier start is
	// rejected as unsupported.
	ApplyNewVigency(ctx context.Context, percentage decimal.Decimal, validFrom time.Time) error
}

type service struct {
	repo repository
	tx   txRunner
	logg *logger.Logger
}

// NewService builds the commission service.
func NewService(repo repository, tx txRunner, logg *logger.Logger) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("commission repository required")
	}
	if tx == nil {
		return nil, fmt.Errorf("transaction runner required")
	}
	return &service{repo: repo, tx: tx, logg: logg}, nil
}

var hundred = decimal.NewFromInt(100)

func (s *service) ResolvePercentage(ctx context.Context, date time.Time) (decimal.Decimal, error) {
	rules, err := s.repo.ListAsc(ctx)
	if err != nil {
		return decimal.Zero, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list commission rules")
	}

	rule := pricing.ResolveCommissionRule(rules, date)
	if rule == nil {
		if s.logg != nil {
			warnCtx := s.logg.WithField(ctx, "date", pricing.DateOnly(date).Format(time.DateOnly))
			s.logg.Warn(warnCtx, "commission.no_vigency_for_date")
		}
		return decimal.Zero, nil
	}
	return rule.Percentage, nil
}

func (s *service) History(ctx context.Context) ([]models.CommissionRule, error) {
	rules, err := s.repo.List(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list commission rules")
	}
	return rules, nil
}

func (s *service) ApplyNewVigency(ctx context.Context, percentage decimal.Decimal, validFrom time.Time) error {
	if percentage.IsNegative() || percentage.GreaterThan(hundred) {
		return pkgerrors.New(pkgerrors.CodeValidation, "percentage must be between 0 and 100")
	}
	if validFrom.IsZero() {
		return pkgerrors.New(pkgerrors.CodeValidation, "valid_from is required")
	}

	start := pricing.DateOnly(validFrom)

	return s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		open, err := s.repo.FindOpenTx(tx)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "find open commission rule")
		}

		if open != nil {
			openStart := pricing.DateOnly(open.ValidFrom)

			// Same start date is a correction of the open vigency, not a new row.
			if openStart.Equal(start) {
				if err := s.repo.UpdatePercentageTx(tx, open.ID, percentage); err != nil {
					return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update commission percentage")
				}
				return nil
			}

			if openStart.After(start) {
				return pkgerrors.New(pkgerrors.CodeUnsupported, "retroactive commission vigency is not supported")
			}

			if err := s.repo.CloseTx(tx, open.ID, start.AddDate(0, 0, -1)); err != nil {
				return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "close open commission rule")
			}
		}

		rule := &models.CommissionRule{
			Percentage: percentage,
			ValidFrom:  start,
		}
		if err := s.repo.InsertTx(tx, rule); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "insert commission rule")
		}
		return nil
	})
}
