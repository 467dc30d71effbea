package reports

import (
	"context"
	"fmt"
	"time"

	pkgerrors "github.com/vbmartins/cargalog-backend/pkg/errors"
)

type repository interface {
	Totals(ctx context.Context, from, to time.Time) (*Totals, error)
	PerDriver(ctx context.Context, from, to time.Time) ([]DriverBreakdown, error)
	Conference(ctx context.Context, from, to time.Time) ([]ConferenceRow, error)
}

// Service builds the admin reporting views.
type Service interface {
	Dashboard(ctx context.Context, period Period) (*Dashboard, error)
	Conference(ctx context.Context, period Period) ([]ConferenceRow, error)
}

type service struct {
	repo repository
	now  func() time.Time
}

// NewService builds the reports service.
func NewService(repo repository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("reports repository required")
	}
	return &service{repo: repo, now: time.Now}, nil
}

func (s *service) Dashboard(ctx context.Context, period Period) (*Dashboard, error) {
	from, to, err := s.resolveRange(period)
	if err != nil {
		return nil, err
	}

	totals, err := s.repo.Totals(ctx, from, to)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "aggregate totals")
	}
	perDriver, err := s.repo.PerDriver(ctx, from, to)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "aggregate per driver")
	}

	return &Dashboard{Totals: *totals, PerDriver: perDriver}, nil
}

func (s *service) Conference(ctx context.Context, period Period) ([]ConferenceRow, error) {
	from, to, err := s.resolveRange(period)
	if err != nil {
		return nil, err
	}

	rows, err := s.repo.Conference(ctx, from, to)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "build conference report")
	}
	return rows, nil
}

// resolveRange turns a period into a half-open UTC date range, defaulting to
// the current month when the period is empty.
func (s *service) resolveRange(period Period) (time.Time, time.Time, error) {
	now := s.now().UTC()
	if period.Month == 0 {
		period.Month = int(now.Month())
	}
	if period.Year == 0 {
		period.Year = now.Year()
	}
	if period.Month < 1 || period.Month > 12 {
		return time.Time{}, time.Time{}, pkgerrors.New(pkgerrors.CodeValidation, "month must be between 1 and 12")
	}
	if period.Year < 2000 {
		return time.Time{}, time.Time{}, pkgerrors.New(pkgerrors.CodeValidation, "year is out of range")
	}

	from := time.Date(period.Year, time.Month(period.Month), 1, 0, 0, 0, 0, time.UTC)
	return from, from.AddDate(0, 1, 0), nil
}
