package reports

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	pkgerrors "github.com/vbmartins/cargalog-backend/pkg/errors"
)

type stubReportsRepo struct {
	totalsFn     func(ctx context.Context, from, to time.Time) (*Totals, error)
	perDriverFn  func(ctx context.Context, from, to time.Time) ([]DriverBreakdown, error)
	conferenceFn func(ctx context.Context, from, to time.Time) ([]ConferenceRow, error)
}

func (s *stubReportsRepo) Totals(ctx context.Context, from, to time.Time) (*Totals, error) {
	if s.totalsFn != nil {
		return s.totalsFn(ctx, from, to)
	}
	return &Totals{}, nil
}

func (s *stubReportsRepo) PerDriver(ctx context.Context, from, to time.Time) ([]DriverBreakdown, error) {
	if s.perDriverFn != nil {
		return s.perDriverFn(ctx, from, to)
	}
	return nil, nil
}

func (s *stubReportsRepo) Conference(ctx context.Context, from, to time.Time) ([]ConferenceRow, error) {
	if s.conferenceFn != nil {
		return s.conferenceFn(ctx, from, to)
	}
	return nil, nil
}

func fixedNow() time.Time {
	return time.Date(2025, 7, 18, 10, 0, 0, 0, time.UTC)
}

func newTestService(t *testing.T, repo *stubReportsRepo) *service {
	t.Helper()
	svc, err := NewService(repo)
	require.NoError(t, err)
	impl := svc.(*service)
	impl.now = fixedNow
	return impl
}

func requireCode(t *testing.T, err error, code pkgerrors.Code) {
	t.Helper()
	var appErr *pkgerrors.Error
	require.ErrorAs(t, err, &appErr)
	require.Equal(t, code, appErr.Code())
}

func TestDashboard_PassesHalfOpenMonthRange(t *testing.T) {
	var gotFrom, gotTo time.Time
	repo := &stubReportsRepo{
		totalsFn: func(_ context.Context, from, to time.Time) (*Totals, error) {
			gotFrom, gotTo = from, to
			return &Totals{TotalLoads: 3, TotalValue: decimal.NewFromInt(4200)}, nil
		},
	}
	svc := newTestService(t, repo)

	dash, err := svc.Dashboard(context.Background(), Period{Month: 3, Year: 2025})

	require.NoError(t, err)
	require.Equal(t, time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC), gotFrom)
	require.Equal(t, time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC), gotTo)
	require.Equal(t, int64(3), dash.Totals.TotalLoads)
}

func TestDashboard_EmptyPeriodDefaultsToCurrentMonth(t *testing.T) {
	var gotFrom time.Time
	repo := &stubReportsRepo{
		totalsFn: func(_ context.Context, from, _ time.Time) (*Totals, error) {
			gotFrom = from
			return &Totals{}, nil
		},
	}
	svc := newTestService(t, repo)

	_, err := svc.Dashboard(context.Background(), Period{})

	require.NoError(t, err)
	require.Equal(t, time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC), gotFrom)
}

func TestDashboard_MonthOnlyDefaultsYear(t *testing.T) {
	var gotFrom time.Time
	repo := &stubReportsRepo{
		totalsFn: func(_ context.Context, from, _ time.Time) (*Totals, error) {
			gotFrom = from
			return &Totals{}, nil
		},
	}
	svc := newTestService(t, repo)

	_, err := svc.Dashboard(context.Background(), Period{Month: 2})

	require.NoError(t, err)
	require.Equal(t, time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC), gotFrom)
}

func TestDashboard_RejectsInvalidPeriod(t *testing.T) {
	svc := newTestService(t, &stubReportsRepo{})

	_, err := svc.Dashboard(context.Background(), Period{Month: 13, Year: 2025})
	requireCode(t, err, pkgerrors.CodeValidation)

	_, err = svc.Dashboard(context.Background(), Period{Month: 3, Year: 1999})
	requireCode(t, err, pkgerrors.CodeValidation)
}

func TestConference_ReturnsRowsForPeriod(t *testing.T) {
	rows := []ConferenceRow{{DriverName: "Carlos", InvoiceNumber: "NF-1"}}
	repo := &stubReportsRepo{
		conferenceFn: func(_ context.Context, from, to time.Time) ([]ConferenceRow, error) {
			require.Equal(t, time.Date(2025, 12, 1, 0, 0, 0, 0, time.UTC), from)
			require.Equal(t, time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC), to)
			return rows, nil
		},
	}
	svc := newTestService(t, repo)

	got, err := svc.Conference(context.Background(), Period{Month: 12, Year: 2025})

	require.NoError(t, err)
	require.Equal(t, rows, got)
}
