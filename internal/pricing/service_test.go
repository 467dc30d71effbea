package pricing

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/vbmartins/cargalog-backend/pkg/db/models"
	pkgerrors "github.com/vbmartins/cargalog-backend/pkg/errors"
)

type stubRuleRepo struct {
	listByTypeFn func(ctx context.Context, producerTypeID uuid.UUID) ([]models.PriceRule, error)
	listAllFn    func(ctx context.Context) ([]models.PriceRule, error)
	insertFn     func(ctx context.Context, rule *models.PriceRule) error
	closeFn      func(ctx context.Context, id uuid.UUID, endDate time.Time) error
}

func (s *stubRuleRepo) ListByProducerType(ctx context.Context, producerTypeID uuid.UUID) ([]models.PriceRule, error) {
	if s.listByTypeFn != nil {
		return s.listByTypeFn(ctx, producerTypeID)
	}
	return nil, nil
}

func (s *stubRuleRepo) ListAll(ctx context.Context) ([]models.PriceRule, error) {
	if s.listAllFn != nil {
		return s.listAllFn(ctx)
	}
	return nil, nil
}

func (s *stubRuleRepo) Insert(ctx context.Context, rule *models.PriceRule) error {
	if s.insertFn != nil {
		return s.insertFn(ctx, rule)
	}
	return nil
}

func (s *stubRuleRepo) CloseOpenRule(ctx context.Context, id uuid.UUID, endDate time.Time) error {
	if s.closeFn != nil {
		return s.closeFn(ctx, id, endDate)
	}
	return nil
}

func requireCode(t *testing.T, err error, code pkgerrors.Code) {
	t.Helper()
	var appErr *pkgerrors.Error
	require.ErrorAs(t, err, &appErr)
	require.Equal(t, code, appErr.Code())
}

func TestNewService_RequiresRepository(t *testing.T) {
	_, err := NewService(nil)
	require.Error(t, err)
}

func TestCreateRule_Validations(t *testing.T) {
	svc, err := NewService(&stubRuleRepo{})
	require.NoError(t, err)

	ctx := context.Background()
	typeID := uuid.New()

	_, err = svc.CreateRule(ctx, CreateRuleInput{PerTonRate: dec("70"), ValidFrom: day("2025-01-01")})
	requireCode(t, err, pkgerrors.CodeValidation)

	_, err = svc.CreateRule(ctx, CreateRuleInput{ProducerTypeID: typeID, PerTonRate: dec("0"), ValidFrom: day("2025-01-01")})
	requireCode(t, err, pkgerrors.CodeValidation)

	_, err = svc.CreateRule(ctx, CreateRuleInput{ProducerTypeID: typeID, PerTonRate: dec("70"), MinTonnage: decPtr("17"), ValidFrom: day("2025-01-01")})
	requireCode(t, err, pkgerrors.CodeValidation)

	_, err = svc.CreateRule(ctx, CreateRuleInput{ProducerTypeID: typeID, PerTonRate: dec("70")})
	requireCode(t, err, pkgerrors.CodeValidation)

	_, err = svc.CreateRule(ctx, CreateRuleInput{
		ProducerTypeID: typeID,
		PerTonRate:     dec("70"),
		ValidFrom:      day("2025-02-01"),
		ValidTo:        dayPtr("2025-01-01"),
	})
	requireCode(t, err, pkgerrors.CodeValidation)
}

func TestCreateRule_InsertsActiveRuleWithTruncatedDates(t *testing.T) {
	var inserted *models.PriceRule
	repo := &stubRuleRepo{
		insertFn: func(_ context.Context, rule *models.PriceRule) error {
			inserted = rule
			return nil
		},
	}
	svc, err := NewService(repo)
	require.NoError(t, err)

	from := time.Date(2025, 3, 1, 14, 30, 0, 0, time.UTC)
	rule, err := svc.CreateRule(context.Background(), CreateRuleInput{
		ProducerTypeID: uuid.New(),
		PerTonRate:     dec("70"),
		FixedFee:       decPtr("1190"),
		MinTonnage:     decPtr("17"),
		ValidFrom:      from,
	})

	require.NoError(t, err)
	require.NotNil(t, inserted)
	require.Same(t, inserted, rule)
	require.True(t, rule.Active)
	require.Equal(t, day("2025-03-01"), rule.ValidFrom)
	require.Nil(t, rule.ValidTo)
}

func TestRuleFor_ResolvesAgainstStoredRules(t *testing.T) {
	typeID := uuid.New()
	current := models.PriceRule{ID: uuid.New(), ValidFrom: day("2025-03-01"), Active: true}
	repo := &stubRuleRepo{
		listByTypeFn: func(_ context.Context, got uuid.UUID) ([]models.PriceRule, error) {
			require.Equal(t, typeID, got)
			return []models.PriceRule{
				{ID: uuid.New(), ValidFrom: day("2025-01-01"), ValidTo: dayPtr("2025-02-28"), Active: true},
				current,
			}, nil
		},
	}
	svc, err := NewService(repo)
	require.NoError(t, err)

	rule, err := svc.RuleFor(context.Background(), typeID, day("2025-04-10"))

	require.NoError(t, err)
	require.NotNil(t, rule)
	require.Equal(t, current.ID, rule.ID)
}

func TestRuleFor_MissReturnsNilRule(t *testing.T) {
	svc, err := NewService(&stubRuleRepo{})
	require.NoError(t, err)

	rule, err := svc.RuleFor(context.Background(), uuid.New(), day("2025-04-10"))

	require.NoError(t, err)
	require.Nil(t, rule)
}

func TestCloseRule_Validations(t *testing.T) {
	svc, err := NewService(&stubRuleRepo{})
	require.NoError(t, err)

	requireCode(t, svc.CloseRule(context.Background(), uuid.Nil, day("2025-01-31")), pkgerrors.CodeValidation)
	requireCode(t, svc.CloseRule(context.Background(), uuid.New(), time.Time{}), pkgerrors.CodeValidation)
}

func TestCloseRule_PassesThroughToRepository(t *testing.T) {
	id := uuid.New()
	end := day("2025-01-31")
	called := false
	repo := &stubRuleRepo{
		closeFn: func(_ context.Context, gotID uuid.UUID, gotEnd time.Time) error {
			called = true
			require.Equal(t, id, gotID)
			require.Equal(t, end, gotEnd)
			return nil
		},
	}
	svc, err := NewService(repo)
	require.NoError(t, err)

	require.NoError(t, svc.CloseRule(context.Background(), id, end))
	require.True(t, called)
}
