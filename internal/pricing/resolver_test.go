package pricing

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/vbmartins/cargalog-backend/pkg/db/models"
)

func day(value string) time.Time {
	parsed, err := time.Parse(time.DateOnly, value)
	if err != nil {
		panic(err)
	}
	return parsed
}

func dayPtr(value string) *time.Time {
	d := day(value)
	return &d
}

func TestResolvePriceRule_PicksWindowContainingDate(t *testing.T) {
	rules := []models.PriceRule{
		{ID: uuid.New(), ValidFrom: day("2025-01-01"), ValidTo: dayPtr("2025-06-30"), Active: true},
		{ID: uuid.New(), ValidFrom: day("2025-07-01"), Active: true},
	}

	got := ResolvePriceRule(rules, day("2025-03-15"))
	require.NotNil(t, got)
	require.Equal(t, rules[0].ID, got.ID)

	got = ResolvePriceRule(rules, day("2025-08-01"))
	require.NotNil(t, got)
	require.Equal(t, rules[1].ID, got.ID)
}

func TestResolvePriceRule_WindowBoundsAreInclusive(t *testing.T) {
	rules := []models.PriceRule{
		{ID: uuid.New(), ValidFrom: day("2025-01-01"), ValidTo: dayPtr("2025-01-31"), Active: true},
	}

	require.NotNil(t, ResolvePriceRule(rules, day("2025-01-01")))
	require.NotNil(t, ResolvePriceRule(rules, day("2025-01-31")))
	require.Nil(t, ResolvePriceRule(rules, day("2024-12-31")))
	require.Nil(t, ResolvePriceRule(rules, day("2025-02-01")))
}

func TestResolvePriceRule_LatestValidFromWins(t *testing.T) {
	older := models.PriceRule{ID: uuid.New(), ValidFrom: day("2025-01-01"), Active: true}
	newer := models.PriceRule{ID: uuid.New(), ValidFrom: day("2025-03-01"), Active: true}

	got := ResolvePriceRule([]models.PriceRule{newer, older}, day("2025-04-01"))

	require.NotNil(t, got)
	require.Equal(t, newer.ID, got.ID)
}

func TestResolvePriceRule_EqualValidFromLastInsertedWins(t *testing.T) {
	first := models.PriceRule{ID: uuid.New(), ValidFrom: day("2025-01-01"), Active: true}
	second := models.PriceRule{ID: uuid.New(), ValidFrom: day("2025-01-01"), Active: true}

	// callers pass rules in insertion order
	got := ResolvePriceRule([]models.PriceRule{first, second}, day("2025-02-01"))

	require.NotNil(t, got)
	require.Equal(t, second.ID, got.ID)
}

func TestResolvePriceRule_SkipsInactive(t *testing.T) {
	inactive := models.PriceRule{ID: uuid.New(), ValidFrom: day("2025-03-01"), Active: false}
	active := models.PriceRule{ID: uuid.New(), ValidFrom: day("2025-01-01"), Active: true}

	got := ResolvePriceRule([]models.PriceRule{active, inactive}, day("2025-04-01"))

	require.NotNil(t, got)
	require.Equal(t, active.ID, got.ID)
}

func TestResolvePriceRule_NoMatchReturnsNil(t *testing.T) {
	rules := []models.PriceRule{
		{ID: uuid.New(), ValidFrom: day("2025-06-01"), Active: true},
	}

	require.Nil(t, ResolvePriceRule(rules, day("2025-05-31")))
	require.Nil(t, ResolvePriceRule(nil, day("2025-05-31")))
}

func TestResolveCommissionRule_SameSemantics(t *testing.T) {
	closed := models.CommissionRule{ID: uuid.New(), Percentage: dec("10"), ValidFrom: day("2025-01-01"), ValidTo: dayPtr("2025-02-28")}
	open := models.CommissionRule{ID: uuid.New(), Percentage: dec("12"), ValidFrom: day("2025-03-01")}

	got := ResolveCommissionRule([]models.CommissionRule{closed, open}, day("2025-02-10"))
	require.NotNil(t, got)
	require.Equal(t, closed.ID, got.ID)

	got = ResolveCommissionRule([]models.CommissionRule{closed, open}, day("2025-03-01"))
	require.NotNil(t, got)
	require.Equal(t, open.ID, got.ID)

	require.Nil(t, ResolveCommissionRule([]models.CommissionRule{open}, day("2025-02-28")))
}
