package pricing

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/vbmartins/cargalog-backend/pkg/db/models"
)

func setupPricingTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{})
	require.NoError(t, err)

	producerTypes := `
CREATE TABLE IF NOT EXISTS producer_types (
  id TEXT PRIMARY KEY,
  name TEXT NOT NULL UNIQUE,
  active INTEGER NOT NULL DEFAULT 1,
  created_at DATETIME
);`
	priceRules := `
CREATE TABLE IF NOT EXISTS price_rules (
  id TEXT PRIMARY KEY,
  producer_type_id TEXT NOT NULL,
  per_ton_rate TEXT NOT NULL,
  fixed_fee TEXT,
  min_tonnage TEXT,
  valid_from DATETIME NOT NULL,
  valid_to DATETIME,
  active INTEGER NOT NULL DEFAULT 1,
  created_at DATETIME
);`
	require.NoError(t, db.Exec(producerTypes).Error)
	require.NoError(t, db.Exec(priceRules).Error)
	return db
}

func newProducerType(t *testing.T, db *gorm.DB, name string) *models.ProducerType {
	t.Helper()

	pt := &models.ProducerType{ID: uuid.New(), Name: name, Active: true}
	require.NoError(t, db.Create(pt).Error)
	return pt
}

func newPriceRule(t *testing.T, db *gorm.DB, typeID uuid.UUID, validFrom string, createdAt time.Time, active bool) *models.PriceRule {
	t.Helper()

	rule := &models.PriceRule{
		ID:             uuid.New(),
		ProducerTypeID: typeID,
		PerTonRate:     dec("70"),
		ValidFrom:      day(validFrom),
		Active:         active,
		CreatedAt:      createdAt,
	}
	require.NoError(t, db.Create(rule).Error)
	return rule
}

func TestListByProducerType_ReturnsActiveRulesInInsertionOrder(t *testing.T) {
	db := setupPricingTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	creche := newProducerType(t, db, "Creche")
	terminacao := newProducerType(t, db, "Terminacao")

	base := time.Date(2025, 1, 10, 12, 0, 0, 0, time.UTC)
	first := newPriceRule(t, db, creche.ID, "2025-01-01", base, true)
	second := newPriceRule(t, db, creche.ID, "2025-03-01", base.Add(time.Hour), true)
	newPriceRule(t, db, creche.ID, "2025-02-01", base.Add(2*time.Hour), false)
	newPriceRule(t, db, terminacao.ID, "2025-01-01", base, true)

	rules, err := repo.ListByProducerType(ctx, creche.ID)

	require.NoError(t, err)
	require.Len(t, rules, 2)
	assert.Equal(t, first.ID, rules[0].ID)
	assert.Equal(t, second.ID, rules[1].ID)
}

func TestListAll_PreloadsProducerTypeNewestFirst(t *testing.T) {
	db := setupPricingTestDB(t)
	repo := NewRepository(db)

	creche := newProducerType(t, db, "Creche")
	base := time.Date(2025, 1, 10, 12, 0, 0, 0, time.UTC)
	newPriceRule(t, db, creche.ID, "2025-01-01", base, true)
	newest := newPriceRule(t, db, creche.ID, "2025-03-01", base.Add(time.Hour), true)

	rules, err := repo.ListAll(context.Background())

	require.NoError(t, err)
	require.Len(t, rules, 2)
	assert.Equal(t, newest.ID, rules[0].ID)
	require.NotNil(t, rules[0].ProducerType)
	assert.Equal(t, "Creche", rules[0].ProducerType.Name)
}

func TestInsert_RoundTripsDecimalFields(t *testing.T) {
	db := setupPricingTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	creche := newProducerType(t, db, "Creche")
	rule := &models.PriceRule{
		ID:             uuid.New(),
		ProducerTypeID: creche.ID,
		PerTonRate:     dec("70"),
		FixedFee:       decPtr("1190"),
		MinTonnage:     decPtr("17"),
		ValidFrom:      day("2025-01-01"),
		Active:         true,
	}
	require.NoError(t, repo.Insert(ctx, rule))

	rules, err := repo.ListByProducerType(ctx, creche.ID)

	require.NoError(t, err)
	require.Len(t, rules, 1)
	got := rules[0]
	assert.True(t, got.PerTonRate.Equal(dec("70")))
	require.NotNil(t, got.FixedFee)
	assert.True(t, got.FixedFee.Equal(dec("1190")))
	require.NotNil(t, got.MinTonnage)
	assert.True(t, got.MinTonnage.Equal(dec("17")))
}

func TestCloseOpenRule_SetsEndDateOnce(t *testing.T) {
	db := setupPricingTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	creche := newProducerType(t, db, "Creche")
	rule := newPriceRule(t, db, creche.ID, "2025-01-01", time.Now().UTC(), true)

	require.NoError(t, repo.CloseOpenRule(ctx, rule.ID, day("2025-02-28")))

	rules, err := repo.ListByProducerType(ctx, creche.ID)
	require.NoError(t, err)
	require.Len(t, rules, 1)
	require.NotNil(t, rules[0].ValidTo)
	assert.Equal(t, "2025-02-28", rules[0].ValidTo.Format(time.DateOnly))

	// already closed, nothing left to close
	err = repo.CloseOpenRule(ctx, rule.ID, day("2025-03-31"))
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestCloseOpenRule_UnknownIDIsNotFound(t *testing.T) {
	db := setupPricingTestDB(t)
	repo := NewRepository(db)

	err := repo.CloseOpenRule(context.Background(), uuid.New(), day("2025-02-28"))

	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}
