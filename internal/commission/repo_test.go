package commission

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

func setupCommissionTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{})
	require.NoError(t, err)

	commissionRules := `
CREATE TABLE IF NOT EXISTS commission_rules (
  id TEXT PRIMARY KEY,
  percentage TEXT NOT NULL,
  valid_from DATETIME NOT NULL,
  valid_to DATETIME,
  created_at DATETIME
);`
	require.NoError(t, db.Exec(commissionRules).Error)
	return db
}

func newCommissionRule(t *testing.T, db *gorm.DB, percentage, validFrom string, createdAt time.Time) *models.CommissionRule {
	t.Helper()

	rule := &models.CommissionRule{
		ID:         uuid.New(),
		Percentage: dec(percentage),
		ValidFrom:  day(validFrom),
		CreatedAt:  createdAt,
	}
	require.NoError(t, db.Create(rule).Error)
	return rule
}

func TestFindOpenTx_ReturnsRuleWithoutEndDate(t *testing.T) {
	db := setupCommissionTestDB(t)
	repo := NewRepository(db)

	base := time.Date(2025, 1, 10, 12, 0, 0, 0, time.UTC)
	closed := newCommissionRule(t, db, "10", "2025-01-01", base)
	require.NoError(t, repo.CloseTx(db, closed.ID, day("2025-02-28")))
	open := newCommissionRule(t, db, "12", "2025-03-01", base.Add(time.Hour))

	got, err := repo.FindOpenTx(db)

	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, open.ID, got.ID)
}

func TestFindOpenTx_EmptyTimelineIsNil(t *testing.T) {
	db := setupCommissionTestDB(t)
	repo := NewRepository(db)

	got, err := repo.FindOpenTx(db)

	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestFindOpenTx_NilTransactionRejected(t *testing.T) {
	repo := NewRepository(nil)

	_, err := repo.FindOpenTx(nil)

	assert.ErrorIs(t, err, gorm.ErrInvalidTransaction)
}

func TestUpdatePercentageTx_CorrectsInPlace(t *testing.T) {
	db := setupCommissionTestDB(t)
	repo := NewRepository(db)

	rule := newCommissionRule(t, db, "12", "2025-03-01", time.Now().UTC())

	require.NoError(t, repo.UpdatePercentageTx(db, rule.ID, dec("15")))

	got, err := repo.FindOpenTx(db)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.True(t, got.Percentage.Equal(dec("15")), "got %s", got.Percentage)
}

func TestCloseTx_StampsEndDate(t *testing.T) {
	db := setupCommissionTestDB(t)
	repo := NewRepository(db)

	rule := newCommissionRule(t, db, "12", "2025-03-01", time.Now().UTC())

	require.NoError(t, repo.CloseTx(db, rule.ID, day("2025-05-31")))

	rules, err := repo.List(context.Background())
	require.NoError(t, err)
	require.Len(t, rules, 1)
	require.NotNil(t, rules[0].ValidTo)
	assert.Equal(t, "2025-05-31", rules[0].ValidTo.Format(time.DateOnly))

	open, err := repo.FindOpenTx(db)
	require.NoError(t, err)
	assert.Nil(t, open)
}

func TestList_NewestVigencyFirst(t *testing.T) {
	db := setupCommissionTestDB(t)
	repo := NewRepository(db)

	base := time.Date(2025, 1, 10, 12, 0, 0, 0, time.UTC)
	oldest := newCommissionRule(t, db, "10", "2025-01-01", base)
	newest := newCommissionRule(t, db, "12", "2025-03-01", base.Add(time.Hour))

	rules, err := repo.List(context.Background())

	require.NoError(t, err)
	require.Len(t, rules, 2)
	assert.Equal(t, newest.ID, rules[0].ID)
	assert.Equal(t, oldest.ID, rules[1].ID)
}

func TestListAsc_InsertionOrderForResolver(t *testing.T) {
	db := setupCommissionTestDB(t)
	repo := NewRepository(db)

	base := time.Date(2025, 1, 10, 12, 0, 0, 0, time.UTC)
	first := newCommissionRule(t, db, "10", "2025-01-01", base)
	second := newCommissionRule(t, db, "12", "2025-03-01", base.Add(time.Hour))

	rules, err := repo.ListAsc(context.Background())

	require.NoError(t, err)
	require.Len(t, rules, 2)
	assert.Equal(t, first.ID, rules[0].ID)
	assert.Equal(t, second.ID, rules[1].ID)
}

func TestInsertTx_AppendsOpenVigency(t *testing.T) {
	db := setupCommissionTestDB(t)
	repo := NewRepository(db)

	rule := &models.CommissionRule{ID: uuid.New(), Percentage: dec("12"), ValidFrom: day("2025-03-01")}
	require.NoError(t, repo.InsertTx(db, rule))

	open, err := repo.FindOpenTx(db)
	require.NoError(t, err)
	require.NotNil(t, open)
	assert.Equal(t, rule.ID, open.ID)
}
