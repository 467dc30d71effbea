package pricing

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/vbmartins/cargalog-backend/pkg/db/models"
	pkgerrors "github.com/vbmartins/cargalog-backend/pkg/errors"
)

// ItemInput is one load item as seen by the allocator: its weight and the
// producer type that selects the price rule.
type ItemInput struct {
	QuantityKg     decimal.Decimal
	ProducerTypeID uuid.UUID
}

// RuleSource resolves the price rule in effect for a producer type on a date.
// A nil rule (with nil error) means no rule is in effect.
type RuleSource interface {
	RuleFor(ctx context.Context, producerTypeID uuid.UUID, asOf time.Time) (*models.PriceRule, error)
}

// Allocate computes the freight value of every item on one load.
//
// A single-item load is valued directly against its own weight, so the
// minimum-tonnage test sees the item's weight. A multi-item load is valued
// once against the combined weight, with the rule of the FIRST item's
// producer type governing the whole load, and the resulting base value is
// prorated across items by weight share. Items on a mixed-type load therefore
// all follow the first item's rule; that mirrors how historical values were
// computed and must not be "fixed" to per-item lookups.
func Allocate(ctx context.Context, src RuleSource, date time.Time, items []ItemInput) ([]decimal.Decimal, error) {
	if len(items) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "at least one load item is required")
	}

	totalKg := decimal.Zero
	for i, item := range items {
		if !item.QuantityKg.IsPositive() {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("item %d: quantity_kg must be positive", i))
		}
		totalKg = totalKg.Add(item.QuantityKg)
	}

	if len(items) == 1 {
		rule, err := src.RuleFor(ctx, items[0].ProducerTypeID, date)
		if err != nil {
			return nil, err
		}
		return []decimal.Decimal{ValueForQuantity(items[0].QuantityKg, rule)}, nil
	}

	rule, err := src.RuleFor(ctx, items[0].ProducerTypeID, date)
	if err != nil {
		return nil, err
	}
	baseValue := ValueForQuantity(totalKg, rule)

	values := make([]decimal.Decimal, len(items))
	for i, item := range items {
		values[i] = baseValue.Mul(item.QuantityKg).Div(totalKg)
	}
	return values, nil
}
