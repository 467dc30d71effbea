package pricing

import (
	"github.com/shopspring/decimal"

	"github.com/vbmartins/cargalog-backend/pkg/db/models"
)

var kgPerTonne = decimal.NewFromInt(1000)

// ValueForQuantity computes the freight value of a single quantity under the
// given price rule. A nil rule degrades to zero rather than failing, so a
// missing price table entry surfaces as a visibly wrong total instead of
// blocking load creation.
func ValueForQuantity(quantityKg decimal.Decimal, rule *models.PriceRule) decimal.Decimal {
	if rule == nil {
		return decimal.Zero
	}

	tonnes := quantityKg.Div(kgPerTonne)

	if rule.MinTonnage == nil {
		return tonnes.Mul(rule.PerTonRate)
	}

	// Below the minimum tonnage the flat fee applies, ignoring weight.
	if tonnes.LessThan(*rule.MinTonnage) {
		if rule.FixedFee == nil {
			return decimal.Zero
		}
		return *rule.FixedFee
	}

	return tonnes.Mul(rule.PerTonRate)
}
