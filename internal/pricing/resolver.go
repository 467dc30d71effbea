package pricing

import (
	"time"

	"github.com/vbmartins/cargalog-backend/pkg/db/models"
)

// DateOnly strips the time component so vigency comparisons work on calendar
// dates regardless of the zone the caller parsed the timestamp in.
func DateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func windowContains(validFrom time.Time, validTo *time.Time, asOf time.Time) bool {
	day := DateOnly(asOf)
	if DateOnly(validFrom).After(day) {
		return false
	}
	if validTo != nil && DateOnly(*validTo).Before(day) {
		return false
	}
	return true
}

// ResolvePriceRule picks the price rule in effect on asOf. Inactive rules are
// skipped. When several windows overlap the latest ValidFrom wins; on equal
// ValidFrom the most recently inserted rule wins, so callers must pass rules
// in insertion order. Returns nil when no rule matches.
func ResolvePriceRule(rules []models.PriceRule, asOf time.Time) *models.PriceRule {
	var winner *models.PriceRule
	for i := range rules {
		rule := &rules[i]
		if !rule.Active {
			continue
		}
		if !windowContains(rule.ValidFrom, rule.ValidTo, asOf) {
			continue
		}
		if winner == nil || !DateOnly(rule.ValidFrom).Before(DateOnly(winner.ValidFrom)) {
			winner = rule
		}
	}
	return winner
}

// ResolveCommissionRule picks the commission vigency in effect on asOf using
// the same window and tie-break semantics as ResolvePriceRule.
func ResolveCommissionRule(rules []models.CommissionRule, asOf time.Time) *models.CommissionRule {
	var winner *models.CommissionRule
	for i := range rules {
		rule := &rules[i]
		if !windowContains(rule.ValidFrom, rule.ValidTo, asOf) {
			continue
		}
		if winner == nil || !DateOnly(rule.ValidFrom).Before(DateOnly(winner.ValidFrom)) {
			winner = rule
		}
	}
	return winner
}
