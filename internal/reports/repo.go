package reports

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/vbmartins/cargalog-backend/pkg/enums"
)

// Repository runs the aggregate queries behind the reporting views.
type Repository struct {
	db *gorm.DB
}

// NewRepository binds a GORM DB to reporting queries.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Totals aggregates every load in the half-open date range.
func (r *Repository) Totals(ctx context.Context, from, to time.Time) (*Totals, error) {
	var totals Totals
	err := r.db.WithContext(ctx).Raw(`
		SELECT
			COUNT(DISTINCT l.id) AS total_loads,
			COUNT(DISTINCT l.driver_id) AS active_drivers,
			COALESCE(SUM(li.quantity_kg), 0) AS total_kg,
			COALESCE(SUM(li.computed_value), 0) AS total_value,
			COALESCE(AVG(l.end_odometer - l.start_odometer), 0) AS avg_distance
		FROM loads l
		LEFT JOIN load_items li ON li.load_id = l.id
		WHERE l.date >= ? AND l.date < ?
	`, from, to).Scan(&totals).Error
	if err != nil {
		return nil, err
	}
	return &totals, nil
}

// PerDriver aggregates the range per active driver, highest value first.
// Drivers without loads in the range still appear with zeroed totals.
func (r *Repository) PerDriver(ctx context.Context, from, to time.Time) ([]DriverBreakdown, error) {
	var rows []DriverBreakdown
	err := r.db.WithContext(ctx).Raw(`
		SELECT
			u.id AS driver_id,
			u.name AS driver_name,
			COUNT(DISTINCT l.id) AS total_loads,
			COALESCE(SUM(li.quantity_kg), 0) AS total_kg,
			COALESCE(SUM(li.computed_value), 0) AS total_value,
			COALESCE(SUM(l.end_odometer - l.start_odometer), 0) AS total_distance
		FROM users u
		LEFT JOIN loads l ON l.driver_id = u.id AND l.date >= ? AND l.date < ?
		LEFT JOIN load_items li ON li.load_id = l.id
		WHERE u.role = ? AND u.active = ?
		GROUP BY u.id, u.name
		ORDER BY total_value DESC
	`, from, to, enums.UserRoleDriver, true).Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// Conference lists every delivery in the range with its invoice and producer.
func (r *Repository) Conference(ctx context.Context, from, to time.Time) ([]ConferenceRow, error) {
	var rows []ConferenceRow
	err := r.db.WithContext(ctx).Raw(`
		SELECT
			l.date,
			u.name AS driver_name,
			li.invoice_number,
			p.name AS producer_name,
			li.quantity_kg,
			li.computed_value
		FROM loads l
		JOIN users u ON u.id = l.driver_id
		JOIN load_items li ON li.load_id = l.id
		JOIN producers p ON p.id = li.producer_id
		WHERE l.date >= ? AND l.date < ?
		ORDER BY l.date DESC, u.name ASC
	`, from, to).Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}
