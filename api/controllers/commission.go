package controllers

import (
	"net/http"
	"time"

	"github.com/shopspring/decimal"

	"github.com/vbmartins/cargalog-backend/api/responses"
	"github.com/vbmartins/cargalog-backend/api/validators"
	"github.com/vbmartins/cargalog-backend/internal/commission"
	"github.com/vbmartins/cargalog-backend/pkg/logger"
)

// CurrentCommission returns the percentage in effect today.
func CurrentCommission(svc commission.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		percent, err := svc.ResolvePercentage(r.Context(), time.Now().UTC())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]decimal.Decimal{"percentage": percent})
	}
}

func CommissionHistory(svc commission.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rules, err := svc.History(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, rules)
	}
}

type applyCommissionRequest struct {
	Percentage decimal.Decimal `json:"percentage"`
	ValidFrom  string          `json:"valid_from" validate:"required"`
}

// ApplyCommission opens a new commission vigency from the given date.
func ApplyCommission(svc commission.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body applyCommissionRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		validFrom, err := parseDate(body.ValidFrom, "valid_from")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.ApplyNewVigency(r.Context(), body.Percentage, validFrom); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, map[string]string{"status": "applied"})
	}
}
