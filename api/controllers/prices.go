package controllers

import (
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/vbmartins/cargalog-backend/api/responses"
	"github.com/vbmartins/cargalog-backend/api/validators"
	"github.com/vbmartins/cargalog-backend/internal/pricing"
	pkgerrors "github.com/vbmartins/cargalog-backend/pkg/errors"
	"github.com/vbmartins/cargalog-backend/pkg/logger"
)

func ListPriceRules(svc pricing.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		result, err := svc.ListRules(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, result)
	}
}

type createPriceRuleRequest struct {
	ProducerTypeID uuid.UUID        `json:"producer_type_id" validate:"required"`
	PerTonRate     decimal.Decimal  `json:"per_ton_rate"`
	FixedFee       *decimal.Decimal `json:"fixed_fee"`
	MinTonnage     *decimal.Decimal `json:"min_tonnage"`
	ValidFrom      string           `json:"valid_from" validate:"required"`
	ValidTo        *string          `json:"valid_to"`
}

func CreatePriceRule(svc pricing.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body createPriceRuleRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		validFrom, err := parseDate(body.ValidFrom, "valid_from")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		input := pricing.CreateRuleInput{
			ProducerTypeID: body.ProducerTypeID,
			PerTonRate:     body.PerTonRate,
			FixedFee:       body.FixedFee,
			MinTonnage:     body.MinTonnage,
			ValidFrom:      validFrom,
		}
		if body.ValidTo != nil {
			validTo, err := parseDate(*body.ValidTo, "valid_to")
			if err != nil {
				responses.WriteError(r.Context(), logg, w, err)
				return
			}
			input.ValidTo = &validTo
		}

		result, err := svc.CreateRule(r.Context(), input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, result)
	}
}

type closePriceRuleRequest struct {
	ValidTo string `json:"valid_to" validate:"required"`
}

func ClosePriceRule(svc pricing.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.ParsePathUUID(chi.URLParam(r, "id"), "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var body closePriceRuleRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		validTo, err := parseDate(body.ValidTo, "valid_to")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.CloseRule(r.Context(), id, validTo); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{"status": "closed"})
	}
}

func parseDate(value, field string) (time.Time, error) {
	parsed, err := time.Parse(time.DateOnly, strings.TrimSpace(value))
	if err != nil {
		return time.Time{}, pkgerrors.New(pkgerrors.CodeValidation, "date must use YYYY-MM-DD").WithDetails(map[string]any{"field": field})
	}
	return parsed, nil
}
