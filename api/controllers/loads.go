package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/vbmartins/cargalog-backend/api/middleware"
	"github.com/vbmartins/cargalog-backend/api/responses"
	"github.com/vbmartins/cargalog-backend/api/validators"
	"github.com/vbmartins/cargalog-backend/internal/loads"
	"github.com/vbmartins/cargalog-backend/pkg/logger"
)

func ListLoads(svc loads.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		month, err := validators.ParseQueryInt(r, "month", 0, 1, 12)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		year, err := validators.ParseQueryInt(r, "year", 0, 2000, 2100)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		driverID, err := validators.ParseQueryUUID(r, "driver_id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		actor := middleware.ActorFromContext(r.Context())
		result, err := svc.List(r.Context(), actor, loads.ListFilter{
			Month:    month,
			Year:     year,
			DriverID: driverID,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, result)
	}
}

type createLoadItemRequest struct {
	FactoryID     uuid.UUID       `json:"factory_id" validate:"required"`
	ProducerID    uuid.UUID       `json:"producer_id" validate:"required"`
	FeedTypeID    uuid.UUID       `json:"feed_type_id" validate:"required"`
	InvoiceNumber string          `json:"invoice_number" validate:"required"`
	QuantityKg    decimal.Decimal `json:"quantity_kg"`
}

type createLoadRequest struct {
	DriverID      *uuid.UUID              `json:"driver_id"`
	Date          string                  `json:"date" validate:"required"`
	StartOdometer decimal.Decimal         `json:"start_odometer"`
	EndOdometer   *decimal.Decimal        `json:"end_odometer"`
	Items         []createLoadItemRequest `json:"items" validate:"required,min=1,dive"`
}

func CreateLoad(svc loads.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body createLoadRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		date, err := parseDate(body.Date, "date")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		input := loads.CreateInput{
			Date:          date,
			StartOdometer: body.StartOdometer,
			EndOdometer:   body.EndOdometer,
			Items:         make([]loads.CreateItemInput, len(body.Items)),
		}
		if body.DriverID != nil {
			input.DriverID = *body.DriverID
		}
		for i, item := range body.Items {
			input.Items[i] = loads.CreateItemInput{
				FactoryID:     item.FactoryID,
				ProducerID:    item.ProducerID,
				FeedTypeID:    item.FeedTypeID,
				InvoiceNumber: item.InvoiceNumber,
				QuantityKg:    item.QuantityKg,
			}
		}

		actor := middleware.ActorFromContext(r.Context())
		result, err := svc.Create(r.Context(), actor, input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, result)
	}
}

func GetLoad(svc loads.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.ParsePathUUID(chi.URLParam(r, "id"), "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		actor := middleware.ActorFromContext(r.Context())
		result, err := svc.Get(r.Context(), actor, id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, result)
	}
}

type finalizeLoadRequest struct {
	EndOdometer decimal.Decimal `json:"end_odometer"`
}

func FinalizeLoad(svc loads.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.ParsePathUUID(chi.URLParam(r, "id"), "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var body finalizeLoadRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		actor := middleware.ActorFromContext(r.Context())
		if err := svc.Finalize(r.Context(), actor, id, body.EndOdometer); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{"status": "finalized"})
	}
}
