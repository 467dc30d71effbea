package controllers

import (
	"net/http"

	"github.com/vbmartins/cargalog-backend/api/responses"
	"github.com/vbmartins/cargalog-backend/api/validators"
	"github.com/vbmartins/cargalog-backend/internal/reports"
	"github.com/vbmartins/cargalog-backend/pkg/logger"
)

func Dashboard(svc reports.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		period, err := parsePeriod(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result, err := svc.Dashboard(r.Context(), period)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, result)
	}
}

func ConferenceReport(svc reports.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		period, err := parsePeriod(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result, err := svc.Conference(r.Context(), period)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, result)
	}
}

func parsePeriod(r *http.Request) (reports.Period, error) {
	month, err := validators.ParseQueryInt(r, "month", 0, 1, 12)
	if err != nil {
		return reports.Period{}, err
	}
	year, err := validators.ParseQueryInt(r, "year", 0, 2000, 2100)
	if err != nil {
		return reports.Period{}, err
	}
	return reports.Period{Month: month, Year: year}, nil
}
