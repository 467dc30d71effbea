package controllers

import (
	"context"
	"net/http"

	"github.com/vbmartins/cargalog-backend/api/responses"
	"github.com/vbmartins/cargalog-backend/pkg/config"
	pkgerrors "github.com/vbmartins/cargalog-backend/pkg/errors"
	"github.com/vbmartins/cargalog-backend/pkg/logger"
)

// ReadinessChecker is the dependency surface the readiness probe pings.
type ReadinessChecker interface {
	Ping(ctx context.Context) error
}

func HealthLive(cfg *config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Cargalog-Env", cfg.App.Env)
		responses.WriteSuccess(w, map[string]string{"status": "live"})
	}
}

// HealthReady pings each dependency; nil checkers are skipped so optional
// backends (redis) do not block readiness when disabled.
func HealthReady(cfg *config.Config, logg *logger.Logger, checkers ...ReadinessChecker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Cargalog-Env", cfg.App.Env)
		for _, checker := range checkers {
			if checker == nil {
				continue
			}
			if err := checker.Ping(r.Context()); err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "dependency unavailable"))
				return
			}
		}
		responses.WriteSuccess(w, map[string]string{"status": "ready"})
	}
}
