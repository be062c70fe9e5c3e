package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/aliffarhan/threadmart-backend/api/responses"
	"github.com/aliffarhan/threadmart-backend/pkg/db"
	pkgerrors "github.com/aliffarhan/threadmart-backend/pkg/errors"
	"github.com/aliffarhan/threadmart-backend/pkg/logger"
	pkgredis "github.com/aliffarhan/threadmart-backend/pkg/redis"
)

func routeParam(r *http.Request, key string) string {
	return chi.URLParam(r, key)
}

// Live reports process liveness.
func Live() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		responses.WriteSuccess(w, map[string]string{"status": "ok"})
	}
}

// Ready reports readiness by pinging the backing stores.
func Ready(database db.Pinger, cache pkgredis.Pinger, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if database != nil {
			if err := database.Ping(r.Context()); err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "database unavailable"))
				return
			}
		}
		if cache != nil {
			if err := cache.Ping(r.Context()); err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "redis unavailable"))
				return
			}
		}
		responses.WriteSuccess(w, map[string]string{"status": "ready"})
	}
}
