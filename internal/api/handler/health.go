package handler

import (
	"net/http"
	"time"

	"github.com/vfg2006/sales-dashboard-api/internal/scheduler"
	"github.com/vfg2006/sales-dashboard-api/internal/usecases/selling"
	"github.com/vfg2006/sales-dashboard-api/pkg/log"
)

// HealthcheckHandler é a sonda de liveness: responde enquanto o processo estiver de pé
func HealthcheckHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, err := w.Write([]byte(time.Now().String()))
		if err != nil {
			log.L.WithError(err).Warn("error responding to healthcheck")
		}
	})
}

// GetHealth informa a origem dos dados e quantos registros estão disponíveis.
// Origem indisponível devolve 503 com o mesmo corpo.
func GetHealth(service selling.SalesService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		status, err := service.Status(r.Context())
		if err != nil {
			log.ForContext(r.Context()).WithError(err).Warn("health: data source unavailable")
			writeJSON(w, http.StatusServiceUnavailable, status)
			return
		}

		writeJSON(w, http.StatusOK, status)
	}
}

// ReloadStatusProvider expõe o estado do job de recarga do CSV
type ReloadStatusProvider interface {
	GetStatus() scheduler.ReloadStatus
}

func GetReloadStatus(provider ReloadStatusProvider) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, provider.GetStatus())
	}
}
